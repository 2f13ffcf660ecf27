// Package resolve implements the two passes applied to a discovered record table
// before it is read: the SubsetsUnmixer keeps one homogeneous group of records,
// then the Deduplicator keeps one record per uniqueness key.
//
// Both passes are pure functions of the table. An ambiguity they cannot settle
// with their auto pick keys is returned as an error, never resolved arbitrarily.
package resolve

// Package discovery walks a file collection and turns the matched files into a
// record table.
//
// # Layout guided traversal
//
// Given one or more [layout.Layout], the traversal lists a directory once and
// matches every child against the convention of the current depth of each layout
// still accepting the branch. A child is handled as follows:
//
//   - no layout matches its name: a [LayoutMismatchError] diagnostic is recorded and
//     the child is skipped. With [Discovery.WithStrict] the diagnostic aborts the
//     discovery instead.
//   - a layout matches but a field cannot decode its text: a [field.DecodeError]
//     diagnostic is recorded and the child is skipped.
//   - the decoded values fail an active filter: the branch is pruned, its directory
//     is never listed.
//   - otherwise the traversal descends, or emits a record at the terminal level.
//
// # Unguided traversal
//
// Without layouts, or with [Discovery.WithoutLayouts], every directory is listed
// and only the file convention and the filters are applied.
//
// # Symbolic links
//
// Links are skipped unless [Discovery.WithFollowSymlinks] is set. When links are
// followed, every directory is resolved to its canonical path and a directory
// reached twice is listed once, so cyclic link graphs terminate.
//
// # Concurrency
//
// With [Discovery.WithNumWorkers] greater than one, sibling subtrees are listed
// concurrently by a [worker.Pool]. The record table is sorted by path before it is
// returned, so row order never depends on scheduling.
package discovery

// Package products declares the naming conventions, folder layouts and
// resolution rules of the supported file collections.
package products

import (
	"fmt"
	"slices"
	"strings"

	"github.com/fcollections/fcollections/internal/database"
	"github.com/fcollections/fcollections/internal/errors"
)

// Product names.
const (
	SwotL2LRSSH      = "swot_l2_lr_ssh"
	SwotL3LRSSH      = "swot_l3_lr_ssh"
	SwotL3LRWindWave = "l3_lr_ww"
	L2Nadir          = "l2_nadir"
	L3Nadir          = "l3_nadir"
	GriddedSLA       = "gridded_sla"
)

var registry = map[string]func() *database.Product{
	SwotL2LRSSH:      NewSwotL2LRSSH,
	SwotL3LRSSH:      NewSwotL3LRSSH,
	SwotL3LRWindWave: NewSwotL3LRWindWave,
	L2Nadir:          NewL2Nadir,
	L3Nadir:          NewL3Nadir,
	GriddedSLA:       NewGriddedSLA,
}

// UnknownProductError is returned by Lookup for an unregistered name.
type UnknownProductError struct {
	Name  string
	Known []string
}

func (err UnknownProductError) Error() string {
	return fmt.Sprintf("unknown product %q, expected one of %s", err.Name, strings.Join(err.Known, ", "))
}

// Lookup returns a new definition of the named product.
func Lookup(name string) (*database.Product, error) {
	newProduct, ok := registry[name]
	if !ok {
		return nil, errors.New(UnknownProductError{Name: name, Known: Names()})
	}

	return newProduct(), nil
}

// Names returns the registered product names in lexical order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

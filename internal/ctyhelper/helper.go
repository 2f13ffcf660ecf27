// Package ctyhelper converts the cty values of HCL attributes into the textual
// filter syntax understood by the fields.
package ctyhelper

import (
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/fcollections/fcollections/internal/errors"
)

const (
	listSeparator  = ","
	rangeSeparator = ".."

	fromKey = "from"
	toKey   = "to"
)

// UnsupportedValueError is returned for a filter value that has no textual form.
type UnsupportedValueError struct {
	Key    string
	Reason string
}

func (err UnsupportedValueError) Error() string {
	return fmt.Sprintf("filter %q: %s", err.Key, err.Reason)
}

// FilterTexts converts an object or map of filters into the text of each
// reference:
//
//	subset       = "Expert"                           Expert
//	pass_number  = [11, 12]                           11,12
//	cycle_number = { from = 1, to = 10 }              1..10
//	time         = { from = "2023-06-01" }            2023-06-01..
//
// A null value gives no filter.
func FilterTexts(value cty.Value) (map[string]string, error) {
	texts := map[string]string{}

	if value.IsNull() {
		return texts, nil
	}

	if !value.IsWhollyKnown() {
		return nil, errors.New(UnsupportedValueError{Key: "filters", Reason: "value is not known"})
	}

	ty := value.Type()
	if !ty.IsObjectType() && !ty.IsMapType() {
		return nil, errors.New(UnsupportedValueError{Key: "filters", Reason: "expected an object, got " + ty.FriendlyName()})
	}

	for key, val := range value.AsValueMap() {
		text, err := referenceText(key, val)
		if err != nil {
			return nil, err
		}

		texts[key] = text
	}

	return texts, nil
}

func referenceText(key string, value cty.Value) (string, error) {
	ty := value.Type()

	switch {
	case value.IsNull():
		return "", errors.New(UnsupportedValueError{Key: key, Reason: "value is null"})
	case ty.IsPrimitiveType():
		return primitiveText(key, value)
	case ty.IsTupleType(), ty.IsListType(), ty.IsSetType():
		values := value.AsValueSlice()
		if len(values) == 0 {
			return "", errors.New(UnsupportedValueError{Key: key, Reason: "empty list"})
		}

		texts := make([]string, 0, len(values))

		for _, val := range values {
			text, err := primitiveText(key, val)
			if err != nil {
				return "", err
			}

			texts = append(texts, text)
		}

		return strings.Join(texts, listSeparator), nil
	case ty.IsObjectType(), ty.IsMapType():
		return rangeText(key, value.AsValueMap())
	default:
		return "", errors.New(UnsupportedValueError{Key: key, Reason: "unsupported type " + ty.FriendlyName()})
	}
}

func rangeText(key string, bounds map[string]cty.Value) (string, error) {
	var from, to string

	for name, val := range bounds {
		text, err := primitiveText(key, val)
		if err != nil {
			return "", err
		}

		switch name {
		case fromKey:
			from = text
		case toKey:
			to = text
		default:
			return "", errors.New(UnsupportedValueError{Key: key, Reason: fmt.Sprintf("unexpected range bound %q, expected from or to", name)})
		}
	}

	if from == "" && to == "" {
		return "", errors.New(UnsupportedValueError{Key: key, Reason: "range without bounds"})
	}

	return from + rangeSeparator + to, nil
}

func primitiveText(key string, value cty.Value) (string, error) {
	if value.IsNull() || !value.Type().IsPrimitiveType() {
		return "", errors.New(UnsupportedValueError{Key: key, Reason: "expected a string, a number or a bool"})
	}

	converted, err := convert.Convert(value, cty.String)
	if err != nil {
		return "", errors.New(UnsupportedValueError{Key: key, Reason: err.Error()})
	}

	return converted.AsString(), nil
}

package layout

import (
	"fmt"

	"github.com/dasdy/keyview/model"
	"github.com/tidwall/gjson"
)

// JSONUnit converts the key-unit grid of JSON layouts into layout units.
const JSONUnit = 100

const defaultJSONLayout = "layout_US"

// ParseJSONLayout reads the key list stored at layouts.layout_US.layout. When that
// layout is missing the first entry under "layouts" is used. Missing x/y/r default to
// 0, missing or zero w/h default to 1. Text that is not JSON returns ErrNotJSON; a
// JSON document without layouts returns no keys and no error.
func ParseJSONLayout(text string) ([]model.KeyGeometry, error) {
	if !gjson.Valid(text) {
		return nil, ErrNotJSON
	}

	layouts := gjson.Get(text, "layouts")
	if !layouts.Exists() {
		return nil, nil
	}

	if !layouts.IsObject() {
		return nil, &ParseError{Format: FormatJSON, Field: "layouts", Err: errWrongType}
	}

	entries := layouts.Get(defaultJSONLayout + ".layout")
	if !entries.Exists() {
		layouts.ForEach(func(_, value gjson.Result) bool {
			entries = value.Get("layout")

			return false
		})
	}

	if !entries.Exists() {
		return nil, nil
	}

	if !entries.IsArray() {
		return nil, &ParseError{Format: FormatJSON, Field: "layout", Err: errWrongType}
	}

	items := entries.Array()
	keys := make([]model.KeyGeometry, 0, len(items))

	for i, item := range items {
		key, err := jsonKey(item)
		if err != nil {
			err.Line = i + 1

			return nil, err
		}

		keys = append(keys, key)
	}

	return keys, nil
}

func jsonKey(item gjson.Result) (model.KeyGeometry, *ParseError) {
	if !item.IsObject() {
		return model.KeyGeometry{}, &ParseError{Format: FormatJSON, Err: errWrongType}
	}

	var values [7]float64

	defaults := [7]float64{0, 0, 1, 1, 0, 0, 0}

	for i, name := range [7]string{"x", "y", "w", "h", "r", "rx", "ry"} {
		field := item.Get(name)

		switch {
		case !field.Exists() || field.Type == gjson.Null:
			values[i] = defaults[i]
		case field.Type != gjson.Number:
			return model.KeyGeometry{}, &ParseError{
				Format: FormatJSON,
				Field:  name,
				Err:    fmt.Errorf("%w: %s", errWrongType, field.Raw),
			}
		default:
			values[i] = field.Float()
		}

		// a zero size falls back to the default, like a missing one
		if values[i] == 0 {
			values[i] = defaults[i]
		}
	}

	if values[2] < 0 {
		return model.KeyGeometry{}, &ParseError{Format: FormatJSON, Field: "w", Err: errNotPositive}
	}

	if values[3] < 0 {
		return model.KeyGeometry{}, &ParseError{Format: FormatJSON, Field: "h", Err: errNotPositive}
	}

	return model.KeyGeometry{
		X:  values[0] * JSONUnit,
		Y:  values[1] * JSONUnit,
		W:  values[2] * JSONUnit,
		H:  values[3] * JSONUnit,
		R:  values[4],
		Rx: values[5] * JSONUnit,
		Ry: values[6] * JSONUnit,
	}, nil
}

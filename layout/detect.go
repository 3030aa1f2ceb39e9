package layout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dasdy/keyview/model"
)

const defaultLayerName = "default"

// ParseLayoutText reads key geometry from either a JSON layout or a text carrying
// &key_physical_attrs entries. JSON is tried first. ErrUnknownFormat is returned when
// neither format yields a key.
func ParseLayoutText(text string) ([]model.KeyGeometry, Format, error) {
	keys, err := ParseJSONLayout(text)

	switch {
	case err == nil && len(keys) > 0:
		return keys, FormatJSON, nil
	case err != nil && !errors.Is(err, ErrNotJSON):
		return nil, FormatJSON, err
	}

	keys, err = ParsePhysicalAttrs(text)
	if err != nil {
		return nil, FormatMacro, err
	}

	if len(keys) > 0 {
		return keys, FormatMacro, nil
	}

	return nil, "", ErrUnknownFormat
}

// ParsePositions accepts CSV key positions as well as everything ParseLayoutText
// does. scaleFactor applies to CSV input only.
func ParsePositions(text string, scaleFactor float64) ([]model.KeyGeometry, Format, error) {
	if looksLikePositionTable(text) {
		keys, err := ParseKeyPositions(strings.NewReader(text), scaleFactor)

		return keys, FormatCSV, err
	}

	return ParseLayoutText(text)
}

func looksLikePositionTable(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		columns := make(map[string]bool)
		for _, c := range strings.Split(line, ",") {
			columns[strings.ToLower(strings.TrimSpace(c))] = true
		}

		for _, name := range requiredColumns {
			if !columns[name] {
				return false
			}
		}

		return true
	}

	return false
}

// ParseLabels reads a keymap as QMK source, ZMK keymap macros or a CSV table, and
// returns its layers. Single-layer formats produce one layer named "default".
func ParseLabels(text string) ([]model.Layer, Format, error) {
	if IsQMKKeymap(text) {
		return ParseQMKKeymap(text), FormatQMK, nil
	}

	if strings.Contains(text, bindingsStart) {
		layers := ParseKeymapLayers(text)
		if len(layers) == 0 {
			layers = []model.Layer{{Name: defaultLayerName, Labels: ParseKeymapMacro(text)}}
		}

		return layers, FormatMacro, nil
	}

	labels, err := ParseKeymapTable(strings.NewReader(text))
	if err != nil {
		return nil, FormatKeymapCSV, err
	}

	return []model.Layer{{Name: defaultLayerName, Labels: labels}}, FormatKeymapCSV, nil
}

// Build assembles a layout, normalizing every label. The first layer provides the
// active labels.
func Build(name string, keys []model.KeyGeometry, layers []model.Layer) *model.Layout {
	normalized := make([]model.Layer, len(layers))
	for i, l := range layers {
		normalized[i] = model.Layer{Name: l.Name, Label: l.Label, Labels: NormalizeLabels(l.Labels)}
	}

	result := &model.Layout{Name: name, Keys: keys, Layers: normalized}
	if len(normalized) > 0 {
		result.Labels = normalized[0].Labels
	}

	return result
}

// LoadText parses a position text and a keymap text into a layout. When keymapText
// is empty and positionsText holds macro geometry, labels are read from
// positionsText too, which suits keymap files carrying both attributes and bindings.
func LoadText(name, positionsText, keymapText string, scaleFactor float64) (*model.Layout, error) {
	keys, format, err := ParsePositions(positionsText, scaleFactor)
	if err != nil {
		return nil, fmt.Errorf("could not parse key positions: %w", err)
	}

	if keymapText == "" {
		if format != FormatMacro {
			return Build(name, keys, nil), nil
		}

		keymapText = positionsText
	}

	layers, format, err := ParseLabels(keymapText)
	if err != nil {
		return nil, fmt.Errorf("could not parse keymap as %s: %w", format, err)
	}

	return Build(name, keys, layers), nil
}

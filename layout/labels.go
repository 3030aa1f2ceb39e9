package layout

import "github.com/dasdy/keyview/model"

var labels = map[string]string{
	"N0": "0",
	"N1": "1",
	"N2": "2",
	"N3": "3",
	"N4": "4",
	"N5": "5",
	"N6": "6",
	"N7": "7",
	"N8": "8",
	"N9": "9",

	"LALT":   "ALT",
	"RALT":   "ALT",
	"LSHFT":  "SHIFT",
	"LSHIFT": "SHIFT",
	"RSHFT":  "SHIFT",
	"RSHIFT": "SHIFT",
	"LCTRL":  "CTRL",
	"RCTRL":  "CTRL",
	"LGUI":   "WIN",
	"RGUI":   "WIN",

	"BKSP": "BACKSPACE",
	"BSPC": "BACKSPACE",

	"TRANS": model.TransparentLabel,
}

// NormalizeLabel maps keymap and input identifiers to the label used for lookups.
// Identifiers without an entry are returned unchanged, so the mapping is idempotent.
func NormalizeLabel(label string) string {
	if v, ok := labels[label]; ok {
		return v
	}

	return label
}

// NormalizeLabels returns a normalized copy of ls.
func NormalizeLabels(ls []string) []string {
	result := make([]string, len(ls))
	for i, l := range ls {
		result[i] = NormalizeLabel(l)
	}

	return result
}

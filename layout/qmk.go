package layout

import (
	"regexp"
	"strings"

	"github.com/dasdy/keyview/model"
)

const qmkMarker = "PROGMEM keymaps[]["

var (
	qmkLayerStart = regexp.MustCompile(`\[_?(\w+)\]\s*=\s*LAYOUT\w*\s*\(`)
	qmkModifier   = regexp.MustCompile(`^(LCTL|RCTL|LSFT|RSFT|LALT|RALT|LGUI|RGUI)\((.*)\)$`)
)

var qmkCodes = map[string]string{
	"MINS":        "MINUS",
	"EQL":         "EQUAL",
	"LBRC":        "[",
	"RBRC":        "]",
	"QUOT":        "SQT",
	"SLSH":        "FSLH",
	"INT1":        "CAPS",
	"MS_BTN1":     "BTN1",
	"MS_BTN2":     "BTN2",
	"MS_BTN3":     "BTN3",
	"WWW_BACK":    "WWW_PREV",
	"WWW_FORWARD": "WWW_NEXT",
	"0x0068":      "F13",
	"0x0069":      "F14",
}

// IsQMKKeymap reports whether text looks like a QMK keymap.c source.
func IsQMKKeymap(text string) bool {
	return strings.Contains(text, qmkMarker)
}

// ParseQMKKeymap reads "[_NAME] = LAYOUT(...)" entries of a QMK keymap source.
func ParseQMKKeymap(text string) []model.Layer {
	var layers []model.Layer

	for _, loc := range qmkLayerStart.FindAllStringSubmatchIndex(text, -1) {
		open := loc[1] - 1

		end := findMatchingParen(text, open)
		if end == -1 {
			continue
		}

		name := text[loc[2]:loc[3]]

		var codes []string

		for _, code := range splitTopLevel(text[open+1 : end]) {
			code = strings.Join(strings.Fields(code), "")
			if code == "" {
				continue
			}

			codes = append(codes, normalizeQMKCode(code))
		}

		layers = append(layers, model.Layer{Name: name, Label: name, Labels: codes})
	}

	return layers
}

func normalizeQMKCode(code string) string {
	if code == "_______" || code == "KC_TRNS" || code == "KC_TRANSPARENT" {
		return "TRANS"
	}

	if m := qmkModifier.FindStringSubmatch(code); m != nil {
		// drop the L/R side prefix
		return m[1][1:] + "+" + normalizeQMKCode(m[2])
	}

	code = strings.TrimPrefix(code, "KC_")

	if v, ok := qmkCodes[code]; ok {
		return v
	}

	return code
}

// findMatchingParen returns the index of the parenthesis closing the one at start,
// or -1.
func findMatchingParen(s string, start int) int {
	if start >= len(s) || s[start] != '(' {
		return -1
	}

	depth := 1

	for i := start + 1; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

// splitTopLevel splits on commas that are not nested in parentheses.
func splitTopLevel(s string) []string {
	var (
		parts []string
		depth int
		last  int
	)

	for i := range len(s) {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[last:i])
				last = i + 1
			}
		}
	}

	return append(parts, s[last:])
}

package layout

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dasdy/keyview/model"
)

// bindingRule turns a binding fragment such as "&kp A" into a key label.
type bindingRule struct {
	pattern *regexp.Regexp
	label   func(match []string) string
}

func captured(match []string) string {
	return match[1]
}

// Order matters: the first matching rule wins.
var bindingRules = []bindingRule{
	{regexp.MustCompile(`^&kp\s+(\S+)`), captured},
	{regexp.MustCompile(`^&lt\s+\d+\s+(\S+)`), captured},
	{regexp.MustCompile(`^&mt\s+\S+\s+(\S+)`), captured},
	{regexp.MustCompile(`^&toJIS\s+\d+\s+(\S+)`), captured},
	{regexp.MustCompile(`^&mF(\d+)`), func(match []string) string { return "F" + match[1] }},
	{regexp.MustCompile(`^&trans`), func([]string) string { return "TRANS" }},
}

// BindingLabel returns the label for a single binding such as "&lt 1 SPACE", or
// model.UnknownLabel if no rule matches.
func BindingLabel(binding string) string {
	for _, rule := range bindingRules {
		if match := rule.pattern.FindStringSubmatch(binding); match != nil {
			return rule.label(match)
		}
	}

	return model.UnknownLabel
}

const (
	bindingsStart = "bindings = <"
	bindingsEnd   = ">;"
)

var (
	nodeStart        = regexp.MustCompile(`^(?:[\w-]+\s*:\s*)?([\w/,.-]+)\s*{`)
	layerLabel       = regexp.MustCompile(`label\s*=\s*"([^"]+)"`)
	keymapCompatible = regexp.MustCompile(`compatible\s*=\s*"zmk,keymap"`)
)

// bindingsScanner tracks whether the current line is inside a bindings block.
// The lines that open and close the block contribute no bindings.
type bindingsScanner struct {
	inBindings bool
}

// scan returns the trimmed line and whether its bindings should be collected.
func (s *bindingsScanner) scan(line string) (string, bool) {
	line = strings.TrimSpace(line)

	if strings.Contains(line, bindingsStart) {
		// a block opened and closed on the same line never leaves us inside
		s.inBindings = !strings.Contains(line[strings.Index(line, bindingsStart):], bindingsEnd)

		return line, false
	}

	if strings.Contains(line, bindingsEnd) {
		s.inBindings = false

		return line, false
	}

	if !s.inBindings || line == "" || strings.HasPrefix(line, "//") {
		return line, false
	}

	return line, true
}

func lineBindings(line string) []string {
	var result []string

	for _, fragment := range strings.Split(line, "&") {
		fragment = strings.TrimSpace(fragment)
		if fragment == "" {
			continue
		}

		result = append(result, BindingLabel("&"+fragment))
	}

	return result
}

// ParseKeymapMacro returns one raw label per binding found inside any
// "bindings = <" ... ">;" block, in source order. Unrecognized bindings yield
// model.UnknownLabel.
func ParseKeymapMacro(text string) []string {
	var (
		scanner bindingsScanner
		result  []string
	)

	for _, line := range strings.Split(text, "\n") {
		line, ok := scanner.scan(line)
		if !ok {
			continue
		}

		result = append(result, lineBindings(line)...)
	}

	return result
}

// openNode is an open devicetree node while scanning a keymap.
type openNode struct {
	name     string
	label    string
	layer    int
	keymap   bool
	eligible bool
}

func layerName(node string) string {
	if name := strings.TrimSuffix(node, "_layer"); name != "" {
		return name
	}

	return node
}

// ParseKeymapLayers splits a keymap into its layer nodes. When the text has a
// "zmk,keymap" node, its direct children are the layers; otherwise any node
// with a bindings block is one. Bindings outside those nodes are ignored.
func ParseKeymapLayers(text string) []model.Layer {
	var (
		scanner bindingsScanner
		layers  []model.Layer
		stack   []*openNode
	)

	keymapMode := keymapCompatible.MatchString(text)

	top := func() *openNode {
		if len(stack) == 0 {
			return nil
		}

		return stack[len(stack)-1]
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		opens := strings.Count(line, "{")

		if m := nodeStart.FindStringSubmatch(line); m != nil {
			parent := top()
			eligible := !keymapMode || (parent != nil && parent.keymap)
			stack = append(stack, &openNode{name: m[1], layer: -1, eligible: eligible})
			opens--
		}

		for ; opens > 0; opens-- {
			stack = append(stack, &openNode{layer: -1})
		}

		node := top()

		if node != nil && keymapCompatible.MatchString(line) {
			node.keymap = true
		}

		if m := layerLabel.FindStringSubmatch(line); m != nil && node != nil && node.eligible {
			node.label = m[1]
			if node.layer >= 0 {
				layers[node.layer].Label = m[1]
			}
		} else if line, ok := scanner.scan(line); ok && node != nil && node.eligible {
			if node.layer < 0 {
				layers = append(layers, model.Layer{Name: layerName(node.name), Label: node.label})
				node.layer = len(layers) - 1
			}

			layers[node.layer].Labels = append(layers[node.layer].Labels, lineBindings(line)...)
		}

		for closes := strings.Count(line, "}"); closes > 0 && len(stack) > 0; closes-- {
			stack = stack[:len(stack)-1]
		}
	}

	return layers
}

const macroNumber = `(-?\d+|\(\s*-?\d+\s*\))`

var physicalAttrs = regexp.MustCompile(`&key_physical_attrs` + strings.Repeat(`\s+`+macroNumber, 7))

// ParsePhysicalAttrs reads every "&key_physical_attrs w h x y rot rx ry" entry.
// Values are used as-is; rx and ry are kept on the key but not used for geometry.
func ParsePhysicalAttrs(text string) ([]model.KeyGeometry, error) {
	matches := physicalAttrs.FindAllStringSubmatchIndex(text, -1)
	keys := make([]model.KeyGeometry, 0, len(matches))

	for _, match := range matches {
		line := strings.Count(text[:match[0]], "\n") + 1

		var values [7]float64

		for j := range values {
			raw := text[match[2*j+2]:match[2*j+3]]

			v, err := strconv.Atoi(strings.Trim(raw, "() \t"))
			if err != nil {
				return nil, &ParseError{
					Format: FormatMacro,
					Line:   line,
					Field:  physicalAttrFields[j],
					Err:    fmt.Errorf("could not parse %q: %w", raw, err),
				}
			}

			values[j] = float64(v)
		}

		if values[0] <= 0 {
			return nil, &ParseError{Format: FormatMacro, Line: line, Field: "w", Err: errNotPositive}
		}

		if values[1] <= 0 {
			return nil, &ParseError{Format: FormatMacro, Line: line, Field: "h", Err: errNotPositive}
		}

		keys = append(keys, model.KeyGeometry{
			W:  values[0],
			H:  values[1],
			X:  values[2],
			Y:  values[3],
			R:  values[4],
			Rx: values[5],
			Ry: values[6],
		})
	}

	return keys, nil
}

var physicalAttrFields = [7]string{"w", "h", "x", "y", "rot", "rx", "ry"}

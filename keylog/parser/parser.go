// Package parser reads key matrix events from ZMK debug log lines such as
//
//	[23:09:36.886,444] <dbg> zmk: zmk_kscan_process_msgq: Row: 2, col: 1, position: 23, pressed: false
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dasdy/keyview/model"
)

// escape sequence terminal-colored logs end with
const colorReset = "\x1b[0m"

// ParseLine returns nil without error for lines that carry no key event.
func ParseLine(line string) (*model.KeyEvent, error) {
	tokens := strings.Fields(strings.ReplaceAll(line, colorReset, ""))

	var (
		event model.KeyEvent
		found = map[string]bool{}
	)

	for ix := 0; ix+1 < len(tokens); ix++ {
		name := tokens[ix]
		value := strings.TrimRight(tokens[ix+1], ",")

		switch name {
		case "Row:", "col:", "position:":
			n, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("could not parse %s %q: %w", strings.TrimSuffix(name, ":"), value, err)
			}

			switch name {
			case "Row:":
				event.Row = n
			case "col:":
				event.Col = n
			default:
				event.Position = model.KeyPosition(n)
			}
		case "pressed:":
			switch value {
			case "true":
				event.Pressed = true
			case "false":
				event.Pressed = false
			default:
				return nil, fmt.Errorf("pressed value unexpected: %q", value)
			}
		default:
			continue
		}

		found[name] = true
		ix++
	}

	if len(found) == 4 {
		return &event, nil
	}

	if len(found) > 0 {
		return nil, fmt.Errorf("incomplete key event, found %d of 4 fields", len(found))
	}

	return nil, nil
}

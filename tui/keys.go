package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

var specialKeys = map[tcell.Key]string{
	tcell.KeyEnter:      "ENTER",
	tcell.KeyTab:        "TAB",
	tcell.KeyBacktab:    "TAB",
	tcell.KeyBackspace:  "BACKSPACE",
	tcell.KeyBackspace2: "BACKSPACE",
	tcell.KeyEscape:     "ESC",
	tcell.KeyDelete:     "DEL",
	tcell.KeyInsert:     "INS",
	tcell.KeyHome:       "HOME",
	tcell.KeyEnd:        "END",
	tcell.KeyPgUp:       "PG_UP",
	tcell.KeyPgDn:       "PG_DN",
	tcell.KeyUp:         "UP",
	tcell.KeyDown:       "DOWN",
	tcell.KeyLeft:       "LEFT",
	tcell.KeyRight:      "RIGHT",
}

var modifierKeys = []struct {
	mask tcell.ModMask
	key  string
}{
	{tcell.ModCtrl, "Control"},
	{tcell.ModShift, "Shift"},
	{tcell.ModAlt, "Alt"},
	{tcell.ModMeta, "Meta"},
}

// RawKeys lists the platform key names held for a terminal key event: modifiers
// first, then the key itself. Terminals report control letters as their own keys,
// which are split into Control plus the letter.
func RawKeys(ev *tcell.EventKey) []string {
	mods := ev.Modifiers()

	var key string

	switch k := ev.Key(); {
	case k == tcell.KeyRune:
		key = string(ev.Rune())
	case specialKeys[k] != "":
		key = specialKeys[k]
	case k >= tcell.KeyF1 && k <= tcell.KeyF24:
		key = fmt.Sprintf("F%d", int(k-tcell.KeyF1)+1)
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		key = string(rune('A' + int(k-tcell.KeyCtrlA)))
		mods |= tcell.ModCtrl
	case k == tcell.KeyCtrlSpace:
		key = " "
		mods |= tcell.ModCtrl
	}

	result := make([]string, 0, len(modifierKeys)+1)

	for _, m := range modifierKeys {
		if mods&m.mask != 0 {
			result = append(result, m.key)
		}
	}

	if key != "" {
		result = append(result, key)
	}

	return result
}

var mouseButtons = []struct {
	mask   tcell.ButtonMask
	button int
}{
	{tcell.ButtonPrimary, 1},
	{tcell.ButtonMiddle, 2},
	{tcell.ButtonSecondary, 3},
}

// WheelDelta returns +1 for wheel up, -1 for wheel down and 0 otherwise.
func WheelDelta(buttons tcell.ButtonMask) int {
	switch {
	case buttons&tcell.WheelUp != 0:
		return 1
	case buttons&tcell.WheelDown != 0:
		return -1
	default:
		return 0
	}
}

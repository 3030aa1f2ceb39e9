// Package theme holds the colour palettes shared by the web page and the terminal viewer.
package theme

import (
	"slices"
	"strings"
)

// Theme is a named colour palette. Colours are CSS hex strings.
type Theme struct {
	Name        string
	Background  string
	KeyFill     string
	KeyStroke   string
	Text        string
	PressedFill string
	PressedText string
	// Faded is used for the labels of transparent keys.
	Faded string
}

const Default = "light"

var themes = map[string]Theme{
	"light": {
		Name:        "light",
		Background:  "#f4f4f4",
		KeyFill:     "#ffffff",
		KeyStroke:   "#333333",
		Text:        "#222222",
		PressedFill: "#ffcc33",
		PressedText: "#000000",
		Faded:       "#aaaaaa",
	},
	"dark": {
		Name:        "dark",
		Background:  "#1e1e1e",
		KeyFill:     "#2d2d2d",
		KeyStroke:   "#555555",
		Text:        "#dddddd",
		PressedFill: "#0e639c",
		PressedText: "#ffffff",
		Faded:       "#666666",
	},
	"blue": {
		Name:        "blue",
		Background:  "#0b1d3a",
		KeyFill:     "#13315c",
		KeyStroke:   "#8da9c4",
		Text:        "#eef4ed",
		PressedFill: "#eef4ed",
		PressedText: "#0b1d3a",
		Faded:       "#52688f",
	},
	"green": {
		Name:        "green",
		Background:  "#e9f5db",
		KeyFill:     "#cfe1b9",
		KeyStroke:   "#718355",
		Text:        "#2d3a1f",
		PressedFill: "#87986a",
		PressedText: "#ffffff",
		Faded:       "#97a97c",
	},
	"console": {
		Name:        "console",
		Background:  "#000000",
		KeyFill:     "#000000",
		KeyStroke:   "#00aa00",
		Text:        "#00ff00",
		PressedFill: "#00ff00",
		PressedText: "#000000",
		Faded:       "#006600",
	},
}

// Names returns the known theme names in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// Lookup finds a theme by name, ignoring case.
func Lookup(name string) (Theme, bool) {
	t, ok := themes[strings.ToLower(strings.TrimSpace(name))]

	return t, ok
}

// OrDefault returns the named theme, falling back to Default.
func OrDefault(name string) Theme {
	if t, ok := Lookup(name); ok {
		return t
	}

	return themes[Default]
}

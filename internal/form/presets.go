package form

import "strings"

// Preset is a named theme color.
type Preset struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Presets is the fixed palette offered next to the free color input.
var Presets = []Preset{
	{Name: "Cyan", Value: "#00d2ff"},
	{Name: "Magenta", Value: "#ff006e"},
	{Name: "Neon Green", Value: "#39ff14"},
	{Name: "Purple", Value: "#b026ff"},
	{Name: "Orange", Value: "#ff9500"},
	{Name: "Gold", Value: "#ffd700"},
}

// LookupPreset finds a preset by name, ignoring case and surrounding space.
func LookupPreset(name string) (Preset, bool) {
	name = strings.TrimSpace(name)
	for _, p := range Presets {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Preset{}, false
}

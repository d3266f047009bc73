// Package palette maps clubs to display colours.
package palette

import "strings"

// Named colours used by the charts.
const (
	Default = "MediumSeaGreen"
	Draws   = "SlateGray"
	Losses  = "Salmon"
	Others  = "Gray"
)

var teamColors = map[string]string{
	"Manchester Utd":  "Crimson",
	"Manchester City": "CornflowerBlue",
	"Liverpool":       "Crimson",
	"Chelsea":         "DodgerBlue",
	"Arsenal":         "Crimson",
	"Tottenham":       "MidnightBlue",
	"Everton":         "DodgerBlue",
	"Leicester":       "DodgerBlue",
	"West Ham":        "Crimson",
	"Aston Villa":     "MidnightBlue",
	"Newcastle":       "DarkTurquoise",
	"Crystal Palace":  "Crimson",
	"Southampton":     "Crimson",
	"Wolves":          "MidnightBlue",
	"Brighton":        "MidnightBlue",
	"Blackburn":       "CornflowerBlue",
}

// keys are lower-cased colour names
var hexByName = map[string]string{
	"crimson":        "#DC143C",
	"cornflowerblue": "#6495ED",
	"dodgerblue":     "#1E90FF",
	"midnightblue":   "#191970",
	"darkturquoise":  "#00CED1",
	"mediumseagreen": "#3CB371",
	"slategray":      "#708090",
	"salmon":         "#FA8072",
	"gray":           "#808080",
	"black":          "#000000",
}

// ColorFor returns the named colour for team, or Default when the team has
// no fixed colour.
func ColorFor(team string) string {
	if c, ok := teamColors[team]; ok {
		return c
	}
	return Default
}

// Hex converts a named colour to #RRGGBB. Unknown names resolve to the hex
// value of Default.
func Hex(name string) string {
	if h, ok := hexByName[strings.ToLower(name)]; ok {
		return h
	}
	return hexByName[strings.ToLower(Default)]
}

// Package modification turns free-text change requests into structured
// modifications and applies them to stored design artifacts.
package modification

import (
	"regexp"
	"strconv"
	"strings"

	"archiplan/internal/types"
)

// Keyword priority: the first match wins.
var (
	actionKeywords  = []types.Action{types.ActionIncrease, types.ActionDecrease, types.ActionAdd, types.ActionRemove, types.ActionChange}
	elementKeywords = []types.Element{types.ElementRoom, types.ElementWindow, types.ElementDoor, types.ElementWall}
)

var dimensionPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:x|by)\s*(\d+(?:\.\d+)?)`)

// Parse extracts the action, element and optional dimensions from command.
// Unrecognized text yields the modify action with no element.
func Parse(command string, discipline types.Discipline) types.Modification {
	text := strings.ToLower(command)

	mod := types.Modification{
		Type:    discipline,
		Command: command,
		Action:  types.ActionModify,
	}
	for _, a := range actionKeywords {
		if strings.Contains(text, string(a)) {
			mod.Action = a
			break
		}
	}
	for _, e := range elementKeywords {
		if strings.Contains(text, string(e)) {
			mod.Parameters.Element = e
			break
		}
	}
	if m := dimensionPattern.FindStringSubmatch(text); m != nil {
		w, errW := strconv.ParseFloat(m[1], 64)
		h, errH := strconv.ParseFloat(m[2], 64)
		if errW == nil && errH == nil {
			mod.Parameters.Dimensions = &[2]float64{w, h}
		}
	}
	return mod
}

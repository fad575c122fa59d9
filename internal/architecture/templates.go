// Package architecture synthesizes the 2D floor plan, elevations, sections and
// the 3D massing model of a project from its requirements, climate and style.
//
// Every function in this package is pure: the same inputs always produce the
// same artifact, and no function performs I/O.
package architecture

import "archiplan/internal/types"

type roomTemplate struct {
	subtype string
	rooms   []string
}

// roomTemplates lists the room programme of each project type. The first
// subtype of a type is its default.
var roomTemplates = map[types.ProjectType][]roomTemplate{
	types.ProjectResidential: {
		{subtype: "house", rooms: []string{"living_room", "kitchen", "bedroom", "bathroom"}},
		{subtype: "apartment", rooms: []string{"living_room", "kitchen", "bedroom", "bathroom"}},
	},
	types.ProjectCommercial: {
		{subtype: "office", rooms: []string{"reception", "office", "meeting_room", "break_room"}},
		{subtype: "retail", rooms: []string{"showroom", "storage", "office", "restroom"}},
	},
	types.ProjectInstitutional: {
		{subtype: "hospital", rooms: []string{"reception", "patient_room", "surgery", "lab"}},
		{subtype: "school", rooms: []string{"classroom", "office", "library", "gym"}},
	},
}

// RoomProgramme returns the ordered room names for a project type and subtype.
// An unknown or empty subtype selects the type's first template. Types without
// templates return nil.
func RoomProgramme(projectType types.ProjectType, subtype string) []string {
	templates := roomTemplates[projectType]
	if len(templates) == 0 {
		return nil
	}
	chosen := templates[0]
	for _, t := range templates {
		if t.subtype == subtype {
			chosen = t
			break
		}
	}
	out := make([]string, len(chosen.rooms))
	copy(out, chosen.rooms)
	return out
}

// styleMaterials is shared by elevations and the 3D palette.
var styleMaterials = map[types.StyleName][]string{
	types.StyleTraditional:   {"brick", "stone", "wood"},
	types.StyleModern:        {"concrete", "glass", "steel"},
	types.StyleContemporary:  {"recycled_materials", "smart_materials"},
	types.StyleMediterranean: {"stucco", "tile", "stone"},
	types.StyleColonial:      {"brick", "wood", "stone"},
}

// StyleMaterials returns the façade materials for a style.
func StyleMaterials(style types.StyleName) []string {
	m, ok := styleMaterials[style]
	if !ok {
		m = []string{"concrete", "glass"}
	}
	out := make([]string, len(m))
	copy(out, m)
	return out
}

// primaryStyle treats an unclassified profile as Modern.
func primaryStyle(s types.StyleProfile) types.StyleName {
	if s.PrimaryStyle == "" {
		return types.StyleModern
	}
	return s.PrimaryStyle
}

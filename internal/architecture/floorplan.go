package architecture

import (
	"math"
	"strings"

	"archiplan/internal/types"
)

const (
	// maxRowWidth is where the packing cursor wraps to a new row, in metres.
	maxRowWidth = 20.0
	roomGap     = 1.0
	aspectRatio = 1.2

	// Climate tags are matched as case-sensitive substrings of the
	// recommendation text. Empty recommendation lists leave rooms untagged.
	insulationTag  = "High-performance insulation"
	ventilationTag = "Enhanced ventilation"
)

// RoomMultiplier is the area weighting applied to a room's equal share.
func RoomMultiplier(name string) float64 {
	switch name {
	case "living_room", "kitchen":
		return 1.5
	case "bedroom", "office":
		return 1.2
	case "bathroom", "storage":
		return 0.5
	default:
		return 1.0
	}
}

// SizeRooms allocates surfaceArea over the named rooms. Each room gets
// surfaceArea/len(names) scaled by its multiplier, so the total is not
// expected to equal surfaceArea.
func SizeRooms(names []string, surfaceArea float64) []float64 {
	if len(names) == 0 {
		return nil
	}
	base := surfaceArea / float64(len(names))
	sizes := make([]float64, len(names))
	for i, name := range names {
		sizes[i] = base * RoomMultiplier(name)
	}
	return sizes
}

// PackRooms places rooms left to right, wrapping once the cursor passes the
// maximum row width.
func PackRooms(names []string, sizes []float64) types.Rooms {
	rooms := make(types.Rooms, 0, len(names))
	var x, y float64
	for i, name := range names {
		size := sizes[i]
		var w, h float64
		if size > 0 {
			w = math.Sqrt(size * aspectRatio)
			h = size / w
		}
		rooms = append(rooms, types.Room{
			Name:       name,
			Position:   [2]float64{x, y},
			Dimensions: [2]float64{w, h},
			Area:       size,
		})
		x += w + roomGap
		if x > maxRowWidth {
			x = 0
			y += h + roomGap
		}
	}
	return rooms
}

// SynthesizeFloorPlan produces the 2D layout. A project type without a room
// template yields a plan with no rooms.
func SynthesizeFloorPlan(req types.ProjectRequirements, climate types.ClimateProfile, style types.StyleProfile) types.FloorPlan {
	names := RoomProgramme(req.Type, req.Subtype())
	rooms := PackRooms(names, SizeRooms(names, req.SurfaceArea))

	recs := climate.Recommendations
	applyClimate(rooms, recs)
	orientation := solarOrientation(recs)

	return types.FloorPlan{
		Rooms:         rooms,
		Circulation:   circulation(rooms),
		Openings:      planOpenings(rooms, orientation),
		StyleFeatures: styleFeatures(primaryStyle(style)),
		Orientation:   orientation,
		OccupancyType: req.OccupancyType,
	}
}

func applyClimate(rooms types.Rooms, recs types.ArchitecturalRecommendations) {
	if len(recs.ThermalComfort) > 0 {
		level := "standard"
		if anyContains(recs.ThermalComfort, insulationTag) {
			level = "high"
		}
		for i := range rooms {
			rooms[i].Insulation = level
		}
	}
	if len(recs.Ventilation) > 0 {
		level := "standard"
		if anyContains(recs.Ventilation, ventilationTag) {
			level = "enhanced"
		}
		for i := range rooms {
			rooms[i].Ventilation = level
		}
	}
}

// solarOrientation is "south" when any orientation advice mentions south.
func solarOrientation(recs types.ArchitecturalRecommendations) string {
	if strings.Contains(strings.ToLower(strings.Join(recs.Orientation, " ")), "south") {
		return "south"
	}
	return "north"
}

func styleFeatures(style types.StyleName) *types.StyleFeatures {
	switch style {
	case types.StyleTraditional:
		return &types.StyleFeatures{Symmetry: "high", Proportions: "classical", Ornamentation: "moderate"}
	case types.StyleModern:
		return &types.StyleFeatures{Symmetry: "low", Proportions: "contemporary", Ornamentation: "minimal"}
	case types.StyleContemporary:
		return &types.StyleFeatures{Symmetry: "medium", Proportions: "dynamic", Ornamentation: "minimal"}
	default:
		return nil
	}
}

var fixedDoors = []types.Door{
	{Room: "living_room", Position: [2]float64{5, 0}, Width: 0.9},
	{Room: "kitchen", Position: [2]float64{10, 0}, Width: 0.9},
}

// circulation emits the two envelope corridors and the fixed doors whose
// room exists in the plan.
func circulation(rooms types.Rooms) types.Circulation {
	doors := make([]types.Door, 0, len(fixedDoors))
	for _, d := range fixedDoors {
		if rooms.Has(d.Room) {
			doors = append(doors, d)
		}
	}
	return types.Circulation{
		Corridors: []types.Corridor{
			{Start: [2]float64{0, 0}, End: [2]float64{maxRowWidth, 0}, Width: 1.2},
			{Start: [2]float64{0, 0}, End: [2]float64{0, maxRowWidth}, Width: 1.2},
		},
		Doors: doors,
	}
}

// planOpenings places one window on the top edge of every room.
func planOpenings(rooms types.Rooms, orientation string) types.Openings {
	windows := make([]types.Opening, 0, len(rooms))
	for _, r := range rooms {
		windows = append(windows, types.Opening{
			Room:        r.Name,
			Position:    [2]float64{r.Position[0], r.Position[1] + r.Dimensions[1]},
			Size:        [2]float64{2, 1.5},
			Orientation: orientation,
		})
	}
	return types.Openings{Windows: windows, Doors: []types.Opening{}}
}

func anyContains(tags []string, needle string) bool {
	for _, t := range tags {
		if strings.Contains(t, needle) {
			return true
		}
	}
	return false
}

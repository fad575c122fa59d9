package architecture

import "archiplan/internal/types"

const storeyHeight = 3.5

// SynthesizeElevations derives the front and side faces from the plan.
func SynthesizeElevations(plan types.FloorPlan, style types.StyleProfile) types.Elevations {
	primary := primaryStyle(style)
	return types.Elevations{
		Front: elevation(plan, primary),
		Side:  elevation(plan, primary),
	}
}

func elevation(plan types.FloorPlan, style types.StyleName) types.Elevation {
	openings := make([]types.Opening, 0, len(plan.Rooms))
	for _, r := range plan.Rooms {
		openings = append(openings, types.Opening{
			Type:     "window",
			Position: [2]float64{r.Position[0], 1.5},
			Size:     [2]float64{1.5, 1.2},
			Style:    "modern",
		})
	}
	return types.Elevation{
		Height:    storeyHeight,
		Style:     style,
		Materials: StyleMaterials(style),
		Openings:  openings,
	}
}

// SynthesizeSections returns the two identical cuts. Only Modern gets a flat roof.
func SynthesizeSections(style types.StyleProfile) types.Sections {
	roof := "pitched"
	if primaryStyle(style) == types.StyleModern {
		roof = "flat"
	}
	s := types.Section{
		Height:     storeyHeight,
		Structure:  "concrete_frame",
		Insulation: "high_performance",
		Roof:       roof,
	}
	return types.Sections{Longitudinal: s, Transverse: s}
}

// Synthesize2D builds the full 2D artifact: plan, elevations, sections and
// the parameters it was generated from.
func Synthesize2D(req types.ProjectRequirements, in types.SynthesisInput) *types.Design2D {
	plan := SynthesizeFloorPlan(req, in.Climate, in.Style)
	return &types.Design2D{
		FloorPlan:  plan,
		Elevations: SynthesizeElevations(plan, in.Style),
		Sections:   SynthesizeSections(in.Style),
		DesignParameters: types.DesignParameters{
			ProjectType:           req.Type,
			SurfaceArea:           req.SurfaceArea,
			Style:                 primaryStyle(in.Style),
			ClimateConsiderations: in.Climate.Recommendations,
		},
	}
}

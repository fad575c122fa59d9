package structural

import "archiplan/internal/types"

// Synthesize produces the complete structural design for a floor plan.
func Synthesize(plan types.FloorPlan, climate types.ClimateProfile) *types.StructuralDesign {
	a := Analyze(plan, climate)

	return &types.StructuralDesign{
		Analysis:    a,
		Foundation:  designFoundation(a),
		Frame:       designFrame(a),
		Roof:        designRoof(a),
		Connections: designConnections(a),
		Drawings: map[string]types.Drawing{
			"foundation_plan": {Type: "plan", Scale: "1:100", Source: []string{"foundation"}},
			"frame_plan":      {Type: "plan", Scale: "1:100", Source: []string{"frame"}},
			"roof_plan":       {Type: "plan", Scale: "1:100", Source: []string{"roof"}},
			"sections":        {Type: "section", Scale: "1:50", Source: []string{"foundation", "frame", "roof"}},
		},
		Specifications: types.StructuralSpecifications{
			Materials:             a.Materials,
			Loads:                 a.Loads,
			ClimateConsiderations: a.ClimateConsiderations,
			Codes:                 []string{"IBC", "ASCE", "AISC", "ACI"},
			Standards:             []string{"ASTM", "AISC", "ACI"},
		},
	}
}

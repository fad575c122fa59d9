package mep

import "archiplan/internal/types"

var (
	electricalSpec = types.DisciplineSpec{
		Codes:     []string{"NEC", "IBC"},
		Standards: []string{"IEEE", "UL"},
		Materials: []string{"copper", "aluminum", "steel"},
	}
	plumbingSpec = types.DisciplineSpec{
		Codes:     []string{"IPC", "IBC"},
		Standards: []string{"ASTM", "ANSI"},
		Materials: []string{"copper", "PVC", "cast_iron"},
	}
	hvacSpec = types.DisciplineSpec{
		Codes:     []string{"IMC", "IBC"},
		Standards: []string{"ASHRAE", "ARI"},
		Materials: []string{"steel", "aluminum", "copper"},
	}
	fireSpec = types.DisciplineSpec{
		Codes:     []string{"NFPA", "IBC"},
		Standards: []string{"UL", "FM"},
		Materials: []string{"steel", "copper", "PVC"},
	}
)

// Synthesize produces the complete MEP design for a floor plan.
func Synthesize(plan types.FloorPlan, climate types.ClimateProfile) *types.MEPDesign {
	d := &types.MEPDesign{
		Electrical:     designElectrical(plan, climate),
		Plumbing:       designPlumbing(plan, climate),
		HVAC:           designHVAC(plan, climate),
		FireProtection: designFireProtection(plan),
		Drawings:       make(map[string]types.Drawing, 4),
	}
	for _, name := range []string{"electrical", "plumbing", "hvac", "fire_protection"} {
		d.Drawings[name+"_plan"] = types.Drawing{Type: "plan", Scale: "1:100", Source: []string{name}}
	}
	d.Specifications = types.MEPSpecifications{
		Electrical:     d.Electrical.Specifications,
		Plumbing:       d.Plumbing.Specifications,
		HVAC:           d.HVAC.Specifications,
		FireProtection: d.FireProtection.Specifications,
	}
	return d
}

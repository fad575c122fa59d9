package mep

import (
	"strings"

	"archiplan/internal/types"
)

// PlumbingLoads counts fixtures from room names. A bathroom carries three
// fixtures (six units) and a kitchen two (three units).
func PlumbingLoads(rooms types.Rooms) types.PlumbingLoads {
	var l types.PlumbingLoads
	for _, r := range rooms {
		name := strings.ToLower(r.Name)
		switch {
		case strings.Contains(name, "bathroom"):
			l.FixtureCount += 3
			l.FixtureUnits += 6
		case strings.Contains(name, "kitchen"):
			l.FixtureCount += 2
			l.FixtureUnits += 3
		}
	}
	l.WaterDemand = float64(l.FixtureUnits) * 10
	l.PeakDemand = l.WaterDemand * 1.5
	return l
}

func waterSupply(l types.PlumbingLoads) types.WaterSupply {
	main, branch := 2.0, 1.0
	if l.WaterDemand > 50 {
		main = 4
	}
	if l.WaterDemand > 25 {
		branch = 2
	}
	return types.WaterSupply{
		MainLine:    types.SupplyLine{Size: main, Material: "copper", Pressure: 40},
		BranchLines: types.SupplyLine{Size: branch, Material: "copper", Pressure: 40},
		Valves:      types.Valves{MainShutoff: "ball_valve", FixtureShutoffs: "angle_valve"},
	}
}

func drainage(l types.PlumbingLoads) types.Drainage {
	main, branch := 3.0, 1.5
	if l.FixtureUnits > 20 {
		main = 4
	}
	if l.FixtureUnits > 10 {
		branch = 2
	}
	return types.Drainage{
		MainDrain:    types.DrainLine{Size: main, Material: "cast_iron", Slope: 0.02},
		BranchDrains: types.DrainLine{Size: branch, Material: "PVC", Slope: 0.02},
		Vents:        types.Vents{MainVent: "4_inch", BranchVents: "2_inch"},
	}
}

func fixtures(rooms types.Rooms) types.PlumbingFixtures {
	f := types.PlumbingFixtures{
		Bathroom: []types.PlumbingFixture{},
		Kitchen:  []types.PlumbingFixture{},
		Laundry:  []types.PlumbingFixture{},
	}
	for _, r := range rooms {
		name := strings.ToLower(r.Name)
		switch {
		case strings.Contains(name, "bathroom"):
			f.Bathroom = append(f.Bathroom,
				types.PlumbingFixture{Type: "toilet", Model: "standard", WaterSense: true},
				types.PlumbingFixture{Type: "lavatory", Model: "wall_mount", WaterSense: true},
				types.PlumbingFixture{Type: "shower", Model: "standard", WaterSense: true},
			)
		case strings.Contains(name, "kitchen"):
			f.Kitchen = append(f.Kitchen,
				types.PlumbingFixture{Type: "sink", Model: "double_bowl", WaterSense: true},
				types.PlumbingFixture{Type: "dishwasher", Model: "energy_star", WaterSense: true},
			)
		case strings.Contains(name, "laundry"):
			f.Laundry = append(f.Laundry,
				types.PlumbingFixture{Type: "washing_machine", Model: "high_efficiency", WaterSense: true},
				types.PlumbingFixture{Type: "dryer", Model: "energy_star", Gas: true},
			)
		}
	}
	return f
}

func waterHeating(l types.PlumbingLoads, climate types.ClimateProfile) types.WaterHeating {
	h := types.WaterHeating{Type: "tank", Size: 50, Fuel: "natural_gas", Efficiency: "high", Location: "basement"}
	if l.WaterDemand > 50 {
		h.Size = 80
	}
	if climate.Temperature() < 0 {
		h.Fuel = "electric"
	}
	return h
}

func designPlumbing(plan types.FloorPlan, climate types.ClimateProfile) types.Plumbing {
	loads := PlumbingLoads(plan.Rooms)
	return types.Plumbing{
		Loads:          loads,
		WaterSupply:    waterSupply(loads),
		Drainage:       drainage(loads),
		Fixtures:       fixtures(plan.Rooms),
		WaterHeating:   waterHeating(loads, climate),
		Specifications: plumbingSpec,
	}
}

package mep

import "archiplan/internal/types"

type hvacFactors struct {
	cooling, heating, ventilation float64
}

// hvacLoadFactors are kW/m² by occupancy.
var hvacLoadFactors = map[types.Occupancy]hvacFactors{
	types.OccupancyResidential: {1.0, 0.8, 0.35},
	types.OccupancyOffice:      {1.5, 1.2, 0.5},
	types.OccupancyRetail:      {2.0, 1.5, 0.3},
	types.OccupancyHospital:    {2.5, 2.0, 0.6},
	types.OccupancySchool:      {1.8, 1.3, 0.4},
}

// HVACLoads computes cooling, heating and ventilation loads adjusted for
// temperature and humidity.
func HVACLoads(plan types.FloorPlan, climate types.ClimateProfile) types.HVACLoads {
	area := plan.Rooms.TotalArea()
	occupancy := plan.Occupancy()
	f, ok := hvacLoadFactors[occupancy]
	if !ok {
		f = hvacLoadFactors[types.OccupancyResidential]
	}

	cooling := area * f.cooling
	heating := area * f.heating
	ventilation := area * f.ventilation

	temp := climate.Temperature()
	if temp > 25 {
		cooling *= 1.2
	} else if temp < 10 {
		heating *= 1.2
	}
	if climate.Humidity() > 70 {
		cooling *= 1.1
	}

	return types.HVACLoads{
		CoolingLoad:     cooling,
		HeatingLoad:     heating,
		VentilationLoad: ventilation,
		TotalLoad:       cooling + heating,
		OccupancyType:   occupancy,
	}
}

func designHVAC(plan types.FloorPlan, climate types.ClimateProfile) types.HVAC {
	loads := HVACLoads(plan, climate)

	heating := types.HeatingSystem{Type: "heat_pump", Size: loads.HeatingLoad, Fuel: "electric", Efficiency: "high", Distribution: "forced_air"}
	if loads.HeatingLoad > 5 {
		heating.Type = "boiler"
		heating.Fuel = "natural_gas"
	}
	cooling := types.CoolingSystem{Type: "split_system", Size: loads.CoolingLoad, Efficiency: "high", Refrigerant: "R410A", Distribution: "forced_air"}
	if loads.CoolingLoad > 5 {
		cooling.Type = "chiller"
	}

	return types.HVAC{
		Loads:   loads,
		Heating: heating,
		Cooling: cooling,
		Ventilation: types.Ventilation{
			Type:         "mechanical",
			Rate:         plan.Rooms.TotalArea() * 0.35,
			Efficiency:   "high",
			Filters:      "MERV_13",
			HeatRecovery: true,
		},
		Controls: types.HVACControls{
			Type:             "smart_thermostat",
			Zones:            4,
			Programming:      "7_day",
			RemoteAccess:     true,
			EnergyMonitoring: true,
		},
		Specifications: hvacSpec,
	}
}

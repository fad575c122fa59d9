// Package mep sizes the mechanical, electrical, plumbing and fire protection
// systems for a floor plan.
package mep

import (
	"math"

	"archiplan/internal/types"
)

// loadDensity is VA/m² by occupancy.
var loadDensity = map[types.Occupancy]float64{
	types.OccupancyResidential: 3,
	types.OccupancyOffice:      5,
	types.OccupancyRetail:      8,
	types.OccupancyHospital:    10,
	types.OccupancySchool:      6,
}

const (
	// maxFixturesPerRoom bounds the fixture list generated for one room.
	maxFixturesPerRoom = 5000

	fixtureWatts   = 32
	fixtureSpacing = 4
	fixtureHeight  = 9
)

func densityFor(o types.Occupancy) float64 {
	if d, ok := loadDensity[o]; ok {
		return d
	}
	return loadDensity[types.OccupancyResidential]
}

// hvacFactor scales the HVAC share of the electrical load by temperature.
func hvacFactor(temperature float64) float64 {
	switch {
	case temperature > 25:
		return 2.0
	case temperature < 10:
		return 1.5
	default:
		return 1.0
	}
}

// ElectricalLoads computes base, per-room and HVAC loads.
func ElectricalLoads(plan types.FloorPlan, climate types.ClimateProfile) types.ElectricalLoads {
	area := plan.Rooms.TotalArea()
	occupancy := plan.Occupancy()
	rate := densityFor(occupancy)

	rooms := make([]types.RoomLoad, 0, len(plan.Rooms))
	for _, r := range plan.Rooms {
		load := rate * r.Area
		rooms = append(rooms, types.RoomLoad{
			Room: r.Name,
			Area: r.Area,
			Load: load,
			Circuits: []types.Circuit{
				{Type: "lighting", Load: load * 0.3, Rating: 15, Voltage: 120},
				{Type: "receptacles", Load: load * 0.7, Rating: 20, Voltage: 120},
			},
		})
	}

	base := rate * area
	hvac := area * hvacFactor(climate.Temperature()) * 0.5
	return types.ElectricalLoads{
		TotalLoad:     base + hvac,
		BaseLoad:      base,
		HVACLoad:      hvac,
		RoomLoads:     rooms,
		OccupancyType: occupancy,
	}
}

func distribution(loads types.ElectricalLoads) types.Distribution {
	return types.Distribution{
		MainPanel: types.Panel{Size: ceilCount(loads.TotalLoad/1000, math.MaxInt32), Voltage: 240, Phases: 3},
		SubPanels: []types.SubPanel{
			{Type: "lighting", Size: 20, Voltage: 120, Circuits: 12},
			{Type: "receptacles", Size: 30, Voltage: 120, Circuits: 16},
			{Type: "hvac", Size: 40, Voltage: 240, Circuits: 8},
		},
		Feeders: []types.Feeder{
			{Type: "main", Size: 4, Voltage: 240, Current: ceilCount(loads.TotalLoad/240, math.MaxInt32)},
			{Type: "branch", Size: 12, Voltage: 120, Current: 20},
		},
	}
}

// LightingDensity returns W/m² for the site's mean solar irradiance.
func LightingDensity(climate types.ClimateProfile) float64 {
	solar, ok := types.MonthlyMean(climate.HistoricalData.SolarIrradiance)
	if !ok {
		solar = 1000
	}
	if solar > 1000 {
		return 0.5
	}
	return 1.0
}

func lighting(plan types.FloorPlan, climate types.ClimateProfile) types.LightingDesign {
	density := LightingDensity(climate)

	rooms := make([]types.RoomLighting, 0, len(plan.Rooms))
	for _, r := range plan.Rooms {
		watts := r.Area * density
		fixtures := make([]types.LightFixture, ceilCount(watts/fixtureWatts, maxFixturesPerRoom))
		for i := range fixtures {
			fixtures[i] = types.LightFixture{
				Type:     "LED_fixture",
				Watts:    fixtureWatts,
				Position: [2]float64{float64(i * fixtureSpacing), 0},
				Height:   fixtureHeight,
			}
		}
		rooms = append(rooms, types.RoomLighting{
			Room:            r.Name,
			Area:            r.Area,
			LightingDensity: density,
			TotalWatts:      watts,
			Fixtures:        fixtures,
		})
	}

	return types.LightingDesign{
		RoomLighting: rooms,
		EmergencyLighting: types.EmergencyLighting{
			ExitLighting:      types.BackupLight{Type: "LED_exit_sign", Watts: 5, BatteryBackup: "90_minutes"},
			EmergencyFixtures: types.BackupLight{Type: "LED_emergency", Watts: 10, BatteryBackup: "90_minutes"},
		},
		ExteriorLighting: types.ExteriorLighting{
			SecurityLighting:  types.ExteriorLight{Type: "LED_security", Watts: 50, MotionSensor: true},
			LandscapeLighting: types.ExteriorLight{Type: "LED_landscape", Watts: 20, SolarPowered: true},
		},
	}
}

func designElectrical(plan types.FloorPlan, climate types.ClimateProfile) types.Electrical {
	loads := ElectricalLoads(plan, climate)
	return types.Electrical{
		Loads:        loads,
		Distribution: distribution(loads),
		Lighting:     lighting(plan, climate),
		PowerSystems: types.PowerSystems{
			MainService: types.Panel{Size: 200, Voltage: 240, Phases: 3},
			Generator:   types.Generator{Size: 50, Fuel: "natural_gas", AutomaticTransfer: true},
			UPS:         types.UPS{Size: 10, BatteryBackup: "30_minutes"},
		},
		EmergencySystems: types.EmergencySystems{
			FireAlarm:      types.AlarmPanel{Type: "addressable", Zones: 4, BatteryBackup: "24_hours"},
			EmergencyPower: types.EmergencyPower{Type: "generator", Size: 25, Fuel: "natural_gas"},
			ExitLighting:   types.BackupLight{Type: "LED", BatteryBackup: "90_minutes"},
		},
		Specifications: electricalSpec,
	}
}

// ceilCount rounds v up to a whole count in [0, limit]. NaN and
// non-positive values count as zero.
func ceilCount(v float64, limit int) int {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if c := math.Ceil(v); c < float64(limit) {
		return int(c)
	}
	return limit
}

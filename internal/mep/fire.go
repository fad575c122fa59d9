package mep

import (
	"math"

	"archiplan/internal/types"
)

func designFireProtection(plan types.FloorPlan) types.FireProtection {
	area := plan.Rooms.TotalArea()
	n := len(plan.Rooms)

	return types.FireProtection{
		SprinklerSystem: types.SprinklerSystem{
			Type:        "wet_pipe",
			Sprinklers:  ceilCount(area/100, math.MaxInt32),
			Coverage:    100,
			WaterSupply: "municipal",
			Pressure:    50,
		},
		FireAlarm: types.FireAlarm{
			Type:          "addressable",
			Zones:         n,
			Detectors:     2 * n,
			PullStations:  2,
			Horns:         n,
			BatteryBackup: "24_hours",
		},
		FireSuppression: types.FireSuppression{
			Type:       "sprinkler",
			Coverage:   "total",
			Activation: "automatic",
			Monitoring: "central_station",
		},
		Specifications: fireSpec,
	}
}

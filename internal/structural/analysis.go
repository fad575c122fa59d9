// Package structural derives a structural design from a floor plan and the
// site climate: loads, frame system, spans, foundation and member sizing.
package structural

import (
	"math"
	"strings"

	"archiplan/internal/types"
)

const (
	deadLoadFactor    = 4.4
	seismicLoadFactor = 0.1
	snowLoadFactor    = 0.1
	airDensity        = 1.225
)

// liveLoadFactors are kN/m² by occupancy.
var liveLoadFactors = map[types.Occupancy]float64{
	types.OccupancyResidential: 2.0,
	types.OccupancyOffice:      2.5,
	types.OccupancyRetail:      4.0,
	types.OccupancyHospital:    3.0,
	types.OccupancySchool:      3.0,
}

// Loads computes the design loads for a floor of the given area.
func Loads(area float64, occupancy types.Occupancy, climate types.ClimateProfile) types.StructuralLoads {
	live, ok := liveLoadFactors[occupancy]
	if !ok {
		live = liveLoadFactors[types.OccupancyResidential]
	}
	ws := climate.WindSpeed()

	l := types.StructuralLoads{
		Dead:    deadLoadFactor * area,
		Live:    live * area,
		Wind:    0.5 * airDensity * ws * ws / 1000 * area,
		Seismic: seismicLoadFactor * area,
	}
	if precip, ok := types.MonthlyMean(climate.HistoricalData.PrecipitationData); ok {
		l.Snow = precip * snowLoadFactor * area
	}
	l.Total = l.Dead + l.Live + l.Wind + l.Seismic + l.Snow
	return l
}

// SelectSystem picks the frame system for a load intensity in kN/m².
func SelectSystem(intensity float64) types.StructuralSystem {
	switch {
	case intensity < 5:
		return types.SystemWoodFrame
	case intensity < 10:
		return types.SystemSteelFrame
	default:
		return types.SystemConcreteFrame
	}
}

// RoomSpans takes the longer side of every room as its span.
func RoomSpans(rooms types.Rooms) types.Spans {
	s := types.Spans{SpanDistribution: make([]types.RoomSpan, 0, len(rooms))}
	if len(rooms) == 0 {
		return s
	}
	var sum float64
	for _, r := range rooms {
		span := math.Max(r.Dimensions[0], r.Dimensions[1])
		s.SpanDistribution = append(s.SpanDistribution, types.RoomSpan{Room: r.Name, Span: span})
		s.MaxSpan = math.Max(s.MaxSpan, span)
		sum += span
	}
	s.AverageSpan = sum / float64(len(rooms))
	return s
}

func selectMaterials(advice string) types.StructuralMaterials {
	m := types.StructuralMaterials{Concrete: "standard", Steel: "standard", Wood: "standard"}
	if strings.Contains(advice, "humidity") {
		m.Wood = "treated"
		m.Concrete = "waterproof"
		m.Steel = "galvanized"
	}
	if strings.Contains(advice, "temperature") {
		m.Concrete = "insulated"
		m.Steel = "insulated"
	}
	return m
}

func climateConsiderations(advice string) types.ClimateConsiderations {
	level := func(keyword, raised string) string {
		if strings.Contains(advice, keyword) {
			return raised
		}
		return "standard"
	}
	return types.ClimateConsiderations{
		ThermalExpansion:   level("temperature", "high"),
		MoistureProtection: level("humidity", "enhanced"),
		WindResistance:     level("wind", "high"),
		SeismicResistance:  level("seismic", "high"),
	}
}

// Analyze runs the structural analysis of a floor plan.
func Analyze(plan types.FloorPlan, climate types.ClimateProfile) types.StructuralAnalysis {
	area := plan.Rooms.TotalArea()
	occupancy := plan.Occupancy()
	loads := Loads(area, occupancy, climate)

	var intensity float64
	if area > 0 {
		intensity = loads.Total / area
	}
	advice := strings.ToLower(climate.Recommendations.Text())

	return types.StructuralAnalysis{
		Loads:                 loads,
		StructuralSystem:      SelectSystem(intensity),
		Spans:                 RoomSpans(plan.Rooms),
		Materials:             selectMaterials(advice),
		ClimateConsiderations: climateConsiderations(advice),
		OccupancyType:         occupancy,
	}
}

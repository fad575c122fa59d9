package structural

import (
	"math"

	"archiplan/internal/types"
)

const columnHeight = 3.5

// SelectFoundation picks the foundation type for a total load in kN.
func SelectFoundation(totalLoad float64) types.FoundationType {
	switch {
	case totalLoad < 1000:
		return types.FoundationShallow
	case totalLoad < 5000:
		return types.FoundationDeep
	default:
		return types.FoundationPile
	}
}

func designFoundation(a types.StructuralAnalysis) types.Foundation {
	kind := SelectFoundation(a.Loads.Total)
	area := a.Loads.Total / 200

	var el types.FoundationElement
	switch kind {
	case types.FoundationShallow:
		el = types.FoundationElement{Type: "footing", Width: math.Sqrt(area / 4), Depth: 0.5, Reinforcement: "standard"}
	case types.FoundationDeep:
		el = types.FoundationElement{Type: "deep_foundation", Diameter: 0.6, Depth: 3.0, Reinforcement: "high"}
	default:
		el = types.FoundationElement{Type: "pile", Diameter: 0.4, Depth: 6.0, Reinforcement: "high"}
	}

	return types.Foundation{
		Type:     kind,
		Area:     area,
		Elements: []types.FoundationElement{el},
		Specifications: types.ComponentSpec{
			Type:       string(kind),
			Area:       area,
			Materials:  []string{"concrete", "steel", "insulation"},
			References: []string{"ACI 318", "IBC"},
		},
	}
}

// member holds the per-system sizing rules.
type member struct {
	beamType      string
	spanDivisor   float64
	beamWidth     float64
	columnType    string
	columnSize    float64
	material      string
	grade         string
	jointType     string
	jointMethod   string
	jointStrength string
}

var members = map[types.StructuralSystem]member{
	types.SystemSteelFrame: {
		beamType: "steel_beam", spanDivisor: 20, beamWidth: 0.2,
		columnType: "steel_column", columnSize: 0.2,
		material: "steel", grade: "S275",
		jointType: "steel_connection", jointMethod: "welded", jointStrength: "full_strength",
	},
	types.SystemConcreteFrame: {
		beamType: "concrete_beam", spanDivisor: 12, beamWidth: 0.3,
		columnType: "concrete_column", columnSize: 0.3,
		material: "concrete", grade: "C25",
		jointType: "concrete_connection", jointMethod: "monolithic", jointStrength: "full_strength",
	},
	types.SystemWoodFrame: {
		beamType: "wood_beam", spanDivisor: 15, beamWidth: 0.2,
		columnType: "wood_column", columnSize: 0.2,
		material: "wood", grade: "C24",
		jointType: "wood_connection", jointMethod: "bolted", jointStrength: "partial_strength",
	},
}

func memberFor(system types.StructuralSystem) member {
	if m, ok := members[system]; ok {
		return m
	}
	return members[types.SystemWoodFrame]
}

func beamColumnConnection(m member) types.Connection {
	return types.Connection{Type: m.jointType, Method: m.jointMethod, Strength: m.jointStrength}
}

func designFrame(a types.StructuralAnalysis) types.Frame {
	m := memberFor(a.StructuralSystem)
	span := a.Spans.MaxSpan
	depth := span / m.spanDivisor

	return types.Frame{
		System: a.StructuralSystem,
		Beams: []types.Beam{{
			Type:     m.beamType,
			Depth:    depth,
			Width:    m.beamWidth,
			Span:     span,
			Material: m.material,
			Grade:    m.grade,
			Size:     depth,
		}},
		Columns: []types.Column{{
			Type:     m.columnType,
			Size:     m.columnSize,
			Height:   columnHeight,
			Material: m.material,
			Grade:    m.grade,
		}},
		Connections: []types.Connection{beamColumnConnection(m)},
		Specifications: types.ComponentSpec{
			System:     string(a.StructuralSystem),
			MaxSpan:    span,
			Materials:  []string{"steel", "concrete", "wood"},
			References: []string{"AISC", "ACI", "NDS"},
		},
	}
}

func roofConnection() types.Connection {
	return types.Connection{Type: "roof_connection", Method: "welded", Strength: "full_strength"}
}

func designRoof(a types.StructuralAnalysis) types.Roof {
	span := a.Spans.MaxSpan
	depth := span / 20
	return types.Roof{
		Beams: []types.Beam{{
			Type:     "roof_beam",
			Depth:    depth,
			Width:    0.2,
			Span:     span,
			Material: "steel",
			Grade:    "S275",
			Size:     depth,
		}},
		Deck: types.RoofDeck{
			Type:       "steel_deck",
			Thickness:  0.075,
			Span:       span,
			Material:   "steel",
			Insulation: "standard",
		},
		Connections: []types.Connection{roofConnection()},
		Specifications: types.ComponentSpec{
			MaxSpan:    span,
			Materials:  []string{"steel", "insulation", "membrane"},
			References: []string{"AISC", "ASTM"},
		},
	}
}

func designConnections(a types.StructuralAnalysis) types.Connections {
	bc := beamColumnConnection(memberFor(a.StructuralSystem))
	bc.Details = "standard"
	roof := roofConnection()
	roof.Details = "standard"

	return types.Connections{
		BeamColumn: []types.Connection{bc},
		Foundation: []types.Connection{{
			Type:     "foundation_connection",
			Method:   "embedded",
			Strength: "full_strength",
			Details:  "standard",
		}},
		Roof: []types.Connection{roof},
		Specifications: types.ComponentSpec{
			System:     string(a.StructuralSystem),
			Materials:  []string{"steel", "concrete", "wood"},
			References: []string{"AISC", "ACI", "NDS"},
		},
	}
}

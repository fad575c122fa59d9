package types

// StructuralLoads are in kN over the whole floor area.
type StructuralLoads struct {
	Dead    float64 `json:"dead"`
	Live    float64 `json:"live"`
	Wind    float64 `json:"wind"`
	Seismic float64 `json:"seismic"`
	Snow    float64 `json:"snow"`
	Total   float64 `json:"total"`
}

type RoomSpan struct {
	Room string  `json:"room"`
	Span float64 `json:"span"`
}

type Spans struct {
	MaxSpan          float64    `json:"max_span"`
	AverageSpan      float64    `json:"average_span"`
	SpanDistribution []RoomSpan `json:"span_distribution"`
}

// StructuralMaterials records the treatment chosen for each primary material.
type StructuralMaterials struct {
	Concrete string `json:"concrete"`
	Steel    string `json:"steel"`
	Wood     string `json:"wood"`
}

type ClimateConsiderations struct {
	ThermalExpansion   string `json:"thermal_expansion"`
	MoistureProtection string `json:"moisture_protection"`
	WindResistance     string `json:"wind_resistance"`
	SeismicResistance  string `json:"seismic_resistance"`
}

type StructuralAnalysis struct {
	Loads                 StructuralLoads       `json:"loads"`
	StructuralSystem      StructuralSystem      `json:"structural_system"`
	Spans                 Spans                 `json:"spans"`
	Materials             StructuralMaterials   `json:"materials"`
	ClimateConsiderations ClimateConsiderations `json:"climate_considerations"`
	OccupancyType         Occupancy             `json:"occupancy_type"`
}

// FoundationElement is a footing, deep foundation or pile. Footings set Width;
// the other types set Diameter.
type FoundationElement struct {
	Type          string  `json:"type"`
	Width         float64 `json:"width,omitempty"`
	Diameter      float64 `json:"diameter,omitempty"`
	Depth         float64 `json:"depth"`
	Reinforcement string  `json:"reinforcement"`
}

// ComponentSpec is the specification sheet attached to a structural component.
type ComponentSpec struct {
	Type       string   `json:"type,omitempty"`
	System     string   `json:"system,omitempty"`
	Area       float64  `json:"area,omitempty"`
	MaxSpan    float64  `json:"max_span,omitempty"`
	Materials  []string `json:"materials"`
	References []string `json:"specifications"`
}

type Foundation struct {
	Type           FoundationType      `json:"type"`
	Area           float64             `json:"area"`
	Elements       []FoundationElement `json:"elements"`
	Specifications ComponentSpec       `json:"specifications"`
}

// Beam is a frame or roof beam. Size mirrors Depth; structural modifications
// scale both.
type Beam struct {
	Type     string  `json:"type"`
	Depth    float64 `json:"depth"`
	Width    float64 `json:"width"`
	Span     float64 `json:"span"`
	Material string  `json:"material"`
	Grade    string  `json:"grade"`
	Size     float64 `json:"size"`
}

type Column struct {
	Type     string  `json:"type"`
	Size     float64 `json:"size"`
	Height   float64 `json:"height"`
	Material string  `json:"material"`
	Grade    string  `json:"grade"`
}

type Connection struct {
	Type     string `json:"type"`
	Method   string `json:"method"`
	Strength string `json:"strength"`
	Details  string `json:"details,omitempty"`
}

type Frame struct {
	System         StructuralSystem `json:"system"`
	Beams          []Beam           `json:"beams"`
	Columns        []Column         `json:"columns"`
	Connections    []Connection     `json:"connections"`
	Specifications ComponentSpec    `json:"specifications"`
}

type RoofDeck struct {
	Type       string  `json:"type"`
	Thickness  float64 `json:"thickness"`
	Span       float64 `json:"span"`
	Material   string  `json:"material"`
	Insulation string  `json:"insulation"`
}

type Roof struct {
	Beams          []Beam        `json:"beams"`
	Deck           RoofDeck      `json:"deck"`
	Connections    []Connection  `json:"connections"`
	Specifications ComponentSpec `json:"specifications"`
}

type Connections struct {
	BeamColumn     []Connection  `json:"beam_column"`
	Foundation     []Connection  `json:"foundation"`
	Roof           []Connection  `json:"roof"`
	Specifications ComponentSpec `json:"specifications"`
}

// Drawing is a reference to a generated drawing sheet. Source names the
// design section the sheet is drawn from.
type Drawing struct {
	Type   string   `json:"type"`
	Scale  string   `json:"scale"`
	Source []string `json:"source"`
}

type StructuralSpecifications struct {
	Materials             StructuralMaterials   `json:"materials"`
	Loads                 StructuralLoads       `json:"loads"`
	ClimateConsiderations ClimateConsiderations `json:"climate_considerations"`
	Codes                 []string              `json:"codes"`
	Standards             []string              `json:"standards"`
}

// StructuralDesign is the stored structural artifact.
type StructuralDesign struct {
	Analysis       StructuralAnalysis       `json:"analysis"`
	Foundation     Foundation               `json:"foundation"`
	Frame          Frame                    `json:"frame"`
	Roof           Roof                     `json:"roof"`
	Connections    Connections              `json:"connections"`
	Drawings       map[string]Drawing       `json:"drawings"`
	Specifications StructuralSpecifications `json:"specifications"`
}

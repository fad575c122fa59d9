package types

// CostLine is one priced quantity of an estimate.
type CostLine struct {
	Item         string  `json:"item"`
	Quantity     float64 `json:"quantity"`
	UnitCost     float64 `json:"unit_cost"`
	RegionalUnit float64 `json:"regional_unit_cost"`
	Total        float64 `json:"total"`
}

// CostCategory groups the lines of one cost category.
type CostCategory struct {
	Lines []CostLine `json:"lines"`
	Total float64    `json:"total"`
}

type Overhead struct {
	Percentage float64 `json:"percentage"`
	Amount     float64 `json:"amount"`
}

// CostShare is one category's share of the total.
type CostShare struct {
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

type CostSummary struct {
	Distribution    map[string]CostShare `json:"distribution"`
	CostPerSqm      float64              `json:"cost_per_sqm"`
	Recommendations []string             `json:"recommendations"`
}

// CostEstimate is the priced bill of quantities for a project.
type CostEstimate struct {
	ProjectID string       `json:"project_id"`
	Region    string       `json:"region"`
	Currency  string       `json:"currency"`
	Materials CostCategory `json:"materials"`
	Labor     CostCategory `json:"labor"`
	Equipment CostCategory `json:"equipment"`
	Overhead  Overhead     `json:"overhead"`
	Total     float64      `json:"total"`
	Summary   CostSummary  `json:"summary"`
}

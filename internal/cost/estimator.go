// Package cost prices a project's designs into a regional bill of quantities.
package cost

import (
	"strings"

	"archiplan/internal/types"
)

const (
	DefaultRegion   = "north_america"
	DefaultCurrency = "USD"

	baseOverheadPct = 15.0
)

type regionalFactors struct {
	material, labor, equipment, overhead float64
}

var regions = map[string]regionalFactors{
	"north_america": {1.0, 1.0, 1.0, 1.2},
	"europe":        {1.1, 1.2, 1.1, 1.3},
	"asia":          {0.8, 0.6, 0.9, 1.1},
}

var currencies = map[string]float64{
	"USD": 1.0,
	"EUR": 0.85,
	"GBP": 0.75,
}

// Unit costs and rates are USD.
var (
	materialUnitCost = map[string]float64{
		"brick":               50,
		"concrete":            100,
		"steel":               800,
		"glass":               200,
		"wood":                300,
		"electrical_wire":     5,
		"electrical_fixtures": 50,
		"plumbing_fixtures":   200,
	}
	laborRate = map[string]float64{
		"carpenter":   50,
		"electrician": 60,
		"plumber":     55,
		"painter":     40,
		"mason":       45,
	}
	equipmentRate = map[string]float64{
		"excavator":      500,
		"crane":          800,
		"concrete_mixer": 200,
		"scaffolding":    100,
	}
)

type quantity struct {
	item string
	qty  float64
}

// Input is everything an estimate is computed from.
type Input struct {
	ProjectID   string
	SurfaceArea float64
	Plan        types.FloorPlan
	MEP         *types.MEPDesign
	Region      string
	Currency    string
}

// Estimate prices the quantities implied by the floor plan and, when present,
// the MEP design. Unknown regions and currencies fall back to the defaults.
func Estimate(in Input) *types.CostEstimate {
	region := strings.ToLower(strings.TrimSpace(in.Region))
	factors, ok := regions[region]
	if !ok {
		region = DefaultRegion
		factors = regions[DefaultRegion]
	}
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	fx, ok := currencies[currency]
	if !ok {
		currency = DefaultCurrency
		fx = currencies[DefaultCurrency]
	}

	area := in.Plan.Rooms.TotalArea()
	materials := []quantity{
		{"brick", 0.1 * area},
		{"concrete", 0.05 * area},
		{"steel", 0.02 * area},
		{"glass", 0.1 * area},
		{"wood", 0.05 * area},
	}
	labor := map[string]float64{
		"carpenter":   2 * area,
		"electrician": 1.5 * area,
		"plumber":     area,
		"painter":     1.5 * area,
		"mason":       3 * area,
	}
	if in.MEP != nil {
		fixtures := float64(in.MEP.Electrical.Lighting.FixtureCount())
		plumbing := float64(in.MEP.Plumbing.Loads.FixtureCount)
		materials = append(materials,
			quantity{"electrical_wire", 0.1 * in.MEP.Electrical.Loads.TotalLoad},
			quantity{"electrical_fixtures", fixtures},
			quantity{"plumbing_fixtures", plumbing},
		)
		labor["electrician"] += 2 * fixtures
		labor["plumber"] += 3 * plumbing
	}
	laborHours := []quantity{
		{"carpenter", labor["carpenter"]},
		{"electrician", labor["electrician"]},
		{"plumber", labor["plumber"]},
		{"painter", labor["painter"]},
		{"mason", labor["mason"]},
	}
	equipmentDays := []quantity{
		{"excavator", 0.1 * area},
		{"crane", 0.05 * area},
		{"concrete_mixer", 0.2 * area},
		{"scaffolding", 0.3 * area},
	}

	est := &types.CostEstimate{
		ProjectID: in.ProjectID,
		Region:    region,
		Currency:  currency,
		Materials: price(materials, materialUnitCost, fx*factors.material),
		Labor:     price(laborHours, laborRate, fx*factors.labor),
		Equipment: price(equipmentDays, equipmentRate, fx*factors.equipment),
	}

	base := est.Materials.Total + est.Labor.Total + est.Equipment.Total
	pct := baseOverheadPct * factors.overhead
	est.Overhead = types.Overhead{Percentage: pct, Amount: base * pct / 100}
	est.Total = base + est.Overhead.Amount
	est.Summary = summarize(est, in.SurfaceArea)
	return est
}

func price(qs []quantity, units map[string]float64, multiplier float64) types.CostCategory {
	c := types.CostCategory{Lines: make([]types.CostLine, 0, len(qs))}
	for _, q := range qs {
		unit := units[q.item]
		regional := unit * multiplier
		line := types.CostLine{
			Item:         q.item,
			Quantity:     q.qty,
			UnitCost:     unit,
			RegionalUnit: regional,
			Total:        q.qty * regional,
		}
		c.Lines = append(c.Lines, line)
		c.Total += line.Total
	}
	return c
}

func summarize(est *types.CostEstimate, surfaceArea float64) types.CostSummary {
	share := func(amount float64) types.CostShare {
		s := types.CostShare{Amount: amount}
		if est.Total > 0 {
			s.Percentage = amount / est.Total * 100
		}
		return s
	}

	s := types.CostSummary{
		Distribution: map[string]types.CostShare{
			"materials": share(est.Materials.Total),
			"labor":     share(est.Labor.Total),
			"equipment": share(est.Equipment.Total),
			"overhead":  share(est.Overhead.Amount),
		},
		Recommendations: []string{},
	}
	if surfaceArea > 0 {
		s.CostPerSqm = est.Total / surfaceArea
	}

	m, l, e := est.Materials.Total, est.Labor.Total, est.Equipment.Total
	if m > l {
		s.Recommendations = append(s.Recommendations, "Consider using more cost-effective materials")
	}
	if l > m {
		s.Recommendations = append(s.Recommendations, "Consider prefabricated components to reduce labor costs")
	}
	if e > 0.5*m {
		s.Recommendations = append(s.Recommendations, "Consider renting equipment instead of purchasing")
	}
	return s
}

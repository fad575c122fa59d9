package cost

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archiplan/internal/types"
)

func plan(area float64) types.FloorPlan {
	return types.FloorPlan{Rooms: types.Rooms{{Name: "living_room", Area: area}}}
}

func TestEstimate_NorthAmericaUSD(t *testing.T) {
	est := Estimate(Input{ProjectID: "prj_1", SurfaceArea: 100, Plan: plan(100)})

	assert.Equal(t, "north_america", est.Region)
	assert.Equal(t, "USD", est.Currency)
	assert.InDelta(t, 6100.0, est.Materials.Total, 1e-6)
	assert.InDelta(t, 44000.0, est.Labor.Total, 1e-6)
	assert.InDelta(t, 16000.0, est.Equipment.Total, 1e-6)
	assert.InDelta(t, 18.0, est.Overhead.Percentage, 1e-9)
	assert.InDelta(t, 11898.0, est.Overhead.Amount, 1e-6)
	assert.InDelta(t, 77998.0, est.Total, 1e-6, "overhead is added once")

	assert.InDelta(t, 779.98, est.Summary.CostPerSqm, 1e-6)
	assert.Equal(t, []string{
		"Consider prefabricated components to reduce labor costs",
		"Consider renting equipment instead of purchasing",
	}, est.Summary.Recommendations)

	var pct float64
	for _, s := range est.Summary.Distribution {
		pct += s.Percentage
	}
	assert.InDelta(t, 100.0, pct, 1e-9)
}

func TestEstimate_RegionalAndCurrencyFactors(t *testing.T) {
	est := Estimate(Input{SurfaceArea: 100, Plan: plan(100), Region: "Europe", Currency: "eur"})

	assert.Equal(t, "europe", est.Region)
	assert.Equal(t, "EUR", est.Currency)
	assert.InDelta(t, 6100*0.85*1.1, est.Materials.Total, 1e-6)
	assert.InDelta(t, 44000*0.85*1.2, est.Labor.Total, 1e-6)

	steel := est.Materials.Lines[2]
	assert.Equal(t, "steel", steel.Item)
	assert.Equal(t, 800.0, steel.UnitCost)
	assert.InDelta(t, 800*0.85*1.1, steel.RegionalUnit, 1e-9)
	assert.InDelta(t, 19.5, est.Overhead.Percentage, 1e-9)
}

func TestEstimate_UnknownRegionAndCurrencyFallBack(t *testing.T) {
	est := Estimate(Input{SurfaceArea: 50, Plan: plan(50), Region: "antarctica", Currency: "XYZ"})
	assert.Equal(t, DefaultRegion, est.Region)
	assert.Equal(t, DefaultCurrency, est.Currency)
}

func TestEstimate_WithMEP(t *testing.T) {
	mep := &types.MEPDesign{
		Electrical: types.Electrical{
			Loads: types.ElectricalLoads{TotalLoad: 350},
			Lighting: types.LightingDesign{RoomLighting: []types.RoomLighting{
				{Fixtures: make([]types.LightFixture, 3)},
			}},
		},
		Plumbing: types.Plumbing{Loads: types.PlumbingLoads{FixtureCount: 5}},
	}
	est := Estimate(Input{SurfaceArea: 100, Plan: plan(100), MEP: mep})

	require.Len(t, est.Materials.Lines, 8)
	assert.InDelta(t, 6100+35*5+3*50+5*200, est.Materials.Total, 1e-6)
	electrician := est.Labor.Lines[1]
	assert.Equal(t, "electrician", electrician.Item)
	assert.InDelta(t, 156.0, electrician.Quantity, 1e-9)
	assert.InDelta(t, 115.0, est.Labor.Lines[2].Quantity, 1e-9)
}

func TestEstimate_EmptyPlan(t *testing.T) {
	est := Estimate(Input{Plan: types.FloorPlan{}})
	assert.Zero(t, est.Total)
	assert.Zero(t, est.Summary.CostPerSqm)
	assert.Zero(t, est.Summary.Distribution["labor"].Percentage)
	assert.Empty(t, est.Summary.Recommendations)
}

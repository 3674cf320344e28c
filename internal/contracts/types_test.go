package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredictionRequest_NormalizeDefaults(t *testing.T) {
	var req PredictionRequest
	req.Normalize()

	assert.Equal(t, DomainProduction, req.TargetType)
	assert.Equal(t, 7, req.PredictionHorizon)
	assert.True(t, req.EnvironmentalEnabled())
	assert.Equal(t, 0.3, req.RiskThreshold)
}

func TestPredictionRequest_NormalizeThresholdFallback(t *testing.T) {
	for _, bad := range []float64{-0.2, 0, 1, 1.5} {
		req := PredictionRequest{RiskThreshold: bad}
		req.Normalize()
		assert.Equal(t, 0.3, req.RiskThreshold, "threshold %v", bad)
	}

	req := PredictionRequest{RiskThreshold: 0.55}
	req.Normalize()
	assert.Equal(t, 0.55, req.RiskThreshold)
}

func TestPredictionRequest_ExplicitEnvironmentalOptOut(t *testing.T) {
	disabled := false
	req := PredictionRequest{IncludeEnvironmentalFactors: &disabled}
	req.Normalize()
	assert.False(t, req.EnvironmentalEnabled())
}

func TestRecipeComplexity(t *testing.T) {
	require.InDelta(t, 2.0, RecipeComplexity(30, 30, "EASY", 0), 1e-9)
	require.InDelta(t, 2.5, RecipeComplexity(30, 30, "MEDIUM", 0), 1e-9)
	require.InDelta(t, 3.0, RecipeComplexity(30, 30, "HARD", 0), 1e-9)
	require.InDelta(t, 2.5, RecipeComplexity(30, 30, "EASY", 1500), 1e-9)

	// Capped at 5 no matter the inputs.
	require.InDelta(t, 5.0, RecipeComplexity(300, 300, "HARD", 2000), 1e-9)
}

func TestInventoryStatusScore(t *testing.T) {
	assert.Equal(t, 0.9, InventoryStatusScore("GOOD"))
	assert.Equal(t, 0.7, InventoryStatusScore("FAIR"))
	assert.Equal(t, 0.5, InventoryStatusScore("POOR"))
	assert.Equal(t, 0.3, InventoryStatusScore("REJECTED"))
	assert.Equal(t, 0.75, InventoryStatusScore("UNKNOWN"))
}

func TestDomainKnown(t *testing.T) {
	assert.True(t, DomainProduction.Known())
	assert.True(t, DomainInventory.Known())
	assert.True(t, DomainDistribution.Known())
	assert.False(t, Domain("warehouse").Known())
	assert.False(t, Domain("").Known())
}

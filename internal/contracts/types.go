package contracts

import (
	"math"
	"time"
)

type Domain string

const (
	DomainProduction   Domain = "production"
	DomainInventory    Domain = "inventory"
	DomainDistribution Domain = "distribution"
)

func (d Domain) Known() bool {
	switch d {
	case DomainProduction, DomainInventory, DomainDistribution:
		return true
	}
	return false
}

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// HistoricalRecord is a past outcome normalized into a common shape.
// Only the descriptor fields matching Domain are populated.
type HistoricalRecord struct {
	ID                  string    `json:"id"`
	Domain              Domain    `json:"domain"`
	CreatedAt           time.Time `json:"createdAt"`
	QualityScore        float64   `json:"qualityScore"`
	RecipeComplexity    float64   `json:"recipeComplexity,omitempty"`
	RawMaterialCategory string    `json:"rawMaterialCategory,omitempty"`
	TransitTimeHours    float64   `json:"transitTimeHours,omitempty"`
}

// LiveCondition describes the present state of one batch, item, or delivery.
// Derived fields (DaysUntilExpiry, DaysSinceCreated, TransitTimeHours,
// Complexity) are computed at load time, never stored.
type LiveCondition struct {
	ID     string `json:"id"`
	Domain Domain `json:"domain"`

	// production
	Status              string     `json:"status,omitempty"`
	PlannedQuantity     float64    `json:"plannedQuantity,omitempty"`
	ActualQuantity      float64    `json:"actualQuantity,omitempty"`
	StartedAt           *time.Time `json:"startedAt,omitempty"`
	CurrentQualityScore float64    `json:"currentQualityScore,omitempty"`
	Complexity          float64    `json:"complexity,omitempty"`

	// inventory
	Quantity            float64 `json:"quantity,omitempty"`
	RawMaterialCategory string  `json:"rawMaterialCategory,omitempty"`
	QualityStatus       string  `json:"qualityStatus,omitempty"`
	DaysSinceCreated    int     `json:"daysSinceCreated,omitempty"`
	DaysUntilExpiry     *int    `json:"daysUntilExpiry,omitempty"`

	// distribution
	PlannedTime      *time.Time `json:"plannedTime,omitempty"`
	TransitTimeHours float64    `json:"transitTimeHours,omitempty"`
}

// EnvironmentalSnapshot applies uniformly to every LiveCondition in one run.
type EnvironmentalSnapshot struct {
	Temperature      float64 `json:"temperature"`
	Humidity         float64 `json:"humidity"`
	AirQuality       float64 `json:"airQuality"`
	SeasonalFactor   float64 `json:"seasonalFactor"`
	WeatherCondition string  `json:"weatherCondition"`
}

// Factor is one calculator's contribution: multipliers compose
// multiplicatively on quality, increases compose additively on risk.
type Factor struct {
	QualityMultiplier float64 `json:"qualityMultiplier"`
	RiskIncrease      float64 `json:"riskIncrease"`
}

type FactorBreakdown struct {
	Environmental     Factor `json:"environmental"`
	TimeBased         Factor `json:"timeBased"`
	ConditionSpecific Factor `json:"conditionSpecific"`
}

type Prediction struct {
	ItemID                string          `json:"itemId"`
	ItemType              Domain          `json:"itemType"`
	CurrentQualityScore   float64         `json:"currentQualityScore"`
	PredictedQualityScore float64         `json:"predictedQualityScore"`
	QualityRisk           float64         `json:"qualityRisk"`
	RiskLevel             RiskLevel       `json:"riskLevel"`
	ConfidenceLevel       float64         `json:"confidenceLevel"`
	EstimatedLoss         int64           `json:"estimatedLoss"`
	Factors               FactorBreakdown `json:"factors"`
}

type Alert struct {
	ID             string    `json:"id"`
	ItemID         string    `json:"itemId"`
	ItemType       Domain    `json:"itemType"`
	Severity       string    `json:"severity"`
	RiskScore      float64   `json:"riskScore"`
	Message        string    `json:"message"`
	ActionRequired []string  `json:"actionRequired"`
	EstimatedLoss  int64     `json:"estimatedLoss"`
	CreatedAt      time.Time `json:"createdAt"`
}

type Recommendation struct {
	Type          string `json:"type"`
	Priority      string `json:"priority"`
	Message       string `json:"message"`
	AffectedItems int    `json:"affectedItems"`
	PotentialLoss int64  `json:"potentialLoss,omitempty"`
}

type PredictionSummary struct {
	TotalItemsAnalyzed  int     `json:"totalItemsAnalyzed"`
	HighRiskItems       int     `json:"highRiskItems"`
	MediumRiskItems     int     `json:"mediumRiskItems"`
	AverageQualityScore float64 `json:"averageQualityScore"`
	TotalPotentialLoss  int64   `json:"totalPotentialLoss"`
}

const (
	DefaultTargetType        = DomainProduction
	DefaultPredictionHorizon = 7
	DefaultRiskThreshold     = 0.3
)

type PredictionRequest struct {
	TargetType                  Domain   `json:"targetType"`
	TargetIDs                   []string `json:"targetIds"`
	PredictionHorizon           int      `json:"predictionHorizon"`
	IncludeEnvironmentalFactors *bool    `json:"includeEnvironmentalFactors"`
	RiskThreshold               float64  `json:"riskThreshold"`
}

// Normalize applies request defaults in place. A threshold outside (0,1)
// falls back to the default rather than failing the request.
func (r *PredictionRequest) Normalize() {
	if r.TargetType == "" {
		r.TargetType = DefaultTargetType
	}
	if r.PredictionHorizon <= 0 {
		r.PredictionHorizon = DefaultPredictionHorizon
	}
	if r.IncludeEnvironmentalFactors == nil {
		enabled := true
		r.IncludeEnvironmentalFactors = &enabled
	}
	if r.RiskThreshold <= 0 || r.RiskThreshold >= 1 {
		r.RiskThreshold = DefaultRiskThreshold
	}
}

func (r PredictionRequest) EnvironmentalEnabled() bool {
	return r.IncludeEnvironmentalFactors == nil || *r.IncludeEnvironmentalFactors
}

type PredictionResult struct {
	TargetType        Domain            `json:"targetType"`
	PredictionHorizon int               `json:"predictionHorizon"`
	Predictions       []Prediction      `json:"predictions"`
	Alerts            []Alert           `json:"alerts"`
	Recommendations   []Recommendation  `json:"recommendations"`
	Summary           PredictionSummary `json:"summary"`
}

// InventoryStatusScore maps an inventory quality status to a 0..1 score.
func InventoryStatusScore(status string) float64 {
	switch status {
	case "GOOD":
		return 0.9
	case "FAIR":
		return 0.7
	case "POOR":
		return 0.5
	case "REJECTED":
		return 0.3
	default:
		return 0.75
	}
}

// RecipeComplexity scores a recipe on a 1..5 scale from its timing,
// difficulty, and batch size.
func RecipeComplexity(prepMinutes, cookMinutes int, difficulty string, plannedQuantity float64) float64 {
	complexity := 1 + float64(prepMinutes+cookMinutes)/60
	switch difficulty {
	case "HARD":
		complexity += 1
	case "MEDIUM":
		complexity += 0.5
	}
	if plannedQuantity > 1000 {
		complexity += 0.5
	}
	return math.Min(complexity, 5)
}

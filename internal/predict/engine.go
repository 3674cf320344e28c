package predict

import (
	"math"
	"sort"
	"time"

	"github.com/yasunstudio/sppg-app-sub005/internal/contracts"
)

const defaultQuantity = 100.0

// Params are the engine's tunable constants.
type Params struct {
	BaseQuality  float64
	BaseRisk     float64
	UnitValueIDR float64
}

func DefaultParams() Params {
	return Params{
		BaseQuality:  0.8,
		BaseRisk:     0.1,
		UnitValueIDR: 10000,
	}
}

// Engine computes per-item quality predictions. It holds no cross-request
// state; the clock is injectable so tests can freeze time.
type Engine struct {
	params Params
	now    func() time.Time
}

func NewEngine(params Params) *Engine {
	return &Engine{params: params, now: time.Now}
}

// WithClock replaces the engine clock. Intended for tests.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Predict scores every live condition against the historical records and the
// optional environmental snapshot. Results are sorted by descending risk;
// ties keep input order. A nil snapshot skips the environmental factor and
// costs the confidence bonus, nothing else.
func (e *Engine) Predict(history []contracts.HistoricalRecord, live []contracts.LiveCondition, env *contracts.EnvironmentalSnapshot, riskThreshold float64) []contracts.Prediction {
	predictions := make([]contracts.Prediction, 0, len(live))
	now := e.now()

	for _, cond := range live {
		model := modelFor(cond.Domain)
		predictions = append(predictions, e.predictOne(model, cond, history, env, riskThreshold, now))
	}

	sort.SliceStable(predictions, func(i, j int) bool {
		return predictions[i].QualityRisk > predictions[j].QualityRisk
	})

	return predictions
}

func (e *Engine) predictOne(model domainModel, cond contracts.LiveCondition, history []contracts.HistoricalRecord, env *contracts.EnvironmentalSnapshot, riskThreshold float64, now time.Time) contracts.Prediction {
	relevant := 0
	historySum := 0.0
	for _, h := range history {
		if model.isComparable(h, cond) {
			relevant++
			historySum += h.QualityScore
		}
	}

	current := model.currentQuality(cond, e.params.BaseQuality)
	quality := current
	if relevant > 0 {
		quality = historySum / float64(relevant)
	}
	risk := e.params.BaseRisk

	factors := contracts.FactorBreakdown{
		Environmental:     identityFactor(),
		TimeBased:         identityFactor(),
		ConditionSpecific: identityFactor(),
	}

	if env != nil {
		factors.Environmental = environmentalFactor(*env)
		quality *= factors.Environmental.QualityMultiplier
		risk += factors.Environmental.RiskIncrease
	}

	factors.TimeBased = model.timeDegradation(cond, now)
	quality *= factors.TimeBased.QualityMultiplier
	risk += factors.TimeBased.RiskIncrease

	factors.ConditionSpecific = model.conditionFactors(cond)
	quality *= factors.ConditionSpecific.QualityMultiplier
	risk += factors.ConditionSpecific.RiskIncrease

	quality = clamp(quality, 0, 1)
	risk = clamp(risk, 0, 1)

	return contracts.Prediction{
		ItemID:                cond.ID,
		ItemType:              cond.Domain,
		CurrentQualityScore:   current,
		PredictedQualityScore: quality,
		QualityRisk:           risk,
		RiskLevel:             riskLevelFor(risk, riskThreshold),
		ConfidenceLevel:       confidence(relevant, env != nil),
		EstimatedLoss:         estimatedLoss(model.quantity(cond), risk, e.params.UnitValueIDR),
		Factors:               factors,
	}
}

func riskLevelFor(risk, threshold float64) contracts.RiskLevel {
	switch {
	case risk > threshold:
		return contracts.RiskHigh
	case risk > 0.6*threshold:
		return contracts.RiskMedium
	default:
		return contracts.RiskLow
	}
}

func estimatedLoss(quantity, risk, unitValue float64) int64 {
	return int64(math.Round(quantity * risk * unitValue))
}

package predict

import (
	"math"
	"time"

	"github.com/yasunstudio/sppg-app-sub005/internal/contracts"
)

// domainModel is the per-domain capability set: which history counts as
// comparable, how quality degrades over time, which condition-specific
// penalties apply, and where quantity and current quality come from.
type domainModel interface {
	isComparable(h contracts.HistoricalRecord, c contracts.LiveCondition) bool
	timeDegradation(c contracts.LiveCondition, now time.Time) contracts.Factor
	conditionFactors(c contracts.LiveCondition) contracts.Factor
	currentQuality(c contracts.LiveCondition, fallback float64) float64
	quantity(c contracts.LiveCondition) float64
}

func modelFor(domain contracts.Domain) domainModel {
	switch domain {
	case contracts.DomainProduction:
		return productionModel{}
	case contracts.DomainInventory:
		return inventoryModel{}
	case contracts.DomainDistribution:
		return distributionModel{}
	default:
		return fallbackModel{}
	}
}

type productionModel struct{}

func (productionModel) isComparable(h contracts.HistoricalRecord, c contracts.LiveCondition) bool {
	return h.Domain == c.Domain && math.Abs(h.RecipeComplexity-c.Complexity) < 1
}

func (productionModel) timeDegradation(c contracts.LiveCondition, now time.Time) contracts.Factor {
	f := identityFactor()
	if c.Status != "IN_PROGRESS" || c.StartedAt == nil {
		return f
	}
	hoursInProgress := now.Sub(*c.StartedAt).Hours()
	if hoursInProgress > 4 {
		f.QualityMultiplier *= math.Max(0.8, 1-(hoursInProgress-4)*0.05)
		f.RiskIncrease += math.Min(0.2, (hoursInProgress-4)*0.02)
	}
	return f
}

func (productionModel) conditionFactors(c contracts.LiveCondition) contracts.Factor {
	f := identityFactor()
	if c.Complexity > 3 {
		f.QualityMultiplier *= 0.95
		f.RiskIncrease += 0.05
	}
	if c.PlannedQuantity > 1000 {
		f.QualityMultiplier *= 0.97
		f.RiskIncrease += 0.03
	}
	return f
}

func (productionModel) currentQuality(c contracts.LiveCondition, fallback float64) float64 {
	if c.CurrentQualityScore > 0 {
		return c.CurrentQualityScore
	}
	return fallback
}

func (productionModel) quantity(c contracts.LiveCondition) float64 {
	if c.PlannedQuantity > 0 {
		return c.PlannedQuantity
	}
	if c.ActualQuantity > 0 {
		return c.ActualQuantity
	}
	return defaultQuantity
}

type inventoryModel struct{}

func (inventoryModel) isComparable(h contracts.HistoricalRecord, c contracts.LiveCondition) bool {
	return h.Domain == c.Domain && h.RawMaterialCategory == c.RawMaterialCategory
}

func (inventoryModel) timeDegradation(c contracts.LiveCondition, _ time.Time) contracts.Factor {
	f := identityFactor()
	if c.DaysUntilExpiry == nil {
		return f
	}
	switch {
	case *c.DaysUntilExpiry <= 3:
		f.QualityMultiplier *= 0.7
		f.RiskIncrease += 0.3
	case *c.DaysUntilExpiry <= 7:
		f.QualityMultiplier *= 0.85
		f.RiskIncrease += 0.15
	}
	return f
}

func (inventoryModel) conditionFactors(c contracts.LiveCondition) contracts.Factor {
	f := identityFactor()
	if c.DaysSinceCreated > 30 {
		f.QualityMultiplier *= 0.9
		f.RiskIncrease += 0.1
	}
	return f
}

func (inventoryModel) currentQuality(c contracts.LiveCondition, fallback float64) float64 {
	if c.QualityStatus == "" {
		return fallback
	}
	return contracts.InventoryStatusScore(c.QualityStatus)
}

func (inventoryModel) quantity(c contracts.LiveCondition) float64 {
	if c.Quantity > 0 {
		return c.Quantity
	}
	return defaultQuantity
}

type distributionModel struct{}

func (distributionModel) isComparable(h contracts.HistoricalRecord, c contracts.LiveCondition) bool {
	return h.Domain == c.Domain && math.Abs(h.TransitTimeHours-c.TransitTimeHours) < 2
}

func (distributionModel) timeDegradation(c contracts.LiveCondition, _ time.Time) contracts.Factor {
	f := identityFactor()
	if c.TransitTimeHours > 8 {
		f.QualityMultiplier *= math.Max(0.7, 1-(c.TransitTimeHours-8)*0.02)
		f.RiskIncrease += math.Min(0.2, (c.TransitTimeHours-8)*0.01)
	}
	return f
}

func (distributionModel) conditionFactors(_ contracts.LiveCondition) contracts.Factor {
	return identityFactor()
}

func (distributionModel) currentQuality(_ contracts.LiveCondition, fallback float64) float64 {
	return fallback
}

func (distributionModel) quantity(_ contracts.LiveCondition) float64 {
	return defaultQuantity
}

// fallbackModel covers unrecognized domains: every record is comparable and
// no factor applies. Loaders return nothing for such domains anyway.
type fallbackModel struct{}

func (fallbackModel) isComparable(_ contracts.HistoricalRecord, _ contracts.LiveCondition) bool {
	return true
}

func (fallbackModel) timeDegradation(_ contracts.LiveCondition, _ time.Time) contracts.Factor {
	return identityFactor()
}

func (fallbackModel) conditionFactors(_ contracts.LiveCondition) contracts.Factor {
	return identityFactor()
}

func (fallbackModel) currentQuality(_ contracts.LiveCondition, fallback float64) float64 {
	return fallback
}

func (fallbackModel) quantity(_ contracts.LiveCondition) float64 {
	return defaultQuantity
}

package predict

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yasunstudio/sppg-app-sub005/internal/contracts"
)

const preventiveLossThreshold = 500000

// BuildAlerts derives one alert per prediction above the risk threshold.
// The input is already sorted by risk, so the alerts come out sorted too.
func BuildAlerts(predictions []contracts.Prediction, riskThreshold float64, now time.Time) []contracts.Alert {
	alerts := make([]contracts.Alert, 0)
	for _, p := range predictions {
		if p.QualityRisk <= riskThreshold {
			continue
		}

		severity := "warning"
		label := "Medium"
		if p.RiskLevel == contracts.RiskHigh {
			severity = "critical"
			label = "High"
		}

		alerts = append(alerts, contracts.Alert{
			ID:             uuid.NewString(),
			ItemID:         p.ItemID,
			ItemType:       p.ItemType,
			Severity:       severity,
			RiskScore:      p.QualityRisk,
			Message:        fmt.Sprintf("%s quality risk (%.0f%%) detected for %s item %s", label, p.QualityRisk*100, p.ItemType, p.ItemID),
			ActionRequired: requiredActions(p),
			EstimatedLoss:  p.EstimatedLoss,
			CreatedAt:      now,
		})
	}
	return alerts
}

func requiredActions(p contracts.Prediction) []string {
	actions := make([]string, 0, 3)
	if p.QualityRisk > 0.5 {
		actions = append(actions, "Immediate quality inspection required")
	}
	if p.QualityRisk > 0.3 {
		switch p.ItemType {
		case contracts.DomainProduction:
			actions = append(actions, "Monitor production process closely")
		case contracts.DomainInventory:
			actions = append(actions, "Check storage conditions and rotate stock")
		case contracts.DomainDistribution:
			actions = append(actions, "Track delivery conditions and timing")
		}
	}
	if p.EstimatedLoss > preventiveLossThreshold {
		actions = append(actions, "Consider preventive measures to avoid estimated loss")
	}
	return actions
}

// BuildRecommendations produces up to three aggregate entries across the
// whole prediction set.
func BuildRecommendations(predictions []contracts.Prediction) []contracts.Recommendation {
	recommendations := make([]contracts.Recommendation, 0, 3)

	highCount := 0
	var highLoss int64
	environmental := 0
	productionAtRisk := 0
	for _, p := range predictions {
		if p.RiskLevel == contracts.RiskHigh {
			highCount++
			highLoss += p.EstimatedLoss
		}
		if p.Factors.Environmental.RiskIncrease > 0.05 {
			environmental++
		}
		if p.ItemType == contracts.DomainProduction && p.QualityRisk > 0.2 {
			productionAtRisk++
		}
	}

	if highCount > 0 {
		recommendations = append(recommendations, contracts.Recommendation{
			Type:          "quality_risk",
			Priority:      "high",
			Message:       fmt.Sprintf("%d items at high quality risk with estimated loss of IDR %d", highCount, highLoss),
			AffectedItems: highCount,
			PotentialLoss: highLoss,
		})
	}
	if environmental > 0 {
		recommendations = append(recommendations, contracts.Recommendation{
			Type:          "environmental",
			Priority:      "medium",
			Message:       "Environmental conditions are elevating quality risk; strengthen storage and transport monitoring",
			AffectedItems: environmental,
		})
	}
	if productionAtRisk > 0 {
		recommendations = append(recommendations, contracts.Recommendation{
			Type:          "process_improvement",
			Priority:      "medium",
			Message:       "Production batches show elevated quality risk; review process controls and staffing",
			AffectedItems: productionAtRisk,
		})
	}

	return recommendations
}

// Summarize aggregates the prediction set. Safe on an empty set.
func Summarize(predictions []contracts.Prediction) contracts.PredictionSummary {
	summary := contracts.PredictionSummary{TotalItemsAnalyzed: len(predictions)}

	qualitySum := 0.0
	for _, p := range predictions {
		qualitySum += p.PredictedQualityScore
		summary.TotalPotentialLoss += p.EstimatedLoss
		switch p.RiskLevel {
		case contracts.RiskHigh:
			summary.HighRiskItems++
		case contracts.RiskMedium:
			summary.MediumRiskItems++
		}
	}

	denominator := len(predictions)
	if denominator == 0 {
		denominator = 1
	}
	summary.AverageQualityScore = round2(qualitySum / float64(denominator))

	return summary
}

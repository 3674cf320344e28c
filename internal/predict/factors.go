package predict

import (
	"math"

	"github.com/yasunstudio/sppg-app-sub005/internal/contracts"
)

func identityFactor() contracts.Factor {
	return contracts.Factor{QualityMultiplier: 1}
}

// environmentalFactor scores ambient conditions. The two temperature checks
// are deliberately independent: above 35°C both penalties fire and compound.
func environmentalFactor(env contracts.EnvironmentalSnapshot) contracts.Factor {
	f := identityFactor()

	if env.Temperature > 32 {
		f.QualityMultiplier *= 0.95
		f.RiskIncrease += 0.05
	}
	if env.Temperature > 35 {
		f.QualityMultiplier *= 0.9
		f.RiskIncrease += 0.1
	}

	if env.Humidity > 80 {
		f.QualityMultiplier *= 0.95
		f.RiskIncrease += 0.05
	}

	switch env.WeatherCondition {
	case "stormy":
		f.QualityMultiplier *= 0.9
		f.RiskIncrease += 0.1
	case "rainy":
		f.QualityMultiplier *= 0.95
		f.RiskIncrease += 0.05
	}

	f.QualityMultiplier *= env.SeasonalFactor
	return f
}

// confidence estimates how much support backs a prediction: more comparable
// history raises it, an environmental snapshot raises it, and the flat
// real-time monitoring bonus always applies. Capped at 0.95.
func confidence(historicalSamples int, hasEnvironment bool) float64 {
	c := 0.5
	c += math.Min(0.3, float64(historicalSamples)*0.02)
	if hasEnvironment {
		c += 0.1
	}
	c += 0.1
	return math.Min(c, 0.95)
}

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

package environment

import (
	"math/rand"
	"time"

	"github.com/yasunstudio/sppg-app-sub005/internal/contracts"
)

// seasonalTable holds the typical monthly quality impact, Jan..Dec.
// 1.0 is neutral; values below reflect the wet-season months where heat and
// humidity shorten shelf life across the program's kitchens.
var seasonalTable = [12]float64{
	0.95, 0.95, 0.97, 1.0, 1.0, 1.0,
	1.0, 1.0, 1.0, 0.98, 0.95, 0.93,
}

var weatherConditions = []string{"sunny", "sunny", "cloudy", "rainy", "stormy"}

// SeasonalFactor looks up the quality impact for a month (1..12). Out of
// range returns neutral.
func SeasonalFactor(month int) float64 {
	if month < 1 || month > 12 {
		return 1.0
	}
	return seasonalTable[month-1]
}

// Provider produces one environmental snapshot per prediction run. Without a
// real sensor or weather feed the ambient readings come from a simulated
// generator; the seasonal factor is always deterministic. Both the clock and
// the random source are injectable so tests can pin the output.
type Provider struct {
	now func() time.Time
	rng *rand.Rand
}

func NewProvider() *Provider {
	return &Provider{
		now: time.Now,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// WithClock replaces the provider clock. Intended for tests.
func (p *Provider) WithClock(now func() time.Time) *Provider {
	p.now = now
	return p
}

// WithSource replaces the random source behind the simulated readings.
func (p *Provider) WithSource(rng *rand.Rand) *Provider {
	p.rng = rng
	return p
}

func (p *Provider) Snapshot() (contracts.EnvironmentalSnapshot, error) {
	return contracts.EnvironmentalSnapshot{
		Temperature:      26 + p.rng.Float64()*10,
		Humidity:         60 + p.rng.Float64()*35,
		AirQuality:       50 + p.rng.Float64()*100,
		SeasonalFactor:   SeasonalFactor(int(p.now().Month())),
		WeatherCondition: weatherConditions[p.rng.Intn(len(weatherConditions))],
	}, nil
}

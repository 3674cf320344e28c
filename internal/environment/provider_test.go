package environment

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeasonalFactor(t *testing.T) {
	assert.Equal(t, 0.95, SeasonalFactor(1))
	assert.Equal(t, 1.0, SeasonalFactor(6))
	assert.Equal(t, 0.93, SeasonalFactor(12))

	// Out of range is neutral.
	assert.Equal(t, 1.0, SeasonalFactor(0))
	assert.Equal(t, 1.0, SeasonalFactor(13))
	assert.Equal(t, 1.0, SeasonalFactor(-3))
}

func TestSnapshot_DeterministicUnderSeededSource(t *testing.T) {
	now := time.Date(2025, time.December, 1, 8, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	first, err := NewProvider().WithClock(clock).WithSource(rand.New(rand.NewSource(42))).Snapshot()
	require.NoError(t, err)
	second, err := NewProvider().WithClock(clock).WithSource(rand.New(rand.NewSource(42))).Snapshot()
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 0.93, first.SeasonalFactor)
}

func TestSnapshot_Ranges(t *testing.T) {
	provider := NewProvider().WithSource(rand.New(rand.NewSource(7)))

	for i := 0; i < 50; i++ {
		snap, err := provider.Snapshot()
		require.NoError(t, err)

		assert.GreaterOrEqual(t, snap.Temperature, 26.0)
		assert.Less(t, snap.Temperature, 36.0)
		assert.GreaterOrEqual(t, snap.Humidity, 60.0)
		assert.Less(t, snap.Humidity, 95.0)
		assert.GreaterOrEqual(t, snap.AirQuality, 50.0)
		assert.Less(t, snap.AirQuality, 150.0)
		assert.Contains(t, []string{"sunny", "cloudy", "rainy", "stormy"}, snap.WeatherCondition)
	}
}

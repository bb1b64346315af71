package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/farescout/fare-search-assistant/internal/domain"
)

func params(origin, destination string) domain.SearchParameters {
	return domain.SearchParameters{
		Origin:        origin,
		Destination:   destination,
		DepartureDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Flexibility:   domain.FlexibilityExact,
	}
}

func TestKey_Deterministic(t *testing.T) {
	p := params("MOW", "PAR")

	assert.Equal(t, Key(p), Key(p), "same parameters must hash identically")
}

func TestKey_Prefix(t *testing.T) {
	assert.True(t, strings.HasPrefix(Key(params("MOW", "PAR")), "fare:"))
}

func TestKey_DistinguishesParameters(t *testing.T) {
	base := params("MOW", "PAR")

	differentRoute := params("MOW", "ROM")
	assert.NotEqual(t, Key(base), Key(differentRoute))

	differentDate := base
	differentDate.DepartureDate = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	assert.NotEqual(t, Key(base), Key(differentDate))

	differentFlex := base
	differentFlex.Flexibility = domain.FlexibilityStartOfMonth
	assert.NotEqual(t, Key(base), Key(differentFlex))

	ret := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
	withReturn := base
	withReturn.ReturnDate = &ret
	assert.NotEqual(t, Key(base), Key(withReturn))

	withDuration := base
	withDuration.Duration = &domain.DurationRange{Min: 10, Max: 14}
	assert.NotEqual(t, Key(base), Key(withDuration))
}

func TestKey_IgnoresTimeOfDay(t *testing.T) {
	morning := params("MOW", "PAR")
	evening := morning
	evening.DepartureDate = evening.DepartureDate.Add(19 * time.Hour)

	assert.Equal(t, Key(morning), Key(evening), "cache keys carry date precision only")
}

func TestNoOpCache(t *testing.T) {
	c := NewNoOpCache()
	ctx := context.Background()
	p := params("MOW", "PAR")

	outcome, ok := c.Get(ctx, p)
	assert.Nil(t, outcome)
	assert.False(t, ok)

	err := c.Set(ctx, p, &domain.SearchOutcome{})
	assert.NoError(t, err)

	// Set stores nothing
	_, ok = c.Get(ctx, p)
	assert.False(t, ok)

	assert.NoError(t, c.Close())
}

func TestDefaultRedisConfig(t *testing.T) {
	cfg := DefaultRedisConfig()

	assert.Equal(t, "localhost:6379", cfg.Addr)
	assert.Equal(t, 5*time.Minute, cfg.TTL)
}

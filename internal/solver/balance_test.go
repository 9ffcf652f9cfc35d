package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func overbookedScenario(t *testing.T) *Scenario {
	t.Helper()
	sc, err := NewScenario(
		[]Student{{Name: "S1", Target: 5}, {Name: "S2", Target: 5}, {Name: "S3", Target: 4}},
		[]Interviewer{{Name: "A"}, {Name: "B"}},
		Quotas{NumSlots: 6, BreaksMin: 1, BreaksMax: 2},
	)
	require.NoError(t, err)
	return sc
}

func TestAutoBalanceReducesToCapacity(t *testing.T) {
	sc := overbookedScenario(t)
	stats := sc.CapacityStats()
	require.Equal(t, 10, stats.Capacity)
	require.Equal(t, 14, stats.Demand)

	reductions, remaining := AutoBalance(sc, 1)
	assert.Len(t, reductions, 4)
	assert.Zero(t, remaining)
	assert.Equal(t, sc.CapacityStats().Capacity, sc.Demand())

	// every step decrements the then-maximum target by exactly one
	for _, r := range reductions {
		assert.Equal(t, r.From-1, r.To)
		assert.Greater(t, r.To, 0)
	}

	_, err := Precheck(sc)
	assert.NoError(t, err)
}

func TestAutoBalanceSameSeedSameTrace(t *testing.T) {
	first, _ := AutoBalance(overbookedScenario(t), 123)
	second, _ := AutoBalance(overbookedScenario(t), 123)
	assert.Equal(t, first, second)
}

func TestAutoBalanceNoDeficitIsNoop(t *testing.T) {
	sc, err := NewScenario(
		[]Student{{Name: "S1", Target: 2}},
		[]Interviewer{{Name: "A"}},
		Quotas{NumSlots: 4},
	)
	require.NoError(t, err)

	reductions, remaining := AutoBalance(sc, 0)
	assert.Empty(t, reductions)
	assert.Zero(t, remaining)
	assert.Equal(t, 2, sc.Students[0].Target)
}

func TestAutoBalanceStopsAtTargetFloor(t *testing.T) {
	// targets of one are never reduced, so part of the deficit survives
	sc, err := NewScenario(
		[]Student{{Name: "S1", Target: 2}, {Name: "S2", Target: 1}},
		[]Interviewer{{Name: "A"}},
		Quotas{NumSlots: 1},
	)
	require.NoError(t, err)

	reductions, remaining := AutoBalance(sc, 0)
	assert.Len(t, reductions, 1)
	assert.Equal(t, 1, remaining)
	assert.Equal(t, 1, sc.Students[0].Target)

	_, err = Precheck(sc)
	assert.ErrorIs(t, err, ErrDemandExceedsCapacity)
}

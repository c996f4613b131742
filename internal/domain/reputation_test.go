package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregateScores(t *testing.T) {
	testCases := []struct {
		name     string
		scores   []int
		fallback float64
		expected Aggregate
	}{
		{name: "two ratings", scores: []int{8, 10}, fallback: DefaultReputation, expected: Aggregate{Score: 9.0, Count: 2}},
		{name: "no ratings user", fallback: DefaultReputation, expected: Aggregate{Score: 5.0}},
		{name: "no reviews apartment", fallback: UnratedApartmentScore, expected: Aggregate{Score: 0.0}},
		{name: "fractional mean", scores: []int{1, 2}, fallback: DefaultReputation, expected: Aggregate{Score: 1.5, Count: 2}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, AggregateScores(tc.scores, tc.fallback))
		})
	}
}

func TestAggregateScores_OrderIndependent(t *testing.T) {
	orders := [][]int{
		{3, 7, 10, 1, 9},
		{10, 9, 7, 3, 1},
		{1, 3, 7, 9, 10},
		{9, 1, 10, 7, 3},
	}

	first := AggregateScores(orders[0], DefaultReputation)
	for _, scores := range orders[1:] {
		assert.Equal(t, first, AggregateScores(scores, DefaultReputation))
	}
}

func TestValidScore(t *testing.T) {
	assert.False(t, ValidScore(0))
	assert.True(t, ValidScore(1))
	assert.True(t, ValidScore(10))
	assert.False(t, ValidScore(11))
}

func TestRole_Capabilities(t *testing.T) {
	assert.True(t, RoleClient.CanBook())
	assert.False(t, RoleOwner.CanBook())
	assert.True(t, RoleOwner.CanOwn())
	assert.False(t, RoleAdmin.CanOwn())

	assert.True(t, RoleOwner.CanRate(RatingClient))
	assert.True(t, RoleClient.CanBeRated(RatingClient))
	assert.True(t, RoleClient.CanRate(RatingOwner))
	assert.True(t, RoleOwner.CanBeRated(RatingOwner))
	assert.False(t, RoleAdmin.CanRate(RatingClient))
	assert.False(t, RoleClient.CanRate(RatingClient))
}

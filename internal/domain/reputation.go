package domain

const (
	// DefaultReputation is the score of a user nobody has rated yet.
	DefaultReputation = 5.0
	// UnratedApartmentScore is the average rating of an apartment without reviews.
	UnratedApartmentScore = 0.0

	MinScore = 1
	MaxScore = 10
)

// Aggregate is the result of a full-scan reputation recompute.
type Aggregate struct {
	Score float64
	Count int
}

// AggregateScores returns the arithmetic mean of scores, or fallback when there are none.
func AggregateScores(scores []int, fallback float64) Aggregate {
	if len(scores) == 0 {
		return Aggregate{Score: fallback}
	}

	var sum int64
	for _, s := range scores {
		sum += int64(s)
	}

	return Aggregate{
		Score: float64(sum) / float64(len(scores)),
		Count: len(scores),
	}
}

func ValidScore(score int) bool {
	return score >= MinScore && score <= MaxScore
}

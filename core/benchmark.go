package core

import (
	"github.com/kinetrace/kinetrace/internal/contract"
	"github.com/kinetrace/kinetrace/schema"
)

// Percentile anchors for the four tier thresholds. A score exactly at
// a tier's lower threshold maps to that tier's anchor percentile.
const (
	poorPercentile      = 10.0
	averagePercentile   = 35.0
	goodPercentile      = 65.0
	excellentPercentile = 90.0
)

// computeBenchmark maps a scalar performance score and a demographic
// profile to a percentile and rating via the norm table. ok is false
// when the table has no cell for the (kind, ageGroup, gender) key.
func computeBenchmark(score float64, kind schema.TestKind, profile schema.UserProfile, norms schema.NormTable) (schema.BenchmarkResult, bool) {
	ageGroup := contract.AgeGroupFor(profile.Age)

	groups, ok := norms[kind]
	if !ok {
		return schema.BenchmarkResult{}, false
	}
	genders, ok := groups[ageGroup]
	if !ok {
		return schema.BenchmarkResult{}, false
	}
	tiers, ok := genders[profile.Gender]
	if !ok {
		return schema.BenchmarkResult{}, false
	}

	rating := ratingFor(score, tiers)
	return schema.BenchmarkResult{
		AgeGroup:        ageGroup,
		Gender:          profile.Gender,
		Percentile:      percentileFor(score, tiers),
		Rating:          rating,
		Recommendations: contract.RecommendationsForTier(rating),
	}, true
}

// ratingFor picks the highest tier whose lower threshold the score
// meets, boundary inclusive. Everything below the average threshold
// rates poor.
func ratingFor(score float64, tiers schema.NormTiers) schema.RatingTier {
	switch {
	case score >= tiers.Excellent:
		return schema.ExcellentRating
	case score >= tiers.Good:
		return schema.GoodRating
	case score >= tiers.Average:
		return schema.AverageRating
	default:
		return schema.PoorRating
	}
}

// percentileFor interpolates piecewise-linearly between the tier
// anchor percentiles.
func percentileFor(score float64, tiers schema.NormTiers) float64 {
	switch {
	case score >= tiers.Excellent:
		if tiers.Excellent <= 0 {
			return excellentPercentile
		}
		over := (score - tiers.Excellent) / tiers.Excellent
		return clampPercentile(excellentPercentile + over*(100-excellentPercentile))
	case score >= tiers.Good:
		return lerp(score, tiers.Good, tiers.Excellent, goodPercentile, excellentPercentile)
	case score >= tiers.Average:
		return lerp(score, tiers.Average, tiers.Good, averagePercentile, goodPercentile)
	case score >= tiers.Poor:
		return lerp(score, tiers.Poor, tiers.Average, poorPercentile, averagePercentile)
	default:
		if tiers.Poor <= 0 {
			return 0
		}
		return clampPercentile(score / tiers.Poor * poorPercentile)
	}
}

// lerp maps score from [lo,hi] onto [plo,phi] linearly.
func lerp(score, lo, hi, plo, phi float64) float64 {
	if hi <= lo {
		return plo
	}
	return clampPercentile(plo + (score-lo)/(hi-lo)*(phi-plo))
}

func clampPercentile(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

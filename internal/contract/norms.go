package contract

import "github.com/kinetrace/kinetrace/schema"

// Age group labels, youngest to oldest. Ages past the last boundary
// fall into the final group.
const (
	AgeGroupUnder13 = "under-13"
	AgeGroup13To15  = "13-15"
	AgeGroup16To18  = "16-18"
	AgeGroup19To24  = "19-24"
	AgeGroup25Plus  = "25+"
)

// AllAgeGroups returns the ordered list of age group labels.
var AllAgeGroups = []string{
	AgeGroupUnder13, AgeGroup13To15, AgeGroup16To18, AgeGroup19To24, AgeGroup25Plus,
}

// AgeGroupFor maps an age in years to its discrete bucket.
func AgeGroupFor(age int) string {
	switch {
	case age < 13:
		return AgeGroupUnder13
	case age <= 15:
		return AgeGroup13To15
	case age <= 18:
		return AgeGroup16To18
	case age <= 24:
		return AgeGroup19To24
	default:
		return AgeGroup25Plus
	}
}

// DefaultNorms returns the built-in norm table. Values are repetition
// counts for cyclic tests, centimeters for vertical jump, meters for
// broad jump and seconds for the plank hold. The table is population
// reference data shipped as configuration; deployments override cells
// through the norms section of the config file.
func DefaultNorms() schema.NormTable {
	male := func(p, a, g, e float64) map[string]schema.NormTiers {
		return map[string]schema.NormTiers{
			"male": {Poor: p, Average: a, Good: g, Excellent: e},
		}
	}
	both := func(mp, ma, mg, me, fp, fa, fg, fe float64) map[string]schema.NormTiers {
		m := male(mp, ma, mg, me)
		m["female"] = schema.NormTiers{Poor: fp, Average: fa, Good: fg, Excellent: fe}
		return m
	}

	return schema.NormTable{
		schema.PushupTest: {
			AgeGroupUnder13: both(3, 8, 14, 20, 2, 6, 11, 16),
			AgeGroup13To15:  both(6, 12, 20, 30, 4, 9, 15, 22),
			AgeGroup16To18:  both(10, 18, 28, 40, 6, 12, 20, 28),
			AgeGroup19To24:  both(12, 22, 34, 47, 8, 15, 24, 34),
			AgeGroup25Plus:  both(10, 18, 28, 40, 6, 12, 20, 28),
		},
		schema.SitupTest: {
			AgeGroupUnder13: both(8, 15, 24, 32, 6, 12, 20, 28),
			AgeGroup13To15:  both(14, 24, 35, 45, 10, 18, 28, 38),
			AgeGroup16To18:  both(18, 30, 42, 52, 14, 24, 34, 44),
			AgeGroup19To24:  both(20, 33, 45, 55, 15, 26, 37, 47),
			AgeGroup25Plus:  both(16, 28, 40, 50, 12, 22, 32, 42),
		},
		schema.SquatTest: {
			AgeGroupUnder13: both(10, 18, 28, 38, 8, 15, 24, 33),
			AgeGroup13To15:  both(15, 26, 38, 50, 12, 21, 32, 43),
			AgeGroup16To18:  both(20, 32, 46, 60, 15, 26, 38, 50),
			AgeGroup19To24:  both(22, 36, 50, 65, 17, 29, 42, 55),
			AgeGroup25Plus:  both(18, 30, 44, 58, 14, 24, 36, 48),
		},
		schema.VerticalJumpTest: {
			AgeGroupUnder13: both(15, 22, 30, 38, 12, 18, 25, 32),
			AgeGroup13To15:  both(22, 32, 42, 52, 18, 25, 34, 43),
			AgeGroup16To18:  both(30, 40, 52, 64, 22, 30, 40, 50),
			AgeGroup19To24:  both(35, 45, 58, 70, 25, 34, 45, 56),
			AgeGroup25Plus:  both(30, 40, 52, 64, 22, 30, 40, 50),
		},
		schema.BroadJumpTest: {
			AgeGroupUnder13: both(1.0, 1.3, 1.6, 1.9, 0.9, 1.1, 1.4, 1.7),
			AgeGroup13To15:  both(1.4, 1.7, 2.0, 2.4, 1.2, 1.4, 1.7, 2.0),
			AgeGroup16To18:  both(1.7, 2.0, 2.4, 2.8, 1.3, 1.6, 1.9, 2.3),
			AgeGroup19To24:  both(1.9, 2.2, 2.6, 3.0, 1.4, 1.7, 2.1, 2.5),
			AgeGroup25Plus:  both(1.7, 2.0, 2.4, 2.8, 1.3, 1.6, 1.9, 2.3),
		},
		schema.PlankTest: {
			AgeGroupUnder13: both(20, 40, 70, 110, 18, 35, 62, 100),
			AgeGroup13To15:  both(30, 60, 100, 150, 26, 52, 90, 135),
			AgeGroup16To18:  both(40, 75, 120, 180, 34, 65, 105, 160),
			AgeGroup19To24:  both(45, 85, 135, 200, 38, 72, 115, 175),
			AgeGroup25Plus:  both(40, 75, 120, 180, 34, 65, 105, 160),
		},
	}
}

// RecommendationsForTier returns the fixed remediation list per rating
// tier; content is deterministic by design.
func RecommendationsForTier(tier schema.RatingTier) []string {
	switch tier {
	case schema.PoorRating:
		return []string{
			"Build a base with 3 short sessions per week before retesting",
			"Focus on controlled, full-range movement over speed",
			"Retest after 4 weeks of consistent training",
		}
	case schema.AverageRating:
		return []string{
			"Add one weekly session targeting this movement",
			"Track repetitions across sessions to confirm steady progress",
		}
	case schema.GoodRating:
		return []string{
			"Increase difficulty with tempo work or added load",
			"Keep current training frequency to hold this level",
		}
	case schema.ExcellentRating:
		return []string{
			"Maintain current program; consider a harder test variant",
		}
	default:
		return nil
	}
}

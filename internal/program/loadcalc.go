package program

import (
	"math"
)

// The fixed descending rep scheme for every prescribed exercise.
//
//nolint:gochecknoglobals // fixed lookup table
var repScheme = [3]int{15, 12, 10}

// percentByReps approximates classic percentage-of-max-by-rep-count tables
// calibrated against a five-rep max.
//
//nolint:gochecknoglobals // fixed lookup table
var percentByReps = map[int]float64{
	15: 0.7778,
	12: 0.8333,
	10: 0.875,
}

// plateIncrementKg is the smallest load step available in a typical gym.
const plateIncrementKg = 2.5

// roundToPlate rounds a weight to the nearest plate increment.
func roundToPlate(weightKg float64) float64 {
	return math.Round(weightKg/plateIncrementKg) * plateIncrementKg
}

// targetSets prescribes the three sets for one exercise.
//
// With a known five-rep max the sets carry absolute weights rounded to plate
// granularity. Without one they carry the percentage placeholder instead, so
// a load can be displayed once a max is measured. The caller rejects invalid
// (negative, NaN) maxes upstream.
func targetSets(fiveRepMaxKg *float64) []TargetSet {
	sets := make([]TargetSet, 0, len(repScheme))
	for i, reps := range repScheme {
		set := TargetSet{
			SetNumber:    i + 1,
			TargetReps:   reps,
			WeightKg:     nil,
			PercentOfMax: nil,
		}
		pct := percentByReps[reps]
		if fiveRepMaxKg != nil {
			weight := roundToPlate(*fiveRepMaxKg * pct)
			set.WeightKg = &weight
		} else {
			set.PercentOfMax = &pct
		}
		sets = append(sets, set)
	}
	return sets
}

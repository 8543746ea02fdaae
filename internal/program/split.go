package program

import (
	"fmt"
	"strings"
)

// olderAgeRange is the questionnaire cohort that always trains on the gentler
// upper/lower/full split.
const olderAgeRange = "56+"

// chooseSplit maps questionnaire attributes to a training split.
//
// The default is push/pull/legs. Older users and users reporting any
// limitation or injury get upper/lower/full instead. SplitFullBody is never
// chosen here, it is only reachable through the regeneration override.
func chooseSplit(q Questionnaire) Split {
	if q.AgeRange == olderAgeRange || hasLimitations(q.Limitations) {
		return SplitULF
	}
	return SplitPPL
}

// hasLimitations reports whether the free-text limitations field names an
// actual limitation rather than an empty or "none" answer.
func hasLimitations(limitations string) bool {
	switch strings.ToLower(strings.TrimSpace(limitations)) {
	case "", "none", "нет":
		return false
	default:
		return true
	}
}

// splitDays returns the ordered day types of one training week.
//
// The mapping is total for the three known splits. An unknown split is a
// configuration error and fails fast instead of silently defaulting.
func splitDays(split Split) ([sessionsPerWeek]DayType, error) {
	switch split {
	case SplitPPL:
		return [sessionsPerWeek]DayType{DayTypePush, DayTypePull, DayTypeLegs}, nil
	case SplitULF:
		return [sessionsPerWeek]DayType{DayTypeUpper, DayTypeLower, DayTypeFull}, nil
	case SplitFullBody:
		return [sessionsPerWeek]DayType{DayTypeFull, DayTypeFull, DayTypeFull}, nil
	default:
		return [sessionsPerWeek]DayType{}, fmt.Errorf("unknown split: %q", split)
	}
}

// ParseSplit validates a split name supplied from outside, e.g. a
// regeneration override.
func ParseSplit(name string) (Split, error) {
	split := Split(name)
	if _, err := splitDays(split); err != nil {
		return "", err
	}
	return split, nil
}

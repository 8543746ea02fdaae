package program

import (
	"time"
)

// Program length constants.
const (
	programWeeks    = 12
	sessionsPerWeek = 3
	programDays     = programWeeks * 7
)

// sessionDayOffsets places the weekly sessions on Monday, Wednesday and
// Friday relative to the anchor Monday.
//
//nolint:gochecknoglobals // fixed lookup table
var sessionDayOffsets = [sessionsPerWeek]int{0, 2, 4}

// generator materializes the session plan for one program. It is pure: all
// catalog and test-max reads happen before construction, all persistence
// after.
type generator struct {
	days    [sessionsPerWeek]DayType
	pools   map[DayType][]Exercise
	maxes   map[AnchorKey]float64
	shuffle shuffleFunc
}

func newGenerator(
	days [sessionsPerWeek]DayType,
	pools map[DayType][]Exercise,
	maxes map[AnchorKey]float64,
	shuffle shuffleFunc,
) *generator {
	return &generator{
		days:    days,
		pools:   pools,
		maxes:   maxes,
		shuffle: shuffle,
	}
}

// plannedSession is a session before persistence.
type plannedSession struct {
	Date      time.Time
	DayType   DayType
	Exercises []plannedExercise
}

// plannedExercise pairs a selected exercise with its prescribed sets.
type plannedExercise struct {
	Exercise Exercise
	Sets     []TargetSet
}

// anchorMonday returns the nearest Monday on or after the given date.
// Training days are fixed to Monday/Wednesday/Friday regardless of the
// literal start date, so every generated week has the same cadence.
func anchorMonday(t time.Time) time.Time {
	date := normalizeDate(t)
	offset := (int(time.Monday) - int(date.Weekday()) + 7) % 7
	return date.AddDate(0, 0, offset)
}

// normalizeDate truncates a timestamp to midnight UTC.
func normalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// plan lays out all sessions of the program: 12 weeks of the split's three
// day slots. A day type with an empty pool still yields a session with zero
// exercises so the calendar is never missing a day.
func (g *generator) plan(startDate time.Time) []plannedSession {
	monday := anchorMonday(startDate)

	sessions := make([]plannedSession, 0, programWeeks*sessionsPerWeek)
	for week := range programWeeks {
		for slot, dayType := range g.days {
			date := monday.AddDate(0, 0, week*7+sessionDayOffsets[slot])
			sessions = append(sessions, plannedSession{
				Date:      date,
				DayType:   dayType,
				Exercises: g.planExercises(dayType),
			})
		}
	}
	return sessions
}

// planExercises selects the session's exercises and prescribes their sets,
// keyed to the preloaded test-max of the exercise's anchor when one exists.
func (g *generator) planExercises(dayType DayType) []plannedExercise {
	selected := selectFromPool(g.pools[dayType], g.shuffle)

	exercises := make([]plannedExercise, 0, len(selected))
	for _, exercise := range selected {
		var fiveRepMax *float64
		if exercise.AnchorKey != nil {
			if maxKg, ok := g.maxes[*exercise.AnchorKey]; ok {
				fiveRepMax = &maxKg
			}
		}
		exercises = append(exercises, plannedExercise{
			Exercise: exercise,
			Sets:     targetSets(fiveRepMax),
		})
	}
	return exercises
}

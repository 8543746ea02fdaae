package program

import (
	"math/rand/v2"
)

// exercisesPerSession is the selection target per session. Smaller pools
// yield fewer exercises rather than failing.
const exercisesPerSession = 6

// dayTypeMuscleGroups encodes the standard push/pull/legs and upper/lower
// muscle taxonomy. Kept as an enumerated constant table rather than editable
// data so the pool-membership invariants stay testable.
//
//nolint:gochecknoglobals // fixed lookup table
var dayTypeMuscleGroups = map[DayType][]string{
	DayTypePush:  {"Грудь", "Плечи", "Руки"},
	DayTypePull:  {"Спина", "Руки"},
	DayTypeLegs:  {"Ноги"},
	DayTypeUpper: {"Грудь", "Спина", "Плечи", "Руки"},
	DayTypeLower: {"Ноги"},
	DayTypeFull:  {"Грудь", "Спина", "Ноги", "Плечи", "Руки"},
}

// shuffleFunc has the shape of [rand.Shuffle] so tests can substitute a
// seeded source while production keeps the global one.
type shuffleFunc func(n int, swap func(i, j int))

// selectFromPool picks up to exercisesPerSession exercises uniformly at
// random via shuffle-and-take. Selection order becomes display order.
func selectFromPool(pool []Exercise, shuffle shuffleFunc) []Exercise {
	if len(pool) == 0 {
		return nil
	}
	if shuffle == nil {
		shuffle = rand.Shuffle
	}

	shuffled := make([]Exercise, len(pool))
	copy(shuffled, pool)
	shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if len(shuffled) > exercisesPerSession {
		shuffled = shuffled[:exercisesPerSession]
	}
	return shuffled
}

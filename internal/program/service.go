package program

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/okorolev/fitcoach/internal/errors"
	"github.com/okorolev/fitcoach/internal/sqlite"
)

// ErrInvalidLog is returned when a logged set fails validation.
var ErrInvalidLog = errors.NewSentinel("invalid log entry")

// Service owns program generation, the session schedule and the training
// diary. All methods resolve the acting user from the request context.
type Service struct {
	repo    *repository
	logger  *slog.Logger
	shuffle shuffleFunc
}

// NewService creates a program service on top of the given database.
func NewService(db *sqlite.Database, logger *slog.Logger) *Service {
	return &Service{
		repo:   newRepository(db, logger),
		logger: logger,
	}
}

// Generate builds and persists a fresh 12-week program for the authenticated
// user. The split follows the questionnaire; a missing questionnaire falls
// back to the default split. Returns the new program's id.
func (s *Service) Generate(ctx context.Context, startDate time.Time) (int64, error) {
	questionnaire, err := s.repo.questionnaire.Get(ctx)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return 0, errors.Wrap(err, "get questionnaire")
	}
	return s.generate(ctx, startDate, chooseSplit(questionnaire))
}

// Regenerate retires the user's most recent program and generates a new one
// in its place. A split override, when given, wins over the questionnaire.
// The retired program and all its sessions stay in the database.
func (s *Service) Regenerate(ctx context.Context, startDate time.Time, splitOverride *Split) (int64, error) {
	start := anchorMonday(startDate)

	previous, err := s.repo.programs.MostRecent(ctx)
	switch {
	case errors.Is(err, ErrNotFound):
		// Nothing to retire, proceed as a plain generation.
	case err != nil:
		return 0, errors.Wrap(err, "get most recent program")
	default:
		if err = s.repo.programs.Retire(ctx, previous.ID, start.AddDate(0, 0, -1)); err != nil {
			return 0, errors.Wrap(err, "retire program", slog.Int64("programID", previous.ID))
		}
	}

	split := Split("")
	if splitOverride != nil {
		split = *splitOverride
	} else {
		questionnaire, err := s.repo.questionnaire.Get(ctx)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return 0, errors.Wrap(err, "get questionnaire")
		}
		split = chooseSplit(questionnaire)
	}

	return s.generate(ctx, startDate, split)
}

func (s *Service) generate(ctx context.Context, startDate time.Time, split Split) (int64, error) {
	days, err := splitDays(split)
	if err != nil {
		return 0, errors.Wrap(err, "resolve split days")
	}

	maxes, err := s.repo.testMaxes.Map(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "load test maxes")
	}

	pools, err := s.resolvePools(ctx, days)
	if err != nil {
		return 0, err
	}

	start := anchorMonday(startDate)
	sessions := newGenerator(days, pools, maxes, s.shuffle).plan(start)

	programID, err := s.repo.programs.Create(ctx, Program{
		Name:        "12-week program",
		Description: string(split) + " split, 3 sessions per week",
		StartDate:   start,
		EndDate:     start.AddDate(0, 0, programDays),
		Split:       split,
	})
	if err != nil {
		return 0, errors.Wrap(err, "create program")
	}

	for _, session := range sessions {
		if _, err = s.repo.sessions.CreatePlanned(ctx, programID, session); err != nil {
			return 0, errors.Wrap(err, "persist session",
				slog.Int64("programID", programID),
				slog.Time("date", session.Date))
		}
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "generated program",
		slog.Int64("programID", programID),
		slog.String("split", string(split)),
		slog.Int("sessions", len(sessions)))

	return programID, nil
}

// resolvePools bulk-loads the exercise pool of every distinct day type in the
// week. An empty pool is logged but tolerated, those sessions simply carry no
// exercises.
func (s *Service) resolvePools(ctx context.Context, days [sessionsPerWeek]DayType) (map[DayType][]Exercise, error) {
	pools := make(map[DayType][]Exercise, len(days))
	for _, dayType := range days {
		if _, ok := pools[dayType]; ok {
			continue
		}

		ids, err := s.repo.exercises.MuscleGroupIDs(ctx, dayTypeMuscleGroups[dayType])
		if err != nil {
			return nil, errors.Wrap(err, "resolve muscle groups", slog.String("dayType", string(dayType)))
		}

		pool, err := s.repo.exercises.ByMuscleGroups(ctx, ids)
		if err != nil {
			return nil, errors.Wrap(err, "load exercise pool", slog.String("dayType", string(dayType)))
		}
		if len(pool) == 0 {
			s.logger.LogAttrs(ctx, slog.LevelWarn, "empty exercise pool",
				slog.String("dayType", string(dayType)))
		}
		pools[dayType] = pool
	}
	return pools, nil
}

// LogSet appends a performed set to the training diary. A completed heavy set
// of five reps on an anchored exercise also feeds the test-max store, which
// only ever moves upward.
func (s *Service) LogSet(
	ctx context.Context,
	sessionID, exerciseID int64,
	setNumber, reps int,
	weightKg float64,
	notes string,
) error {
	if setNumber < 1 || reps < 1 {
		return errors.Wrap(ErrInvalidLog, "set number and reps must be positive")
	}
	if weightKg <= 0 || math.IsNaN(weightKg) || math.IsInf(weightKg, 0) {
		return errors.Wrap(ErrInvalidLog, "weight must be a positive finite number")
	}

	// The anchor lookup doubles as the ownership check, so an unknown
	// session or exercise rejects before anything is written. Any other
	// lookup failure must not skip the diary append, only the max update.
	anchor, anchorErr := s.repo.sessions.ExerciseAnchor(ctx, sessionID, exerciseID)
	if errors.Is(anchorErr, ErrNotFound) {
		return errors.Wrap(anchorErr, "resolve exercise anchor",
			slog.Int64("sessionID", sessionID),
			slog.Int64("exerciseID", exerciseID))
	}

	err := s.repo.logs.Append(ctx, LogEntry{
		SessionID:  sessionID,
		ExerciseID: exerciseID,
		SetNumber:  setNumber,
		Reps:       reps,
		WeightKg:   weightKg,
		Notes:      notes,
	})
	if err != nil {
		return errors.Wrap(err, "append workout log")
	}

	if anchorErr != nil {
		return errors.Wrap(anchorErr, "resolve exercise anchor",
			slog.Int64("sessionID", sessionID),
			slog.Int64("exerciseID", exerciseID))
	}

	if reps == fiveRepMaxReps && anchor != nil {
		if err = s.repo.testMaxes.UpsertHighest(ctx, *anchor, weightKg, time.Now()); err != nil {
			return errors.Wrap(err, "update test max", slog.String("anchor", string(*anchor)))
		}
	}

	return nil
}

// fiveRepMaxReps is the rep count that qualifies a logged set as a test-max
// attempt.
const fiveRepMaxReps = 5

// CurrentProgram returns the user's most recent program with its full session
// schedule.
func (s *Service) CurrentProgram(ctx context.Context) (Program, error) {
	current, err := s.repo.programs.MostRecent(ctx)
	if err != nil {
		return Program{}, errors.Wrap(err, "get most recent program")
	}

	if current.Sessions, err = s.repo.sessions.ListByProgram(ctx, current.ID); err != nil {
		return Program{}, errors.Wrap(err, "list sessions", slog.Int64("programID", current.ID))
	}

	return current, nil
}

// GetSession returns one session with its exercises and prescribed sets.
func (s *Service) GetSession(ctx context.Context, id int64) (Session, error) {
	session, err := s.repo.sessions.Get(ctx, id)
	if err != nil {
		return Session{}, errors.Wrap(err, "get session", slog.Int64("sessionID", id))
	}
	return session, nil
}

// CompleteSession marks a session as completed.
func (s *Service) CompleteSession(ctx context.Context, id int64) error {
	if err := s.repo.sessions.SetCompleted(ctx, id, true); err != nil {
		return errors.Wrap(err, "complete session", slog.Int64("sessionID", id))
	}
	return nil
}

// GetQuestionnaire returns the user's questionnaire answers.
func (s *Service) GetQuestionnaire(ctx context.Context) (Questionnaire, error) {
	questionnaire, err := s.repo.questionnaire.Get(ctx)
	if err != nil {
		return Questionnaire{}, errors.Wrap(err, "get questionnaire")
	}
	return questionnaire, nil
}

// SaveQuestionnaire upserts the user's questionnaire answers.
func (s *Service) SaveQuestionnaire(ctx context.Context, q Questionnaire) error {
	if q.CompletedAt.IsZero() {
		q.CompletedAt = time.Now()
	}
	if err := s.repo.questionnaire.Set(ctx, q); err != nil {
		return errors.Wrap(err, "save questionnaire")
	}
	return nil
}

// ListExercises returns the whole exercise catalog.
func (s *Service) ListExercises(ctx context.Context) ([]Exercise, error) {
	exercises, err := s.repo.exercises.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list exercises")
	}
	return exercises, nil
}

// GetExercise returns one catalog exercise.
func (s *Service) GetExercise(ctx context.Context, id int64) (Exercise, error) {
	exercise, err := s.repo.exercises.Get(ctx, id)
	if err != nil {
		return Exercise{}, errors.Wrap(err, "get exercise", slog.Int64("exerciseID", id))
	}
	return exercise, nil
}

// TestMaxes returns the user's current five-rep maxes by anchor.
func (s *Service) TestMaxes(ctx context.Context) (map[AnchorKey]float64, error) {
	maxes, err := s.repo.testMaxes.Map(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load test maxes")
	}
	return maxes, nil
}

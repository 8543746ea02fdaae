package program

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/okorolev/fitcoach/internal/errors"
	"github.com/okorolev/fitcoach/internal/sqlite"
)

// ErrNotFound is returned when a requested record does not exist or is not
// visible to the authenticated user.
var ErrNotFound = errors.NewSentinel("not found")

const dateFormat = time.DateOnly
const timestampFormat = "2006-01-02T15:04:05.000Z"

func formatDate(t time.Time) string {
	return t.Format(dateFormat)
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampFormat)
}

// baseRepository carries the shared database handle and logger.
type baseRepository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func newBaseRepository(db *sqlite.Database, logger *slog.Logger) baseRepository {
	return baseRepository{db: db, logger: logger}
}

// rollback rolls a transaction back unless it already committed. Used in
// defers so that error paths cannot leak open transactions.
func (r baseRepository) rollback(tx *sql.Tx, err *error) {
	if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
		*err = errors.Join(*err, errors.Wrap(rollbackErr, "rollback transaction"))
	}
}

// repository groups the per-aggregate repositories behind one factory.
type repository struct {
	questionnaire *sqliteQuestionnaireRepository
	testMaxes     *sqliteTestMaxRepository
	programs      *sqliteProgramRepository
	sessions      *sqliteSessionRepository
	exercises     *sqliteExerciseRepository
	logs          *sqliteLogRepository
}

func newRepository(db *sqlite.Database, logger *slog.Logger) *repository {
	base := newBaseRepository(db, logger)
	exercises := &sqliteExerciseRepository{baseRepository: base}
	return &repository{
		questionnaire: &sqliteQuestionnaireRepository{baseRepository: base},
		testMaxes:     &sqliteTestMaxRepository{baseRepository: base},
		programs:      &sqliteProgramRepository{baseRepository: base},
		sessions:      &sqliteSessionRepository{baseRepository: base, exerciseRepo: exercises},
		exercises:     exercises,
		logs:          &sqliteLogRepository{baseRepository: base},
	}
}

package program_test

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/okorolev/fitcoach/internal/contexthelpers"
	"github.com/okorolev/fitcoach/internal/program"
	"github.com/okorolev/fitcoach/internal/sqlite"
	"github.com/okorolev/fitcoach/internal/testhelpers"
)

const testUserID int64 = 1

// newTestService spins up an in-memory database seeded with the exercise
// catalog fixtures and returns a context authenticated as testUserID.
func newTestService(t *testing.T) (context.Context, *sqlite.Database, *program.Service) {
	t.Helper()

	ctx := t.Context()
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))

	db, err := sqlite.NewDatabase(ctx, ":memory:", logger)
	if err != nil {
		t.Fatalf("create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if _, err = db.ReadWrite.ExecContext(ctx,
		"INSERT INTO users (id, display_name) VALUES (?, ?)", testUserID, "Test User"); err != nil {
		t.Fatalf("insert test user: %v", err)
	}

	return authenticatedContext(ctx, testUserID), db, program.NewService(db, logger)
}

func authenticatedContext(ctx context.Context, userID int64) context.Context {
	ctx = context.WithValue(ctx, contexthelpers.IsAuthenticatedContextKey, true)
	ctx = context.WithValue(ctx, contexthelpers.AuthenticatedUserIDContextKey, userID)
	return ctx
}

func Test_Generate_schedule(t *testing.T) {
	ctx, _, svc := newTestService(t)

	programID, err := svc.Generate(ctx, time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("generate program: %v", err)
	}
	if programID == 0 {
		t.Fatal("expected a non-zero program id")
	}

	current, err := svc.CurrentProgram(ctx)
	if err != nil {
		t.Fatalf("get current program: %v", err)
	}

	if current.ID != programID {
		t.Errorf("current program id %d, want %d", current.ID, programID)
	}
	if current.Split != program.SplitPPL {
		t.Errorf("split %v, want %v without a questionnaire", current.Split, program.SplitPPL)
	}
	if current.Status != program.StatusActive {
		t.Errorf("status %v, want %v", current.Status, program.StatusActive)
	}
	if len(current.Sessions) != 36 {
		t.Fatalf("program has %d sessions, want 36", len(current.Sessions))
	}

	// 2026-03-04 is a Wednesday so the schedule anchors to Monday 2026-03-09.
	start := time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)
	if !current.StartDate.Equal(start) {
		t.Errorf("program starts %v, want the anchored Monday %v", current.StartDate, start)
	}
	if span := current.EndDate.Sub(current.StartDate); span != 84*24*time.Hour {
		t.Errorf("program spans %v (%v to %v), want 84 days",
			span, current.StartDate, current.EndDate)
	}
	wantWeekdays := []time.Weekday{time.Monday, time.Wednesday, time.Friday}
	for i, session := range current.Sessions {
		if got, want := session.Date.Weekday(), wantWeekdays[i%3]; got != want {
			t.Errorf("session %d falls on %v, want %v", i, got, want)
		}
		if session.Date.Before(start) || !session.Date.Before(start.AddDate(0, 0, 84)) {
			t.Errorf("session %d date %v is outside the 84-day window", i, session.Date)
		}
		if session.Completed {
			t.Errorf("session %d starts out completed", i)
		}
	}
}

func Test_Generate_sessionExercisesComeFromDayPool(t *testing.T) {
	ctx, _, svc := newTestService(t)

	if _, err := svc.Generate(ctx, time.Now()); err != nil {
		t.Fatalf("generate program: %v", err)
	}
	current, err := svc.CurrentProgram(ctx)
	if err != nil {
		t.Fatalf("get current program: %v", err)
	}

	poolGroups := map[program.DayType]map[string]bool{
		program.DayTypePush: {"Грудь": true, "Плечи": true, "Руки": true},
		program.DayTypePull: {"Спина": true, "Руки": true},
		program.DayTypeLegs: {"Ноги": true},
	}

	for _, shallow := range current.Sessions {
		session, getErr := svc.GetSession(ctx, shallow.ID)
		if getErr != nil {
			t.Fatalf("get session %d: %v", shallow.ID, getErr)
		}
		if len(session.Exercises) == 0 || len(session.Exercises) > 6 {
			t.Errorf("session %d has %d exercises, want 1..6", session.ID, len(session.Exercises))
		}
		allowed := poolGroups[session.DayType]
		for _, se := range session.Exercises {
			if !allowed[se.Exercise.MuscleGroup] {
				t.Errorf("session %d (%s) contains %q from muscle group %q",
					session.ID, session.DayType, se.Exercise.Name, se.Exercise.MuscleGroup)
			}
			if len(se.Sets) != 3 {
				t.Errorf("%q prescribed %d sets, want 3", se.Exercise.Name, len(se.Sets))
			}
		}
	}
}

func Test_Generate_weightsFollowTestMax(t *testing.T) {
	ctx, db, svc := newTestService(t)

	_, err := db.ReadWrite.ExecContext(ctx, `
		INSERT INTO test_maxes (user_id, anchor_key, weight_kg, measured_at)
		VALUES (?, 'chest_press', 100, '2026-01-05T10:00:00.000Z')`, testUserID)
	if err != nil {
		t.Fatalf("insert test max: %v", err)
	}

	if _, err = svc.Generate(ctx, time.Now()); err != nil {
		t.Fatalf("generate program: %v", err)
	}
	current, err := svc.CurrentProgram(ctx)
	if err != nil {
		t.Fatalf("get current program: %v", err)
	}

	wantWeights := []float64{77.5, 82.5, 87.5}
	checkedAnchored := false
	for _, shallow := range current.Sessions {
		session, getErr := svc.GetSession(ctx, shallow.ID)
		if getErr != nil {
			t.Fatalf("get session %d: %v", shallow.ID, getErr)
		}
		for _, se := range session.Exercises {
			anchored := se.Exercise.AnchorKey != nil && *se.Exercise.AnchorKey == program.AnchorChestPress
			for i, set := range se.Sets {
				if anchored {
					checkedAnchored = true
					if set.WeightKg == nil || *set.WeightKg != wantWeights[i] {
						t.Errorf("%q set %d got %v, want %.1f kg", se.Exercise.Name, set.SetNumber, set.WeightKg, wantWeights[i])
					}
				} else if se.Exercise.AnchorKey == nil && set.PercentOfMax == nil {
					t.Errorf("%q set %d has neither weight nor percent", se.Exercise.Name, set.SetNumber)
				}
			}
		}
	}
	if !checkedAnchored {
		t.Log("no chest press exercise was selected in this run, invariant vacuously true")
	}
}

func Test_Generate_olderUserGetsUpperLowerFull(t *testing.T) {
	ctx, _, svc := newTestService(t)

	err := svc.SaveQuestionnaire(ctx, program.Questionnaire{AgeRange: "56+", Limitations: "none"})
	if err != nil {
		t.Fatalf("save questionnaire: %v", err)
	}

	if _, err = svc.Generate(ctx, time.Now()); err != nil {
		t.Fatalf("generate program: %v", err)
	}
	current, err := svc.CurrentProgram(ctx)
	if err != nil {
		t.Fatalf("get current program: %v", err)
	}

	if current.Split != program.SplitULF {
		t.Fatalf("split %v, want %v", current.Split, program.SplitULF)
	}
	wantDays := []program.DayType{program.DayTypeUpper, program.DayTypeLower, program.DayTypeFull}
	for i, session := range current.Sessions {
		if session.DayType != wantDays[i%3] {
			t.Errorf("session %d day type %v, want %v", i, session.DayType, wantDays[i%3])
		}
	}
}

func Test_Regenerate_preservesHistoryAndHonoursOverride(t *testing.T) {
	ctx, db, svc := newTestService(t)

	firstID, err := svc.Generate(ctx, time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("generate first program: %v", err)
	}

	override := program.SplitFullBody
	secondID, err := svc.Regenerate(ctx, time.Date(2026, time.April, 6, 0, 0, 0, 0, time.UTC), &override)
	if err != nil {
		t.Fatalf("regenerate program: %v", err)
	}
	if secondID == firstID {
		t.Fatal("regeneration reused the same program id")
	}

	var status string
	err = db.ReadOnly.QueryRowContext(ctx, "SELECT status FROM programs WHERE id = ?", firstID).Scan(&status)
	if err != nil {
		t.Fatalf("query first program status: %v", err)
	}
	if status != "retired" {
		t.Errorf("first program status %q, want retired", status)
	}

	var oldSessions int
	err = db.ReadOnly.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM workout_sessions WHERE program_id = ?", firstID).Scan(&oldSessions)
	if err != nil {
		t.Fatalf("count old sessions: %v", err)
	}
	if oldSessions != 36 {
		t.Errorf("old program kept %d sessions, want 36", oldSessions)
	}

	current, err := svc.CurrentProgram(ctx)
	if err != nil {
		t.Fatalf("get current program: %v", err)
	}
	if current.ID != secondID {
		t.Errorf("current program id %d, want %d", current.ID, secondID)
	}
	if current.Split != program.SplitFullBody {
		t.Errorf("split %v, want override %v", current.Split, program.SplitFullBody)
	}
	for i, session := range current.Sessions {
		if session.DayType != program.DayTypeFull {
			t.Errorf("session %d day type %v, want FULL", i, session.DayType)
		}
	}
}

// insertAnchoredSession creates a minimal program with one session containing
// the named catalog exercise and returns the session and exercise ids.
func insertAnchoredSession(
	t *testing.T, ctx context.Context, db *sqlite.Database, exerciseName string,
) (sessionID, exerciseID int64) {
	t.Helper()

	err := db.ReadOnly.QueryRowContext(ctx,
		"SELECT id FROM exercises WHERE name = ?", exerciseName).Scan(&exerciseID)
	if err != nil {
		t.Fatalf("look up exercise %q: %v", exerciseName, err)
	}

	result, err := db.ReadWrite.ExecContext(ctx, `
		INSERT INTO programs (user_id, name, start_date, end_date, split, status, created_at)
		VALUES (?, 'test program', '2026-03-02', '2026-05-25', 'PPL', 'active', '2026-03-01T12:00:00.000Z')`,
		testUserID)
	if err != nil {
		t.Fatalf("insert program: %v", err)
	}
	programID, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("program id: %v", err)
	}

	result, err = db.ReadWrite.ExecContext(ctx, `
		INSERT INTO workout_sessions (program_id, user_id, scheduled_date, day_type)
		VALUES (?, ?, '2026-03-02', 'PUSH')`, programID, testUserID)
	if err != nil {
		t.Fatalf("insert session: %v", err)
	}
	sessionID, err = result.LastInsertId()
	if err != nil {
		t.Fatalf("session id: %v", err)
	}

	_, err = db.ReadWrite.ExecContext(ctx, `
		INSERT INTO session_exercises (session_id, exercise_id, order_number)
		VALUES (?, ?, 1)`, sessionID, exerciseID)
	if err != nil {
		t.Fatalf("insert session exercise: %v", err)
	}

	return sessionID, exerciseID
}

func queryTestMax(t *testing.T, ctx context.Context, db *sqlite.Database, anchor string) (float64, bool) {
	t.Helper()

	var weightKg float64
	err := db.ReadOnly.QueryRowContext(ctx,
		"SELECT weight_kg FROM test_maxes WHERE user_id = ? AND anchor_key = ?",
		testUserID, anchor).Scan(&weightKg)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false
	}
	if err != nil {
		t.Fatalf("query test max: %v", err)
	}
	return weightKg, true
}

func Test_LogSet_fiveRepMaxOnlyMovesUp(t *testing.T) {
	ctx, db, svc := newTestService(t)
	sessionID, exerciseID := insertAnchoredSession(t, ctx, db, "Жим штанги лёжа")

	for setNumber, weightKg := range []float64{80, 60, 90, 85} {
		err := svc.LogSet(ctx, sessionID, exerciseID, setNumber+1, 5, weightKg, "")
		if err != nil {
			t.Fatalf("log %.0f kg set: %v", weightKg, err)
		}
	}

	maxKg, ok := queryTestMax(t, ctx, db, "chest_press")
	if !ok {
		t.Fatal("no test max recorded")
	}
	if maxKg != 90 {
		t.Errorf("test max %.1f kg, want 90", maxKg)
	}

	var logged int
	err := db.ReadOnly.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM workout_logs WHERE user_id = ?", testUserID).Scan(&logged)
	if err != nil {
		t.Fatalf("count workout logs: %v", err)
	}
	if logged != 4 {
		t.Errorf("diary has %d entries, want all 4 kept", logged)
	}
}

func Test_LogSet_concurrentWritersKeepHighest(t *testing.T) {
	ctx, db, svc := newTestService(t)
	sessionID, exerciseID := insertAnchoredSession(t, ctx, db, "Жим штанги лёжа")

	weights := []float64{70, 95, 80, 85, 90, 75}
	var wg sync.WaitGroup
	errs := make([]error, len(weights))
	for i, weightKg := range weights {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = svc.LogSet(ctx, sessionID, exerciseID, 1, 5, weightKg, "")
		}()
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("concurrent log %d: %v", i, err)
		}
	}

	maxKg, ok := queryTestMax(t, ctx, db, "chest_press")
	if !ok {
		t.Fatal("no test max recorded")
	}
	if maxKg != 95 {
		t.Errorf("test max %.1f kg, want 95 regardless of write order", maxKg)
	}
}

func Test_LogSet_nonFiveRepSetDoesNotTouchMax(t *testing.T) {
	ctx, db, svc := newTestService(t)
	sessionID, exerciseID := insertAnchoredSession(t, ctx, db, "Жим штанги лёжа")

	if err := svc.LogSet(ctx, sessionID, exerciseID, 1, 10, 120, ""); err != nil {
		t.Fatalf("log set: %v", err)
	}

	if _, ok := queryTestMax(t, ctx, db, "chest_press"); ok {
		t.Error("a 10-rep set created a test max")
	}
}

func Test_LogSet_unanchoredExerciseLogsWithoutMax(t *testing.T) {
	ctx, db, svc := newTestService(t)
	sessionID, exerciseID := insertAnchoredSession(t, ctx, db, "Разводка гантелей лёжа")

	if err := svc.LogSet(ctx, sessionID, exerciseID, 1, 5, 30, ""); err != nil {
		t.Fatalf("log set: %v", err)
	}

	var maxes int
	err := db.ReadOnly.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM test_maxes WHERE user_id = ?", testUserID).Scan(&maxes)
	if err != nil {
		t.Fatalf("count test maxes: %v", err)
	}
	if maxes != 0 {
		t.Errorf("unanchored exercise created %d test maxes", maxes)
	}
}

func Test_LogSet_rejectsInvalidInput(t *testing.T) {
	ctx, db, svc := newTestService(t)
	sessionID, exerciseID := insertAnchoredSession(t, ctx, db, "Жим штанги лёжа")

	tests := []struct {
		name      string
		setNumber int
		reps      int
		weightKg  float64
	}{
		{name: "zero reps", setNumber: 1, reps: 0, weightKg: 80},
		{name: "zero weight", setNumber: 1, reps: 5, weightKg: 0},
		{name: "negative weight", setNumber: 1, reps: 5, weightKg: -10},
		{name: "zero set number", setNumber: 0, reps: 5, weightKg: 80},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.LogSet(ctx, sessionID, exerciseID, tt.setNumber, tt.reps, tt.weightKg, "")
			if !errors.Is(err, program.ErrInvalidLog) {
				t.Errorf("got %v, want ErrInvalidLog", err)
			}
		})
	}
}

func Test_LogSet_unknownSessionWritesNothing(t *testing.T) {
	ctx, db, svc := newTestService(t)

	err := svc.LogSet(ctx, 99999, 1, 1, 5, 80, "")
	if !errors.Is(err, program.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound for unknown session", err)
	}

	var logged int
	err = db.ReadOnly.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM workout_logs WHERE user_id = ?", testUserID).Scan(&logged)
	if err != nil {
		t.Fatalf("count workout logs: %v", err)
	}
	if logged != 0 {
		t.Errorf("diary has %d entries, want none after a rejected log", logged)
	}
}

func Test_GetSession_hidesOtherUsersSessions(t *testing.T) {
	ctx, db, svc := newTestService(t)
	sessionID, _ := insertAnchoredSession(t, ctx, db, "Жим штанги лёжа")

	if _, err := db.ReadWrite.ExecContext(ctx,
		"INSERT INTO users (id, display_name) VALUES (2, 'Other User')"); err != nil {
		t.Fatalf("insert other user: %v", err)
	}
	otherCtx := authenticatedContext(t.Context(), 2)

	_, err := svc.GetSession(otherCtx, sessionID)
	if !errors.Is(err, program.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound for another user's session", err)
	}
}

func Test_CompleteSession(t *testing.T) {
	ctx, db, svc := newTestService(t)
	sessionID, _ := insertAnchoredSession(t, ctx, db, "Жим штанги лёжа")

	if err := svc.CompleteSession(ctx, sessionID); err != nil {
		t.Fatalf("complete session: %v", err)
	}

	session, err := svc.GetSession(ctx, sessionID)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if !session.Completed {
		t.Error("session not marked completed")
	}

	if err = svc.CompleteSession(ctx, 99999); !errors.Is(err, program.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound for unknown session", err)
	}
}

func Test_Questionnaire_roundTripAndUpsert(t *testing.T) {
	ctx, _, svc := newTestService(t)

	if _, err := svc.GetQuestionnaire(ctx); !errors.Is(err, program.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound before saving", err)
	}

	first := program.Questionnaire{Goal: "muscle", Level: "beginner", AgeRange: "26-35", Limitations: "none"}
	if err := svc.SaveQuestionnaire(ctx, first); err != nil {
		t.Fatalf("save questionnaire: %v", err)
	}

	updated := first
	updated.Limitations = "knee pain"
	if err := svc.SaveQuestionnaire(ctx, updated); err != nil {
		t.Fatalf("resave questionnaire: %v", err)
	}

	got, err := svc.GetQuestionnaire(ctx)
	if err != nil {
		t.Fatalf("get questionnaire: %v", err)
	}
	if got.Limitations != "knee pain" {
		t.Errorf("limitations %q, want resubmission to win", got.Limitations)
	}
}

// Package program generates 12-week periodized workout programs and tracks
// the rolling five-rep maxes that calibrate their loads.
package program

import (
	"time"
)

// Split identifies a weekly training-day template.
type Split string

const (
	// SplitPPL is the default push/pull/legs split.
	SplitPPL Split = "PPL"
	// SplitULF is the gentler upper/lower/full split for older users or
	// users with reported limitations.
	SplitULF Split = "ULF"
	// SplitFullBody runs full-body sessions on all three days. It is never
	// auto-selected, only available as an explicit regeneration override.
	SplitFullBody Split = "FULLx3"
)

// DayType labels the muscle-group focus of a single session within a split.
type DayType string

const (
	DayTypePush  DayType = "PUSH"
	DayTypePull  DayType = "PULL"
	DayTypeLegs  DayType = "LEGS"
	DayTypeUpper DayType = "UPPER"
	DayTypeLower DayType = "LOWER"
	DayTypeFull  DayType = "FULL"
)

// AnchorKey ties a catalog exercise to a movement pattern tracked in the
// test-max store.
type AnchorKey string

const (
	AnchorChestPress    AnchorKey = "chest_press"
	AnchorVerticalPull  AnchorKey = "vertical_pull"
	AnchorShoulderPress AnchorKey = "shoulder_press"
	AnchorLegPress      AnchorKey = "leg_press"
	AnchorHipHinge      AnchorKey = "hip_hinge"
)

// Status describes the lifecycle state of a program. A user has at most one
// active program; regeneration retires the previous one.
type Status string

const (
	StatusActive  Status = "active"
	StatusRetired Status = "retired"
)

// Questionnaire is the per-user singleton of onboarding answers.
type Questionnaire struct {
	Goal        string
	Level       string
	AgeRange    string
	Equipment   string
	BodyType    string
	Limitations string
	CompletedAt time.Time
}

// Exercise is a read-only catalog entry.
type Exercise struct {
	ID                  int64
	Name                string
	AnchorKey           *AnchorKey
	MuscleGroupID       int64
	MuscleGroup         string
	DescriptionMarkdown string
}

// TargetSet is one prescribed set. Exactly one of WeightKg and PercentOfMax
// is set: an absolute load when a five-rep max was known at generation time,
// a percentage placeholder otherwise.
type TargetSet struct {
	SetNumber    int
	TargetReps   int
	WeightKg     *float64
	PercentOfMax *float64
}

// SessionExercise is an exercise materialized into a session with its
// prescribed sets.
type SessionExercise struct {
	ID          int64
	Exercise    Exercise
	OrderNumber int
	Sets        []TargetSet
}

// Session is one scheduled workout within a program.
type Session struct {
	ID        int64
	ProgramID int64
	Date      time.Time
	Name      string
	DayType   DayType
	Completed bool
	Exercises []SessionExercise
}

// Program is a generated 12-week workout program.
type Program struct {
	ID          int64
	UserID      int64
	CreatedBy   int64
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	Split       Split
	Status      Status
	CreatedAt   time.Time
	Sessions    []Session
}

// LogEntry is one appended training-diary row.
type LogEntry struct {
	SessionID  int64
	ExerciseID int64
	SetNumber  int
	Reps       int
	WeightKg   float64
	Notes      string
}

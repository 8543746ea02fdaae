package main

import (
	"time"

	"github.com/okorolev/fitcoach/internal/program"
)

// JSON representations of the domain models. Dates render as YYYY-MM-DD.

type programJSON struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	StartDate   string        `json:"start_date"`
	EndDate     string        `json:"end_date"`
	Split       string        `json:"split"`
	Status      string        `json:"status"`
	Sessions    []sessionJSON `json:"sessions,omitempty"`
}

type sessionJSON struct {
	ID        int64                 `json:"id"`
	ProgramID int64                 `json:"program_id"`
	Date      string                `json:"date"`
	DayType   string                `json:"day_type"`
	Completed bool                  `json:"completed"`
	Exercises []sessionExerciseJSON `json:"exercises,omitempty"`
}

type sessionExerciseJSON struct {
	ExerciseID  int64           `json:"exercise_id"`
	Name        string          `json:"name"`
	MuscleGroup string          `json:"muscle_group"`
	OrderNumber int             `json:"order_number"`
	Sets        []targetSetJSON `json:"sets"`
}

type targetSetJSON struct {
	SetNumber    int      `json:"set_number"`
	TargetReps   int      `json:"target_reps"`
	WeightKg     *float64 `json:"weight_kg,omitempty"`
	PercentOfMax *float64 `json:"percent_of_max,omitempty"`
}

type exerciseJSON struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	MuscleGroup string  `json:"muscle_group"`
	AnchorKey   *string `json:"anchor_key,omitempty"`
}

type questionnaireJSON struct {
	Goal        string `json:"goal"`
	Level       string `json:"level"`
	AgeRange    string `json:"age_range"`
	Equipment   string `json:"equipment"`
	BodyType    string `json:"body_type"`
	Limitations string `json:"limitations"`
}

func toProgramJSON(p program.Program) programJSON {
	out := programJSON{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		StartDate:   p.StartDate.Format(time.DateOnly),
		EndDate:     p.EndDate.Format(time.DateOnly),
		Split:       string(p.Split),
		Status:      string(p.Status),
	}
	for _, session := range p.Sessions {
		out.Sessions = append(out.Sessions, toSessionJSON(session))
	}
	return out
}

func toSessionJSON(s program.Session) sessionJSON {
	out := sessionJSON{
		ID:        s.ID,
		ProgramID: s.ProgramID,
		Date:      s.Date.Format(time.DateOnly),
		DayType:   string(s.DayType),
		Completed: s.Completed,
	}
	for _, se := range s.Exercises {
		sets := make([]targetSetJSON, 0, len(se.Sets))
		for _, set := range se.Sets {
			sets = append(sets, targetSetJSON{
				SetNumber:    set.SetNumber,
				TargetReps:   set.TargetReps,
				WeightKg:     set.WeightKg,
				PercentOfMax: set.PercentOfMax,
			})
		}
		out.Exercises = append(out.Exercises, sessionExerciseJSON{
			ExerciseID:  se.Exercise.ID,
			Name:        se.Exercise.Name,
			MuscleGroup: se.Exercise.MuscleGroup,
			OrderNumber: se.OrderNumber,
			Sets:        sets,
		})
	}
	return out
}

func toExerciseJSON(e program.Exercise) exerciseJSON {
	out := exerciseJSON{
		ID:          e.ID,
		Name:        e.Name,
		MuscleGroup: e.MuscleGroup,
	}
	if e.AnchorKey != nil {
		anchor := string(*e.AnchorKey)
		out.AnchorKey = &anchor
	}
	return out
}

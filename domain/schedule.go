package domain

import (
	"context"
	"errors"
)

// ScheduleCell is one slot in the weekly timetable grid. Day is 0 (Monday)
// through 6, Period counts lesson hours from 0.
type ScheduleCell struct {
	Day     int    `json:"day"`
	Period  int    `json:"period"`
	Subject string `json:"subject"`
	ClassID string `json:"class_id"`
}

// WeeklySchedule is a teacher's whole timetable, persisted as one blob.
type WeeklySchedule struct {
	Periods int            `json:"periods"`
	Cells   []ScheduleCell `json:"cells"`
}

var ErrInvalidScheduleCell = errors.New("schedule cell out of range")

type ScheduleUseCase interface {
	GetSchedule(ctx context.Context, userID int) (*WeeklySchedule, error)
	SaveSchedule(ctx context.Context, userID int, schedule *WeeklySchedule) error
}

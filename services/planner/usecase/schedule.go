package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"sinifplanim/config"
	"sinifplanim/domain"

	"github.com/sirupsen/logrus"
)

const defaultSchedulePeriods = 8

// scheduleUC persists each teacher's timetable as one blob through the same
// key-value collaborator the record store uses.
type scheduleUC struct {
	blob    domain.BlobStore
	log     *logrus.Logger
	TimeOut time.Duration
}

func NewScheduleUseCase(blob domain.BlobStore, timeOut time.Duration) domain.ScheduleUseCase {
	return &scheduleUC{
		blob:    blob,
		log:     config.GetLogrusInstance(),
		TimeOut: timeOut,
	}
}

func scheduleKey(userID int) string {
	return "schedule:" + strconv.Itoa(userID)
}

func (sUC *scheduleUC) GetSchedule(ctx context.Context, userID int) (*domain.WeeklySchedule, error) {
	ctx, cancel := context.WithTimeout(ctx, sUC.TimeOut)
	defer cancel()

	empty := &domain.WeeklySchedule{Periods: defaultSchedulePeriods, Cells: []domain.ScheduleCell{}}

	raw, found, err := sUC.blob.Read(ctx, scheduleKey(userID))
	if err != nil {
		sUC.log.Warnf("schedule for user %d could not be read, starting empty: %v", userID, err)
		return empty, nil
	}
	if !found {
		return empty, nil
	}

	var schedule domain.WeeklySchedule
	if err := json.Unmarshal([]byte(raw), &schedule); err != nil {
		sUC.log.Warnf("schedule for user %d is corrupt, starting empty: %v", userID, err)
		return empty, nil
	}
	if schedule.Cells == nil {
		schedule.Cells = []domain.ScheduleCell{}
	}
	return &schedule, nil
}

func (sUC *scheduleUC) SaveSchedule(ctx context.Context, userID int, schedule *domain.WeeklySchedule) error {
	ctx, cancel := context.WithTimeout(ctx, sUC.TimeOut)
	defer cancel()

	if schedule.Periods <= 0 {
		schedule.Periods = defaultSchedulePeriods
	}
	for _, cell := range schedule.Cells {
		if cell.Day < 0 || cell.Day > 6 || cell.Period < 0 || cell.Period >= schedule.Periods {
			return fmt.Errorf("%w: day %d period %d", domain.ErrInvalidScheduleCell, cell.Day, cell.Period)
		}
	}

	data, err := json.Marshal(schedule)
	if err == nil {
		err = sUC.blob.Write(ctx, scheduleKey(userID), string(data))
	}
	if err != nil {
		config.BlobPersistFailures.Inc()
		sUC.log.Warnf("schedule for user %d not persisted: %v", userID, err)
		return fmt.Errorf("%w: %v", domain.ErrPersistFailed, err)
	}
	return nil
}

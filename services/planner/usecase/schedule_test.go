package usecase

import (
	"context"
	"testing"
	"time"

	"sinifplanim/domain"
	"sinifplanim/services/planner/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleAbsentReturnsEmpty(t *testing.T) {
	uc := NewScheduleUseCase(repository.NewMemoryBlobStore(), 5*time.Second)

	schedule, err := uc.GetSchedule(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, defaultSchedulePeriods, schedule.Periods)
	assert.Empty(t, schedule.Cells)
}

func TestScheduleRoundTrip(t *testing.T) {
	blob := repository.NewMemoryBlobStore()
	uc := NewScheduleUseCase(blob, 5*time.Second)
	ctx := context.Background()

	in := &domain.WeeklySchedule{
		Periods: 6,
		Cells: []domain.ScheduleCell{
			{Day: 0, Period: 0, Subject: "Matematik", ClassID: "6A"},
			{Day: 4, Period: 5, Subject: "Fen Bilgisi", ClassID: "7B"},
		},
	}
	require.NoError(t, uc.SaveSchedule(ctx, 1, in))

	out, err := uc.GetSchedule(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, in.Periods, out.Periods)
	assert.Equal(t, in.Cells, out.Cells)

	// Schedules are keyed per user.
	other, err := uc.GetSchedule(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, other.Cells)
}

func TestScheduleRejectsOutOfRangeCells(t *testing.T) {
	uc := NewScheduleUseCase(repository.NewMemoryBlobStore(), 5*time.Second)
	ctx := context.Background()

	err := uc.SaveSchedule(ctx, 1, &domain.WeeklySchedule{
		Periods: 6,
		Cells:   []domain.ScheduleCell{{Day: 7, Period: 0, Subject: "X"}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidScheduleCell)

	err = uc.SaveSchedule(ctx, 1, &domain.WeeklySchedule{
		Periods: 6,
		Cells:   []domain.ScheduleCell{{Day: 1, Period: 6, Subject: "X"}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidScheduleCell)
}

func TestScheduleCorruptBlobDegradesToEmpty(t *testing.T) {
	blob := repository.NewMemoryBlobStore()
	blob.Seed("schedule:1", "{{nope")
	uc := NewScheduleUseCase(blob, 5*time.Second)

	schedule, err := uc.GetSchedule(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, schedule.Cells)
}

func TestSchedulePersistFailure(t *testing.T) {
	blob := repository.NewMemoryBlobStore()
	blob.FailWrites = true
	uc := NewScheduleUseCase(blob, 5*time.Second)

	err := uc.SaveSchedule(context.Background(), 1, &domain.WeeklySchedule{Periods: 6})
	assert.ErrorIs(t, err, domain.ErrPersistFailed)
}

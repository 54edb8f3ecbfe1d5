package usecase

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"sinifplanim/domain"
	"sinifplanim/services/planner/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUserID = 1

func newRecordStore(t *testing.T) (domain.DailyRecordUseCase, *repository.MemoryBlobStore) {
	t.Helper()
	blob := repository.NewMemoryBlobStore()
	// Start from an empty collection, not the example seed.
	blob.Seed("daily_records:1", "[]")
	return NewDailyRecordUseCase(blob, 5*time.Second), blob
}

func statusEvent(value string) domain.NewRecordEvent {
	return domain.NewRecordEvent{Type: domain.EventTypeStatus, Value: value}
}

func noteEvent(value string) domain.NewRecordEvent {
	return domain.NewRecordEvent{Type: domain.EventTypeNote, Value: value}
}

func persistedRecords(t *testing.T, blob *repository.MemoryBlobStore) []domain.DailyRecord {
	t.Helper()
	raw, found, err := blob.Read(context.Background(), "daily_records:1")
	require.NoError(t, err)
	require.True(t, found)
	var records []domain.DailyRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &records))
	return records
}

func TestMigrationIsLossless(t *testing.T) {
	absent := "Y"
	legacy := []domain.LegacyDailyRecord{
		{ClassID: "6A", Date: "2024-05-01", StudentID: "s1", Status: &absent, Description: "velisi aradı"},
	}

	records := MigrateLegacyRecords(legacy)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "6A-2024-05-01-s1", rec.ID)
	require.Len(t, rec.Events, 2)
	assert.Equal(t, domain.EventTypeStatus, rec.Events[0].Type)
	assert.Equal(t, "Y", rec.Events[0].Value)
	assert.Equal(t, domain.EventTypeNote, rec.Events[1].Type)
	assert.Equal(t, "velisi aradı", rec.Events[1].Value)
}

func TestMigrationSkipsEmptyFields(t *testing.T) {
	plus := "+"
	legacy := []domain.LegacyDailyRecord{
		{ClassID: "6A", Date: "2024-05-01", StudentID: "s1", Status: &plus},
		{ClassID: "6A", Date: "2024-05-01", StudentID: "s2", Description: "sadece not"},
		{ClassID: "6A", Date: "2024-05-01", StudentID: "s3"},
	}

	records := MigrateLegacyRecords(legacy)
	require.Len(t, records, 3)
	assert.Len(t, records[0].Events, 1)
	assert.Len(t, records[1].Events, 1)
	assert.Equal(t, domain.EventTypeNote, records[1].Events[0].Type)
	assert.Empty(t, records[2].Events)
}

func TestMigrationGroupsByNaturalKey(t *testing.T) {
	plus := "+"
	late := "G"
	legacy := []domain.LegacyDailyRecord{
		{ClassID: "6A", Date: "2024-05-01", StudentID: "s1", Status: &plus},
		{ClassID: "6A", Date: "2024-05-01", StudentID: "s1", Status: &late, Description: "servisi kaçırdı"},
	}

	records := MigrateLegacyRecords(legacy)
	require.Len(t, records, 1)
	require.Len(t, records[0].Events, 3)
	assert.Equal(t, "+", records[0].Events[0].Value)
	assert.Equal(t, "G", records[0].Events[1].Value)
	assert.Equal(t, "servisi kaçırdı", records[0].Events[2].Value)
}

func TestMigrationIsDeterministic(t *testing.T) {
	half := "½"
	legacy := []domain.LegacyDailyRecord{
		{ClassID: "6A", Date: "2024-05-01", StudentID: "s1", Status: &half, Description: "x"},
		{ClassID: "6B", Date: "2024-05-01", StudentID: "s2", Description: "y"},
	}

	assert.Equal(t, MigrateLegacyRecords(legacy), MigrateLegacyRecords(legacy))
}

func TestLoadMigratesLegacyBlobOnce(t *testing.T) {
	blob := repository.NewMemoryBlobStore()
	blob.Seed("daily_records:1", `[{"classId":"6A","date":"2024-05-01","studentId":"s1","status":"+","description":"iyi"}]`)

	uc := NewDailyRecordUseCase(blob, 5*time.Second)
	records, err := uc.GetRecordsForDate(context.Background(), testUserID, "6A", "2024-05-01")
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Len(t, records[0].Events, 2)

	// The migrated result replaced the legacy blob in one write.
	persisted := persistedRecords(t, blob)
	require.Len(t, persisted, 1)
	assert.Equal(t, "6A-2024-05-01-s1", persisted[0].ID)

	// Loading the persisted v2 blob again must not migrate a second time.
	uc2 := NewDailyRecordUseCase(blob, 5*time.Second)
	records2, err := uc2.GetRecordsForDate(context.Background(), testUserID, "6A", "2024-05-01")
	require.NoError(t, err)
	assert.Equal(t, records, records2)
}

func TestFirstLoadSeedsExampleData(t *testing.T) {
	blob := repository.NewMemoryBlobStore()
	uc := NewDailyRecordUseCase(blob, 5*time.Second)

	today := time.Now().Format("2006-01-02")
	records, err := uc.GetRecordsForDate(context.Background(), testUserID, "ornek-6a", today)
	require.NoError(t, err)
	require.NotEmpty(t, records)

	// Seed data went through the migration: events, never flat fields.
	for _, rec := range records {
		assert.NotEmpty(t, rec.Events)
	}
	assert.NotZero(t, blob.WriteCount, "seed must be persisted")
}

func TestCorruptBlobFallsBackToEmpty(t *testing.T) {
	blob := repository.NewMemoryBlobStore()
	blob.Seed("daily_records:1", "{not json")

	uc := NewDailyRecordUseCase(blob, 5*time.Second)
	records, err := uc.GetRecordsForDate(context.Background(), testUserID, "6A", "2024-05-01")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestAddEventNaturalKeyUniqueness(t *testing.T) {
	uc, blob := newRecordStore(t)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, err := uc.AddEvent(ctx, testUserID, "6A", "s1", "2024-05-01", noteEvent("tekrar"))
		require.NoError(t, err)
	}

	persisted := persistedRecords(t, blob)
	require.Len(t, persisted, 1, "same triple must always hit the same record")
	assert.Equal(t, "6A-2024-05-01-s1", persisted[0].ID)
	assert.Len(t, persisted[0].Events, 4, "addEvent is not idempotent")
}

func TestAddEventValidation(t *testing.T) {
	uc, _ := newRecordStore(t)
	ctx := context.Background()

	_, err := uc.AddEvent(ctx, testUserID, "6A", "s1", "01.05.2024", statusEvent("+"))
	assert.ErrorIs(t, err, domain.ErrInvalidDate)

	_, err = uc.AddEvent(ctx, testUserID, "6A", "s1", "2024-05-01", statusEvent("X"))
	assert.ErrorIs(t, err, domain.ErrInvalidEvent)

	_, err = uc.AddEvent(ctx, testUserID, "6A", "s1", "2024-05-01", domain.NewRecordEvent{Type: "other", Value: "v"})
	assert.ErrorIs(t, err, domain.ErrInvalidEvent)
}

func TestBulkMatchesSequential(t *testing.T) {
	bulkUC, bulkBlob := newRecordStore(t)
	seqUC, seqBlob := newRecordStore(t)
	ctx := context.Background()

	require.NoError(t, bulkUC.AddBulkEvents(ctx, testUserID, "6A", []string{"s1", "s2"}, "2024-05-01", statusEvent("+")))

	_, err := seqUC.AddEvent(ctx, testUserID, "6A", "s1", "2024-05-01", statusEvent("+"))
	require.NoError(t, err)
	_, err = seqUC.AddEvent(ctx, testUserID, "6A", "s2", "2024-05-01", statusEvent("+"))
	require.NoError(t, err)

	bulk := persistedRecords(t, bulkBlob)
	seq := persistedRecords(t, seqBlob)
	require.Len(t, bulk, 2)
	require.Len(t, seq, 2)
	for i := range bulk {
		assert.Equal(t, seq[i].ID, bulk[i].ID)
		require.Len(t, bulk[i].Events, len(seq[i].Events))
		for j := range bulk[i].Events {
			assert.Equal(t, seq[i].Events[j].Type, bulk[i].Events[j].Type)
			assert.Equal(t, seq[i].Events[j].Value, bulk[i].Events[j].Value)
		}
	}

	// One write for the bulk call, two for the sequential pair.
	assert.Equal(t, 1, bulkBlob.WriteCount)
	assert.Equal(t, 2, seqBlob.WriteCount)
}

func TestBulkEventIDsAreDistinct(t *testing.T) {
	uc, blob := newRecordStore(t)

	require.NoError(t, uc.AddBulkEvents(context.Background(), testUserID, "6A", []string{"s1", "s2", "s3"}, "2024-05-01", statusEvent("Y")))

	seen := make(map[string]bool)
	for _, rec := range persistedRecords(t, blob) {
		for _, ev := range rec.Events {
			assert.False(t, seen[ev.ID], "event id %q repeated", ev.ID)
			seen[ev.ID] = true
		}
	}
}

func TestRemoveEventKeepsEmptyRecord(t *testing.T) {
	uc, blob := newRecordStore(t)
	ctx := context.Background()

	rec, err := uc.AddEvent(ctx, testUserID, "6A", "s1", "2024-05-01", statusEvent("+"))
	require.NoError(t, err)
	require.Equal(t, "6A-2024-05-01-s1", rec.ID)
	require.Len(t, rec.Events, 1)

	require.NoError(t, uc.RemoveEvent(ctx, testUserID, "6A", "s1", "2024-05-01", rec.Events[0].ID))

	persisted := persistedRecords(t, blob)
	require.Len(t, persisted, 1, "record must survive its last event")
	assert.Empty(t, persisted[0].Events)
}

func TestRemoveEventMissesAreSilent(t *testing.T) {
	uc, blob := newRecordStore(t)
	ctx := context.Background()

	// Missing record: treated as already satisfied.
	require.NoError(t, uc.RemoveEvent(ctx, testUserID, "6A", "s9", "2024-05-01", "nope"))

	rec, err := uc.AddEvent(ctx, testUserID, "6A", "s1", "2024-05-01", statusEvent("+"))
	require.NoError(t, err)
	writesBefore := blob.WriteCount

	// Present record, unknown event id: nothing removed, nothing persisted.
	require.NoError(t, uc.RemoveEvent(ctx, testUserID, "6A", "s1", "2024-05-01", "nope"))
	assert.Equal(t, writesBefore, blob.WriteCount)

	records, err := uc.GetRecordsForDate(ctx, testUserID, "6A", "2024-05-01")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, rec.Events, records[0].Events)
}

func TestDeleteRecordsForClass(t *testing.T) {
	uc, blob := newRecordStore(t)
	ctx := context.Background()

	_, err := uc.AddEvent(ctx, testUserID, "6A", "s1", "2024-05-01", statusEvent("+"))
	require.NoError(t, err)
	_, err = uc.AddEvent(ctx, testUserID, "6A", "s2", "2024-05-02", statusEvent("Y"))
	require.NoError(t, err)
	_, err = uc.AddEvent(ctx, testUserID, "7B", "s3", "2024-05-01", statusEvent("G"))
	require.NoError(t, err)

	writesBefore := blob.WriteCount
	require.NoError(t, uc.DeleteRecordsForClass(ctx, testUserID, "6A"))
	assert.Equal(t, writesBefore+1, blob.WriteCount, "cascade is one batched persist")

	persisted := persistedRecords(t, blob)
	require.Len(t, persisted, 1)
	assert.Equal(t, "7B", persisted[0].ClassID)

	// Nothing left to delete: no extra write.
	require.NoError(t, uc.DeleteRecordsForClass(ctx, testUserID, "6A"))
	assert.Equal(t, writesBefore+1, blob.WriteCount)
}

func TestDeleteRecordsForStudent(t *testing.T) {
	uc, blob := newRecordStore(t)
	ctx := context.Background()

	_, err := uc.AddEvent(ctx, testUserID, "6A", "s1", "2024-05-01", statusEvent("+"))
	require.NoError(t, err)
	_, err = uc.AddEvent(ctx, testUserID, "6A", "s1", "2024-05-02", statusEvent("+"))
	require.NoError(t, err)
	_, err = uc.AddEvent(ctx, testUserID, "6A", "s2", "2024-05-01", statusEvent("+"))
	require.NoError(t, err)

	require.NoError(t, uc.DeleteRecordsForStudent(ctx, testUserID, "6A", "s1"))

	persisted := persistedRecords(t, blob)
	require.Len(t, persisted, 1)
	assert.Equal(t, "s2", persisted[0].StudentID)
}

func TestPersistFailureKeepsInMemoryState(t *testing.T) {
	uc, blob := newRecordStore(t)
	ctx := context.Background()

	blob.FailWrites = true
	rec, err := uc.AddEvent(ctx, testUserID, "6A", "s1", "2024-05-01", statusEvent("+"))
	assert.ErrorIs(t, err, domain.ErrPersistFailed)
	require.NotNil(t, rec, "the applied record is still returned")

	// The in-memory copy kept the change even though the write failed.
	records, err := uc.GetRecordsForDate(ctx, testUserID, "6A", "2024-05-01")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Len(t, records[0].Events, 1)
}

package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"sinifplanim/config"
	"sinifplanim/domain"

	"github.com/sirupsen/logrus"
)

// dailyRecordUC owns the in-memory daily-record collections, one per signed-in
// teacher, synchronized to a persisted JSON blob per collection. All mutations
// run under one mutex so a mutation and its persist are a single-writer unit;
// the browser original raced whole-blob writes instead.
type dailyRecordUC struct {
	blob    domain.BlobStore
	log     *logrus.Logger
	timeout time.Duration

	mu   sync.Mutex
	sets map[int][]domain.DailyRecord
}

func NewDailyRecordUseCase(blob domain.BlobStore, timeout time.Duration) domain.DailyRecordUseCase {
	return &dailyRecordUC{
		blob:    blob,
		log:     config.GetLogrusInstance(),
		timeout: timeout,
		sets:    make(map[int][]domain.DailyRecord),
	}
}

func recordsKey(userID int) string {
	return "daily_records:" + strconv.Itoa(userID)
}

// MigrateLegacyRecords converts flat v1 records into the event-log shape.
// Records are grouped by natural key in encounter order; a non-null status
// becomes a status event and a non-empty description a note event, appended in
// that fixed order. Event ids are derived from the key and position, so the
// same input always yields the same output.
func MigrateLegacyRecords(legacy []domain.LegacyDailyRecord) []domain.DailyRecord {
	byKey := make(map[string]int, len(legacy))
	records := make([]domain.DailyRecord, 0, len(legacy))

	for _, old := range legacy {
		key := domain.RecordKey(old.ClassID, old.Date, old.StudentID)
		idx, ok := byKey[key]
		if !ok {
			records = append(records, domain.DailyRecord{
				ID:        key,
				ClassID:   old.ClassID,
				StudentID: old.StudentID,
				Date:      old.Date,
				Events:    []domain.RecordEvent{},
			})
			idx = len(records) - 1
			byKey[key] = idx
		}

		rec := &records[idx]
		if old.Status != nil {
			rec.Events = append(rec.Events, domain.RecordEvent{
				ID:    fmt.Sprintf("mig-%s-%d", key, len(rec.Events)),
				Type:  domain.EventTypeStatus,
				Value: *old.Status,
			})
		}
		if old.Description != "" {
			rec.Events = append(rec.Events, domain.RecordEvent{
				ID:    fmt.Sprintf("mig-%s-%d", key, len(rec.Events)),
				Type:  domain.EventTypeNote,
				Value: old.Description,
			})
		}
	}

	return records
}

// decodeRecords parses a persisted blob. The legacy v1 shape is detected by a
// top-level status key on the first record; v2 records never carry one, so an
// already-migrated blob is never migrated twice.
func decodeRecords(data []byte) ([]domain.DailyRecord, bool, error) {
	var probe []map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, false, err
	}

	if len(probe) > 0 {
		if _, legacy := probe[0]["status"]; legacy {
			var old []domain.LegacyDailyRecord
			if err := json.Unmarshal(data, &old); err != nil {
				return nil, false, err
			}
			return MigrateLegacyRecords(old), true, nil
		}
	}

	var records []domain.DailyRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, false, err
	}
	return records, false, nil
}

// seedRecords is the example dataset a brand-new teacher starts with. It is
// kept in the v1 shape on purpose: seeding runs it through the same migration
// as real legacy data.
func seedRecords() []domain.LegacyDailyRecord {
	plus := string(domain.StatusPlus)
	absent := string(domain.StatusAbsent)
	today := time.Now().Format("2006-01-02")

	return []domain.LegacyDailyRecord{
		{ClassID: "ornek-6a", Date: today, StudentID: "ornek-1", Status: &plus, Description: "Derse aktif katıldı"},
		{ClassID: "ornek-6a", Date: today, StudentID: "ornek-2", Status: &absent},
	}
}

// loadLocked returns the teacher's collection, reading and migrating the blob
// on first touch. Corrupt or unreadable blobs degrade to an empty collection
// with a warning; they never fail the request.
func (uc *dailyRecordUC) loadLocked(ctx context.Context, userID int) []domain.DailyRecord {
	if records, ok := uc.sets[userID]; ok {
		return records
	}

	raw, found, err := uc.blob.Read(ctx, recordsKey(userID))
	if err != nil {
		uc.log.Warnf("daily records for user %d could not be read, starting empty: %v", userID, err)
		uc.sets[userID] = []domain.DailyRecord{}
		return uc.sets[userID]
	}

	if !found {
		uc.sets[userID] = MigrateLegacyRecords(seedRecords())
		_ = uc.persistLocked(ctx, userID)
		return uc.sets[userID]
	}

	records, migrated, err := decodeRecords([]byte(raw))
	if err != nil {
		uc.log.Warnf("daily records for user %d are corrupt, starting empty: %v", userID, err)
		records = []domain.DailyRecord{}
	}
	if records == nil {
		records = []domain.DailyRecord{}
	}

	uc.sets[userID] = records
	if migrated {
		// Replace the legacy blob in a single write so no partial migration
		// is ever observable in storage.
		_ = uc.persistLocked(ctx, userID)
	}
	return records
}

// persistLocked writes the whole collection blob. On failure the in-memory
// state stays applied; the caller gets ErrPersistFailed to surface as a
// warning, and nothing is retried.
func (uc *dailyRecordUC) persistLocked(ctx context.Context, userID int) error {
	records := uc.sets[userID]
	if records == nil {
		records = []domain.DailyRecord{}
	}

	data, err := json.Marshal(records)
	if err == nil {
		err = uc.blob.Write(ctx, recordsKey(userID), string(data))
	}
	if err != nil {
		config.BlobPersistFailures.Inc()
		uc.log.Warnf("daily records for user %d not persisted, changes may be lost on reload: %v", userID, err)
		return fmt.Errorf("%w: %v", domain.ErrPersistFailed, err)
	}
	return nil
}

func validateDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return domain.ErrInvalidDate
	}
	return nil
}

func validateEvent(event domain.NewRecordEvent) error {
	switch event.Type {
	case domain.EventTypeStatus:
		if !domain.AttendanceStatus(event.Value).Valid() {
			return fmt.Errorf("%w: unknown status %q", domain.ErrInvalidEvent, event.Value)
		}
	case domain.EventTypeNote:
		if event.Value == "" {
			return fmt.Errorf("%w: empty note", domain.ErrInvalidEvent)
		}
	default:
		return fmt.Errorf("%w: unknown type %q", domain.ErrInvalidEvent, event.Type)
	}
	return nil
}

func newEventID() string {
	return strconv.FormatInt(time.Now().UnixNano(), 10)
}

func copyRecord(rec domain.DailyRecord) domain.DailyRecord {
	events := make([]domain.RecordEvent, len(rec.Events))
	copy(events, rec.Events)
	rec.Events = events
	return rec
}

// appendEventLocked applies the per-student add logic: append to the record
// with the natural key, or create it with a singleton event list. Deliberately
// not idempotent; two identical calls append two events.
func (uc *dailyRecordUC) appendEventLocked(userID int, classID, studentID, date string, event domain.NewRecordEvent, eventID string) *domain.DailyRecord {
	records := uc.sets[userID]
	key := domain.RecordKey(classID, date, studentID)

	for i := range records {
		if records[i].ID == key {
			records[i].Events = append(records[i].Events, domain.RecordEvent{
				ID:    eventID,
				Type:  event.Type,
				Value: event.Value,
			})
			return &records[i]
		}
	}

	uc.sets[userID] = append(records, domain.DailyRecord{
		ID:        key,
		ClassID:   classID,
		StudentID: studentID,
		Date:      date,
		Events: []domain.RecordEvent{{
			ID:    eventID,
			Type:  event.Type,
			Value: event.Value,
		}},
	})
	return &uc.sets[userID][len(uc.sets[userID])-1]
}

func (uc *dailyRecordUC) GetRecordsForDate(ctx context.Context, userID int, classID, date string) ([]domain.DailyRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	if err := validateDate(date); err != nil {
		return nil, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	var out []domain.DailyRecord
	for _, rec := range uc.loadLocked(ctx, userID) {
		if rec.ClassID == classID && rec.Date == date {
			out = append(out, copyRecord(rec))
		}
	}
	return out, nil
}

func (uc *dailyRecordUC) AddEvent(ctx context.Context, userID int, classID, studentID, date string, event domain.NewRecordEvent) (*domain.DailyRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	if err := validateDate(date); err != nil {
		return nil, err
	}
	if err := validateEvent(event); err != nil {
		return nil, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.loadLocked(ctx, userID)
	rec := uc.appendEventLocked(userID, classID, studentID, date, event, newEventID())
	config.RecordMutations.WithLabelValues("add_event").Inc()

	out := copyRecord(*rec)
	return &out, uc.persistLocked(ctx, userID)
}

// AddBulkEvents applies the per-student add logic to every id with a single
// storage write. The shared timestamp is suffixed per student so event ids
// stay distinct.
func (uc *dailyRecordUC) AddBulkEvents(ctx context.Context, userID int, classID string, studentIDs []string, date string, event domain.NewRecordEvent) error {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	if err := validateDate(date); err != nil {
		return err
	}
	if err := validateEvent(event); err != nil {
		return err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.loadLocked(ctx, userID)
	base := time.Now().UnixNano()
	for _, studentID := range studentIDs {
		uc.appendEventLocked(userID, classID, studentID, date, event, fmt.Sprintf("%d-%s", base, studentID))
	}
	config.RecordMutations.WithLabelValues("add_bulk_events").Inc()

	return uc.persistLocked(ctx, userID)
}

// RemoveEvent deletes one event by id. A missing record or event id is treated
// as already satisfied and reported as success; the record itself is retained
// even when its event list becomes empty.
func (uc *dailyRecordUC) RemoveEvent(ctx context.Context, userID int, classID, studentID, date, eventID string) error {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	uc.mu.Lock()
	defer uc.mu.Unlock()

	records := uc.loadLocked(ctx, userID)
	key := domain.RecordKey(classID, date, studentID)

	for i := range records {
		if records[i].ID != key {
			continue
		}
		for j, ev := range records[i].Events {
			if ev.ID == eventID {
				records[i].Events = append(records[i].Events[:j], records[i].Events[j+1:]...)
				config.RecordMutations.WithLabelValues("remove_event").Inc()
				return uc.persistLocked(ctx, userID)
			}
		}
		return nil
	}
	return nil
}

func (uc *dailyRecordUC) DeleteRecordsForClass(ctx context.Context, userID int, classID string) error {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	uc.mu.Lock()
	defer uc.mu.Unlock()

	records := uc.loadLocked(ctx, userID)
	kept := records[:0]
	for _, rec := range records {
		if rec.ClassID != classID {
			kept = append(kept, rec)
		}
	}
	if len(kept) == len(records) {
		return nil
	}

	uc.sets[userID] = kept
	config.RecordMutations.WithLabelValues("delete_class_records").Inc()
	return uc.persistLocked(ctx, userID)
}

func (uc *dailyRecordUC) DeleteRecordsForStudent(ctx context.Context, userID int, classID, studentID string) error {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	uc.mu.Lock()
	defer uc.mu.Unlock()

	records := uc.loadLocked(ctx, userID)
	kept := records[:0]
	for _, rec := range records {
		if rec.ClassID != classID || rec.StudentID != studentID {
			kept = append(kept, rec)
		}
	}
	if len(kept) == len(records) {
		return nil
	}

	uc.sets[userID] = kept
	config.RecordMutations.WithLabelValues("delete_student_records").Inc()
	return uc.persistLocked(ctx, userID)
}

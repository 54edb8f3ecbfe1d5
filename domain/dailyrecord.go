package domain

import (
	"context"
	"errors"
)

// AttendanceStatus is the closed set of daily status marks a teacher can give.
type AttendanceStatus string

const (
	StatusPlus   AttendanceStatus = "+" // full participation
	StatusHalf   AttendanceStatus = "½"
	StatusMinus  AttendanceStatus = "-"
	StatusAbsent AttendanceStatus = "Y" // yok
	StatusLate   AttendanceStatus = "G" // geç
)

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case StatusPlus, StatusHalf, StatusMinus, StatusAbsent, StatusLate:
		return true
	default:
		return false
	}
}

type EventType string

const (
	EventTypeStatus EventType = "status"
	EventTypeNote   EventType = "note"
)

// RecordEvent is one entry in a daily record's event log. Events are immutable
// once appended; they are only ever removed by id, never edited.
type RecordEvent struct {
	ID    string    `json:"id"`
	Type  EventType `json:"type"`
	Value string    `json:"value"`
}

// DailyRecord is the per-student per-day event log. Its id is the natural key
// classId-date-studentId; at most one record exists per triple. A record is
// retained even when its event list becomes empty.
//
// The json tags are the persisted v2 blob shape and must not change.
type DailyRecord struct {
	ID        string        `json:"id"`
	ClassID   string        `json:"classId"`
	StudentID string        `json:"studentId"`
	Date      string        `json:"date"` // calendar date, "2006-01-02"
	Events    []RecordEvent `json:"events"`
}

// LegacyDailyRecord is the flat v1 blob shape that predates the event log.
type LegacyDailyRecord struct {
	ClassID     string  `json:"classId"`
	Date        string  `json:"date"`
	StudentID   string  `json:"studentId"`
	Status      *string `json:"status"`
	Description string  `json:"description"`
}

// NewRecordEvent is the payload for appending an event to a daily record.
type NewRecordEvent struct {
	Type  EventType `json:"type" valid:"required~Event type is required,in(status|note)~Event type must be status or note"`
	Value string    `json:"value" valid:"required~Event value is required"`
}

// RecordKey derives the natural key of a daily record.
func RecordKey(classID, date, studentID string) string {
	return classID + "-" + date + "-" + studentID
}

// CurrentStatus reduces an event log to the status the UI should present:
// the value of the last status-type event, or nil when none exists.
func CurrentStatus(events []RecordEvent) *AttendanceStatus {
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].Type == EventTypeStatus {
			s := AttendanceStatus(events[i].Value)
			return &s
		}
	}
	return nil
}

var (
	// ErrPersistFailed marks a mutation that was applied in memory but could
	// not be written to durable storage. Callers treat it as a warning, not a
	// rollback: the change may be lost on the next load.
	ErrPersistFailed = errors.New("changes applied but could not be persisted")

	ErrInvalidDate  = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidEvent = errors.New("invalid record event")
)

// BlobStore is the key-value persistence collaborator the record store writes
// its collection blob through. Read reports absence via the second return.
type BlobStore interface {
	Read(ctx context.Context, key string) (string, bool, error)
	Write(ctx context.Context, key, value string) error
}

type DailyRecordUseCase interface {
	GetRecordsForDate(ctx context.Context, userID int, classID, date string) ([]DailyRecord, error)
	AddEvent(ctx context.Context, userID int, classID, studentID, date string, event NewRecordEvent) (*DailyRecord, error)
	AddBulkEvents(ctx context.Context, userID int, classID string, studentIDs []string, date string, event NewRecordEvent) error
	RemoveEvent(ctx context.Context, userID int, classID, studentID, date, eventID string) error
	DeleteRecordsForClass(ctx context.Context, userID int, classID string) error
	DeleteRecordsForStudent(ctx context.Context, userID int, classID, studentID string) error
}

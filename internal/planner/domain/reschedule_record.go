package domain

import (
	"time"

	"github.com/google/uuid"
)

// RescheduleTrigger describes which operation caused a neighbor move.
type RescheduleTrigger string

const (
	RescheduleTriggerInsert RescheduleTrigger = "insert"
	RescheduleTriggerUpdate RescheduleTrigger = "update"
	RescheduleTriggerShift  RescheduleTrigger = "shift"
)

// RescheduleRecord captures one attempted neighbor move for auditing.
// Records are written best-effort; a failed audit write never fails the
// operation that produced it.
type RescheduleRecord struct {
	ID            uuid.UUID
	EntryID       uuid.UUID
	TriggerID     uuid.UUID // the inserted/updated entry that caused the move
	Trigger       RescheduleTrigger
	OldStart      time.Time
	OldEnd        time.Time
	NewStart      time.Time
	NewEnd        time.Time
	Success       bool
	FailureReason string
	RecordedAt    time.Time
}

// NewRescheduleRecord builds an audit record for a planned move.
func NewRescheduleRecord(m Move, triggerID uuid.UUID, trigger RescheduleTrigger, success bool, failureReason string) RescheduleRecord {
	return RescheduleRecord{
		ID:            uuid.New(),
		EntryID:       m.EntryID,
		TriggerID:     triggerID,
		Trigger:       trigger,
		OldStart:      m.OldStart,
		OldEnd:        m.OldEnd,
		NewStart:      m.NewStart,
		NewEnd:        m.NewEnd,
		Success:       success,
		FailureReason: failureReason,
		RecordedAt:    time.Now().UTC(),
	}
}

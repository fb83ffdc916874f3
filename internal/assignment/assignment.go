package assignment

import (
	"errors"
	"time"

	assignmentDatamodel "github.com/assetvault/asset-management/internal/core/datamodel/assignment"
)

// Errors the repository reports from inside its transactions. The
// service maps them onto API error responses.
var (
	ErrActiveAssignmentExists = errors.New("item already has an active assignment")
	ErrNoActiveAssignment     = errors.New("no matching active assignment")
	ErrNotCurrentHolder       = errors.New("item is not held by the given person")
)

// Assignment is the API view of a custodianship span.
type Assignment struct {
	ID          int64   `json:"id"`
	ItemID      string  `json:"item_id"`
	PersonID    int64   `json:"person_id"`
	PersonName  string  `json:"person_name"`
	AssignedAt  string  `json:"assigned_at"`
	DueBackDate *string `json:"due_back_date"`
	ReturnedAt  *string `json:"returned_at"`
	Notes       *string `json:"notes"`
}

// MergeNotes appends return notes onto the notes an assignment already
// carries, newline separated.
func MergeNotes(existing, added *string) *string {
	if added == nil || *added == "" {
		return existing
	}
	if existing == nil || *existing == "" {
		return added
	}
	merged := *existing + "\n" + *added
	return &merged
}

// Record is an assignment row with the holder's name resolved.
type Record struct {
	assignmentDatamodel.Assignment
	PersonName string
}

func fromRecord(rec *Record) *Assignment {
	out := &Assignment{
		ID:          rec.ID,
		ItemID:      rec.ItemID,
		PersonID:    rec.PersonID,
		PersonName:  rec.PersonName,
		AssignedAt:  rec.AssignedAt.Format(time.DateTime),
		DueBackDate: rec.DueBackDate,
		Notes:       rec.Notes,
	}
	if rec.ReturnedAt != nil {
		s := rec.ReturnedAt.Format(time.DateTime)
		out.ReturnedAt = &s
	}
	return out
}

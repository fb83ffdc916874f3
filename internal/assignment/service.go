package assignment

import (
	"errors"
	"log/slog"
	"time"

	"github.com/assetvault/asset-management/internal"
	assignmentDatamodel "github.com/assetvault/asset-management/internal/core/datamodel/assignment"
	auditDatamodel "github.com/assetvault/asset-management/internal/core/datamodel/audit"
	itemDatamodel "github.com/assetvault/asset-management/internal/core/datamodel/item"
	"github.com/assetvault/asset-management/internal/directory"
)

// Repository defines the transactional data access for assignments.
// Each mutation runs in a single transaction together with its audit
// entry; the reported sentinel errors surface state conflicts detected
// under the row lock.
type Repository interface {
	ActiveForItem(itemID string) (*Record, error)
	Assign(m *assignmentDatamodel.Assignment, entry *auditDatamodel.Entry) error
	Return(assignmentID int64, itemID string, returnedAt time.Time, notes *string, entry *auditDatamodel.Entry) error
	Transfer(next *assignmentDatamodel.Assignment, fromPersonID *int64, closedAt time.Time, entryFor func(fromHolder *string) *auditDatamodel.Entry) error
}

// ItemResolver is the slice of the item repository the service needs.
type ItemResolver interface {
	GetByID(itemID string) (*itemDatamodel.Item, error)
	GetBySerial(serialNo string) (*itemDatamodel.Item, error)
}

// PersonGetter resolves people for holder names and existence checks.
type PersonGetter interface {
	GetPerson(id int64) (*directory.PersonRecord, error)
}

// Service orchestrates the custodianship state machine.
type Service struct {
	repo   Repository
	items  ItemResolver
	people PersonGetter
	logger *slog.Logger
}

func NewService(repo Repository, items ItemResolver, people PersonGetter, logger *slog.Logger) *Service {
	return &Service{repo: repo, items: items, people: people, logger: logger}
}

// Assign opens a custodianship span for a free item.
func (s *Service) Assign(dto AssignDTO, byUser string) (*Assignment, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	item, err := s.items.GetByID(dto.ItemID)
	if err != nil {
		return nil, internal.ErrItemNotFound
	}
	person, err := s.people.GetPerson(dto.PersonID)
	if err != nil {
		return nil, internal.ErrPersonNotFound
	}

	now := time.Now()
	m := &assignmentDatamodel.Assignment{
		ItemID:      item.ItemID,
		PersonID:    person.ID,
		AssignedAt:  now,
		DueBackDate: dto.DueBackDate,
		Notes:       dto.Notes,
	}
	entry := &auditDatamodel.Entry{
		EventTime: now,
		Event:     auditDatamodel.EventAssign,
		ItemID:    item.ItemID,
		ToHolder:  &person.FullName,
		ByUser:    &byUser,
		Notes:     dto.Notes,
	}

	if err := s.repo.Assign(m, entry); err != nil {
		if errors.Is(err, ErrActiveAssignmentExists) {
			return nil, internal.ErrAlreadyAssigned
		}
		s.logger.Error("failed to assign item", "error", err, "item_id", item.ItemID, "person_id", person.ID)
		return nil, err
	}

	s.logger.Info("item assigned", "item_id", item.ItemID, "person_id", person.ID, "by", byUser)
	return fromRecord(&Record{Assignment: *m, PersonName: person.FullName}), nil
}

// Return closes the active span named by both identifiers. A stale pair
// is a 404; the item's state is untouched and no entry is written.
func (s *Service) Return(dto ReturnDTO, byUser string) (*Assignment, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	active, err := s.repo.ActiveForItem(dto.ItemID)
	if err != nil {
		return nil, err
	}
	if active == nil || active.ID != dto.AssignmentID {
		return nil, internal.ErrAssignmentNotFound
	}

	now := time.Now()
	stock := auditDatamodel.StockHolder
	entry := &auditDatamodel.Entry{
		EventTime:  now,
		Event:      auditDatamodel.EventReturn,
		ItemID:     dto.ItemID,
		FromHolder: &active.PersonName,
		ToHolder:   &stock,
		ByUser:     &byUser,
		Notes:      dto.Notes,
	}

	if err := s.repo.Return(dto.AssignmentID, dto.ItemID, now, dto.Notes, entry); err != nil {
		if errors.Is(err, ErrNoActiveAssignment) {
			return nil, internal.ErrAssignmentNotFound
		}
		s.logger.Error("failed to return item", "error", err, "assignment_id", dto.AssignmentID)
		return nil, err
	}

	s.logger.Info("item returned", "item_id", dto.ItemID, "assignment_id", dto.AssignmentID, "by", byUser)

	closed := active.Assignment
	closed.ReturnedAt = &now
	if dto.Notes != nil {
		closed.Notes = MergeNotes(closed.Notes, dto.Notes)
	}
	return fromRecord(&Record{Assignment: closed, PersonName: active.PersonName}), nil
}

// Transfer moves an item to a new holder in one step, closing the
// current span (if any) and opening the next one atomically.
func (s *Service) Transfer(dto TransferDTO, byUser string) (*Assignment, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	item, err := s.items.GetByID(dto.ItemID)
	if err != nil {
		// The scan workflow sends whatever the barcode held.
		item, err = s.items.GetBySerial(dto.ItemID)
		if err != nil {
			return nil, internal.ErrItemNotFound
		}
	}
	toPerson, err := s.people.GetPerson(dto.ToPersonID)
	if err != nil {
		return nil, internal.ErrPersonNotFound
	}

	now := time.Now()
	next := &assignmentDatamodel.Assignment{
		ItemID:      item.ItemID,
		PersonID:    toPerson.ID,
		AssignedAt:  now,
		DueBackDate: dto.DueBackDate,
		Notes:       dto.Notes,
	}
	entryFor := func(fromHolder *string) *auditDatamodel.Entry {
		return &auditDatamodel.Entry{
			EventTime:  now,
			Event:      auditDatamodel.EventTransfer,
			ItemID:     item.ItemID,
			FromHolder: fromHolder,
			ToHolder:   &toPerson.FullName,
			ByUser:     &byUser,
			Notes:      dto.Notes,
		}
	}

	if err := s.repo.Transfer(next, dto.FromPersonID, now, entryFor); err != nil {
		if errors.Is(err, ErrNotCurrentHolder) {
			return nil, internal.ErrHolderMismatch
		}
		s.logger.Error("failed to transfer item", "error", err, "item_id", item.ItemID, "to_person_id", toPerson.ID)
		return nil, err
	}

	s.logger.Info("item transferred", "item_id", item.ItemID, "to_person_id", toPerson.ID, "by", byUser)
	return fromRecord(&Record{Assignment: *next, PersonName: toPerson.FullName}), nil
}

// ActiveForItem returns the item's open span, 404 when the item is free.
func (s *Service) ActiveForItem(itemID string) (*Assignment, error) {
	if _, err := s.items.GetByID(itemID); err != nil {
		return nil, internal.ErrItemNotFound
	}

	rec, err := s.repo.ActiveForItem(itemID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, internal.ErrAssignmentNotFound
	}
	return fromRecord(rec), nil
}

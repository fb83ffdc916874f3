package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/assetvault/asset-management/internal/assignment"
	assignmentDatamodel "github.com/assetvault/asset-management/internal/core/datamodel/assignment"
	auditDatamodel "github.com/assetvault/asset-management/internal/core/datamodel/audit"
	itemDatamodel "github.com/assetvault/asset-management/internal/core/datamodel/item"
)

// AssignmentRepository implements the assignment.Repository interface
// using GORM. Every mutation locks the item row first so concurrent
// requests against the same item serialize; the partial unique index on
// open assignments backs the invariant if a lock is ever bypassed.
type AssignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) assignment.Repository {
	return &AssignmentRepository{db: db}
}

func (r *AssignmentRepository) ActiveForItem(itemID string) (*assignment.Record, error) {
	return activeForItem(r.db, itemID)
}

type activeRow struct {
	assignmentDatamodel.Assignment
	PersonName string
}

func activeForItem(tx *gorm.DB, itemID string) (*assignment.Record, error) {
	var row activeRow
	err := tx.Model(&assignmentDatamodel.Assignment{}).
		Select("assignments.*, people.full_name AS person_name").
		Joins("JOIN people ON people.id = assignments.person_id").
		Where("assignments.item_id = ? AND assignments.returned_at IS NULL", itemID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &assignment.Record{Assignment: row.Assignment, PersonName: row.PersonName}, nil
}

func (r *AssignmentRepository) Assign(m *assignmentDatamodel.Assignment, entry *auditDatamodel.Entry) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := lockItem(tx, m.ItemID); err != nil {
			return err
		}

		var open int64
		err := tx.Model(&assignmentDatamodel.Assignment{}).
			Where("item_id = ? AND returned_at IS NULL", m.ItemID).
			Count(&open).Error
		if err != nil {
			return err
		}
		if open > 0 {
			return assignment.ErrActiveAssignmentExists
		}

		if err := tx.Create(m).Error; err != nil {
			return err
		}
		return tx.Create(entry).Error
	})
}

func (r *AssignmentRepository) Return(assignmentID int64, itemID string, returnedAt time.Time, notes *string, entry *auditDatamodel.Entry) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := lockItem(tx, itemID); err != nil {
			return err
		}

		var row assignmentDatamodel.Assignment
		err := tx.Where("id = ? AND item_id = ? AND returned_at IS NULL", assignmentID, itemID).
			First(&row).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return assignment.ErrNoActiveAssignment
			}
			return err
		}

		row.ReturnedAt = &returnedAt
		row.Notes = assignment.MergeNotes(row.Notes, notes)
		if err := tx.Save(&row).Error; err != nil {
			return err
		}
		return tx.Create(entry).Error
	})
}

func (r *AssignmentRepository) Transfer(next *assignmentDatamodel.Assignment, fromPersonID *int64, closedAt time.Time, entryFor func(fromHolder *string) *auditDatamodel.Entry) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := lockItem(tx, next.ItemID); err != nil {
			return err
		}

		current, err := activeForItem(tx, next.ItemID)
		if err != nil {
			return err
		}
		if fromPersonID != nil {
			if current == nil || current.PersonID != *fromPersonID {
				return assignment.ErrNotCurrentHolder
			}
		}

		var fromHolder *string
		if current != nil {
			fromHolder = &current.PersonName
			current.ReturnedAt = &closedAt
			if err := tx.Save(&current.Assignment).Error; err != nil {
				return err
			}
		}

		if err := tx.Create(next).Error; err != nil {
			return err
		}
		return tx.Create(entryFor(fromHolder)).Error
	})
}

// lockItem takes a row lock on the item so state checks and writes in
// the same transaction see a stable view. SQLite (used in tests) does
// not support FOR UPDATE; its single-writer model covers the same need.
func lockItem(tx *gorm.DB, itemID string) error {
	q := tx.Model(&itemDatamodel.Item{}).Where("item_id = ?", itemID)
	if tx.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var found itemDatamodel.Item
	if err := q.First(&found).Error; err != nil {
		return err
	}
	return nil
}

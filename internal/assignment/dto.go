package assignment

import "errors"

// AssignDTO hands an item to a person.
type AssignDTO struct {
	ItemID      string  `json:"item_id"`
	PersonID    int64   `json:"person_id"`
	DueBackDate *string `json:"due_back_date"`
	Notes       *string `json:"notes"`
}

func (dto AssignDTO) Validate() error {
	if dto.ItemID == "" {
		return errors.New("item_id is required")
	}
	if dto.PersonID == 0 {
		return errors.New("person_id is required")
	}
	return nil
}

// ReturnDTO closes an active assignment. Both identifiers are required
// so a stale client cannot close an assignment that was re-opened for
// someone else in the meantime.
type ReturnDTO struct {
	AssignmentID int64   `json:"assignment_id"`
	ItemID       string  `json:"item_id"`
	Notes        *string `json:"notes"`
}

func (dto ReturnDTO) Validate() error {
	if dto.AssignmentID == 0 {
		return errors.New("assignment_id is required")
	}
	if dto.ItemID == "" {
		return errors.New("item_id is required")
	}
	return nil
}

// TransferDTO moves an item to a new holder, closing any active span.
// ItemID may carry a serial number; the item is resolved by id first.
type TransferDTO struct {
	ItemID       string  `json:"item_id"`
	ToPersonID   int64   `json:"to_person_id"`
	FromPersonID *int64  `json:"from_person_id"`
	DueBackDate  *string `json:"due_back_date"`
	Notes        *string `json:"notes"`
}

func (dto TransferDTO) Validate() error {
	if dto.ItemID == "" {
		return errors.New("item_id is required")
	}
	if dto.ToPersonID == 0 {
		return errors.New("to_person_id is required")
	}
	return nil
}

package directory

import (
	"errors"

	directoryDatamodel "github.com/assetvault/asset-management/internal/core/datamodel/directory"
)

// CreateDepartmentDTO names a new department.
type CreateDepartmentDTO struct {
	Name string `json:"name"`
}

func (dto CreateDepartmentDTO) Validate() error {
	if dto.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

// CreatePersonDTO carries a new directory entry.
type CreatePersonDTO struct {
	EmpCode      *string `json:"emp_code"`
	FullName     string  `json:"full_name"`
	DepartmentID *int64  `json:"department_id"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	Status       *string `json:"status"`
}

func (dto CreatePersonDTO) Validate() error {
	if dto.FullName == "" {
		return errors.New("full_name is required")
	}
	if dto.Status != nil && !validPersonStatus(*dto.Status) {
		return errors.New("status must be active or inactive")
	}
	return nil
}

// UpdatePersonDTO is a partial update; nil fields keep their stored value.
type UpdatePersonDTO struct {
	EmpCode      *string `json:"emp_code"`
	FullName     *string `json:"full_name"`
	DepartmentID *int64  `json:"department_id"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	Status       *string `json:"status"`
}

func (dto UpdatePersonDTO) Validate() error {
	if dto.FullName != nil && *dto.FullName == "" {
		return errors.New("full_name cannot be empty")
	}
	if dto.Status != nil && !validPersonStatus(*dto.Status) {
		return errors.New("status must be active or inactive")
	}
	return nil
}

func validPersonStatus(s string) bool {
	return s == directoryDatamodel.PersonStatusActive || s == directoryDatamodel.PersonStatusInactive
}

// PersonFilter narrows a people listing.
type PersonFilter struct {
	DepartmentID *int64
	Query        string
	Limit        int
}

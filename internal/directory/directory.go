package directory

import (
	directoryDatamodel "github.com/assetvault/asset-management/internal/core/datamodel/directory"
)

// Department is the API view of a department.
type Department struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Person is the API view of a directory entry, department name resolved.
type Person struct {
	ID             int64   `json:"id"`
	EmpCode        *string `json:"emp_code"`
	FullName       string  `json:"full_name"`
	DepartmentID   *int64  `json:"department_id"`
	DepartmentName *string `json:"department_name"`
	Email          *string `json:"email"`
	Phone          *string `json:"phone"`
	Status         string  `json:"status"`
}

// HistoryRow is one custodianship span in a person's history, newest
// first. ReturnedAt is null while the span is still open.
type HistoryRow struct {
	ID          int64   `json:"id"`
	ItemID      string  `json:"item_id"`
	ItemName    string  `json:"item_name"`
	AssignedAt  string  `json:"assigned_at"`
	DueBackDate *string `json:"due_back_date"`
	ReturnedAt  *string `json:"returned_at"`
	Notes       *string `json:"notes"`
}

// ActiveItem describes one still-assigned item blocking a person delete.
type ActiveItem struct {
	AssignmentID int64   `json:"assignment_id"`
	ItemID       string  `json:"item_id"`
	ItemName     string  `json:"item_name"`
	SerialNo     *string `json:"serial_no"`
}

func departmentFromDataModel(m *directoryDatamodel.Department) *Department {
	return &Department{ID: m.ID, Name: m.Name}
}

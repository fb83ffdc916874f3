package postgres

import (
	"time"

	"gorm.io/gorm"

	assignmentDatamodel "github.com/assetvault/asset-management/internal/core/datamodel/assignment"
	directoryDatamodel "github.com/assetvault/asset-management/internal/core/datamodel/directory"
	"github.com/assetvault/asset-management/internal/directory"
)

// DirectoryRepository implements the directory.Repository interface using GORM.
type DirectoryRepository struct {
	db *gorm.DB
}

func NewDirectoryRepository(db *gorm.DB) directory.Repository {
	return &DirectoryRepository{db: db}
}

func (r *DirectoryRepository) ListDepartments() ([]*directoryDatamodel.Department, error) {
	var rows []*directoryDatamodel.Department
	err := r.db.Order("name").Find(&rows).Error
	return rows, err
}

func (r *DirectoryRepository) GetDepartment(id int64) (*directoryDatamodel.Department, error) {
	var m directoryDatamodel.Department
	err := r.db.Where("id = ?", id).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *DirectoryRepository) DepartmentExists(name string) (bool, error) {
	var count int64
	err := r.db.Model(&directoryDatamodel.Department{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

func (r *DirectoryRepository) CreateDepartment(m *directoryDatamodel.Department) error {
	return r.db.Create(m).Error
}

func (r *DirectoryRepository) UpdateDepartment(m *directoryDatamodel.Department) error {
	return r.db.Save(m).Error
}

func (r *DirectoryRepository) DeleteDepartment(id int64) (int64, error) {
	res := r.db.Where("id = ?", id).Delete(&directoryDatamodel.Department{})
	return res.RowsAffected, res.Error
}

func (r *DirectoryRepository) PeopleCount(departmentID int64) (int64, error) {
	var count int64
	err := r.db.Model(&directoryDatamodel.Person{}).
		Where("department_id = ?", departmentID).
		Count(&count).Error
	return count, err
}

// personRow is the scan target for the people/departments join.
type personRow struct {
	directoryDatamodel.Person
	DepartmentName *string
}

func (r *DirectoryRepository) ListPeople(filter directory.PersonFilter) ([]*directory.PersonRecord, error) {
	q := r.peopleQuery()

	if filter.DepartmentID != nil {
		q = q.Where("people.department_id = ?", *filter.DepartmentID)
	}
	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		q = q.Where("people.full_name LIKE ? OR people.emp_code LIKE ?", like, like)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var rows []personRow
	if err := q.Order("people.full_name").Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]*directory.PersonRecord, 0, len(rows))
	for i := range rows {
		out = append(out, &directory.PersonRecord{
			Person:         rows[i].Person,
			DepartmentName: rows[i].DepartmentName,
		})
	}
	return out, nil
}

func (r *DirectoryRepository) GetPerson(id int64) (*directory.PersonRecord, error) {
	var row personRow
	err := r.peopleQuery().Where("people.id = ?", id).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &directory.PersonRecord{Person: row.Person, DepartmentName: row.DepartmentName}, nil
}

func (r *DirectoryRepository) peopleQuery() *gorm.DB {
	return r.db.Model(&directoryDatamodel.Person{}).
		Select("people.*, departments.name AS department_name").
		Joins("LEFT JOIN departments ON departments.id = people.department_id")
}

func (r *DirectoryRepository) EmpCodeExists(code string, excludeID int64) (bool, error) {
	q := r.db.Model(&directoryDatamodel.Person{}).Where("emp_code = ?", code)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *DirectoryRepository) CreatePerson(m *directoryDatamodel.Person) error {
	return r.db.Create(m).Error
}

func (r *DirectoryRepository) UpdatePerson(m *directoryDatamodel.Person) error {
	return r.db.Save(m).Error
}

func (r *DirectoryRepository) DeletePerson(id int64) (int64, error) {
	res := r.db.Where("id = ?", id).Delete(&directoryDatamodel.Person{})
	return res.RowsAffected, res.Error
}

// historyRow is the scan target for the assignments/items join.
type historyRow struct {
	ID          int64
	ItemID      string
	ItemName    string
	AssignedAt  time.Time
	DueBackDate *string
	ReturnedAt  *time.Time
	Notes       *string
}

func (r *DirectoryRepository) History(personID int64) ([]directory.HistoryRow, error) {
	var rows []historyRow
	err := r.db.Model(&assignmentDatamodel.Assignment{}).
		Select("assignments.id, assignments.item_id, items.name AS item_name, assignments.assigned_at, assignments.due_back_date, assignments.returned_at, assignments.notes").
		Joins("JOIN items ON items.item_id = assignments.item_id").
		Where("assignments.person_id = ?", personID).
		Order("assignments.assigned_at DESC, assignments.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]directory.HistoryRow, 0, len(rows))
	for _, row := range rows {
		h := directory.HistoryRow{
			ID:          row.ID,
			ItemID:      row.ItemID,
			ItemName:    row.ItemName,
			AssignedAt:  row.AssignedAt.Format(time.DateTime),
			DueBackDate: row.DueBackDate,
			Notes:       row.Notes,
		}
		if row.ReturnedAt != nil {
			s := row.ReturnedAt.Format(time.DateTime)
			h.ReturnedAt = &s
		}
		out = append(out, h)
	}
	return out, nil
}

func (r *DirectoryRepository) ActiveItems(personID int64) ([]directory.ActiveItem, error) {
	var rows []directory.ActiveItem
	err := r.db.Model(&assignmentDatamodel.Assignment{}).
		Select("assignments.id AS assignment_id, assignments.item_id, items.name AS item_name, items.serial_no").
		Joins("JOIN items ON items.item_id = assignments.item_id").
		Where("assignments.person_id = ? AND assignments.returned_at IS NULL", personID).
		Scan(&rows).Error
	return rows, err
}

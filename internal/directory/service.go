package directory

import (
	"log/slog"
	"time"

	"github.com/assetvault/asset-management/internal"
	directoryDatamodel "github.com/assetvault/asset-management/internal/core/datamodel/directory"
)

// PersonRecord is a person row with its department name resolved.
type PersonRecord struct {
	directoryDatamodel.Person
	DepartmentName *string
}

// Repository defines the data access methods for the directory.
type Repository interface {
	ListDepartments() ([]*directoryDatamodel.Department, error)
	GetDepartment(id int64) (*directoryDatamodel.Department, error)
	DepartmentExists(name string) (bool, error)
	CreateDepartment(m *directoryDatamodel.Department) error
	UpdateDepartment(m *directoryDatamodel.Department) error
	DeleteDepartment(id int64) (int64, error)
	PeopleCount(departmentID int64) (int64, error)

	ListPeople(filter PersonFilter) ([]*PersonRecord, error)
	GetPerson(id int64) (*PersonRecord, error)
	EmpCodeExists(code string, excludeID int64) (bool, error)
	CreatePerson(m *directoryDatamodel.Person) error
	UpdatePerson(m *directoryDatamodel.Person) error
	DeletePerson(id int64) (int64, error)

	History(personID int64) ([]HistoryRow, error)
	ActiveItems(personID int64) ([]ActiveItem, error)
}

// Service handles directory business logic.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) ListDepartments() ([]*Department, error) {
	rows, err := s.repo.ListDepartments()
	if err != nil {
		s.logger.Error("failed to list departments", "error", err)
		return nil, err
	}
	out := make([]*Department, 0, len(rows))
	for _, m := range rows {
		out = append(out, departmentFromDataModel(m))
	}
	return out, nil
}

func (s *Service) CreateDepartment(dto CreateDepartmentDTO) (*Department, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	exists, err := s.repo.DepartmentExists(dto.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, internal.ErrDepartmentExists
	}

	m := &directoryDatamodel.Department{Name: dto.Name}
	if err := s.repo.CreateDepartment(m); err != nil {
		s.logger.Error("failed to create department", "error", err, "name", dto.Name)
		return nil, err
	}

	s.logger.Info("department created", "department_id", m.ID, "name", m.Name)
	return departmentFromDataModel(m), nil
}

// RenameDepartment changes the name, keeping names unique.
func (s *Service) RenameDepartment(id int64, dto CreateDepartmentDTO) (*Department, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	m, err := s.repo.GetDepartment(id)
	if err != nil {
		return nil, internal.ErrDepartmentNotFound
	}

	if m.Name != dto.Name {
		exists, err := s.repo.DepartmentExists(dto.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, internal.ErrDepartmentExists
		}
	}

	m.Name = dto.Name
	if err := s.repo.UpdateDepartment(m); err != nil {
		s.logger.Error("failed to rename department", "error", err, "department_id", id)
		return nil, err
	}

	s.logger.Info("department renamed", "department_id", id, "name", m.Name)
	return departmentFromDataModel(m), nil
}

// DeleteDepartment refuses while any person still belongs to it.
func (s *Service) DeleteDepartment(id int64) error {
	if _, err := s.repo.GetDepartment(id); err != nil {
		return internal.ErrDepartmentNotFound
	}

	count, err := s.repo.PeopleCount(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return internal.ErrDepartmentInUse
	}

	affected, err := s.repo.DeleteDepartment(id)
	if err != nil {
		s.logger.Error("failed to delete department", "error", err, "department_id", id)
		return err
	}
	if affected == 0 {
		return internal.ErrDepartmentNotFound
	}

	s.logger.Info("department deleted", "department_id", id)
	return nil
}

func (s *Service) ListPeople(filter PersonFilter) ([]*Person, error) {
	rows, err := s.repo.ListPeople(filter)
	if err != nil {
		s.logger.Error("failed to list people", "error", err)
		return nil, err
	}
	out := make([]*Person, 0, len(rows))
	for _, rec := range rows {
		out = append(out, personView(rec))
	}
	return out, nil
}

func (s *Service) GetPerson(id int64) (*Person, error) {
	rec, err := s.repo.GetPerson(id)
	if err != nil {
		return nil, internal.ErrPersonNotFound
	}
	return personView(rec), nil
}

// PersonHistory lists the person's custodianship spans, newest first.
func (s *Service) PersonHistory(id int64) ([]HistoryRow, error) {
	if _, err := s.repo.GetPerson(id); err != nil {
		return nil, internal.ErrPersonNotFound
	}

	rows, err := s.repo.History(id)
	if err != nil {
		s.logger.Error("failed to load person history", "error", err, "person_id", id)
		return nil, err
	}
	if rows == nil {
		rows = []HistoryRow{}
	}
	return rows, nil
}

func (s *Service) CreatePerson(dto CreatePersonDTO) (*Person, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	if dto.DepartmentID != nil {
		if _, err := s.repo.GetDepartment(*dto.DepartmentID); err != nil {
			return nil, internal.ErrDepartmentNotFound
		}
	}
	if dto.EmpCode != nil && *dto.EmpCode != "" {
		exists, err := s.repo.EmpCodeExists(*dto.EmpCode, 0)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, internal.ErrEmpCodeExists
		}
	}

	m := &directoryDatamodel.Person{
		EmpCode:      dto.EmpCode,
		FullName:     dto.FullName,
		DepartmentID: dto.DepartmentID,
		Email:        dto.Email,
		Phone:        dto.Phone,
		Status:       directoryDatamodel.PersonStatusActive,
		CreatedAt:    time.Now(),
	}
	if dto.Status != nil {
		m.Status = *dto.Status
	}

	if err := s.repo.CreatePerson(m); err != nil {
		s.logger.Error("failed to create person", "error", err, "full_name", dto.FullName)
		return nil, err
	}

	s.logger.Info("person created", "person_id", m.ID, "full_name", m.FullName)
	return s.GetPerson(m.ID)
}

// UpdatePerson applies a partial update; omitted fields keep prior values.
func (s *Service) UpdatePerson(id int64, dto UpdatePersonDTO) (*Person, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	rec, err := s.repo.GetPerson(id)
	if err != nil {
		return nil, internal.ErrPersonNotFound
	}
	m := rec.Person

	if dto.DepartmentID != nil {
		if _, err := s.repo.GetDepartment(*dto.DepartmentID); err != nil {
			return nil, internal.ErrDepartmentNotFound
		}
		m.DepartmentID = dto.DepartmentID
	}
	if dto.EmpCode != nil {
		if *dto.EmpCode != "" {
			exists, err := s.repo.EmpCodeExists(*dto.EmpCode, id)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, internal.ErrEmpCodeExists
			}
		}
		m.EmpCode = dto.EmpCode
	}
	if dto.FullName != nil {
		m.FullName = *dto.FullName
	}
	if dto.Email != nil {
		m.Email = dto.Email
	}
	if dto.Phone != nil {
		m.Phone = dto.Phone
	}
	if dto.Status != nil {
		m.Status = *dto.Status
	}

	if err := s.repo.UpdatePerson(&m); err != nil {
		s.logger.Error("failed to update person", "error", err, "person_id", id)
		return nil, err
	}

	return s.GetPerson(id)
}

// DeletePerson refuses while the person still holds assigned items; the
// conflict response lists them so the client can prompt for returns.
func (s *Service) DeletePerson(id int64) error {
	if _, err := s.repo.GetPerson(id); err != nil {
		return internal.ErrPersonNotFound
	}

	active, err := s.repo.ActiveItems(id)
	if err != nil {
		return err
	}
	if len(active) > 0 {
		return internal.ErrPersonHasDevices.WithDetails(map[string]interface{}{
			"active_items": active,
		})
	}

	affected, err := s.repo.DeletePerson(id)
	if err != nil {
		s.logger.Error("failed to delete person", "error", err, "person_id", id)
		return err
	}
	if affected == 0 {
		return internal.ErrPersonNotFound
	}

	s.logger.Info("person deleted", "person_id", id)
	return nil
}

func personView(rec *PersonRecord) *Person {
	return &Person{
		ID:             rec.ID,
		EmpCode:        rec.EmpCode,
		FullName:       rec.FullName,
		DepartmentID:   rec.DepartmentID,
		DepartmentName: rec.DepartmentName,
		Email:          rec.Email,
		Phone:          rec.Phone,
		Status:         rec.Status,
	}
}

package directory

import "time"

const (
	PersonStatusActive   = "active"
	PersonStatusInactive = "inactive"
)

type Department struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"column:name;uniqueIndex;not null"`
}

func (Department) TableName() string {
	return "departments"
}

type Person struct {
	ID           int64     `gorm:"primaryKey"`
	EmpCode      *string   `gorm:"column:emp_code;uniqueIndex"`
	FullName     string    `gorm:"column:full_name;not null"`
	DepartmentID *int64    `gorm:"column:department_id"`
	Email        *string   `gorm:"column:email"`
	Phone        *string   `gorm:"column:phone"`
	Status       string    `gorm:"column:status;default:active"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (Person) TableName() string {
	return "people"
}

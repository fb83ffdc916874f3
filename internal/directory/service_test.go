package directory_test

import (
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/assetvault/asset-management/internal"
	assignmentDatamodel "github.com/assetvault/asset-management/internal/core/datamodel/assignment"
	directoryDatamodel "github.com/assetvault/asset-management/internal/core/datamodel/directory"
	itemDatamodel "github.com/assetvault/asset-management/internal/core/datamodel/item"
	"github.com/assetvault/asset-management/internal/directory"
	"github.com/assetvault/asset-management/internal/directory/postgres"
)

func TestDirectory(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Directory Suite")
}

func strPtr(s string) *string { return &s }

var _ = Describe("DirectoryService", func() {
	var (
		db      *gorm.DB
		service *directory.Service
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(db.AutoMigrate(
			&directoryDatamodel.Department{},
			&directoryDatamodel.Person{},
			&itemDatamodel.Item{},
			&assignmentDatamodel.Assignment{},
		)).To(Succeed())

		repo := postgres.NewDirectoryRepository(db)
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = directory.NewService(repo, logger)
	})

	Describe("departments", func() {
		It("creates and lists departments sorted by name", func() {
			_, err := service.CreateDepartment(directory.CreateDepartmentDTO{Name: "Operations"})
			Expect(err).ToNot(HaveOccurred())
			_, err = service.CreateDepartment(directory.CreateDepartmentDTO{Name: "Finance"})
			Expect(err).ToNot(HaveOccurred())

			departments, err := service.ListDepartments()
			Expect(err).ToNot(HaveOccurred())
			Expect(departments).To(HaveLen(2))
			Expect(departments[0].Name).To(Equal("Finance"))
			Expect(departments[1].Name).To(Equal("Operations"))
		})

		It("rejects a duplicate department name", func() {
			_, err := service.CreateDepartment(directory.CreateDepartmentDTO{Name: "IT"})
			Expect(err).ToNot(HaveOccurred())

			_, err = service.CreateDepartment(directory.CreateDepartmentDTO{Name: "IT"})
			Expect(err).To(Equal(internal.ErrDepartmentExists))
		})

		It("renames a department", func() {
			dept, err := service.CreateDepartment(directory.CreateDepartmentDTO{Name: "Ops"})
			Expect(err).ToNot(HaveOccurred())

			renamed, err := service.RenameDepartment(dept.ID, directory.CreateDepartmentDTO{Name: "Operations"})
			Expect(err).ToNot(HaveOccurred())
			Expect(renamed.Name).To(Equal("Operations"))
		})

		It("rejects renaming onto a taken name", func() {
			_, err := service.CreateDepartment(directory.CreateDepartmentDTO{Name: "IT"})
			Expect(err).ToNot(HaveOccurred())
			dept, err := service.CreateDepartment(directory.CreateDepartmentDTO{Name: "Ops"})
			Expect(err).ToNot(HaveOccurred())

			_, err = service.RenameDepartment(dept.ID, directory.CreateDepartmentDTO{Name: "IT"})
			Expect(err).To(Equal(internal.ErrDepartmentExists))
		})

		It("refuses to delete a department that still has people", func() {
			dept, err := service.CreateDepartment(directory.CreateDepartmentDTO{Name: "IT"})
			Expect(err).ToNot(HaveOccurred())

			_, err = service.CreatePerson(directory.CreatePersonDTO{
				FullName:     "Alice A",
				DepartmentID: &dept.ID,
			})
			Expect(err).ToNot(HaveOccurred())

			Expect(service.DeleteDepartment(dept.ID)).To(Equal(internal.ErrDepartmentInUse))
		})

		It("deletes an empty department", func() {
			dept, err := service.CreateDepartment(directory.CreateDepartmentDTO{Name: "IT"})
			Expect(err).ToNot(HaveOccurred())

			Expect(service.DeleteDepartment(dept.ID)).To(Succeed())
			Expect(service.DeleteDepartment(dept.ID)).To(Equal(internal.ErrDepartmentNotFound))
		})
	})

	Describe("people", func() {
		var deptID int64

		BeforeEach(func() {
			dept, err := service.CreateDepartment(directory.CreateDepartmentDTO{Name: "IT"})
			Expect(err).ToNot(HaveOccurred())
			deptID = dept.ID
		})

		It("resolves the department name in person views", func() {
			created, err := service.CreatePerson(directory.CreatePersonDTO{
				EmpCode:      strPtr("E-100"),
				FullName:     "Alice A",
				DepartmentID: &deptID,
				Email:        strPtr("alice@example.com"),
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(created.DepartmentName).ToNot(BeNil())
			Expect(*created.DepartmentName).To(Equal("IT"))
			Expect(created.Status).To(Equal("active"))
		})

		It("leaves the department name null for unattached people", func() {
			created, err := service.CreatePerson(directory.CreatePersonDTO{FullName: "Bob B"})
			Expect(err).ToNot(HaveOccurred())
			Expect(created.DepartmentID).To(BeNil())
			Expect(created.DepartmentName).To(BeNil())
		})

		It("rejects a duplicate employee code", func() {
			_, err := service.CreatePerson(directory.CreatePersonDTO{EmpCode: strPtr("E-1"), FullName: "Alice"})
			Expect(err).ToNot(HaveOccurred())

			_, err = service.CreatePerson(directory.CreatePersonDTO{EmpCode: strPtr("E-1"), FullName: "Bob"})
			Expect(err).To(Equal(internal.ErrEmpCodeExists))
		})

		It("rejects an unknown department reference", func() {
			unknown := int64(999)
			_, err := service.CreatePerson(directory.CreatePersonDTO{
				FullName:     "Ghost",
				DepartmentID: &unknown,
			})
			Expect(err).To(Equal(internal.ErrDepartmentNotFound))
		})

		It("filters listings by department and query", func() {
			other, err := service.CreateDepartment(directory.CreateDepartmentDTO{Name: "Finance"})
			Expect(err).ToNot(HaveOccurred())

			_, err = service.CreatePerson(directory.CreatePersonDTO{FullName: "Alice A", DepartmentID: &deptID})
			Expect(err).ToNot(HaveOccurred())
			_, err = service.CreatePerson(directory.CreatePersonDTO{FullName: "Bob B", DepartmentID: &other.ID})
			Expect(err).ToNot(HaveOccurred())

			byDept, err := service.ListPeople(directory.PersonFilter{DepartmentID: &deptID})
			Expect(err).ToNot(HaveOccurred())
			Expect(byDept).To(HaveLen(1))
			Expect(byDept[0].FullName).To(Equal("Alice A"))

			byQuery, err := service.ListPeople(directory.PersonFilter{Query: "Bob"})
			Expect(err).ToNot(HaveOccurred())
			Expect(byQuery).To(HaveLen(1))
			Expect(byQuery[0].FullName).To(Equal("Bob B"))

			limited, err := service.ListPeople(directory.PersonFilter{Limit: 1})
			Expect(err).ToNot(HaveOccurred())
			Expect(limited).To(HaveLen(1))
		})

		It("updates only the fields that were sent", func() {
			created, err := service.CreatePerson(directory.CreatePersonDTO{
				FullName: "Alice A",
				Phone:    strPtr("555-0100"),
			})
			Expect(err).ToNot(HaveOccurred())

			updated, err := service.UpdatePerson(created.ID, directory.UpdatePersonDTO{
				Status: strPtr("inactive"),
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(updated.Status).To(Equal("inactive"))
			Expect(updated.FullName).To(Equal("Alice A"))
			Expect(*updated.Phone).To(Equal("555-0100"))
		})

		It("returns not found for unknown people", func() {
			_, err := service.GetPerson(999)
			Expect(err).To(Equal(internal.ErrPersonNotFound))

			_, err = service.PersonHistory(999)
			Expect(err).To(Equal(internal.ErrPersonNotFound))

			Expect(service.DeletePerson(999)).To(Equal(internal.ErrPersonNotFound))
		})
	})

	Describe("history and deletion guard", func() {
		var personID int64

		seedAssignment := func(itemID, name string, serial *string, returned *time.Time) {
			Expect(db.Create(&itemDatamodel.Item{ItemID: itemID, Name: name, Quantity: 1, SerialNo: serial}).Error).To(Succeed())
			Expect(db.Create(&assignmentDatamodel.Assignment{
				ItemID:     itemID,
				PersonID:   personID,
				AssignedAt: time.Now().Add(-24 * time.Hour),
				ReturnedAt: returned,
			}).Error).To(Succeed())
		}

		BeforeEach(func() {
			created, err := service.CreatePerson(directory.CreatePersonDTO{FullName: "Alice A"})
			Expect(err).ToNot(HaveOccurred())
			personID = created.ID
		})

		It("lists custodianship spans with item names", func() {
			now := time.Now()
			seedAssignment("IT-1", "Laptop", nil, &now)
			seedAssignment("IT-2", "Printer", nil, nil)

			history, err := service.PersonHistory(personID)
			Expect(err).ToNot(HaveOccurred())
			Expect(history).To(HaveLen(2))

			names := []string{history[0].ItemName, history[1].ItemName}
			Expect(names).To(ConsistOf("Laptop", "Printer"))
		})

		It("returns an empty history for a person with no assignments", func() {
			history, err := service.PersonHistory(personID)
			Expect(err).ToNot(HaveOccurred())
			Expect(history).To(BeEmpty())
		})

		It("blocks deletion while items are still assigned and lists them", func() {
			seedAssignment("IT-1", "Laptop", strPtr("SN-1"), nil)

			err := service.DeletePerson(personID)
			Expect(err).To(HaveOccurred())

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodePersonHasDevices))

			details, ok := appErr.Details.(map[string]interface{})
			Expect(ok).To(BeTrue())
			active, ok := details["active_items"].([]directory.ActiveItem)
			Expect(ok).To(BeTrue())
			Expect(active).To(HaveLen(1))
			Expect(active[0].ItemID).To(Equal("IT-1"))
			Expect(active[0].ItemName).To(Equal("Laptop"))
			Expect(*active[0].SerialNo).To(Equal("SN-1"))
		})

		It("deletes once every item is back", func() {
			now := time.Now()
			seedAssignment("IT-1", "Laptop", nil, &now)

			Expect(service.DeletePerson(personID)).To(Succeed())
		})
	})
})

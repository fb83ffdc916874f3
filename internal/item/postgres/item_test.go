package postgres_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	itemDatamodel "github.com/assetvault/asset-management/internal/core/datamodel/item"
	"github.com/assetvault/asset-management/internal/item"
	"github.com/assetvault/asset-management/internal/item/postgres"
)

func TestItemRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Item Repository Suite")
}

var _ = Describe("ItemRepository", func() {
	var (
		db   *gorm.DB
		repo item.Repository
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(db.AutoMigrate(&itemDatamodel.Item{}, &itemDatamodel.Photo{})).To(Succeed())
		repo = postgres.NewItemRepository(db)
	})

	seed := func(id, name string, serial *string) {
		Expect(repo.Create(&itemDatamodel.Item{
			ItemID:   id,
			Name:     name,
			Quantity: 1,
			SerialNo: serial,
		})).To(Succeed())
	}

	str := func(s string) *string { return &s }

	It("round-trips an item", func() {
		seed("IT-1", "Dell Latitude", str("SN-100"))

		got, err := repo.GetByID("IT-1")
		Expect(err).ToNot(HaveOccurred())
		Expect(got.Name).To(Equal("Dell Latitude"))
		Expect(*got.SerialNo).To(Equal("SN-100"))
	})

	It("looks up items by serial number", func() {
		seed("IT-1", "Dell Latitude", str("SN-100"))
		seed("IT-2", "HP ProBook", str("SN-200"))

		got, err := repo.GetBySerial("SN-200")
		Expect(err).ToNot(HaveOccurred())
		Expect(got.ItemID).To(Equal("IT-2"))
	})

	It("searches across id, name, serial and model", func() {
		seed("IT-1", "Dell Latitude", str("SN-100"))
		seed("IT-2", "HP ProBook", str("SN-200"))
		seed("IT-3", "Brother Printer", nil)

		byName, err := repo.Search("Latitude")
		Expect(err).ToNot(HaveOccurred())
		Expect(byName).To(HaveLen(1))
		Expect(byName[0].ItemID).To(Equal("IT-1"))

		bySerial, err := repo.Search("SN-2")
		Expect(err).ToNot(HaveOccurred())
		Expect(bySerial).To(HaveLen(1))
		Expect(bySerial[0].ItemID).To(Equal("IT-2"))

		byID, err := repo.Search("IT-")
		Expect(err).ToNot(HaveOccurred())
		Expect(byID).To(HaveLen(3))
	})

	It("reports existence without loading the row", func() {
		seed("IT-1", "x", nil)

		Expect(repo.Exists("IT-1")).To(BeTrue())
		Expect(repo.Exists("IT-404")).To(BeFalse())
	})

	It("updates a stored item", func() {
		seed("IT-1", "Old", nil)

		got, err := repo.GetByID("IT-1")
		Expect(err).ToNot(HaveOccurred())
		got.Name = "New"
		got.Quantity = 5
		Expect(repo.Update(got)).To(Succeed())

		again, err := repo.GetByID("IT-1")
		Expect(err).ToNot(HaveOccurred())
		Expect(again.Name).To(Equal("New"))
		Expect(again.Quantity).To(Equal(5))
	})

	It("reports how many rows a delete removed", func() {
		seed("IT-1", "x", nil)

		affected, err := repo.Delete("IT-1")
		Expect(err).ToNot(HaveOccurred())
		Expect(affected).To(Equal(int64(1)))

		affected, err = repo.Delete("IT-1")
		Expect(err).ToNot(HaveOccurred())
		Expect(affected).To(BeZero())
	})

	It("lists photos for an item in insertion order", func() {
		seed("IT-1", "x", nil)
		Expect(db.Create(&itemDatamodel.Photo{ItemID: "IT-1", PhotoURL: "/uploads/a.jpg"}).Error).To(Succeed())
		Expect(db.Create(&itemDatamodel.Photo{ItemID: "IT-1", PhotoURL: "/uploads/b.jpg"}).Error).To(Succeed())

		photos, err := repo.PhotosForItem("IT-1")
		Expect(err).ToNot(HaveOccurred())
		Expect(photos).To(HaveLen(2))
		Expect(photos[0].PhotoURL).To(Equal("/uploads/a.jpg"))
		Expect(photos[1].PhotoURL).To(Equal("/uploads/b.jpg"))
	})
})

package item_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/assetvault/asset-management/internal"
	itemDatamodel "github.com/assetvault/asset-management/internal/core/datamodel/item"
	"github.com/assetvault/asset-management/internal/item"
)

func TestItem(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Item Suite")
}

type mockItemRepository struct {
	items       map[string]*itemDatamodel.Item
	photos      map[string][]itemDatamodel.Photo
	order       []string
	createError error
}

func newMockItemRepository() *mockItemRepository {
	return &mockItemRepository{
		items:  make(map[string]*itemDatamodel.Item),
		photos: make(map[string][]itemDatamodel.Photo),
	}
}

func (m *mockItemRepository) List() ([]*itemDatamodel.Item, error) {
	out := make([]*itemDatamodel.Item, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.items[id])
	}
	return out, nil
}

func (m *mockItemRepository) Search(q string) ([]*itemDatamodel.Item, error) {
	var out []*itemDatamodel.Item
	for _, id := range m.order {
		it := m.items[id]
		if contains(it.Name, q) || contains(it.ItemID, q) {
			out = append(out, it)
		}
	}
	return out, nil
}

func contains(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}

func (m *mockItemRepository) GetByID(itemID string) (*itemDatamodel.Item, error) {
	it, ok := m.items[itemID]
	if !ok {
		return nil, errors.New("record not found")
	}
	return it, nil
}

func (m *mockItemRepository) GetBySerial(serialNo string) (*itemDatamodel.Item, error) {
	for _, id := range m.order {
		it := m.items[id]
		if it.SerialNo != nil && *it.SerialNo == serialNo {
			return it, nil
		}
	}
	return nil, errors.New("record not found")
}

func (m *mockItemRepository) Exists(itemID string) (bool, error) {
	_, ok := m.items[itemID]
	return ok, nil
}

func (m *mockItemRepository) Create(it *itemDatamodel.Item) error {
	if m.createError != nil {
		return m.createError
	}
	m.items[it.ItemID] = it
	m.order = append(m.order, it.ItemID)
	return nil
}

func (m *mockItemRepository) Update(it *itemDatamodel.Item) error {
	m.items[it.ItemID] = it
	return nil
}

func (m *mockItemRepository) Delete(itemID string) (int64, error) {
	if _, ok := m.items[itemID]; !ok {
		return 0, nil
	}
	delete(m.items, itemID)
	for i, id := range m.order {
		if id == itemID {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return 1, nil
}

func (m *mockItemRepository) PhotosForItem(itemID string) ([]itemDatamodel.Photo, error) {
	return m.photos[itemID], nil
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

var _ = Describe("ItemService", func() {
	var (
		service  *item.Service
		mockRepo *mockItemRepository
	)

	BeforeEach(func() {
		mockRepo = newMockItemRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = item.NewService(mockRepo, logger)
	})

	Describe("CreateItem", func() {
		It("stores the item and records who created it", func() {
			created, err := service.CreateItem(item.CreateItemDTO{
				ItemID:   "IT-1",
				Name:     "Dell Latitude 5440",
				Quantity: 1,
				SerialNo: strPtr("SN-100"),
			}, "alice")

			Expect(err).ToNot(HaveOccurred())
			Expect(created.ItemID).To(Equal("IT-1"))
			Expect(created.CreatedBy).ToNot(BeNil())
			Expect(*created.CreatedBy).To(Equal("alice"))
			Expect(created.CreatedAt).ToNot(BeNil())
			Expect(created.Photos).To(BeEmpty())
		})

		It("rejects a duplicate item_id", func() {
			_, err := service.CreateItem(item.CreateItemDTO{ItemID: "IT-1", Name: "A", Quantity: 1}, "alice")
			Expect(err).ToNot(HaveOccurred())

			_, err = service.CreateItem(item.CreateItemDTO{ItemID: "IT-1", Name: "B", Quantity: 1}, "alice")
			Expect(err).To(Equal(internal.ErrItemExists))
		})

		It("rejects missing required fields", func() {
			_, err := service.CreateItem(item.CreateItemDTO{Name: "no id"}, "alice")
			Expect(err).To(HaveOccurred())

			_, err = service.CreateItem(item.CreateItemDTO{ItemID: "IT-2"}, "alice")
			Expect(err).To(HaveOccurred())

			_, err = service.CreateItem(item.CreateItemDTO{ItemID: "IT-3", Name: "x", Quantity: -1}, "alice")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("GetItem", func() {
		It("returns the item with its photos", func() {
			_, err := service.CreateItem(item.CreateItemDTO{ItemID: "IT-1", Name: "Printer", Quantity: 1}, "alice")
			Expect(err).ToNot(HaveOccurred())
			mockRepo.photos["IT-1"] = []itemDatamodel.Photo{
				{ID: 1, ItemID: "IT-1", PhotoURL: "/uploads/a.jpg"},
				{ID: 2, ItemID: "IT-1", PhotoURL: "/uploads/b.jpg"},
			}

			got, err := service.GetItem("IT-1")
			Expect(err).ToNot(HaveOccurred())
			Expect(got.Photos).To(HaveLen(2))
			Expect(got.Photos[0].PhotoURL).To(Equal("/uploads/a.jpg"))
		})

		It("returns not found for an unknown id", func() {
			_, err := service.GetItem("IT-404")
			Expect(err).To(Equal(internal.ErrItemNotFound))
		})
	})

	Describe("GetItemBySerial", func() {
		It("resolves an item through its serial number", func() {
			_, err := service.CreateItem(item.CreateItemDTO{
				ItemID: "IT-1", Name: "UPS", Quantity: 1, SerialNo: strPtr("SN-9"),
			}, "alice")
			Expect(err).ToNot(HaveOccurred())

			got, err := service.GetItemBySerial("SN-9")
			Expect(err).ToNot(HaveOccurred())
			Expect(got.ItemID).To(Equal("IT-1"))
		})

		It("returns not found for an unknown serial", func() {
			_, err := service.GetItemBySerial("SN-missing")
			Expect(err).To(Equal(internal.ErrItemNotFound))
		})
	})

	Describe("UpdateItem", func() {
		BeforeEach(func() {
			_, err := service.CreateItem(item.CreateItemDTO{
				ItemID:   "IT-1",
				Name:     "Old name",
				Quantity: 1,
				Owner:    strPtr("IT dept"),
			}, "alice")
			Expect(err).ToNot(HaveOccurred())
		})

		It("changes only the fields that were sent", func() {
			updated, err := service.UpdateItem("IT-1", item.UpdateItemDTO{
				Name:     strPtr("New name"),
				Quantity: intPtr(3),
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(updated.Name).To(Equal("New name"))
			Expect(updated.Quantity).To(Equal(3))
			Expect(updated.Owner).ToNot(BeNil())
			Expect(*updated.Owner).To(Equal("IT dept"))
		})

		It("rejects an empty name", func() {
			_, err := service.UpdateItem("IT-1", item.UpdateItemDTO{Name: strPtr("")})
			Expect(err).To(HaveOccurred())
		})

		It("returns not found for an unknown item", func() {
			_, err := service.UpdateItem("IT-404", item.UpdateItemDTO{Name: strPtr("x")})
			Expect(err).To(Equal(internal.ErrItemNotFound))
		})
	})

	Describe("DeleteItem", func() {
		It("removes an existing item", func() {
			_, err := service.CreateItem(item.CreateItemDTO{ItemID: "IT-1", Name: "x", Quantity: 1}, "alice")
			Expect(err).ToNot(HaveOccurred())

			Expect(service.DeleteItem("IT-1")).To(Succeed())

			_, err = service.GetItem("IT-1")
			Expect(err).To(Equal(internal.ErrItemNotFound))
		})

		It("returns not found when nothing was deleted", func() {
			Expect(service.DeleteItem("IT-404")).To(Equal(internal.ErrItemNotFound))
		})
	})

	Describe("formatting", func() {
		It("renders created_at as a date-time string", func() {
			created, err := service.CreateItem(item.CreateItemDTO{ItemID: "IT-1", Name: "x", Quantity: 1}, "alice")
			Expect(err).ToNot(HaveOccurred())

			Expect(created.CreatedAt).ToNot(BeNil())
			_, parseErr := time.Parse(time.DateTime, *created.CreatedAt)
			Expect(parseErr).ToNot(HaveOccurred())
		})
	})
})

package photo_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"sort"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/assetvault/asset-management/internal"
	itemDatamodel "github.com/assetvault/asset-management/internal/core/datamodel/item"
	"github.com/assetvault/asset-management/internal/photo"
)

func TestPhoto(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Photo Suite")
}

type mockPhotoRepository struct {
	rows        map[int64]*itemDatamodel.Photo
	nextID      int64
	insertError error
}

func newMockPhotoRepository() *mockPhotoRepository {
	return &mockPhotoRepository{rows: make(map[int64]*itemDatamodel.Photo), nextID: 1}
}

func (m *mockPhotoRepository) Insert(p *itemDatamodel.Photo) error {
	if m.insertError != nil {
		return m.insertError
	}
	p.ID = m.nextID
	m.nextID++
	m.rows[p.ID] = p
	return nil
}

func (m *mockPhotoRepository) GetByID(id int64) (*itemDatamodel.Photo, error) {
	p, ok := m.rows[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return p, nil
}

func (m *mockPhotoRepository) ListForItem(itemID string) ([]itemDatamodel.Photo, error) {
	ids := make([]int64, 0, len(m.rows))
	for id, p := range m.rows {
		if p.ItemID == itemID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]itemDatamodel.Photo, 0, len(ids))
	for _, id := range ids {
		out = append(out, *m.rows[id])
	}
	return out, nil
}

func (m *mockPhotoRepository) CountForItem(itemID string) (int64, error) {
	var n int64
	for _, p := range m.rows {
		if p.ItemID == itemID {
			n++
		}
	}
	return n, nil
}

func (m *mockPhotoRepository) Delete(id int64) (int64, error) {
	if _, ok := m.rows[id]; !ok {
		return 0, nil
	}
	delete(m.rows, id)
	return 1, nil
}

type mockItemStore struct {
	items map[string]*itemDatamodel.Item
}

func (m *mockItemStore) GetByID(itemID string) (*itemDatamodel.Item, error) {
	it, ok := m.items[itemID]
	if !ok {
		return nil, errors.New("record not found")
	}
	return it, nil
}

func (m *mockItemStore) Update(it *itemDatamodel.Item) error {
	m.items[it.ItemID] = it
	return nil
}

type mockFileStore struct {
	saved   map[string][]byte
	removed []string
}

func newMockFileStore() *mockFileStore {
	return &mockFileStore{saved: make(map[string][]byte)}
}

func (m *mockFileStore) Save(name string, data []byte) error {
	m.saved[name] = data
	return nil
}

func (m *mockFileStore) Remove(name string) error {
	if _, ok := m.saved[name]; !ok {
		return os.ErrNotExist
	}
	delete(m.saved, name)
	m.removed = append(m.removed, name)
	return nil
}

func testImage() photo.Upload {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 30, B: 30, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return photo.Upload{Filename: "test.png", Reader: &buf}
}

var _ = Describe("PhotoService", func() {
	var (
		service   *photo.Service
		mockRepo  *mockPhotoRepository
		items     *mockItemStore
		fileStore *mockFileStore
	)

	BeforeEach(func() {
		mockRepo = newMockPhotoRepository()
		items = &mockItemStore{items: map[string]*itemDatamodel.Item{
			"IT-1": {ItemID: "IT-1", Name: "Laptop", Quantity: 1},
		}}
		fileStore = newMockFileStore()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = photo.NewService(mockRepo, items, fileStore, "/uploads/", logger)
	})

	Describe("AddPhotos", func() {
		It("stores the file and records the public URL", func() {
			photos, err := service.AddPhotos("IT-1", []photo.Upload{testImage()})

			Expect(err).ToNot(HaveOccurred())
			Expect(photos).To(HaveLen(1))
			Expect(photos[0].PhotoURL).To(HavePrefix("/uploads/"))
			Expect(photos[0].PhotoURL).To(HaveSuffix(".jpg"))
			Expect(fileStore.saved).To(HaveLen(1))
		})

		It("sets the item cover photo on first upload only", func() {
			first, err := service.AddPhotos("IT-1", []photo.Upload{testImage()})
			Expect(err).ToNot(HaveOccurred())
			Expect(items.items["IT-1"].PhotoURL).ToNot(BeNil())
			Expect(*items.items["IT-1"].PhotoURL).To(Equal(first[0].PhotoURL))

			_, err = service.AddPhotos("IT-1", []photo.Upload{testImage()})
			Expect(err).ToNot(HaveOccurred())
			Expect(*items.items["IT-1"].PhotoURL).To(Equal(first[0].PhotoURL))
		})

		It("returns the item's full photo list, not just the batch", func() {
			_, err := service.AddPhotos("IT-1", []photo.Upload{testImage()})
			Expect(err).ToNot(HaveOccurred())

			photos, err := service.AddPhotos("IT-1", []photo.Upload{testImage()})
			Expect(err).ToNot(HaveOccurred())
			Expect(photos).To(HaveLen(2))
			Expect(photos[0].ID).To(BeNumerically("<", photos[1].ID))
		})

		It("returns not found for an unknown item", func() {
			_, err := service.AddPhotos("IT-404", []photo.Upload{testImage()})
			Expect(err).To(Equal(internal.ErrItemNotFound))
		})

		It("rejects payloads that are not images", func() {
			up := photo.Upload{Filename: "evil.exe", Reader: bytes.NewReader([]byte("MZ not an image"))}
			_, err := service.AddPhotos("IT-1", []photo.Upload{up})

			Expect(err).To(Equal(internal.ErrNotAnImage))
			Expect(fileStore.saved).To(BeEmpty())
			Expect(mockRepo.rows).To(BeEmpty())
		})

		It("enforces the per-item photo cap", func() {
			for i := 0; i < photo.MaxPhotosPerItem; i++ {
				_, err := service.AddPhotos("IT-1", []photo.Upload{testImage()})
				Expect(err).ToNot(HaveOccurred())
			}

			_, err := service.AddPhotos("IT-1", []photo.Upload{testImage()})
			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodePhotoLimit))
			Expect(fileStore.saved).To(HaveLen(photo.MaxPhotosPerItem))
		})

		It("counts a batch against the cap before saving anything", func() {
			batch := make([]photo.Upload, photo.MaxPhotosPerItem+1)
			for i := range batch {
				batch[i] = testImage()
			}

			_, err := service.AddPhotos("IT-1", batch)
			Expect(err).To(HaveOccurred())
			Expect(fileStore.saved).To(BeEmpty())
		})

		It("removes the stored file when the database insert fails", func() {
			mockRepo.insertError = errors.New("insert failed")

			_, err := service.AddPhotos("IT-1", []photo.Upload{testImage()})
			Expect(err).To(HaveOccurred())
			Expect(fileStore.saved).To(BeEmpty())
			Expect(fileStore.removed).To(HaveLen(1))
		})
	})

	Describe("ListForItem", func() {
		It("returns photos in upload order", func() {
			_, err := service.AddPhotos("IT-1", []photo.Upload{testImage(), testImage()})
			Expect(err).ToNot(HaveOccurred())

			photos, err := service.ListForItem("IT-1")
			Expect(err).ToNot(HaveOccurred())
			Expect(photos).To(HaveLen(2))
			Expect(photos[0].ID).To(BeNumerically("<", photos[1].ID))
		})

		It("returns not found for an unknown item", func() {
			_, err := service.ListForItem("nope")
			Expect(err).To(MatchError(internal.ErrItemNotFound))
		})
	})

	Describe("DeletePhoto", func() {
		It("removes the row and the stored file", func() {
			photos, err := service.AddPhotos("IT-1", []photo.Upload{testImage()})
			Expect(err).ToNot(HaveOccurred())

			Expect(service.DeletePhoto("IT-1", photos[0].ID)).To(Succeed())
			Expect(mockRepo.rows).To(BeEmpty())
			Expect(fileStore.saved).To(BeEmpty())
		})

		It("treats a photo reached through another item's URL as not found", func() {
			items.items["IT-2"] = &itemDatamodel.Item{ItemID: "IT-2", Name: "Printer", Quantity: 1}
			photos, err := service.AddPhotos("IT-1", []photo.Upload{testImage()})
			Expect(err).ToNot(HaveOccurred())

			Expect(service.DeletePhoto("IT-2", photos[0].ID)).To(Equal(internal.ErrPhotoNotFound))
			Expect(mockRepo.rows).To(HaveLen(1))
			Expect(fileStore.saved).To(HaveLen(1))
			Expect(items.items["IT-1"].PhotoURL).ToNot(BeNil())
		})

		It("clears the item cover when the cover photo is removed", func() {
			photos, err := service.AddPhotos("IT-1", []photo.Upload{testImage()})
			Expect(err).ToNot(HaveOccurred())
			Expect(items.items["IT-1"].PhotoURL).ToNot(BeNil())

			Expect(service.DeletePhoto("IT-1", photos[0].ID)).To(Succeed())
			Expect(items.items["IT-1"].PhotoURL).To(BeNil())
		})

		It("returns not found for an unknown photo", func() {
			Expect(service.DeletePhoto("IT-1", 99)).To(Equal(internal.ErrPhotoNotFound))
		})
	})
})

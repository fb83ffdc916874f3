package dashboard_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/assetvault/asset-management/internal/dashboard"
)

func TestDashboard(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Dashboard Suite")
}

type mockDashboardRepository struct {
	rows []dashboard.ItemUsage
	err  error
}

func (m *mockDashboardRepository) ItemRows() ([]dashboard.ItemUsage, error) {
	return m.rows, m.err
}

func strPtr(s string) *string { return &s }

var _ = Describe("DashboardService", func() {
	var (
		service  *dashboard.Service
		mockRepo *mockDashboardRepository
	)

	BeforeEach(func() {
		mockRepo = &mockDashboardRepository{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = dashboard.NewService(mockRepo, logger)
	})

	It("returns an empty summary for an empty fleet", func() {
		summary, err := service.Summary()
		Expect(err).ToNot(HaveOccurred())
		Expect(summary.Overall.TotalItems).To(BeZero())
		Expect(summary.Overall.InUsePct).To(BeZero())
		Expect(summary.ByCategory).To(BeEmpty())
		Expect(summary.ByCompany).To(BeEmpty())
	})

	It("aggregates overall usage with a rounded percentage", func() {
		mockRepo.rows = []dashboard.ItemUsage{
			{ItemID: "IT-1", Name: "Laptop A", InUse: true},
			{ItemID: "IT-2", Name: "Laptop B", InUse: true},
			{ItemID: "IT-3", Name: "Laptop C", InUse: false},
		}

		summary, err := service.Summary()
		Expect(err).ToNot(HaveOccurred())
		Expect(summary.Overall.TotalItems).To(Equal(3))
		Expect(summary.Overall.InUse).To(Equal(2))
		Expect(summary.Overall.Available).To(Equal(1))
		Expect(summary.Overall.InUsePct).To(Equal(66.7))
	})

	It("buckets items by explicit category, then by name", func() {
		mockRepo.rows = []dashboard.ItemUsage{
			{ItemID: "IT-1", Name: "Dell Latitude Laptop", InUse: true},
			{ItemID: "IT-2", Name: "Office Tower", InUse: false},
			{ItemID: "IT-3", Name: "Brother Printer", InUse: false},
			{ItemID: "IT-4", Name: "APC UPS 1500", InUse: true},
			{ItemID: "IT-5", Name: "Mystery Box", InUse: false},
			{ItemID: "IT-6", Name: "Random Device", Category: strPtr("Networking"), InUse: true},
		}

		summary, err := service.Summary()
		Expect(err).ToNot(HaveOccurred())

		byName := map[string]dashboard.CategoryStat{}
		for _, cs := range summary.ByCategory {
			byName[cs.Category] = cs
		}
		Expect(byName).To(HaveKey("Laptop"))
		Expect(byName).To(HaveKey("Desktop"))
		Expect(byName).To(HaveKey("Printer"))
		Expect(byName).To(HaveKey("UPS"))
		Expect(byName).To(HaveKey("Networking"))
		Expect(byName).To(HaveKey(dashboard.CategoryUncategorized))
		Expect(byName["Laptop"].InUse).To(Equal(1))
		Expect(byName["Printer"].Available).To(Equal(1))
	})

	It("groups usage per department with nested category counts", func() {
		mockRepo.rows = []dashboard.ItemUsage{
			{ItemID: "IT-1", Name: "Laptop A", Department: strPtr("Finance"), InUse: true},
			{ItemID: "IT-2", Name: "Laptop B", Department: strPtr("Finance"), InUse: true},
			{ItemID: "IT-3", Name: "Printer X", Department: strPtr("Finance"), InUse: false},
			{ItemID: "IT-4", Name: "Laptop C", InUse: true},
		}

		summary, err := service.Summary()
		Expect(err).ToNot(HaveOccurred())
		Expect(summary.ByCompany).To(HaveLen(2))

		Expect(summary.ByCompany[0].Department).To(Equal("Finance"))
		Expect(summary.ByCompany[0].Total).To(Equal(3))
		Expect(summary.ByCompany[0].InUse).To(Equal(2))
		Expect(summary.ByCompany[0].Categories).To(Equal([]dashboard.DepartmentCategory{
			{Category: "Laptop", InUse: 2},
		}))

		Expect(summary.ByCompany[1].Department).To(Equal("Unassigned"))
		Expect(summary.ByCompany[1].InUse).To(Equal(1))
	})

	It("propagates repository failures", func() {
		mockRepo.err = errors.New("db down")
		_, err := service.Summary()
		Expect(err).To(HaveOccurred())
	})
})

func TestCategoryFor(t *testing.T) {
	cases := []struct {
		name     string
		category *string
		want     string
	}{
		{"Dell Latitude Laptop", nil, "Laptop"},
		{"LAPTOP HP", nil, "Laptop"},
		{"Desktop Workstation", nil, "Desktop"},
		{"Mini PC", nil, "Desktop"},
		{"Office Tower", nil, "Desktop"},
		{"HP LaserJet Printer", nil, "Printer"},
		{"APC UPS 1500", nil, "UPS"},
		{"Mystery Box", nil, dashboard.CategoryUncategorized},
		{"Anything", strPtr("Networking"), "Networking"},
		{"Laptop-looking name", strPtr("Tablet"), "Tablet"},
	}

	for _, tc := range cases {
		if got := dashboard.CategoryFor(tc.category, tc.name); got != tc.want {
			t.Errorf("CategoryFor(%v, %q) = %q, want %q", tc.category, tc.name, got, tc.want)
		}
	}
}

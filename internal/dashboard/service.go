package dashboard

import (
	"log/slog"
	"math"
	"sort"
)

// ItemUsage is one item with its usage flag, as read by the repository.
type ItemUsage struct {
	ItemID     string
	Name       string
	Category   *string
	Department *string
	InUse      bool
}

// Repository feeds the dashboard aggregation.
type Repository interface {
	ItemRows() ([]ItemUsage, error)
}

// Service aggregates fleet usage for the dashboard.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Summary builds the whole dashboard payload in one pass over the fleet.
func (s *Service) Summary() (*Summary, error) {
	rows, err := s.repo.ItemRows()
	if err != nil {
		s.logger.Error("failed to load dashboard rows", "error", err)
		return nil, err
	}

	out := &Summary{
		ByCategory: []CategoryStat{},
		ByCompany:  []DepartmentStat{},
	}

	type deptAgg struct {
		total      int
		inUse      int
		categories map[string]int
	}
	byCategory := map[string]*CategoryStat{}
	byDept := map[string]*deptAgg{}

	for _, row := range rows {
		out.Overall.TotalItems++
		if row.InUse {
			out.Overall.InUse++
		}

		cat := CategoryFor(row.Category, row.Name)
		cs, ok := byCategory[cat]
		if !ok {
			cs = &CategoryStat{Category: cat}
			byCategory[cat] = cs
		}
		cs.Total++
		if row.InUse {
			cs.InUse++
		}

		dept := "Unassigned"
		if row.Department != nil && *row.Department != "" {
			dept = *row.Department
		}
		da, ok := byDept[dept]
		if !ok {
			da = &deptAgg{categories: map[string]int{}}
			byDept[dept] = da
		}
		da.total++
		if row.InUse {
			da.inUse++
			da.categories[cat]++
		}
	}

	out.Overall.Available = out.Overall.TotalItems - out.Overall.InUse
	if out.Overall.TotalItems > 0 {
		pct := float64(out.Overall.InUse) / float64(out.Overall.TotalItems) * 100
		out.Overall.InUsePct = math.Round(pct*10) / 10
	}

	for _, cs := range byCategory {
		cs.Available = cs.Total - cs.InUse
		out.ByCategory = append(out.ByCategory, *cs)
	}
	sort.Slice(out.ByCategory, func(i, j int) bool {
		return out.ByCategory[i].Category < out.ByCategory[j].Category
	})

	for name, da := range byDept {
		ds := DepartmentStat{
			Department: name,
			Total:      da.total,
			InUse:      da.inUse,
			Categories: []DepartmentCategory{},
		}
		for cat, n := range da.categories {
			ds.Categories = append(ds.Categories, DepartmentCategory{Category: cat, InUse: n})
		}
		sort.Slice(ds.Categories, func(i, j int) bool {
			return ds.Categories[i].Category < ds.Categories[j].Category
		})
		out.ByCompany = append(out.ByCompany, ds)
	}
	sort.Slice(out.ByCompany, func(i, j int) bool {
		return out.ByCompany[i].Department < out.ByCompany[j].Department
	})

	return out, nil
}

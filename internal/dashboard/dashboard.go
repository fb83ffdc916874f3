package dashboard

import "strings"

// CategoryUncategorized is the bucket for items nothing else matches.
const CategoryUncategorized = "Uncategorized"

// CategoryFor buckets an item. An explicit category wins; otherwise the
// name is matched against the common equipment words the fleet uses.
func CategoryFor(category *string, name string) string {
	if category != nil && *category != "" {
		return *category
	}

	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "laptop"):
		return "Laptop"
	case strings.Contains(lower, "printer"):
		return "Printer"
	case strings.Contains(lower, "ups"):
		return "UPS"
	// "pc" must stay last of the substrings: it is part of "APC".
	case strings.Contains(lower, "desktop"), strings.Contains(lower, "tower"), strings.Contains(lower, "pc"):
		return "Desktop"
	default:
		return CategoryUncategorized
	}
}

// Overall is the fleet-wide headline block.
type Overall struct {
	TotalItems int     `json:"total_items"`
	InUse      int     `json:"in_use"`
	Available  int     `json:"available"`
	InUsePct   float64 `json:"in_use_pct"`
}

// CategoryStat is one row of the per-category breakdown.
type CategoryStat struct {
	Category  string `json:"category"`
	Total     int    `json:"total"`
	InUse     int    `json:"in_use"`
	Available int    `json:"available"`
}

// DepartmentCategory is a category count nested in a department block.
type DepartmentCategory struct {
	Category string `json:"category"`
	InUse    int    `json:"in_use"`
}

// DepartmentStat groups usage per department. The wire key stays
// by_company for compatibility with the deployed web client.
type DepartmentStat struct {
	Department string               `json:"department"`
	Total      int                  `json:"total"`
	InUse      int                  `json:"in_use"`
	Categories []DepartmentCategory `json:"categories"`
}

// Summary is the dashboard payload.
type Summary struct {
	Overall    Overall          `json:"overall"`
	ByCategory []CategoryStat   `json:"by_category"`
	ByCompany  []DepartmentStat `json:"by_company"`
}

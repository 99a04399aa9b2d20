package repository

import "gorm.io/gorm"

// applyFilters narrows a query by a field→value map. Fields outside the
// allow-list are silently ignored; allowed[field] says whether the field
// matches by substring (true) or exactly (false).
func applyFilters(q *gorm.DB, allowed map[string]bool, filters map[string]string) *gorm.DB {
	for field, value := range filters {
		contains, ok := allowed[field]
		if !ok {
			continue
		}
		if contains {
			q = q.Where(field+" ILIKE ?", "%"+value+"%")
		} else {
			q = q.Where(field+" = ?", value)
		}
	}
	return q
}

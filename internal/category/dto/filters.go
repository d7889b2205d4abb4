package dto

type SubCategoryFilters struct {
	CategoryID string
	ExcludeIDs []string
	Limit      int
}

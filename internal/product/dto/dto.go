package dto

type ProductFilters struct {
	CategoryID    string
	SubCategoryID string
	UserID        string
	Page          int
	PageSize      int
}

// RelatedQuery selects candidate related products. Zero-valued fields do not
// filter. ExcludeIDs is the exclusion set threaded through the tiers.
type RelatedQuery struct {
	SubCategoryID string
	CategoryID    string
	ExcludeIDs    []string
	RequireImage  bool
	Limit         int
}

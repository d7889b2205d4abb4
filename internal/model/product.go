package model

type Product struct {
	BaseModel
	Slug           *string    `db:"slug" json:"slug"`
	Name           string     `db:"name" json:"name"`
	Price          float64    `db:"price" json:"price"`
	Currency       string     `db:"currency" json:"currency"`
	MOQ            int        `db:"moq" json:"moq"`
	MOQUnit        string     `db:"moq_unit" json:"moqUnit"`
	Description    string     `db:"description" json:"description"`
	Images         StringList `db:"images" json:"images"`
	CategoryID     *string    `db:"category_id" json:"category"`
	SubCategoryID  *string    `db:"sub_category_id" json:"subCategory"`
	UserID         string     `db:"user_id" json:"userId"`
	Specifications JSONMap    `db:"specifications" json:"specifications"`
	TradeShopping  JSONMap    `db:"trade_shopping" json:"tradeShopping"`

	// Populated associations, not columns.
	Category    *Category    `db:"-" json:"-"`
	SubCategory *SubCategory `db:"-" json:"-"`
	User        *User        `db:"-" json:"-"`
}

func (p *Product) HasImage() bool {
	for _, img := range p.Images {
		if img != "" {
			return true
		}
	}
	return false
}

// FirstImage returns the first non-empty image URL, or "".
func (p *Product) FirstImage() string {
	for _, img := range p.Images {
		if img != "" {
			return img
		}
	}
	return ""
}

package model

type Category struct {
	BaseModel
	Name string `db:"name"`
	Slug string `db:"slug"`
	Icon string `db:"icon"`

	SubCategories []SubCategory `db:"-"`
}

type SubCategory struct {
	BaseModel
	Name       string `db:"name"`
	Slug       string `db:"slug"`
	Icon       string `db:"icon"`
	CategoryID string `db:"category_id"`

	Category *Category `db:"-"`
}

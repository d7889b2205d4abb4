package dto

type CreateCategoryInput struct {
	Name string `json:"name" validate:"required,min=2,max=120"`
	Icon string `json:"icon" validate:"omitempty,url"`
}

type UpdateCategoryInput struct {
	ID   string `json:"-"`
	Name string `json:"name" validate:"required,min=2,max=120"`
	Icon string `json:"icon" validate:"omitempty,url"`
}

type CreateSubCategoryInput struct {
	CategoryID string `json:"-"`
	Name       string `json:"name" validate:"required,min=2,max=120"`
	Icon       string `json:"icon" validate:"omitempty,url"`
}

package dto

type CreateProductInput struct {
	UserID         string         `json:"-"`
	Name           string         `json:"name" validate:"required,min=2,max=200"`
	Price          float64        `json:"price" validate:"gte=0"`
	Currency       string         `json:"currency" validate:"required,len=3,alpha"`
	MOQ            int            `json:"moq" validate:"gte=1"`
	MOQUnit        string         `json:"moqUnit" validate:"required,max=32"`
	Description    string         `json:"description" validate:"max=5000"`
	Images         []string       `json:"images" validate:"max=10,dive,url"`
	CategoryID     string         `json:"category" validate:"required"`
	SubCategoryID  string         `json:"subCategory"`
	Specifications map[string]any `json:"specifications"`
	TradeShopping  map[string]any `json:"tradeShopping"`
}

type UpdateProductInput struct {
	ID             string         `json:"-"`
	UserID         string         `json:"-"`
	Role           string         `json:"-"`
	Name           string         `json:"name" validate:"required,min=2,max=200"`
	Price          float64        `json:"price" validate:"gte=0"`
	Currency       string         `json:"currency" validate:"required,len=3,alpha"`
	MOQ            int            `json:"moq" validate:"gte=1"`
	MOQUnit        string         `json:"moqUnit" validate:"required,max=32"`
	Description    string         `json:"description" validate:"max=5000"`
	Images         []string       `json:"images" validate:"max=10,dive,url"`
	CategoryID     string         `json:"category" validate:"required"`
	SubCategoryID  string         `json:"subCategory"`
	Specifications map[string]any `json:"specifications"`
	TradeShopping  map[string]any `json:"tradeShopping"`
}

type DeleteProductInput struct {
	ID     string
	UserID string
	Role   string
}

// Package view shapes product records into the JSON documents served to
// clients: associations flattened, images as bare URLs, internal fields dropped.
package view

import (
	"time"

	"github.com/fekuna/marketplace-catalog-service/internal/model"
	"github.com/fekuna/marketplace-catalog-service/internal/recommend"
)

type ProductDetail struct {
	ID                string                      `json:"id"`
	Slug              *string                     `json:"slug"`
	Name              string                      `json:"name"`
	Price             float64                     `json:"price"`
	Currency          string                      `json:"currency"`
	MOQ               int                         `json:"moq"`
	MOQUnit           string                      `json:"moqUnit"`
	Description       string                      `json:"description"`
	Specifications    map[string]any              `json:"specifications"`
	TradeShopping     map[string]any              `json:"tradeShopping"`
	CreatedAt         time.Time                   `json:"createdAt"`
	UpdatedAt         time.Time                   `json:"updatedAt"`
	Category          *TaxonomyRef                `json:"category"`
	SubCategory       *TaxonomyRef                `json:"subCategory"`
	Seller            Seller                      `json:"userId"`
	BusinessProfile   *BusinessProfile            `json:"businessProfile"`
	Images            []string                    `json:"images"`
	RelatedProducts   []RelatedProduct            `json:"relatedProducts"`
	RelatedCategories []recommend.RelatedCategory `json:"relatedCategories"`
}

type TaxonomyRef struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
	Icon string `json:"icon"`
}

type Seller struct {
	ID          string `json:"id"`
	Fullname    string `json:"fullname"`
	CompanyName string `json:"companyName"`
}

// BusinessProfile is the externally visible profile; identifiers are masked.
type BusinessProfile struct {
	CompanyName         string `json:"companyName"`
	GSTNumber           string `json:"gstNumber"`
	PANNumber           string `json:"panNumber"`
	YearOfEstablishment int    `json:"yearOfEstablishment"`
	BusinessType        string `json:"businessType"`
	City                string `json:"city"`
	State               string `json:"state"`
	Verified            bool   `json:"verified"`
}

type RelatedProduct struct {
	ID              string                  `json:"id"`
	Slug            *string                 `json:"slug"`
	Name            string                  `json:"name"`
	Price           float64                 `json:"price"`
	Currency        string                  `json:"currency"`
	MOQ             int                     `json:"moq"`
	MOQUnit         string                  `json:"moqUnit"`
	Category        *string                 `json:"category"`
	SubCategory     *string                 `json:"subCategory"`
	UserID          string                  `json:"userId"`
	BusinessProfile *RelatedBusinessProfile `json:"businessProfile"`
	Images          []string                `json:"images"`
}

type RelatedBusinessProfile struct {
	GSTNumber           string `json:"gstNumber"`
	YearOfEstablishment int    `json:"yearOfEstablishment"`
}

// Product is the list/write response shape without related items.
type Product struct {
	ID             string         `json:"id"`
	Slug           *string        `json:"slug"`
	Name           string         `json:"name"`
	Price          float64        `json:"price"`
	Currency       string         `json:"currency"`
	MOQ            int            `json:"moq"`
	MOQUnit        string         `json:"moqUnit"`
	Description    string         `json:"description"`
	Images         []string       `json:"images"`
	Category       *string        `json:"category"`
	SubCategory    *string        `json:"subCategory"`
	UserID         string         `json:"userId"`
	Specifications map[string]any `json:"specifications"`
	TradeShopping  map[string]any `json:"tradeShopping"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

type ProductList struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"pageSize"`
}

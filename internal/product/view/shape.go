package view

import (
	"github.com/fekuna/marketplace-catalog-service/internal/model"
	"github.com/fekuna/marketplace-catalog-service/internal/recommend"
)

// NewProductDetail assembles the detail document. p must have its Category,
// SubCategory and User associations populated where they exist.
func NewProductDetail(p *model.Product, profile *model.BusinessProfile, related []recommend.RelatedProduct, categories []recommend.RelatedCategory) *ProductDetail {
	d := &ProductDetail{
		ID:                p.ID,
		Slug:              p.Slug,
		Name:              p.Name,
		Price:             p.Price,
		Currency:          p.Currency,
		MOQ:               p.MOQ,
		MOQUnit:           p.MOQUnit,
		Description:       p.Description,
		Specifications:    nonNilMap(p.Specifications),
		TradeShopping:     nonNilMap(p.TradeShopping),
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
		Seller:            Seller{ID: p.UserID},
		BusinessProfile:   NewBusinessProfile(profile),
		Images:            imageURLs(p.Images),
		RelatedProducts:   make([]RelatedProduct, 0, len(related)),
		RelatedCategories: categories,
	}
	if d.RelatedCategories == nil {
		d.RelatedCategories = []recommend.RelatedCategory{}
	}

	if p.Category != nil {
		d.Category = &TaxonomyRef{Name: p.Category.Name, Slug: p.Category.Slug, Icon: p.Category.Icon}
	}
	if p.SubCategory != nil {
		d.SubCategory = &TaxonomyRef{Name: p.SubCategory.Name, Slug: p.SubCategory.Slug, Icon: p.SubCategory.Icon}
	}
	if p.User != nil {
		d.Seller.Fullname = p.User.Fullname
		d.Seller.CompanyName = p.User.CompanyName
	}

	for _, rp := range related {
		d.RelatedProducts = append(d.RelatedProducts, NewRelatedProduct(rp))
	}
	return d
}

func NewBusinessProfile(bp *model.BusinessProfile) *BusinessProfile {
	if bp == nil {
		return nil
	}
	return &BusinessProfile{
		CompanyName:         bp.CompanyName,
		GSTNumber:           model.MaskIdentifier(bp.GSTNumber),
		PANNumber:           model.MaskIdentifier(bp.PANNumber),
		YearOfEstablishment: bp.YearOfEstablishment,
		BusinessType:        bp.BusinessType,
		City:                bp.City,
		State:               bp.State,
		Verified:            bp.Verified,
	}
}

func NewRelatedProduct(rp recommend.RelatedProduct) RelatedProduct {
	p := rp.Product
	out := RelatedProduct{
		ID:          p.ID,
		Slug:        p.Slug,
		Name:        p.Name,
		Price:       p.Price,
		Currency:    p.Currency,
		MOQ:         p.MOQ,
		MOQUnit:     p.MOQUnit,
		Category:    p.CategoryID,
		SubCategory: p.SubCategoryID,
		UserID:      p.UserID,
		Images:      imageURLs(p.Images),
	}
	if rp.Profile != nil {
		out.BusinessProfile = &RelatedBusinessProfile{
			GSTNumber:           model.MaskIdentifier(rp.Profile.GSTNumber),
			YearOfEstablishment: rp.Profile.YearOfEstablishment,
		}
	}
	return out
}

func NewProduct(p *model.Product) Product {
	return Product{
		ID:             p.ID,
		Slug:           p.Slug,
		Name:           p.Name,
		Price:          p.Price,
		Currency:       p.Currency,
		MOQ:            p.MOQ,
		MOQUnit:        p.MOQUnit,
		Description:    p.Description,
		Images:         imageURLs(p.Images),
		Category:       p.CategoryID,
		SubCategory:    p.SubCategoryID,
		UserID:         p.UserID,
		Specifications: nonNilMap(p.Specifications),
		TradeShopping:  nonNilMap(p.TradeShopping),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// imageURLs drops empty entries and never returns nil, so clients always see an array.
func imageURLs(images model.StringList) []string {
	out := make([]string, 0, len(images))
	for _, img := range images {
		if img != "" {
			out = append(out, img)
		}
	}
	return out
}

func nonNilMap(m model.JSONMap) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}

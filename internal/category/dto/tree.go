package dto

import "github.com/fekuna/marketplace-catalog-service/internal/model"

// CategoryNode is the public shape of a category and its subcategories.
type CategoryNode struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Slug          string            `json:"slug"`
	Icon          string            `json:"icon"`
	SubCategories []SubCategoryNode `json:"subCategories"`
}

type SubCategoryNode struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
	Icon string `json:"icon"`
}

func NewCategoryNode(c *model.Category) CategoryNode {
	node := CategoryNode{
		ID:            c.ID,
		Name:          c.Name,
		Slug:          c.Slug,
		Icon:          c.Icon,
		SubCategories: make([]SubCategoryNode, 0, len(c.SubCategories)),
	}
	for _, s := range c.SubCategories {
		node.SubCategories = append(node.SubCategories, NewSubCategoryNode(&s))
	}
	return node
}

func NewSubCategoryNode(s *model.SubCategory) SubCategoryNode {
	return SubCategoryNode{ID: s.ID, Name: s.Name, Slug: s.Slug, Icon: s.Icon}
}

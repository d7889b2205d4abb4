package handler

import (
	"net/http"

	"github.com/fekuna/marketplace-catalog-service/internal/apperror"
	"github.com/fekuna/marketplace-catalog-service/internal/auth"
	"github.com/fekuna/marketplace-catalog-service/internal/category"
	"github.com/fekuna/marketplace-catalog-service/internal/category/dto"
	"github.com/fekuna/marketplace-catalog-service/internal/logger"
	"github.com/fekuna/marketplace-catalog-service/internal/model"
	"github.com/labstack/echo/v4"
)

type CategoryHandler struct {
	uc     category.UseCase
	logger logger.ZapLogger
}

func NewCategoryHandler(uc category.UseCase, log logger.ZapLogger) *CategoryHandler {
	return &CategoryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *CategoryHandler) Register(g *echo.Group) {
	g.GET("/categories", h.ListCategories)

	admin := auth.RequireRole(model.RoleAdmin)
	g.POST("/categories", h.CreateCategory, admin)
	g.PUT("/categories/:categoryId", h.UpdateCategory, admin)
	g.DELETE("/categories/:categoryId", h.DeleteCategory, admin)
	g.POST("/categories/:categoryId/subcategories", h.CreateSubCategory, admin)
	g.DELETE("/subcategories/:subCategoryId", h.DeleteSubCategory, admin)
}

func (h *CategoryHandler) ListCategories(c echo.Context) error {
	tree, err := h.uc.ListCategoryTree(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tree)
}

func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var input dto.CreateCategoryInput
	if err := bindAndValidate(c, &input); err != nil {
		return err
	}
	cat, err := h.uc.CreateCategory(c.Request().Context(), &input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dto.NewCategoryNode(cat))
}

func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	var input dto.UpdateCategoryInput
	if err := bindAndValidate(c, &input); err != nil {
		return err
	}
	input.ID = c.Param("categoryId")

	cat, err := h.uc.UpdateCategory(c.Request().Context(), &input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.NewCategoryNode(cat))
}

func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	if err := h.uc.DeleteCategory(c.Request().Context(), c.Param("categoryId")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CategoryHandler) CreateSubCategory(c echo.Context) error {
	var input dto.CreateSubCategoryInput
	if err := bindAndValidate(c, &input); err != nil {
		return err
	}
	input.CategoryID = c.Param("categoryId")

	sub, err := h.uc.CreateSubCategory(c.Request().Context(), &input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dto.NewSubCategoryNode(sub))
}

func (h *CategoryHandler) DeleteSubCategory(c echo.Context) error {
	if err := h.uc.DeleteSubCategory(c.Request().Context(), c.Param("subCategoryId")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func bindAndValidate(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return apperror.Validation("malformed request body")
	}
	return c.Validate(dst)
}

package handler

import (
	"net/http"
	"strconv"

	"github.com/fekuna/marketplace-catalog-service/internal/apperror"
	"github.com/fekuna/marketplace-catalog-service/internal/auth"
	"github.com/fekuna/marketplace-catalog-service/internal/logger"
	"github.com/fekuna/marketplace-catalog-service/internal/model"
	"github.com/fekuna/marketplace-catalog-service/internal/product"
	"github.com/fekuna/marketplace-catalog-service/internal/product/dto"
	"github.com/fekuna/marketplace-catalog-service/internal/product/view"
	"github.com/labstack/echo/v4"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type ProductHandler struct {
	uc     product.UseCase
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ProductHandler) Register(g *echo.Group) {
	g.GET("/products", h.ListProducts)
	g.GET("/products/:productId", h.GetProductDetail)

	writers := auth.RequireRole(model.RoleSeller, model.RoleAdmin)
	g.POST("/products", h.CreateProduct, writers)
	g.PUT("/products/:productId", h.UpdateProduct, writers)
	g.DELETE("/products/:productId", h.DeleteProduct, writers)
}

func (h *ProductHandler) GetProductDetail(c echo.Context) error {
	id := c.Param("productId")
	if id == "" {
		return apperror.Validation("productId is required")
	}

	detail, err := h.uc.GetProductDetail(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detail)
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	page, err := intQuery(c, "page", 1)
	if err != nil {
		return err
	}
	pageSize, err := intQuery(c, "pageSize", defaultPageSize)
	if err != nil {
		return err
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > maxPageSize {
		return apperror.Validation("pageSize must be between 1 and 100")
	}

	filters := &dto.ProductFilters{
		CategoryID:    c.QueryParam("category"),
		SubCategoryID: c.QueryParam("subCategory"),
		UserID:        c.QueryParam("seller"),
		Page:          page,
		PageSize:      pageSize,
	}

	products, total, err := h.uc.ListProducts(c.Request().Context(), filters)
	if err != nil {
		return err
	}

	out := view.ProductList{
		Products: make([]view.Product, 0, len(products)),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
	for i := range products {
		out.Products = append(out.Products, view.NewProduct(&products[i]))
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var input dto.CreateProductInput
	if err := bindAndValidate(c, &input); err != nil {
		return err
	}
	u, _ := auth.FromContext(c.Request().Context())
	input.UserID = u.UserID

	p, err := h.uc.CreateProduct(c.Request().Context(), &input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, view.NewProduct(p))
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	var input dto.UpdateProductInput
	if err := bindAndValidate(c, &input); err != nil {
		return err
	}
	u, _ := auth.FromContext(c.Request().Context())
	input.ID = c.Param("productId")
	input.UserID = u.UserID
	input.Role = u.Role

	p, err := h.uc.UpdateProduct(c.Request().Context(), &input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view.NewProduct(p))
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	u, _ := auth.FromContext(c.Request().Context())
	input := &dto.DeleteProductInput{
		ID:     c.Param("productId"),
		UserID: u.UserID,
		Role:   u.Role,
	}
	if err := h.uc.DeleteProduct(c.Request().Context(), input); err != nil {
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

func intQuery(c echo.Context, name string, fallback int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.Validation(name + " must be an integer")
	}
	return n, nil
}

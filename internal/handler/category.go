package handler

import (
	"net/http"

	"github.com/thiagofalasca/finance-api/internal/service"

	"github.com/gin-gonic/gin"
)

// CategoryHandler exposes the category service over HTTP. The admin flag
// per route decides whether the explicit owner filter/body field is
// honored.
type CategoryHandler struct {
	categories *service.CategoryService
}

func NewCategoryHandler(categories *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// List handles GET /categories and GET /admins/categories.
func (h *CategoryHandler) List(admin bool) gin.HandlerFunc {
	return Dispatch(http.StatusOK, func(c *gin.Context) (interface{}, error) {
		return h.categories.List(service.CategoryFilter{
			Page:    service.Page{Page: formInt(c, "page"), Limit: formInt(c, "limit")},
			ID:      formUint(c, "id"),
			Name:    formString(c, "name"),
			OwnerID: formUint(c, "user_id"),
		}, caller(c).UserID, admin)
	})
}

// Create handles POST /categories and POST /admins/categories.
func (h *CategoryHandler) Create(admin bool) gin.HandlerFunc {
	return Dispatch(http.StatusCreated, func(c *gin.Context) (interface{}, error) {
		return h.categories.Create(
			formString(c, "name"),
			formUint(c, "user_id"),
			caller(c).UserID,
			admin,
		)
	})
}

// Update handles PUT /categories/:id and the admin variant.
func (h *CategoryHandler) Update(admin bool) gin.HandlerFunc {
	return Dispatch(http.StatusOK, func(c *gin.Context) (interface{}, error) {
		return h.categories.Update(
			formUint(c, "id"),
			formString(c, "name"),
			caller(c).UserID,
			admin,
		)
	})
}

// Delete handles DELETE /categories/:id and the admin variant.
func (h *CategoryHandler) Delete(admin bool) gin.HandlerFunc {
	return Dispatch(http.StatusOK, func(c *gin.Context) (interface{}, error) {
		return h.categories.Delete(formUint(c, "id"), caller(c).UserID, admin)
	})
}

package handler

import (
	"net/http"

	"github.com/thiagofalasca/finance-api/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler exposes the user service over HTTP.
type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// targetUserID resolves whose record an operation addresses: the path id
// on admin routes, else the caller.
func targetUserID(c *gin.Context, admin bool) uint {
	if admin {
		return formUint(c, "id")
	}
	return caller(c).UserID
}

// List handles GET /users (admin only).
func (h *UserHandler) List() gin.HandlerFunc {
	return Dispatch(http.StatusOK, func(c *gin.Context) (interface{}, error) {
		return h.users.List(service.UserFilter{
			Page:  service.Page{Page: formInt(c, "page"), Limit: formInt(c, "limit")},
			ID:    formUint(c, "id"),
			Name:  formString(c, "name"),
			Email: formString(c, "email"),
		})
	})
}

// Register handles POST /users/register and the admin-issued variant.
func (h *UserHandler) Register(asAdmin bool) gin.HandlerFunc {
	return Dispatch(http.StatusCreated, func(c *gin.Context) (interface{}, error) {
		return h.users.Register(service.RegisterInput{
			Name:     formString(c, "name"),
			Email:    formString(c, "email"),
			Password: formString(c, "password"),
		}, asAdmin)
	})
}

// Me handles GET /users/me.
func (h *UserHandler) Me() gin.HandlerFunc {
	return Dispatch(http.StatusOK, func(c *gin.Context) (interface{}, error) {
		return h.users.FindByID(caller(c).UserID)
	})
}

// Get handles GET /users/admins/:id.
func (h *UserHandler) Get() gin.HandlerFunc {
	return Dispatch(http.StatusOK, func(c *gin.Context) (interface{}, error) {
		return h.users.FindByID(formUint(c, "id"))
	})
}

// Update handles PUT /users/me and PUT /users/admins/:id.
func (h *UserHandler) Update(admin bool) gin.HandlerFunc {
	return Dispatch(http.StatusOK, func(c *gin.Context) (interface{}, error) {
		return h.users.Update(targetUserID(c, admin), service.UpdateUserInput{
			Name:     optString(c, "name"),
			Email:    optString(c, "email"),
			Password: optString(c, "password"),
		})
	})
}

// Delete handles DELETE /users/admins/:id.
func (h *UserHandler) Delete() gin.HandlerFunc {
	return Dispatch(http.StatusOK, func(c *gin.Context) (interface{}, error) {
		return h.users.Delete(formUint(c, "id"))
	})
}

// Login handles POST /users/login.
func (h *UserHandler) Login() gin.HandlerFunc {
	return Dispatch(http.StatusOK, func(c *gin.Context) (interface{}, error) {
		return h.users.Login(formString(c, "email"), formString(c, "password"))
	})
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/danuartha/go-commerce-ddd/internal/application"
	"github.com/danuartha/go-commerce-ddd/internal/domain/entity"
	"github.com/danuartha/go-commerce-ddd/pkg/response"
	"github.com/danuartha/go-commerce-ddd/pkg/validation"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type createUserRequest struct {
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

type updateUserRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

func userPayload(u *entity.User) gin.H {
	return gin.H{
		"id":         u.ID,
		"email":      u.Email,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"created_at": u.CreatedAt,
		"updated_at": u.UpdatedAt,
	}
}

func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.CreateUser(c.Request.Context(), req.Email, req.FirstName, req.LastName)
	if err != nil {
		h.Logger.WithError(err).WithField("email", req.Email).Warn("create user failed")
		response.Error[any](c, statusFromErr(err), "failed to create user", err.Error())
		return
	}
	response.Success(c, http.StatusCreated, userPayload(u), "user created", nil)
}

func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.Svc.GetUser(c.Request.Context(), entity.UserID(c.Param("id")))
	if err != nil {
		response.Error[any](c, statusFromErr(err), "user not found", nil)
		return
	}
	response.Success(c, http.StatusOK, userPayload(u), "user", nil)
}

func (h *UserHandler) Update(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.UpdateUser(c.Request.Context(), entity.UserID(c.Param("id")), req.FirstName, req.LastName)
	if err != nil {
		response.Error[any](c, statusFromErr(err), "failed to update user", err.Error())
		return
	}
	response.Success(c, http.StatusOK, userPayload(u), "user updated", nil)
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.Svc.DeleteUser(c.Request.Context(), entity.UserID(c.Param("id"))); err != nil {
		response.Error[any](c, statusFromErr(err), "failed to delete user", err.Error())
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "user deleted", nil)
}

// List returns one page of users; page is zero-indexed.
func (h *UserHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	users, total, err := h.Svc.GetAllUsers(c.Request.Context(), page, size)
	if err != nil {
		response.Error[any](c, statusFromErr(err), "failed to list users", nil)
		return
	}
	payload := make([]gin.H, 0, len(users))
	for i := range users {
		payload = append(payload, userPayload(&users[i]))
	}
	response.Success(c, http.StatusOK, payload, "users", gin.H{"page": page, "size": size, "total": total})
}

func (h *UserHandler) Search(c *gin.Context) {
	q := c.Query("q")
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.SearchUsers(c.Request.Context(), q, size)
	if err != nil {
		response.Error[any](c, http.StatusBadGateway, "search unavailable", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", gin.H{"count": len(hits)})
}

package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"juniorpass/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/register", h.Register)
	rg.POST("/auth/login", h.Login)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/logout", h.Logout)
	rg.GET("/me/children", h.ListChildren)
	rg.POST("/me/children", h.AddChild)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	u, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, response.CodeValidation, err.Error())
		case errors.Is(err, ErrEmailTaken):
			response.Error(c, http.StatusConflict, response.CodeEmailTaken, "Email already registered")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to register")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"user": gin.H{"id": u.ID, "email": u.Email, "name": u.Name, "role": u.Role},
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	token, u, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Invalid email or password")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to log in")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"token": token,
		"user":  gin.H{"id": u.ID, "email": u.Email, "name": u.Name, "role": u.Role, "credit": u.Credit},
	})
}

func (h *Handler) Logout(c *gin.Context) {
	raw := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if raw == "" {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Missing token")
		return
	}

	if err := h.service.Logout(c.Request.Context(), raw); err != nil {
		if errors.Is(err, ErrInvalidToken) {
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Invalid token")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to log out")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *Handler) AddChild(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req AddChildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	child, err := h.service.AddChild(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, response.CodeValidation, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to add child")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"child": child})
}

func (h *Handler) ListChildren(c *gin.Context) {
	userID := c.GetInt64("user_id")

	children, err := h.service.ListChildren(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to list children")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"children": children})
}

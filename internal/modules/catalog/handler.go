package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"juniorpass/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/listings", h.ListListings)
	rg.GET("/listings/:id", h.GetListing)
	rg.GET("/partners/:id", h.GetPartner)
}

func (h *Handler) ListListings(c *gin.Context) {
	limit := 20
	if s := c.Query("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 && v <= 100 {
			limit = v
		}
	}
	offset := 0
	if s := c.Query("offset"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 0 {
			offset = v
		}
	}

	listings, err := h.service.ListActive(c.Request.Context(), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to list listings")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"listings": listings})
}

func (h *Handler) GetListing(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid listing ID")
		return
	}

	listing, err := h.service.GetListing(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Listing not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to get listing")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"listing": listing})
}

func (h *Handler) GetPartner(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid partner ID")
		return
	}

	partner, err := h.service.GetPartner(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Partner not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to get partner")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"partner": partner})
}

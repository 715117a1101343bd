package wallet

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"juniorpass/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	wallets := rg.Group("/wallet")
	{
		wallets.GET("/me", h.GetMyBalance)
		wallets.GET("/me/transactions", h.ListMyTransactions)
	}
}

func (h *Handler) GetMyBalance(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "User not authenticated")
		return
	}

	balance, err := h.service.BalanceOf(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to get balance")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"credit": balance})
}

func (h *Handler) ListMyTransactions(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "User not authenticated")
		return
	}

	limit := 20
	if s := c.Query("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			limit = v
			if limit > 100 {
				limit = 100
			}
		}
	}
	offset := 0
	if s := c.Query("offset"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 0 {
			offset = v
		}
	}

	txns, err := h.service.Ledger(c.Request.Context(), userID, limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to list transactions")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"transactions": txns})
}

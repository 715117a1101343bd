package payment

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"juniorpass/internal/pkg/response"
)

type Handler struct {
	service *Service
	loggerf func(format string, args ...interface{})
}

func NewHandler(service *Service, loggerf func(format string, args ...interface{})) *Handler {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Handler{service: service, loggerf: loggerf}
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/payment/init", h.InitTopUp)
	rg.GET("/payment/status/:reference", h.GetStatus)
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/payment/webhook", h.Webhook)
}

// InitTopUp godoc
// @Summary      Start a wallet top-up
// @Description  Creates a gateway payment request and returns the checkout URL
// @Tags         Payments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body body InitTopUpRequest true "Top-up payload"
// @Success      200 {object} InitTopUpResponse
// @Failure      400 {object} map[string]interface{}
// @Failure      502 {object} map[string]interface{}
// @Router       /payment/init [post]
func (h *Handler) InitTopUp(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "User not authenticated")
		return
	}

	var req InitTopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	resp, err := h.service.InitTopUp(c.Request.Context(), userID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidAmount):
			response.Error(c, http.StatusBadRequest, response.CodeValidation, err.Error())
		case errors.Is(err, ErrUserNotFound):
			response.Error(c, http.StatusNotFound, response.CodeNotFound, err.Error())
		case errors.Is(err, ErrGateway):
			response.Error(c, http.StatusBadGateway, response.CodeGateway, "Payment gateway is unavailable")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to initiate top-up")
		}
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// Webhook godoc
// @Summary      HitPay webhook sink
// @Description  Applies a gateway payment status update (idempotent)
// @Tags         Payments
// @Accept       x-www-form-urlencoded
// @Produce      plain
// @Success      200 {string} string "OK"
// @Failure      403 {string} string "forbidden"
// @Failure      500 {string} string "internal error"
// @Router       /payment/webhook [post]
func (h *Handler) Webhook(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		c.String(http.StatusBadRequest, "bad request")
		return
	}

	fields := make(map[string]string, len(c.Request.PostForm))
	var signature string
	for k, v := range c.Request.PostForm {
		if len(v) == 0 {
			continue
		}
		if strings.EqualFold(k, "hmac") {
			signature = v[0]
			continue
		}
		fields[k] = v[0]
	}

	ev := WebhookEvent{
		PaymentID:       fields["payment_id"],
		ReferenceNumber: fields["reference_number"],
		Status:          fields["status"],
		Signature:       signature,
		Fields:          fields,
	}

	changed, err := h.service.HandleWebhook(c.Request.Context(), ev)
	if err != nil {
		h.loggerf("level=error msg=webhook handling failed reference=%s err=%v", ev.ReferenceNumber, err)
		switch {
		case errors.Is(err, ErrInvalidSignature):
			c.String(http.StatusForbidden, "forbidden")
		case errors.Is(err, ErrRequestNotFound):
			c.String(http.StatusNotFound, "unknown reference")
		default:
			// 5xx tells the gateway to retry; the PENDING guard makes the
			// retry safe.
			c.String(http.StatusInternalServerError, "internal error")
		}
		return
	}

	h.loggerf("level=info msg=webhook acknowledged reference=%s changed=%t", ev.ReferenceNumber, changed)
	c.String(http.StatusOK, "OK")
}

// GetStatus godoc
// @Summary      Poll a top-up's status
// @Tags         Payments
// @Security     BearerAuth
// @Produce      json
// @Param        reference path string true "Reference number"
// @Success      200 {object} StatusResponse
// @Failure      404 {object} map[string]interface{}
// @Router       /payment/status/{reference} [get]
func (h *Handler) GetStatus(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "User not authenticated")
		return
	}

	reference := strings.TrimSpace(c.Param("reference"))
	if reference == "" {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Missing reference number")
		return
	}

	status, err := h.service.GetStatus(c.Request.Context(), userID, reference)
	if err != nil {
		if errors.Is(err, ErrRequestNotFound) {
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Payment request not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to get payment status")
		return
	}

	response.Success(c, http.StatusOK, status)
}

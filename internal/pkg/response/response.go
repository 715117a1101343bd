package response

import "github.com/gin-gonic/gin"

// Error codes shared across handlers.
const (
	CodeValidation          = "VALIDATION_ERROR"
	CodeNotFound            = "NOT_FOUND"
	CodeBookingConflict     = "BOOKING_CONFLICT"
	CodeEmailTaken          = "EMAIL_TAKEN"
	CodeInsufficientCredits = "INSUFFICIENT_CREDITS"
	CodeGateway             = "GATEWAY_ERROR"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeInternal            = "INTERNAL_ERROR"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"marketpos/internal/service"
	"marketpos/pkg/response"
)

// statusFor maps the service error taxonomy onto HTTP status codes.
// Unknown errors are treated as internal.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrProductUnknown),
		errors.Is(err, service.ErrSupplierNotFound),
		errors.Is(err, service.ErrInvoiceNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidPayment),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrEmptyItems):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func abortWith(c *gin.Context, err error) {
	code := statusFor(err)
	c.JSON(code, response.Error(code, err.Error()))
}

func currentUserID(c *gin.Context) string {
	userID, _ := c.Get("userID")
	s, _ := userID.(string)
	return s
}

package handlers

import (
	"errors"
	"net/http"

	"energy-sizing/internal/api/models"
	"energy-sizing/internal/model"

	"github.com/gin-gonic/gin"
)

const (
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeInvalidInput   = "INVALID_INPUT"
	CodeNotFound       = "NOT_FOUND"
	CodeInternal       = "INTERNAL_ERROR"
)

func respondError(c *gin.Context, status int, code, message string, details map[string]interface{}) {
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// respondCalcError maps a calculator error to a response. Validation
// failures are the caller's fault and name the offending field.
func respondCalcError(c *gin.Context, err error) {
	var ie *model.InputError
	if errors.As(err, &ie) {
		respondError(c, http.StatusBadRequest, CodeInvalidInput, err.Error(), map[string]interface{}{
			"field":  ie.Field,
			"reason": ie.Reason,
		})
		return
	}
	if errors.Is(err, model.ErrInvalidInput) {
		respondError(c, http.StatusBadRequest, CodeInvalidInput, err.Error(), nil)
		return
	}
	_ = c.Error(err)
	respondError(c, http.StatusInternalServerError, CodeInternal, "An unexpected error occurred", nil)
}

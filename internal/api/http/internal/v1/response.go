package v1

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/stroy1click/confirmation-service/internal/domain"
	"github.com/stroy1click/confirmation-service/internal/service"
	"github.com/stroy1click/confirmation-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const acceptLanguageHeader = "Accept-Language"

// Problem is the structured error payload every failed request gets.
type Problem struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Status int    `json:"status"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (h *Handler) messageResponse(c *gin.Context, messageKey string) {
	lang := c.GetHeader(acceptLanguageHeader)

	c.JSON(http.StatusOK, messageResponse{
		Message: h.translator.Message(lang, messageKey),
	})
}

// errorResponse maps a service error onto the closed taxonomy: 404 for
// missing user/code, 400 for business-rule violations, 503 for unreachable
// downstream dependencies, 500 otherwise.
func (h *Handler) errorResponse(c *gin.Context, err error) {
	var (
		status    int
		titleKey  string
		detailKey string
	)

	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		status, titleKey, detailKey = http.StatusNotFound, "error.title.not_found", "error.user.not_found"
	case errors.Is(err, service.ErrCodeNotFound):
		status, titleKey, detailKey = http.StatusNotFound, "error.title.not_found", "error.confirmation_code.not_found"
	case errors.Is(err, service.ErrCodeAlreadySent):
		status, titleKey, detailKey = http.StatusBadRequest, "error.title.validation", "error.confirmation_code.already_sent"
	case errors.Is(err, service.ErrRecreateWithoutCode):
		status, titleKey, detailKey = http.StatusBadRequest, "error.title.validation", "error.confirmation_code.recreate_failed"
	case errors.Is(err, service.ErrCodeNotValid):
		status, titleKey, detailKey = http.StatusBadRequest, "error.title.validation", "error.confirmation_code.not_valid"
	case errors.Is(err, service.ErrEmailAlreadyConfirmed):
		status, titleKey, detailKey = http.StatusBadRequest, "error.title.validation", "error.email.already_confirmed"
	case errors.Is(err, service.ErrPasswordMismatch):
		status, titleKey, detailKey = http.StatusBadRequest, "error.title.validation", "error.password.not_match"
	case errors.Is(err, domain.ErrServiceUnavailable):
		status, titleKey, detailKey = http.StatusServiceUnavailable, "error.title.service_unavailable", "error.description.service_unavailable"
	default:
		logger.Error("unhandled service error", zap.Error(err))
		status, titleKey, detailKey = http.StatusInternalServerError, "error.title.internal", "error.description.internal"
	}

	lang := c.GetHeader(acceptLanguageHeader)

	c.AbortWithStatusJSON(status, Problem{
		Title:  h.translator.Message(lang, titleKey),
		Detail: h.translator.Message(lang, detailKey),
		Status: status,
	})
}

func (h *Handler) validationErrorResponse(c *gin.Context, err error) {
	lang := c.GetHeader(acceptLanguageHeader)
	detail := "invalid request body"

	var verr validator.ValidationErrors
	if errors.As(err, &verr) {
		fields := make([]string, len(verr))
		for i, ferr := range verr {
			fields[i] = ferr.Field() + ": " + msgForTag(ferr.Tag(), ferr.Param())
		}
		detail = strings.Join(fields, "; ")
	}

	c.AbortWithStatusJSON(http.StatusBadRequest, Problem{
		Title:  h.translator.Message(lang, "error.title.validation"),
		Detail: detail,
		Status: http.StatusBadRequest,
	})
}

func msgForTag(tag string, value string) string {
	switch tag {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return fmt.Sprintf("must be one of: %v", value)
	case "min":
		return fmt.Sprintf("must be at least %v", value)
	case "max":
		return fmt.Sprintf("must be at most %v", value)
	}
	return tag
}

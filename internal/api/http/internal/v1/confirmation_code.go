package v1

import (
	"github.com/stroy1click/confirmation-service/internal/domain"
	"github.com/stroy1click/confirmation-service/internal/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) initConfirmationCodeRoutes(api *gin.RouterGroup) {
	codes := api.Group("/confirmation-codes")

	codes.POST("", h.createConfirmationCode)
	codes.POST("/regeneration", h.recreateConfirmationCode)
	codes.POST("/email/verify", h.verifyEmail)
	codes.POST("/password-reset", h.updatePassword)
}

type createConfirmationCodeRequest struct {
	Type  string `json:"type" binding:"required,oneof=EMAIL PASSWORD"`
	Email string `json:"email" binding:"required,email,min=8,max=50"`
}

func (h *Handler) createConfirmationCode(c *gin.Context) {
	var req createConfirmationCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.validationErrorResponse(c, err)
		return
	}

	if err := h.services.ConfirmationCodes.Create(c.Request.Context(), domain.Purpose(req.Type), req.Email); err != nil {
		h.errorResponse(c, err)
		return
	}

	h.messageResponse(c, "info.confirmation_code.sent")
}

func (h *Handler) recreateConfirmationCode(c *gin.Context) {
	var req createConfirmationCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.validationErrorResponse(c, err)
		return
	}

	if err := h.services.ConfirmationCodes.Recreate(c.Request.Context(), domain.Purpose(req.Type), req.Email); err != nil {
		h.errorResponse(c, err)
		return
	}

	h.messageResponse(c, "info.confirmation_code.sent")
}

type codeVerificationRequest struct {
	Email string `json:"email" binding:"required,email,min=8,max=50"`
	Code  int    `json:"code" binding:"required,min=1000000,max=9999999"`
}

func (h *Handler) verifyEmail(c *gin.Context) {
	var req codeVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.validationErrorResponse(c, err)
		return
	}

	if err := h.services.ConfirmationCodes.VerifyEmail(c.Request.Context(), req.Email, req.Code); err != nil {
		h.errorResponse(c, err)
		return
	}

	h.messageResponse(c, "info.confirmation_code.email.confirmed")
}

type updatePasswordRequest struct {
	NewPassword             string                  `json:"newPassword" binding:"required,min=8,max=60"`
	ConfirmPassword         string                  `json:"confirmPassword" binding:"required,min=8,max=60"`
	CodeVerificationRequest codeVerificationRequest `json:"codeVerificationRequest" binding:"required"`
}

func (h *Handler) updatePassword(c *gin.Context) {
	var req updatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.validationErrorResponse(c, err)
		return
	}

	input := service.UpdatePasswordInput{
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
		Email:           req.CodeVerificationRequest.Email,
		Code:            req.CodeVerificationRequest.Code,
	}

	if err := h.services.ConfirmationCodes.UpdatePassword(c.Request.Context(), input); err != nil {
		h.errorResponse(c, err)
		return
	}

	h.messageResponse(c, "info.password.successfully_updated")
}

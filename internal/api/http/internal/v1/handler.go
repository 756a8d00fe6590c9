package v1

import (
	"github.com/stroy1click/confirmation-service/internal/service"
	"github.com/stroy1click/confirmation-service/pkg/i18nx"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	services   *service.Services
	translator *i18nx.Translator
}

func NewHandler(services *service.Services, translator *i18nx.Translator) *Handler {
	return &Handler{
		services:   services,
		translator: translator,
	}
}

func (h *Handler) Init(api *gin.RouterGroup) {
	v1 := api.Group("v1")

	h.initConfirmationCodeRoutes(v1)
}

package apiHttp

import (
	"context"
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"

	"github.com/stroy1click/confirmation-service/pkg/i18nx"
	"github.com/stroy1click/confirmation-service/pkg/limiter"
	"github.com/stroy1click/confirmation-service/pkg/logger"
	"github.com/stroy1click/confirmation-service/pkg/validator"

	internalV1 "github.com/stroy1click/confirmation-service/internal/api/http/internal/v1"
	"github.com/stroy1click/confirmation-service/internal/config"
	"github.com/stroy1click/confirmation-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	services   *service.Services
	translator *i18nx.Translator
	config     *config.Config
	db         *sqlx.DB
	redis      redis.UniversalClient
}

func NewHandlers(
	services *service.Services,
	translator *i18nx.Translator,
	cfg *config.Config,
	db *sqlx.DB,
	redis redis.UniversalClient,
) *Handler {
	return &Handler{
		services:   services,
		translator: translator,
		config:     cfg,
		db:         db,
		redis:      redis,
	}
}

func (h *Handler) Init(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	validator.RegisterGinValidator()

	router.Use(
		ginzap.Ginzap(logger.Logger(), time.RFC3339, true),
		limiter.Limit(cfg.Limiter.RPS, cfg.Limiter.Burst, cfg.Limiter.TTL, h.translator),
		corsMiddleware,
	)
	router.Use(ginzap.RecoveryWithZap(logger.Logger(), true))

	router.GET("/health", h.health)

	h.initAPI(router)

	return router
}

func (h *Handler) initAPI(router *gin.Engine) {
	internalHandlersV1 := internalV1.NewHandler(h.services, h.translator)
	api := router.Group("/api")
	internalHandlersV1.Init(api)
}

const healthCheckTimeout = 2 * time.Second

func (h *Handler) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down", "database": err.Error()})
		return
	}

	if err := h.redis.Ping(ctx).Err(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down", "redis": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "up"})
}

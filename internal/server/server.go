package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/shopmeter/internal/config"
	projectdomain "github.com/smallbiznis/shopmeter/internal/project/domain"
	"github.com/smallbiznis/shopmeter/internal/ratelimit"
	shopdomain "github.com/smallbiznis/shopmeter/internal/shop/domain"
	"github.com/smallbiznis/shopmeter/internal/shopify"
	webhookdomain "github.com/smallbiznis/shopmeter/internal/webhook/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(*Server) {}),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, log *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine     *gin.Engine
	cfg        config.Config
	log        *zap.Logger
	webhookSvc webhookdomain.Service
	shopSvc    shopdomain.Service
	projectSvc projectdomain.Service
	shopifyAPI *shopify.Client
	limiter    *ratelimit.WebhookLimiter
}

type ServerParams struct {
	fx.In

	Gin        *gin.Engine
	Cfg        config.Config
	Log        *zap.Logger
	WebhookSvc webhookdomain.Service
	ShopSvc    shopdomain.Service
	ProjectSvc projectdomain.Service
	ShopifyAPI *shopify.Client
	Limiter    *ratelimit.WebhookLimiter `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:     p.Gin,
		cfg:        p.Cfg,
		log:        p.Log.Named("http.server"),
		webhookSvc: p.WebhookSvc,
		shopSvc:    p.ShopSvc,
		projectSvc: p.ProjectSvc,
		shopifyAPI: p.ShopifyAPI,
		limiter:    p.Limiter,
	}

	svc.registerWebhookRoutes()
	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerWebhookRoutes() {
	webhooks := s.engine.Group("/webhook", s.WebhookRateLimit())

	webhooks.POST("/orders/create", s.HandleOrderWebhook(webhookdomain.TopicOrdersCreate))
	webhooks.POST("/orders/paid", s.HandleOrderWebhook(webhookdomain.TopicOrdersPaid))
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	api.POST("/shops", s.InstallShop)

	api.GET("/projects/:id", s.GetProjectByID)
	api.POST("/projects/:id", s.UpdateProject)
}

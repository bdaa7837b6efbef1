// Package router provides HTTP routing, middleware configuration, and server setup for the web application
package router

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/artemmak/showreel/app/dto"
	"github.com/artemmak/showreel/app/handlers"
	"github.com/artemmak/showreel/app/middleware"
	"github.com/artemmak/showreel/config"
	"github.com/artemmak/showreel/utils"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/compress"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const healthPath = "/api/v1/health"

// Router interface for HTTP routing
type Router interface {
	SetupRoutes()
	Start(address string) error
	GetApp() *fiber.App
}

// Handlers groups every HTTP handler the router mounts
type Handlers struct {
	Pricing             handlers.PricingHandlerInterface
	PricingAdmin        handlers.PricingAdminHandlerInterface
	ProjectRequest      handlers.ProjectRequestHandlerInterface
	ProjectRequestAdmin handlers.ProjectRequestAdminHandlerInterface
	SiteContent         handlers.SiteContentHandlerInterface
	SiteContentAdmin    handlers.SiteContentAdminHandlerInterface
	Portfolio           handlers.PortfolioHandlerInterface
	PortfolioAdmin      handlers.PortfolioAdminHandlerInterface
	Showcase            handlers.ShowcaseHandlerInterface
	ShowcaseAdmin       handlers.ShowcaseAdminHandlerInterface
	AdminAuth           handlers.AdminAuthHandlerInterface
}

// FiberRouter implements Router using Fiber v3
type FiberRouter struct {
	app            *fiber.App
	cfg            *config.ProductionConfig
	handlers       Handlers
	authMiddleware *middleware.AuthMiddleware
}

// NewFiberRouter creates a new Fiber router
func NewFiberRouter(cfg *config.ProductionConfig, h Handlers, authMiddleware *middleware.AuthMiddleware) Router {
	app := fiber.New(fiber.Config{
		AppName:      "Showreel API",
		ServerHeader: "Showreel",
		ErrorHandler: errorHandler,
		BodyLimit:    cfg.Server.BodyLimit,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ProxyHeader:  cfg.Server.ProxyHeader,
		TrustProxy:   len(cfg.Server.TrustedProxies) > 0,
		TrustProxyConfig: fiber.TrustProxyConfig{
			Proxies: cfg.Server.TrustedProxies,
		},
	})

	return &FiberRouter{
		app:            app,
		cfg:            cfg,
		handlers:       h,
		authMiddleware: authMiddleware,
	}
}

// SetupRoutes configures all application routes
func (r *FiberRouter) SetupRoutes() {
	slog.Info("Setting up routes")

	r.setupMiddleware()

	if r.cfg.Metrics.Enabled {
		r.app.Get(r.cfg.Metrics.Path, adaptor.HTTPHandler(promhttp.Handler()))
	}

	api := r.app.Group("/api/v1")
	api.Get("/health", r.healthCheck)

	api.Use(r.rateLimiter(r.cfg.Security.GlobalRateLimit, func(c fiber.Ctx) bool {
		return c.Path() == healthPath
	}))

	// Public site
	api.Get("/pricing/options", r.handlers.Pricing.Options)
	api.Post("/pricing/estimate", r.handlers.Pricing.Estimate)
	api.Get("/content", r.handlers.SiteContent.List)
	api.Get("/content/:key", r.handlers.SiteContent.Get)
	api.Get("/projects", r.handlers.Portfolio.List)
	api.Get("/projects/:slug", r.handlers.Portfolio.Get)
	api.Get("/showcase", r.handlers.Showcase.Get)

	// Request submissions relay to Telegram, so they get a stricter limit
	requests := api.Group("/requests")
	requests.Use(r.rateLimiter(r.cfg.Security.SubmitRateLimit, nil))
	requests.Post("/contact", r.handlers.ProjectRequest.SubmitContact)
	requests.Post("/calculator", r.handlers.ProjectRequest.SubmitCalculator)

	// Admin
	adminAuth := api.Group("/admin/auth")
	adminAuth.Use(r.rateLimiter(r.cfg.Security.SubmitRateLimit, nil))
	adminAuth.Post("/refresh", r.handlers.AdminAuth.Refresh)

	admin := api.Group("/admin", r.authMiddleware.AdminAuthenticate())
	admin.Get("/pricing-settings", r.handlers.PricingAdmin.GetSettings)
	admin.Put("/pricing-settings", r.handlers.PricingAdmin.UpdateSettings)
	admin.Get("/requests", r.handlers.ProjectRequestAdmin.List)
	admin.Get("/requests/export", r.handlers.ProjectRequestAdmin.Export)
	admin.Patch("/requests/:uuid/status", r.handlers.ProjectRequestAdmin.UpdateStatus)
	admin.Put("/content/:key", r.handlers.SiteContentAdmin.Upsert)
	admin.Get("/projects", r.handlers.PortfolioAdmin.List)
	admin.Get("/projects/:slug", r.handlers.PortfolioAdmin.Get)
	admin.Put("/projects/:slug", r.handlers.PortfolioAdmin.Upsert)
	admin.Delete("/projects/:slug", r.handlers.PortfolioAdmin.Delete)
	admin.Get("/showcase", r.handlers.ShowcaseAdmin.Get)
	admin.Put("/showcase/hero-stats", r.handlers.ShowcaseAdmin.UpsertHeroStat)
	admin.Put("/showcase/social-links", r.handlers.ShowcaseAdmin.UpsertSocialLink)
	admin.Put("/showcase/ai-tools", r.handlers.ShowcaseAdmin.UpsertAITool)
	admin.Delete("/showcase/:kind/:id", r.handlers.ShowcaseAdmin.Delete)

	r.app.Use(r.notFoundHandler)

	slog.Info("Routes configured successfully")
}

func (r *FiberRouter) rateLimiter(max int, next func(c fiber.Ctx) bool) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: r.cfg.Security.RateLimitWindow,
		KeyGenerator: func(c fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.APIResponse{
				Success: false,
				Message: "Too many requests. Please try again later.",
				Error: dto.ErrorDetail{
					Code: "RATE_LIMIT_EXCEEDED",
				},
			})
		},
		Next: next,
	})
}

func (r *FiberRouter) setupMiddleware() {
	// Request ID middleware - must be first
	r.app.Use(requestid.New(requestid.Config{
		Header:    "X-Request-ID",
		Generator: generateRequestID,
	}))

	r.app.Use(helmet.New(helmet.Config{
		XSSProtection:             "1; mode=block",
		ContentTypeNosniff:        r.cfg.Security.XContentTypeOptions,
		XFrameOptions:             r.cfg.Security.XFrameOptions,
		HSTSMaxAge:                r.cfg.Security.HSTSMaxAge,
		HSTSExcludeSubdomains:     !r.cfg.Security.HSTSIncludeSubDoms,
		HSTSPreloadEnabled:        r.cfg.Security.HSTSPreload,
		ContentSecurityPolicy:     r.cfg.Security.CSPPolicy,
		ReferrerPolicy:            r.cfg.Security.ReferrerPolicy,
		CrossOriginResourcePolicy: "cross-origin",
		XDNSPrefetchControl:       "off",
		XDownloadOptions:          "noopen",
		XPermittedCrossDomain:     "none",
	}))

	r.app.Use(cors.New(cors.Config{
		AllowOrigins:     r.cfg.Security.AllowedOrigins,
		AllowMethods:     r.cfg.Security.AllowedMethods,
		AllowHeaders:     r.cfg.Security.AllowedHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "Content-Disposition"},
		AllowCredentials: r.cfg.Security.AllowCredentials,
		MaxAge:           r.cfg.Security.CORSMaxAge,
	}))

	if r.cfg.Server.EnableCompression {
		r.app.Use(compress.New(compress.Config{
			Level: compress.LevelBestSpeed,
		}))
	}

	if r.cfg.Logging.EnableAccessLog {
		r.app.Use(logger.New(logger.Config{
			Format:     `{"time":"${time}","request_id":"${locals:requestid}","level":"info","method":"${method}","path":"${path}","ip":"${ip}","status":${status},"latency":"${latency}","bytes_in":${bytesReceived},"bytes_out":${bytesSent}}` + "\n",
			TimeFormat: time.RFC3339,
			TimeZone:   "UTC",
			Next: func(c fiber.Ctx) bool {
				return c.Path() == healthPath
			},
		}))
	}

	if r.cfg.Metrics.Enabled {
		r.app.Use(middleware.Metrics(healthPath, r.cfg.Metrics.Path))
	}

	r.app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e any) {
			slog.Error("panic recovered",
				"request_id", requestid.FromContext(c),
				"error", e,
				"path", c.Path(),
				"method", c.Method(),
				"ip", c.IP(),
			)
		},
	}))
}

func (r *FiberRouter) Start(address string) error {
	slog.Info("Starting server", "address", address)
	return r.app.Listen(address)
}

func (r *FiberRouter) GetApp() *fiber.App {
	return r.app
}

func (r *FiberRouter) healthCheck(c fiber.Ctx) error {
	return c.JSON(dto.APIResponse{
		Success: true,
		Message: "Service is healthy",
		Data: fiber.Map{
			"status":    "ok",
			"timestamp": utils.UTCNow().Unix(),
			"version":   r.cfg.Deployment.Version,
			"service":   "showreel-api",
		},
	})
}

func (r *FiberRouter) notFoundHandler(c fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.APIResponse{
		Success: false,
		Message: "Endpoint not found",
		Error: dto.ErrorDetail{
			Code:    "NOT_FOUND",
			Details: fiber.Map{"path": c.Path(), "method": c.Method(), "request_id": requestid.FromContext(c)},
		},
	})
}

// errorHandler turns errors escaping handlers into the standard envelope
func errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	errCode := "INTERNAL_ERROR"
	message := "An internal server error occurred"

	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		code = fe.Code
		errCode = "REQUEST_ERROR"
		message = fe.Message
	}

	if code >= fiber.StatusInternalServerError {
		slog.Error("unhandled error",
			"request_id", requestid.FromContext(c),
			"path", c.Path(),
			"method", c.Method(),
			"error", err,
		)
	}

	return c.Status(code).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code: errCode,
			Details: fiber.Map{
				"timestamp":  utils.UTCNow().Unix(),
				"request_id": requestid.FromContext(c),
			},
		},
	})
}

func generateRequestID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return utils.UTCNow().Format("20060102150405.000000000")
	}
	return hex.EncodeToString(b)
}

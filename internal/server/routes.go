package server

import (
	"embed"
	"html/template"
	"io"
	"net/http"

	"NutriGini/internal/utility"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
)

//go:embed templates/*.html
var templateFS embed.FS

// TemplateRenderer is a custom html/template renderer for Echo framework
type TemplateRenderer struct {
	templates *template.Template
}

// Render renders a template document
func (t *TemplateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.templates.ExecuteTemplate(w, name, data)
}

func (s *Server) RegisterRoutes() http.Handler {
	e := echo.New()
	e.HideBanner = true
	e.IPExtractor = utility.NewIPExtractor(s.cfg.TrustedProxies)
	e.Use(LoggerMiddleware)
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("64K"))

	e.Renderer = &TemplateRenderer{
		templates: template.Must(template.ParseFS(templateFS, "templates/*.html")),
	}

	// Page
	e.GET("/", s.indexHandler)
	e.GET("/health", s.healthHandler)

	// Form submissions
	e.POST("/ask", s.askFormHandler, s.RateLimitMiddleware)
	e.POST("/ask/further", s.furtherFormHandler, s.RateLimitMiddleware)

	// JSON API
	api := e.Group("/api")
	api.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"https://*", "http://*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:       300,
	}))
	api.GET("/prompts", s.promptsHandler)
	api.POST("/ask", s.apiAskHandler, s.RateLimitMiddleware)
	api.POST("/ask/further", s.apiFurtherHandler, s.RateLimitMiddleware)

	// Websocket
	e.GET("/ws", s.websocketHandler)

	return e
}

// LoggerMiddleware tags every request with an ID and a child logger that is
// reachable both from the echo context and from the request context.
func LoggerMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Request().Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Response().Header().Set("X-Request-ID", requestID)

		logger := log.With().Str("request_id", requestID).Logger()
		c.Set("logger", &logger)
		c.SetRequest(c.Request().WithContext(logger.WithContext(c.Request().Context())))

		return next(c)
	}
}

// RateLimitMiddleware rejects clients that submit queries too quickly.
func (s *Server) RateLimitMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ip := utility.GetRealIP(c)
		if !s.limiter.Allow(ip) {
			utility.RequestLogger(c).Warn().Str("ip", ip).Msg("rate limit exceeded")
			return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "too many requests, please try again later"})
		}
		return next(c)
	}
}

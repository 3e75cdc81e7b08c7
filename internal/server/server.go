// Package server renders the portfolio page and serves the fragment,
// navigation and scroll endpoints that drive each open page's state.
package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/folio/internal/config"
	"github.com/Zachkp/folio/internal/contact"
	"github.com/Zachkp/folio/internal/content"
	"github.com/Zachkp/folio/internal/session"
)

// sweepInterval is how often idle pages are expired.
const sweepInterval = time.Minute

// Server is the web front end.
type Server struct {
	cfg    *config.Config
	site   *content.Site
	pages  *session.Store
	relay  contact.Relay
	logger *slog.Logger
	engine *gin.Engine
	salt   string
}

// New builds the router. relay receives contact submissions; pass nil to
// use the HTTP relay from cfg.
func New(cfg *config.Config, site *content.Site, relay contact.Relay, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if relay == nil {
		relay = contact.NewHTTPRelay(cfg.Relay.URL, cfg.Relay.Timeout, logger)
	}
	subject := cfg.Relay.Subject
	if subject == "" {
		subject = site.Subject()
	}

	salt, err := newSalt()
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:  cfg,
		site: site,
		pages: session.NewStore(session.Options{
			Anchors:          content.Anchors,
			ActivationMargin: cfg.Nav.ActivationMargin,
			TruncateLength:   cfg.Disclosure.TruncateLength,
			Relay:            relay,
			Subject:          subject,
			Logger:           logger,
		}, cfg.Session.TTL),
		relay:  relay,
		logger: logger,
		salt:   salt,
	}

	gin.SetMode(cfg.Mode)
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	r.SetHTMLTemplate(tmpl)

	static, err := fs.Sub(assets, "static")
	if err != nil {
		return nil, fmt.Errorf("static assets: %w", err)
	}
	r.StaticFS("/static", http.FS(static))

	s.routes(r)
	s.engine = r
	return s, nil
}

func (s *Server) routes(r *gin.Engine) {
	r.GET("/", s.handleHome)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "pages": s.pages.Len()})
	})
	r.GET("/ws/scroll", s.handleScroll)

	page := r.Group("/", s.requirePage())
	page.POST("/nav/menu", s.handleToggleMenu)
	page.POST("/nav/goto/*id", s.handleGoto)
	page.POST("/experience/:index/toggle", s.handleToggleExperience)
	page.POST("/contact/fields", s.handleContactFields)
	page.POST("/contact/submit", s.handleContactSubmit)
	page.POST("/contact/reset", s.handleContactReset)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Pages exposes the page store.
func (s *Server) Pages() *session.Store {
	return s.pages
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.pages.Run(ctx, sweepInterval)

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("portfolio listening", "addr", srv.Addr, "mode", s.cfg.Mode, "relay", s.cfg.Relay.URL)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	s.logger.Info("portfolio stopped")
	return nil
}

func parseTemplates() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(templateFuncs()).ParseFS(assets, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return tmpl, nil
}

package server

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/folio/internal/session"
)

// PageHeader carries the page id on every fragment request.
const PageHeader = "X-Folio-Page"

const pageKey = "folio.page"

func newSalt() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating log salt: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// hashIP makes client addresses correlatable within one process lifetime
// without ever logging them.
func (s *Server) hashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + s.salt))
	return hex.EncodeToString(sum[:])[:16]
}

// requestLogger logs every page and fragment request. Static assets are
// skipped, and visitors sending DNT are logged without a client hash.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/static/") ||
			strings.HasPrefix(path, "/favicon") ||
			path == "/healthz" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		attrs := []any{
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		}
		if c.GetHeader("DNT") != "1" {
			attrs = append(attrs, "client", s.hashIP(c.ClientIP()))
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "errors", c.Errors.String())
		}
		s.logger.Info("request", attrs...)
	}
}

// requirePage resolves the page the request belongs to. An expired page
// asks htmx to reload, which opens a fresh one.
func (s *Server) requirePage() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(PageHeader)
		if id == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing " + PageHeader})
			return
		}
		page, ok := s.pages.Get(id)
		if !ok {
			c.Header("HX-Refresh", "true")
			c.AbortWithStatusJSON(http.StatusGone, gin.H{"error": "page expired"})
			return
		}
		c.Set(pageKey, page)
		c.Next()
	}
}

func pageFrom(c *gin.Context) *session.Page {
	return c.MustGet(pageKey).(*session.Page)
}

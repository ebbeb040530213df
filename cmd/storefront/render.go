package main

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/storefront/internal/httpx"
	"github.com/MikeMC777/storefront/internal/session"
)

// Page is the JSON rendering of a storefront page.
// swagger:model Page
type Page struct {
	Page    string      `json:"page"`
	Flashes []string    `json:"flashes"`
	User    *PageUser   `json:"user"`
	Data    interface{} `json:"data,omitempty"`
}

type PageUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// HTTPError represents a standard error in JSON.
// swagger:model
type HTTPError struct {
	// example: product not found
	Error string `json:"error"`
}

// save persists the session before any bytes of the response are written.
func (a *app) save(c *gin.Context, s *session.Session) bool {
	if err := a.sessions.Save(c, s); err != nil {
		log.Printf("[session] rid=%s save failed: %v", httpx.GetRequestID(c), err)
		c.JSON(http.StatusInternalServerError, HTTPError{Error: "session unavailable"})
		return false
	}
	return true
}

func (a *app) render(c *gin.Context, s *session.Session, status int, page string, data interface{}) {
	p := Page{Page: page, Flashes: s.PopFlashes(), Data: data}
	if s.IsAuthenticated() {
		p.User = &PageUser{ID: s.UserID, Username: s.Username, Role: string(s.Role)}
	}
	if !a.save(c, s) {
		return
	}
	c.JSON(status, p)
}

func (a *app) redirect(c *gin.Context, s *session.Session, location string) {
	a.redirectWith(c, s, http.StatusFound, location)
}

func (a *app) redirectWith(c *gin.Context, s *session.Session, code int, location string) {
	if !a.save(c, s) {
		return
	}
	c.Redirect(code, location)
}

func (a *app) notFound(c *gin.Context, what string) {
	c.JSON(http.StatusNotFound, HTTPError{Error: what + " not found"})
}

func (a *app) internalError(c *gin.Context, err error) {
	log.Printf("[http] rid=%s %s %s failed: %v", httpx.GetRequestID(c), c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, HTTPError{Error: "internal error"})
}

// baseURL is the absolute origin used for gateway callback URLs.
func (a *app) baseURL(c *gin.Context) string {
	if a.publicBaseURL != "" {
		return a.publicBaseURL
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if fwd := c.GetHeader("X-Forwarded-Proto"); fwd != "" {
		scheme = strings.ToLower(strings.TrimSpace(strings.Split(fwd, ",")[0]))
	}
	return scheme + "://" + c.Request.Host
}

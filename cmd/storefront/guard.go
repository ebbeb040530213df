package main

import (
	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/storefront/internal/session"
)

// requireLogin redirects anonymous visitors to /login and reports whether the
// handler may continue.
func (a *app) requireLogin(c *gin.Context, s *session.Session) bool {
	if s.IsAuthenticated() {
		return true
	}
	s.AddFlash("Please log in to access this page.")
	a.redirect(c, s, "/login")
	return false
}

// requireSeller additionally sends authenticated buyers back to the catalog.
func (a *app) requireSeller(c *gin.Context, s *session.Session) bool {
	if !a.requireLogin(c, s) {
		return false
	}
	if s.IsSeller() {
		return true
	}
	s.AddFlash("Only sellers can manage products.")
	a.redirect(c, s, "/")
	return false
}

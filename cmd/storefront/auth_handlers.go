package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/storefront/internal/session"
	"github.com/MikeMC777/storefront/internal/user"
)

type credentialsForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
	Role     string `form:"role"`
}

type authFormData struct {
	Username string   `json:"username,omitempty"`
	Roles    []string `json:"roles,omitempty"`
}

var registerRoles = []string{string(user.RoleBuyer), string(user.RoleSeller)}

func (a *app) registerForm(c *gin.Context) {
	s := session.From(c)
	a.render(c, s, http.StatusOK, "register", authFormData{Roles: registerRoles})
}

// register godoc
// @Summary      Register an account
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        username  formData  string  true   "unique username"
// @Param        password  formData  string  true   "password"
// @Param        role      formData  string  false  "buyer (default) or seller"
// @Success      302
// @Failure      400  {object}  Page
// @Failure      409  {object}  Page
// @Router       /register [post]
func (a *app) register(c *gin.Context) {
	s := session.From(c)
	var form credentialsForm
	_ = c.ShouldBind(&form)

	_, err := a.users.Register(c.Request.Context(), form.Username, form.Password, form.Role)
	switch {
	case errors.Is(err, user.ErrInvalidInput):
		s.AddFlash("Username and password are required.")
		a.render(c, s, http.StatusBadRequest, "register", authFormData{Username: form.Username, Roles: registerRoles})
		return
	case errors.Is(err, user.ErrUsernameTooLong):
		s.AddFlash(fmt.Sprintf("Username must be at most %d characters.", user.MaxUsernameLen))
		a.render(c, s, http.StatusBadRequest, "register", authFormData{Roles: registerRoles})
		return
	case errors.Is(err, user.ErrPasswordTooLong):
		s.AddFlash(fmt.Sprintf("Password must be at most %d bytes.", user.MaxPasswordLen))
		a.render(c, s, http.StatusBadRequest, "register", authFormData{Username: form.Username, Roles: registerRoles})
		return
	case errors.Is(err, user.ErrAlreadyExist):
		s.AddFlash("Username already exists!")
		a.render(c, s, http.StatusConflict, "register", authFormData{Username: form.Username, Roles: registerRoles})
		return
	case err != nil:
		a.internalError(c, err)
		return
	}
	s.AddFlash("Registration successful! Please login.")
	a.redirect(c, s, "/login")
}

func (a *app) loginForm(c *gin.Context) {
	s := session.From(c)
	a.render(c, s, http.StatusOK, "login", nil)
}

// login godoc
// @Summary      Log in
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        username  formData  string  true  "username"
// @Param        password  formData  string  true  "password"
// @Success      302
// @Failure      401  {object}  Page
// @Router       /login [post]
func (a *app) login(c *gin.Context) {
	s := session.From(c)
	var form credentialsForm
	_ = c.ShouldBind(&form)

	u, err := a.users.Authenticate(c.Request.Context(), form.Username, form.Password)
	if errors.Is(err, user.ErrInvalidCredentials) {
		s.AddFlash("Invalid username or password")
		a.render(c, s, http.StatusUnauthorized, "login", authFormData{Username: form.Username})
		return
	}
	if err != nil {
		a.internalError(c, err)
		return
	}
	a.sessions.Rotate(s)
	s.Login(u)
	a.redirect(c, s, "/")
}

func (a *app) logout(c *gin.Context) {
	s := session.From(c)
	if !a.requireLogin(c, s) {
		return
	}
	s.Logout()
	s.AddFlash("You have been logged out.")
	a.redirect(c, s, "/")
}

// Package session keeps per-browser state (identity, cart, flash messages) in Redis,
// addressed by a signed cookie.
package session

import (
	"github.com/MikeMC777/storefront/internal/cart"
	"github.com/MikeMC777/storefront/internal/user"
)

type Session struct {
	ID       string    `json:"-"`
	UserID   int64     `json:"user_id,omitempty"`
	Username string    `json:"username,omitempty"`
	Role     user.Role `json:"role,omitempty"`
	Cart     cart.Cart `json:"cart,omitempty"`
	Flashes  []string  `json:"flashes,omitempty"`

	stored      bool   // a record exists under ID
	rotatedFrom string // previous ID, dropped once the new one is saved
}

func New(id string) *Session { return &Session{ID: id} }

// blank reports whether the session carries nothing worth keeping.
func (s *Session) blank() bool {
	return !s.IsAuthenticated() && s.Cart.IsEmpty() && len(s.Flashes) == 0
}

func (s *Session) IsAuthenticated() bool { return s.UserID != 0 }

func (s *Session) IsSeller() bool { return s.IsAuthenticated() && s.Role == user.RoleSeller }

func (s *Session) Login(u *user.User) {
	s.UserID = u.ID
	s.Username = u.Username
	s.Role = u.Role
}

// Logout forgets the identity; the cart stays with the browser.
func (s *Session) Logout() {
	s.UserID = 0
	s.Username = ""
	s.Role = ""
}

func (s *Session) AddFlash(msg string) {
	s.Flashes = append(s.Flashes, msg)
}

func (s *Session) PopFlashes() []string {
	out := s.Flashes
	s.Flashes = nil
	if out == nil {
		out = []string{}
	}
	return out
}

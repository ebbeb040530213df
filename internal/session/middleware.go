package session

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	CookieName = "storefront_session"
	contextKey = "session"
)

type Manager struct {
	Store  Store
	Codec  *Codec
	TTL    time.Duration
	Secure bool
}

func NewManager(store Store, codec *Codec, ttl time.Duration) *Manager {
	return &Manager{Store: store, Codec: codec, TTL: ttl}
}

// Middleware attaches the browser's session to the request. A missing, tampered,
// expired or unknown cookie starts a fresh anonymous session.
func (m *Manager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := m.load(c)
		if err != nil {
			if !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrInvalidCookie) && !errors.Is(err, http.ErrNoCookie) {
				log.Printf("[session] load failed, starting a new session: %v", err)
			}
			sess = New(uuid.NewString())
		}
		c.Set(contextKey, sess)
		c.Next()
	}
}

func (m *Manager) load(c *gin.Context) (*Session, error) {
	raw, err := c.Cookie(CookieName)
	if err != nil {
		return nil, err
	}
	id, err := m.Codec.Decode(raw)
	if err != nil {
		return nil, err
	}
	s, err := m.Store.Load(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}
	s.stored = true
	return s, nil
}

// From returns the session attached by Middleware.
func From(c *gin.Context) *Session {
	if v, ok := c.Get(contextKey); ok {
		if s, ok := v.(*Session); ok {
			return s
		}
	}
	return New(uuid.NewString())
}

// Save persists the session and refreshes the cookie. It must run before the
// response is written. A new session with nothing in it is neither stored nor
// given a cookie.
func (m *Manager) Save(c *gin.Context, s *Session) error {
	if !s.stored && s.blank() {
		return nil
	}
	if err := m.Store.Save(c.Request.Context(), s); err != nil {
		return err
	}
	s.stored = true
	if s.rotatedFrom != "" {
		if err := m.Store.Delete(c.Request.Context(), s.rotatedFrom); err != nil {
			log.Printf("[session] delete of rotated session failed: %v", err)
		}
		s.rotatedFrom = ""
	}
	token, err := m.Codec.Encode(s.ID)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, token, int(m.TTL.Seconds()), "/", "", m.Secure, true)
	return nil
}

// Rotate moves the session to a fresh id, keeping its contents. The old record
// is removed by the next successful Save.
func (m *Manager) Rotate(s *Session) {
	if s.stored && s.rotatedFrom == "" {
		s.rotatedFrom = s.ID
	}
	s.ID = uuid.NewString()
	s.stored = false
}

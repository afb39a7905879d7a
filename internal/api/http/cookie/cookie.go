package cookie

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"github.com/dtroode/codepad-server/internal/model"
)

const (
	SessionCookieName = "codepad_session"
	StateCookieName   = "codepad_oauth_state"

	stateTTL = 10 * time.Minute
)

// Jar reads and writes the signed session cookie and the federated login state cookie.
type Jar struct {
	sessions model.SessionManager
	secure   bool
}

func NewJar(sessions model.SessionManager, secure bool) *Jar {
	return &Jar{sessions: sessions, secure: secure}
}

// Read returns the session from the request cookie, or false when it is missing or invalid.
func (j *Jar) Read(r *http.Request) (model.Session, bool) {
	c, err := r.Cookie(SessionCookieName)
	if err != nil || c.Value == "" {
		return model.Session{}, false
	}

	session, err := j.sessions.Parse(c.Value)
	if err != nil {
		return model.Session{}, false
	}

	return session, true
}

// Write signs session into the response cookie.
func (j *Jar) Write(w http.ResponseWriter, session model.Session) error {
	value, err := j.sessions.Generate(session)
	if err != nil {
		return fmt.Errorf("failed to generate session token: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(j.sessions.TTL().Seconds()),
		HttpOnly: true,
		Secure:   j.secure,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

// NewState generates a random federated login state value.
func (j *Jar) NewState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// SetState stores state in a short-lived cookie for the callback to check.
func (j *Jar) SetState(w http.ResponseWriter, state string) {
	http.SetCookie(w, &http.Cookie{
		Name:     StateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   int(stateTTL.Seconds()),
		HttpOnly: true,
		Secure:   j.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// TakeState returns the stored state and clears the cookie.
func (j *Jar) TakeState(w http.ResponseWriter, r *http.Request) string {
	c, err := r.Cookie(StateCookieName)
	if err != nil {
		return ""
	}

	http.SetCookie(w, &http.Cookie{
		Name:     StateCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   j.secure,
		SameSite: http.SameSiteLaxMode,
	})

	return c.Value
}

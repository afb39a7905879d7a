package middleware

import (
	"context"
	"net/http"

	"github.com/dtroode/codepad-server/internal/logger"
	"github.com/dtroode/codepad-server/internal/model"
)

// SessionJar reads and writes the session cookie.
type SessionJar interface {
	Read(r *http.Request) (model.Session, bool)
	Write(w http.ResponseWriter, session model.Session) error
}

// IdentityResolver maps a session to the signed-in identity.
type IdentityResolver interface {
	Resolve(ctx context.Context, session model.Session) (*model.Identity, error)
}

// Session guarantees every request has a session and attaches its identity, if any.
type Session struct {
	jar            SessionJar
	resolver       IdentityResolver
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewSession creates a new Session middleware.
func NewSession(jar SessionJar, resolver IdentityResolver, contextManager model.ContextManager, logger *logger.Logger) *Session {
	return &Session{jar: jar, resolver: resolver, contextManager: contextManager, logger: logger}
}

// Handle issues an anonymous session cookie to new visitors and resolves the identity of returning ones.
func (m *Session) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := m.jar.Read(r)
		if !ok {
			session = model.NewAnonymousSession()
			if err := m.jar.Write(w, session); err != nil {
				m.fail(w, "failed to issue session", err)
				return
			}
		}

		identity, err := m.resolver.Resolve(r.Context(), session)
		if err != nil {
			m.fail(w, "failed to resolve identity", err)
			return
		}

		// The session points at a user that no longer exists.
		if identity == nil && session.Authenticated() {
			session = model.Session{ID: session.ID}
			if err := m.jar.Write(w, session); err != nil {
				m.fail(w, "failed to issue session", err)
				return
			}
		}

		ctx := m.contextManager.SetSessionToContext(r.Context(), session)
		if identity != nil {
			ctx = m.contextManager.SetIdentityToContext(ctx, *identity)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Session) fail(w http.ResponseWriter, msg string, err error) {
	m.logger.Error("Session middleware: "+msg,
		"error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

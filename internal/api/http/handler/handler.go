package handler

import (
	"net/http"

	"github.com/dtroode/codepad-server/internal/api/http/view"
	"github.com/dtroode/codepad-server/internal/logger"
	"github.com/dtroode/codepad-server/internal/model"
)

// Renderer renders HTML pages.
type Renderer interface {
	Render(w http.ResponseWriter, status int, page string, data view.Data) error
}

// SessionJar persists the session and federated login state in cookies.
type SessionJar interface {
	Write(w http.ResponseWriter, session model.Session) error
	NewState() (string, error)
	SetState(w http.ResponseWriter, state string)
	TakeState(w http.ResponseWriter, r *http.Request) string
}

// base carries what every handler needs to resolve the caller and respond.
type base struct {
	contextManager model.ContextManager
	renderer       Renderer
	logger         *logger.Logger
}

// identity returns the signed-in identity, or nil for anonymous requests.
func (b *base) identity(r *http.Request) *model.Identity {
	identity, ok := b.contextManager.GetIdentityFromContext(r.Context())
	if !ok {
		return nil
	}
	return &identity
}

func (b *base) session(r *http.Request) (model.Session, bool) {
	return b.contextManager.GetSessionFromContext(r.Context())
}

func (b *base) render(w http.ResponseWriter, r *http.Request, status int, page string, data view.Data) {
	data.Identity = b.identity(r)
	if err := b.renderer.Render(w, status, page, data); err != nil {
		b.logger.Error("Handler: failed to render page",
			"page", page,
			"error", err.Error())
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// fail responds with the mapped status, as JSON or as page when one is given.
func (b *base) fail(w http.ResponseWriter, r *http.Request, err error, page string, data view.Data) {
	status, message := statusFor(err)
	if status >= http.StatusInternalServerError {
		b.logger.Error("Handler: request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err.Error())
	}

	if page == "" || wantsJSON(r) {
		writeJSON(w, status, errorResponse{Error: message})
		return
	}

	data.Error = message
	b.render(w, r, status, page, data)
}

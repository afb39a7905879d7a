package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	httpcontext "github.com/dtroode/codepad-server/internal/api/http/context"
	"github.com/dtroode/codepad-server/internal/api/http/cookie"
	"github.com/dtroode/codepad-server/internal/api/http/view"
	"github.com/dtroode/codepad-server/internal/model"
	"github.com/dtroode/codepad-server/internal/token"
)

const testSecret = "test-secret"

func newRenderer(t *testing.T) *view.Renderer {
	t.Helper()
	r, err := view.NewRenderer()
	require.NoError(t, err)
	return r
}

func newJar() *cookie.Jar {
	return cookie.NewJar(token.NewJWT(testSecret, time.Hour), false)
}

// withCaller attaches the session and, when given, the identity the session middleware would set.
func withCaller(r *http.Request, session model.Session, identity *model.Identity) *http.Request {
	cm := httpcontext.NewManager()
	ctx := cm.SetSessionToContext(r.Context(), session)
	if identity != nil {
		ctx = cm.SetIdentityToContext(ctx, *identity)
	}
	return r.WithContext(ctx)
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func jsonRequest(method, target, body string) *http.Request {
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func formRequest(target, body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func findCookie(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

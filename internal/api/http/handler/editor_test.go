package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpcontext "github.com/dtroode/codepad-server/internal/api/http/context"
	"github.com/dtroode/codepad-server/internal/mocks"
	"github.com/dtroode/codepad-server/internal/model"
	"github.com/dtroode/codepad-server/internal/testutil"
)

func newTestEditor(t *testing.T) (*Editor, *mocks.EditorService) {
	t.Helper()
	svc := mocks.NewEditorService(t)
	return NewEditor(svc, httpcontext.NewManager(), newRenderer(t), testutil.MakeNoopLogger()), svc
}

func TestEditor_Index(t *testing.T) {
	h, _ := newTestEditor(t)

	rec := httptest.NewRecorder()
	h.Index(rec, withCaller(httptest.NewRequest(http.MethodGet, "/", nil), model.NewAnonymousSession(), nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `href="/login"`)
}

func TestEditor_New(t *testing.T) {
	t.Run("redirects to fresh id", func(t *testing.T) {
		h, svc := newTestEditor(t)
		svc.On("CreateNew", mock.Anything).Return("a1b2c3d4", nil).Once()

		rec := httptest.NewRecorder()
		h.New(rec, httptest.NewRequest(http.MethodGet, "/new", nil))

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/editor/a1b2c3d4", rec.Header().Get("Location"))
	})

	t.Run("service error", func(t *testing.T) {
		h, svc := newTestEditor(t)
		svc.On("CreateNew", mock.Anything).Return("", errors.New("database error")).Once()

		rec := httptest.NewRecorder()
		h.New(rec, httptest.NewRequest(http.MethodGet, "/new", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "database error")
	})
}

func TestEditor_Show(t *testing.T) {
	t.Run("renders stored code", func(t *testing.T) {
		h, svc := newTestEditor(t)
		svc.On("Load", mock.Anything, "a1b2c3d4").Return("print(1)", nil).Once()

		r := withURLParam(httptest.NewRequest(http.MethodGet, "/editor/a1b2c3d4", nil), "id", "a1b2c3d4")
		rec := httptest.NewRecorder()
		h.Show(rec, r)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "print(1)")
		assert.Contains(t, rec.Body.String(), "a1b2c3d4")
	})

	t.Run("escapes code", func(t *testing.T) {
		h, svc := newTestEditor(t)
		svc.On("Load", mock.Anything, "x").Return("</textarea><script>", nil).Once()

		r := withURLParam(httptest.NewRequest(http.MethodGet, "/editor/x", nil), "id", "x")
		rec := httptest.NewRecorder()
		h.Show(rec, r)

		assert.NotContains(t, rec.Body.String(), "</textarea><script>")
	})

	t.Run("invalid id", func(t *testing.T) {
		h, svc := newTestEditor(t)
		svc.On("Load", mock.Anything, "bad id").Return("", model.ErrInvalidSnippetID).Once()

		r := withURLParam(httptest.NewRequest(http.MethodGet, "/editor/bad", nil), "id", "bad id")
		rec := httptest.NewRecorder()
		h.Show(rec, r)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestEditor_Save(t *testing.T) {
	identity := &model.Identity{UserID: uuid.New(), Email: "a@b.c"}

	tests := []struct {
		name       string
		request    func() *http.Request
		identity   *model.Identity
		mockSetup  func(*mocks.EditorService)
		wantStatus int
		wantBody   string
	}{
		{
			name:    "anonymous save",
			request: func() *http.Request { return jsonRequest(http.MethodPost, "/editor/a1b2c3d4", `{"code":"print(1)"}`) },
			mockSetup: func(svc *mocks.EditorService) {
				svc.On("Autosave", mock.Anything, "a1b2c3d4", "print(1)", (*model.Identity)(nil)).Return(nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   "Code saved successfully",
		},
		{
			name:     "owned save",
			request:  func() *http.Request { return jsonRequest(http.MethodPost, "/editor/a1b2c3d4", `{"code":""}`) },
			identity: identity,
			mockSetup: func(svc *mocks.EditorService) {
				svc.On("Autosave", mock.Anything, "a1b2c3d4", "", identity).Return(nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   "Code saved successfully",
		},
		{
			name:       "code field missing",
			request:    func() *http.Request { return jsonRequest(http.MethodPost, "/editor/a1b2c3d4", `{}`) },
			mockSetup:  func(svc *mocks.EditorService) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   "code is required",
		},
		{
			name:       "malformed json",
			request:    func() *http.Request { return jsonRequest(http.MethodPost, "/editor/a1b2c3d4", `{`) },
			mockSetup:  func(svc *mocks.EditorService) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   "malformed JSON body",
		},
		{
			name:       "not json",
			request:    func() *http.Request { return formRequest("/editor/a1b2c3d4", "code=x") },
			mockSetup:  func(svc *mocks.EditorService) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   "request body must be JSON",
		},
		{
			name:    "nul in code",
			request: func() *http.Request { return jsonRequest(http.MethodPost, "/editor/a1b2c3d4", `{"code":"a\u0000b"}`) },
			mockSetup: func(svc *mocks.EditorService) {
				svc.On("Autosave", mock.Anything, "a1b2c3d4", "a\x00b", (*model.Identity)(nil)).Return(model.ErrInvalidCode).Once()
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   model.ErrInvalidCode.Error(),
		},
		{
			name:    "store failure",
			request: func() *http.Request { return jsonRequest(http.MethodPost, "/editor/a1b2c3d4", `{"code":"x"}`) },
			mockSetup: func(svc *mocks.EditorService) {
				svc.On("Autosave", mock.Anything, "a1b2c3d4", "x", (*model.Identity)(nil)).Return(errors.New("database error")).Once()
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, svc := newTestEditor(t)
			tt.mockSetup(svc)

			r := withCaller(tt.request(), model.NewAnonymousSession(), tt.identity)
			r = withURLParam(r, "id", "a1b2c3d4")
			rec := httptest.NewRecorder()
			h.Save(rec, r)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestEditor_Codes(t *testing.T) {
	identity := &model.Identity{UserID: uuid.New(), Email: "a@b.c"}

	t.Run("json list", func(t *testing.T) {
		h, svc := newTestEditor(t)
		svc.On("ListMine", mock.Anything, identity).Return([]string{"a1", "b2"}, nil).Once()

		r := httptest.NewRequest(http.MethodGet, "/codes", nil)
		r.Header.Set("Accept", "application/json")
		rec := httptest.NewRecorder()
		h.Codes(rec, withCaller(r, model.NewAnonymousSession(), identity))

		require.Equal(t, http.StatusOK, rec.Code)
		var resp filesResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, []string{"a1", "b2"}, resp.Files)
	})

	t.Run("empty json list is an array", func(t *testing.T) {
		h, svc := newTestEditor(t)
		svc.On("ListMine", mock.Anything, identity).Return(nil, nil).Once()

		r := httptest.NewRequest(http.MethodGet, "/codes", nil)
		r.Header.Set("Accept", "application/json")
		rec := httptest.NewRecorder()
		h.Codes(rec, withCaller(r, model.NewAnonymousSession(), identity))

		assert.JSONEq(t, `{"files":[]}`, rec.Body.String())
	})

	t.Run("html list", func(t *testing.T) {
		h, svc := newTestEditor(t)
		svc.On("ListMine", mock.Anything, identity).Return([]string{"a1"}, nil).Once()

		rec := httptest.NewRecorder()
		h.Codes(rec, withCaller(httptest.NewRequest(http.MethodGet, "/codes", nil), model.NewAnonymousSession(), identity))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `href="/editor/a1"`)
	})

	t.Run("anonymous gets login page", func(t *testing.T) {
		h, svc := newTestEditor(t)
		svc.On("ListMine", mock.Anything, (*model.Identity)(nil)).Return(nil, model.ErrAuthenticationRequired).Once()

		rec := httptest.NewRecorder()
		h.Codes(rec, withCaller(httptest.NewRequest(http.MethodGet, "/codes", nil), model.NewAnonymousSession(), nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "authentication required")
		assert.Contains(t, rec.Body.String(), `action="/login"`)
	})

	t.Run("anonymous json", func(t *testing.T) {
		h, svc := newTestEditor(t)
		svc.On("ListMine", mock.Anything, (*model.Identity)(nil)).Return(nil, model.ErrAuthenticationRequired).Once()

		r := httptest.NewRequest(http.MethodGet, "/codes", nil)
		r.Header.Set("Accept", "application/json")
		rec := httptest.NewRecorder()
		h.Codes(rec, withCaller(r, model.NewAnonymousSession(), nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":"authentication required"}`, rec.Body.String())
	})
}

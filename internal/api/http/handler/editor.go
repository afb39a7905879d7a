package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dtroode/codepad-server/internal/api/http/view"
	"github.com/dtroode/codepad-server/internal/logger"
	"github.com/dtroode/codepad-server/internal/model"
)

// EditorService defines snippet operations scoped by identity.
type EditorService interface {
	CreateNew(ctx context.Context) (string, error)
	Autosave(ctx context.Context, id, code string, identity *model.Identity) error
	Load(ctx context.Context, id string) (string, error)
	ListMine(ctx context.Context, identity *model.Identity) ([]string, error)
}

// Editor handles the landing page, the editor and the file list.
type Editor struct {
	base
	editorService EditorService
}

// NewEditor creates a new Editor handler.
func NewEditor(editorService EditorService, contextManager model.ContextManager, renderer Renderer, logger *logger.Logger) *Editor {
	return &Editor{
		base: base{
			contextManager: contextManager,
			renderer:       renderer,
			logger:         logger,
		},
		editorService: editorService,
	}
}

type saveRequest struct {
	Code *string `json:"code" validate:"required"`
}

type filesResponse struct {
	Files []string `json:"files"`
}

// Index renders the landing page.
func (h *Editor) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, view.PageIndex, view.Data{})
}

// New redirects to the editor under a freshly generated id.
func (h *Editor) New(w http.ResponseWriter, r *http.Request) {
	id, err := h.editorService.CreateNew(r.Context())
	if err != nil {
		h.fail(w, r, err, view.PageIndex, view.Data{})
		return
	}

	http.Redirect(w, r, "/editor/"+id, http.StatusFound)
}

// Show renders the editor with the stored code, empty for unsaved ids.
func (h *Editor) Show(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	code, err := h.editorService.Load(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, view.PageIndex, view.Data{})
		return
	}

	h.render(w, r, http.StatusOK, view.PageEditor, view.Data{FileID: id, Code: code})
}

// Save autosaves the JSON body {"code": "..."} under the id.
func (h *Editor) Save(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if !isJSON(r) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "request body must be JSON"})
		return
	}

	var req saveRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err, "", view.Data{})
		return
	}

	if err := h.editorService.Autosave(r.Context(), id, *req.Code, h.identity(r)); err != nil {
		h.fail(w, r, err, "", view.Data{})
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Code saved successfully"})
}

// Codes lists the caller's snippets. Anonymous callers get 401.
func (h *Editor) Codes(w http.ResponseWriter, r *http.Request) {
	files, err := h.editorService.ListMine(r.Context(), h.identity(r))
	if err != nil {
		h.fail(w, r, err, view.PageLogin, view.Data{})
		return
	}

	if wantsJSON(r) {
		if files == nil {
			files = []string{}
		}
		writeJSON(w, http.StatusOK, filesResponse{Files: files})
		return
	}

	h.render(w, r, http.StatusOK, view.PageCodes, view.Data{Files: files})
}

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mack-digital/mack-site/backend/admin"
	"github.com/mack-digital/mack-site/backend/errs"
)

type adminHandler struct {
	responder Responder
	logger    zerolog.Logger
	workflow  *admin.Workflow
	auth      *admin.Authenticator
}

func newAdminHandler(workflow *admin.Workflow, auth *admin.Authenticator) adminHandler {
	logger := log.With().Str("handlerName", "adminHandler").Logger()

	return adminHandler{
		responder: NewResponder(logger),
		logger:    logger,
		workflow:  workflow,
		auth:      auth,
	}
}

// writeWorkflowError maps workflow errors onto API errors.
func (h adminHandler) writeWorkflowError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, admin.ErrWrongPassword):
		h.responder.WriteError(w, errs.NewWrongPasswordError())
	case errors.Is(err, admin.ErrNotLoggedIn):
		h.responder.WriteError(w, errs.Unauthorized)
	case errors.Is(err, admin.ErrProjectNotFound):
		h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
	case errors.Is(err, admin.ErrNoDraft), errors.Is(err, admin.ErrNoLegalDraft):
		h.responder.WriteError(w, errs.NewConflictError("no draft open"))
	case errors.Is(err, admin.ErrNotConfirmed):
		h.responder.WriteError(w, errs.NewBadRequestError("delete requires confirm=true"))
	case errors.Is(err, admin.ErrImageIndex):
		h.responder.WriteError(w, errs.NewBadRequestError("image index out of range"))
	default:
		h.responder.WriteError(w, err)
	}
}

// login checks the shared password and issues a session token.
func (h adminHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			h.responder.WriteError(w, errs.Malformed("login payload"))
			return
		}

		if err := h.workflow.Login(body.Password); err != nil {
			h.writeWorkflowError(w, err)
			return
		}

		token, err := h.auth.IssueToken()
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalError("could not issue session token"))
			return
		}

		h.responder.WriteJSON(w, map[string]string{"token": token})
	}
}

func (h adminHandler) logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.workflow.Logout()
		h.responder.WriteJSON(w, map[string]string{"status": "success"})
	}
}

// overview reports the workflow phase, for the host to render the right tab.
func (h adminHandler) overview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, map[string]interface{}{
			"phase": h.workflow.Phase(),
		})
	}
}

// beginCreate opens a draft for a new project.
func (h adminHandler) beginCreate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		draft, err := h.workflow.BeginCreate()
		if err != nil {
			h.writeWorkflowError(w, err)
			return
		}
		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, draft)
	}
}

// beginEdit opens a draft holding a copy of an existing project.
func (h adminHandler) beginEdit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID := chi.URLParam(r, "projectID")
		if projectID == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing projectID"))
			return
		}

		draft, err := h.workflow.BeginEdit(projectID)
		if err != nil {
			h.writeWorkflowError(w, err)
			return
		}
		h.responder.WriteJSON(w, draft)
	}
}

func (h adminHandler) getDraft() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		draft, err := h.workflow.Draft()
		if err != nil {
			h.writeWorkflowError(w, err)
			return
		}
		h.responder.WriteJSON(w, draft)
	}
}

// updateDraft applies text edits to the open draft; nothing is persisted yet.
func (h adminHandler) updateDraft() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var update admin.DetailsUpdate
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			h.responder.WriteError(w, errs.Malformed("draft update"))
			return
		}

		if err := h.workflow.UpdateDetails(update); err != nil {
			h.writeWorkflowError(w, err)
			return
		}

		draft, err := h.workflow.Draft()
		if err != nil {
			h.writeWorkflowError(w, err)
			return
		}
		h.responder.WriteJSON(w, draft)
	}
}

// uploadImage crops the uploaded file and appends it to the draft, or
// replaces the slot named by the replaceIndex form field.
func (h adminHandler) uploadImage() http.HandlerFunc {
	const maxUploadSize = 20 << 20 // 20MB

	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed upload"))
			return
		}

		file, _, err := r.FormFile("image")
		if err != nil {
			h.responder.WriteValidationError(w, "image", "image file is required")
			return
		}
		defer file.Close()

		var replaceIndex *int
		if raw := r.FormValue("replaceIndex"); raw != "" {
			idx, err := strconv.Atoi(raw)
			if err != nil {
				h.responder.WriteValidationError(w, "replaceIndex", "must be an integer")
				return
			}
			replaceIndex = &idx
		}

		if err := h.workflow.AddImage(r.Context(), file, replaceIndex); err != nil {
			h.writeWorkflowError(w, err)
			return
		}

		draft, err := h.workflow.Draft()
		if err != nil {
			h.writeWorkflowError(w, err)
			return
		}
		h.responder.WriteJSON(w, draft)
	}
}

// setPreviewImage marks one image of the draft as the thumbnail.
func (h adminHandler) setPreviewImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Index int `json:"index"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			h.responder.WriteError(w, errs.Malformed("preview selection"))
			return
		}

		if err := h.workflow.SetPreviewImage(body.Index); err != nil {
			h.writeWorkflowError(w, err)
			return
		}
		h.responder.WriteJSON(w, map[string]string{"status": "success"})
	}
}

// removeImage drops one image from the draft.
func (h adminHandler) removeImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, err := strconv.Atoi(chi.URLParam(r, "index"))
		if err != nil {
			h.responder.WriteValidationError(w, "index", "must be an integer")
			return
		}

		if err := h.workflow.RemoveImage(index); err != nil {
			h.writeWorkflowError(w, err)
			return
		}

		draft, err := h.workflow.Draft()
		if err != nil {
			h.writeWorkflowError(w, err)
			return
		}
		h.responder.WriteJSON(w, draft)
	}
}

// saveDraft persists the draft through the store.
func (h adminHandler) saveDraft() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h.workflow.Save(r.Context())
		switch {
		case err == nil:
			h.responder.WriteJSON(w, map[string]string{"status": "success"})
		case errors.Is(err, admin.ErrNoDraft):
			h.writeWorkflowError(w, err)
		default:
			h.responder.WriteError(w, wrapDatabaseError("save", "project", err))
		}
	}
}

func (h adminHandler) cancelDraft() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.workflow.Cancel(); err != nil {
			h.writeWorkflowError(w, err)
			return
		}
		h.responder.WriteJSON(w, map[string]string{"status": "success"})
	}
}

// deleteProject removes a project. The confirm=true query parameter carries
// the operator's explicit confirmation.
func (h adminHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID := chi.URLParam(r, "projectID")
		if projectID == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing projectID"))
			return
		}
		confirmed := r.URL.Query().Get("confirm") == "true"

		err := h.workflow.Delete(r.Context(), projectID, confirmed)
		switch {
		case err == nil:
			h.responder.WriteJSON(w, map[string]string{
				"status":  "success",
				"message": "project deleted successfully",
			})
		case errors.Is(err, admin.ErrNotConfirmed),
			errors.Is(err, admin.ErrProjectNotFound),
			errors.Is(err, admin.ErrNotLoggedIn):
			h.writeWorkflowError(w, err)
		default:
			h.responder.WriteError(w, wrapDatabaseError("delete", "project", err))
		}
	}
}

// beginLegalEdit opens the legal tab.
func (h adminHandler) beginLegalEdit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		legal, err := h.workflow.BeginLegalEdit()
		if err != nil {
			h.writeWorkflowError(w, err)
			return
		}
		h.responder.WriteJSON(w, legal)
	}
}

// updateLegal applies edits to the legal draft.
func (h adminHandler) updateLegal() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Impressum   *string `json:"impressum"`
			Datenschutz *string `json:"datenschutz"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			h.responder.WriteError(w, errs.Malformed("legal update"))
			return
		}

		if err := h.workflow.UpdateLegal(body.Impressum, body.Datenschutz); err != nil {
			h.writeWorkflowError(w, err)
			return
		}
		h.responder.WriteJSON(w, map[string]string{"status": "success"})
	}
}

// saveLegal upserts the whole singleton record.
func (h adminHandler) saveLegal() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h.workflow.SaveLegal(r.Context())
		switch {
		case err == nil:
			h.responder.WriteJSON(w, map[string]string{"status": "success"})
		case errors.Is(err, admin.ErrNoLegalDraft):
			h.writeWorkflowError(w, err)
		default:
			h.responder.WriteError(w, wrapDatabaseError("save", "legal content", err))
		}
	}
}

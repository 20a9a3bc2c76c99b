// Package admin implements the operator workflow behind the password gate:
// browsing the project collection, editing a draft project (details, image
// uploads, preview selection), editing the legal texts, and the persistence
// round-trips for save and delete.
package admin

import (
	"context"
	"errors"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/mack-digital/mack-site/backend/imaging"
	"github.com/mack-digital/mack-site/backend/models"
	"github.com/mack-digital/mack-site/backend/site"
)

// CropRatio is the aspect ratio every uploaded project image is cropped to.
const CropRatio = 16.0 / 9.0

// Phase is the workflow state.
type Phase string

const (
	PhaseLoggedOut    Phase = "logged-out"
	PhaseBrowsing     Phase = "browsing"
	PhaseEditing      Phase = "editing"
	PhaseLegalEditing Phase = "legal-editing"
)

var (
	ErrWrongPassword   = errors.New("wrong password")
	ErrNotLoggedIn     = errors.New("not logged in")
	ErrNoDraft         = errors.New("no project draft open")
	ErrNoLegalDraft    = errors.New("no legal draft open")
	ErrProjectNotFound = errors.New("project not found")
	ErrNotConfirmed    = errors.New("delete requires confirmation")
	ErrImageIndex      = errors.New("image index out of range")
)

// ContentStore is the slice of the persistence adapter the workflow uses.
// Write failures are surfaced so in-memory state is never advanced past a
// failed remote write.
type ContentStore interface {
	SaveProject(ctx context.Context, project models.Project) error
	DeleteProject(ctx context.Context, id string) error
	SaveLegalContent(ctx context.Context, content models.LegalContent) error
}

// ImageStore turns cropped JPEG bytes into an image reference (a public URL
// or an inline data URL) for the images list.
type ImageStore interface {
	Store(ctx context.Context, jpegData []byte) (string, error)
}

// DetailsUpdate carries the free-form text edits of the project form. Nil
// fields are left untouched. Categories is the raw comma-separated input.
type DetailsUpdate struct {
	Title            *string `json:"title"`
	Client           *string `json:"client"`
	Year             *string `json:"year"`
	Categories       *string `json:"categories"`
	ShortDescription *string `json:"shortDescription"`
	LongDescription  *string `json:"longDescription"`
}

// Workflow is the admin state machine. All draft edits stay local to the
// draft until Save pushes them through the store; Save and Delete only
// advance the shared site state after the remote write succeeded.
type Workflow struct {
	mu         sync.Mutex
	phase      Phase
	draft      *models.Project
	draftNew   bool
	legalDraft *models.LegalContent

	state  *site.State
	store  ContentStore
	images ImageStore
	auth   *Authenticator
	saves  singleflight.Group
	logger zerolog.Logger
}

func NewWorkflow(state *site.State, store ContentStore, images ImageStore, auth *Authenticator) *Workflow {
	logger := log.With().Str("component", "adminWorkflow").Logger()
	return &Workflow{
		phase:  PhaseLoggedOut,
		state:  state,
		store:  store,
		images: images,
		auth:   auth,
		logger: logger,
	}
}

func (w *Workflow) Phase() Phase {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.phase
}

// Login checks the shared password and enters browsing. There is no lockout
// or backoff; a rejection is just reported back.
func (w *Workflow) Login(password string) error {
	if !w.auth.Verify(password) {
		return ErrWrongPassword
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.phase == PhaseLoggedOut {
		w.phase = PhaseBrowsing
	}
	return nil
}

// Logout drops any open draft and returns to the gate.
func (w *Workflow) Logout() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.phase = PhaseLoggedOut
	w.draft = nil
	w.draftNew = false
	w.legalDraft = nil
}

// BeginCreate opens a draft for a fresh project: new id, current year, empty
// lists.
func (w *Workflow) BeginCreate() (models.Project, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.phase == PhaseLoggedOut {
		return models.Project{}, ErrNotLoggedIn
	}
	draft := models.Project{
		ID:         uuid.NewString(),
		Year:       strconv.Itoa(time.Now().Year()),
		Categories: []string{},
		Images:     []string{},
		DateAdded:  time.Now().UTC(),
	}
	w.draft = &draft
	w.draftNew = true
	w.phase = PhaseEditing
	return draft.Clone(), nil
}

// BeginEdit opens a draft holding a mutable copy of an existing project.
func (w *Workflow) BeginEdit(id string) (models.Project, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.phase == PhaseLoggedOut {
		return models.Project{}, ErrNotLoggedIn
	}
	project, ok := w.state.Project(id)
	if !ok {
		return models.Project{}, ErrProjectNotFound
	}
	draft := project.Clone()
	w.draft = &draft
	w.draftNew = false
	w.phase = PhaseEditing
	return draft.Clone(), nil
}

// Draft returns a copy of the open draft.
func (w *Workflow) Draft() (models.Project, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.draft == nil {
		return models.Project{}, ErrNoDraft
	}
	return w.draft.Clone(), nil
}

// Cancel discards the open draft (project or legal) and returns to browsing.
func (w *Workflow) Cancel() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.phase == PhaseLoggedOut {
		return ErrNotLoggedIn
	}
	w.draft = nil
	w.draftNew = false
	w.legalDraft = nil
	w.phase = PhaseBrowsing
	return nil
}

// UpdateDetails applies text edits to the draft only; nothing is persisted.
func (w *Workflow) UpdateDetails(update DetailsUpdate) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.draft == nil {
		return ErrNoDraft
	}
	if update.Title != nil {
		w.draft.Title = *update.Title
	}
	if update.Client != nil {
		w.draft.Client = *update.Client
	}
	if update.Year != nil {
		w.draft.Year = *update.Year
	}
	if update.Categories != nil {
		w.draft.Categories = splitCategories(*update.Categories)
	}
	if update.ShortDescription != nil {
		w.draft.ShortDescription = *update.ShortDescription
	}
	if update.LongDescription != nil {
		w.draft.LongDescription = *update.LongDescription
	}
	return nil
}

// AddImage crops the upload, stores it, and appends it to the draft's image
// list. When replaceIndex is non-nil the image at that slot is replaced
// instead.
func (w *Workflow) AddImage(ctx context.Context, upload io.Reader, replaceIndex *int) error {
	w.mu.Lock()
	if w.draft == nil {
		w.mu.Unlock()
		return ErrNoDraft
	}
	if replaceIndex != nil && (*replaceIndex < 0 || *replaceIndex >= len(w.draft.Images)) {
		w.mu.Unlock()
		return ErrImageIndex
	}
	w.mu.Unlock()

	cropped, err := imaging.CropReader(upload, CropRatio)
	if err != nil {
		return err
	}
	ref, err := w.images.Store(ctx, cropped)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.draft == nil {
		return ErrNoDraft
	}
	if replaceIndex != nil {
		if *replaceIndex < 0 || *replaceIndex >= len(w.draft.Images) {
			return ErrImageIndex
		}
		w.draft.Images[*replaceIndex] = ref
		return nil
	}
	w.draft.Images = append(w.draft.Images, ref)
	return nil
}

// SetPreviewImage marks the image at index as the project thumbnail.
func (w *Workflow) SetPreviewImage(index int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.draft == nil {
		return ErrNoDraft
	}
	if index < 0 || index >= len(w.draft.Images) {
		return ErrImageIndex
	}
	w.draft.PreviewImageIndex = index
	return nil
}

// RemoveImage drops the image at index and re-clamps PreviewImageIndex so it
// never points past the end or at the removed slot.
func (w *Workflow) RemoveImage(index int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.draft == nil {
		return ErrNoDraft
	}
	if index < 0 || index >= len(w.draft.Images) {
		return ErrImageIndex
	}
	w.draft.Images = append(w.draft.Images[:index], w.draft.Images[index+1:]...)

	switch {
	case len(w.draft.Images) == 0:
		w.draft.PreviewImageIndex = 0
	case w.draft.PreviewImageIndex == index:
		w.draft.PreviewImageIndex = 0
	case w.draft.PreviewImageIndex > index:
		w.draft.PreviewImageIndex--
	}
	return nil
}

// Save persists the draft through the store. Duplicate submits for the same
// draft share a single in-flight write. On success the draft is merged into
// the site state (prepend if new, replace by id otherwise) and the workflow
// returns to browsing; on failure it stays in editing and reports the error.
func (w *Workflow) Save(ctx context.Context) error {
	w.mu.Lock()
	if w.draft == nil {
		w.mu.Unlock()
		return ErrNoDraft
	}
	draft := w.draft.Clone()
	isNew := w.draftNew
	w.mu.Unlock()

	_, err, _ := w.saves.Do(draft.ID, func() (interface{}, error) {
		return nil, w.store.SaveProject(ctx, draft)
	})
	if err != nil {
		w.logger.Error().Err(err).Str("projectID", draft.ID).Msg("project save failed")
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.state.UpsertProject(draft)
	w.draft = nil
	w.draftNew = false
	w.phase = PhaseBrowsing
	w.logger.Info().Str("projectID", draft.ID).Bool("created", isNew).Msg("project saved")
	return nil
}

// Delete removes a project after explicit confirmation. The in-memory
// collection is only touched once the remote delete succeeded.
func (w *Workflow) Delete(ctx context.Context, id string, confirmed bool) error {
	w.mu.Lock()
	if w.phase == PhaseLoggedOut {
		w.mu.Unlock()
		return ErrNotLoggedIn
	}
	w.mu.Unlock()

	if !confirmed {
		return ErrNotConfirmed
	}
	if _, ok := w.state.Project(id); !ok {
		return ErrProjectNotFound
	}

	if err := w.store.DeleteProject(ctx, id); err != nil {
		w.logger.Error().Err(err).Str("projectID", id).Msg("project delete failed")
		return err
	}
	w.state.RemoveProject(id)
	w.logger.Info().Str("projectID", id).Msg("project deleted")
	return nil
}

// BeginLegalEdit opens the legal tab with a copy of the current texts.
func (w *Workflow) BeginLegalEdit() (models.LegalContent, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.phase == PhaseLoggedOut {
		return models.LegalContent{}, ErrNotLoggedIn
	}
	legal := w.state.Legal()
	w.legalDraft = &legal
	w.phase = PhaseLegalEditing
	return legal, nil
}

// UpdateLegal applies text edits to the legal draft only.
func (w *Workflow) UpdateLegal(impressum, datenschutz *string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.legalDraft == nil {
		return ErrNoLegalDraft
	}
	if impressum != nil {
		w.legalDraft.Impressum = *impressum
	}
	if datenschutz != nil {
		w.legalDraft.Datenschutz = *datenschutz
	}
	return nil
}

// SaveLegal upserts the whole singleton record.
func (w *Workflow) SaveLegal(ctx context.Context) error {
	w.mu.Lock()
	if w.legalDraft == nil {
		w.mu.Unlock()
		return ErrNoLegalDraft
	}
	legal := *w.legalDraft
	w.mu.Unlock()

	_, err, _ := w.saves.Do(models.LegalContentID, func() (interface{}, error) {
		return nil, w.store.SaveLegalContent(ctx, legal)
	})
	if err != nil {
		w.logger.Error().Err(err).Msg("legal save failed")
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	legal.ID = models.LegalContentID
	w.state.SetLegal(legal)
	w.legalDraft = nil
	w.phase = PhaseBrowsing
	w.logger.Info().Msg("legal content saved")
	return nil
}

// splitCategories turns the comma-separated form input into the ordered tag
// list, trimming whitespace and dropping empty entries.
func splitCategories(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

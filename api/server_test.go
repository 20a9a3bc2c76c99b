package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mack-digital/mack-site/backend/admin"
	"github.com/mack-digital/mack-site/backend/models"
	"github.com/mack-digital/mack-site/backend/site"
	"github.com/mack-digital/mack-site/backend/store"
)

type stubContentStore struct{}

func (stubContentStore) SaveProject(ctx context.Context, project models.Project) error { return nil }
func (stubContentStore) DeleteProject(ctx context.Context, id string) error            { return nil }
func (stubContentStore) SaveLegalContent(ctx context.Context, content models.LegalContent) error {
	return nil
}

type stubImageStore struct{}

func (stubImageStore) Store(ctx context.Context, jpegData []byte) (string, error) {
	return "https://img.test/stub.jpg", nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	state := site.NewState(store.DefaultProjects(), store.DefaultLegalContent())
	auth := admin.NewAuthenticator("", "", nil, time.Hour)
	workflow := admin.NewWorkflow(state, stubContentStore{}, stubImageStore{}, auth)

	return newRouter(Deps{
		State:    state,
		Workflow: workflow,
		Auth:     auth,
		Config:   map[string]string{},
	})
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func loginToken(t *testing.T, router http.Handler) string {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/admin/login", "", map[string]string{
		"password": admin.DefaultPassword,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body["token"])
	return body["token"]
}

func TestBootstrapReturnsInitialContent(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/bootstrap", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Projects        []models.Project `json:"projects"`
		EntryPage       string           `json:"entryPage"`
		MinSplashMillis int              `json:"minSplashMillis"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.NotEmpty(t, body.Projects)
	assert.Equal(t, "home", body.EntryPage)
	assert.Equal(t, 1500, body.MinSplashMillis)
}

func TestResolvePageRejectsUnknownPage(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/navigation/launchpad", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResolvePageStaleProjectRedirectsToPortfolio(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/navigation/project-detail?projectId=gone", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var view site.View
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, site.PagePortfolio, view.Page)
	assert.Equal(t, site.PagePortfolio, view.RedirectTo)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/admin/state", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/admin/state", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/admin/login", "", map[string]string{
		"password": "letmein",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDraftLifecycleOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	token := loginToken(t, router)

	rec := doJSON(t, router, http.MethodGet, "/admin/state", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), string(admin.PhaseBrowsing))

	rec = doJSON(t, router, http.MethodPost, "/admin/projects/new", token, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var draft models.Project
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &draft))
	require.NotEmpty(t, draft.ID)

	rec = doJSON(t, router, http.MethodPut, "/admin/draft", token, map[string]string{
		"title":      "Neue Kampagne",
		"categories": "Web, Print",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &draft))
	assert.Equal(t, "Neue Kampagne", draft.Title)
	assert.Equal(t, []string{"Web", "Print"}, draft.Categories)

	rec = doJSON(t, router, http.MethodPost, "/admin/draft/save", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// The saved project is served publicly, newest first.
	rec = doJSON(t, router, http.MethodGet, "/projects", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var collection ProjectCollection
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &collection))
	require.NotEmpty(t, collection.Projects)
	assert.Equal(t, draft.ID, collection.Projects[0].ID)
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	router := newTestRouter(t)
	token := loginToken(t, router)

	seeded := store.DefaultProjects()
	require.NotEmpty(t, seeded)

	rec := doJSON(t, router, http.MethodDelete, "/admin/project/"+seeded[0].ID, token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/admin/project/"+seeded[0].ID+"?confirm=true", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/project/"+seeded[0].ID, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLegalEditOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	token := loginToken(t, router)

	rec := doJSON(t, router, http.MethodPost, "/admin/legal/edit", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	impressum := "MACK Digital GmbH, Angelbachtal"
	rec = doJSON(t, router, http.MethodPut, "/admin/legal", token, map[string]string{
		"impressum": impressum,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/admin/legal/save", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/legal", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var legal models.LegalContent
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &legal))
	assert.Equal(t, impressum, legal.Impressum)
}

func TestConsentCookieRoundTrip(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/consent", "", map[string][]string{
		"categories": {"media"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	require.Equal(t, consentCookie, cookies[0].Name)

	req := httptest.NewRequest(http.MethodGet, "/consent", nil)
	req.AddCookie(cookies[0])
	readBack := httptest.NewRecorder()
	router.ServeHTTP(readBack, req)
	require.Equal(t, http.StatusOK, readBack.Code)

	var body struct {
		Categories  []string `json:"categories"`
		MediaEmbeds bool     `json:"mediaEmbeds"`
	}
	require.NoError(t, json.Unmarshal(readBack.Body.Bytes(), &body))
	assert.Equal(t, []string{"media"}, body.Categories)
	assert.True(t, body.MediaEmbeds)
}

package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/starford/othala/internal/models"
	"github.com/starford/othala/internal/session"
	"github.com/starford/othala/internal/testutil"
	"github.com/starford/othala/internal/validate"
)

// testEnv sets up a temp document store, session, and router for testing.
// An empty authToken means disabled mode.
func testEnv(t *testing.T, authToken string) (*session.Service, http.Handler) {
	t.Helper()
	svc := session.NewService(testutil.TestStore(t), validate.DefaultPolicy())
	router := NewRouter(svc, authToken != "", authToken, nil, nil)
	return svc, router
}

func do(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(raw)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func fillProfile(t *testing.T, router http.Handler) {
	t.Helper()
	w := do(t, router, http.MethodPut, "/portfolio/profile", session.Profile{
		Name: "Ada", Image: "https://example.com/a.png", ShortBio: "bio",
		Title: "Engineer", Location: "London",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("profile status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestGetPortfolio_EmptyDocument(t *testing.T) {
	_, router := testEnv(t, "")
	w := do(t, router, http.MethodGet, "/portfolio", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var doc models.Portfolio
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.JobsProjects == nil {
		t.Error("collections must serialise as [] not null")
	}
}

func TestJobProjectCRUDAndMove(t *testing.T) {
	_, router := testEnv(t, "")

	// Create two jobs.
	w := do(t, router, http.MethodPost, "/portfolio/jobs", map[string]any{"title": "A", "isJob": true})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", w.Code, w.Body.String())
	}
	var a models.JobProject
	_ = json.Unmarshal(w.Body.Bytes(), &a)
	if a.ID == "" {
		t.Fatal("created record has no id")
	}
	w = do(t, router, http.MethodPost, "/portfolio/jobs", map[string]any{"title": "B"})
	var b models.JobProject
	_ = json.Unmarshal(w.Body.Bytes(), &b)

	// Update A.
	w = do(t, router, http.MethodPut, "/portfolio/jobs/"+a.ID, map[string]any{"title": "A2"})
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d", w.Code)
	}

	// Move B up.
	w = do(t, router, http.MethodPost, "/portfolio/jobs/"+b.ID+"/move", MoveRequest{Direction: "up"})
	if w.Code != http.StatusOK {
		t.Fatalf("move status = %d, body = %s", w.Code, w.Body.String())
	}
	var doc models.Portfolio
	_ = json.Unmarshal(w.Body.Bytes(), &doc)
	if len(doc.JobsProjects) != 2 || doc.JobsProjects[0].Title != "B" || doc.JobsProjects[1].Title != "A2" {
		t.Errorf("order after move = %+v", doc.JobsProjects)
	}

	// Delete A.
	w = do(t, router, http.MethodDelete, "/portfolio/jobs/"+a.ID, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", w.Code)
	}
	w = do(t, router, http.MethodDelete, "/portfolio/jobs/"+a.ID, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", w.Code)
	}
}

func TestSocialCRUD(t *testing.T) {
	svc, router := testEnv(t, "")

	w := do(t, router, http.MethodPost, "/portfolio/socials", map[string]any{"platform": "github", "url": "https://github.com/ada"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", w.Code, w.Body.String())
	}

	w = do(t, router, http.MethodPut, "/portfolio/socials/0", map[string]any{"platform": "linkedin", "url": "https://linkedin.com/in/ada"})
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d", w.Code)
	}
	if got := svc.Document().Socials[0].Platform; got != "linkedin" {
		t.Errorf("platform = %q", got)
	}

	w = do(t, router, http.MethodPut, "/portfolio/socials/9", map[string]any{"platform": "x"})
	if w.Code != http.StatusNotFound {
		t.Errorf("out-of-range update status = %d, want 404", w.Code)
	}
	w = do(t, router, http.MethodPut, "/portfolio/socials/abc", map[string]any{"platform": "x"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad index status = %d, want 400", w.Code)
	}

	w = do(t, router, http.MethodDelete, "/portfolio/socials/0", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", w.Code)
	}
	if len(svc.Document().Socials) != 0 {
		t.Error("social not removed")
	}
}

func TestMove_InvalidDirection(t *testing.T) {
	_, router := testEnv(t, "")
	w := do(t, router, http.MethodPost, "/portfolio/jobs", map[string]any{"title": "A"})
	var a models.JobProject
	_ = json.Unmarshal(w.Body.Bytes(), &a)

	w = do(t, router, http.MethodPost, "/portfolio/jobs/"+a.ID+"/move", MoveRequest{Direction: "sideways"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestExport_ValidationBlocks(t *testing.T) {
	_, router := testEnv(t, "")
	w := do(t, router, http.MethodGet, "/portfolio/export", nil)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Name is required.") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestExport_DownloadHeaders(t *testing.T) {
	_, router := testEnv(t, "")
	fillProfile(t, router)

	w := do(t, router, http.MethodGet, "/portfolio/export", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	cd := w.Header().Get("Content-Disposition")
	if !strings.Contains(cd, `filename="portfolio_data.json"`) {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if !strings.HasPrefix(w.Body.String(), "{\n  ") {
		t.Errorf("export not pretty-printed: %q", w.Body.String()[:20])
	}
}

func TestImport_RawBody(t *testing.T) {
	svc, router := testEnv(t, "")
	req := httptest.NewRequest(http.MethodPost, "/portfolio/import",
		strings.NewReader(`{"name": "Grace", "jobsProjects": "not-an-array"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	doc := svc.Document()
	if doc.Name != "Grace" || len(doc.JobsProjects) != 0 {
		t.Errorf("document = %+v", doc)
	}
}

func TestImport_MultipartFile(t *testing.T) {
	svc, router := testEnv(t, "")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "portfolio_data.json")
	if err != nil {
		t.Fatal(err)
	}
	_, _ = fw.Write([]byte(`{"name": "Grace"}`))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/portfolio/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if svc.Document().Name != "Grace" {
		t.Errorf("name = %q", svc.Document().Name)
	}
}

func TestImport_FailurePreservesState(t *testing.T) {
	svc, router := testEnv(t, "")
	fillProfile(t, router)

	req := httptest.NewRequest(http.MethodPost, "/portfolio/import", strings.NewReader(`"just a string"`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if svc.Document().Name != "Ada" {
		t.Error("failed import must preserve prior state")
	}
}

func TestSearchAndRecordLookup(t *testing.T) {
	svc, router := testEnv(t, "")
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)
	j := svc.AddJobProject(models.JobProject{
		Title: "Backend Engineer", StartDate: &start, EndDate: &end,
		Skills: []string{"go"}, Links: []string{"https://x.example"},
	})

	w := do(t, router, http.MethodGet, "/search?q=engineer+intern&skills=GO&links=true&from=2020-03-01&to=2020-04-01", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp SearchResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Results) != 1 || resp.Results[0].ID != j.ID || resp.Results[0].Type != "job_project" {
		t.Fatalf("results = %+v", resp.Results)
	}

	w = do(t, router, http.MethodGet, "/records/"+j.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("record status = %d", w.Code)
	}
	var rec RecordResponse
	_ = json.Unmarshal(w.Body.Bytes(), &rec)
	if rec.JobProject == nil || rec.JobProject.Title != "Backend Engineer" {
		t.Errorf("record = %+v", rec)
	}

	w = do(t, router, http.MethodGet, "/records/nonexistent-id", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("miss status = %d, want 404", w.Code)
	}
}

func TestSearch_BadDate(t *testing.T) {
	_, router := testEnv(t, "")
	w := do(t, router, http.MethodGet, "/search?from=yesterday", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestAuth_TokenMode(t *testing.T) {
	_, router := testEnv(t, "sekrit")

	req := httptest.NewRequest(http.MethodGet, "/portfolio", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status without token = %d, want 401", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/portfolio", nil)
	req.Header.Set("Authorization", "Bearer sekrit")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status with token = %d, want 200", w.Code)
	}
}

func TestSkillsEndpoint(t *testing.T) {
	svc, router := testEnv(t, "")
	svc.AddJobProject(models.JobProject{Title: "A", Skills: []string{"go", "sql"}})
	w := do(t, router, http.MethodGet, "/skills", nil)
	var resp SkillsResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Skills) != 2 {
		t.Errorf("skills = %v", resp.Skills)
	}
}

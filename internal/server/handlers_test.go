package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hyperjump/genie/internal/config"
	"github.com/hyperjump/genie/internal/embedding"
	"github.com/hyperjump/genie/internal/llm"
	"github.com/hyperjump/genie/internal/session"
	"github.com/hyperjump/genie/internal/speech"
	"go.uber.org/zap"
)

func newTestServer(client *llm.MockClient, synth *speech.MockSynthesizer) *Server {
	if client == nil {
		client = &llm.MockClient{}
	}
	if synth == nil {
		synth = &speech.MockSynthesizer{}
	}
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	cfg.Chunking.IndexSize = 50
	cfg.Chunking.IndexOverlap = 10
	cfg.Chunking.GenerationSize = 80
	cfg.Chunking.GenerationOverlap = 10
	sess := session.New(cfg, embedding.NewMockEmbedder(32), client, synth, nil)
	return NewServer(sess, &cfg.Server, zap.NewNop())
}

// uploadRequest builds a multipart POST with the given filename/content pairs.
func uploadRequest(t *testing.T, files map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for name, content := range files {
		part, err := mw.CreateFormFile("files", name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := part.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	r := httptest.NewRequest(http.MethodPost, "/api/v1/documents", &body)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	return r
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(out); err != nil {
		t.Fatal(err)
	}
}

func TestHandleProcessDocuments(t *testing.T) {
	srv := newTestServer(nil, nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, uploadRequest(t, map[string]string{
		"notes.txt": "The aurora borealis appears near the magnetic poles.",
	}))
	if w.Code != http.StatusCreated {
		t.Fatalf("status: got %d, body %s", w.Code, w.Body.String())
	}
	var out struct {
		Status string `json:"status"`
		Units  int    `json:"units"`
		Chunks int    `json:"chunks"`
	}
	decodeJSON(t, w, &out)
	if out.Status != "processed" || out.Units != 1 || out.Chunks == 0 {
		t.Errorf("unexpected response: %+v", out)
	}
}

func TestHandleProcessDocuments_NoExtractableText(t *testing.T) {
	srv := newTestServer(nil, nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, uploadRequest(t, map[string]string{
		"data.csv": "a,b,c",
	}))
	if w.Code != http.StatusBadRequest {
		t.Errorf("unsupported-only batch should 400, got %d", w.Code)
	}
}

func TestHandleChat_BeforeProcessing(t *testing.T) {
	srv := newTestServer(nil, nil)
	body := strings.NewReader(`{"question":"anything?"}`)
	r := httptest.NewRequest(http.MethodPost, "/api/v1/chat", body)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, r)
	if w.Code != http.StatusConflict {
		t.Errorf("chat before processing should 409, got %d", w.Code)
	}
}

func TestHandleChat(t *testing.T) {
	client := &llm.MockClient{Responses: []string{"Near the poles."}}
	srv := newTestServer(client, nil)

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, uploadRequest(t, map[string]string{
		"notes.txt": "The aurora appears near the poles.",
	}))
	if w.Code != http.StatusCreated {
		t.Fatalf("upload failed: %d", w.Code)
	}

	r := httptest.NewRequest(http.MethodPost, "/api/v1/chat",
		strings.NewReader(`{"question":"Where does the aurora appear?"}`))
	w = httptest.NewRecorder()
	srv.Router().ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", w.Code, w.Body.String())
	}
	var out struct {
		Answer string `json:"answer"`
	}
	decodeJSON(t, w, &out)
	if out.Answer != "Near the poles." {
		t.Errorf("answer = %q", out.Answer)
	}
}

func TestHandleChat_MissingQuestion(t *testing.T) {
	srv := newTestServer(nil, nil)
	r := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, r)
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty question should 400, got %d", w.Code)
	}
}

func TestHandleSummary_BeforeProcessing(t *testing.T) {
	srv := newTestServer(nil, nil)
	r := httptest.NewRequest(http.MethodPost, "/api/v1/summary", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, r)
	if w.Code != http.StatusConflict {
		t.Errorf("summary before processing should 409, got %d", w.Code)
	}
}

func TestHandleAudio_FullFlow(t *testing.T) {
	client := &llm.MockClient{Responses: []string{"Alex: Welcome everyone\nBen: Thanks Alex"}}
	synth := &speech.MockSynthesizer{}
	srv := newTestServer(client, synth)
	router := srv.Router()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, uploadRequest(t, map[string]string{"ep.txt": "episode notes"}))
	if w.Code != http.StatusCreated {
		t.Fatalf("upload failed: %d", w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/podcast/script", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("script failed: %d, body %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/podcast/audio", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("audio failed: %d, body %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Content-Type"); got != "audio/mpeg" {
		t.Errorf("Content-Type = %q", got)
	}
	if got := w.Header().Get("Content-Disposition"); !strings.Contains(got, "podcast_dual_voice.mp3") {
		t.Errorf("Content-Disposition = %q", got)
	}
	if w.Body.Len() == 0 {
		t.Error("empty audio body")
	}
	if len(synth.Calls) != 2 {
		t.Errorf("expected 2 synthesis calls, got %d", len(synth.Calls))
	}
}

func TestHandleAudio_NoScript(t *testing.T) {
	srv := newTestServer(nil, nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/podcast/audio", nil))
	if w.Code != http.StatusConflict {
		t.Errorf("audio without script should 409, got %d", w.Code)
	}
}

func TestHandleAudio_ScriptWithoutDialogue(t *testing.T) {
	client := &llm.MockClient{Responses: []string{"No speaker labels in this text."}}
	srv := newTestServer(client, nil)
	router := srv.Router()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, uploadRequest(t, map[string]string{"ep.txt": "notes"}))
	if w.Code != http.StatusCreated {
		t.Fatalf("upload failed: %d", w.Code)
	}
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/podcast/script", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("script failed: %d", w.Code)
	}
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/podcast/audio", nil))
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("unusable script should 422, got %d", w.Code)
	}
}

func TestHandleStatusAndReset(t *testing.T) {
	srv := newTestServer(nil, nil)
	router := srv.Router()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, uploadRequest(t, map[string]string{"a.txt": "some content"}))
	if w.Code != http.StatusCreated {
		t.Fatalf("upload failed: %d", w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/status", nil))
	var status struct {
		Ready  bool `json:"ready"`
		Units  int  `json:"units"`
		Chunks int  `json:"chunks"`
	}
	decodeJSON(t, w, &status)
	if !status.Ready || status.Units != 1 || status.Chunks == 0 {
		t.Errorf("status after upload: %+v", status)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/session", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("reset failed: %d", w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/status", nil))
	decodeJSON(t, w, &status)
	if status.Ready || status.Units != 0 {
		t.Errorf("status after reset: %+v", status)
	}
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(nil, nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Errorf("health: got %d", w.Code)
	}
}

package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"advisord/internal/catalog"
	"advisord/pkg/types"
)

type mockService struct {
	models      []types.Model
	resources   types.ResourcesInfo
	resErr      error
	fit         types.FitResponse
	modelErr    error
	ready       bool
	lastFit     types.FitRequest
	classified  []types.MessageRecord
	recovered   []types.MessageRecord
	disposition types.DispositionResponse
	ui          types.UIState
	closed      int
	last        *types.FitResponse
	events      []types.EventRecord
}

func (m *mockService) ListModels() []types.Model { return append([]types.Model(nil), m.models...) }
func (m *mockService) Resources(ctx context.Context) (types.ResourcesInfo, error) {
	return m.resources, m.resErr
}
func (m *mockService) Fit(ctx context.Context, req types.FitRequest) types.FitResponse {
	m.lastFit = req
	return m.fit
}
func (m *mockService) ModelFit(ctx context.Context, id string) (types.FitResponse, error) {
	if m.modelErr != nil {
		return types.FitResponse{}, m.modelErr
	}
	r := m.fit
	r.ModelID = id
	return r, nil
}
func (m *mockService) ClassifyMessage(rec types.MessageRecord) types.DispositionResponse {
	m.classified = append(m.classified, rec)
	return m.disposition
}
func (m *mockService) RecoverMessage(ctx context.Context, rec types.MessageRecord) types.DispositionResponse {
	m.recovered = append(m.recovered, rec)
	return m.disposition
}
func (m *mockService) UIState() types.UIState { return m.ui }
func (m *mockService) CloseTroubleshooting()  { m.closed++; m.ui.ModalTroubleShooting = false }
func (m *mockService) Ready() bool            { return m.ready }
func (m *mockService) LastFit() (types.FitResponse, bool) {
	if m.last == nil {
		return types.FitResponse{}, false
	}
	return *m.last, true
}
func (m *mockService) Events() []types.EventRecord { return m.events }

type mockHTTPError struct {
	msg  string
	code int
}

func (e mockHTTPError) Error() string   { return e.msg }
func (e mockHTTPError) StatusCode() int { return e.code }

func postJSON(h http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestModelsHandler(t *testing.T) {
	svc := &mockService{models: []types.Model{{ID: "m1"}, {ID: "m2"}}}
	r := NewMux(svc)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/models", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "application/json") {
		t.Fatalf("content-type=%s", ct)
	}
	var body types.ModelsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(body.Models) != 2 {
		t.Fatalf("models len=%d", len(body.Models))
	}
}

func TestModelFitHandler(t *testing.T) {
	svc := &mockService{fit: types.FitResponse{Tier: "positive", Label: "Recommended"}}
	w := httptest.NewRecorder()
	NewMux(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/models/m1/fit", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var body types.FitResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body.ModelID != "m1" || body.Label != "Recommended" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestModelFitNotFound(t *testing.T) {
	svc := &mockService{modelErr: catalog.ErrModelNotFound("m9")}
	w := httptest.NewRecorder()
	NewMux(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/models/m9/fit", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d", w.Code)
	}
	var body types.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || body.Code != http.StatusNotFound {
		t.Fatalf("unexpected error body: %s", w.Body.String())
	}
}

func TestModelFitErrorMapping(t *testing.T) {
	svc := &mockService{modelErr: mockHTTPError{msg: "teapot", code: http.StatusTeapot}}
	w := httptest.NewRecorder()
	NewMux(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/models/x/fit", nil))
	if w.Code != http.StatusTeapot {
		t.Fatalf("status=%d", w.Code)
	}
	svc.modelErr = errors.New("boom")
	w = httptest.NewRecorder()
	NewMux(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/models/x/fit", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestResourcesHandler(t *testing.T) {
	svc := &mockService{resources: types.ResourcesInfo{Mem: types.MemInfo{Total: 8}}}
	w := httptest.NewRecorder()
	NewMux(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/resources", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"total":8`) {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	svc.resErr = errors.New("probe failed")
	w = httptest.NewRecorder()
	NewMux(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/resources", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestFitHandler(t *testing.T) {
	svc := &mockService{fit: types.FitResponse{Tier: "neutral", Label: "Slow on your device"}}
	w := postJSON(NewMux(svc), "/fit", `{"required_ram":7,"total_ram":8}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if svc.lastFit.RequiredRAM != 7 || svc.lastFit.TotalRAM != 8 {
		t.Fatalf("unexpected request: %+v", svc.lastFit)
	}
	if !strings.Contains(w.Body.String(), "Slow on your device") {
		t.Fatalf("body=%s", w.Body.String())
	}
}

func TestFitRejectsNegative(t *testing.T) {
	w := postJSON(NewMux(&mockService{}), "/fit", `{"required_ram":-1}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestFitBadJSON(t *testing.T) {
	w := postJSON(NewMux(&mockService{}), "/fit", "not-json")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestFitUnsupportedMediaType(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/fit", bytes.NewBufferString(`{"required_ram":1}`))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	NewMux(&mockService{}).ServeHTTP(w, req)
	if w.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestBodyTooLarge(t *testing.T) {
	big := `{"id":"` + strings.Repeat("a", (1<<20)+10) + `"}`
	w := postJSON(NewMux(&mockService{}), "/messages/classify", big)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for too-large body, got %d", w.Code)
	}
}

func TestClassifyHandler(t *testing.T) {
	svc := &mockService{disposition: types.DispositionResponse{MessageID: "1", Disposition: "auth_error", Surface: &types.Surface{ActionLabel: "Settings"}}}
	w := postJSON(NewMux(svc), "/messages/classify", `{"id":"1","status":"error","error_code":"invalid_api_key"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if len(svc.classified) != 1 || svc.classified[0].ErrorCode != "invalid_api_key" || len(svc.recovered) != 0 {
		t.Fatalf("unexpected calls: classified=%v recovered=%v", svc.classified, svc.recovered)
	}
	var body types.DispositionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body.Disposition != "auth_error" || body.Surface == nil || body.Surface.ActionLabel != "Settings" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestRecoverHandler(t *testing.T) {
	svc := &mockService{disposition: types.DispositionResponse{MessageID: "1", Disposition: "interrupted", Executed: true}}
	w := postJSON(NewMux(svc), "/messages/recover", `{"id":"1","status":"stopped"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if len(svc.recovered) != 1 || svc.recovered[0].ID != "1" {
		t.Fatalf("expected exactly one recover call, got %v", svc.recovered)
	}
}

func TestRecoverRequiresID(t *testing.T) {
	svc := &mockService{}
	w := postJSON(NewMux(svc), "/messages/recover", `{"status":"stopped"}`)
	if w.Code != http.StatusBadRequest || len(svc.recovered) != 0 {
		t.Fatalf("status=%d recovered=%v", w.Code, svc.recovered)
	}
}

func TestUIStateAndCloseTroubleshooting(t *testing.T) {
	svc := &mockService{ui: types.UIState{SelectedSettingScreen: "openai", ModalTroubleShooting: true}}
	h := NewMux(svc)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ui/state", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"modal_troubleshooting":true`) {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/ui/troubleshooting", nil))
	if w.Code != http.StatusOK || svc.closed != 1 || !strings.Contains(w.Body.String(), `"modal_troubleshooting":false`) {
		t.Fatalf("status=%d closed=%d body=%s", w.Code, svc.closed, w.Body.String())
	}
}

func TestReadyz(t *testing.T) {
	w := httptest.NewRecorder()
	NewMux(&mockService{ready: true}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestReadyz_NotReady(t *testing.T) {
	w := httptest.NewRecorder()
	NewMux(&mockService{ready: false}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "probing") {
		t.Fatalf("body=%q", w.Body.String())
	}
}

func TestHealthz(t *testing.T) {
	w := httptest.NewRecorder()
	NewMux(&mockService{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestSecurityHeaderAndCORS(t *testing.T) {
	SetCORSOptions(true, []string{"*"}, []string{"GET", "POST", "DELETE"}, []string{"Content-Type"})
	defer SetCORSOptions(false, nil, nil, nil)
	h := NewMux(&mockService{})
	req := httptest.NewRequest(http.MethodGet, "/models", nil)
	req.Header.Set("Origin", "http://example.com")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("expected nosniff, got %q", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected CORS allow origin *, got %q", got)
	}
}

func TestLastFitHandler(t *testing.T) {
	svc := &mockService{}
	h := NewMux(svc)
	req := httptest.NewRequest(http.MethodGet, "/fit/last", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 before any assessment, got %d", w.Code)
	}

	svc.last = &types.FitResponse{Tier: "neutral", Label: "Slow on your device", Ratio: 0.9}
	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fit/last", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	var got types.FitResponse
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Tier != "neutral" || got.Label != "Slow on your device" {
		t.Fatalf("unexpected: %+v", got)
	}
}

func TestEventsHandler(t *testing.T) {
	svc := &mockService{events: []types.EventRecord{
		{ID: "e1", Name: "resend_requested", MessageID: "m1"},
		{ID: "e2", Name: "troubleshooting_modal", Fields: map[string]any{"open": true}},
	}}
	w := httptest.NewRecorder()
	NewMux(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/events", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	var got types.EventsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Events) != 2 || got.Events[0].Name != "resend_requested" || got.Events[1].Fields["open"] != true {
		t.Fatalf("unexpected: %+v", got)
	}
}

package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"health-dashboard-be/internal/middleware"
	"health-dashboard-be/internal/models"
	"health-dashboard-be/internal/report"
	"health-dashboard-be/internal/repository"
	"health-dashboard-be/internal/scoring"
	"health-dashboard-be/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAuthService struct {
	registerErr error
	loginErr    error
	meErr       error
}

func (f *fakeAuthService) Register(_ context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &models.AuthResponse{Success: true, Token: "t", User: models.UserSummary{ID: "u-1", Name: req.Name, Email: req.Email}}, nil
}

func (f *fakeAuthService) Login(_ context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &models.AuthResponse{Success: true, Token: "t", User: models.UserSummary{ID: "u-1", Email: req.Email}}, nil
}

func (f *fakeAuthService) Me(_ context.Context, userID string) (*models.UserProfile, error) {
	if f.meErr != nil {
		return nil, f.meErr
	}
	return &models.UserProfile{ID: userID, Name: "Jane"}, nil
}

type fakeHealthService struct {
	lastQuery repository.MetricQuery
	lastDays  int
	saved     *models.HealthMetricRequest
}

func (f *fakeHealthService) List(_ context.Context, _ string, q repository.MetricQuery) ([]scoring.NormalizedMetric, error) {
	f.lastQuery = q
	return []scoring.NormalizedMetric{{}}, nil
}

func (f *fakeHealthService) Save(_ context.Context, _ string, req *models.HealthMetricRequest) (*models.SaveMetricResponse, error) {
	f.saved = req
	return &models.SaveMetricResponse{Success: true, Risk: scoring.Assessment{Factors: []string{}}}, nil
}

func (f *fakeHealthService) GenerateDummy(_ context.Context, _ string, days int) ([]scoring.NormalizedMetric, error) {
	f.lastDays = days
	return make([]scoring.NormalizedMetric, days), nil
}

func (f *fakeHealthService) Stats(_ context.Context, _ string, days int) (*models.HealthStats, error) {
	f.lastDays = days
	return &models.HealthStats{TotalDays: 2}, nil
}

type fakeChatService struct {
	userID string
}

func (f *fakeChatService) Chat(_ context.Context, userID, query string) (*models.ChatResponse, error) {
	f.userID = userID
	return &models.ChatResponse{Success: true, Response: "echo: " + query, Category: service.Categorize(query)}, nil
}

func (f *fakeChatService) History(context.Context, string, int) ([]models.ChatHistoryItem, error) {
	return []models.ChatHistoryItem{{ID: "i-1"}}, nil
}

type fakeRiskService struct {
	analyzeErr error
}

func (f *fakeRiskService) Current(context.Context, string) (*models.RiskResponse, error) {
	return &models.RiskResponse{Success: true, RiskLevel: scoring.LevelLow, Factors: []string{}}, nil
}

func (f *fakeRiskService) Analyze(context.Context, string) (*models.AnalysisResponse, error) {
	if f.analyzeErr != nil {
		return nil, f.analyzeErr
	}
	return &models.AnalysisResponse{Success: true}, nil
}

type fakeReports struct {
	dir      string
	err      error
	released []*report.File
}

func (f *fakeReports) file(ext, contentType string) (*report.File, error) {
	if f.err != nil {
		return nil, f.err
	}
	name := "health-report-u-1-1." + ext
	path := filepath.Join(f.dir, name)
	if err := os.WriteFile(path, []byte("Date\n"), 0o600); err != nil {
		return nil, err
	}
	return &report.File{Path: path, Name: name, ContentType: contentType}, nil
}

func (f *fakeReports) PDF(context.Context, string, int) (*report.File, error) {
	return f.file("pdf", report.ContentTypePDF)
}

func (f *fakeReports) CSV(context.Context, string, int) (*report.File, error) {
	return f.file("csv", report.ContentTypeCSV)
}

func (f *fakeReports) Release(_ context.Context, file *report.File) {
	f.released = append(f.released, file)
}

// withUser stands in for the identity middleware.
func withUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID != "" {
			c.Set(middleware.ContextUserID, userID)
		}
		c.Next()
	}
}

func do(r http.Handler, method, url, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json %q: %v", w.Body.String(), err)
	}
	return out
}

func TestRegister(t *testing.T) {
	svc := &fakeAuthService{}
	r := gin.New()
	r.POST("/register", NewAuthController(svc, zerolog.Nop()).Register)

	w := do(r, http.MethodPost, "/register", `{"name":"Jane","email":"jane@example.com","password":"secret1"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = do(r, http.MethodPost, "/register", `{"name":"J","email":"not-an-email","password":"123"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	body := decode(t, w)
	details, ok := body["details"].([]any)
	if !ok || len(details) != 3 {
		t.Fatalf("expected three field errors, got %v", body["details"])
	}
	first := details[0].(map[string]any)
	if first["field"] != "name" {
		t.Fatalf("expected json field names, got %v", first)
	}

	svc.registerErr = service.ErrUserExists
	w = do(r, http.MethodPost, "/register", `{"name":"Jane","email":"jane@example.com","password":"secret1"}`)
	if w.Code != http.StatusBadRequest || decode(t, w)["error"] != "User already exists" {
		t.Fatalf("unexpected duplicate response: %d %s", w.Code, w.Body.String())
	}
}

func TestLoginAndMe(t *testing.T) {
	svc := &fakeAuthService{loginErr: service.ErrInvalidCredentials, meErr: service.ErrUserNotFound}
	ac := NewAuthController(svc, zerolog.Nop())
	r := gin.New()
	r.POST("/login", ac.Login)
	r.GET("/me", withUser("u-1"), ac.Me)

	w := do(r, http.MethodPost, "/login", `{"email":"jane@example.com","password":"wrong"}`)
	if w.Code != http.StatusUnauthorized || decode(t, w)["error"] != "Invalid credentials" {
		t.Fatalf("unexpected login response: %d %s", w.Code, w.Body.String())
	}

	if w := do(r, http.MethodGet, "/me", ""); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	svc.meErr = errors.New("db down")
	w = do(r, http.MethodGet, "/me", "")
	if w.Code != http.StatusInternalServerError || strings.Contains(w.Body.String(), "db down") {
		t.Fatalf("internal error leaked or wrong status: %d %s", w.Code, w.Body.String())
	}
}

func TestHealthRoutes(t *testing.T) {
	svc := &fakeHealthService{}
	hc := NewHealthController(svc, zerolog.Nop())
	r := gin.New()
	r.Use(withUser("u-1"))
	r.GET("/health", hc.List)
	r.POST("/health", hc.Save)
	r.GET("/health/dummy", hc.Dummy)
	r.GET("/health/stats", hc.Stats)

	w := do(r, http.MethodGet, "/health?startDate=2024-03-01&endDate=2024-03-10T00:00:00Z&limit=5", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if svc.lastQuery.From == nil || svc.lastQuery.From.Day() != 1 || svc.lastQuery.Limit != 5 {
		t.Fatalf("unexpected query: %+v", svc.lastQuery)
	}
	if body := decode(t, w); body["success"] != true || body["count"] != float64(1) {
		t.Fatalf("unexpected body: %v", body)
	}

	if w := do(r, http.MethodGet, "/health?startDate=yesterday", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad date, got %d", w.Code)
	}

	w = do(r, http.MethodPost, "/health", `{"heartRate":300,"bloodPressure":{"systolic":20}}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"field":"heartRate"`) || !strings.Contains(w.Body.String(), `"field":"bloodPressure.systolic"`) {
		t.Fatalf("unexpected details: %s", w.Body.String())
	}

	w = do(r, http.MethodPost, "/health", `{"heartRate":72,"steps":0}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if svc.saved.Steps == nil || *svc.saved.Steps != 0 || svc.saved.SleepHours != nil {
		t.Fatalf("zero and absent values must be kept apart: %+v", svc.saved)
	}

	if w := do(r, http.MethodGet, "/health/dummy?days=3", ""); w.Code != http.StatusOK || svc.lastDays != 3 {
		t.Fatalf("unexpected dummy response: %d days=%d", w.Code, svc.lastDays)
	}

	w = do(r, http.MethodGet, "/health/stats", "")
	if w.Code != http.StatusOK || svc.lastDays != service.DefaultWindowDays {
		t.Fatalf("unexpected stats response: %d days=%d", w.Code, svc.lastDays)
	}
	if stats := decode(t, w)["stats"].(map[string]any); stats["totalDays"] != float64(2) {
		t.Fatalf("unexpected stats: %v", stats)
	}
}

func TestChatRoutes(t *testing.T) {
	svc := &fakeChatService{}
	cc := NewChatController(svc, zerolog.Nop())
	r := gin.New()
	r.POST("/chat", cc.Chat)
	r.GET("/chat/history", withUser("u-1"), cc.History)

	w := do(r, http.MethodPost, "/chat", `{"query":"best workout?"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if body := decode(t, w); body["category"] != "exercise" || svc.userID != "" {
		t.Fatalf("unexpected anonymous chat: %v user=%q", body, svc.userID)
	}

	if w := do(r, http.MethodPost, "/chat", `{"query":""}`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty query, got %d", w.Code)
	}
	long := strings.Repeat("a", 1001)
	if w := do(r, http.MethodPost, "/chat", `{"query":"`+long+`"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for long query, got %d", w.Code)
	}

	w = do(r, http.MethodGet, "/chat/history", "")
	if body := decode(t, w); w.Code != http.StatusOK || body["count"] != float64(1) {
		t.Fatalf("unexpected history: %d %v", w.Code, body)
	}
}

func TestRiskRoutes(t *testing.T) {
	svc := &fakeRiskService{analyzeErr: service.ErrNoHealthData}
	rc := NewRiskController(svc, zerolog.Nop())
	r := gin.New()
	r.Use(withUser("u-1"))
	r.GET("/risk", rc.Current)
	r.POST("/risk/analyze", rc.Analyze)

	if w := do(r, http.MethodGet, "/risk", ""); w.Code != http.StatusOK || decode(t, w)["riskLevel"] != "low" {
		t.Fatalf("unexpected risk response: %d %s", w.Code, w.Body.String())
	}
	if w := do(r, http.MethodPost, "/risk/analyze", ""); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	svc.analyzeErr = errors.New("backend down")
	if w := do(r, http.MethodPost, "/risk/analyze", ""); w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestReportRoutes(t *testing.T) {
	reports := &fakeReports{dir: t.TempDir()}
	rc := NewReportController(reports, zerolog.Nop())
	r := gin.New()
	r.Use(withUser("u-1"))
	r.GET("/report/csv", rc.CSV)
	r.GET("/report/pdf", rc.PDF)

	w := do(r, http.MethodGet, "/report/csv?days=7", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") || !strings.Contains(cd, "health-report-u-1-1.csv") {
		t.Fatalf("unexpected Content-Disposition %q", cd)
	}
	if !strings.HasPrefix(w.Header().Get("Content-Type"), "text/csv") || w.Body.String() != "Date\n" {
		t.Fatalf("unexpected body: %q (%s)", w.Body.String(), w.Header().Get("Content-Type"))
	}
	if len(reports.released) != 1 {
		t.Fatalf("expected file to be released for cleanup, got %d", len(reports.released))
	}

	reports.err = report.ErrNoData
	if w := do(r, http.MethodGet, "/report/csv", ""); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/report/pdf?days=abc", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	momentum "github.com/momentumhq/momentum"
	"github.com/momentumhq/momentum/internal/api"
	"github.com/momentumhq/momentum/store/memory"
)

func setupServer(t *testing.T) *httptest.Server {
	t.Helper()

	e := momentum.New(memory.New())
	if err := e.Start(context.Background()); err != nil {
		t.Fatalf("engine start: %v", err)
	}
	t.Cleanup(func() { _ = e.Stop() })

	h := api.NewHandler(e, api.NewAuth("test-secret", 0))
	srv := httptest.NewServer(h.Router())
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, srv *httptest.Server, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req, err := http.NewRequest(method, srv.URL+path, &buf)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })

	var m map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&m)
	return resp, m
}

// registerUser registers an account and returns its bearer token.
func registerUser(t *testing.T, srv *httptest.Server, email string) string {
	t.Helper()

	resp, m := doJSON(t, srv, http.MethodPost, "/v1/auth/register", "", map[string]string{
		"email":    email,
		"name":     "Test User",
		"password": "correct horse battery",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status = %d, body %v", resp.StatusCode, m)
	}
	token, _ := m["token"].(string)
	if token == "" {
		t.Fatal("register returned no token")
	}
	return token
}

func TestHealth(t *testing.T) {
	srv := setupServer(t)

	resp, m := doJSON(t, srv, http.MethodGet, "/healthz", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if m["status"] != "ok" {
		t.Errorf("status body = %v, want ok", m["status"])
	}
}

func TestAuthRequired(t *testing.T) {
	srv := setupServer(t)

	resp, _ := doJSON(t, srv, http.MethodGet, "/v1/tasks", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}

	resp, _ = doJSON(t, srv, http.MethodGet, "/v1/tasks", "not-a-token", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("bad token status = %d, want 401", resp.StatusCode)
	}
}

func TestRegisterValidation(t *testing.T) {
	srv := setupServer(t)

	resp, _ := doJSON(t, srv, http.MethodPost, "/v1/auth/register", "", map[string]string{
		"email":    "not-an-address",
		"password": "correct horse battery",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad email status = %d, want 400", resp.StatusCode)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	srv := setupServer(t)
	registerUser(t, srv, "dup@example.com")

	resp, _ := doJSON(t, srv, http.MethodPost, "/v1/auth/register", "", map[string]string{
		"email":    "dup@example.com",
		"password": "correct horse battery",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("duplicate status = %d, want 409", resp.StatusCode)
	}
}

func TestLogin(t *testing.T) {
	srv := setupServer(t)
	registerUser(t, srv, "login@example.com")

	resp, m := doJSON(t, srv, http.MethodPost, "/v1/auth/login", "", map[string]string{
		"email":    "login@example.com",
		"password": "correct horse battery",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d", resp.StatusCode)
	}
	if m["token"] == "" {
		t.Error("login returned no token")
	}

	resp, _ = doJSON(t, srv, http.MethodPost, "/v1/auth/login", "", map[string]string{
		"email":    "login@example.com",
		"password": "wrong",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("bad password status = %d, want 401", resp.StatusCode)
	}
}

func TestTaskLifecycle(t *testing.T) {
	srv := setupServer(t)
	token := registerUser(t, srv, "tasks@example.com")

	resp, m := doJSON(t, srv, http.MethodPost, "/v1/tasks", token, map[string]any{
		"title":         "write report",
		"reward_points": 15,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, body %v", resp.StatusCode, m)
	}
	taskID := m["id"].(string)

	resp, m = doJSON(t, srv, http.MethodPost, "/v1/tasks/"+taskID+"/complete", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("complete status = %d, body %v", resp.StatusCode, m)
	}
	if got := m["balance"].(float64); got != 15 {
		t.Errorf("balance after completion = %v, want 15", got)
	}

	// second completion conflicts and must not credit again
	resp, _ = doJSON(t, srv, http.MethodPost, "/v1/tasks/"+taskID+"/complete", token, nil)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("double complete status = %d, want 409", resp.StatusCode)
	}

	resp, m = doJSON(t, srv, http.MethodGet, "/v1/rewards/balance", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("balance status = %d", resp.StatusCode)
	}
	if got := m["balance"].(float64); got != 15 {
		t.Errorf("balance = %v, want 15", got)
	}
}

func TestTaskInvalidID(t *testing.T) {
	srv := setupServer(t)
	token := registerUser(t, srv, "badid@example.com")

	resp, _ := doJSON(t, srv, http.MethodGet, "/v1/tasks/garbage", token, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestSessionLifecycle(t *testing.T) {
	srv := setupServer(t)
	token := registerUser(t, srv, "focus@example.com")

	resp, m := doJSON(t, srv, http.MethodPost, "/v1/sessions", token, map[string]any{
		"planned_minutes": 25,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("start status = %d, body %v", resp.StatusCode, m)
	}
	sessionID := m["id"].(string)

	resp, m = doJSON(t, srv, http.MethodPost, "/v1/sessions/"+sessionID+"/complete", token, map[string]any{
		"focus_minutes": 25,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("complete status = %d, body %v", resp.StatusCode, m)
	}
	if got := m["balance"].(float64); got != 25 {
		t.Errorf("balance = %v, want 25", got)
	}

	resp, _ = doJSON(t, srv, http.MethodPost, "/v1/sessions/"+sessionID+"/abandon", token, map[string]any{})
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("abandon after complete status = %d, want 409", resp.StatusCode)
	}
}

func TestMoodLog(t *testing.T) {
	srv := setupServer(t)
	token := registerUser(t, srv, "mood@example.com")

	resp, _ := doJSON(t, srv, http.MethodPost, "/v1/moods", token, map[string]string{
		"mood": "focused",
		"note": "deep work",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("log status = %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, srv, http.MethodPost, "/v1/moods", token, map[string]string{
		"mood": "ecstatic",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("unknown mood status = %d, want 400", resp.StatusCode)
	}

	resp, m := doJSON(t, srv, http.MethodGet, "/v1/moods", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d", resp.StatusCode)
	}
	if moods := m["moods"].([]any); len(moods) != 1 {
		t.Errorf("moods = %d, want 1", len(moods))
	}
}

func TestPurchaseFlow(t *testing.T) {
	srv := setupServer(t)
	token := registerUser(t, srv, "buyer@example.com")

	// zero balance: any purchase is declined
	resp, _ := doJSON(t, srv, http.MethodPost, "/v1/rewards/purchase", token, map[string]string{
		"item": "Snack Break",
	})
	if resp.StatusCode != http.StatusPaymentRequired {
		t.Fatalf("broke purchase status = %d, want 402", resp.StatusCode)
	}

	// earn 30 points from a task
	_, m := doJSON(t, srv, http.MethodPost, "/v1/tasks", token, map[string]any{
		"title":         "earn",
		"reward_points": 30,
	})
	taskID := m["id"].(string)
	doJSON(t, srv, http.MethodPost, "/v1/tasks/"+taskID+"/complete", token, nil)

	resp, m = doJSON(t, srv, http.MethodPost, "/v1/rewards/purchase", token, map[string]string{
		"item": "Snack Break",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("purchase status = %d, body %v", resp.StatusCode, m)
	}
	if got := m["balance"].(float64); got != 10 {
		t.Errorf("balance after purchase = %v, want 10", got)
	}

	resp, _ = doJSON(t, srv, http.MethodPost, "/v1/rewards/purchase", token, map[string]string{
		"item": "No Such Item",
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown item status = %d, want 404", resp.StatusCode)
	}

	resp, m = doJSON(t, srv, http.MethodGet, "/v1/rewards/history", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("history status = %d", resp.StatusCode)
	}
	if purchases := m["purchases"].([]any); len(purchases) != 1 {
		t.Errorf("purchases = %d, want 1", len(purchases))
	}
}

func TestCatalog(t *testing.T) {
	srv := setupServer(t)
	token := registerUser(t, srv, "catalog@example.com")

	resp, m := doJSON(t, srv, http.MethodGet, "/v1/rewards/catalog", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("catalog status = %d", resp.StatusCode)
	}
	if items := m["items"].([]any); len(items) == 0 {
		t.Error("catalog is empty")
	}
}

func TestSummary(t *testing.T) {
	srv := setupServer(t)
	token := registerUser(t, srv, "summary@example.com")

	_, m := doJSON(t, srv, http.MethodPost, "/v1/tasks", token, map[string]any{
		"title":         "one",
		"reward_points": 10,
	})
	taskID := m["id"].(string)
	doJSON(t, srv, http.MethodPost, "/v1/tasks/"+taskID+"/complete", token, nil)

	resp, m := doJSON(t, srv, http.MethodGet, "/v1/analytics/summary", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("summary status = %d", resp.StatusCode)
	}
	if got := m["tasks_completed"].(float64); got != 1 {
		t.Errorf("tasks_completed = %v, want 1", got)
	}
	if got := m["points_earned"].(float64); got != 10 {
		t.Errorf("points_earned = %v, want 10", got)
	}
}

func TestMusicNotConfigured(t *testing.T) {
	srv := setupServer(t)
	token := registerUser(t, srv, "music@example.com")

	resp, _ := doJSON(t, srv, http.MethodGet, "/v1/music/suggestions?mood=focused", token, nil)
	if resp.StatusCode != http.StatusNotImplemented {
		t.Errorf("status = %d, want 501", resp.StatusCode)
	}
}

func TestMe(t *testing.T) {
	srv := setupServer(t)
	token := registerUser(t, srv, "me@example.com")

	resp, m := doJSON(t, srv, http.MethodGet, "/v1/me", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if m["email"] != "me@example.com" {
		t.Errorf("email = %v, want me@example.com", m["email"])
	}
}

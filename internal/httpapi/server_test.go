package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fintrack/internal/session"
	"fintrack/internal/store/memory"
	"fintrack/internal/tracker"
)

func newTestServer() *Server {
	svc := tracker.New(memory.New(), session.NewHolder())
	return NewServer(":0", svc, nil)
}

type testEnvelope struct {
	OK    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func doJSON(t *testing.T, srv *Server, method, path, body string) (int, testEnvelope) {
	t.Helper()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	srv.Handler.ServeHTTP(rr, req)

	var env testEnvelope
	if rr.Body.Len() > 0 {
		if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode envelope for %s %s: %v (body=%s)", method, path, err, rr.Body.String())
		}
	}
	return rr.Code, env
}

func TestHealthProbes(t *testing.T) {
	srv := newTestServer()
	for _, path := range []string{"/healthz", "/readyz"} {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		srv.Handler.ServeHTTP(rr, req)
		if rr.Code != 200 {
			t.Fatalf("%s status=%d", path, rr.Code)
		}
	}
}

func TestRegisterLoginAddBalanceFlow(t *testing.T) {
	srv := newTestServer()

	code, env := doJSON(t, srv, http.MethodPost, "/api/register", `{"username":"ada","password":"secret"}`)
	if code != 200 || !env.OK {
		t.Fatalf("register status=%d ok=%v", code, env.OK)
	}
	var msg map[string]string
	if err := json.Unmarshal(env.Data, &msg); err != nil {
		t.Fatalf("register data: %v", err)
	}
	if msg["message"] != "ada added successfully." {
		t.Fatalf("register message=%q", msg["message"])
	}

	code, env = doJSON(t, srv, http.MethodPost, "/api/login", `{"username":"ada","password":"secret"}`)
	if code != 200 || !env.OK {
		t.Fatalf("login status=%d ok=%v", code, env.OK)
	}

	code, env = doJSON(t, srv, http.MethodGet, "/api/me", "")
	if code != 200 {
		t.Fatalf("me status=%d", code)
	}
	if err := json.Unmarshal(env.Data, &msg); err != nil {
		t.Fatalf("me data: %v", err)
	}
	if msg["username"] != "ada" {
		t.Fatalf("me username=%q", msg["username"])
	}

	code, _ = doJSON(t, srv, http.MethodPost, "/api/income", `{"name":"salary","amount":120,"description":"july","location":"bank"}`)
	if code != 200 {
		t.Fatalf("add income status=%d", code)
	}

	code, env = doJSON(t, srv, http.MethodGet, "/api/balance", "")
	if code != 200 {
		t.Fatalf("balance status=%d", code)
	}
	var bal balanceResponse
	if err := json.Unmarshal(env.Data, &bal); err != nil {
		t.Fatalf("balance data: %v", err)
	}
	if bal.Display != "120 Surplus" {
		t.Fatalf("balance display=%q", bal.Display)
	}

	code, env = doJSON(t, srv, http.MethodGet, "/api/income", "")
	if code != 200 {
		t.Fatalf("list income status=%d", code)
	}
	var items []map[string]any
	if err := json.Unmarshal(env.Data, &items); err != nil {
		t.Fatalf("list income data: %v", err)
	}
	if len(items) != 1 || items[0]["name"] != "salary" {
		t.Fatalf("list income items=%v", items)
	}
}

func TestErrorStatusMapping(t *testing.T) {
	srv := newTestServer()

	// No session yet
	code, env := doJSON(t, srv, http.MethodGet, "/api/balance", "")
	if code != http.StatusUnauthorized {
		t.Fatalf("no session balance status=%d", code)
	}
	if env.Error == nil || env.Error.Code != "NoSession" {
		t.Fatalf("no session error=%+v", env.Error)
	}

	// Blank credentials
	code, env = doJSON(t, srv, http.MethodPost, "/api/register", `{"username":"","password":""}`)
	if code != http.StatusUnprocessableEntity {
		t.Fatalf("blank register status=%d", code)
	}
	if env.Error == nil || env.Error.Code != "InvalidInput" {
		t.Fatalf("blank register error=%+v", env.Error)
	}

	// Duplicate registration
	if code, _ := doJSON(t, srv, http.MethodPost, "/api/register", `{"username":"ada","password":"secret"}`); code != 200 {
		t.Fatalf("first register status=%d", code)
	}
	code, env = doJSON(t, srv, http.MethodPost, "/api/register", `{"username":"ada","password":"other"}`)
	if code != http.StatusConflict {
		t.Fatalf("duplicate register status=%d", code)
	}
	if env.Error == nil || env.Error.Code != "DuplicateUser" {
		t.Fatalf("duplicate register error=%+v", env.Error)
	}

	// Unknown user
	code, env = doJSON(t, srv, http.MethodPost, "/api/login", `{"username":"ghost","password":"secret"}`)
	if code != http.StatusNotFound {
		t.Fatalf("unknown login status=%d", code)
	}
	if env.Error == nil || env.Error.Code != "UserNotFound" {
		t.Fatalf("unknown login error=%+v", env.Error)
	}

	// Wrong password
	code, env = doJSON(t, srv, http.MethodPost, "/api/login", `{"username":"ada","password":"wrong"}`)
	if code != http.StatusUnauthorized {
		t.Fatalf("wrong password status=%d", code)
	}
	if env.Error == nil || env.Error.Code != "InvalidCredentials" {
		t.Fatalf("wrong password error=%+v", env.Error)
	}

	// Invalid payload once logged in
	if code, _ := doJSON(t, srv, http.MethodPost, "/api/login", `{"username":"ada","password":"secret"}`); code != 200 {
		t.Fatalf("login status=%d", code)
	}
	code, env = doJSON(t, srv, http.MethodPost, "/api/expenses", `{"name":"","amount":5,"description":"d","location":"l"}`)
	if code != http.StatusUnprocessableEntity {
		t.Fatalf("invalid payload status=%d", code)
	}
	if env.Error == nil || env.Error.Code != "InvalidPayload" {
		t.Fatalf("invalid payload error=%+v", env.Error)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer()

	code, env := doJSON(t, srv, http.MethodDelete, "/api/register", "")
	if code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", code)
	}
	if env.Error == nil || env.Error.Code != "MethodNotAllowed" {
		t.Fatalf("error=%+v", env.Error)
	}

	code, _ = doJSON(t, srv, http.MethodPost, "/api/balance", "")
	if code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 for POST balance, got %d", code)
	}
}

func TestMalformedBody(t *testing.T) {
	srv := newTestServer()

	code, env := doJSON(t, srv, http.MethodPost, "/api/register", `{not json`)
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if env.Error == nil || env.Error.Code != "MalformedBody" {
		t.Fatalf("error=%+v", env.Error)
	}
}

func TestSecurityHeaders(t *testing.T) {
	srv := newTestServer()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	srv.Handler.ServeHTTP(rr, req)

	if got := rr.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("X-Content-Type-Options=%q", got)
	}
	if got := rr.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Fatalf("X-Frame-Options=%q", got)
	}
}

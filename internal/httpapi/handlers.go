package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"fintrack/internal/core"
)

// credentialsRequest is the body of register and login calls.
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func methodNotAllowed(w http.ResponseWriter, allowed string) {
	w.Header().Set("Allow", allowed)
	writeJSON(w, http.StatusMethodNotAllowed, envelope{OK: false, Error: &apiError{
		Code:    "MethodNotAllowed",
		Message: "method not allowed",
	}})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, envelope{OK: false, Error: &apiError{
			Code:    "MalformedBody",
			Message: "request body is not valid JSON",
		}})
		return false
	}
	return true
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}
	var req credentialsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	msg, err := s.svc.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, map[string]string{"message": msg})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}
	var req credentialsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	msg, err := s.svc.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, map[string]string{"message": msg})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}

	msg, err := s.svc.Logout(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, map[string]string{"message": msg})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	username, err := s.svc.CurrentUsername(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, map[string]string{"username": username})
}

// handleIncome serves both the income list (GET) and income creation (POST).
func (s *Server) handleIncome(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		items, err := s.svc.ListIncome(r.Context())
		if err != nil {
			respondError(w, r, err)
			return
		}
		respondData(w, items)
	case http.MethodPost:
		s.addTransaction(w, r, s.svc.AddIncome)
	default:
		methodNotAllowed(w, "GET, POST")
	}
}

// handleExpenses serves both the expense list (GET) and expense creation (POST).
func (s *Server) handleExpenses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		items, err := s.svc.ListExpenses(r.Context())
		if err != nil {
			respondError(w, r, err)
			return
		}
		respondData(w, items)
	case http.MethodPost:
		s.addTransaction(w, r, s.svc.AddExpense)
	default:
		methodNotAllowed(w, "GET, POST")
	}
}

func (s *Server) addTransaction(w http.ResponseWriter, r *http.Request, add func(ctx context.Context, p core.TransactionPayload) (string, error)) {
	var payload core.TransactionPayload
	if !decodeBody(w, r, &payload) {
		return
	}

	msg, err := add(r.Context(), payload)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, map[string]string{"message": msg})
}

func (s *Server) handleIncomeForMonth(w http.ResponseWriter, r *http.Request) {
	s.listHandler(w, r, s.svc.ListIncomeForCurrentMonth)
}

func (s *Server) handleExpensesForMonth(w http.ResponseWriter, r *http.Request) {
	s.listHandler(w, r, s.svc.ListExpensesForCurrentMonth)
}

func (s *Server) listHandler(w http.ResponseWriter, r *http.Request, list func(ctx context.Context) ([]core.Transaction, error)) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	items, err := list(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, items)
}

func (s *Server) handleTransactionsForYear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	items, err := s.svc.ListTransactionsForCurrentYear(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, items)
}

// balanceResponse renders a balance with both structured fields and the
// human-readable form, e.g. "120 Surplus".
type balanceResponse struct {
	Amount  float64 `json:"amount"`
	Verdict string  `json:"verdict"`
	Display string  `json:"display"`
}

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	s.balanceHandler(w, r, s.svc.Balance)
}

func (s *Server) handleBalanceForDay(w http.ResponseWriter, r *http.Request) {
	s.balanceHandler(w, r, s.svc.BalanceForCurrentDay)
}

func (s *Server) handleBalanceForMonth(w http.ResponseWriter, r *http.Request) {
	s.balanceHandler(w, r, s.svc.BalanceForCurrentMonth)
}

func (s *Server) handleBalanceForYear(w http.ResponseWriter, r *http.Request) {
	s.balanceHandler(w, r, s.svc.BalanceForCurrentYear)
}

func (s *Server) balanceHandler(w http.ResponseWriter, r *http.Request, compute func(ctx context.Context) (core.Balance, error)) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	b, err := compute(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, balanceResponse{
		Amount:  b.Amount,
		Verdict: string(b.Verdict),
		Display: b.String(),
	})
}

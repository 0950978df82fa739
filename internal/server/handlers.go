package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rickgao/verf-report/internal/auth"
	"github.com/rickgao/verf-report/internal/report"
	"github.com/rickgao/verf-report/internal/version"
)

type reportRequest struct {
	WalletAddress  string `json:"wallet_address"`
	NetworkTxnHash string `json:"network_txn_hash"`
}

// handleReport validates the identifiers before any database is touched.
// A panic while generating maps to the same 400 as a malformed body.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	wallet := report.Normalize(req.WalletAddress)
	hash := report.Normalize(req.NetworkTxnHash)
	if wallet == "" || hash == "" {
		respondError(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	result, err := s.generate(r, wallet, hash)
	if err != nil {
		s.logger.Error("report generation failed",
			"error", err,
			"request_id", RequestID(r.Context()),
		)
		respondError(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) generate(r *http.Request, wallet, hash string) (result report.Result, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("generate panicked: %v", v)
		}
	}()
	return s.deps.Reports.Generate(r.Context(), wallet, hash), nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Success bool      `json:"success"`
	User    auth.User `json:"user"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(w, r, &req); err != nil || req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	user, err := s.deps.Auth.Authenticate(req.Email, req.Password)
	if err != nil {
		s.logger.Warn("login rejected", "request_id", RequestID(r.Context()))
		respondError(w, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	token, expiresAt, err := s.deps.Auth.IssueToken(user)
	if err != nil {
		s.logger.Error("issue session token", "error", err)
		respondError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	http.SetCookie(w, s.sessionCookie(token, expiresAt))
	s.logger.Info("operator logged in", "email", user.Email)
	respondJSON(w, http.StatusOK, sessionResponse{Success: true, User: user})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	c := s.sessionCookie("", time.Unix(0, 0))
	c.MaxAge = -1
	http.SetCookie(w, c)
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	respondJSON(w, http.StatusOK, sessionResponse{Success: true, User: user})
}

func (s *Server) sessionCookie(value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     s.opts.CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   s.opts.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}

type brandResponse struct {
	Name              string `json:"name"`
	Primary           string `json:"primary"`
	Secondary         string `json:"secondary"`
	Light             string `json:"light"`
	Dark              string `json:"dark"`
	ConvertMicroUnits bool   `json:"convert_micro_units"`
}

func (s *Server) handleBrand(w http.ResponseWriter, r *http.Request) {
	b := s.deps.Brand
	respondJSON(w, http.StatusOK, brandResponse{
		Name:              b.Name,
		Primary:           b.Primary,
		Secondary:         b.Secondary,
		Light:             b.Light,
		Dark:              b.Dark,
		ConvertMicroUnits: s.deps.ConvertUnit,
	})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, version.Get())
}

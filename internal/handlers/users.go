package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mkowal/todoapi/internal/services"
)

type UserHandler struct {
	accounts *services.AccountService
}

func NewUserHandler(accounts *services.AccountService) *UserHandler {
	return &UserHandler{accounts: accounts}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account and immediately logs it in: the fresh token
// rides back in the x-auth header, the body carries only the public fields.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	account, err := h.accounts.Register(r.Context(), req.Email, req.Password)
	if errors.Is(err, services.ErrValidation) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if errors.Is(err, services.ErrEmailExists) {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		writeServerError(w, err)
		return
	}

	token, err := h.accounts.GenerateToken(r.Context(), account)
	if err != nil {
		writeServerError(w, err)
		return
	}

	w.Header().Set(AuthHeader, token)
	writeJSON(w, http.StatusOK, account.Public())
}

// Login responds with a fresh token on success and a bare 400 otherwise,
// with no hint whether the email or the password was at fault.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	account, err := h.accounts.FindByCredentials(r.Context(), req.Email, req.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if err != nil {
		writeServerError(w, err)
		return
	}

	token, err := h.accounts.GenerateToken(r.Context(), account)
	if err != nil {
		writeServerError(w, err)
		return
	}

	w.Header().Set(AuthHeader, token)
	writeJSON(w, http.StatusOK, account.Public())
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	account, ok := AccountFrom(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, account.Public())
}

// Logout revokes exactly the token this request authenticated with. Other
// sessions stay logged in.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	account, ok := AccountFrom(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	token, ok := TokenFrom(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	if err := h.accounts.RevokeToken(r.Context(), account, token); err != nil {
		writeServerError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// LogoutAll revokes every token the account holds.
func (h *UserHandler) LogoutAll(w http.ResponseWriter, r *http.Request) {
	account, ok := AccountFrom(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	if err := h.accounts.RevokeAllTokens(r.Context(), account); err != nil {
		writeServerError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

package httpx

import (
	"net/http"

	"github.com/ariefcatur/restopro-backoffice/internal/auth"
	"github.com/go-chi/chi/v5"
)

type AuthHandler struct {
	Issuer *auth.Issuer
}

type loginReq struct {
	Username string `json:"username"`
}

type loginResp struct {
	User  auth.User `json:"user"`
	Token string    `json:"token"`
}

func (h *AuthHandler) Register(r chi.Router) {
	r.Post("/auth/login", h.login)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	u, tok, err := h.Issuer.Login(req.Username)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "login disabled")
		return
	}
	writeJSON(w, http.StatusOK, loginResp{User: u, Token: tok})
}

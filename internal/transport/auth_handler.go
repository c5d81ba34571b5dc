package transport

import (
	"errors"
	"net/http"
	"strings"

	"nevyra-be/internal/user"
)

type AuthHandler struct {
	userSvc user.Service
}

func NewAuthHandler(userSvc user.Service) *AuthHandler {
	return &AuthHandler{userSvc: userSvc}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string `json:"token"`
	User  struct {
		ID    int    `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role"`
	} `json:"user"`
}

func newAuthResponse(token string, u user.User) authResponse {
	var resp authResponse
	resp.Token = token
	resp.User.ID = u.ID
	resp.User.Name = u.Name
	resp.User.Email = u.Email
	resp.User.Role = string(u.Role)
	return resp
}

func setAccessCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "name, email and password are required")
		return
	}

	token, u, err := h.userSvc.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrEmailExists) {
			respondError(w, http.StatusConflict, user.ErrEmailExists.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "registration failed")
		return
	}

	setAccessCookie(w, token)
	respondData(w, http.StatusCreated, newAuthResponse(token, u))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	token, u, err := h.userSvc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	setAccessCookie(w, token)
	respondData(w, http.StatusOK, newAuthResponse(token, u))
}

package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/nomadscompass/backend/internal/middleware"
	"github.com/nomadscompass/backend/internal/service"
)

// registerRequest is the JSON body for POST /users/register.
type registerRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	FullName        string `json:"full_name"`
	InstagramHandle string `json:"instagram_handle"`
}

// handleRegister handles POST /users/register.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	user, err := s.users.Register(r.Context(), service.RegisterInput{
		Email:           req.Email,
		Password:        req.Password,
		FullName:        req.FullName,
		InstagramHandle: req.InstagramHandle,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, user)
}

// tokenResponse is the JSON body returned by POST /token.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// handleToken handles POST /token. It accepts either a JSON body with
// email/password or a form body with username/password, the latter for
// OAuth2 password-flow clients.
func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	email, password, ok := credentialsFromRequest(r)
	if !ok {
		respondBadRequest(w, "missing credentials")
		return
	}

	token, _, err := s.users.Authenticate(r.Context(), email, password)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

// credentialsFromRequest extracts login credentials from a JSON or
// form-encoded request body.
func credentialsFromRequest(r *http.Request) (email, password string, ok bool) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/json") {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return "", "", false
		}
		return req.Email, req.Password, req.Email != ""
	}

	if err := r.ParseForm(); err != nil {
		return "", "", false
	}
	email = r.PostFormValue("username")
	return email, r.PostFormValue("password"), email != ""
}

// handleMe handles GET /users/me.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, errMissingIdentity)
		return
	}

	user, err := s.users.GetByID(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// updateMeRequest is the JSON body for PUT /users/me. Absent fields are
// left unchanged; present-but-empty fields clear the value.
type updateMeRequest struct {
	FullName        *string `json:"full_name"`
	InstagramHandle *string `json:"instagram_handle"`
	Password        *string `json:"password"`
}

// handleUpdateMe handles PUT /users/me.
func (s *Server) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, errMissingIdentity)
		return
	}

	var req updateMeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	user, err := s.users.UpdateProfile(r.Context(), userID, service.UpdateProfileInput{
		FullName:        req.FullName,
		InstagramHandle: req.InstagramHandle,
		Password:        req.Password,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

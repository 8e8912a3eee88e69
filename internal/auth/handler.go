package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"

	"github.com/saifaleee/MetroArt/internal/response"
	"github.com/saifaleee/MetroArt/internal/user"
)

// usernameRegex matches valid usernames (letters, digits, underscore, 3-30 chars).
var usernameRegex = regexp.MustCompile(`^[A-Za-z0-9_]{3,30}$`)

// emailRegex is a pragmatic email shape check; uniqueness is enforced by the database.
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const minPasswordLen = 8

// Handler holds HTTP handlers for auth endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new auth Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type registerRequest struct {
	Username string `json:"username" example:"claramonet"`
	Email    string `json:"email"    example:"clara@example.com"`
	Password string `json:"password" example:"correct-horse"`
}

type loginRequest struct {
	Email    string `json:"email"    example:"clara@example.com"`
	Password string `json:"password" example:"correct-horse"`
}

type sessionData struct {
	Token string    `json:"token" example:"eyJhbGci..."`
	User  user.User `json:"user"`
}

// Register godoc
//
//	@Summary		Register new user
//	@Description	Create a new artist account and issue a bearer token.
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		registerRequest	true	"Registration details"
//	@Success		201		{object}	response.Envelope{data=sessionData}
//	@Failure		400		{object}	response.Envelope
//	@Failure		409		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if !usernameRegex.MatchString(req.Username) {
		response.BadRequest(w, "username must be 3-30 characters of letters, digits, or underscore")
		return
	}
	if !emailRegex.MatchString(req.Email) {
		response.BadRequest(w, "invalid email address")
		return
	}
	if len(req.Password) < minPasswordLen {
		response.BadRequest(w, "password must be at least 8 characters")
		return
	}

	token, u, err := h.svc.Register(r.Context(), req.Username, req.Email, req.Password)
	if errors.Is(err, user.ErrAlreadyExists) {
		response.Conflict(w, "username or email already registered")
		return
	}
	if err != nil {
		response.InternalError(w)
		return
	}

	response.Created(w, map[string]interface{}{
		"token": token,
		"user":  u,
	})
}

// Login godoc
//
//	@Summary		Log in
//	@Description	Validate email and password and issue a bearer token.
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		loginRequest	true	"Credentials"
//	@Success		200		{object}	response.Envelope{data=sessionData}
//	@Failure		400		{object}	response.Envelope
//	@Failure		401		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		response.BadRequest(w, "email and password are required")
		return
	}

	token, u, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, ErrInvalidCredentials) {
		response.Unauthorized(w, "invalid email or password")
		return
	}
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, map[string]interface{}{
		"token": token,
		"user":  u,
	})
}

// Me godoc
//
//	@Summary		Get current user
//	@Description	Returns the profile of the currently authenticated user.
//	@Tags			auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	response.Envelope{data=user.User}
//	@Failure		401	{object}	response.Envelope
//	@Failure		500	{object}	response.Envelope
//	@Router			/auth/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	u, err := h.svc.CurrentUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			// Token subject no longer exists; treat as unauthenticated.
			response.Unauthorized(w, "account no longer exists")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, u)
}

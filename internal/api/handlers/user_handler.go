package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/accounts-be/internal/auth"
	"github.com/isdelr/accounts-be/internal/services"
	"github.com/rs/zerolog/log"
)

// UserHandler handles HTTP requests for user management.
type UserHandler struct {
	service       services.UserServiceProvider
	events        services.EventServiceProvider
	cookieName    string
	secureCookies bool
}

// NewUserHandler creates a new UserHandler. cookieName is the client-held
// credential name; secureCookies gates the Secure flag on issued cookies.
func NewUserHandler(service services.UserServiceProvider, events services.EventServiceProvider, cookieName string, secureCookies bool) *UserHandler {
	return &UserHandler{
		service:       service,
		events:        events,
		cookieName:    cookieName,
		secureCookies: secureCookies,
	}
}

// AuthPayload defines the structure for login requests.
type AuthPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterPayload defines the structure for registration requests.
type RegisterPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles new user registration.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if payload.Username == "" || payload.Email == "" || payload.Password == "" {
		http.Error(w, "username, email and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.service.Create(payload.Username, payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			http.Error(w, "Email already registered", http.StatusConflict)
			return
		}
		log.Error().Err(err).Str("email", payload.Email).Msg("Failed to register user")
		http.Error(w, "Failed to register user", http.StatusInternalServerError)
		return
	}

	h.audit(services.EventRegister, "user registered: "+user.Username, user.ID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(user.Sanitized())
}

// Login handles user authentication and session issuance.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload AuthPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if payload.Email == "" || payload.Password == "" {
		http.Error(w, "email and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.service.Authenticate(payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			log.Warn().Str("email", payload.Email).Msg("Failed authentication attempt")
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}
		log.Error().Err(err).Msg("Authentication lookup failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	token, err := h.service.IssueSession(user)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to issue session")
		http.Error(w, "Failed to issue session", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})

	h.audit(services.EventLogin, "user logged in: "+user.Username, user.ID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"token": token,
		"user":  user.Sanitized(),
	})
}

// GetMe returns the user resolved by the session middleware.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve user from request context")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user.Sanitized())
}

// GetAll handles listing every user.
func (h *UserHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListAll()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list users")
		http.Error(w, "Failed to list users", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(users)
}

// Get handles retrieving a user by their ID.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	user, found, err := h.service.GetByID(id)
	if err != nil {
		log.Error().Err(err).Str("user_id", id).Msg("Failed to get user by ID")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user.Sanitized())
}

// Update handles updating a user's profile information. The ownership guard
// has already established that {id} is the caller's own id.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var payload struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if payload.Username == "" {
		http.Error(w, "username is required", http.StatusBadRequest)
		return
	}

	user, found, err := h.service.UpdateUsername(id, payload.Username)
	if err != nil {
		log.Error().Err(err).Str("user_id", id).Msg("Failed to update user")
		http.Error(w, "Failed to update user", http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	h.audit(services.EventUserUpdate, "username changed to "+user.Username, user.ID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user.Sanitized())
}

// Delete handles the permanent deletion of a user account, credential
// material included.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	found, err := h.service.Delete(id)
	if err != nil {
		log.Error().Err(err).Str("user_id", id).Msg("Failed to delete user")
		http.Error(w, "Failed to delete user", http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	h.audit(services.EventUserDelete, "account deleted", id)

	w.WriteHeader(http.StatusNoContent)
}

// audit records an event; a failing audit write never fails the request.
func (h *UserHandler) audit(eventType, message, userID string) {
	if err := h.events.CreateEvent(eventType, "info", message, &userID); err != nil {
		log.Error().Err(err).Str("type", eventType).Msg("Failed to write audit event")
	}
}

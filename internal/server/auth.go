package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/desertthunder/phono/internal/models"
	"github.com/desertthunder/phono/internal/repositories"
	"github.com/desertthunder/phono/internal/shared"
	"golang.org/x/crypto/bcrypt"
)

// AuthService creates accounts and verifies credentials against stored bcrypt hashes.
type AuthService struct {
	users *repositories.UserRepository
}

// NewAuthService creates an [AuthService] backed by users.
func NewAuthService(users *repositories.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Register creates a new account with a bcrypt-hashed password.
//
// Returns [shared.ErrDuplicateUser] when the username is taken and
// [shared.ErrInvalidInput] when either field is blank.
func (s *AuthService) Register(username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", shared.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{Username: username, PasswordHash: string(hash)}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}

	return user, nil
}

// VerifyCredentials returns the matching user when username and password check
// out, or [shared.ErrInvalidCredentials] otherwise.
func (s *AuthService) VerifyCredentials(username, password string) (*models.User, error) {
	user, err := s.users.GetByUsername(username)
	if err != nil {
		if errors.Is(err, shared.ErrUserNotFound) {
			return nil, shared.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}

	return user, nil
}

// AuthHandler serves the register, login, and logout endpoints.
type AuthHandler struct {
	auth     *AuthService
	sessions *SessionStore
}

// NewAuthHandler creates an [AuthHandler].
func NewAuthHandler(auth *AuthService, sessions *SessionStore) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions}
}

// Register registers the auth routes on router, outside the session middleware.
func (h *AuthHandler) Register(router Router) {
	router.Handle(http.MethodPost, "/register", http.HandlerFunc(h.handleRegister))
	router.Handle(http.MethodPost, "/login", http.HandlerFunc(h.handleLogin))
	router.Handle(http.MethodPost, "/logout", http.HandlerFunc(h.handleLogout))
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	user, err := h.auth.Register(username, password)
	if err != nil {
		switch {
		case errors.Is(err, shared.ErrDuplicateUser):
			http.Error(w, "Username already exists", http.StatusBadRequest)
		case errors.Is(err, shared.ErrInvalidInput):
			http.Error(w, "Username and password are required", http.StatusBadRequest)
		default:
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	h.startSession(w, user.ID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	user, err := h.auth.VerifyCredentials(r.FormValue("username"), r.FormValue("password"))
	if err != nil {
		if errors.Is(err, shared.ErrInvalidCredentials) {
			http.Error(w, "Invalid username or password", http.StatusUnauthorized)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.startSession(w, user.ID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		h.sessions.Revoke(cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) startSession(w http.ResponseWriter, userID int64) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    h.sessions.Create(userID),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

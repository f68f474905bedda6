package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/isdelr/accounts-be/internal/auth"
	"github.com/isdelr/accounts-be/internal/models"
)

// ErrEmailTaken is returned when registering an email that already has an
// account.
var ErrEmailTaken = errors.New("email already registered")

// ErrInvalidCredentials covers every login failure: unknown email, missing
// credential material, and wrong password all collapse into this one error
// so callers cannot enumerate accounts.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	GetByID(id string) (models.User, bool, error)
	GetBySessionToken(token string) (models.User, bool, error)
	ListAll() ([]models.User, error)
	Create(username, email, password string) (models.User, error)
	Authenticate(email, password string) (models.User, error)
	IssueSession(user models.User) (string, error)
	UpdateUsername(id, username string) (models.User, bool, error)
	Delete(id string) (bool, error)
}

// UserService provides business logic for user management.
type UserService struct {
	db     *sql.DB
	hasher *auth.Hasher
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB, hasher *auth.Hasher) *UserService {
	return &UserService{db: db, hasher: hasher}
}

// GetByID retrieves a single user by their ID, without credential material.
func (s *UserService) GetByID(id string) (models.User, bool, error) {
	var user models.User
	row := s.db.QueryRow("SELECT id, username, email, created_at FROM users WHERE id = ?", id)
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, false, nil
		}
		return models.User{}, false, err
	}
	return user, true, nil
}

// GetByEmail retrieves a single user by their email, including the
// normally-hidden authentication block.
func (s *UserService) GetByEmail(email string) (models.User, bool, error) {
	var (
		user         models.User
		authBlock    models.Authentication
		sessionToken sql.NullString
	)
	row := s.db.QueryRow("SELECT id, username, email, password_hash, salt, session_token, created_at FROM users WHERE email = ?", email)
	err := row.Scan(&user.ID, &user.Username, &user.Email, &authBlock.PasswordHash, &authBlock.Salt, &sessionToken, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, false, nil
		}
		return models.User{}, false, err
	}
	if sessionToken.Valid {
		authBlock.SessionToken = &sessionToken.String
	}
	user.Auth = &authBlock
	return user, true, nil
}

// GetBySessionToken resolves a session token to the user currently holding
// it. Verification mutates nothing: looking the same token up twice yields
// the same user.
func (s *UserService) GetBySessionToken(token string) (models.User, bool, error) {
	var user models.User
	row := s.db.QueryRow("SELECT id, username, email, created_at FROM users WHERE session_token = ?", token)
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, false, nil
		}
		return models.User{}, false, err
	}
	return user, true, nil
}

// ListAll returns every user, sanitized.
func (s *UserService) ListAll() ([]models.User, error) {
	rows, err := s.db.Query("SELECT id, username, email, created_at FROM users ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// Create registers a new user, salting and hashing their password. The
// session token starts absent; it is only set by a login.
func (s *UserService) Create(username, email, password string) (models.User, error) {
	salt := auth.GenerateSalt()
	user := models.User{
		ID:       uuid.New().String(),
		Username: username,
		Email:    email,
	}

	stmt, err := s.db.Prepare("INSERT INTO users(id, username, email, password_hash, salt) VALUES(?, ?, ?, ?, ?)")
	if err != nil {
		return models.User{}, err
	}
	defer stmt.Close()

	_, err = stmt.Exec(user.ID, user.Username, user.Email, s.hasher.Hash(salt, password), salt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, ErrEmailTaken
		}
		return models.User{}, err
	}

	created, found, err := s.GetByID(user.ID)
	if err != nil {
		return models.User{}, err
	}
	if !found {
		return models.User{}, fmt.Errorf("user %s vanished after insert", user.ID)
	}
	return created, nil
}

// Authenticate verifies a user's credentials. Every failure mode returns
// ErrInvalidCredentials; the caller cannot tell an unknown email from a
// wrong password.
func (s *UserService) Authenticate(email, password string) (models.User, error) {
	user, found, err := s.GetByEmail(email)
	if err != nil {
		return models.User{}, err
	}
	if !found || user.Auth == nil {
		return models.User{}, ErrInvalidCredentials
	}

	if !s.hasher.Equal(user.Auth.PasswordHash, s.hasher.Hash(user.Auth.Salt, password)) {
		return models.User{}, ErrInvalidCredentials
	}
	return user.Sanitized(), nil
}

// IssueSession derives a fresh session token for the user and persists it,
// replacing whatever token a previous login issued. Last login wins.
func (s *UserService) IssueSession(user models.User) (string, error) {
	token := s.hasher.Hash(auth.GenerateSalt(), user.ID)
	res, err := s.db.Exec("UPDATE users SET session_token = ? WHERE id = ?", token, user.ID)
	if err != nil {
		return "", err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return "", fmt.Errorf("no user with id %s to issue a session for", user.ID)
	}
	return token, nil
}

// UpdateUsername changes a user's display name.
func (s *UserService) UpdateUsername(id, username string) (models.User, bool, error) {
	res, err := s.db.Exec("UPDATE users SET username = ? WHERE id = ?", username, id)
	if err != nil {
		return models.User{}, false, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.User{}, false, nil
	}
	return s.GetByID(id)
}

// Delete removes a user and their credential material in one stroke.
func (s *UserService) Delete(id string) (bool, error) {
	res, err := s.db.Exec("DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// isUniqueViolation reports whether err is the sqlite unique-constraint
// error for the email column.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

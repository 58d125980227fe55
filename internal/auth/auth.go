package auth

import (
	"errors"
	"strings"

	"github.com/VictorRuuan/Finance-Control/internal/models"
	"github.com/VictorRuuan/Finance-Control/internal/store"
)

// ErrInvalidCredentials covers both unknown email and wrong password,
// so login failures don't reveal which accounts exist.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Authenticator ties the credential store, password hasher and session
// manager into the register/login/logout flows.
type Authenticator struct {
	users    *store.UserStore
	sessions *SessionManager
}

func NewAuthenticator(users *store.UserStore, sessions *SessionManager) *Authenticator {
	return &Authenticator{users: users, sessions: sessions}
}

// Register creates a new user with a hashed password.
// Returns store.ErrDuplicateEmail when the email is taken.
func (a *Authenticator) Register(name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	return a.users.Create(name, email, hash)
}

// Login checks the credentials and opens a session on success.
func (a *Authenticator) Login(email, password string) (string, *models.User, error) {
	email = strings.TrimSpace(email)

	user, err := a.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !CheckPassword(password, user.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := a.sessions.Login(user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Logout revokes the session behind the token.
func (a *Authenticator) Logout(token string) error {
	return a.sessions.Logout(token)
}

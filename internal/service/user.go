package service

import (
	"Go_Scan/internal/repo"
	"Go_Scan/internal/session"
	"Go_Scan/model"
	"Go_Scan/utils"
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const maxUsernameLen = 150

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidInput       = errors.New("username and password are required")
	ErrUsernameTooLong    = errors.New("username is too long")
)

// UserRepository is the slice of the user table the auth flow needs.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByUsername(ctx context.Context, username string) (*model.User, error)
}

type AuthService struct {
	users    UserRepository
	sessions *session.Manager
	// compared against when the username is unknown, so both failure paths cost a hash check
	dummyHash string
}

func NewAuthService(users UserRepository, sessions *session.Manager) *AuthService {
	dummy, _ := utils.GetPwd("go-scan-dummy-password")
	return &AuthService{users: users, sessions: sessions, dummyHash: dummy}
}

// Register hashes the password and creates the user.
func (s *AuthService) Register(ctx context.Context, username, password string) (*model.User, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, ErrInvalidInput
	}
	if utf8.RuneCountInString(username) > maxUsernameLen {
		return nil, ErrUsernameTooLong
	}
	hashed, err := utils.GetPwd(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &model.User{
		UserName: username,
		Password: hashed,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repo.ErrDuplicateUser) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return user, nil
}

// Login checks the credentials and opens a session. Unknown user and wrong
// password both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *model.Principal, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			utils.CheckPwd(password, s.dummyHash)
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !utils.CheckPwd(password, user.Password) {
		return "", nil, ErrInvalidCredentials
	}
	return s.sessions.Create(ctx, user)
}

// Logout destroys the session behind the token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Destroy(ctx, token)
}

// Current resolves the principal for a session token.
func (s *AuthService) Current(ctx context.Context, token string) (*model.Principal, error) {
	return s.sessions.Resolve(ctx, token)
}

package services

import (
	"errors"

	"pawhaven/internal/domain"
	"pawhaven/internal/repos"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrBadCreds   = errors.New("invalid email or password")
	ErrEmailTaken = errors.New("email already registered")
)

type AuthService struct {
	Users  *repos.UserRepo
	Notify Notifier
}

func (s *AuthService) Login(sid, email, password string) (*domain.User, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Logout(sid string) error {
	return s.Users.UnbindSession(sid)
}

func (s *AuthService) CurrentUser(sid string) (*domain.User, error) {
	return s.Users.SessionUser(sid)
}

// Register creates an account with the given role. Sitters additionally get
// a profile row pending admin verification.
func (s *AuthService) Register(name, email, password string, role domain.Role) (*domain.User, error) {
	taken, err := s.Users.EmailTaken(email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, err
	}
	u := &domain.User{
		ID:    uuid.NewString(),
		Name:  name,
		Email: email,
		Hash:  string(h),
		Role:  role,
	}
	if err := s.Users.Create(u); err != nil {
		return nil, err
	}
	return u, nil
}

// ForgotPassword never reveals whether the address exists; a reset message
// goes out only when it does.
func (s *AuthService) ForgotPassword(email string) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return
	}
	s.Notify.Notify(u.ID, "Password reset", "A password reset was requested for your account.")
}

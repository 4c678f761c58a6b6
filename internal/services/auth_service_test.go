package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mergington/school-management/internal/models"
	"github.com/mergington/school-management/internal/repositories"
	"github.com/mergington/school-management/internal/utils"
)

type stubUserRepo struct {
	user *models.User
	err  error
}

func (s *stubUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func newAuthFixture(t *testing.T, username, password string) (AuthService, repositories.SessionRepository) {
	t.Helper()

	hash, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("unexpected error hashing password: %v", err)
	}

	userRepo := &stubUserRepo{user: &models.User{
		ID:           1,
		Username:     username,
		PasswordHash: hash,
		Role:         "teacher",
	}}
	sessionRepo := repositories.NewMemorySessionRepository()

	return NewAuthService(userRepo, sessionRepo), sessionRepo
}

func TestAuthService_Login_ValidCredentials_CreatesSession(t *testing.T) {
	service, sessionRepo := newAuthFixture(t, "teacher1", "teacher123")
	ctx := context.Background()

	session, err := service.Login(ctx, "teacher1", "teacher123")
	if err != nil {
		t.Fatalf("unexpected error logging in: %v", err)
	}

	if len(session.Token) != 64 {
		t.Errorf("expected a 64 character hex token, got %d characters", len(session.Token))
	}
	if session.Username != "teacher1" {
		t.Errorf("expected session for teacher1, got %s", session.Username)
	}

	remaining := time.Until(session.ExpiresAt)
	if remaining < 23*time.Hour || remaining > 25*time.Hour {
		t.Errorf("session should expire in about 24 hours, got %v", remaining)
	}

	stored, err := sessionRepo.GetByToken(ctx, session.Token)
	if err != nil {
		t.Fatalf("session must be stored after login: %v", err)
	}
	if stored.Username != "teacher1" {
		t.Errorf("stored session belongs to %s, expected teacher1", stored.Username)
	}
}

func TestAuthService_Login_UnknownUser_ReturnsInvalidCredentials(t *testing.T) {
	userRepo := &stubUserRepo{err: models.ErrUserNotFound}
	service := NewAuthService(userRepo, repositories.NewMemorySessionRepository())

	_, err := service.Login(context.Background(), "nobody", "whatever")
	if !errors.Is(err, models.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_WrongPassword_ReturnsInvalidCredentials(t *testing.T) {
	service, _ := newAuthFixture(t, "teacher1", "teacher123")

	_, err := service.Login(context.Background(), "teacher1", "wrong-password")
	if !errors.Is(err, models.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_RepositoryFailure_PassesThrough(t *testing.T) {
	dbErr := errors.New("connection refused")
	userRepo := &stubUserRepo{err: dbErr}
	service := NewAuthService(userRepo, repositories.NewMemorySessionRepository())

	_, err := service.Login(context.Background(), "teacher1", "teacher123")
	if errors.Is(err, models.ErrInvalidCredentials) {
		t.Error("infrastructure failures must not be reported as bad credentials")
	}
	if !errors.Is(err, dbErr) {
		t.Errorf("expected the repository error to pass through, got %v", err)
	}
}

func TestAuthService_ValidateToken_ValidSession_ReturnsUsername(t *testing.T) {
	service, _ := newAuthFixture(t, "teacher1", "teacher123")
	ctx := context.Background()

	session, err := service.Login(ctx, "teacher1", "teacher123")
	if err != nil {
		t.Fatalf("unexpected error logging in: %v", err)
	}

	username, err := service.ValidateToken(ctx, session.Token)
	if err != nil {
		t.Fatalf("unexpected error validating token: %v", err)
	}
	if username != "teacher1" {
		t.Errorf("expected teacher1, got %s", username)
	}
}

func TestAuthService_ValidateToken_UnknownToken_ReturnsAuthRequired(t *testing.T) {
	service, _ := newAuthFixture(t, "teacher1", "teacher123")

	_, err := service.ValidateToken(context.Background(), "no-such-token")
	if !errors.Is(err, models.ErrAuthRequired) {
		t.Errorf("expected ErrAuthRequired, got %v", err)
	}
}

func TestAuthService_Logout_InvalidatesSession(t *testing.T) {
	service, _ := newAuthFixture(t, "teacher1", "teacher123")
	ctx := context.Background()

	session, err := service.Login(ctx, "teacher1", "teacher123")
	if err != nil {
		t.Fatalf("unexpected error logging in: %v", err)
	}

	if err := service.Logout(ctx, session.Token); err != nil {
		t.Fatalf("unexpected error logging out: %v", err)
	}

	if _, err := service.ValidateToken(ctx, session.Token); !errors.Is(err, models.ErrAuthRequired) {
		t.Errorf("token must be invalid after logout, got %v", err)
	}
}

func TestAuthService_Logout_UnknownToken_NoError(t *testing.T) {
	service, _ := newAuthFixture(t, "teacher1", "teacher123")

	if err := service.Logout(context.Background(), "no-such-token"); err != nil {
		t.Errorf("logout with an unknown token must not error, got %v", err)
	}
}

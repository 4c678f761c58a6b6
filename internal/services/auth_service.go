package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/mergington/school-management/internal/models"
	"github.com/mergington/school-management/internal/repositories"
	"github.com/mergington/school-management/internal/utils"
)

// SessionTTL はセッションとクッキーの有効期間（24時間）
const SessionTTL = 24 * time.Hour

type AuthService interface {
	Login(ctx context.Context, username, password string) (*models.Session, error)
	ValidateToken(ctx context.Context, token string) (string, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	userRepo    repositories.UserRepository
	sessionRepo repositories.SessionRepository
}

func NewAuthService(
	userRepo repositories.UserRepository,
	sessionRepo repositories.SessionRepository,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
	}
}

// Login はユーザー名とパスワードを検証し、新しいセッションを作成します。
// 認証に失敗した場合は ErrInvalidCredentials を返します。
func (s *authService) Login(ctx context.Context, username, password string) (*models.Session, error) {
	// ユーザー取得
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}

	// パスワード検証（bcrypt）
	if !utils.VerifyPassword(password, user.PasswordHash) {
		return nil, models.ErrInvalidCredentials
	}

	// トークン生成
	token, err := generateToken()
	if err != nil {
		return nil, fmt.Errorf("認証トークンの生成に失敗: %w", err)
	}

	// セッション作成
	now := time.Now()
	session := &models.Session{
		Token:     token,
		Username:  user.Username,
		ExpiresAt: now.Add(SessionTTL),
		CreatedAt: now,
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("セッションの作成に失敗: %w", err)
	}

	return session, nil
}

// ValidateToken はセッショントークンを検証し、対応するユーザー名を返します。
// セッションが存在しない・期限切れの場合は ErrAuthRequired を返します。
func (s *authService) ValidateToken(ctx context.Context, token string) (string, error) {
	session, err := s.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		return "", models.ErrAuthRequired
	}

	return session.Username, nil
}

// Logout はセッションを無効化します。存在しないトークンでもエラーにしません
func (s *authService) Logout(ctx context.Context, token string) error {
	return s.sessionRepo.Delete(ctx, token)
}

// generateToken generates a random 256-bit session token
func generateToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

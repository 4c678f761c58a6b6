package repositories

import (
	"context"
	"time"

	"github.com/mergington/school-management/internal/models"
)

// queryTimeout は各データベース呼び出しの上限時間
const queryTimeout = 5 * time.Second

type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type ClubRepository interface {
	GetAll(ctx context.Context) ([]*models.Club, error)
	GetByName(ctx context.Context, name string) (*models.Club, error)
}

type StudentRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.Student, error)
	GetOrCreate(ctx context.Context, email string) (int64, error)
}

type MembershipRepository interface {
	IsRegistered(ctx context.Context, clubID, studentID int64) (bool, error)
	Register(ctx context.Context, clubID, studentID int64) error
	Unregister(ctx context.Context, clubID, studentID int64) (int64, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByToken(ctx context.Context, token string) (*models.Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) error
}

package services

import (
	"context"
	"errors"

	"github.com/mergington/school-management/internal/models"
	"github.com/mergington/school-management/internal/repositories"
)

type ActivityService interface {
	ListActivities(ctx context.Context) (map[string]models.ActivityDetail, error)
	SignUp(ctx context.Context, activityName, email string) error
	Unregister(ctx context.Context, activityName, email string) error
}

type activityService struct {
	clubRepo       repositories.ClubRepository
	studentRepo    repositories.StudentRepository
	membershipRepo repositories.MembershipRepository
}

func NewActivityService(
	clubRepo repositories.ClubRepository,
	studentRepo repositories.StudentRepository,
	membershipRepo repositories.MembershipRepository,
) ActivityService {
	return &activityService{
		clubRepo:       clubRepo,
		studentRepo:    studentRepo,
		membershipRepo: membershipRepo,
	}
}

// ListActivities は全クラブをクラブ名をキーにしたマップで返します
func (s *activityService) ListActivities(ctx context.Context) (map[string]models.ActivityDetail, error) {
	clubs, err := s.clubRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	activities := make(map[string]models.ActivityDetail, len(clubs))
	for _, club := range clubs {
		activities[club.Name] = club.ToActivityDetail()
	}

	return activities, nil
}

// SignUp は生徒をクラブに登録します。
// クラブが存在しない場合は ErrActivityNotFound、
// 既に登録済みの場合は ErrAlreadyRegistered を返します。
func (s *activityService) SignUp(ctx context.Context, activityName, email string) error {
	club, err := s.clubRepo.GetByName(ctx, activityName)
	if err != nil {
		return err
	}

	// 生徒を取得（未登録のメールアドレスならここで作成される）
	studentID, err := s.studentRepo.GetOrCreate(ctx, email)
	if err != nil {
		return err
	}

	registered, err := s.membershipRepo.IsRegistered(ctx, club.ID, studentID)
	if err != nil {
		return err
	}
	if registered {
		return models.ErrAlreadyRegistered
	}

	// 事前チェックの後で他のリクエストが先に登録した場合も
	// 一意制約により Register が ErrAlreadyRegistered を返す
	return s.membershipRepo.Register(ctx, club.ID, studentID)
}

// Unregister は生徒のクラブ登録を解除します。
// クラブが存在しない場合は ErrActivityNotFound、
// 登録されていない場合は ErrNotRegistered を返します。
func (s *activityService) Unregister(ctx context.Context, activityName, email string) error {
	club, err := s.clubRepo.GetByName(ctx, activityName)
	if err != nil {
		return err
	}

	// 解除では生徒を新規作成しない
	student, err := s.studentRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrStudentNotFound) {
			return models.ErrNotRegistered
		}
		return err
	}

	removed, err := s.membershipRepo.Unregister(ctx, club.ID, student.ID)
	if err != nil {
		return err
	}
	if removed == 0 {
		return models.ErrNotRegistered
	}

	return nil
}

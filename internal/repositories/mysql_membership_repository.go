package repositories

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/mergington/school-management/internal/models"
)

type MySQLMembershipRepository struct {
	db *sqlx.DB
}

func NewMySQLMembershipRepository(db *sqlx.DB) MembershipRepository {
	return &MySQLMembershipRepository{db: db}
}

func (r *MySQLMembershipRepository) IsRegistered(ctx context.Context, clubID, studentID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var count int
	query := `SELECT COUNT(*) FROM club_memberships WHERE club_id = ? AND student_id = ?`

	if err := r.db.GetContext(ctx, &count, query, clubID, studentID); err != nil {
		return false, fmt.Errorf("登録状況の確認に失敗: %w", err)
	}

	return count > 0, nil
}

func (r *MySQLMembershipRepository) Register(ctx context.Context, clubID, studentID int64) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `INSERT INTO club_memberships (club_id, student_id) VALUES (?, ?)`

	if _, err := r.db.ExecContext(ctx, query, clubID, studentID); err != nil {
		// 一意制約 (club_id, student_id) の違反は二重登録
		if isDuplicateEntry(err) {
			return models.ErrAlreadyRegistered
		}
		return fmt.Errorf("登録の作成に失敗: %w", err)
	}

	return nil
}

func (r *MySQLMembershipRepository) Unregister(ctx context.Context, clubID, studentID int64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `DELETE FROM club_memberships WHERE club_id = ? AND student_id = ?`

	result, err := r.db.ExecContext(ctx, query, clubID, studentID)
	if err != nil {
		return 0, fmt.Errorf("登録の削除に失敗: %w", err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("削除件数の取得に失敗: %w", err)
	}

	return removed, nil
}

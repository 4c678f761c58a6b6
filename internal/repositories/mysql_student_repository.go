package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/mergington/school-management/internal/models"
)

// MySQL error 1062: ER_DUP_ENTRY
const mysqlErrDuplicateEntry = 1062

type MySQLStudentRepository struct {
	db *sqlx.DB
}

func NewMySQLStudentRepository(db *sqlx.DB) StudentRepository {
	return &MySQLStudentRepository{db: db}
}

func (r *MySQLStudentRepository) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	student := &models.Student{}
	query := `SELECT id, email, name, created_at FROM students WHERE email = ?`

	err := r.db.GetContext(ctx, student, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrStudentNotFound
		}
		return nil, fmt.Errorf("生徒の取得に失敗: %w", err)
	}

	return student, nil
}

// GetOrCreate はメールアドレスで生徒を引き、存在しなければ作成してIDを返します。
// 同じメールアドレスの初回登録が同時に走った場合は一意制約違反になるため、
// その場合のみ検索をやり直します。
func (r *MySQLStudentRepository) GetOrCreate(ctx context.Context, email string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	id, err := r.lookupID(ctx, email)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("生徒の検索に失敗: %w", err)
	}

	result, err := r.db.ExecContext(ctx, `INSERT INTO students (email) VALUES (?)`, email)
	if err != nil {
		if isDuplicateEntry(err) {
			// 先に他のリクエストが作成済み
			id, err := r.lookupID(ctx, email)
			if err != nil {
				return 0, fmt.Errorf("生徒の再検索に失敗: %w", err)
			}
			return id, nil
		}
		return 0, fmt.Errorf("生徒の作成に失敗: %w", err)
	}

	id, err = result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("生徒IDの取得に失敗: %w", err)
	}

	return id, nil
}

func (r *MySQLStudentRepository) lookupID(ctx context.Context, email string) (int64, error) {
	var id int64
	err := r.db.GetContext(ctx, &id, `SELECT id FROM students WHERE email = ?`, email)
	return id, err
}

func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrDuplicateEntry
}

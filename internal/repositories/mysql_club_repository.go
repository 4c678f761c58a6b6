package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mergington/school-management/internal/models"
)

type MySQLClubRepository struct {
	db *sqlx.DB
}

func NewMySQLClubRepository(db *sqlx.DB) ClubRepository {
	return &MySQLClubRepository{db: db}
}

// clubRow は参加者集約込みのクラブ1行分のスキャン用
type clubRow struct {
	ID              int64          `db:"id"`
	Name            string         `db:"name"`
	Description     sql.NullString `db:"description"`
	Schedule        sql.NullString `db:"schedule"`
	MaxParticipants int            `db:"max_participants"`
	CreatedAt       time.Time      `db:"created_at"`
	Participants    sql.NullString `db:"participants"`
}

// 参加者は club_memberships の登録順（cm.id 昇順）で集約する
const clubSelect = `
	SELECT
		c.id,
		c.name,
		c.description,
		c.schedule,
		c.max_participants,
		c.created_at,
		GROUP_CONCAT(s.email ORDER BY cm.id SEPARATOR ',') AS participants
	FROM clubs c
	LEFT JOIN club_memberships cm ON c.id = cm.club_id
	LEFT JOIN students s ON cm.student_id = s.id
`

const clubGroupBy = ` GROUP BY c.id, c.name, c.description, c.schedule, c.max_participants, c.created_at`

func (r *MySQLClubRepository) GetAll(ctx context.Context) ([]*models.Club, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var rows []clubRow
	query := clubSelect + clubGroupBy + ` ORDER BY c.id`

	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("クラブ一覧の取得に失敗: %w", err)
	}

	clubs := make([]*models.Club, 0, len(rows))
	for i := range rows {
		clubs = append(clubs, rows[i].toClub())
	}

	return clubs, nil
}

func (r *MySQLClubRepository) GetByName(ctx context.Context, name string) (*models.Club, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var row clubRow
	query := clubSelect + ` WHERE c.name = ?` + clubGroupBy

	err := r.db.GetContext(ctx, &row, query, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrActivityNotFound
		}
		return nil, fmt.Errorf("クラブの取得に失敗: %w", err)
	}

	return row.toClub(), nil
}

func (row *clubRow) toClub() *models.Club {
	return &models.Club{
		ID:              row.ID,
		Name:            row.Name,
		Description:     row.Description.String,
		Schedule:        row.Schedule.String,
		MaxParticipants: row.MaxParticipants,
		CreatedAt:       row.CreatedAt,
		Participants:    splitParticipants(row.Participants),
	}
}

func splitParticipants(aggregated sql.NullString) []string {
	if !aggregated.Valid || aggregated.String == "" {
		return []string{}
	}
	return strings.Split(aggregated.String, ",")
}

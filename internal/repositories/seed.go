package repositories

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mergington/school-management/internal/utils"
)

// seedTimeout はseed投入全体の上限時間（bcryptハッシュ化を含むため長め）
const seedTimeout = 30 * time.Second

type SeedUser struct {
	Username string
	Password string
	Role     string
}

type SeedClub struct {
	Name            string
	Description     string
	Schedule        string
	MaxParticipants int
}

type SeedMembership struct {
	ClubName     string
	StudentEmail string
}

var SeedUsers = []SeedUser{
	{"admin", "school123", "admin"},
	{"principal", "mergington2026", "admin"},
	{"teacher1", "teacher123", "teacher"},
}

var SeedClubs = []SeedClub{
	{"Chess Club", "Learn strategies and compete in chess tournaments",
		"Fridays, 3:30 PM - 5:00 PM", 12},
	{"Programming Class", "Learn programming fundamentals and build software projects",
		"Tuesdays and Thursdays, 3:30 PM - 4:30 PM", 20},
	{"Gym Class", "Physical education and sports activities",
		"Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM", 30},
	{"Soccer Team", "Join the school soccer team and compete in matches",
		"Tuesdays and Thursdays, 4:00 PM - 5:30 PM", 22},
	{"Basketball Team", "Practice and play basketball with the school team",
		"Wednesdays and Fridays, 3:30 PM - 5:00 PM", 15},
	{"Art Club", "Explore your creativity through painting and drawing",
		"Thursdays, 3:30 PM - 5:00 PM", 15},
	{"Drama Club", "Act, direct, and produce plays and performances",
		"Mondays and Wednesdays, 4:00 PM - 5:30 PM", 20},
	{"Math Club", "Solve challenging problems and participate in math competitions",
		"Tuesdays, 3:30 PM - 4:30 PM", 10},
	{"Debate Team", "Develop public speaking and argumentation skills",
		"Fridays, 4:00 PM - 5:30 PM", 12},
}

var SeedStudents = []string{
	"michael@mergington.edu", "daniel@mergington.edu",
	"emma@mergington.edu", "sophia@mergington.edu",
	"john@mergington.edu", "olivia@mergington.edu",
	"liam@mergington.edu", "noah@mergington.edu",
	"ava@mergington.edu", "mia@mergington.edu",
	"amelia@mergington.edu", "harper@mergington.edu",
	"ella@mergington.edu", "scarlett@mergington.edu",
	"james@mergington.edu", "benjamin@mergington.edu",
	"charlotte@mergington.edu", "henry@mergington.edu",
}

var SeedMemberships = []SeedMembership{
	{"Chess Club", "michael@mergington.edu"},
	{"Chess Club", "daniel@mergington.edu"},
	{"Programming Class", "emma@mergington.edu"},
	{"Programming Class", "sophia@mergington.edu"},
	{"Gym Class", "john@mergington.edu"},
	{"Gym Class", "olivia@mergington.edu"},
	{"Soccer Team", "liam@mergington.edu"},
	{"Soccer Team", "noah@mergington.edu"},
	{"Basketball Team", "ava@mergington.edu"},
	{"Basketball Team", "mia@mergington.edu"},
	{"Art Club", "amelia@mergington.edu"},
	{"Art Club", "harper@mergington.edu"},
	{"Drama Club", "ella@mergington.edu"},
	{"Drama Club", "scarlett@mergington.edu"},
	{"Math Club", "james@mergington.edu"},
	{"Math Club", "benjamin@mergington.edu"},
	{"Debate Team", "charlotte@mergington.edu"},
	{"Debate Team", "henry@mergington.edu"},
}

// SeedIfEmpty は users テーブルが空の場合のみ初期データを投入します。
// 投入は1トランザクションで行い、途中で失敗した場合は全体をロールバックします。
func SeedIfEmpty(ctx context.Context, db *sqlx.DB) error {
	ctx, cancel := context.WithTimeout(ctx, seedTimeout)
	defer cancel()

	// 既存データのチェック
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users`); err != nil {
		return fmt.Errorf("ユーザー数の取得に失敗: %w", err)
	}
	if count > 0 {
		log.Printf("✅ 既存のユーザーが%d件存在するため、初期データの投入をスキップします", count)
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("トランザクションの開始に失敗: %w", err)
	}
	defer tx.Rollback()

	for _, user := range SeedUsers {
		passwordHash, err := utils.HashPassword(user.Password)
		if err != nil {
			return fmt.Errorf("パスワードのハッシュ化に失敗 %s: %w", user.Username, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO users (username, password_hash, role) VALUES (?, ?, ?)`,
			user.Username, passwordHash, user.Role); err != nil {
			return fmt.Errorf("ユーザーの投入に失敗 %s: %w", user.Username, err)
		}
	}

	for _, club := range SeedClubs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO clubs (name, description, schedule, max_participants) VALUES (?, ?, ?, ?)`,
			club.Name, club.Description, club.Schedule, club.MaxParticipants); err != nil {
			return fmt.Errorf("クラブの投入に失敗 %s: %w", club.Name, err)
		}
	}

	for _, email := range SeedStudents {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO students (email) VALUES (?)`, email); err != nil {
			return fmt.Errorf("生徒の投入に失敗 %s: %w", email, err)
		}
	}

	// クラブ名とメールアドレスからIDを引いて登録を作成する
	for _, membership := range SeedMemberships {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO club_memberships (club_id, student_id)
			SELECT c.id, s.id
			FROM clubs c, students s
			WHERE c.name = ? AND s.email = ?
		`, membership.ClubName, membership.StudentEmail); err != nil {
			return fmt.Errorf("登録の投入に失敗 %s/%s: %w", membership.ClubName, membership.StudentEmail, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("トランザクションのコミットに失敗: %w", err)
	}

	log.Printf("✅ 初期データを投入しました: ユーザー%d件 / クラブ%d件 / 生徒%d件 / 登録%d件",
		len(SeedUsers), len(SeedClubs), len(SeedStudents), len(SeedMemberships))
	return nil
}

package models

import (
	"database/sql"
	"time"
)

type Student struct {
	ID        int64          `json:"id" db:"id"`
	Email     string         `json:"email" db:"email"`
	Name      sql.NullString `json:"name" db:"name"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
}

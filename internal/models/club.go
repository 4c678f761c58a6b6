package models

import "time"

type Club struct {
	ID              int64     `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	Description     string    `json:"description" db:"description"`
	Schedule        string    `json:"schedule" db:"schedule"`
	MaxParticipants int       `json:"max_participants" db:"max_participants"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	// 参加者メールアドレス（club_memberships の登録順）
	Participants []string `json:"participants" db:"-"`
}

// ActivityDetail は GET /activities のレスポンス要素（キーはクラブ名）
type ActivityDetail struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// ToActivityDetail converts a Club into its API representation.
func (c *Club) ToActivityDetail() ActivityDetail {
	participants := c.Participants
	if participants == nil {
		participants = []string{}
	}
	return ActivityDetail{
		Description:     c.Description,
		Schedule:        c.Schedule,
		MaxParticipants: c.MaxParticipants,
		Participants:    participants,
	}
}

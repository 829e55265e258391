package model

import "time"

// Level is a difficulty tier applied to texts and words.
type Level struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Texts []Text `gorm:"foreignKey:LevelsID;constraint:OnDelete:CASCADE" json:"-"`
	Words []Word `gorm:"foreignKey:LevelsID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Level) TableName() string {
	return "levels"
}

type CreateLevelRequest struct {
	Name string `json:"name" validate:"required"`
}

type UpdateLevelRequest struct {
	LevelID uint   `json:"level_id" validate:"required"`
	Name    string `json:"name" validate:"required"`
}

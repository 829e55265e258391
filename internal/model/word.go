package model

import "time"

// Word is a vocabulary entry attached to a text.
type Word struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CategoryID uint      `gorm:"not null;index" json:"category_id"`
	LevelsID   uint      `gorm:"not null;index" json:"levels_id"`
	TextID     uint      `gorm:"not null;index" json:"text_id"`
	WordRu     string    `gorm:"not null" json:"word_ru"`
	WordEn     string    `gorm:"not null" json:"word_en"`
	WordFr     string    `gorm:"not null" json:"word_fr"`
	AudioRu    string    `json:"audio_ru"`
	AudioEn    string    `json:"audio_en"`
	AudioFr    string    `json:"audio_fr"`
	Photo      string    `json:"photo"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Word) TableName() string {
	return "words"
}

type CreateWordRequest struct {
	CategoryID uint    `json:"category_id" validate:"required"`
	LevelsID   uint    `json:"levels_id" validate:"required"`
	TextID     uint    `json:"text_id" validate:"required"`
	WordRu     string  `json:"word_ru" validate:"required"`
	WordEn     string  `json:"word_en" validate:"required"`
	WordFr     string  `json:"word_fr" validate:"required"`
	Photo      *Upload `json:"-" validate:"-"`
	AudioRu    *Upload `json:"-" validate:"-"`
	AudioEn    *Upload `json:"-" validate:"-"`
	AudioFr    *Upload `json:"-" validate:"-"`
}

type UpdateWordRequest struct {
	WordID     uint    `json:"word_id" validate:"required"`
	CategoryID uint    `json:"category_id" validate:"required"`
	LevelsID   uint    `json:"levels_id" validate:"required"`
	TextID     uint    `json:"text_id" validate:"required"`
	WordRu     string  `json:"word_ru" validate:"required"`
	WordEn     string  `json:"word_en" validate:"required"`
	WordFr     string  `json:"word_fr" validate:"required"`
	Photo      *Upload `json:"-" validate:"-"`
	AudioRu    *Upload `json:"-" validate:"-"`
	AudioEn    *Upload `json:"-" validate:"-"`
	AudioFr    *Upload `json:"-" validate:"-"`
}

// WordFilter mirrors TextFilter one level deeper; Search OR-matches tokens
// against the localized word fields.
type WordFilter struct {
	CategoryID *uint
	LevelID    *uint
	TextID     *uint
	Search     string
	Page       int
}

package model

import "time"

// Text is a localized reading passage. Column name levels_id follows the
// legacy schema.
type Text struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CategoryID uint      `gorm:"not null;index" json:"category_id"`
	LevelsID   uint      `gorm:"not null;index" json:"levels_id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	TitleRu    string    `gorm:"not null" json:"title_ru"`
	TitleEn    string    `gorm:"not null" json:"title_en"`
	TitleFr    string    `gorm:"not null" json:"title_fr"`
	TextRu     string    `gorm:"type:text;not null" json:"text_ru"`
	TextEn     string    `gorm:"type:text;not null" json:"text_en"`
	TextFr     string    `gorm:"type:text;not null" json:"text_fr"`
	AudioRu    string    `json:"audio_ru"`
	AudioEn    string    `json:"audio_en"`
	AudioFr    string    `json:"audio_fr"`
	Photo      string    `json:"photo"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	WordsRel []Word `gorm:"foreignKey:TextID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Text) TableName() string {
	return "texts"
}

type CreateTextRequest struct {
	CategoryID uint    `json:"category_id" validate:"required"`
	LevelsID   uint    `json:"levels_id" validate:"required"`
	TitleRu    string  `json:"title_ru" validate:"required"`
	TitleEn    string  `json:"title_en" validate:"required"`
	TitleFr    string  `json:"title_fr" validate:"required"`
	TextRu     string  `json:"text_ru" validate:"required"`
	TextEn     string  `json:"text_en" validate:"required"`
	TextFr     string  `json:"text_fr" validate:"required"`
	Photo      *Upload `json:"-" validate:"-"`
	AudioRu    *Upload `json:"-" validate:"-"`
	AudioEn    *Upload `json:"-" validate:"-"`
	AudioFr    *Upload `json:"-" validate:"-"`
}

type UpdateTextRequest struct {
	TextID     uint    `json:"text_id" validate:"required"`
	CategoryID uint    `json:"category_id" validate:"required"`
	LevelsID   uint    `json:"levels_id" validate:"required"`
	TitleRu    string  `json:"title_ru" validate:"required"`
	TitleEn    string  `json:"title_en" validate:"required"`
	TitleFr    string  `json:"title_fr" validate:"required"`
	TextRu     string  `json:"text_ru" validate:"required"`
	TextEn     string  `json:"text_en" validate:"required"`
	TextFr     string  `json:"text_fr" validate:"required"`
	Photo      *Upload `json:"-" validate:"-"`
	AudioRu    *Upload `json:"-" validate:"-"`
	AudioEn    *Upload `json:"-" validate:"-"`
	AudioFr    *Upload `json:"-" validate:"-"`
}

// TextFilter narrows the text listing. Filters are AND-combined; Search is
// tokenized on whitespace and each token is OR-matched against the localized
// titles, so a multi-word query widens the result set.
type TextFilter struct {
	UserID     *uint
	CategoryID *uint
	LevelID    *uint
	Search     string
	Page       int
}

// TextWithWords is the single-page payload: the text plus all its words.
type TextWithWords struct {
	Text  *Text   `json:"data"`
	Words []*Word `json:"words"`
}

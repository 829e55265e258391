package model

import "time"

// Category is the top of the content taxonomy. Deleting a category cascades
// to its texts and words at the storage layer.
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Photo     string    `gorm:"not null" json:"photo"`
	NameRu    string    `gorm:"not null" json:"name_ru"`
	NameEn    string    `gorm:"not null" json:"name_en"`
	NameFr    string    `gorm:"not null" json:"name_fr"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Texts []Text `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"-"`
	Words []Word `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Category) TableName() string {
	return "categories"
}

type CreateCategoryRequest struct {
	NameRu string  `json:"name_ru" validate:"required"`
	NameEn string  `json:"name_en" validate:"required"`
	NameFr string  `json:"name_fr" validate:"required"`
	Photo  *Upload `json:"-" validate:"-"`
}

type UpdateCategoryRequest struct {
	CategoryID uint    `json:"category_id" validate:"required"`
	NameRu     string  `json:"name_ru" validate:"required"`
	NameEn     string  `json:"name_en" validate:"required"`
	NameFr     string  `json:"name_fr" validate:"required"`
	Photo      *Upload `json:"-" validate:"-"`
}

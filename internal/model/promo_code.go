package model

import "time"

type PromoCode struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AgentID   uint      `gorm:"not null;index" json:"agent_id"`
	Code      string    `gorm:"uniqueIndex;not null" json:"code"`
	EndDate   time.Time `gorm:"type:date;not null" json:"end_date"`
	JobCount  int       `gorm:"not null" json:"job_count"`
	Discount  int       `gorm:"not null" json:"discount"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Agent *Agent `gorm:"foreignKey:AgentID" json:"agent,omitempty"`
}

func (PromoCode) TableName() string {
	return "promo_codes"
}

// JobCount and Discount are pointers so that an explicit zero survives the
// required rule.
type CreatePromoCodeRequest struct {
	AgentID  uint   `json:"agent_id" validate:"required"`
	Code     string `json:"code" validate:"required,min=5"`
	EndDate  string `json:"end_date" validate:"required"`
	JobCount *int   `json:"job_count" validate:"required,gte=0"`
	Discount *int   `json:"discount" validate:"required,gte=0"`
}

type UpdatePromoCodeRequest struct {
	CodeID   uint   `json:"code_id" validate:"required"`
	AgentID  uint   `json:"agent_id" validate:"required"`
	Code     string `json:"code" validate:"required,min=5"`
	EndDate  string `json:"end_date" validate:"required"`
	JobCount *int   `json:"job_count" validate:"required,gte=0"`
	Discount *int   `json:"discount" validate:"required,gte=0"`
}

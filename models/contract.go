package models

import (
	"time"

	"gorm.io/gorm"
)

type DueDateMethod string

const (
	DueDateDays           DueDateMethod = "days"
	DueDateEndOfNextMonth DueDateMethod = "endOfNextMonth"
)

const (
	DefaultCurrency = "JPY"
	DefaultDueDays  = 30
)

// Contract is a recurring billing agreement with a client. DescriptionTemplate
// may contain {{month}} and {{year}} placeholders.
type Contract struct {
	ID                  string         `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt           time.Time      `json:"createdAt"`
	UpdatedAt           time.Time      `json:"updatedAt"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`
	ClientID            string         `gorm:"size:36;not null;index" json:"clientId"`
	DescriptionTemplate string         `gorm:"type:text" json:"descriptionTemplate"`
	UnitPrice           float64        `gorm:"not null" json:"unitPrice"`
	Currency            string         `gorm:"size:10;default:'JPY'" json:"currency"`
	Quantity            float64        `gorm:"default:1" json:"quantity"`
	DueDays             int            `gorm:"default:30" json:"dueDays"`
	DueDateMethod       DueDateMethod  `gorm:"size:20;default:'days'" json:"dueDateMethod"`
}

// TableName overrides the table name
func (Contract) TableName() string {
	return "contracts"
}

// EffectiveDueDays returns DueDays, treating an unset value as DefaultDueDays.
func (c *Contract) EffectiveDueDays() int {
	if c.DueDays <= 0 {
		return DefaultDueDays
	}
	return c.DueDays
}

// EffectiveDueDateMethod treats an unset method as DueDateDays, which is how
// contracts created before the field existed behave.
func (c *Contract) EffectiveDueDateMethod() DueDateMethod {
	if c.DueDateMethod == "" {
		return DueDateDays
	}
	return c.DueDateMethod
}

package models

import "time"

const (
	SettingsID              uint = 1
	DefaultFilenameTemplate      = "invoice-{yyyymm}.pdf"
)

// Settings holds the issuer identity, the remittance details printed on every
// invoice and the default visual style. There is one row per installation.
type Settings struct {
	ID               uint      `gorm:"primaryKey" json:"-"`
	UpdatedAt        time.Time `json:"updatedAt"`
	FreelancerName   string    `gorm:"size:255" json:"freelancerName"`
	Address          string    `gorm:"type:text" json:"address"`
	Email            string    `gorm:"size:255" json:"email"`
	BankName         string    `gorm:"size:255" json:"bankName"`
	AccountHolder    string    `gorm:"size:255" json:"accountHolder"`
	AccountNumber    string    `gorm:"size:64" json:"accountNumber"`
	Swift            string    `gorm:"size:32" json:"swift"`
	BankCountry      string    `gorm:"size:64" json:"bankCountry"`
	BankCurrency     string    `gorm:"size:10" json:"bankCurrency"`
	FilenameTemplate string    `gorm:"size:255" json:"filenameTemplate"`
	InvoiceTemplate  string    `gorm:"size:32" json:"invoiceTemplate,omitempty"`
}

// TableName overrides the table name
func (Settings) TableName() string {
	return "settings"
}

// DefaultSettings is what a fresh installation starts with.
func DefaultSettings() Settings {
	return Settings{
		ID:               SettingsID,
		BankCurrency:     DefaultCurrency,
		FilenameTemplate: DefaultFilenameTemplate,
		InvoiceTemplate:  "default",
	}
}

// Package gormrepo stores the records in SQLite or Postgres through gorm.
// Nested lines (expenses, budget items, client data) are kept as JSON
// columns so each record stays a single row, like the DynamoDB items.
package gormrepo

import (
	"time"

	"instala_control/internal/domain/entities"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// serviceModel mirrors entities.Service field for field so the two convert
// directly.
type serviceModel struct {
	ID            string `gorm:"primaryKey;size:64"`
	UserID        string `gorm:"primaryKey;size:64"`
	Client        string `gorm:"not null"`
	Type          string
	Date          string          `gorm:"size:10;index"`
	Price         decimal.Decimal `gorm:"type:numeric"`
	Cost          decimal.Decimal `gorm:"type:numeric"`
	PaymentMethod string
	Expenses      []entities.Expense `gorm:"serializer:json"`
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (serviceModel) TableName() string { return "services" }

type appointmentModel struct {
	UserID        string `gorm:"primaryKey;size:64"`
	ID            string `gorm:"primaryKey;size:64"`
	Client        string `gorm:"not null"`
	Type          string
	Date          string `gorm:"size:10;index"`
	Time          string `gorm:"size:5"`
	Address       string
	Notes         string
	Status        string           `gorm:"size:20"`
	BudgetID      string           `gorm:"size:64"`
	Price         *decimal.Decimal `gorm:"type:numeric"`
	PaymentMethod string
	CreatedAt     time.Time
}

func (appointmentModel) TableName() string { return "appointments" }

type budgetModel struct {
	UserID        string              `gorm:"primaryKey;size:64"`
	ID            string              `gorm:"primaryKey;size:64"`
	BudgetNumber  string              `gorm:"size:20"`
	ClientData    entities.ClientData `gorm:"serializer:json"`
	ServiceType   string
	PaymentMethod string
	Items         []entities.BudgetItem `gorm:"serializer:json"`
	PaymentTerms  string
	Validity      string
	Total         decimal.Decimal `gorm:"type:numeric"`
	Status        string          `gorm:"size:20"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (budgetModel) TableName() string { return "budgets" }

type settingsModel struct {
	UserID          string `gorm:"primaryKey;size:64"`
	CompanyName     string
	CompanySubtitle string
	Phone           string
	FooterText      string
	UpdatedAt       time.Time
}

func (settingsModel) TableName() string { return "company_settings" }

type paymentModel struct {
	UserID          string `gorm:"primaryKey;size:64"`
	ID              string `gorm:"primaryKey;size:64"`
	BudgetID        string `gorm:"size:64;index"`
	Date            time.Time
	Status          string                 `gorm:"size:20"`
	Amount          decimal.Decimal        `gorm:"type:numeric"`
	ProviderPayload map[string]interface{} `gorm:"serializer:json"`
	ProviderRaw     []byte
}

func (paymentModel) TableName() string { return "payments" }

// Migrate creates or updates every table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&serviceModel{}, &appointmentModel{}, &budgetModel{}, &settingsModel{}, &paymentModel{})
}

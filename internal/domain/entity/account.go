package entity

import "time"

// Account representa una agencia inmobiliaria (tenant). Nunca se borra, solo se desactiva.
type Account struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Slug      string    `gorm:"uniqueIndex;not null" json:"slug"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	NIF       string    `json:"nif"` // CIF de la agencia
	Address   string    `json:"address"`
	Website   string    `json:"website"`
	LogoURL   string    `json:"logo_url"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

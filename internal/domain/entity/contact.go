package entity

// Contact persona (comprador, propietario o ambos) de la cuenta.
type Contact struct {
	Owned
	FirstName string `gorm:"not null" json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `gorm:"index" json:"email"`
	Phone     string `json:"phone"`
	NIF       string `json:"nif"`
	Source    string `json:"source"`
	Notes     string `json:"notes"`
	SearchKey string `gorm:"index" json:"-"` // nombre+email+teléfono sin acentos, en minúsculas
}

// UserComment nota privada de un usuario sobre un contacto.
type UserComment struct {
	Owned
	UserID    int64  `gorm:"not null;index" json:"user_id"`
	ContactID int64  `gorm:"not null;index" json:"contact_id"`
	Content   string `gorm:"not null" json:"content"`
}

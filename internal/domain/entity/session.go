package entity

import "time"

// SessionUser usuario autenticado tal como lo entrega el proveedor de sesión.
type SessionUser struct {
	ID        int64  `json:"id"`
	AccountID int64  `json:"account_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

// SessionInfo identificador y caducidad de la sesión.
type SessionInfo struct {
	ID        string    `json:"id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Session sesión resuelta para una petición.
type Session struct {
	User    SessionUser `json:"user"`
	Session SessionInfo `json:"session"`
}

// Expired indica si la sesión ya caducó en el instante now.
func (s *Session) Expired(now time.Time) bool {
	return !s.Session.ExpiresAt.IsZero() && now.After(s.Session.ExpiresAt)
}

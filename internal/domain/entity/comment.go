package entity

// MaxCommentDepth profundidad máxima de respuestas: un comentario raíz admite respuestas,
// una respuesta no admite respuestas propias.
const MaxCommentDepth = 1

// Comment comentario de un usuario, opcionalmente respuesta a otro comentario.
type Comment struct {
	Owned
	EntityLink
	UserID   int64      `gorm:"not null;index" json:"user_id"`
	ParentID *int64     `gorm:"index" json:"parent_id,omitempty"`
	Content  string     `gorm:"not null" json:"content"`
	Replies  []*Comment `gorm:"-" json:"replies,omitempty"`
}

// IsReply indica si el comentario responde a otro.
func (c *Comment) IsReply() bool { return c.ParentID != nil }

// Depth nivel del comentario: 0 raíz, 1 respuesta.
func (c *Comment) Depth() int {
	if c.IsReply() {
		return 1
	}
	return 0
}

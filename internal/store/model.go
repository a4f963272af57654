package store

import (
	"time"

	"github.com/dkeye/Notes/internal/domain"
)

// NoteModel is the GORM model for the notes table.
type NoteModel struct {
	ID        string    `gorm:"type:varchar(36);primaryKey"`
	RoomID    string    `gorm:"type:varchar(128);index;not null"`
	Title     string    `gorm:"type:varchar(400);not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedBy string    `gorm:"type:varchar(64);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime:false;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

func (NoteModel) TableName() string {
	return "notes"
}

func (m *NoteModel) ToDomain() *domain.Note {
	return &domain.Note{
		ID:        m.ID,
		Title:     m.Title,
		Content:   m.Content,
		RoomID:    domain.RoomID(m.RoomID),
		CreatedBy: m.CreatedBy,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func NoteToModel(n *domain.Note) *NoteModel {
	return &NoteModel{
		ID:        n.ID,
		RoomID:    string(n.RoomID),
		Title:     n.Title,
		Content:   n.Content,
		CreatedBy: n.CreatedBy,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

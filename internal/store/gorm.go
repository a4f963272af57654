package store

import (
	"context"
	"errors"

	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/dkeye/Notes/internal/domain"
	applog "github.com/dkeye/Notes/internal/log"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Create(ctx context.Context, note *domain.Note) error {
	l := applog.Ctx(ctx)

	if err := s.db.WithContext(ctx).Create(NoteToModel(note)).Error; err != nil {
		l.Error().Err(err).Str("note_id", note.ID).Msg("failed to create note in db")
		return storeErr("create", err)
	}
	l.Debug().Str("note_id", note.ID).Str("room", string(note.RoomID)).Msg("note created in db")
	return nil
}

func (s *GormStore) Get(ctx context.Context, id string) (*domain.Note, error) {
	var model NoteModel
	err := s.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNoteNotFound
		}
		l := applog.Ctx(ctx)
		l.Error().Err(err).Str("note_id", id).Msg("failed to get note")
		return nil, storeErr("get", err)
	}
	return model.ToDomain(), nil
}

func (s *GormStore) ListByRoom(ctx context.Context, room domain.RoomID) ([]domain.Note, error) {
	var models []NoteModel
	err := s.db.WithContext(ctx).
		Where("room_id = ?", string(room)).
		Order("created_at ASC").Order("id ASC").
		Find(&models).Error
	if err != nil {
		l := applog.Ctx(ctx)
		l.Error().Err(err).Str("room", string(room)).Msg("failed to list notes")
		return nil, storeErr("list", err)
	}

	return lo.Map(models, func(m NoteModel, _ int) domain.Note { return *m.ToDomain() }), nil
}

// Update writes title, content and updated_at of an existing note.
func (s *GormStore) Update(ctx context.Context, note *domain.Note) error {
	res := s.db.WithContext(ctx).Model(&NoteModel{}).
		Where("id = ?", note.ID).
		Updates(map[string]any{
			"title":      note.Title,
			"content":    note.Content,
			"updated_at": note.UpdatedAt,
		})
	if res.Error != nil {
		l := applog.Ctx(ctx)
		l.Error().Err(res.Error).Str("note_id", note.ID).Msg("failed to update note")
		return storeErr("update", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNoteNotFound
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&NoteModel{}, "id = ?", id)
	if res.Error != nil {
		l := applog.Ctx(ctx)
		l.Error().Err(res.Error).Str("note_id", id).Msg("failed to delete note")
		return storeErr("delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNoteNotFound
	}
	return nil
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

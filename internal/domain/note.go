package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	RoomID    RoomID    `json:"roomId"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateNoteRequest struct {
	Title     string `json:"title" validate:"required,min=3,max=100"`
	Content   string `json:"content" validate:"required"`
	RoomID    RoomID `json:"roomId" validate:"required,max=128"`
	CreatedBy string `json:"createdBy" validate:"required,max=64"`
}

type UpdateNoteRequest struct {
	Title   string `json:"title" validate:"required,min=3,max=100"`
	Content string `json:"content" validate:"required"`
}

func (r CreateNoteRequest) Validate() error { return validateStruct(r) }

func (r UpdateNoteRequest) Validate() error { return validateStruct(r) }

// NewNote builds a note from a validated request.
func NewNote(id string, r CreateNoteRequest, now time.Time) *Note {
	return &Note{
		ID:        id,
		Title:     r.Title,
		Content:   r.Content,
		RoomID:    r.RoomID,
		CreatedBy: r.CreatedBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Apply overwrites both editable fields. Last write wins.
func (n *Note) Apply(r UpdateNoteRequest, now time.Time) {
	n.Title = r.Title
	n.Content = r.Content
	n.UpdatedAt = now
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Message: err.Error()}
	}
	fe := fieldErrs[0]
	return &ValidationError{Field: fe.Field(), Message: describe(fe)}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

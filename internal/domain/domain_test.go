package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateNoteRequest_Validate(t *testing.T) {
	valid := CreateNoteRequest{Title: "Plan", Content: "x", RoomID: "r1", CreatedBy: "ann"}

	cases := []struct {
		name   string
		mutate func(*CreateNoteRequest)
		field  string
	}{
		{name: "valid", mutate: func(*CreateNoteRequest) {}},
		{name: "title at lower bound", mutate: func(r *CreateNoteRequest) { r.Title = "abc" }},
		{name: "title at upper bound", mutate: func(r *CreateNoteRequest) { r.Title = strings.Repeat("a", 100) }},
		{name: "title counts runes", mutate: func(r *CreateNoteRequest) { r.Title = "ééé" }},
		{name: "title too short", mutate: func(r *CreateNoteRequest) { r.Title = "ab" }, field: "title"},
		{name: "title too long", mutate: func(r *CreateNoteRequest) { r.Title = strings.Repeat("a", 101) }, field: "title"},
		{name: "empty content", mutate: func(r *CreateNoteRequest) { r.Content = "" }, field: "content"},
		{name: "missing room", mutate: func(r *CreateNoteRequest) { r.RoomID = "" }, field: "roomId"},
		{name: "missing author", mutate: func(r *CreateNoteRequest) { r.CreatedBy = "" }, field: "createdBy"},
		{name: "room at column width", mutate: func(r *CreateNoteRequest) { r.RoomID = RoomID(strings.Repeat("r", 128)) }},
		{name: "room wider than column", mutate: func(r *CreateNoteRequest) { r.RoomID = RoomID(strings.Repeat("r", 129)) }, field: "roomId"},
		{name: "author at column width", mutate: func(r *CreateNoteRequest) { r.CreatedBy = strings.Repeat("ж", 64) }},
		{name: "author wider than column", mutate: func(r *CreateNoteRequest) { r.CreatedBy = strings.Repeat("a", 65) }, field: "createdBy"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := require.New(t)
			r := valid
			tc.mutate(&r)

			err := r.Validate()
			if tc.field == "" {
				req.NoError(err)
				return
			}
			var verr *ValidationError
			req.ErrorAs(err, &verr)
			req.Equal(tc.field, verr.Field)
			req.True(errors.Is(err, ErrValidation))
		})
	}
}

func TestUpdateNoteRequest_Validate(t *testing.T) {
	req := require.New(t)

	req.NoError(UpdateNoteRequest{Title: "Plan", Content: "body"}.Validate())

	err := UpdateNoteRequest{Title: "ab", Content: "body"}.Validate()
	req.ErrorIs(err, ErrValidation)
	req.Contains(err.Error(), "title")
}

func TestNormalizeUsername(t *testing.T) {
	req := require.New(t)

	req.Equal("ann", NormalizeUsername("  ann ", "bob"))
	req.Equal("bob", NormalizeUsername("", "bob"))
	req.Equal(DefaultUsername, NormalizeUsername(" ", ""))
	req.Len([]rune(NormalizeUsername(strings.Repeat("ж", 50), "")), MaxUsernameLen)
}

func TestValidateUsername(t *testing.T) {
	req := require.New(t)

	req.NoError(ValidateUsername("ann"))
	req.ErrorIs(ValidateUsername("  "), ErrUsernameEmpty)
	req.ErrorIs(ValidateUsername(strings.Repeat("a", MaxUsernameLen+1)), ErrUsernameTooLong)
}

func TestEvent_EncodeOmitsUnusedFields(t *testing.T) {
	req := require.New(t)

	b, err := NoteDeletedEvent("n1").Encode()
	req.NoError(err)
	req.JSONEq(`{"type":"note_deleted","noteId":"n1"}`, string(b))

	b, err = LeftEvent([]Participant{{ID: "s1", Username: "ann"}}, "bob").Encode()
	req.NoError(err)
	req.Contains(string(b), `"message":"bob has left the room"`)
	req.Contains(string(b), `"users":[{"id":"s1","username":"ann"`)

	evt, err := DecodeEvent(b)
	req.NoError(err)
	req.Equal(EventUserLeft, evt.Type)
	req.Len(evt.Users, 1)
}

// Package mocks holds generated gomock doubles.
package mocks

//go:generate mockgen -destination=mock_store.go -package=mocks github.com/dkeye/Notes/internal/store NoteStore,NoteCache
//go:generate mockgen -destination=mock_broadcaster.go -package=mocks github.com/dkeye/Notes/internal/app/notes Broadcaster
//go:generate mockgen -destination=mock_client.go -package=mocks github.com/dkeye/Notes/internal/client NotesAPI,Transport
//go:generate mockgen -destination=mock_signal.go -package=mocks github.com/dkeye/Notes/internal/core SignalConnection

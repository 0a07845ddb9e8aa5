// Package client defines the Client Contract (spec.md §4.4): the
// capability set every backend — native (go-ole, Windows-only) and Stub
// (in-memory, for tests) — implements identically, so the Session
// Orchestrator never type-switches on which backend it was handed.
package client

import "context"

// OpenResult is returned by Open and OpenRealtime.
type OpenResult struct {
	HasData              bool
	FileCount             int
	PendingDownloadCount  int
	LastTimestamp         string // empty when the native component reports none
}

// ReadOutcomeKind discriminates a successful Read call's four shapes: a
// decoded record, the end of the current underlying file (control signal
// -1, preserved rather than mapped to an error), a download still in
// progress (control signal -3), or end of the whole stream.
type ReadOutcomeKind int

const (
	// ReadOutcomeRecord carries one fixed-length record buffer.
	ReadOutcomeRecord ReadOutcomeKind = iota
	// ReadOutcomeFileBoundary is native code -1: the next read starts a
	// new underlying file. Not an error.
	ReadOutcomeFileBoundary
	// ReadOutcomeDownloadPending is native code -3: required artefacts
	// are still arriving. Not an error; callers sleep and retry.
	ReadOutcomeDownloadPending
	// ReadOutcomeEndOfStream marks normal stream completion.
	ReadOutcomeEndOfStream
)

// ReadOutcome is the result of one Read call.
type ReadOutcome struct {
	Kind     ReadOutcomeKind
	Buffer   []byte // meaningful for ReadOutcomeRecord
	Filename string // meaningful for ReadOutcomeRecord
}

// Properties names the get/set/try-get property surface spec.md §4.4
// lists. Not every property is meaningful on every backend (e.g.
// ParentWindowHandle is set-only on the native backend).
type Properties struct {
	SaveFlag                bool
	SavePath                string
	ServiceKey              string
	ParentWindowHandle      uintptr
	PayoffDialogSuppressed  bool
	Version                 string
	TotalReadFileSizeKB     int64
	CurrentReadFileSizeB    int64
	CurrentFileTimestamp    string
}

// Contract is the capability set every Client Contract backend
// implements (spec.md §4.4).
type Contract interface {
	Init(ctx context.Context, sid string) error
	Open(ctx context.Context, spec, fromKey string, option int) (OpenResult, error)
	OpenRealtime(ctx context.Context, spec, key string) (OpenResult, error)
	Read(ctx context.Context) (ReadOutcome, error)
	Gets(ctx context.Context, maxSize int) (ReadOutcome, error)
	Skip(ctx context.Context) error
	Cancel(ctx context.Context) error
	Close(ctx context.Context) error
	Status(ctx context.Context) (int, error)
	DeleteFile(ctx context.Context, name string) error

	WatchEvent(ctx context.Context, callback func(key string)) error
	WatchEventClose(ctx context.Context) error

	GetProperties(ctx context.Context) (Properties, error)
	SetSaveFlag(ctx context.Context, v bool) error
	SetSavePath(ctx context.Context, v string) error
	SetServiceKey(ctx context.Context, v string) error

	FetchCourseDiagram(ctx context.Context, raceKey string) ([]byte, error)
	FetchSilksBitmap(ctx context.Context, horseId string) ([]byte, error)
	CheckWorkoutVideo(ctx context.Context, horseId string) (bool, error)
	OpenWorkoutVideo(ctx context.Context, horseId string) (string, error)
}

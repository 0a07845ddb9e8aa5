package client

import (
	"context"
	"sync"
)

// StubScript is one scripted step a Stub backend replays from Read/Gets,
// in the order it was appended.
type StubScript struct {
	Outcome ReadOutcome
	Err     error
}

// CallRecord captures one call a Stub backend received, for assertions
// in the seed tests (spec.md §8).
type CallRecord struct {
	Method string
	Args   []any
}

// Stub is an in-memory, single-threaded, scriptable Contract backend for
// tests: constructed empty, fed a queue of Read/Gets outcomes via
// Script, and recording every call it receives.
type Stub struct {
	mu sync.Mutex

	sid        string
	props      Properties
	open       bool
	script     []StubScript
	cursor     int
	calls      []CallRecord
	statusCode int

	watchCallback func(key string)
}

// NewStub creates an empty, unscripted Stub.
func NewStub() *Stub {
	return &Stub{}
}

// Script appends one scripted Read/Gets outcome to replay.
func (s *Stub) Script(outcome ReadOutcome, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.script = append(s.script, StubScript{Outcome: outcome, Err: err})
}

// Calls returns every call the Stub has received so far, in order.
func (s *Stub) Calls() []CallRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]CallRecord, len(s.calls))
	copy(out, s.calls)
	return out
}

func (s *Stub) record(method string, args ...any) {
	s.calls = append(s.calls, CallRecord{Method: method, Args: args})
}

// Feed delivers key to whatever callback WatchEvent registered, as if
// the native component's connection point fired. A no-op before
// WatchEvent is called.
func (s *Stub) Feed(key string) {
	s.mu.Lock()
	cb := s.watchCallback
	s.mu.Unlock()
	if cb != nil {
		cb(key)
	}
}

func (s *Stub) Init(ctx context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("Init", sid)
	s.sid = sid
	return nil
}

func (s *Stub) Open(ctx context.Context, spec, fromKey string, option int) (OpenResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("Open", spec, fromKey, option)
	s.open = true
	return OpenResult{HasData: len(s.script) > 0, FileCount: 1}, nil
}

func (s *Stub) OpenRealtime(ctx context.Context, spec, key string) (OpenResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("OpenRealtime", spec, key)
	s.open = true
	return OpenResult{HasData: true}, nil
}

func (s *Stub) Read(ctx context.Context) (ReadOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("Read")
	return s.nextLocked()
}

func (s *Stub) Gets(ctx context.Context, maxSize int) (ReadOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("Gets", maxSize)
	return s.nextLocked()
}

func (s *Stub) nextLocked() (ReadOutcome, error) {
	if s.cursor >= len(s.script) {
		return ReadOutcome{Kind: ReadOutcomeEndOfStream}, nil
	}
	step := s.script[s.cursor]
	s.cursor++
	return step.Outcome, step.Err
}

func (s *Stub) Skip(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("Skip")
	if s.cursor < len(s.script) {
		s.cursor++
	}
	return nil
}

func (s *Stub) Cancel(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("Cancel")
	s.cursor = len(s.script)
	return nil
}

func (s *Stub) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("Close")
	s.open = false
	return nil
}

func (s *Stub) Status(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("Status")
	return s.statusCode, nil
}

func (s *Stub) DeleteFile(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("DeleteFile", name)
	return nil
}

func (s *Stub) WatchEvent(ctx context.Context, callback func(key string)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("WatchEvent")
	s.watchCallback = callback
	return nil
}

func (s *Stub) WatchEventClose(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("WatchEventClose")
	s.watchCallback = nil
	return nil
}

func (s *Stub) GetProperties(ctx context.Context) (Properties, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("GetProperties")
	return s.props, nil
}

func (s *Stub) SetSaveFlag(ctx context.Context, v bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("SetSaveFlag", v)
	s.props.SaveFlag = v
	return nil
}

func (s *Stub) SetSavePath(ctx context.Context, v string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("SetSavePath", v)
	s.props.SavePath = v
	return nil
}

func (s *Stub) SetServiceKey(ctx context.Context, v string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("SetServiceKey", v)
	s.props.ServiceKey = v
	return nil
}

func (s *Stub) FetchCourseDiagram(ctx context.Context, raceKey string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("FetchCourseDiagram", raceKey)
	return nil, nil
}

func (s *Stub) FetchSilksBitmap(ctx context.Context, horseId string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("FetchSilksBitmap", horseId)
	return nil, nil
}

func (s *Stub) CheckWorkoutVideo(ctx context.Context, horseId string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("CheckWorkoutVideo", horseId)
	return false, nil
}

func (s *Stub) OpenWorkoutVideo(ctx context.Context, horseId string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("OpenWorkoutVideo", horseId)
	return "", nil
}

// SetStatusCode lets a test script what Status reports next.
func (s *Stub) SetStatusCode(code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statusCode = code
}

var _ Contract = (*Stub)(nil)

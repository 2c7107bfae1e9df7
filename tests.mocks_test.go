package main

import (
	"context"
	"time"
)

// This file contains mocks definitions needed to perform unit tests.

// MockClocker implements a fake Clocker.
type MockClocker struct {
	MockNow time.Time
}

// NewMockClocker returns a mocked instance with fixed time.
func NewMockClocker() *MockClocker {
	return &MockClocker{time.Date(2023, 0o7, 0o2, 0o0, 0o0, 0o0, 0o00000000, time.UTC)}
}

// Now returns an already defined time to be used as mock. This
// equals to `2023-07-02` in time.DateOnly format.
func (mck *MockClocker) Now() time.Time {
	return mck.MockNow
}

// MockUIDHandler implements a fake UIDHandler.
type MockUIDHandler struct {
	MockedUID string
	Valid     bool
}

// NewMockUIDHandler returns a mocked instance with predictable id.
func NewMockUIDHandler(id string, valid bool) *MockUIDHandler {
	return &MockUIDHandler{MockedUID: id, Valid: valid}
}

// Generate constructs a predictable id to be used as mock.
func (muid *MockUIDHandler) Generate(prefix string) string {
	return prefix + ":" + muid.MockedUID
}

// IsValid mocks IsValid behavior by providing configured status.
func (muid *MockUIDHandler) IsValid(_, _ string) bool {
	return muid.Valid
}

// MockJournal keeps recorded events in memory. RecordFunc, when set,
// decides the outcome of Record.
type MockJournal struct {
	RecordFunc func(ctx context.Context, event Event) error
	recorded   []Event
	closed     bool
}

// Record mocks the behavior of appending an event to the journal.
func (m *MockJournal) Record(ctx context.Context, event Event) error {
	if m.RecordFunc != nil {
		if err := m.RecordFunc(ctx, event); err != nil {
			return err
		}
	}
	m.recorded = append(m.recorded, event)
	return nil
}

// Events mocks the behavior of listing journal events.
func (m *MockJournal) Events(_ context.Context) ([]Event, error) {
	return m.recorded, nil
}

// Close mocks the behavior of closing the journal.
func (m *MockJournal) Close() error {
	m.closed = true
	return nil
}

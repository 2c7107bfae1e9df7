package main

import "context"

// Journal drivers.
const (
	JournalNone  = "none"
	JournalBolt  = "bolt"
	JournalRedis = "redis"
)

// Journaler defines possible operations on the event journal.
type Journaler interface {
	Record(ctx context.Context, event Event) error
	Events(ctx context.Context) ([]Event, error)
	Close() error
}

var _ Journaler = (*nopJournal)(nil)

// nopJournal discards every event. It is used when no journal is configured.
type nopJournal struct{}

// NewNopJournal provides a journal which keeps nothing.
func NewNopJournal() Journaler {
	return nopJournal{}
}

func (nopJournal) Record(context.Context, Event) error { return nil }

func (nopJournal) Events(context.Context) ([]Event, error) { return []Event{}, nil }

func (nopJournal) Close() error { return nil }

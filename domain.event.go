package main

import (
	jsoniter "github.com/json-iterator/go"
)

// EventKind names a successful catalog mutation.
type EventKind string

const (
	BookAddedEvent        EventKind = "book.added"
	MemberRegisteredEvent EventKind = "member.registered"
	BookBorrowedEvent     EventKind = "book.borrowed"
	BookReturnedEvent     EventKind = "book.returned"
)

// Event is one journal entry. It mirrors a catalog mutation after it
// has been applied and is never read back into the catalog.
type Event struct {
	ID         string    `json:"id"`
	Kind       EventKind `json:"kind"`
	Title      string    `json:"title,omitempty"`
	Author     string    `json:"author,omitempty"`
	MemberID   int       `json:"memberId,omitempty"`
	MemberName string    `json:"memberName,omitempty"`
	OccurredAt string    `json:"occurredAt"`
	CommandID  string    `json:"commandId,omitempty"`
}

// ToJSON encodes the event for storage.
func (e Event) ToJSON() ([]byte, error) {
	return jsoniter.ConfigFastest.Marshal(e)
}

// EventFromJSON decodes a stored event.
func EventFromJSON(data []byte) (Event, error) {
	var e Event
	err := jsoniter.ConfigFastest.Unmarshal(data, &e)
	return e, err
}

package main

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestService(journal Journaler) *LibraryService {
	clock := NewMockClocker()
	return NewLibraryService(zap.NewNop(), clock, NewMockUIDHandler("0", true), NewLibrary(clock), journal)
}

// TestLibraryService_JournalsMutations ensures every successful mutation
// produces one event and failed ones produce none.
func TestLibraryService_JournalsMutations(t *testing.T) {
	journal := &MockJournal{}
	ls := newTestService(journal)
	ctx := context.Background()

	_, err := ls.AddBook(ctx, "1984", "George Orwell")
	require.NoError(t, err)
	_, err = ls.AddBook(ctx, "1984", "George Orwell")
	assert.ErrorIs(t, err, ErrDuplicateBook)

	bob, err := ls.RegisterMember(ctx, "Bob")
	require.NoError(t, err)

	_, err = ls.BorrowBook(ctx, bob.ID, "1984")
	require.NoError(t, err)
	_, err = ls.BorrowBook(ctx, bob.ID, "1984")
	assert.ErrorIs(t, err, ErrBookUnavailable)

	_, err = ls.ReturnBook(ctx, bob.ID, "1984")
	require.NoError(t, err)
	_, err = ls.ReturnBook(ctx, bob.ID, "1984")
	assert.ErrorIs(t, err, ErrNotBorrowedByMember)

	events, err := journal.Events(ctx)
	require.NoError(t, err)
	require.Len(t, events, 4)

	expected := []Event{
		{ID: "e:0", Kind: BookAddedEvent, Title: "1984", Author: "George Orwell", OccurredAt: "2023-07-02T00:00:00Z"},
		{ID: "e:0", Kind: MemberRegisteredEvent, MemberID: 1, MemberName: "Bob", OccurredAt: "2023-07-02T00:00:00Z"},
		{ID: "e:0", Kind: BookBorrowedEvent, Title: "1984", MemberID: 1, MemberName: "Bob", OccurredAt: "2023-07-02T00:00:00Z"},
		{ID: "e:0", Kind: BookReturnedEvent, Title: "1984", MemberID: 1, MemberName: "Bob", OccurredAt: "2023-07-02T00:00:00Z"},
	}
	assert.Equal(t, expected, events)
}

// TestLibraryService_JournalFailureKeepsMutation ensures a broken journal
// is only logged and never undoes the catalog change.
func TestLibraryService_JournalFailureKeepsMutation(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	journal := &MockJournal{
		RecordFunc: func(ctx context.Context, event Event) error {
			return errors.New("journal failure")
		},
	}
	clock := NewMockClocker()
	ls := NewLibraryService(zap.New(core), clock, NewMockUIDHandler("0", true), NewLibrary(clock), journal)

	book, err := ls.AddBook(context.Background(), "Dune", "Frank Herbert")
	require.NoError(t, err)
	assert.Equal(t, "Dune", book.Title)

	found, err := ls.SearchBook(context.Background(), "Dune")
	require.NoError(t, err)
	assert.Equal(t, StatusAvailable, found.Status)

	failures := logs.FilterMessage("service: failed to journal event").All()
	require.Len(t, failures, 1)
	assert.Equal(t, string(BookAddedEvent), failures[0].ContextMap()["event.kind"])
}

// TestLibraryService_UsesCommandLogger ensures the logger stored in the
// context by the console is the one used by the service.
func TestLibraryService_UsesCommandLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	ls := newTestService(NewNopJournal())
	ctx := context.WithValue(context.Background(), LoggerContextKey, zap.New(core).With(zap.String("command.id", "c:42")))

	_, err := ls.RegisterMember(ctx, "Alice")
	require.NoError(t, err)

	entries := logs.FilterMessage("service: member registered").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "c:42", entries[0].ContextMap()["command.id"])
	assert.Equal(t, int64(1), entries[0].ContextMap()["member.id"])
}

func TestLibraryService_Seed(t *testing.T) {
	journal := &MockJournal{}
	ls := newTestService(journal)
	ctx := context.Background()
	ls.Seed(ctx)

	var titles []string
	for book := range ls.Books(ctx) {
		titles = append(titles, book.Title)
	}
	assert.Equal(t, []string{"The Hobbit", "1984"}, titles)

	members := slices.Collect(ls.Members(ctx))
	require.Len(t, members, 2)
	assert.Equal(t, MemberView{ID: 1, Name: "Alice"}, members[0])
	assert.Equal(t, MemberView{ID: 2, Name: "Bob"}, members[1])
	assert.Len(t, journal.recorded, 4)
}

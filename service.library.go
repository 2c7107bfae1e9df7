package main

import (
	"context"
	"iter"
	"time"

	"go.uber.org/zap"
)

// LibraryServiceProvider is what the console drives.
type LibraryServiceProvider interface {
	AddBook(ctx context.Context, title, author string) (BookView, error)
	RegisterMember(ctx context.Context, name string) (MemberView, error)
	Books(ctx context.Context) iter.Seq[BookView]
	Members(ctx context.Context) iter.Seq[MemberView]
	SearchBook(ctx context.Context, title string) (BookView, error)
	BorrowBook(ctx context.Context, memberID int, title string) (LoanRecord, error)
	ReturnBook(ctx context.Context, memberID int, title string) (MemberView, error)
}

// LibraryService applies operator commands to the catalog and mirrors
// every successful mutation into the journal.
type LibraryService struct {
	logger  *zap.Logger
	clock   Clocker
	ids     UIDHandler
	library *Library
	journal Journaler
}

func NewLibraryService(logger *zap.Logger, clock Clocker, ids UIDHandler, library *Library, journal Journaler) *LibraryService {
	return &LibraryService{
		logger:  logger,
		clock:   clock,
		ids:     ids,
		library: library,
		journal: journal,
	}
}

// Seed fills the catalog with the starter books and members.
func (ls *LibraryService) Seed(ctx context.Context) {
	for _, b := range [][2]string{
		{"The Hobbit", "J.R.R. Tolkien"},
		{"1984", "George Orwell"},
	} {
		if _, err := ls.AddBook(ctx, b[0], b[1]); err != nil {
			ls.logger.Warn("service: skipped seed book", zap.String("title", b[0]), zap.Error(err))
		}
	}
	for _, name := range []string{"Alice", "Bob"} {
		_, _ = ls.RegisterMember(ctx, name)
	}
}

func (ls *LibraryService) AddBook(ctx context.Context, title, author string) (BookView, error) {
	logger := GetLoggerFromContext(ctx, ls.logger)
	book, err := ls.library.AddBook(title, author)
	if err != nil {
		logger.Info("service: book not added", zap.String("title", title), zap.Error(err))
		return book, err
	}
	logger.Info("service: book added", zap.String("title", title), zap.String("author", author))
	ls.record(ctx, Event{Kind: BookAddedEvent, Title: title, Author: author})
	return book, nil
}

func (ls *LibraryService) RegisterMember(ctx context.Context, name string) (MemberView, error) {
	member := ls.library.RegisterMember(name)
	GetLoggerFromContext(ctx, ls.logger).Info("service: member registered",
		zap.Int("member.id", member.ID),
		zap.String("member.name", member.Name),
	)
	ls.record(ctx, Event{Kind: MemberRegisteredEvent, MemberID: member.ID, MemberName: member.Name})
	return member, nil
}

func (ls *LibraryService) Books(_ context.Context) iter.Seq[BookView] {
	return ls.library.Books()
}

func (ls *LibraryService) Members(_ context.Context) iter.Seq[MemberView] {
	return ls.library.Members()
}

func (ls *LibraryService) SearchBook(ctx context.Context, title string) (BookView, error) {
	book, err := ls.library.SearchBook(title)
	if err != nil {
		GetLoggerFromContext(ctx, ls.logger).Debug("service: book search missed", zap.String("title", title))
	}
	return book, err
}

func (ls *LibraryService) BorrowBook(ctx context.Context, memberID int, title string) (LoanRecord, error) {
	logger := GetLoggerFromContext(ctx, ls.logger).With(zap.Int("member.id", memberID), zap.String("title", title))
	record, err := ls.library.BorrowBook(memberID, title)
	if err != nil {
		logger.Info("service: borrow refused", zap.Error(err))
		return record, err
	}
	logger.Info("service: book borrowed", zap.String("loan.date", record.Date))
	ls.record(ctx, Event{Kind: BookBorrowedEvent, Title: title, MemberID: record.MemberID, MemberName: record.MemberName})
	return record, nil
}

func (ls *LibraryService) ReturnBook(ctx context.Context, memberID int, title string) (MemberView, error) {
	logger := GetLoggerFromContext(ctx, ls.logger).With(zap.Int("member.id", memberID), zap.String("title", title))
	member, err := ls.library.ReturnBook(memberID, title)
	if err != nil {
		logger.Info("service: return refused", zap.Error(err))
		return member, err
	}
	logger.Info("service: book returned")
	ls.record(ctx, Event{Kind: BookReturnedEvent, Title: title, MemberID: member.ID, MemberName: member.Name})
	return member, nil
}

// record stamps and journals an event with the id of the command
// which caused it, if any. The catalog change already
// happened so a journal failure is only logged.
func (ls *LibraryService) record(ctx context.Context, event Event) {
	event.ID = ls.ids.Generate(EventIDPrefix)
	event.OccurredAt = ls.clock.Now().UTC().Format(time.RFC3339)
	event.CommandID = GetValueFromContext(ctx, CommandIDContextKey)
	if err := ls.journal.Record(ctx, event); err != nil {
		GetLoggerFromContext(ctx, ls.logger).Error("service: failed to journal event",
			zap.String("event.id", event.ID),
			zap.String("event.kind", string(event.Kind)),
			zap.Error(err),
		)
	}
}

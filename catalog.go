package main

import (
	"fmt"
	"iter"
	"time"
)

// Library is the in-memory catalog. It owns every book and member and is
// the only place where loan state changes. It is not safe for concurrent use.
type Library struct {
	clock        Clocker
	books        map[string]*Book
	bookOrder    []string
	members      map[int]*Member
	memberOrder  []int
	nextMemberID int
}

// NewLibrary provides an empty catalog. The clock dates loan records.
func NewLibrary(clock Clocker) *Library {
	return &Library{
		clock:        clock,
		books:        make(map[string]*Book),
		members:      make(map[int]*Member),
		nextMemberID: 1,
	}
}

// AddBook inserts a new available book. The title must not exist yet.
func (l *Library) AddBook(title, author string) (BookView, error) {
	if _, found := l.books[title]; found {
		return BookView{}, fmt.Errorf("add book '%s': %w", title, ErrDuplicateBook)
	}
	book := &Book{Title: title, Author: author, Status: StatusAvailable}
	l.books[title] = book
	l.bookOrder = append(l.bookOrder, title)
	return book.view(), nil
}

// RegisterMember creates a member with the next sequential id.
func (l *Library) RegisterMember(name string) MemberView {
	member := &Member{ID: l.nextMemberID, Name: name}
	l.members[member.ID] = member
	l.memberOrder = append(l.memberOrder, member.ID)
	l.nextMemberID++
	return member.view()
}

// Books iterates over the catalog in insertion order. The sequence
// can be ranged over any number of times.
func (l *Library) Books() iter.Seq[BookView] {
	return func(yield func(BookView) bool) {
		for _, title := range l.bookOrder {
			if !yield(l.books[title].view()) {
				return
			}
		}
	}
}

// Members iterates over registered members in registration order.
func (l *Library) Members() iter.Seq[MemberView] {
	return func(yield func(MemberView) bool) {
		for _, id := range l.memberOrder {
			if !yield(l.members[id].view()) {
				return
			}
		}
	}
}

// SearchBook looks a book up by its exact title.
func (l *Library) SearchBook(title string) (BookView, error) {
	book, found := l.books[title]
	if !found {
		return BookView{}, fmt.Errorf("search book '%s': %w", title, ErrBookNotFound)
	}
	return book.view(), nil
}

// GetMember looks a member up by id.
func (l *Library) GetMember(id int) (MemberView, error) {
	member, found := l.members[id]
	if !found {
		return MemberView{}, fmt.Errorf("member id %d: %w", id, ErrMemberNotFound)
	}
	return member.view(), nil
}

// BorrowBook lends an available book to a member. Every check runs
// before any mutation so a failure leaves the catalog untouched.
func (l *Library) BorrowBook(memberID int, title string) (LoanRecord, error) {
	member, found := l.members[memberID]
	if !found {
		return LoanRecord{}, fmt.Errorf("borrow: member id %d: %w", memberID, ErrMemberNotFound)
	}
	book, found := l.books[title]
	if !found {
		return LoanRecord{}, fmt.Errorf("borrow: book '%s': %w", title, ErrBookNotFound)
	}
	if book.Status != StatusAvailable {
		return LoanRecord{}, fmt.Errorf("borrow: book '%s': %w", title, ErrBookUnavailable)
	}

	record := LoanRecord{
		MemberID:   member.ID,
		MemberName: member.Name,
		Date:       l.clock.Now().Format(time.DateOnly),
	}
	book.Status = StatusBorrowed
	book.History = append(book.History, record)
	member.BorrowedBooks = append(member.BorrowedBooks, title)
	return record, nil
}

// ReturnBook takes a book back from the member holding it. The history
// is left as is: it only records borrow events.
func (l *Library) ReturnBook(memberID int, title string) (MemberView, error) {
	member, found := l.members[memberID]
	if !found {
		return MemberView{}, fmt.Errorf("return: member id %d: %w", memberID, ErrMemberNotFound)
	}
	book, found := l.books[title]
	if !found {
		return MemberView{}, fmt.Errorf("return: book '%s': %w", title, ErrBookNotFound)
	}
	if !member.holds(title) || book.Status != StatusBorrowed {
		return MemberView{}, fmt.Errorf("return: book '%s' by member id %d: %w", title, memberID, ErrNotBorrowedByMember)
	}

	book.Status = StatusAvailable
	member.release(title)
	return member.view(), nil
}

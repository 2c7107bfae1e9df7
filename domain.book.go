package main

import "fmt"

// BookStatus is the loan state of a book.
type BookStatus string

const (
	StatusAvailable BookStatus = "available"
	StatusBorrowed  BookStatus = "borrowed"
)

// LoanRecord is a snapshot of one borrow event. It is never mutated.
type LoanRecord struct {
	MemberID   int    `json:"memberId"`
	MemberName string `json:"name"`
	Date       string `json:"date"`
}

// Book represents a book entity. Its title is the catalog key.
type Book struct {
	Title   string
	Author  string
	Status  BookStatus
	History []LoanRecord
}

// BookView is a read-only copy of a book handed out of the catalog.
type BookView struct {
	Title   string       `json:"title"`
	Author  string       `json:"author"`
	Status  BookStatus   `json:"status"`
	History []LoanRecord `json:"history"`
}

func (b *Book) view() BookView {
	history := make([]LoanRecord, len(b.History))
	copy(history, b.History)
	return BookView{
		Title:   b.Title,
		Author:  b.Author,
		Status:  b.Status,
		History: history,
	}
}

func (bv BookView) String() string {
	return fmt.Sprintf("'%s' by %s (%s)", bv.Title, bv.Author, bv.Status)
}

// LastLoan returns the most recent loan record if any.
func (bv BookView) LastLoan() (LoanRecord, bool) {
	if len(bv.History) == 0 {
		return LoanRecord{}, false
	}
	return bv.History[len(bv.History)-1], true
}

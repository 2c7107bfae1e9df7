package main

import "errors"

// Catalog errors. Callers wrap them with context and match with errors.Is.
var (
	ErrDuplicateBook       = errors.New("book already exists")
	ErrBookNotFound        = errors.New("book not found")
	ErrMemberNotFound      = errors.New("member not found")
	ErrBookUnavailable     = errors.New("book is currently unavailable")
	ErrNotBorrowedByMember = errors.New("book was not borrowed by member")

	// ErrInvalidMemberID is the only input fault which stops the console.
	ErrInvalidMemberID = errors.New("invalid member id")
)

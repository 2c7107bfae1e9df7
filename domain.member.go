package main

import (
	"fmt"
	"slices"
)

// Member represents a registered library member.
type Member struct {
	ID            int
	Name          string
	BorrowedBooks []string // titles currently held, in borrow order
}

// MemberView is a read-only copy of a member handed out of the catalog.
type MemberView struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	BorrowedBooks []string `json:"borrowedBooks"`
}

func (m *Member) view() MemberView {
	return MemberView{
		ID:            m.ID,
		Name:          m.Name,
		BorrowedBooks: slices.Clone(m.BorrowedBooks),
	}
}

// holds reports whether the member currently has the given title.
func (m *Member) holds(title string) bool {
	return slices.Contains(m.BorrowedBooks, title)
}

// release drops the first occurrence of title from the borrowed list.
func (m *Member) release(title string) {
	if i := slices.Index(m.BorrowedBooks, title); i >= 0 {
		m.BorrowedBooks = slices.Delete(m.BorrowedBooks, i, i+1)
	}
}

func (mv MemberView) String() string {
	return fmt.Sprintf("Member ID: %d, Name: %s", mv.ID, mv.Name)
}

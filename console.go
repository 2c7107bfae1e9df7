package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	menuTitle   = "===== Library Management System ====="
	exitChoice  = "8"
	goodbyeLine = "Thank you for using the Library Management System. Goodbye!"
)

// command is one entry of the operator menu. It returns true when
// the session must end.
type command struct {
	choice string
	label  string
	run    func(ctx context.Context) (bool, error)
}

// Console is the text front end of the library. It reads commands from
// the input, dispatches each one to the service and renders the outcome.
type Console struct {
	logger   *zap.Logger
	ids      UIDHandler
	in       *bufio.Reader
	out      io.Writer
	service  LibraryServiceProvider
	commands []command
	stats    *Statistics
}

// Statistics holds the session counters logged when the console stops.
type Statistics struct {
	started time.Time
	called  uint64
	choices map[string]uint64
}

// NewConsole provides a console reading from in and writing to out.
func NewConsole(logger *zap.Logger, ids UIDHandler, in io.Reader, out io.Writer, service LibraryServiceProvider) *Console {
	c := &Console{
		logger:  logger,
		ids:     ids,
		in:      bufio.NewReader(in),
		out:     out,
		service: service,
		stats:   &Statistics{started: time.Now(), choices: make(map[string]uint64)},
	}
	c.commands = []command{
		{"1", "Display all books", c.DisplayBooks},
		{"2", "Display all members", c.DisplayMembers},
		{"3", "Add a new book", c.AddBook},
		{"4", "Register a new member", c.RegisterMember},
		{"5", "Search for a book", c.SearchBook},
		{"6", "Borrow a book", c.BorrowBook},
		{"7", "Return a book", c.ReturnBook},
		{exitChoice, "Exit", c.Exit},
	}
	return c
}

// Run loops over operator commands until the exit choice or the end of
// the input. Only a malformed member id or a broken input stops it with
// an error.
func (c *Console) Run(ctx context.Context) error {
	defer func() {
		c.logger.Info("console: session ended",
			zap.Uint64("commands.total", c.stats.called),
			zap.Any("commands.choices", c.stats.choices),
			zap.Duration("session.duration", time.Since(c.stats.started)),
		)
	}()

	for {
		c.printMenu()
		choice, err := c.prompt("Enter your choice: ")
		if errors.Is(err, io.EOF) {
			c.logger.Info("console: input closed")
			return nil
		}
		if err != nil {
			return fmt.Errorf("console: read choice: %w", err)
		}

		done, err := c.dispatch(ctx, strings.TrimSpace(choice))
		if errors.Is(err, io.EOF) {
			c.logger.Info("console: input closed during command")
			return nil
		}
		if err != nil || done {
			return err
		}
	}
}

func (c *Console) dispatch(ctx context.Context, choice string) (bool, error) {
	for _, cmd := range c.commands {
		if cmd.choice != choice {
			continue
		}
		c.stats.called++
		c.stats.choices[cmd.label]++
		id := c.ids.Generate(CommandIDPrefix)
		logger := c.logger.With(zap.String("command.id", id), zap.String("command.name", cmd.label))
		ctx = context.WithValue(ctx, CommandIDContextKey, id)
		ctx = context.WithValue(ctx, LoggerContextKey, logger)
		logger.Debug("console: command received")
		return cmd.run(ctx)
	}
	c.println("Invalid choice. Please try again.")
	return false, nil
}

func (c *Console) printMenu() {
	c.println("\n" + menuTitle)
	for _, cmd := range c.commands {
		c.printf("%s. %s\n", cmd.choice, cmd.label)
	}
}

// DisplayBooks lists the whole catalog.
func (c *Console) DisplayBooks(ctx context.Context) (bool, error) {
	empty := true
	for book := range c.service.Books(ctx) {
		if empty {
			c.println("\n--- Current Library Collection ---")
			empty = false
		}
		c.println(book.String())
	}
	if empty {
		c.println("The library is currently empty.")
		return false, nil
	}
	c.println("----------------------------------\n")
	return false, nil
}

// DisplayMembers lists every registered member.
func (c *Console) DisplayMembers(ctx context.Context) (bool, error) {
	empty := true
	for member := range c.service.Members(ctx) {
		if empty {
			c.println("\n--- Registered Members ---")
			empty = false
		}
		c.println(member.String())
	}
	if empty {
		c.println("No members are currently registered.")
		return false, nil
	}
	c.println("--------------------------\n")
	return false, nil
}

func (c *Console) AddBook(ctx context.Context) (bool, error) {
	title, err := c.prompt("Enter book title: ")
	if err != nil {
		return false, err
	}
	author, err := c.prompt("Enter book author: ")
	if err != nil {
		return false, err
	}
	book, err := c.service.AddBook(ctx, title, author)
	if err != nil {
		c.renderError(err, 0, title)
		return false, nil
	}
	c.printf("Book added: %s\n", book)
	return false, nil
}

func (c *Console) RegisterMember(ctx context.Context) (bool, error) {
	name, err := c.prompt("Enter member's name: ")
	if err != nil {
		return false, err
	}
	member, err := c.service.RegisterMember(ctx, name)
	if err != nil {
		c.renderError(err, 0, "")
		return false, nil
	}
	c.printf("Member '%s' registered with ID: %d\n", member.Name, member.ID)
	return false, nil
}

func (c *Console) SearchBook(ctx context.Context) (bool, error) {
	title, err := c.prompt("Enter the title of the book to search for: ")
	if err != nil {
		return false, err
	}
	book, err := c.service.SearchBook(ctx, title)
	if errors.Is(err, ErrBookNotFound) {
		c.printf("Error: The book '%s' is not found in the library.\n", title)
		return false, nil
	}
	if err != nil {
		c.renderError(err, 0, title)
		return false, nil
	}
	c.println("\n--- Book Found ---")
	c.printf("Title: %s\n", book.Title)
	c.printf("Author: %s\n", book.Author)
	c.printf("Status: %s\n", book.Status)
	if len(book.History) == 0 {
		c.println("Borrowing History: none")
	} else {
		c.println("Borrowing History:")
		for _, loan := range book.History {
			c.printf("  - %s: %s (ID: %d)\n", loan.Date, loan.MemberName, loan.MemberID)
		}
	}
	c.println("------------------\n")
	return false, nil
}

func (c *Console) BorrowBook(ctx context.Context) (bool, error) {
	memberID, err := c.promptMemberID()
	if err != nil {
		return false, err
	}
	title, err := c.prompt("Enter the title of the book to borrow: ")
	if err != nil {
		return false, err
	}
	record, err := c.service.BorrowBook(ctx, memberID, title)
	if err != nil {
		c.renderError(err, memberID, title)
		return false, nil
	}
	c.printf("'%s' has been successfully borrowed by %s.\n", title, record.MemberName)
	return false, nil
}

func (c *Console) ReturnBook(ctx context.Context) (bool, error) {
	memberID, err := c.promptMemberID()
	if err != nil {
		return false, err
	}
	title, err := c.prompt("Enter the title of the book to return: ")
	if err != nil {
		return false, err
	}
	member, err := c.service.ReturnBook(ctx, memberID, title)
	if err != nil {
		c.renderError(err, memberID, title)
		return false, nil
	}
	c.printf("Thank you, %s, for returning '%s'.\n", member.Name, title)
	return false, nil
}

func (c *Console) Exit(_ context.Context) (bool, error) {
	c.println(goodbyeLine)
	return true, nil
}

// renderError turns a catalog error into the operator message.
func (c *Console) renderError(err error, memberID int, title string) {
	switch {
	case errors.Is(err, ErrDuplicateBook):
		c.printf("Error: The book '%s' already exists.\n", title)
	case errors.Is(err, ErrMemberNotFound):
		c.printf("Error: Member with ID %d not found.\n", memberID)
	case errors.Is(err, ErrBookNotFound):
		c.printf("Error: Book '%s' not found.\n", title)
	case errors.Is(err, ErrBookUnavailable):
		c.printf("Error: '%s' is currently unavailable.\n", title)
	case errors.Is(err, ErrNotBorrowedByMember):
		c.printf("Error: '%s' was not borrowed by member ID %d.\n", title, memberID)
	default:
		c.printf("Error: %v\n", err)
	}
}

// prompt prints the label and reads one line without its line ending.
// A last line without newline is still returned before io.EOF.
func (c *Console) prompt(label string) (string, error) {
	c.printf("%s", label)
	line, err := c.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *Console) promptMemberID() (int, error) {
	raw, err := c.prompt("Enter member ID: ")
	if err != nil {
		return 0, err
	}
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMemberID, raw)
	}
	return id, nil
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

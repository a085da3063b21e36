package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"inventory-ledger/internal/ledger"
	"inventory-ledger/internal/models"
	"inventory-ledger/internal/notify"
)

var (
	// ErrUnknownCommand is returned for a command name the console does not know
	ErrUnknownCommand = errors.New("unknown command")
	// ErrUsage is returned when a command's arguments are missing or malformed
	ErrUsage = errors.New("usage")
)

// Console interprets line commands against a ledger. It owns the view state
// the ledger does not: the selected warehouse.
type Console struct {
	ledger *ledger.Ledger
	feed   *notify.Feed
	out    io.Writer
	logger *slog.Logger

	selectedWarehouse string
	commands          map[string]command
}

type command struct {
	usage string
	run   func(c *Console, args []string) error
}

// Option configures a Console
type Option func(*Console)

// WithFeed sets the notification feed printed by the toasts command
func WithFeed(feed *notify.Feed) Option {
	return func(c *Console) {
		c.feed = feed
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Console) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a console writing to out with "all" warehouses selected
func New(l *ledger.Ledger, out io.Writer, opts ...Option) *Console {
	c := &Console{
		ledger:            l,
		out:               out,
		logger:            slog.Default(),
		selectedWarehouse: models.AllWarehouses,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.commands = commandTable()
	return c
}

// SelectedWarehouse returns the warehouse used when a command names none
func (c *Console) SelectedWarehouse() string {
	return c.selectedWarehouse
}

// Run executes every line of r. Command errors are printed and do not stop the
// run; it returns the number of failed commands.
func (c *Console) Run(ctx context.Context, r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	failed := 0
	lineNo := 0

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return failed, err
		}
		lineNo++

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if err := c.Execute(line); err != nil {
			failed++
			c.logger.Debug("Command failed", "line", lineNo, "command", line, "error", err)
			fmt.Fprintf(c.out, "error: %v\n", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return failed, fmt.Errorf("read commands: %w", err)
	}
	return failed, nil
}

// Execute runs a single command line
func (c *Console) Execute(line string) error {
	args, err := splitArgs(line)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return nil
	}

	name := strings.ToLower(args[0])
	cmd, ok := c.commands[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}

	if err := cmd.run(c, args[1:]); err != nil {
		if errors.Is(err, ErrUsage) {
			return fmt.Errorf("%w: %s", err, cmd.usage)
		}
		return err
	}
	return nil
}

// NotificationPrinter returns a sink printing each notification to w as it is emitted
func NotificationPrinter(w io.Writer) notify.Sink {
	return notify.SinkFunc(func(n models.Notification) {
		fmt.Fprintf(w, "[%s] %s\n", n.Severity, n.Message)
	})
}

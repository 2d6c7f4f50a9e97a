package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/oshokin/clickguard/internal/board"
	"github.com/oshokin/clickguard/internal/config"
	"github.com/oshokin/clickguard/internal/logger"
	"github.com/oshokin/clickguard/looper"
)

// Options configures an interactive session.
type Options struct {
	// ConfigPath to YAML settings file, defaults to standard filename if empty.
	ConfigPath string
	// LogLevel overrides the log level from the configuration when specified.
	LogLevel string
	// In provides the commands, one per line.
	In io.Reader
	// Out receives command output.
	Out io.Writer
}

const helpText = `Commands:
  click <element> [count]  click an element count times (default 1)
  rest <group>             force the guard of a group to rest
  status                   print guard states and click counters
  help                     print this help
  quit                     end the session`

var (
	// errUnknownCommand is returned for unrecognized input.
	errUnknownCommand = errors.New("unknown command")
	// errUsage is returned when a command has invalid arguments.
	errUsage = errors.New("invalid arguments")
	// errStreamsRequired is returned when input or output is missing.
	errStreamsRequired = errors.New("input and output streams must be provided")
)

// session executes commands on the looper goroutine.
type session struct {
	// board holds the guarded elements.
	board *board.Board
	// out receives command output.
	out io.Writer
	// done is set once quit has been executed.
	done bool
}

// Run starts the session and blocks until quit, end of input or cancellation.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "console")

	if opts.In == nil || opts.Out == nil {
		return errStreamsRequired
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logger.ApplyLevel(ctx, cfg.LogLevel, opts.LogLevel)

	l := looper.New(nil)

	b, err := board.New(cfg, l, logger.FromContext(ctx))
	if err != nil {
		return err
	}

	s := &session{
		board: b,
		out:   opts.Out,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	logger.InfoKV(ctx, "Session started", "groups", strings.Join(b.Groups(), ","))

	go func() {
		scanner := bufio.NewScanner(opts.In)
		for scanner.Scan() {
			line := scanner.Text()

			l.Post(func() {
				if quit := s.execute(ctx, line); quit {
					cancel()
				}
			})
		}

		if err := scanner.Err(); err != nil {
			logger.ErrorKV(ctx, "Read commands failed", "error", err)
		}

		// Runs after every command posted above.
		l.Post(cancel)
	}()

	if err := l.Run(ctx); err != nil {
		return fmt.Errorf("dispatch loop: %w", err)
	}

	logger.Info(ctx, "Session finished")

	return nil
}

// execute runs one command line and reports whether the session should end.
func (s *session) execute(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if s.done || len(fields) == 0 {
		return s.done
	}

	var err error

	switch strings.ToLower(fields[0]) {
	case "quit", "exit":
		s.done = true

		return true
	case "help":
		s.println(helpText)
	case "click":
		err = s.click(fields[1:])
	case "rest":
		err = s.rest(fields[1:])
	case "status":
		s.status()
	default:
		err = fmt.Errorf("%w: %q", errUnknownCommand, fields[0])
	}

	if err != nil {
		logger.WarnKV(ctx, "Command failed", "command", line, "error", err)
		s.println("error: " + err.Error())
	}

	return false
}

// click handles `click <element> [count]`.
func (s *session) click(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("%w: click <element> [count]", errUsage)
	}

	count := 1

	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: count must be a positive number", errUsage)
		}

		count = n
	}

	for range count {
		accepted, err := s.board.Click(args[0])
		if err != nil {
			return err
		}

		outcome := "ignored"
		if accepted {
			outcome = "accepted"
		}

		s.println(args[0] + ": " + outcome)
	}

	return nil
}

// rest handles `rest <group>`.
func (s *session) rest(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: rest <group>", errUsage)
	}

	if err := s.board.Rest(args[0]); err != nil {
		return err
	}

	s.println(args[0] + ": resting")

	return nil
}

// status prints guard states and counters.
func (s *session) status() {
	for _, name := range s.board.Groups() {
		guard, _ := s.board.Guard(name)
		s.println(fmt.Sprintf("group %s: %s (watch period %s)", name, guard.State(), guard.WatchPeriod()))
	}

	for _, stats := range s.board.Snapshot() {
		s.println(fmt.Sprintf("element %s: clicks=%d accepted=%d ignored=%d",
			stats.Element, stats.Clicks, stats.Accepted, stats.Ignored()))
	}
}

func (s *session) println(text string) {
	_, _ = fmt.Fprintln(s.out, text)
}


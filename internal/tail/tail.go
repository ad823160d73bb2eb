// Package tail follows a text file like "tail -f" and hands every line,
// optionally transformed, to a callback.
//
// It is used to compress a growing file (a chat transcript, a prompt log)
// line by line as it is written. Log rotation is detected through fsnotify
// remove and rename events.
package tail

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrFileRotated is returned when the file is rotated and FollowRotate is off.
var ErrFileRotated = errors.New("file rotated")

// DefaultRotateTimeout is how long a rotated file is waited for.
const DefaultRotateTimeout = 10 * time.Second

const maxLineSize = 1024 * 1024 // 1MB

// Line is one non-empty line read from the file.
type Line struct {
	Number int    // 1-based within the read that produced it
	Text   string // as read, without the newline
	Output string // Text after Transform
}

// Options configures the follower.
type Options struct {
	FilePath      string              // Path to the file
	Lines         int                 // Number of initial lines to show
	Follow        bool                // Whether to follow the file for new content
	FollowRotate  bool                // Whether to follow through rotations
	RotateTimeout time.Duration       // Zero means DefaultRotateTimeout
	Pattern       *regexp.Regexp      // Optional filter on the raw line
	Transform     func(string) string // Optional; applied to each matching line
	OutputFunc    func(Line) error    // Called for each matching line
	Logger        *slog.Logger        // Optional; defaults to slog.Default()
}

// Follower tails one file.
type Follower struct {
	opts    Options
	logger  *slog.Logger
	file    *os.File
	offset  int64
	watcher *fsnotify.Watcher
}

// New creates a Follower with the given options.
func New(opts Options) *Follower {
	if opts.RotateTimeout <= 0 {
		opts.RotateTimeout = DefaultRotateTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Follower{opts: opts, logger: logger}
}

// Run starts following. It blocks until ctx is cancelled or an error occurs.
func (f *Follower) Run(ctx context.Context) error {
	if f.opts.OutputFunc == nil {
		return errors.New("tail: OutputFunc is required")
	}

	if err := f.openFile(); err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.close()

	if f.opts.Lines > 0 {
		if err := f.readInitialLines(); err != nil {
			return fmt.Errorf("failed to read initial lines: %w", err)
		}
	}

	if !f.opts.Follow {
		return nil
	}

	if err := f.setupWatcher(); err != nil {
		return fmt.Errorf("failed to setup watcher: %w", err)
	}

	return f.watch(ctx)
}

// openFile opens the file and records its end as the follow offset.
func (f *Follower) openFile() error {
	file, err := os.Open(f.opts.FilePath)
	if err != nil {
		return err
	}
	f.file = file

	stat, err := file.Stat()
	if err != nil {
		return err
	}
	f.offset = stat.Size()
	return nil
}

// readInitialLines emits the last N matching lines of the file.
func (f *Follower) readInitialLines() error {
	stat, err := f.file.Stat()
	if err != nil {
		return err
	}
	fileSize := stat.Size()
	if fileSize == 0 {
		return nil
	}

	// Prose lines run long; assume ~300 bytes each and read twice that.
	startPos := fileSize - int64(f.opts.Lines*300*2)
	if startPos < 0 {
		startPos = 0
	}
	if _, err := f.file.Seek(startPos, io.SeekStart); err != nil {
		return err
	}

	scanner := bufio.NewScanner(f.file)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	// Drop the partial first line when starting mid-file.
	if startPos > 0 {
		scanner.Scan()
	}

	var lines []Line
	n := 0
	for scanner.Scan() {
		n++
		if line, ok := f.accept(scanner.Text(), n); ok {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	if len(lines) > f.opts.Lines {
		lines = lines[len(lines)-f.opts.Lines:]
	}
	for _, line := range lines {
		if err := f.opts.OutputFunc(line); err != nil {
			return err
		}
	}

	f.offset, err = f.file.Seek(0, io.SeekEnd)
	return err
}

func (f *Follower) setupWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	f.watcher = watcher
	return watcher.Add(f.opts.FilePath)
}

// watch monitors the file for changes and outputs new lines.
func (f *Follower) watch(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-f.watcher.Events:
			if !ok {
				return errors.New("watcher closed unexpectedly")
			}
			if err := f.handleEvent(ctx, event); err != nil {
				return err
			}

		case err, ok := <-f.watcher.Errors:
			if !ok {
				return errors.New("watcher error channel closed")
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

func (f *Follower) handleEvent(ctx context.Context, event fsnotify.Event) error {
	switch {
	case event.Has(fsnotify.Write):
		return f.readNewContent()
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return f.handleRotation(ctx)
	}
	return nil
}

// readNewContent emits complete lines written since the last read. A
// trailing line without a newline is left for the next write event.
func (f *Follower) readNewContent() error {
	stat, err := f.file.Stat()
	if err != nil {
		return err
	}
	if stat.Size() < f.offset {
		f.logger.Info("file truncated, reading from start", "file", f.opts.FilePath)
		f.offset = 0
	}

	if _, err := f.file.Seek(f.offset, io.SeekStart); err != nil {
		return err
	}

	reader := bufio.NewReaderSize(f.file, 64*1024)
	n := 0
	for {
		text, err := reader.ReadString('\n')
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		f.offset += int64(len(text))

		n++
		line, ok := f.accept(strings.TrimRight(text, "\r\n"), n)
		if !ok {
			continue
		}
		if err := f.opts.OutputFunc(line); err != nil {
			return err
		}
	}
}

// handleRotation waits for a rotated file to reappear and follows it from
// the start.
func (f *Follower) handleRotation(ctx context.Context) error {
	if !f.opts.FollowRotate {
		f.logger.Warn("file rotated, stopping; use --follow-rotate to keep following", "file", f.opts.FilePath)
		return ErrFileRotated
	}

	if f.file != nil {
		f.file.Close()
		f.file = nil
	}

	timeout := time.After(f.opts.RotateTimeout)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timeout:
			return errors.New("timeout waiting for rotated file to reappear")
		case <-ticker.C:
			file, err := os.Open(f.opts.FilePath)
			if err != nil {
				continue
			}
			f.file = file
			f.offset = 0

			if err := f.watcher.Add(f.opts.FilePath); err != nil {
				return fmt.Errorf("failed to watch rotated file: %w", err)
			}
			f.logger.Info("file rotated, following new file", "file", f.opts.FilePath)

			// Anything written before the watch was re-added.
			return f.readNewContent()
		}
	}
}

// accept filters and transforms one raw line. Blank lines are skipped.
func (f *Follower) accept(text string, n int) (Line, bool) {
	if strings.TrimSpace(text) == "" {
		return Line{}, false
	}
	if f.opts.Pattern != nil && !f.opts.Pattern.MatchString(text) {
		return Line{}, false
	}

	out := text
	if f.opts.Transform != nil {
		out = f.opts.Transform(text)
	}
	return Line{Number: n, Text: text, Output: out}, true
}

func (f *Follower) close() {
	if f.file != nil {
		f.file.Close()
	}
	if f.watcher != nil {
		f.watcher.Close()
	}
}

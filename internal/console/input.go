package console

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/rocketscienceinc/tictactoe-terminal/internal/apperror"
)

// Input reads moves line by line. Lines are scanned in the background so a
// pending read can be abandoned when the context is canceled.
type Input struct {
	lines chan string
	done  chan struct{}
	once  sync.Once
	err   error
}

func NewInput(reader io.Reader) *Input {
	input := &Input{
		lines: make(chan string),
		done:  make(chan struct{}),
	}

	go input.scan(reader)

	return input
}

func (that *Input) scan(reader io.Reader) {
	defer close(that.lines)

	splitter := &lineSplitter{}

	scanner := bufio.NewScanner(reader)
	scanner.Split(splitter.split)
	for scanner.Scan() {
		select {
		case that.lines <- scanner.Text():
		case <-that.done:
			return
		}
	}

	// written before lines is closed, read only after
	that.err = scanner.Err()
}

// ReadLine blocks until a line is available, the input ends or ctx is done.
func (that *Input) ReadLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("read interrupted: %w", ctx.Err())
	case line, ok := <-that.lines:
		if ok {
			return line, nil
		}
		if that.err != nil {
			return "", fmt.Errorf("failed to read input: %w", that.err)
		}
		return "", apperror.ErrInputClosed
	}
}

// ReadMove reads a cell index. Text that is not a number wraps apperror.ErrInvalidInput.
func (that *Input) ReadMove(ctx context.Context) (int, error) {
	line, err := that.ReadLine(ctx)
	if err != nil {
		return 0, err
	}

	cell, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a cell number", apperror.ErrInvalidInput, line)
	}

	return cell, nil
}

// Close releases a scanner waiting to deliver a line. A scanner blocked
// inside the reader stays there until the reader returns.
func (that *Input) Close() {
	that.once.Do(func() {
		close(that.done)
	})
}

// maxLineLength bounds a line kept in memory. Longer lines are cut to this
// prefix and the rest is skipped up to the next newline.
const maxLineLength = 1024

type lineSplitter struct {
	discarding bool
}

func (that *lineSplitter) split(data []byte, atEOF bool) (int, []byte, error) {
	if that.discarding {
		if i := bytes.IndexByte(data, '\n'); i >= 0 {
			that.discarding = false
			return i + 1, nil, nil
		}
		return len(data), nil, nil
	}

	advance, token, err := bufio.ScanLines(data, atEOF)
	if advance > 0 || token != nil || err != nil {
		return advance, token, err
	}

	if len(data) >= maxLineLength {
		that.discarding = true
		return len(data), data[:maxLineLength], nil
	}

	return 0, nil, nil
}

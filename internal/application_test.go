package application

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-terminal/internal/config"
	"github.com/rocketscienceinc/tictactoe-terminal/testing/suite"
)

func TestRun(t *testing.T) {
	t.Run("Plays a game to the end", func(t *testing.T) {
		ctx, st := suite.New(t)

		// Given: a typed game with one typo
		in := strings.NewReader("4\nzero\n0\n1\n3\n7\n")
		var out bytes.Buffer

		// When: the app runs with hints
		err := run(ctx, st.Logger, &config.Config{LogLevel: "info", Rounds: 1}, in, &out)

		// Then: the game ends with X as the winner
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out.String(), "0|1|2\n-----\n3|4|5\n-----\n6|7|8\n\n"))
		assert.Contains(t, out.String(), "Invalid move. Try again")
		assert.True(t, strings.HasSuffix(out.String(), "\n\nWinner: X\n"))
	})

	t.Run("Closed input is reported, not failed", func(t *testing.T) {
		ctx, st := suite.New(t)

		in := strings.NewReader("4\n")
		var out bytes.Buffer

		err := run(ctx, st.Logger, &config.Config{LogLevel: "info", NoHints: true, Rounds: 1}, in, &out)

		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(out.String(), "\nGame interrupted.\n"))
		assert.NotContains(t, out.String(), "0|1|2")
	})

	t.Run("Oversized line is reprompted", func(t *testing.T) {
		ctx, st := suite.New(t)

		// Given: a 70000 character line before a normal game
		in := strings.NewReader(strings.Repeat("a", 70000) + "\n4\n0\n1\n3\n7\n")
		var out bytes.Buffer

		// When: the app runs
		err := run(ctx, st.Logger, &config.Config{LogLevel: "info", NoHints: true, Rounds: 1}, in, &out)

		// Then: the long line is rejected and the game still ends
		require.NoError(t, err)
		assert.Equal(t, 1, strings.Count(out.String(), "Invalid move. Try again"))
		assert.True(t, strings.HasSuffix(out.String(), "\n\nWinner: X\n"))
	})

	t.Run("Canceled context during a read is reported, not failed", func(t *testing.T) {
		ctx, st := suite.New(t)

		// Given: an input that never produces a line and a context canceled while waiting
		reader, writer := io.Pipe()
		t.Cleanup(func() { _ = writer.Close() })

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()
		time.AfterFunc(50*time.Millisecond, cancel)

		var out bytes.Buffer

		// When: the app runs
		err := run(ctx, st.Logger, &config.Config{LogLevel: "info", NoHints: true, Rounds: 1}, reader, &out)

		// Then: the interruption is reported after the first prompt
		require.NoError(t, err)
		assert.Contains(t, out.String(), "X's turn. Enter your next move: ")
		assert.True(t, strings.HasSuffix(out.String(), "\nGame interrupted.\n"))
	})

	t.Run("Several rounds print a scoreboard", func(t *testing.T) {
		ctx, st := suite.New(t)

		in := strings.NewReader("4\n0\n1\n3\n7\n0\n1\n2\n4\n3\n5\n7\n6\n8\n")
		var out bytes.Buffer

		err := run(ctx, st.Logger, &config.Config{LogLevel: "info", NoHints: true, Rounds: 2}, in, &out)

		require.NoError(t, err)
		assert.Contains(t, out.String(), "Round 2 of 2")
		assert.Contains(t, out.String(), "X: 1  O: 0  Draw: 1\n")
	})
}

package console

import (
	"fmt"
	"io"
)

type Output struct {
	writer io.Writer
}

func NewOutput(writer io.Writer) *Output {
	return &Output{
		writer: writer,
	}
}

// Print writes pre-formatted text as is.
func (that *Output) Print(text string) error {
	if _, err := io.WriteString(that.writer, text); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}

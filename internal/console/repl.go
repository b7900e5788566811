// Package console runs the chat dispatcher as an interactive terminal session.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// Prompt is shown before each line of input.
const Prompt = "> "

// Handler answers one message of a user.
type Handler interface {
	Handle(ctx context.Context, user, text string) (string, error)
}

// Session feeds lines from In to Bot as User and prints the replies.
type Session struct {
	In    LineInput
	Out   io.Writer
	Bot   Handler
	User  string
	Width int
}

// Run reads until EOF or ctx is cancelled. It returns the first persistence
// error, which ends the session.
func (s *Session) Run(ctx context.Context) error {
	prompt := promptStyle.Render(Prompt)
	for {
		if ctx.Err() != nil {
			return nil
		}
		line, err := s.In.ReadLine(prompt)
		if err != nil {
			switch {
			case errors.Is(err, readline.ErrInterrupt):
				fmt.Fprintln(s.Out)
				continue
			case errors.Is(err, io.EOF):
				return nil
			default:
				return fmt.Errorf("read input: %w", err)
			}
		}

		text := strings.TrimSpace(line)
		if text == "" {
			continue
		}

		reply, err := s.Bot.Handle(ctx, s.User, text)
		if err != nil {
			return err
		}
		if reply != "" {
			fmt.Fprintln(s.Out, Render(reply, s.Width))
		}
	}
}

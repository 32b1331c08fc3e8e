package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yourusername/desk-cli/internal/apps/terminal"
	"github.com/yourusername/desk-cli/internal/client"
)

// termCmd attaches to a terminal window
var termCmd = &cobra.Command{
	Use:   "term <window-id> [command...]",
	Short: "Use a terminal window",
	Long: `Runs commands in a terminal window of the daemon. With a command the output
is printed once. Without one, the scrollback is shown and an interactive
prompt reads commands until 'exit' or end of input.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		if len(args) > 1 {
			return withClient(func(ctx context.Context, c *client.Client) error {
				res, err := c.TerminalExec(ctx, id, strings.Join(args[1:], " "))
				if err != nil {
					return err
				}
				if jsonOutput {
					return printJSON(res)
				}
				if len(res.Output) > 1 {
					printLines(os.Stdout, res.Output[1:])
				}
				return nil
			})
		}

		c, err := newClient()
		if err != nil {
			printError(err.Error())
			return err
		}
		defer c.Close()

		if err := runTerminal(c, id); err != nil {
			printError(err.Error())
			return err
		}
		return nil
	},
}

// lineReader is satisfied by both the raw-mode terminal and a plain scanner
type lineReader interface {
	ReadLine() (string, error)
}

type scanReader struct {
	s *bufio.Scanner
	w io.Writer
}

func (r scanReader) ReadLine() (string, error) {
	fmt.Fprint(r.w, terminal.Prompt)
	if !r.s.Scan() {
		if err := r.s.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.s.Text(), nil
}

// runTerminal is the interactive loop. On a TTY the line editor from
// x/term gives history and cursor keys; piped input is read line by line.
func runTerminal(c *client.Client, id string) error {
	ctx := context.Background()

	var (
		in  lineReader
		out io.Writer = os.Stdout
	)

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) && term.IsTerminal(int(os.Stdout.Fd())) {
		oldState, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("failed to enter raw mode: %w", err)
		}
		defer term.Restore(fd, oldState)

		t := term.NewTerminal(struct {
			io.Reader
			io.Writer
		}{os.Stdin, os.Stdout}, terminal.Prompt)
		if w, h, err := term.GetSize(fd); err == nil {
			t.SetSize(w, h)
		}
		in, out = t, t
	} else {
		in = scanReader{s: bufio.NewScanner(os.Stdin), w: os.Stdout}
	}

	history, err := c.TerminalLines(ctx, id)
	if err != nil {
		return err
	}
	printLines(out, history.Lines)

	for {
		line, err := in.ReadLine()
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			return err
		}

		if strings.TrimSpace(line) == "exit" {
			return nil
		}

		callCtx, cancel := context.WithTimeout(ctx, timeout)
		res, err := c.TerminalExec(callCtx, id, line)
		cancel()
		if err != nil {
			return err
		}

		// The first line echoes the input, which the prompt already shows
		if len(res.Output) == 0 {
			// clear empties the scrollback
			fmt.Fprint(out, "\x1b[2J\x1b[H")
			continue
		}
		printLines(out, res.Output[1:])
	}
}

func printLines(w io.Writer, lines []string) {
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
}

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// lineio is the part of a term.Terminal that a session uses.
type lineio interface {
	io.Writer
	ReadLine() (string, error)
}

// repl runs an interactive session on the terminal in.
func (c *calc) repl(in *os.File, out io.Writer) error {
	fd := int(in.Fd())
	old, err := term.MakeRaw(fd)
	if err != nil {
		return err
	}
	defer term.Restore(fd, old)
	t := term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{in, out}, "> ")
	return c.session(t)
}

// session reads entries until q or EOF. The current entry is the last result,
// which n negates and c clears. A failed entry clears it too.
func (c *calc) session(t lineio) error {
	var cur string
	for {
		line, err := t.ReadLine()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case "q":
			return nil
		case "c":
			cur = ""
			continue
		case "n":
			if cur == "" {
				continue
			}
			cur = c.toggle(cur)
			fmt.Fprintln(t, cur)
		default:
			var s string
			s, cur = c.entry(line)
			fmt.Fprintln(t, s)
		}
	}
}

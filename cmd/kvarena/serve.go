package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/flier/kvarena/pkg/arena"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run an interactive create/read/update/delete session against a fresh arena",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	a, err := cfg.NewArena()
	if err != nil {
		return err
	}

	sessionID := uuid.NewString()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "kvarena session %s: %d byte arena, hunk=%d, max key=%d\n",
		sessionID, cfg.Size, cfg.HunkSize, cfg.MaxKeyLength)

	if term.IsTerminal(int(os.Stdin.Fd())) {
		return serveInteractive(out, a)
	}
	return serveScripted(out, a)
}

// serveInteractive drives the REPL with line history via readline, for a
// human typing at a terminal.
func serveInteractive(out io.Writer, a *arena.Arena) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      "kvarena> ",
		HistoryFile: filepath.Join(os.TempDir(), "kvarena_history"),
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return err
		}

		if done := runLine(out, a, line); done {
			return nil
		}
	}
}

// serveScripted reads commands from stdin without a prompt or history, for
// piped/scripted input.
func serveScripted(out io.Writer, a *arena.Arena) error {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if done := runLine(out, a, scanner.Text()); done {
			return nil
		}
	}
	return scanner.Err()
}

func runLine(out io.Writer, a *arena.Arena, line string) (done bool) {
	done, err := dispatch(out, a, line)
	if err != nil {
		fmt.Fprintln(out, "error:", err)
	}
	return done
}

// dispatch executes one REPL command line, reporting done=true once the
// session should end.
func dispatch(w io.Writer, a *arena.Arena, line string) (done bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	switch fields[0] {
	case "quit", "exit":
		return true, nil

	case "create", "insert":
		if len(fields) < 3 {
			return false, errors.New("usage: create <key> <value...>")
		}
		return false, reportCode(w, "create", a.Create(
			[]byte(fields[1]), []byte(strings.Join(fields[2:], " "))))

	case "read", "select":
		if len(fields) != 2 {
			return false, errors.New("usage: read <key>")
		}
		return false, runRead(w, a, []byte(fields[1]))

	case "update":
		if len(fields) < 3 {
			return false, errors.New("usage: update <key> <value...>")
		}
		return false, reportCode(w, "update", a.Update(
			[]byte(fields[1]), []byte(strings.Join(fields[2:], " "))))

	case "delete":
		if len(fields) != 2 {
			return false, errors.New("usage: delete <key>")
		}
		return false, reportCode(w, "delete", a.Delete([]byte(fields[1])))

	case "list":
		for it := a.Begin(); !it.Equal(a.End()); it = it.Next() {
			fmt.Fprintf(w, "%s=%s\n", it.Key(), it.Value())
		}
		return false, nil

	case "stats":
		return false, a.PrintStats(w)

	case "collect":
		if len(fields) != 2 {
			return false, errors.New("usage: collect <limit>")
		}
		limit, err := strconv.Atoi(fields[1])
		if err != nil {
			return false, err
		}
		fmt.Fprintf(w, "reclaimed %d bytes\n", a.Collect(limit))
		return false, nil

	case "clean":
		fmt.Fprintf(w, "reclaimed %d bytes\n", a.Clean())
		return false, nil

	default:
		return false, fmt.Errorf("unknown command %q", fields[0])
	}
}

func runRead(w io.Writer, a *arena.Arena, key []byte) error {
	dst := make([]byte, a.ReadSize(key))
	if code := a.Read(key, dst); arena.IsError(code) {
		return reportCode(w, "read", code)
	}
	fmt.Fprintf(w, "%s\n", dst)
	return nil
}

func reportCode(w io.Writer, op string, code arena.Code) error {
	if arena.IsError(code) {
		fmt.Fprintf(w, "%s: %s\n", op, code)
		return nil
	}
	fmt.Fprintln(w, "ok")
	return nil
}

// Entry point for fstack, a shell for experimenting with fixed capacity stacks.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/marcuscaisey/finitestack/script"
	"github.com/marcuscaisey/finitestack/typedstack"
)

var (
	cmd      = flag.String("c", "", "Script passed in as string")
	kind     = flag.String("kind", "", "Create a stack of this buffer `kind` before running. Requires -capacity.")
	capacity = flag.Int("capacity", 0, "Create a stack with this `capacity` before running. Requires -kind.")
)

// nolint:revive
func Usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "Usage: fstack [options] [script]\n")
	fmt.Fprintf(flag.CommandLine.Output(), "\n")
	fmt.Fprintf(flag.CommandLine.Output(), "With no script, commands are read from stdin. Run help in the shell for a list of commands.\n")
	fmt.Fprintf(flag.CommandLine.Output(), "\n")
	fmt.Fprintf(flag.CommandLine.Output(), "Options:\n")
	flag.PrintDefaults()
}

func main() {
	log.SetFlags(0)

	flag.Usage = Usage
	flag.Parse()

	session, err := newSession()
	if err != nil {
		log.Print(err)
		flag.Usage()
		os.Exit(2)
	}

	if *cmd != "" {
		if err := script.Run(strings.NewReader(*cmd), "<string>", session); err != nil {
			log.Fatal(err)
		}
		return
	}

	switch len(flag.Args()) {
	case 0:
		if term.IsTerminal(int(os.Stdin.Fd())) {
			err = runREPL(session)
		} else {
			err = script.Run(os.Stdin, "<stdin>", session)
		}
		if err != nil {
			log.Fatal(err)
		}
	case 1:
		if err := runFile(flag.Arg(0), session); err != nil {
			log.Fatal(err)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
}

// newSession creates the session that commands are run in, creating the stack described by the -kind and -capacity
// flags if they were given.
func newSession() (*script.Session, error) {
	session := script.NewSession(os.Stdout)
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	if !set["kind"] && !set["capacity"] {
		return session, nil
	}
	if !set["kind"] || !set["capacity"] {
		return nil, errors.New("-kind and -capacity must be given together")
	}
	k, err := typedstack.ParseKind(*kind)
	if err != nil {
		return nil, err
	}
	if err := session.Exec(script.NewCmd{Kind: k, Capacity: *capacity}); err != nil {
		return nil, err
	}
	return session, nil
}

func runREPL(session *script.Session) error {
	cfg := &readline.Config{
		Prompt: ">>> ",
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		cfg.HistoryFile = path.Join(homeDir, ".fstack_history")
	} else {
		fmt.Fprintf(os.Stderr, "Can't get current user's home directory (%s). Command history will not be saved.\n", err)
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return fmt.Errorf("running fstack REPL: %s", err)
	}
	defer rl.Close()

	color.New(color.Bold).Fprintln(os.Stderr, "Welcome to fstack! Type help for a list of commands.")

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if errors.Is(err, io.EOF) {
				break
			}
			panic(fmt.Sprintf("unexpected error from readline: %s", err))
		}
		if err := script.RunLine(line, session); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}

	return nil
}

func runFile(name string, session *script.Session) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return script.Run(f, name, session)
}

package script

import (
	"fmt"
	"io"
	"strings"
)

// Run executes each line of the script read from r in the given session.
// Execution continues after a line fails. If any lines failed, the returned error is an [Errors] containing an
// [*Error] for each of them. filename is used to report the position of errors.
func Run(r io.Reader, filename string, s *Session) error {
	src, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading %s: %w", filename, err)
	}
	var errs Errors
	for i, line := range strings.Split(string(src), "\n") {
		if err := execLine(strings.TrimSuffix(line, "\r"), s); err != nil {
			errs.Add(filename, i+1, err)
		}
	}
	return errs.Err()
}

// RunLine executes a single line in the given session. If it fails, the returned error is an [*Error] without a
// position.
func RunLine(line string, s *Session) error {
	if err := execLine(line, s); err != nil {
		return &Error{Err: err}
	}
	return nil
}

func execLine(line string, s *Session) error {
	cmd, err := Parse(line)
	if err != nil {
		return err
	}
	if cmd == nil {
		return nil
	}
	return s.Exec(cmd)
}

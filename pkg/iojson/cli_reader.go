package iojson

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// ErrNoInput is returned when no file is given and stdin is a terminal.
var ErrNoInput = errors.New("no input provided (stdin is a terminal); use -f flag or pipe JSON input")

// FileReader decodes a single JSON document of type T from the file named by
// its flag, or from stdin when the flag is unset.
type FileReader[T any] struct {
	// Strict rejects documents with unknown fields.
	Strict bool

	path  string
	stdin *os.File
}

func (fr *FileReader[T]) Flag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "file",
		Aliases:     []string{"f"},
		Usage:       "path to JSON file (reads from stdin if not provided)",
		Destination: &fr.path,
	}
}

func (fr *FileReader[T]) Read() (T, error) {
	var zero T

	if fr.path != "" {
		f, err := os.Open(fr.path)
		if err != nil {
			return zero, fmt.Errorf("open file: %w", err)
		}
		defer func() { _ = f.Close() }()
		return fr.decode(f)
	}

	stdin := fr.stdin
	if stdin == nil {
		stdin = os.Stdin
	}
	if term.IsTerminal(int(stdin.Fd())) {
		return zero, ErrNoInput
	}
	return fr.decode(stdin)
}

func (fr *FileReader[T]) decode(r io.Reader) (T, error) {
	var v T

	dec := json.NewDecoder(r)
	if fr.Strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(&v); err != nil {
		return v, fmt.Errorf("decode JSON: %w", err)
	}
	return v, nil
}

package builtins

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"mercator-hq/callisto/pkg/runtime"
)

// write prints its arguments separated by single spaces.
type write struct {
	signature
	out     io.Writer
	newline bool
}

func newWrite(out io.Writer) *write {
	return &write{signature: signature{name: "write", variadic: true}, out: out}
}

func newWriteLine(out io.Writer) *write {
	return &write{signature: signature{name: "writeLine", variadic: true}, out: out, newline: true}
}

// IsArgListValid accepts any number of non-changeable values.
func (w *write) IsArgListValid(args []*runtime.Value) bool {
	for _, a := range args {
		if a.Changeable {
			return false
		}
	}
	return true
}

func (w *write) Execute(args []*runtime.Value) error {
	if !w.IsArgListValid(args) {
		return nil
	}

	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	text := strings.Join(parts, " ")
	if w.newline {
		text += "\n"
	}

	if _, err := io.WriteString(w.out, text); err != nil {
		return fmt.Errorf("%s: %w", w.name, err)
	}
	return nil
}

// read fills its changeable arguments from one comma-separated input line.
type read struct {
	signature
	in *bufio.Reader
}

func newRead(in *bufio.Reader) *read {
	return &read{signature: signature{name: "read", variadic: true}, in: in}
}

// IsArgListValid accepts any number of changeable scalars.
func (r *read) IsArgListValid(args []*runtime.Value) bool {
	for _, a := range args {
		if !a.Changeable || a.Kind == runtime.KindArray {
			return false
		}
	}
	return true
}

func (r *read) Execute(args []*runtime.Value) error {
	if !r.IsArgListValid(args) || len(args) == 0 {
		return nil
	}
	if r.in == nil {
		return fmt.Errorf("read: no input attached")
	}

	line, err := r.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return fmt.Errorf("read: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")

	fields := strings.Split(line, ",")
	for i := 0; i < len(fields) && i < len(args); i++ {
		if err := args[i].Parse(fields[i]); err != nil {
			return fmt.Errorf("read: argument %d: %w", i+1, err)
		}
	}
	return nil
}

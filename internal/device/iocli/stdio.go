package iocli

import (
	"fmt"
	"io"
	"os"
)

type Stdio struct {
	out io.Writer
}

// NewStdio пишет в стандартный вывод
func NewStdio() IO {
	return &Stdio{out: os.Stdout}
}

// NewWriter пишет в произвольный writer (например, cmd.OutOrStdout())
func NewWriter(w io.Writer) IO {
	return &Stdio{out: w}
}

func (s *Stdio) Println(a ...any) {
	_, _ = fmt.Fprintln(s.out, a...)
}

func (s *Stdio) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(s.out, format, a...)
}

func (s *Stdio) Write(p []byte) (int, error) {
	return s.out.Write(p)
}

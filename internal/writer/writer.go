package writer

import (
	"fmt"
	"io"
	"os"
)

// ConfirmationFormat is printed after a report is written to a file
const ConfirmationFormat = "Vulnerability snapshot saved at %s\n"

// Writer delivers a rendered report to a file or to stdout
type Writer struct {
	path   string
	stdout io.Writer
}

// New creates a Writer. An empty path or "stdout" writes the report to stdout;
// any other path writes the file and prints a confirmation line to stdout.
func New(path string, stdout io.Writer) *Writer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if path == "stdout" {
		path = ""
	}
	return &Writer{path: path, stdout: stdout}
}

// Path returns the output file path, empty when writing to stdout
func (w *Writer) Path() string {
	return w.path
}

// Write delivers the report
func (w *Writer) Write(report []byte) error {
	if w.path == "" {
		if _, err := w.stdout.Write(report); err != nil {
			return fmt.Errorf("failed to write report to stdout: %w", err)
		}
		return nil
	}

	if err := os.WriteFile(w.path, report, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", w.path, err)
	}

	if _, err := fmt.Fprintf(w.stdout, ConfirmationFormat, w.path); err != nil {
		return fmt.Errorf("failed to write confirmation: %w", err)
	}
	return nil
}

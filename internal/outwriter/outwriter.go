// Package outwriter renders human-readable summaries of clips and
// registry contents.
package outwriter

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/motionforge/motionforge/internal/contract"
)

// TermWidth returns the rendering width: the explicit override when
// set, the detected terminal width otherwise, 80 as a fallback for
// pipes and CI.
func TermWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	detected, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detected <= 0 {
		return 80
	}
	return detected
}

// writeWithFile runs the write callback against the configured output
// file, or stdout when no file is set.
func writeWithFile(filePath string, write func(w io.Writer) error, doneMsg string) error {
	file, err := contract.SelectOutputFile(filePath)
	if err != nil {
		return err
	}
	defer func() {
		if file != os.Stdout {
			_ = file.Close()
		}
	}()

	if err := write(file); err != nil {
		return err
	}
	if file != os.Stdout {
		_, _ = fmt.Fprintf(os.Stderr, "%s to %s\n", doneMsg, filePath)
	}
	return nil
}

// formatBytes renders a byte count with a binary unit suffix.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

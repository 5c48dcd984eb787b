package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"matchframe/internal/batch"
	"matchframe/internal/eventlog"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func colorizeStatus(status batch.Status, colorize bool) string {
	text := string(status)
	if !colorize {
		return text
	}
	switch status {
	case batch.StatusRendered:
		return ansiGreen + text + ansiReset
	case batch.StatusFailed:
		return ansiRed + text + ansiReset
	case batch.StatusRendering:
		return ansiYellow + text + ansiReset
	default:
		return text
	}
}

func printEvents(out io.Writer, events []eventlog.Event, colorize bool) {
	for _, event := range events {
		line := fmt.Sprintf("%s  %-7s  %s", event.Timestamp, event.Severity, event.Message)
		if colorize {
			switch event.Severity {
			case eventlog.SeveritySuccess:
				line = ansiGreen + line + ansiReset
			case eventlog.SeverityError:
				line = ansiRed + line + ansiReset
			}
		}
		fmt.Fprintln(out, line)
	}
}

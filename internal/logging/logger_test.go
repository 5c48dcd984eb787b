package logging_test

import (
	"context"
	"testing"

	"matchframe/internal/logging"
	"matchframe/internal/services"
)

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewConsoleAndJSON(t *testing.T) {
	for _, format := range []string{"console", "json", ""} {
		logger, err := logging.New(logging.Options{Level: "debug", Format: format})
		if err != nil {
			t.Fatalf("New(%q) failed: %v", format, err)
		}
		if logger == nil {
			t.Fatalf("New(%q) returned nil logger", format)
		}
	}
}

func TestWithContextAddsFields(t *testing.T) {
	ctx := services.WithBatchID(context.Background(), "run-7")
	ctx = services.WithMatchIndex(ctx, 3)

	fields := logging.ContextFields(ctx)
	if len(fields) != 2 {
		t.Fatalf("expected 2 context fields, got %d", len(fields))
	}
	if fields[0].Key != logging.FieldBatchID {
		t.Fatalf("unexpected first field key %q", fields[0].Key)
	}
}

func TestWithContextNilLogger(t *testing.T) {
	logger := logging.WithContext(context.Background(), nil)
	if logger == nil {
		t.Fatal("expected fallback logger")
	}
	// Must not panic when used.
	logger.Info("noop")
}

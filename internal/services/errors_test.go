package services_test

import (
	"errors"
	"strings"
	"testing"

	"matchframe/internal/services"
)

func TestWrapTagsSentinel(t *testing.T) {
	base := errors.New("connection refused")
	err := services.Wrap(services.ErrTransport, "studio", "render", "request failed", base)
	if !errors.Is(err, services.ErrTransport) {
		t.Fatalf("expected wrapped error to match ErrTransport, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to retain cause, got %v", err)
	}
	if !strings.Contains(err.Error(), "studio: render: request failed") {
		t.Fatalf("unexpected error detail: %v", err)
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := services.Wrap(nil, "studio", "submit", "", nil)
	if !errors.Is(err, services.ErrBackend) {
		t.Fatalf("expected nil marker to default to ErrBackend, got %v", err)
	}
}

func TestIsTransport(t *testing.T) {
	transport := services.Wrap(services.ErrTransport, "studio", "assets", "", nil)
	logical := services.Wrap(services.ErrBackend, "studio", "assets", "", nil)
	if !services.IsTransport(transport) {
		t.Fatal("expected transport error to be classified as transport")
	}
	if services.IsTransport(logical) {
		t.Fatal("expected backend error not to be classified as transport")
	}
}

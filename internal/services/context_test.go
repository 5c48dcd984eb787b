package services_test

import (
	"context"
	"testing"

	"matchframe/internal/services"
)

func TestContextRoundTrips(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithBatchID(ctx, "run-1")
	ctx = services.WithMatchIndex(ctx, 2)
	ctx = services.WithOperation(ctx, "render")
	ctx = services.WithRequestID(ctx, "req-9")

	if id, ok := services.BatchIDFromContext(ctx); !ok || id != "run-1" {
		t.Fatalf("batch id = %q, %v", id, ok)
	}
	if idx, ok := services.MatchIndexFromContext(ctx); !ok || idx != 2 {
		t.Fatalf("match index = %d, %v", idx, ok)
	}
	if op, ok := services.OperationFromContext(ctx); !ok || op != "render" {
		t.Fatalf("operation = %q, %v", op, ok)
	}
	if rid, ok := services.RequestIDFromContext(ctx); !ok || rid != "req-9" {
		t.Fatalf("request id = %q, %v", rid, ok)
	}
}

func TestContextAbsentValues(t *testing.T) {
	ctx := context.Background()
	if _, ok := services.BatchIDFromContext(ctx); ok {
		t.Fatal("expected no batch id on empty context")
	}
	if _, ok := services.MatchIndexFromContext(ctx); ok {
		t.Fatal("expected no match index on empty context")
	}
	if services.WithOperation(ctx, "") != ctx {
		t.Fatal("empty operation should not allocate a new context")
	}
}

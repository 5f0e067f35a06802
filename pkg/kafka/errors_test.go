package kafka

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorType
	}{
		{"nil", nil, ErrorTypeUnknown},
		{"transient wrapper", NewTransientError("publish failed", errors.New("x")), ErrorTypeTransient},
		{"permanent wrapper", NewPermanentError("bad payload", errors.New("x")), ErrorTypePermanent},
		{"deadline", fmt.Errorf("write: %w", context.DeadlineExceeded), ErrorTypeTransient},
		{"connection refused", errors.New("dial tcp 127.0.0.1:9092: Connection Refused"), ErrorTypeTransient},
		{"empty key", ErrEmptyKey, ErrorTypePermanent},
		{"unknown", errors.New("something odd"), ErrorTypePermanent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyError(tt.err); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestKafkaError_Unwrap(t *testing.T) {
	cause := errors.New("broker gone")
	err := NewTransientError("publish failed", cause)

	if !errors.Is(err, cause) {
		t.Errorf("expected wrapped cause")
	}
	if !err.IsTransient() {
		t.Errorf("expected transient")
	}
	if err.Error() != "publish failed: broker gone" {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

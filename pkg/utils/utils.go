package utils

import (
	"context"
	"log"
	"unicode"

	"stock-radar/pkg/logger"
)

// GoSafe runs fn in a new goroutine and recovers from any panic.
func GoSafe(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[Panic Recovered] %v", r)
			}
		}()
		fn()
	}()
}

func ToPointer[T any](value T) *T {
	return &value
}

// IsAlpha reports whether s is non-empty and consists solely of letters.
// Exchange-qualified symbols ("BRK.B", "RY-PC") are rejected on purpose.
func IsAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// ShouldContinue reports whether ctx is still live, logging when it is not.
func ShouldContinue(ctx context.Context, log *logger.Logger) bool {
	select {
	case <-ctx.Done():
		log.Warn("Context cancelled", logger.ErrorField(ctx.Err()))
		return false
	default:
		return true
	}
}

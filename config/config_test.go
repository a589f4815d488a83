package config

import (
	"testing"
	"time"
)

func TestModelsParsing(t *testing.T) {
	t.Parallel()

	cfg := Config{GeminiModels: " gemini-2.0-flash , gemini-1.5-flash,,gemini-1.5-pro "}
	models := cfg.Models()
	want := []string{"gemini-2.0-flash", "gemini-1.5-flash", "gemini-1.5-pro"}
	if len(models) != len(want) {
		t.Fatalf("models = %v", models)
	}
	for i := range want {
		if models[i] != want[i] {
			t.Fatalf("models[%d] = %q, want %q", i, models[i], want[i])
		}
	}
}

func TestBackoffBase(t *testing.T) {
	t.Parallel()

	cfg := Config{ModelBackoffBaseMS: 1500}
	if got := cfg.BackoffBase(); got != 1500*time.Millisecond {
		t.Fatalf("BackoffBase = %v", got)
	}
}

//go:build !prod

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSetup_WritesToOutput(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Output = &buf

	logger, closeFn, err := Setup(cfg)
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	defer closeFn()

	logger.Debug("hidden")
	logger.Info("Image loaded", "image", "a.png")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug message emitted at info level")
	}
	if !strings.Contains(out, "image=a.png") {
		t.Errorf("output = %q, want image attribute", out)
	}
	if L() != logger {
		t.Error("L() did not return the configured logger")
	}
}

func TestContextLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	ctx := With(context.Background(), logger)
	ctx = WithAttrs(ctx, "image", "b.png")
	From(ctx).Info("committed")

	if !strings.Contains(buf.String(), "image=b.png") {
		t.Errorf("output = %q, want image attribute", buf.String())
	}
}

func TestConfig_FilePath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dir = filepath.Join("var", "log")
	if got, want := cfg.FilePath(), filepath.Join("var", "log", "framer.log"); got != want {
		t.Errorf("FilePath() = %v, want %v", got, want)
	}

	cfg.FileName = "review.log"
	if got, want := cfg.FilePath(), filepath.Join("var", "log", "review.log"); got != want {
		t.Errorf("FilePath() = %v, want %v", got, want)
	}

	cfg.Dir = ""
	if got := cfg.FilePath(); filepath.Dir(got) != DefaultLogDir() {
		t.Errorf("FilePath() = %v, want it inside %v", got, DefaultLogDir())
	}
}

func TestFrom_FallsBackToGlobal(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Output = &buf
	logger, closeFn, err := Setup(cfg)
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	defer closeFn()

	if From(context.Background()) != logger {
		t.Error("From() without a context logger did not return the global logger")
	}
}

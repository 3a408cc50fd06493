//go:build prod

package logging

import (
	"encoding/json"
	"os"
	"testing"
)

func TestSetup_WritesJSONFile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dir = t.TempDir()
	cfg.Compress = false

	logger, closeFn, err := Setup(cfg)
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	logger.Info("Image loaded", "image", "a.png")
	if err := closeFn(); err != nil {
		t.Fatalf("close error = %v", err)
	}

	data, err := os.ReadFile(cfg.FilePath())
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	var entry map[string]any
	if err := json.Unmarshal(data, &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, data)
	}
	if entry["image"] != "a.png" || entry["msg"] != "Image loaded" {
		t.Errorf("entry = %v", entry)
	}
	if pid, ok := entry["pid"].(float64); !ok || int(pid) != os.Getpid() {
		t.Errorf("pid = %v, want %d", entry["pid"], os.Getpid())
	}
}

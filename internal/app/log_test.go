package app

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunHandler(t *testing.T) {
	t.Run("formats records as tab-separated fields", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(&runHandler{w: &buf, runID: "run-42"})

		logger.Info("file sorted", "path", "/in/a.jpg", "percent", 50)

		line := strings.TrimSuffix(buf.String(), "\n")
		fields := strings.Split(line, "\t")
		if len(fields) != 6 {
			t.Fatalf("got %d fields, want 6: %q", len(fields), line)
		}
		if fields[1] != "INFO" {
			t.Errorf("level = %q, want INFO", fields[1])
		}
		if fields[2] != "run-42" {
			t.Errorf("run id = %q, want run-42", fields[2])
		}
		if fields[3] != "file sorted" {
			t.Errorf("message = %q", fields[3])
		}
		if fields[4] != "path=/in/a.jpg" || fields[5] != "percent=50" {
			t.Errorf("attrs = %q, %q", fields[4], fields[5])
		}
	})

	t.Run("with-attrs prepend to every record", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(&runHandler{w: &buf, runID: "run-42"}).With("operation", "sort")

		logger.Warn("file failed", "error", "no space")

		line := buf.String()
		opIdx := strings.Index(line, "operation=sort")
		errIdx := strings.Index(line, "error=no space")
		if opIdx == -1 || errIdx == -1 || opIdx > errIdx {
			t.Errorf("attr order wrong: %q", line)
		}
	})
}

func TestNewLogger(t *testing.T) {
	t.Run("creates the log directory and appends", func(t *testing.T) {
		logDir := filepath.Join(t.TempDir(), "log")

		logger, f, err := newLogger(logDir, "run-1")
		if err != nil {
			t.Fatalf("newLogger() error = %v", err)
		}
		logger.Info("first run")
		f.Close()

		logger2, f2, err := newLogger(logDir, "run-2")
		if err != nil {
			t.Fatalf("newLogger() second call error = %v", err)
		}
		logger2.Info("second run")
		f2.Close()

		data, err := os.ReadFile(filepath.Join(logDir, "picsort.log"))
		if err != nil {
			t.Fatalf("read log: %v", err)
		}
		content := string(data)
		if !strings.Contains(content, "run-1\tfirst run") || !strings.Contains(content, "run-2\tsecond run") {
			t.Errorf("log content = %q", content)
		}
	})
}

func TestSortRun(t *testing.T) {
	run := NewSortRun("abc", "sort")
	if run.Status != "success" {
		t.Errorf("initial status = %q, want success", run.Status)
	}

	run.Fail()
	if run.Status != "error" {
		t.Errorf("status after Fail = %q, want error", run.Status)
	}

	run.Cancel()
	if run.Status != "canceled" {
		t.Errorf("status after Cancel = %q, want canceled", run.Status)
	}
}

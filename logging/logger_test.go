package logging

import (
	"bytes"
	"os"
	"runtime"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewLogger(t *testing.T) {
	logger := NewLogger("test-component")
	if logger == nil {
		t.Fatal("Expected logger to be created")
	}

	// Verify it's a logrus.Entry with the component field
	if logger.Data["component"] != "test-component" {
		t.Errorf("Expected component to be 'test-component', got %v", logger.Data["component"])
	}
}

func TestLoggerOutput(t *testing.T) {
	var buf bytes.Buffer

	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&TextFormatter{Config: FormatConfig{}})

	entry := logger.WithField("component", "test")
	entry.Info("Test message")

	output := buf.String()

	if !strings.Contains(output, "[INFO]") {
		t.Errorf("Expected output to contain [INFO], got: %s", output)
	}
	if !strings.Contains(output, "[test]") {
		t.Errorf("Expected output to contain [test], got: %s", output)
	}
	if !strings.Contains(output, "Test message") {
		t.Errorf("Expected output to contain 'Test message', got: %s", output)
	}
}

func TestTextFormatter(t *testing.T) {
	tests := []struct {
		name    string
		config  FormatConfig
		entry   *logrus.Entry
		want    []string // Parts that should be in the output
		notWant []string // Parts that should NOT be in the output
	}{
		{
			name:   "default format",
			config: FormatConfig{},
			entry: &logrus.Entry{
				Level:   logrus.InfoLevel,
				Message: "resolved 4 references",
				Data: logrus.Fields{
					"component": "resolver",
					"file":      "contract.json",
				},
			},
			want:    []string{"[INFO]", "[resolver]", "resolved 4 references", "file=contract.json"},
			notWant: []string{},
		},
		{
			name: "simple format",
			config: FormatConfig{
				DisableTimestamp: true,
				DisableComponent: true,
			},
			entry: &logrus.Entry{
				Level:   logrus.WarnLevel,
				Message: "no json files found",
				Data: logrus.Fields{
					"component": "resolver",
				},
			},
			want:    []string{"[WARN]", "no json files found"},
			notWant: []string{"[resolver]"},
		},
		{
			name:   "caller information with function name",
			config: FormatConfig{},
			entry: func() *logrus.Entry {
				logger := logrus.New()
				logger.SetReportCaller(true)
				entry := &logrus.Entry{
					Logger:  logger,
					Level:   logrus.InfoLevel,
					Message: "test message with caller",
					Data: logrus.Fields{
						"component": "hookcfg",
					},
					Caller: &runtime.Frame{
						File:     "/path/to/file.go",
						Line:     42,
						Function: "github.com/example/package.TestFunction",
					},
				}
				return entry
			}(),
			want:    []string{"[INFO]", "[hookcfg]", "test message with caller", "[file.go:42 package.TestFunction]"},
			notWant: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatter := &TextFormatter{Config: tt.config}

			tt.entry.Time = tt.entry.Time.UTC()

			output, err := formatter.Format(tt.entry)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			outputStr := string(output)

			for _, want := range tt.want {
				if !strings.Contains(outputStr, want) {
					t.Errorf("Expected output to contain '%s', got: %s", want, outputStr)
				}
			}

			for _, notWant := range tt.notWant {
				if strings.Contains(outputStr, notWant) {
					t.Errorf("Expected output NOT to contain '%s', got: %s", notWant, outputStr)
				}
			}
		})
	}
}

func TestLogLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetLevel(logrus.WarnLevel)

	entry := logger.WithField("component", "test")

	// These should not appear
	entry.Debug("debug message")
	entry.Info("info message")

	// These should appear
	entry.Warn("warn message")
	entry.Error("error message")

	output := buf.String()

	if strings.Contains(output, "debug message") {
		t.Error("Debug message should not appear at Warn level")
	}
	if strings.Contains(output, "info message") {
		t.Error("Info message should not appear at Warn level")
	}
	if !strings.Contains(output, "warn message") {
		t.Error("Warn message should appear at Warn level")
	}
	if !strings.Contains(output, "error message") {
		t.Error("Error message should appear at Warn level")
	}
}

func TestEnvironmentVariables(t *testing.T) {
	origLevel := os.Getenv("LOKI_LOG_LEVEL")
	origCaller := os.Getenv("LOKI_LOG_CALLER")

	defer func() {
		os.Setenv("LOKI_LOG_LEVEL", origLevel)
		os.Setenv("LOKI_LOG_CALLER", origCaller)
		// Clear the loggers cache
		loggersMu.Lock()
		loggers = make(map[string]*logrus.Entry)
		loggersMu.Unlock()
	}()

	os.Setenv("LOKI_LOG_LEVEL", "debug")
	os.Setenv("LOKI_LOG_CALLER", "true")

	logger := NewLogger("env-test")

	if logger.Logger.Level != logrus.DebugLevel {
		t.Errorf("Expected debug level from env var, got %v", logger.Logger.Level)
	}

	if !logger.Logger.ReportCaller {
		t.Error("Expected caller reporting to be enabled from env var")
	}
}

func TestPrettyLoggerWriter(t *testing.T) {
	var buf bytes.Buffer
	pretty := NewPrettyLogger().WithWriter(&buf)

	pretty.Success("all checks passed")
	pretty.Field("hooks", 9)
	pretty.Path("config", ".pre-commit-config.yaml")

	output := buf.String()
	if !strings.Contains(output, "all checks passed") {
		t.Errorf("Expected success message in output, got: %s", output)
	}
	if !strings.Contains(output, "hooks") || !strings.Contains(output, "9") {
		t.Errorf("Expected field output, got: %s", output)
	}
	if !strings.Contains(output, ".pre-commit-config.yaml") {
		t.Errorf("Expected path output, got: %s", output)
	}
}

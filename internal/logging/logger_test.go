package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
)

func TestNewLogger_Level(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		level string
		want  logrus.Level
	}{
		{name: "test_debug", level: "debug", want: logrus.DebugLevel},
		{name: "test_warn", level: "warn", want: logrus.WarnLevel},
		{name: "test_unknown_falls_back", level: "loud", want: logrus.InfoLevel},
		{name: "test_empty_falls_back", level: "", want: logrus.InfoLevel},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			logger := NewLogger(&bytes.Buffer{}, tc.level)
			if diff := cmp.Diff(tc.want, logger.Logger.GetLevel()); diff != "" {
				t.Errorf("bad level (-want, +got): %s", diff)
			}
		})
	}
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewLogger(&buf, "info")
	ctx := WithLogger(context.Background(), logger)

	FromContext(ctx).Info("hello")
	if !strings.Contains(buf.String(), "msg=hello") {
		t.Errorf("log output does not contain message: %q", buf.String())
	}

	if !strings.Contains(buf.String(), "app=verter") {
		t.Errorf("log output does not contain app field: %q", buf.String())
	}

	if FromContext(context.Background()) != DefaultLogger() {
		t.Errorf("expected default logger for empty context")
	}
}

package logging_test

import (
	"bytes"
	"strings"
	"testing"

	"listbot/internal/logging"
)

func TestNew_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, false)
	logger.Debug("hidden")
	logger.Info("shown", "list", "Groceries")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug record written at info level: %q", out)
	}
	if !strings.Contains(out, "msg=shown") || !strings.Contains(out, "list=Groceries") {
		t.Errorf("unexpected output %q", out)
	}

	buf.Reset()
	logging.New(&buf, true).Debug("visible")
	if !strings.Contains(buf.String(), "level=DEBUG") {
		t.Errorf("expected debug record, got %q", buf.String())
	}
}

package log

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

type errValue struct{ error }

func (e errValue) LogValue() slog.Value {
	return slog.GroupValue(slog.String("msg", e.Error()), slog.Int("code", 7))
}

func TestPrettyHandler_Text(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithLevel(LevelInfo), WithTimeLayout("none"))
	logger.Info("hello", slog.String("name", "permute"), slog.Bool("ok", true))

	want := colorGray + "level" + colorReset + "=" + colorGreen + "INFO" + colorReset +
		" " + colorGray + "msg" + colorReset + "=" + colorCyan + "hello" + colorReset +
		" " + colorGray + "name" + colorReset + "=" + colorCyan + "permute" + colorReset +
		" " + colorGray + "ok" + colorReset + "=" + colorGreen + "true" + colorReset + "\n"

	if got := buf.String(); got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
}

func TestPrettyHandler_JSON(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithLevel(LevelInfo), WithFormat(FormatJSON), WithTimeLayout("none"))
	logger.Warn("careful", slog.Int("n", 3))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d: %q", len(lines), buf.String())
	}

	if lines[0] != "{" || lines[4] != "}" {
		t.Errorf("expected braces around fields, got %q", lines)
	}

	if !strings.HasSuffix(lines[3], colorYellow+"3"+colorReset) {
		t.Errorf("expected yellow number, got %q", lines[3])
	}
}

func TestPrettyHandler_AttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithLevel(LevelInfo), WithTimeLayout("none")).
		With(slog.String("component", "repl")).
		WithGroup("req")
	logger.Error("failed", slog.Any("error", errValue{errors.New("boom")}))

	output := buf.String()

	for _, key := range []string{"component", "req.error.msg", "req.error.code"} {
		if !strings.Contains(output, colorGray+key+colorReset+"=") {
			t.Errorf("expected key %q in %q", key, output)
		}
	}

	if !strings.Contains(output, colorRed+"ERROR"+colorReset) {
		t.Errorf("expected red level in %q", output)
	}
}

func TestPrettyHandler_TraceLevel(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithLevel(LevelTrace), WithTimeLayout("none"))
	logger.Trace("step")

	if !strings.Contains(buf.String(), colorBlue+"TRACE"+colorReset) {
		t.Errorf("expected blue TRACE level in %q", buf.String())
	}
}

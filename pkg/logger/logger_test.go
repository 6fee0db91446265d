package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
)

func TestContextFieldsAreLogged(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, Config{Level: "info", Format: "json", Service: "study-tracker"})

	ctx := ContextWithRequestID(context.Background(), "req-1")
	ctx = ContextWithUserID(ctx, "user-1")
	InfoContext(ctx, "Task created", "task_id", "t-1")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line is not JSON: %v (%s)", err, buf.String())
	}
	want := map[string]string{
		"msg":        "Task created",
		"request_id": "req-1",
		"user_id":    "user-1",
		"task_id":    "t-1",
		"service":    "study-tracker",
	}
	for k, v := range want {
		if line[k] != v {
			t.Errorf("%s = %v, want %q", k, line[k], v)
		}
	}
}

func TestLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, Config{Level: "warn", Format: "text"})

	Debug("hidden")
	Info("hidden")
	Warn("shown")

	if bytes.Contains(buf.Bytes(), []byte("hidden")) {
		t.Errorf("below-level lines were written: %s", buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("shown")) {
		t.Error("warn line missing")
	}
}

func TestGetRequestID(t *testing.T) {
	if got := GetRequestID(context.Background()); got != "" {
		t.Errorf("GetRequestID(empty) = %q", got)
	}
	ctx := ContextWithRequestID(context.Background(), "abc")
	if got := GetRequestID(ctx); got != "abc" {
		t.Errorf("GetRequestID = %q, want abc", got)
	}
}

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/codeGROOVE-dev/tztime/pkg/timetool"
)

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	color.NoColor = true
	var out, errOut bytes.Buffer
	code = run(context.Background(), args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRunNowJSON(t *testing.T) {
	code, out, errOut := runCLI(t, "-json", "now", "Asia/Kathmandu")
	if code != exitOK {
		t.Fatalf("exit code = %d, stderr: %s", code, errOut)
	}

	var got map[string]any
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if got["timezone"] != "Asia/Kathmandu" || got["utc_offset"] != "+05:45" {
		t.Errorf("unexpected result: %v", got)
	}
}

func TestRunNowUsesConfiguredDefault(t *testing.T) {
	t.Setenv("TZTIME_TIMEZONE", "Asia/Tokyo")

	code, out, errOut := runCLI(t, "now")
	if code != exitOK {
		t.Fatalf("exit code = %d, stderr: %s", code, errOut)
	}
	if !strings.Contains(out, "Asia/Tokyo") || !strings.Contains(out, "+09:00") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestRunFlagOverridesEnvironment(t *testing.T) {
	t.Setenv("TZTIME_TIMEZONE", "Asia/Tokyo")

	code, out, errOut := runCLI(t, "-timezone", "UTC", "now")
	if code != exitOK {
		t.Fatalf("exit code = %d, stderr: %s", code, errOut)
	}
	if !strings.Contains(out, "UTC") || !strings.Contains(out, "+00:00") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestRunConvert(t *testing.T) {
	code, out, errOut := runCLI(t, "convert", "UTC", "12:00", "Asia/Kathmandu")
	if code != exitOK {
		t.Fatalf("exit code = %d, stderr: %s", code, errOut)
	}
	for _, want := range []string{"UTC → Asia/Kathmandu", "17:45:00+05:45", "+5:45"} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
}

func TestRunRejections(t *testing.T) {
	tests := []struct {
		args     []string
		contains string
	}{
		{[]string{"now", "PST"}, "ambiguous"},
		{[]string{"convert", "UTC", "24:00", "UTC"}, "Invalid time format"},
		{[]string{"convert", "+05:30", "12:00", "UTC"}, "not supported"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			code, _, errOut := runCLI(t, tt.args...)
			if code != exitRejected {
				t.Errorf("exit code = %d, want %d", code, exitRejected)
			}
			if !strings.Contains(errOut, tt.contains) {
				t.Errorf("stderr lacks %q:\n%s", tt.contains, errOut)
			}
		})
	}
}

func TestRunUsageErrors(t *testing.T) {
	for _, args := range [][]string{
		{},
		{"convert", "UTC", "12:00"},
		{"now", "UTC", "extra"},
		{"sleep"},
		{"-no-such-flag"},
	} {
		if code, _, _ := runCLI(t, args...); code != exitUsage {
			t.Errorf("run(%q) = %d, want %d", args, code, exitUsage)
		}
	}
}

func TestRunTools(t *testing.T) {
	code, out, _ := runCLI(t, "tools")
	if code != exitOK {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(out, "get_current_time") || !strings.Contains(out, "convert_time") {
		t.Errorf("unexpected tools output:\n%s", out)
	}
}

func TestRunVersion(t *testing.T) {
	code, out, _ := runCLI(t, "-version")
	if code != exitOK || !strings.Contains(out, version) {
		t.Errorf("version: code=%d out=%q", code, out)
	}
}

type failingHandler struct{ err error }

func (f failingHandler) Call(context.Context, string, map[string]any) (*mcp.CallToolResult, error) {
	return nil, f.err
}

type rejectingHandler struct{}

func (rejectingHandler) Call(context.Context, string, map[string]any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError("Invalid timezone: 'Nowhere'."), nil
}

func TestCallToolExitCodes(t *testing.T) {
	color.NoColor = true
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name    string
		handler toolHandler
		tool    string
		want    int
	}{
		{"zone data unavailable", failingHandler{errors.New("zoneinfo unreadable")}, timetool.GetCurrentTimeTool, exitInternal},
		{"unknown tool", timetool.NewService(nil, nil, logger), "get_weather", exitInternal},
		{"validation rejection", rejectingHandler{}, timetool.GetCurrentTimeTool, exitRejected},
		{"success", timetool.NewService(nil, nil, logger), timetool.GetCurrentTimeTool, exitOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			got := callTool(context.Background(), tt.handler, logger, tt.tool,
				map[string]any{"timezone": "UTC"}, true, &out, &errOut)
			if got != tt.want {
				t.Errorf("exit code = %d, want %d (stderr: %s)", got, tt.want, errOut.String())
			}
		})
	}
}

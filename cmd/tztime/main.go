// Package main implements the tztime CLI for current-time lookups and
// timezone conversions.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/codeGROOVE-dev/tztime/pkg/timetool"
	"github.com/codeGROOVE-dev/tztime/pkg/timezone"
	"github.com/codeGROOVE-dev/tztime/pkg/tzconvert"
)

const version = "tztime CLI v0.1.0"

const (
	exitOK       = 0
	exitRejected = 1
	exitUsage    = 2
	exitInternal = 3
)

// toolHandler runs a named tool; *timetool.Service implements it.
type toolHandler interface {
	Call(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error)
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, fs, err := loadConfig(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	if cfg.Version {
		fmt.Fprintln(stdout, version)
		return exitOK
	}

	// Configure logging
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: level,
	}))

	svc := timetool.NewService(
		timezone.NewResolver(logger, cfg.CacheSize),
		tzconvert.New(tzconvert.WithLogger(logger)),
		logger,
	)

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return exitUsage
	}

	var (
		tool string
		args map[string]any
	)
	switch cmd := rest[0]; cmd {
	case "now":
		if len(rest) > 2 {
			fs.Usage()
			return exitUsage
		}
		tz := cfg.Timezone
		if len(rest) == 2 {
			tz = rest[1]
		}
		tool = timetool.GetCurrentTimeTool
		args = map[string]any{"timezone": tz}
	case "convert":
		if len(rest) != 4 {
			fs.Usage()
			return exitUsage
		}
		tool = timetool.ConvertTimeTool
		args = map[string]any{
			"source_timezone": rest[1],
			"time":            rest[2],
			"target_timezone": rest[3],
		}
	case "tools":
		return printTools(stdout, stderr)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", cmd)
		fs.Usage()
		return exitUsage
	}

	return callTool(ctx, svc, logger, tool, args, cfg.JSON, stdout, stderr)
}

// callTool runs one tool and prints its result. Validation rejections exit
// with exitRejected; any other failure is internal and exits with exitInternal.
func callTool(ctx context.Context, h toolHandler, logger *slog.Logger, tool string, args map[string]any,
	asJSON bool, stdout, stderr io.Writer,
) int {
	result, err := h.Call(ctx, tool, args)
	if err != nil {
		logger.Error("Tool call failed", "tool", tool, "error", err)
		return exitInternal
	}
	text := timetool.ResultText(result)
	if result.IsError {
		color.New(color.FgRed).Fprintf(stderr, "✗ %s\n", text)
		return exitRejected
	}

	if asJSON {
		fmt.Fprintln(stdout, text)
		return exitOK
	}

	switch tool {
	case timetool.GetCurrentTimeTool:
		var r timetool.CurrentTimeResponse
		if err := json.Unmarshal([]byte(text), &r); err != nil {
			logger.Error("Decoding result failed", "tool", tool, "error", err)
			return exitInternal
		}
		printCurrent(stdout, &r)
	case timetool.ConvertTimeTool:
		var r timetool.ConvertTimeResponse
		if err := json.Unmarshal([]byte(text), &r); err != nil {
			logger.Error("Decoding result failed", "tool", tool, "error", err)
			return exitInternal
		}
		printConversion(stdout, &r)
	default:
		fmt.Fprintln(stdout, text)
	}
	return exitOK
}

func printTools(stdout, stderr io.Writer) int {
	data, err := json.MarshalIndent(timetool.Tools(), "", "  ")
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitInternal
	}
	fmt.Fprintln(stdout, string(data))
	return exitOK
}

func printCurrent(w io.Writer, r *timetool.CurrentTimeResponse) {
	header := color.New(color.FgCyan, color.Bold)
	label := color.New(color.FgHiBlack)

	header.Fprintf(w, "\n🕐 %s\n", r.Timezone)
	fmt.Fprintln(w, strings.Repeat("─", 40))
	label.Fprint(w, "  Time:    ")
	fmt.Fprintln(w, r.Datetime)
	label.Fprint(w, "  Offset:  ")
	fmt.Fprintln(w, r.UTCOffset)
	label.Fprint(w, "  DST:     ")
	if r.IsDST {
		color.New(color.FgYellow).Fprintln(w, "yes")
	} else {
		fmt.Fprintln(w, "no")
	}
}

func printConversion(w io.Writer, r *timetool.ConvertTimeResponse) {
	header := color.New(color.FgCyan, color.Bold)
	label := color.New(color.FgHiBlack)
	diff := color.New(color.FgGreen)
	if strings.HasPrefix(r.TimeDifference, "-") {
		diff = color.New(color.FgRed)
	}

	header.Fprintf(w, "\n🌍 %s → %s\n", r.Source.Timezone, r.Target.Timezone)
	fmt.Fprintln(w, strings.Repeat("─", 40))
	for _, e := range []struct {
		name  string
		entry timetool.TimeEntry
	}{
		{"From:", r.Source},
		{"To:", r.Target},
	} {
		label.Fprintf(w, "  %-9s", e.name)
		fmt.Fprintf(w, "%s (UTC%s)\n", e.entry.Datetime, e.entry.UTCOffset)
	}
	label.Fprint(w, "  Diff:    ")
	diff.Fprintln(w, r.TimeDifference)
}

package timetool

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/codeGROOVE-dev/tztime/pkg/timezone"
	"github.com/codeGROOVE-dev/tztime/pkg/tzconvert"
)

// ErrUnknownTool is returned for a tool name not in Tools().
var ErrUnknownTool = errors.New("unknown tool")

// CurrentTimeResponse is the get_current_time result.
type CurrentTimeResponse struct {
	Timezone  string `json:"timezone"`
	Datetime  string `json:"datetime"`
	UTCOffset string `json:"utc_offset"`
	IsDST     bool   `json:"is_dst"`
}

// TimeEntry is one side of a convert_time result.
type TimeEntry struct {
	Timezone  string `json:"timezone"`
	Datetime  string `json:"datetime"`
	UTCOffset string `json:"utc_offset"`
}

// ConvertTimeResponse is the convert_time result.
type ConvertTimeResponse struct {
	Source         TimeEntry `json:"source"`
	Target         TimeEntry `json:"target"`
	TimeDifference string    `json:"time_difference"`
}

// Service dispatches tool calls to the resolver and engine.
//
// A validation failure is a *mcp.CallToolResult with IsError set and a
// human-readable text; it is not a Go error. Go errors are reserved for
// unknown tools, undecodable arguments, and unexpected failures.
type Service struct {
	resolver *timezone.Resolver
	engine   *tzconvert.Engine
	validate *validator.Validate
	logger   *slog.Logger
}

// NewService returns a Service. Nil arguments fall back to defaults.
func NewService(resolver *timezone.Resolver, engine *tzconvert.Engine, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if resolver == nil {
		resolver = timezone.NewResolver(logger, timezone.DefaultCacheSize)
	}
	if engine == nil {
		engine = tzconvert.New(tzconvert.WithLogger(logger))
	}
	return &Service{
		resolver: resolver,
		engine:   engine,
		validate: newValidator(),
		logger:   logger,
	}
}

// Call runs the named tool with the given arguments.
func (s *Service) Call(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	return s.Handle(ctx, req)
}

// Handle dispatches an MCP tool request. Its signature matches the tool
// handler type of mcp-go's server package.
func (s *Service) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	switch name := req.Params.Name; name {
	case GetCurrentTimeTool:
		var p GetCurrentTimeParams
		if err := bindArguments(req, &p); err != nil {
			return nil, fmt.Errorf("decoding %s arguments: %w", name, err)
		}
		return s.GetCurrentTime(ctx, p)
	case ConvertTimeTool:
		var p ConvertTimeParams
		if err := bindArguments(req, &p); err != nil {
			return nil, fmt.Errorf("decoding %s arguments: %w", name, err)
		}
		return s.ConvertTime(ctx, p)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTool, name)
	}
}

// bindArguments decodes the request arguments into target through JSON, so
// wrongly typed arguments fail the same way a wire payload would.
func bindArguments(req mcp.CallToolRequest, target any) error {
	raw, err := json.Marshal(req.Params.Arguments)
	if err != nil {
		return err
	}
	if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	return json.Unmarshal(raw, target)
}

// GetCurrentTime returns the current time in p.Timezone, or UTC when it is blank.
func (s *Service) GetCurrentTime(ctx context.Context, p GetCurrentTimeParams) (*mcp.CallToolResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(p.Timezone)
	if name == "" {
		name = "UTC"
	}

	tz, err := s.resolver.Resolve(name)
	if err != nil {
		return s.toolError(GetCurrentTimeTool, err)
	}

	m := s.engine.Now(tz)
	return s.success(GetCurrentTimeTool, &CurrentTimeResponse{
		Timezone:  tz.Name(),
		Datetime:  m.Datetime(),
		UTCOffset: m.UTCOffset(),
		IsDST:     m.IsDST,
	})
}

// ConvertTime converts p.Time from p.SourceTimezone to p.TargetTimezone.
func (s *Service) ConvertTime(ctx context.Context, p ConvertTimeParams) (*mcp.CallToolResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := validateParams(s.validate, &p); err != nil {
		return s.toolError(ConvertTimeTool, err)
	}

	source, err := s.resolver.Resolve(p.SourceTimezone)
	if err != nil {
		return s.toolError(ConvertTimeTool, err)
	}
	target, err := s.resolver.Resolve(p.TargetTimezone)
	if err != nil {
		return s.toolError(ConvertTimeTool, err)
	}

	conv, err := s.engine.Convert(source, p.Time, target)
	if err != nil {
		return s.toolError(ConvertTimeTool, err)
	}

	return s.success(ConvertTimeTool, &ConvertTimeResponse{
		Source: TimeEntry{
			Timezone:  source.Name(),
			Datetime:  conv.Source.Datetime(),
			UTCOffset: conv.Source.UTCOffset(),
		},
		Target: TimeEntry{
			Timezone:  target.Name(),
			Datetime:  conv.Target.Datetime(),
			UTCOffset: conv.Target.UTCOffset(),
		},
		TimeDifference: conv.TimeDifference(),
	})
}

func (s *Service) success(tool string, v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding %s response: %w", tool, err)
	}
	s.logger.Debug("tool call succeeded", "tool", tool)
	return mcp.NewToolResultText(string(data)), nil
}

// toolError turns validation failures into error results and passes anything
// else through as a Go error.
func (s *Service) toolError(tool string, err error) (*mcp.CallToolResult, error) {
	if !timezone.IsValidation(err) {
		return nil, fmt.Errorf("%s: %w", tool, err)
	}
	s.logger.Info("tool call rejected", "tool", tool, "error", err)
	return mcp.NewToolResultError(err.Error()), nil
}

// ResultText joins the text content of a tool result.
func ResultText(r *mcp.CallToolResult) string {
	if r == nil {
		return ""
	}
	var parts []string
	for _, c := range r.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n")
}

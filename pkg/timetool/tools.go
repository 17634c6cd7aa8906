// Package timetool exposes the timezone resolver and time engine as two
// MCP tools with JSON arguments and JSON text results, for use by a request
// dispatcher (an MCP server, a CLI, a chat agent).
package timetool

import "github.com/mark3labs/mcp-go/mcp"

// Tool names.
const (
	GetCurrentTimeTool = "get_current_time"
	ConvertTimeTool    = "convert_time"
)

// Tools returns the tool catalogue in a stable order.
func Tools() []mcp.Tool {
	return []mcp.Tool{
		mcp.NewTool(GetCurrentTimeTool,
			mcp.WithDescription("Get the current time in a specific timezone. Defaults to UTC if no timezone is provided."),
			mcp.WithString("timezone",
				mcp.Description("IANA timezone name (e.g., 'America/New_York', 'Europe/London', 'Asia/Tokyo'). Defaults to UTC."),
			),
		),
		mcp.NewTool(ConvertTimeTool,
			mcp.WithDescription("Convert a time from one timezone to another."),
			mcp.WithString("source_timezone",
				mcp.Required(),
				mcp.Description("Source IANA timezone name (e.g., 'America/New_York')"),
			),
			mcp.WithString("time",
				mcp.Required(),
				mcp.Description("Time to convert in 24-hour format (HH:MM)"),
			),
			mcp.WithString("target_timezone",
				mcp.Required(),
				mcp.Description("Target IANA timezone name (e.g., 'Europe/London')"),
			),
		),
	}
}

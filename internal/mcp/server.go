// Package mcp provides an MCP (Model Context Protocol) server for hz.
// This allows AI agents to submit, browse, and triage hazard reports through
// MCP tools instead of CLI commands. The role policy applies unchanged: the
// active session must be a citizen to submit and an admin to triage.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sagarsuraksha/hz/internal/config"
	"github.com/sagarsuraksha/hz/internal/geo"
	"github.com/sagarsuraksha/hz/internal/kv"
	"github.com/sagarsuraksha/hz/internal/output"
	"github.com/sagarsuraksha/hz/internal/report"
	"github.com/sagarsuraksha/hz/internal/session"
)

// Server wraps the MCP server with the open hz store and session manager.
type Server struct {
	mcpServer    *server.MCPServer
	kv           kv.Store
	reports      *report.Store
	sessions     *session.Manager
	cfg          *config.Config
	tools        []string
	lastActivity time.Time
	timeout      time.Duration
	mu           sync.RWMutex
}

// Config holds server configuration
type Config struct {
	Tools   []string      // Which tools to expose (empty = all)
	Timeout time.Duration // Inactivity timeout (0 = no timeout)
}

// AllTools lists all available tools
var AllTools = []string{"hz_submit", "hz_reports", "hz_stats", "hz_map", "hz_triage"}

// New creates a new MCP server over the initialized .hz store.
func New(cfg Config) (*Server, error) {
	hzDir, err := config.FindConfigDir(".")
	if err != nil {
		return nil, fmt.Errorf("hz not initialized: run 'hz init' first")
	}

	appCfg, err := config.Load(".")
	if err != nil {
		return nil, err
	}

	var db kv.Store
	switch appCfg.Storage.Backend {
	case "dolt":
		db, err = kv.OpenDolt(hzDir)
	default:
		db, err = kv.OpenSQLite(hzDir)
	}
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	mcpServer := server.NewMCPServer(
		"hz",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	s := &Server{
		mcpServer:    mcpServer,
		kv:           db,
		reports:      report.NewStore(db, logger),
		sessions:     session.NewManager(db, logger),
		cfg:          appCfg,
		lastActivity: time.Now(),
		timeout:      cfg.Timeout,
	}

	toolsToRegister := cfg.Tools
	if len(toolsToRegister) == 0 {
		toolsToRegister = AllTools
	}
	for _, name := range toolsToRegister {
		if err := s.registerTool(name); err != nil {
			db.Close()
			return nil, fmt.Errorf("register tool %s: %w", name, err)
		}
		s.tools = append(s.tools, name)
	}

	return s, nil
}

// Close releases the underlying store.
func (s *Server) Close() error {
	return s.kv.Close()
}

// ListTools returns the names of all registered tools.
func (s *Server) ListTools() []string {
	return s.tools
}

// registerTool registers a single tool with the MCP server
func (s *Server) registerTool(name string) error {
	switch name {
	case "hz_submit":
		s.registerSubmitTool()
	case "hz_reports":
		s.registerReportsTool()
	case "hz_stats":
		s.registerStatsTool()
	case "hz_map":
		s.registerMapTool()
	case "hz_triage":
		s.registerTriageTool()
	default:
		return fmt.Errorf("unknown tool: %s", name)
	}
	return nil
}

// ServeStdio starts the server using stdio transport
func (s *Server) ServeStdio() error {
	if s.timeout > 0 {
		go s.timeoutChecker()
	}
	return server.ServeStdio(s.mcpServer)
}

// timeoutChecker monitors for inactivity and exits if timeout exceeded
func (s *Server) timeoutChecker() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.RLock()
		idle := time.Since(s.lastActivity)
		s.mu.RUnlock()
		if idle > s.timeout {
			fmt.Fprintf(os.Stderr, "hz mcp: exiting after %s of inactivity\n", s.timeout)
			s.Close()
			os.Exit(0)
		}
	}
}

func (s *Server) updateActivity() {
	s.mu.Lock()
	s.lastActivity = time.Now()
	s.mu.Unlock()
}

func (s *Server) registerSubmitTool() {
	tool := mcp.NewTool("hz_submit",
		mcp.WithDescription("Submit a new hazard report. Requires a citizen session."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Short description of the hazard"),
		),
		mcp.WithString("description",
			mcp.Description("Detailed description"),
		),
		mcp.WithNumber("latitude",
			mcp.Description("Report latitude (requires longitude)"),
		),
		mcp.WithNumber("longitude",
			mcp.Description("Report longitude (requires latitude)"),
		),
	)
	s.mcpServer.AddTool(tool, s.handleSubmit)
}

func (s *Server) handleSubmit(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()

	sess, err := s.sessions.Current()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if sess == nil || !session.CanSubmit(sess.Role) {
		return mcp.NewToolResultError("submitting requires a citizen session: run 'hz login --role citizen'"), nil
	}

	args := req.GetArguments()
	title, ok := args["title"].(string)
	if !ok || strings.TrimSpace(title) == "" {
		return mcp.NewToolResultError("title parameter is required"), nil
	}
	description, _ := args["description"].(string)

	draft := report.Draft{Title: title, Description: description}
	lat, hasLat := args["latitude"].(float64)
	lng, hasLng := args["longitude"].(float64)
	if hasLat != hasLng {
		return mcp.NewToolResultError("latitude and longitude must be given together"), nil
	}
	if hasLat {
		loc := report.Location{Latitude: lat, Longitude: lng}
		if !loc.Valid() {
			return mcp.NewToolResultError("coordinates out of range"), nil
		}
		draft.Location = &loc
	}

	r, err := s.reports.Create(ctx, draft)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("report submitted: %s", r.ID)), nil
}

func (s *Server) registerReportsTool() {
	tool := mcp.NewTool("hz_reports",
		mcp.WithDescription("List hazard reports, newest first, optionally filtered. Requires an admin session."),
		mcp.WithString("status",
			mcp.Description("Filter by status: all | pending | investigating | resolved"),
		),
		mcp.WithString("priority",
			mcp.Description("Filter by priority: all | low | medium | high"),
		),
		mcp.WithString("search",
			mcp.Description("Case-insensitive search over title and description"),
		),
	)
	s.mcpServer.AddTool(tool, s.handleReports)
}

func (s *Server) handleReports(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()

	if result := s.requireReviewer(); result != nil {
		return result, nil
	}

	args := req.GetArguments()
	status, _ := args["status"].(string)
	priority, _ := args["priority"].(string)
	search, _ := args["search"].(string)

	all, err := s.reports.List()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	matched := report.Filter(all, report.Criteria{Status: status, Priority: priority, Search: search})

	return s.renderResult(matched)
}

func (s *Server) registerStatsTool() {
	tool := mcp.NewTool("hz_stats",
		mcp.WithDescription("Count summaries over the report collection. Requires an admin session."),
	)
	s.mcpServer.AddTool(tool, s.handleStats)
}

func (s *Server) handleStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()

	if result := s.requireReviewer(); result != nil {
		return result, nil
	}

	reports, err := s.reports.List()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.renderResult(report.Aggregate(reports))
}

func (s *Server) registerMapTool() {
	tool := mcp.NewTool("hz_map",
		mcp.WithDescription("Marker descriptors and viewport center for all located reports."),
		mcp.WithNumber("viewer_latitude",
			mcp.Description("Viewer latitude (requires viewer_longitude)"),
		),
		mcp.WithNumber("viewer_longitude",
			mcp.Description("Viewer longitude (requires viewer_latitude)"),
		),
	)
	s.mcpServer.AddTool(tool, s.handleMap)
}

func (s *Server) handleMap(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()

	args := req.GetArguments()
	var viewer *report.Location
	lat, hasLat := args["viewer_latitude"].(float64)
	lng, hasLng := args["viewer_longitude"].(float64)
	if hasLat && hasLng {
		viewer = &report.Location{Latitude: lat, Longitude: lng}
	}

	reports, err := s.reports.List()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	view := struct {
		Center  report.Location `json:"center" yaml:"center"`
		Viewer  *geo.Marker     `json:"viewer,omitempty" yaml:"viewer,omitempty"`
		Markers []geo.Marker    `json:"markers" yaml:"markers"`
	}{
		Center:  geo.ViewportCenterFrom(s.fallbackCenter(), reports, viewer),
		Markers: geo.Markers(reports),
	}
	if viewer != nil {
		m := geo.ViewerMarker(*viewer)
		view.Viewer = &m
	}
	return s.renderResult(view)
}

func (s *Server) registerTriageTool() {
	tool := mcp.NewTool("hz_triage",
		mcp.WithDescription("Set a report's status or priority. Requires an admin session."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Report id"),
		),
		mcp.WithString("status",
			mcp.Description("New status: pending | investigating | resolved"),
		),
		mcp.WithString("priority",
			mcp.Description("New priority: low | medium | high"),
		),
	)
	s.mcpServer.AddTool(tool, s.handleTriage)
}

func (s *Server) handleTriage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()

	if result := s.requireReviewer(); result != nil {
		return result, nil
	}

	args := req.GetArguments()
	id, ok := args["id"].(string)
	if !ok || id == "" {
		return mcp.NewToolResultError("id parameter is required"), nil
	}

	statusArg, hasStatus := args["status"].(string)
	priorityArg, hasPriority := args["priority"].(string)
	if !hasStatus && !hasPriority {
		return mcp.NewToolResultError("one of status or priority is required"), nil
	}

	if hasStatus {
		status, err := report.ParseStatus(statusArg)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := s.reports.UpdateStatus(id, status); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}
	if hasPriority {
		priority, err := report.ParsePriority(priorityArg)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := s.reports.UpdatePriority(id, priority); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}
	return mcp.NewToolResultText(fmt.Sprintf("report %s updated", id)), nil
}

// fallbackCenter returns the configured viewport fallback, or the built-in
// one when the config carries no override.
func (s *Server) fallbackCenter() report.Location {
	if s.cfg.Map.DefaultLatitude != nil && s.cfg.Map.DefaultLongitude != nil {
		return report.Location{
			Latitude:  *s.cfg.Map.DefaultLatitude,
			Longitude: *s.cfg.Map.DefaultLongitude,
		}
	}
	return geo.DefaultCenter
}

// requireReviewer returns an error result when the active session may not
// triage, nil when it may.
func (s *Server) requireReviewer() *mcp.CallToolResult {
	sess, err := s.sessions.Current()
	if err != nil {
		return mcp.NewToolResultError(err.Error())
	}
	if sess == nil || !session.CanTriage(sess.Role) {
		return mcp.NewToolResultError("this tool requires an admin session: run 'hz login --role admin'")
	}
	return nil
}

// renderResult serializes v as YAML text for the tool result.
func (s *Server) renderResult(v any) (*mcp.CallToolResult, error) {
	var b strings.Builder
	if err := output.Render(&b, output.FormatYAML, v); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(b.String()), nil
}

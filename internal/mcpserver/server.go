// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes vetdesk tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cast"

	"github.com/starford/vetdesk/internal/clinic"
	"github.com/starford/vetdesk/internal/filter"
)

const filtersURI = "vetdesk://filters"

// Server wraps the MCP server with vetdesk tools.
type Server struct {
	mcp   *server.MCPServer
	svc   *clinic.Service
	email string
}

// New creates a new MCP server with all vetdesk tools registered. email is
// the caller's identity and owns the live notification set.
func New(svc *clinic.Service, email string) *Server {
	s := &Server{svc: svc, email: email}

	s.mcp = server.NewMCPServer(
		"vetdesk",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_pets",
		mcp.WithDescription("List pets. Accepts the pet filters described by the "+filtersURI+" resource."),
		mcp.WithString("search", mcp.Description("Matches name, type, breed or owner")),
		mcp.WithString("type", mcp.Description("Exact pet type, e.g. Dog")),
		mcp.WithNumber("page", mcp.Description("Page number, starting at 1")),
	), s.listPets)

	s.mcp.AddTool(mcp.NewTool("list_appointments",
		mcp.WithDescription("List appointments with optional filters."),
		mcp.WithString("searchTerm", mcp.Description("Matches owner, pet, email or doctor")),
		mcp.WithString("status", mcp.Description("pending, confirmed, completed or cancelled")),
		mcp.WithString("dateFrom", mcp.Description("Earliest date, YYYY-MM-DD")),
		mcp.WithString("dateTo", mcp.Description("Latest date, YYYY-MM-DD")),
		mcp.WithNumber("page", mcp.Description("Page number, starting at 1")),
	), s.listAppointments)

	s.mcp.AddTool(mcp.NewTool("get_dashboard",
		mcp.WithDescription("Clinic stats, today's appointments and admin alerts."),
	), s.getDashboard)

	s.mcp.AddTool(mcp.NewTool("list_notifications",
		mcp.WithDescription("Return the live notification set."),
	), s.listNotifications)

	s.mcp.AddTool(mcp.NewTool("refresh_notifications",
		mcp.WithDescription("Fetch the configured user's notification feed and replace the live set. "+
			"Previously dismissed notifications stay hidden."),
	), s.refreshNotifications)

	s.mcp.AddTool(mcp.NewTool("dismiss_notification",
		mcp.WithDescription("Dismiss the live notification at index. It will not reappear on refresh."),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("Zero-based position in the live set")),
	), s.dismissNotification)

	s.mcp.AddTool(mcp.NewTool("upload_document",
		mcp.WithDescription("Attach a medical document to a pet from a base64 data URI or an http(s) URL."),
		mcp.WithNumber("pet_id", mcp.Required(), mcp.Description("Pet id")),
		mcp.WithString("url", mcp.Required(), mcp.Description("data:<mime>;base64,... or http(s) URL")),
		mcp.WithString("filename", mcp.Description("Original file name")),
		mcp.WithString("document_type", mcp.Description("medical_report, xray, blood_test, ... (default other)")),
		mcp.WithString("description", mcp.Description("Free-text description")),
	), s.uploadDocument)

	s.mcp.AddResource(
		mcp.NewResource(filtersURI, "List Filters",
			mcp.WithResourceDescription("Query parameters accepted by each list tool and endpoint."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readFiltersResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// query turns tool arguments named by schema into filter query values.
func query(req mcp.CallToolRequest, schema filter.Schema) url.Values {
	args := req.GetArguments()
	q := url.Values{}
	for _, name := range schema.Names() {
		if v, ok := args[name]; ok && v != nil {
			q.Set(name, cast.ToString(v))
		}
	}
	return q
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listPets(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, err := s.svc.ListPets(ctx, clinic.PetFilters.Parse(query(req, clinic.PetFilters)),
		clinic.PageRequest{Page: req.GetInt("page", 1)})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(snap)
}

func (s *Server) listAppointments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, err := s.svc.ListAppointments(ctx, clinic.AppointmentFilters.Parse(query(req, clinic.AppointmentFilters)),
		clinic.PageRequest{Page: req.GetInt("page", 1)})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(snap)
}

func (s *Server) getDashboard(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	d, err := s.svc.Dashboard(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(d)
}

func (s *Server) listNotifications(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	live := s.svc.Notifications()
	if len(live) == 0 {
		return mcp.NewToolResultText("no notifications"), nil
	}
	return jsonResult(live)
}

func (s *Server) refreshNotifications(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	live, err := s.svc.RefreshNotifications(ctx, s.email)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(live)
}

func (s *Server) dismissNotification(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	index, err := req.RequireInt("index")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	ok, err := s.svc.DismissNotification(index)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("no notification at index %d", index)), nil
	}
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("dismissed %d (not persisted: %v)", index, err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("dismissed %d", index)), nil
}

func (s *Server) readFiltersResource(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      filtersURI,
			MIMEType: "text/markdown",
			Text:     FiltersReference(),
		},
	}, nil
}

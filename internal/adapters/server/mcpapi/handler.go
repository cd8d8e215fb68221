// Package mcpapi provides a stateless MCP streamable-HTTP adapter over the
// todo store.
package mcpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/hylla/syssla/internal/adapters/server/common"
	"github.com/hylla/syssla/internal/app"
	"github.com/hylla/syssla/internal/domain"
)

// Config captures MCP transport configuration.
type Config struct {
	ServerName    string
	ServerVersion string
	EndpointPath  string
}

// Handler wraps one stateless MCP streamable HTTP handler.
type Handler struct {
	httpHandler http.Handler
}

// NewHandler builds the MCP adapter exposing the todo collection tools.
func NewHandler(cfg Config, todos common.TodoService) (*Handler, error) {
	if todos == nil {
		return nil, fmt.Errorf("todo service is required")
	}
	cfg = normalizeConfig(cfg)

	mcpSrv := mcpserver.NewMCPServer(
		cfg.ServerName,
		cfg.ServerVersion,
		mcpserver.WithToolCapabilities(false),
	)
	registerListTool(mcpSrv, todos)
	registerCreateTool(mcpSrv, todos)
	registerUpdateTool(mcpSrv, todos)
	registerDeleteTool(mcpSrv, todos)
	registerStatsTool(mcpSrv, todos)

	streamable := mcpserver.NewStreamableHTTPServer(
		mcpSrv,
		mcpserver.WithEndpointPath(cfg.EndpointPath),
		mcpserver.WithStateLess(true),
	)
	return &Handler{httpHandler: streamable}, nil
}

// ServeHTTP handles one MCP streamable HTTP request.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.httpHandler == nil {
		http.Error(w, "mcp handler unavailable", http.StatusServiceUnavailable)
		return
	}
	h.httpHandler.ServeHTTP(w, r)
}

// normalizeConfig applies deterministic defaults to MCP adapter config.
func normalizeConfig(cfg Config) Config {
	cfg.ServerName = strings.TrimSpace(cfg.ServerName)
	if cfg.ServerName == "" {
		cfg.ServerName = "syssla"
	}
	cfg.ServerVersion = strings.TrimSpace(cfg.ServerVersion)
	if cfg.ServerVersion == "" {
		cfg.ServerVersion = "dev"
	}
	cfg.EndpointPath = strings.TrimSpace(cfg.EndpointPath)
	if cfg.EndpointPath == "" {
		cfg.EndpointPath = "/mcp"
	}
	cfg.EndpointPath = "/" + strings.Trim(cfg.EndpointPath, "/")
	return cfg
}

// registerListTool registers the `syssla.list_todos` tool.
func registerListTool(srv *mcpserver.MCPServer, todos common.TodoService) {
	srv.AddTool(
		mcp.NewTool(
			"syssla.list_todos",
			mcp.WithDescription("List todo items in their current order, optionally filtered by completion."),
			mcp.WithString("filter", mcp.Description("all, completed, or uncompleted"),
				mcp.Enum(string(domain.FilterAll), string(domain.FilterCompleted), string(domain.FilterUncompleted))),
		),
		func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			filter, err := domain.ParseFilter(req.GetString("filter", ""))
			if err != nil {
				return mcp.NewToolResultError("invalid_request: " + err.Error()), nil
			}
			items := make([]domain.Item, 0)
			for _, item := range todos.Items() {
				if filter.Matches(item) {
					items = append(items, item)
				}
			}
			result, err := mcp.NewToolResultJSON(map[string]any{
				"items": items,
			})
			if err != nil {
				return nil, fmt.Errorf("encode list_todos result: %w", err)
			}
			return result, nil
		},
	)
}

// registerCreateTool registers the `syssla.create_todo` tool.
func registerCreateTool(srv *mcpserver.MCPServer, todos common.TodoService) {
	srv.AddTool(
		mcp.NewTool(
			"syssla.create_todo",
			mcp.WithDescription("Create a new uncompleted todo item."),
			mcp.WithString("text", mcp.Required(), mcp.Description("Todo text, may be empty")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			text, err := req.RequireString("text")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			item, err := todos.Create(ctx, text)
			if err != nil {
				return toolResultFromError(err), nil
			}
			result, err := mcp.NewToolResultJSON(item)
			if err != nil {
				return nil, fmt.Errorf("encode create_todo result: %w", err)
			}
			return result, nil
		},
	)
}

// registerUpdateTool registers the `syssla.update_todo` tool. Omitted fields
// keep their current values; an unseen id appends (upsert semantics).
func registerUpdateTool(srv *mcpserver.MCPServer, todos common.TodoService) {
	srv.AddTool(
		mcp.NewTool(
			"syssla.update_todo",
			mcp.WithDescription("Update a todo item's text or completion state by id."),
			mcp.WithString("id", mcp.Required(), mcp.Description("Todo identifier")),
			mcp.WithString("text", mcp.Description("Replacement text")),
			mcp.WithBoolean("is_completed", mcp.Description("Replacement completion state")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			id, err := req.RequireString("id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			item, ok := todos.Get(id)
			if !ok {
				item = domain.Item{ID: id}
			}
			item.Text = req.GetString("text", item.Text)
			item.IsCompleted = req.GetBool("is_completed", item.IsCompleted)

			updated, err := todos.Update(ctx, item)
			if err != nil {
				return toolResultFromError(err), nil
			}
			result, err := mcp.NewToolResultJSON(updated)
			if err != nil {
				return nil, fmt.Errorf("encode update_todo result: %w", err)
			}
			return result, nil
		},
	)
}

// registerDeleteTool registers the `syssla.delete_todo` tool.
func registerDeleteTool(srv *mcpserver.MCPServer, todos common.TodoService) {
	srv.AddTool(
		mcp.NewTool(
			"syssla.delete_todo",
			mcp.WithDescription("Delete one todo item by id and return the deleted resource."),
			mcp.WithString("id", mcp.Required(), mcp.Description("Todo identifier")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			id, err := req.RequireString("id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			deleted, ok := todos.Get(id)
			if !ok {
				return mcp.NewToolResultError(fmt.Sprintf("not_found: todo %q not found", id)), nil
			}
			if err := todos.Remove(ctx, id); err != nil {
				return toolResultFromError(err), nil
			}
			result, err := mcp.NewToolResultJSON(deleted)
			if err != nil {
				return nil, fmt.Errorf("encode delete_todo result: %w", err)
			}
			return result, nil
		},
	)
}

// registerStatsTool registers the `syssla.todo_stats` tool.
func registerStatsTool(srv *mcpserver.MCPServer, todos common.TodoService) {
	srv.AddTool(
		mcp.NewTool(
			"syssla.todo_stats",
			mcp.WithDescription("Return total, completed, uncompleted, and percent-completed counters."),
		),
		func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			stats := todos.Stats()
			result, err := mcp.NewToolResultJSON(map[string]any{
				"total":            stats.Total,
				"totalCompleted":   stats.TotalCompleted,
				"totalUncompleted": stats.TotalUncompleted,
				"percentCompleted": stats.PercentCompleted,
			})
			if err != nil {
				return nil, fmt.Errorf("encode todo_stats result: %w", err)
			}
			return result, nil
		},
	)
}

// toolResultFromError maps store errors into MCP-visible tool errors.
func toolResultFromError(err error) *mcp.CallToolResult {
	switch {
	case err == nil:
		return mcp.NewToolResultError("unknown error")
	case errors.Is(err, app.ErrNotFound):
		return mcp.NewToolResultError("not_found: " + err.Error())
	case errors.Is(err, domain.ErrInvalidID), errors.Is(err, domain.ErrInvalidPosition):
		return mcp.NewToolResultError("invalid_request: " + err.Error())
	default:
		return mcp.NewToolResultError("internal_error: " + err.Error())
	}
}

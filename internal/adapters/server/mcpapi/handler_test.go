package mcpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hylla/syssla/internal/app"
	"github.com/hylla/syssla/internal/domain"
)

// jsonRPCResponse models minimal JSON-RPC response fields used in these tests.
type jsonRPCResponse struct {
	ID     float64        `json:"id"`
	Result map[string]any `json:"result"`
}

func testIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("mcp-%d", n)
	}
}

func newTestServer(t *testing.T, seed ...domain.Item) (*httptest.Server, *app.Store) {
	t.Helper()
	store := app.NewStore(nil, testIDs(), seed...)
	handler, err := NewHandler(Config{}, store)
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, store
}

// callToolRequest constructs one deterministic tools/call JSON-RPC request payload.
func callToolRequest(id int, toolName string, arguments map[string]any) map[string]any {
	return map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"method":  "tools/call",
		"params": map[string]any{
			"name":      toolName,
			"arguments": arguments,
		},
	}
}

// postJSONRPC sends one JSON-RPC payload and decodes the response body.
func postJSONRPC(t *testing.T, client *http.Client, url string, payload any) jsonRPCResponse {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("NewRequest() error = %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	var decoded jsonRPCResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	return decoded
}

// toolResultStructured decodes structuredContent as one map for stable assertions.
func toolResultStructured(t *testing.T, result map[string]any) map[string]any {
	t.Helper()
	structured, ok := result["structuredContent"].(map[string]any)
	if !ok {
		t.Fatalf("structuredContent missing in tool result: %#v", result)
	}
	return structured
}

// toolResultText decodes the first text entry from one tool-call result payload.
func toolResultText(t *testing.T, result map[string]any) string {
	t.Helper()
	contentRaw, ok := result["content"].([]any)
	if !ok || len(contentRaw) == 0 {
		t.Fatalf("content missing in tool result: %#v", result)
	}
	first, ok := contentRaw[0].(map[string]any)
	if !ok {
		t.Fatalf("first content entry has unexpected type: %#v", contentRaw[0])
	}
	text, ok := first["text"].(string)
	if !ok {
		t.Fatalf("content text missing in tool result: %#v", first)
	}
	return text
}

func TestListTodosTool(t *testing.T) {
	srv, _ := newTestServer(t,
		domain.Item{ID: "a", Text: "one", IsCompleted: true},
		domain.Item{ID: "b", Text: "two"},
	)

	decoded := postJSONRPC(t, srv.Client(), srv.URL+"/mcp", callToolRequest(1, "syssla.list_todos", map[string]any{
		"filter": "completed",
	}))
	structured := toolResultStructured(t, decoded.Result)
	items, ok := structured["items"].([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("unexpected items %#v", structured["items"])
	}
	first, _ := items[0].(map[string]any)
	if first["id"] != "a" {
		t.Fatalf("unexpected item %#v", first)
	}
}

func TestCreateTodoTool(t *testing.T) {
	srv, store := newTestServer(t)

	decoded := postJSONRPC(t, srv.Client(), srv.URL+"/mcp", callToolRequest(2, "syssla.create_todo", map[string]any{
		"text": "buy milk",
	}))
	structured := toolResultStructured(t, decoded.Result)
	if structured["text"] != "buy milk" {
		t.Fatalf("unexpected result %#v", structured)
	}
	if len(store.Items()) != 1 {
		t.Fatalf("store not updated: %+v", store.Items())
	}
}

func TestUpdateTodoToolKeepsOmittedFields(t *testing.T) {
	srv, store := newTestServer(t, domain.Item{ID: "a", Text: "one"})

	decoded := postJSONRPC(t, srv.Client(), srv.URL+"/mcp", callToolRequest(3, "syssla.update_todo", map[string]any{
		"id":           "a",
		"is_completed": true,
	}))
	structured := toolResultStructured(t, decoded.Result)
	if structured["text"] != "one" || structured["isCompleted"] != true {
		t.Fatalf("unexpected result %#v", structured)
	}
	item, _ := store.Get("a")
	if !item.IsCompleted || item.Text != "one" {
		t.Fatalf("unexpected stored item %+v", item)
	}
}

func TestDeleteTodoTool(t *testing.T) {
	srv, store := newTestServer(t, domain.Item{ID: "a", Text: "one"})

	decoded := postJSONRPC(t, srv.Client(), srv.URL+"/mcp", callToolRequest(4, "syssla.delete_todo", map[string]any{
		"id": "a",
	}))
	structured := toolResultStructured(t, decoded.Result)
	if structured["id"] != "a" {
		t.Fatalf("unexpected result %#v", structured)
	}
	if len(store.Items()) != 0 {
		t.Fatalf("store not updated: %+v", store.Items())
	}

	decoded = postJSONRPC(t, srv.Client(), srv.URL+"/mcp", callToolRequest(5, "syssla.delete_todo", map[string]any{
		"id": "a",
	}))
	if text := toolResultText(t, decoded.Result); !strings.Contains(text, "not_found") {
		t.Fatalf("unexpected error text %q", text)
	}
}

func TestTodoStatsTool(t *testing.T) {
	srv, _ := newTestServer(t,
		domain.Item{ID: "a", IsCompleted: true},
		domain.Item{ID: "b"},
	)

	decoded := postJSONRPC(t, srv.Client(), srv.URL+"/mcp", callToolRequest(6, "syssla.todo_stats", map[string]any{}))
	structured := toolResultStructured(t, decoded.Result)
	if structured["total"] != float64(2) || structured["totalCompleted"] != float64(1) {
		t.Fatalf("unexpected stats %#v", structured)
	}
	if structured["percentCompleted"] != 0.5 {
		t.Fatalf("unexpected percent %#v", structured["percentCompleted"])
	}
}

package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"coach/pkg/export"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	log "github.com/sirupsen/logrus"
)

type echoTool struct{}

func (t *echoTool) Execute(ctx context.Context, args json.RawMessage) (string, error) {
	return string(args), nil
}

type failingTool struct{}

func (t *failingTool) Execute(ctx context.Context, args json.RawMessage) (string, error) {
	return "", fmt.Errorf("upstream unavailable")
}

func TestBeltExecute(t *testing.T) {
	belt := NewBelt(
		Tool{BaseTool: BaseTool{Name: "echo"}, Executable: &echoTool{}},
		Tool{BaseTool: BaseTool{Name: "broken"}, Executable: &failingTool{}},
	)

	if out := belt.Execute(context.Background(), "echo", json.RawMessage(`{"a":1}`)); out != `{"a":1}` {
		t.Errorf("echo output = %q", out)
	}

	out := belt.Execute(context.Background(), "broken", nil)
	if !strings.Contains(out, "upstream unavailable") {
		t.Errorf("tool failure should surface as text, got %q", out)
	}

	out = belt.Execute(context.Background(), "nope", nil)
	if !strings.Contains(out, "Unknown tool") {
		t.Errorf("unknown tool should surface as text, got %q", out)
	}
}

func TestPlannerToolSchemas(t *testing.T) {
	chatTools := NewBelt(
		Tool{BaseTool: statsBaseTool(), Executable: &echoTool{}},
		Tool{BaseTool: searchBaseTool(), Executable: &echoTool{}},
		Tool{BaseTool: exportBaseTool(), Executable: &echoTool{}},
	).ChatTools()

	if len(chatTools) != 3 {
		t.Fatalf("chat tools = %d, want 3", len(chatTools))
	}
	props, ok := ExportToolSchema["properties"].(map[string]interface{})
	if !ok {
		t.Fatal("export schema should carry properties")
	}
	for _, field := range []string{"athlete_name", "week_start_date", "workouts"} {
		if _, ok := props[field]; !ok {
			t.Errorf("export schema missing %q", field)
		}
	}
}

// completionResponse builds a minimal chat completion payload
func completionResponse(content string, toolCalls []map[string]interface{}) map[string]interface{} {
	message := map[string]interface{}{
		"role":    "assistant",
		"content": content,
	}
	finishReason := "stop"
	if len(toolCalls) > 0 {
		message["tool_calls"] = toolCalls
		finishReason = "tool_calls"
	}
	return map[string]interface{}{
		"id":      "cmpl-test",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4o",
		"choices": []map[string]interface{}{
			{"index": 0, "finish_reason": finishReason, "message": message},
		},
	}
}

func newStubAgent(serverUrl string, belt *Belt) *PlannerAgent {
	return &PlannerAgent{
		Client: openai.NewClient(
			option.WithAPIKey("test-key"),
			option.WithBaseURL(serverUrl+"/"),
		),
		Model:       "gpt-4o",
		Temperature: 0.2,
		PlanDays:    7,
		MaxTurns:    4,
		Belt:        belt,
		logger:      log.WithFields(log.Fields{"component": "planner"}),
	}
}

func TestPlannerAgentRun(t *testing.T) {
	outputDir := t.TempDir()
	exporter := export.NewExporter(outputDir, nil, "")
	belt := NewBelt(Tool{BaseTool: exportBaseTool(), Executable: &ExportTool{Exporter: exporter}})

	exportArgs := `{"athlete_name":"Jane Doe","week_start_date":"2026-03-02","workouts":[{"day":"Monday","title":"Easy Run","duration":"45 min","description":"Conversational pace","type":"Run","intensity":"Easy"}]}`

	turn := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		turn++
		switch turn {
		case 1:
			json.NewEncoder(w).Encode(completionResponse("", []map[string]interface{}{
				{
					"id":   "call_1",
					"type": "function",
					"function": map[string]interface{}{
						"name":      ExportToolName,
						"arguments": exportArgs,
					},
				},
			}))
		default:
			json.NewEncoder(w).Encode(completionResponse("Your weekly plan is ready.", nil))
		}
	}))
	defer server.Close()

	agent := newStubAgent(server.URL, belt)

	state, err := agent.Run(context.Background(), "Jane Doe", "improve 10k time")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if state.FinalMessage != "Your weekly plan is ready." {
		t.Errorf("final message = %q", state.FinalMessage)
	}
	if state.ExcelExportPath == "" {
		t.Fatal("expected an export path")
	}
	if _, err := os.Stat(state.ExcelExportPath); err != nil {
		t.Errorf("exported file should exist: %v", err)
	}
	if turn != 2 {
		t.Errorf("completions requested = %d, want 2", turn)
	}
}

func TestPlannerAgentMaxTurns(t *testing.T) {
	belt := NewBelt(Tool{BaseTool: BaseTool{Name: "echo"}, Executable: &echoTool{}})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// the model keeps calling tools forever
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(completionResponse("", []map[string]interface{}{
			{
				"id":   "call_n",
				"type": "function",
				"function": map[string]interface{}{
					"name":      "echo",
					"arguments": "{}",
				},
			},
		}))
	}))
	defer server.Close()

	agent := newStubAgent(server.URL, belt)
	agent.MaxTurns = 3

	_, err := agent.Run(context.Background(), "Jane Doe", "")
	if err == nil {
		t.Fatal("expected max turns error")
	}
	if !strings.Contains(err.Error(), "3 turns") {
		t.Errorf("error should name the turn limit, got: %v", err)
	}
}

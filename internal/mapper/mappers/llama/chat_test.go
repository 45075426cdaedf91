package llama

import (
	"testing"

	"github.com/harunnryd/kiroku/internal/mapper/contract"
)

func TestMapChat_CompletionMessage(t *testing.T) {
	result, err := MapChat(contract.AdapterParams{
		Request:    []byte(`{"model":"llama-3.3-70b","messages":[{"role":"user","content":"hello"}]}`),
		Response:   []byte(`{"model":"llama-3.3-70b","completion_message":{"role":"assistant","content":{"type":"text","text":"hi"}}}`),
		StatusCode: 200,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp := result.Schema.Response
	if resp == nil || len(resp.Messages) != 1 {
		t.Fatalf("response = %+v", resp)
	}
	if resp.Messages[0].Content != "hi" || resp.Messages[0].Role != "assistant" {
		t.Fatalf("completion message = %+v", resp.Messages[0])
	}
	if result.Preview.Request != "hello" || result.Preview.Response != "hi" {
		t.Fatalf("previews = %q / %q", result.Preview.Request, result.Preview.Response)
	}
}

func TestMapChat_CompletionMessageToolCalls(t *testing.T) {
	result, err := MapChat(contract.AdapterParams{
		Request:    []byte(`{"messages":[{"role":"user","content":"weather?"}]}`),
		Response:   []byte(`{"completion_message":{"role":"assistant","content":"","tool_calls":[{"id":"c1","function":{"name":"get_weather","arguments":"{\"city\":\"Oslo\"}"}}]}}`),
		StatusCode: 200,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp := result.Schema.Response
	if resp == nil || len(resp.Messages) != 1 {
		t.Fatalf("response = %+v", resp)
	}
	msg := resp.Messages[0]
	if msg.Type != contract.MessageTypeFunctionCall || len(msg.ToolCalls) != 1 {
		t.Fatalf("message = %+v", msg)
	}
	if msg.ToolCalls[0].Name != "get_weather" {
		t.Fatalf("tool call = %+v", msg.ToolCalls[0])
	}
	want := `get_weather({"city":"Oslo"})`
	if result.Preview.Response != want {
		t.Fatalf("response preview = %q, want %q", result.Preview.Response, want)
	}
}

func TestMapChat_ChoicesFallback(t *testing.T) {
	result, err := MapChat(contract.AdapterParams{
		Request:    []byte(`{"model":"llama-3.1-8b","messages":[{"role":"user","content":"hi"}]}`),
		Response:   []byte(`{"choices":[{"message":{"role":"assistant","content":"hello"}}]}`),
		StatusCode: 200,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp := result.Schema.Response
	if resp == nil || len(resp.Messages) != 1 || resp.Messages[0].Content != "hello" {
		t.Fatalf("response = %+v", resp)
	}
}

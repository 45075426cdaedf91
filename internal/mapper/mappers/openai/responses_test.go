package openai

import (
	"testing"

	"github.com/harunnryd/kiroku/internal/mapper/contract"
)

func TestMapResponses_StringInput(t *testing.T) {
	result, err := MapResponses(contract.AdapterParams{
		Request:    []byte(`{"model":"gpt-4o","instructions":"answer briefly","input":"what is Go?"}`),
		Response:   []byte(`{"model":"gpt-4o","output":[{"type":"message","role":"assistant","content":[{"type":"output_text","text":"a language"}]}],"output_text":"a language"}`),
		StatusCode: 200,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	messages := result.Schema.Request.Messages
	if len(messages) != 2 {
		t.Fatalf("request messages = %d, want 2", len(messages))
	}
	if messages[0].Role != "system" || messages[0].Content != "answer briefly" {
		t.Fatalf("instructions message = %+v", messages[0])
	}
	if messages[1].Role != "user" || messages[1].Content != "what is Go?" {
		t.Fatalf("input message = %+v", messages[1])
	}

	resp := result.Schema.Response
	if resp == nil || len(resp.Messages) != 1 {
		t.Fatalf("response = %+v", resp)
	}
	if resp.Messages[0].Content != "a language" {
		t.Fatalf("response content = %q", resp.Messages[0].Content)
	}
	if result.Preview.Request != "what is Go?" {
		t.Fatalf("request preview = %q", result.Preview.Request)
	}
	if result.Preview.Response != "a language" {
		t.Fatalf("response preview = %q", result.Preview.Response)
	}
}

func TestMapResponses_FunctionCallItems(t *testing.T) {
	result, err := MapResponses(contract.AdapterParams{
		Request:    []byte(`{"input":[{"role":"user","content":[{"type":"input_text","text":"weather?"}]},{"type":"function_call","call_id":"c1","name":"lookup","arguments":"{\"city\":\"Oslo\"}"},{"type":"function_call_output","call_id":"c1","output":"7C"}]}`),
		Response:   []byte(`{"output":[{"type":"function_call","call_id":"c2","name":"render","arguments":"{}"}]}`),
		StatusCode: 200,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	messages := result.Schema.Request.Messages
	if len(messages) != 3 {
		t.Fatalf("request messages = %d, want 3", len(messages))
	}
	call := messages[1]
	if call.Type != contract.MessageTypeFunctionCall || len(call.ToolCalls) != 1 {
		t.Fatalf("function_call item = %+v", call)
	}
	if call.ToolCalls[0].ID != "c1" || call.ToolCalls[0].Name != "lookup" {
		t.Fatalf("tool call = %+v", call.ToolCalls[0])
	}
	output := messages[2]
	if output.Type != contract.MessageTypeFunction || output.ToolCallID != "c1" || output.Content != "7C" {
		t.Fatalf("function_call_output item = %+v", output)
	}

	if result.Preview.Response != "render({})" {
		t.Fatalf("response preview = %q", result.Preview.Response)
	}
}

func TestMapResponses_ImageInputPreview(t *testing.T) {
	result, err := MapResponses(contract.AdapterParams{
		Request:    []byte(`{"input":[{"role":"user","content":[{"type":"input_text","text":"what is this? "},{"type":"input_image","image_url":"https://x/y.png"}]}]}`),
		StatusCode: 0,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Preview.Request != "what is this? [Image]" {
		t.Fatalf("request preview = %q", result.Preview.Request)
	}
}

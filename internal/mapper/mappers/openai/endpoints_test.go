package openai

import (
	"testing"

	"github.com/harunnryd/kiroku/internal/mapper/contract"
	"github.com/harunnryd/kiroku/internal/mapper/extract"
)

func TestMapInstruct(t *testing.T) {
	result, err := MapInstruct(contract.AdapterParams{
		Request:    []byte(`{"model":"gpt-3.5-turbo-instruct","prompt":"Say hi","max_tokens":10}`),
		Response:   []byte(`{"model":"gpt-3.5-turbo-instruct","choices":[{"text":"hi!"}]}`),
		StatusCode: 200,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Schema.Request.Prompt != "Say hi" {
		t.Fatalf("prompt = %q", result.Schema.Request.Prompt)
	}
	if len(result.Schema.Request.Messages) != 1 || result.Schema.Request.Messages[0].Role != "user" {
		t.Fatalf("request messages = %+v", result.Schema.Request.Messages)
	}
	resp := result.Schema.Response
	if resp == nil || len(resp.Messages) != 1 || resp.Messages[0].Content != "hi!" {
		t.Fatalf("response = %+v", resp)
	}
	if result.Preview.Request != "Say hi" || result.Preview.Response != "hi!" {
		t.Fatalf("previews = %q / %q", result.Preview.Request, result.Preview.Response)
	}
}

func TestMapInstruct_ArrayPrompt(t *testing.T) {
	result, err := MapInstruct(contract.AdapterParams{
		Request: []byte(`{"prompt":["part one, ","part two"]}`),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Schema.Request.Prompt != "part one, part two" {
		t.Fatalf("prompt = %q", result.Schema.Request.Prompt)
	}
}

func TestMapEmbedding(t *testing.T) {
	result, err := MapEmbedding(contract.AdapterParams{
		Request:    []byte(`{"model":"text-embedding-3-small","input":"embed me"}`),
		Response:   []byte(`{"model":"text-embedding-3-small","data":[{"embedding":[0.1,0.2,0.3]},{"embedding":[0.4,0.5,0.6]}]}`),
		StatusCode: 200,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(result.Schema.Request.Input) != `"embed me"` {
		t.Fatalf("input = %s", result.Schema.Request.Input)
	}
	resp := result.Schema.Response
	if resp == nil || len(resp.Messages) != 1 {
		t.Fatalf("response = %+v", resp)
	}
	want := "2 embedding(s) of 3 dimension(s)"
	if resp.Messages[0].Content != want {
		t.Fatalf("summary = %q, want %q", resp.Messages[0].Content, want)
	}
	if result.Preview.Request != "embed me" || result.Preview.Response != want {
		t.Fatalf("previews = %q / %q", result.Preview.Request, result.Preview.Response)
	}
}

func TestMapModeration(t *testing.T) {
	result, err := MapModeration(contract.AdapterParams{
		Request:    []byte(`{"input":"check this"}`),
		Response:   []byte(`{"results":[{"flagged":true,"categories":{"violence":true}}]}`),
		StatusCode: 200,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Preview.Request != "check this" {
		t.Fatalf("request preview = %q", result.Preview.Request)
	}
	if result.Preview.Response != "flagged" {
		t.Fatalf("response preview = %q", result.Preview.Response)
	}
	resp := result.Schema.Response
	if resp == nil || len(resp.Messages) != 1 {
		t.Fatalf("response = %+v", resp)
	}
}

func TestMapModeration_NotFlagged(t *testing.T) {
	result, err := MapModeration(contract.AdapterParams{
		Request:    []byte(`{"input":"harmless"}`),
		Response:   []byte(`{"results":[{"flagged":false}]}`),
		StatusCode: 200,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Preview.Response != "not flagged" {
		t.Fatalf("response preview = %q", result.Preview.Response)
	}
}

func TestMapAssistant_ThreadMessages(t *testing.T) {
	result, err := MapAssistant(contract.AdapterParams{
		Request:    []byte(`{"assistant_id":"asst_1","instructions":"be helpful"}`),
		Response:   []byte(`{"data":[{"role":"assistant","content":[{"type":"text","text":{"value":"done"}}]}]}`),
		StatusCode: 200,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Preview.Request != "be helpful" {
		t.Fatalf("request preview = %q", result.Preview.Request)
	}
	resp := result.Schema.Response
	if resp == nil || len(resp.Messages) != 1 || resp.Messages[0].Content != "done" {
		t.Fatalf("response = %+v", resp)
	}
	if result.Preview.Response != "done" {
		t.Fatalf("response preview = %q", result.Preview.Response)
	}
}

func TestMapAssistant_RunStatusFallback(t *testing.T) {
	result, err := MapAssistant(contract.AdapterParams{
		Request:    []byte(`{"assistant_id":"asst_1"}`),
		Response:   []byte(`{"id":"run_1","status":"queued"}`),
		StatusCode: 200,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Preview.Request != "asst_1" {
		t.Fatalf("request preview = %q", result.Preview.Request)
	}
	if result.Preview.Response != "queued" {
		t.Fatalf("response preview = %q", result.Preview.Response)
	}
}

func TestMapRealtime(t *testing.T) {
	result, err := MapRealtime(contract.AdapterParams{
		Request:    []byte(`{"model":"gpt-4o-realtime-preview","messages":[{"type":"message","role":"user","content":[{"type":"input_audio","transcript":"hello there"}]},{"type":"session.update"}]}`),
		Response:   []byte(`{"messages":[{"type":"message","role":"assistant","content":[{"type":"audio","transcript":"hi, how can I help?"}]}]}`),
		StatusCode: 200,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Schema.Request.Messages) != 1 {
		t.Fatalf("non-message events should be dropped: %+v", result.Schema.Request.Messages)
	}
	if result.Preview.Request != "hello there" {
		t.Fatalf("request preview = %q", result.Preview.Request)
	}
	if result.Preview.Response != "hi, how can I help?" {
		t.Fatalf("response preview = %q", result.Preview.Response)
	}
}

func TestMapImage(t *testing.T) {
	result, err := MapImage(contract.AdapterParams{
		Request:    []byte(`{"model":"dall-e-3","prompt":"a lighthouse","size":"1024x1024","quality":"hd"}`),
		Response:   []byte(`{"data":[{"url":"https://img/1.png","revised_prompt":"a tall lighthouse"}]}`),
		StatusCode: 200,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	req := result.Schema.Request
	if req.Prompt != "a lighthouse" || req.Size != "1024x1024" || req.Quality != "hd" {
		t.Fatalf("request = %+v", req)
	}
	resp := result.Schema.Response
	if resp == nil || len(resp.Messages) != 1 {
		t.Fatalf("response = %+v", resp)
	}
	img := resp.Messages[0]
	if img.Type != contract.MessageTypeImage || img.ImageURL != "https://img/1.png" {
		t.Fatalf("image message = %+v", img)
	}
	if result.Preview.Response != extract.ImageMarker {
		t.Fatalf("response preview = %q", result.Preview.Response)
	}
}

func TestMapImage_Base64Placeholder(t *testing.T) {
	result, err := MapImage(contract.AdapterParams{
		Request:    []byte(`{"prompt":"x"}`),
		Response:   []byte(`{"data":[{"b64_json":"aGk="}]}`),
		StatusCode: 200,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp := result.Schema.Response
	if resp == nil || len(resp.Messages) != 1 {
		t.Fatalf("response = %+v", resp)
	}
	img := resp.Messages[0]
	if img.Type != contract.MessageTypeImage || img.ImageURL != "data:image/png;base64" {
		t.Fatalf("image message = %+v", img)
	}
}

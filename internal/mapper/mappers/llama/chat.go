// Package llama maps Llama API chat payloads. Requests are OpenAI-shaped;
// responses carry either a completion_message or OpenAI-style choices.
package llama

import (
	"github.com/tidwall/gjson"

	"github.com/harunnryd/kiroku/internal/mapper/contract"
	"github.com/harunnryd/kiroku/internal/mapper/extract"
	"github.com/harunnryd/kiroku/internal/mapper/mappers/openai"
)

// MapChat maps a Llama chat pair.
func MapChat(p contract.AdapterParams) (contract.Result, error) {
	req, resp, err := extract.ParseBodies(p)
	if err != nil {
		return contract.Result{}, err
	}

	model := p.Model
	if model == "" {
		model = req.Get("model").String()
	}

	schema := contract.LlmSchema{
		Request: contract.LLMRequest{
			Model:       model,
			Messages:    openai.RequestMessages(req),
			Temperature: extract.FloatPtr(req.Get("temperature")),
			TopP:        extract.FloatPtr(req.Get("top_p")),
			MaxTokens:   extract.IntPtr(req.Get("max_completion_tokens")),
			Tools:       openai.RequestTools(req),
		},
		Response: schemaResponse(resp),
	}

	return contract.Result{
		Schema: schema,
		Preview: contract.PreviewSeed{
			Request:              extract.RequestText(p.Request),
			Response:             responseText(resp, p.StatusCode, p.Model, p.Response),
			ConcatenatedMessages: schema.ConcatenatedMessages(),
		},
	}, nil
}

func schemaResponse(resp gjson.Result) *contract.LLMResponse {
	if !resp.Exists() || resp.Type == gjson.Null {
		return nil
	}
	if schemaErr := extract.ResponseSchemaError(resp); schemaErr != nil {
		return &contract.LLMResponse{Error: schemaErr}
	}

	completion := resp.Get("completion_message")
	if !completion.Exists() {
		// OpenAI-compatible deployments answer with choices.
		return openai.SchemaResponse(resp)
	}

	role := completion.Get("role").String()
	if role == "" {
		role = "assistant"
	}

	msg := contract.Message{
		Type:    contract.MessageTypeMessage,
		Role:    role,
		Content: completionText(completion),
	}
	if calls := extract.ToolCallsOf(completion); len(calls) > 0 {
		msg.Type = contract.MessageTypeFunctionCall
		msg.ToolCalls = calls
	}
	return &contract.LLMResponse{
		Messages: []contract.Message{msg},
		Model:    resp.Get("model").String(),
	}
}

// completionText handles both content forms: a bare string and the typed
// {type: "text", text: ...} object.
func completionText(completion gjson.Result) string {
	content := completion.Get("content")
	if content.Type == gjson.String {
		return content.String()
	}
	if text := content.Get("text"); text.Exists() {
		return text.String()
	}
	return extract.FormattedContent(content)
}

func responseText(resp gjson.Result, statusCode int, model string, body []byte) string {
	if statusCode == 0 || !resp.Exists() {
		return ""
	}
	if msg := resp.Get("error.heliconeMessage"); msg.Exists() {
		return msg.String()
	}
	if completion := resp.Get("completion_message"); completion.Exists() {
		if calls := completion.Get("tool_calls"); calls.IsArray() && len(calls.Array()) > 0 {
			return extract.FormatToolCalls(calls.Array())
		}
		return completionText(completion)
	}
	return extract.ResponseText(body, statusCode, model)
}

// Package vercel maps Vercel AI SDK chat payloads. Requests are close to
// OpenAI chat; responses carry text, a typed content array, or steps.
package vercel

import (
	"github.com/tidwall/gjson"

	"github.com/harunnryd/kiroku/internal/mapper/contract"
	"github.com/harunnryd/kiroku/internal/mapper/extract"
	"github.com/harunnryd/kiroku/internal/mapper/mappers/openai"
)

// MapChat maps a Vercel AI SDK chat pair.
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
			TopP:        extract.FloatPtr(req.Get("topP")),
			MaxTokens:   extract.IntPtr(req.Get("maxOutputTokens")),
			Tools:       openai.RequestTools(req),
		},
		Response: schemaResponse(resp),
	}

	return contract.Result{
		Schema: schema,
		Preview: contract.PreviewSeed{
			Request:              extract.RequestText(p.Request),
			Response:             responseText(resp, p.StatusCode),
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

	var messages []contract.Message

	if text := resp.Get("text").String(); text != "" {
		messages = append(messages, contract.Message{
			Type:    contract.MessageTypeMessage,
			Role:    "assistant",
			Content: text,
		})
	}

	for _, part := range resp.Get("content").Array() {
		switch part.Get("type").String() {
		case "text":
			messages = append(messages, contract.Message{
				Type:    contract.MessageTypeMessage,
				Role:    "assistant",
				Content: part.Get("text").String(),
			})
		case "tool-call":
			messages = append(messages, contract.Message{
				Type: contract.MessageTypeFunctionCall,
				Role: "assistant",
				ToolCalls: []contract.ToolCall{{
					ID:        part.Get("toolCallId").String(),
					Name:      part.Get("toolName").String(),
					Arguments: rawArgs(part),
				}},
			})
		case "tool-result":
			messages = append(messages, contract.Message{
				Type:       contract.MessageTypeFunction,
				Role:       "tool",
				Name:       part.Get("toolName").String(),
				Content:    extract.FormattedContent(part.Get("output")),
				ToolCallID: part.Get("toolCallId").String(),
			})
		}
	}

	// Chat-completions-compatible responses fall back to choices.
	if len(messages) == 0 && resp.Get("choices").Exists() {
		return openai.SchemaResponse(resp)
	}

	return &contract.LLMResponse{
		Messages: messages,
		Model:    resp.Get("model").String(),
	}
}

// The SDK has used both "args" and "input" for tool-call arguments.
func rawArgs(part gjson.Result) string {
	args := part.Get("args")
	if !args.Exists() {
		args = part.Get("input")
	}
	if args.IsObject() || args.IsArray() {
		return args.Raw
	}
	return args.String()
}

func responseText(resp gjson.Result, statusCode int) string {
	if statusCode == 0 || !resp.Exists() {
		return ""
	}
	if msg := resp.Get("error.heliconeMessage"); msg.Exists() {
		return msg.String()
	}
	if msg := resp.Get("error.message"); msg.Exists() {
		return msg.String()
	}
	if text := resp.Get("text").String(); text != "" {
		return text
	}
	for _, part := range resp.Get("content").Array() {
		switch part.Get("type").String() {
		case "text":
			if t := part.Get("text").String(); t != "" {
				return t
			}
		case "tool-call":
			return part.Get("toolName").String() + "(" + rawArgs(part) + ")"
		}
	}
	return resp.Get("choices.0.message.content").String()
}

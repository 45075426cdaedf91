package openai

import (
	"strings"

	"github.com/tidwall/gjson"

	"github.com/harunnryd/kiroku/internal/mapper/contract"
	"github.com/harunnryd/kiroku/internal/mapper/extract"
)

// MapResponses maps an OpenAI Responses API pair. The request input is
// either a bare string or an array of typed items; the response carries an
// output array of message and function_call items.
func MapResponses(p contract.AdapterParams) (contract.Result, error) {
	req, resp, err := extract.ParseBodies(p)
	if err != nil {
		return contract.Result{}, err
	}

	model := p.Model
	if model == "" {
		model = req.Get("model").String()
	}

	requestMessages := responsesInputMessages(req)

	schema := contract.LlmSchema{
		Request: contract.LLMRequest{
			Model:       model,
			Messages:    requestMessages,
			Input:       extract.RawField(req.Get("input")),
			Temperature: extract.FloatPtr(req.Get("temperature")),
			TopP:        extract.FloatPtr(req.Get("top_p")),
			MaxTokens:   extract.IntPtr(req.Get("max_output_tokens")),
			ToolChoice:  extract.RawField(req.Get("tool_choice")),
			Tools:       RequestTools(req),
		},
		Response: responsesSchemaResponse(resp),
	}

	return contract.Result{
		Schema: schema,
		Preview: contract.PreviewSeed{
			Request:              responsesRequestText(req),
			Response:             responsesResponseText(resp, p.StatusCode),
			ConcatenatedMessages: schema.ConcatenatedMessages(),
		},
	}, nil
}

func responsesInputMessages(req gjson.Result) []contract.Message {
	var messages []contract.Message

	if instructions := req.Get("instructions").String(); instructions != "" {
		messages = append(messages, contract.Message{
			Type:    contract.MessageTypeMessage,
			Role:    "system",
			Content: instructions,
		})
	}

	input := req.Get("input")
	switch {
	case input.Type == gjson.String:
		messages = append(messages, contract.Message{
			Type:    contract.MessageTypeMessage,
			Role:    "user",
			Content: input.String(),
		})
	case input.IsArray():
		for _, item := range input.Array() {
			messages = append(messages, responsesItemMessage(item))
		}
	}
	return messages
}

func responsesItemMessage(item gjson.Result) contract.Message {
	switch item.Get("type").String() {
	case "function_call":
		args := item.Get("arguments").String()
		return contract.Message{
			Type: contract.MessageTypeFunctionCall,
			Role: "assistant",
			ToolCalls: []contract.ToolCall{{
				ID:        item.Get("call_id").String(),
				Name:      item.Get("name").String(),
				Arguments: args,
			}},
		}
	case "function_call_output":
		return contract.Message{
			Type:       contract.MessageTypeFunction,
			Role:       "tool",
			Content:    extract.FormattedContent(item.Get("output")),
			ToolCallID: item.Get("call_id").String(),
		}
	default:
		role := item.Get("role").String()
		if role == "" {
			role = "user"
		}
		return contract.Message{
			Type:    contract.MessageTypeMessage,
			Role:    role,
			Content: responsesPartsText(item.Get("content")),
		}
	}
}

// responsesPartsText flattens a Responses API content value: input_text and
// output_text carry text, input_image becomes the image marker.
func responsesPartsText(content gjson.Result) string {
	if content.Type == gjson.String {
		return content.String()
	}
	if !content.IsArray() {
		return extract.FormattedContent(content)
	}
	var b strings.Builder
	for _, part := range content.Array() {
		switch part.Get("type").String() {
		case "input_text", "output_text", "text":
			b.WriteString(part.Get("text").String())
		case "input_image", "image":
			b.WriteString(extract.ImageMarker)
		default:
			b.WriteString(part.Raw)
		}
	}
	return b.String()
}

func responsesSchemaResponse(resp gjson.Result) *contract.LLMResponse {
	if !resp.Exists() || resp.Type == gjson.Null {
		return nil
	}
	if schemaErr := extract.ResponseSchemaError(resp); schemaErr != nil {
		return &contract.LLMResponse{Error: schemaErr}
	}

	var messages []contract.Message
	for _, item := range resp.Get("output").Array() {
		switch item.Get("type").String() {
		case "message":
			messages = append(messages, contract.Message{
				Type:    contract.MessageTypeMessage,
				Role:    item.Get("role").String(),
				Content: responsesPartsText(item.Get("content")),
			})
		case "function_call":
			messages = append(messages, responsesItemMessage(item))
		}
	}
	return &contract.LLMResponse{
		Messages: messages,
		Model:    resp.Get("model").String(),
	}
}

func responsesRequestText(req gjson.Result) string {
	input := req.Get("input")
	switch {
	case input.Type == gjson.String:
		return input.String()
	case input.IsArray():
		items := input.Array()
		if len(items) == 0 {
			break
		}
		last := items[len(items)-1]
		if last.Get("type").String() == "function_call" {
			return extract.FormatToolCalls([]gjson.Result{last})
		}
		return responsesPartsText(last.Get("content"))
	}
	return req.Get("instructions").String()
}

func responsesResponseText(resp gjson.Result, statusCode int) string {
	if statusCode == 0 || !resp.Exists() {
		return ""
	}
	if msg := resp.Get("error.heliconeMessage"); msg.Exists() {
		return msg.String()
	}
	if msg := resp.Get("error.message"); msg.Exists() {
		return msg.String()
	}
	if text := resp.Get("output_text").String(); text != "" {
		return text
	}
	for _, item := range resp.Get("output").Array() {
		switch item.Get("type").String() {
		case "message":
			if text := responsesPartsText(item.Get("content")); text != "" {
				return text
			}
		case "function_call":
			return extract.FormatToolCalls([]gjson.Result{item})
		}
	}
	return ""
}

// Package gemini maps Gemini generateContent payloads onto the canonical
// schema. Content lives in contents[].parts[] with text, inline data,
// function calls, and function responses as part variants.
package gemini

import (
	"strings"

	"github.com/tidwall/gjson"

	"github.com/harunnryd/kiroku/internal/mapper/contract"
	"github.com/harunnryd/kiroku/internal/mapper/extract"
)

// MapChat maps a Gemini chat pair.
func MapChat(p contract.AdapterParams) (contract.Result, error) {
	req, resp, err := extract.ParseBodies(p)
	if err != nil {
		return contract.Result{}, err
	}

	model := p.Model
	if model == "" {
		model = req.Get("model").String()
	}

	requestMessages := requestMessages(req)

	schema := contract.LlmSchema{
		Request: contract.LLMRequest{
			Model:       model,
			Messages:    requestMessages,
			Temperature: extract.FloatPtr(req.Get("generationConfig.temperature")),
			TopP:        extract.FloatPtr(req.Get("generationConfig.topP")),
			MaxTokens:   extract.IntPtr(req.Get("generationConfig.maxOutputTokens")),
			Stop:        extract.RawField(req.Get("generationConfig.stopSequences")),
		},
		Response: schemaResponse(resp),
	}

	return contract.Result{
		Schema: schema,
		Preview: contract.PreviewSeed{
			Request:              requestText(requestMessages),
			Response:             responseText(resp, p.StatusCode),
			ConcatenatedMessages: schema.ConcatenatedMessages(),
		},
	}, nil
}

func requestMessages(req gjson.Result) []contract.Message {
	var messages []contract.Message

	if system := req.Get("systemInstruction"); system.Exists() {
		if text := partsText(system.Get("parts")); text != "" {
			messages = append(messages, contract.Message{
				Type:    contract.MessageTypeMessage,
				Role:    "system",
				Content: text,
			})
		}
	}

	contents := req.Get("contents")
	if contents.IsObject() {
		messages = append(messages, contentMessage(contents))
		return messages
	}
	for _, content := range contents.Array() {
		messages = append(messages, contentMessage(content))
	}
	return messages
}

func contentMessage(content gjson.Result) contract.Message {
	role := normalizeRole(content.Get("role").String())

	parts := content.Get("parts")
	items := parts.Array()
	if parts.IsObject() {
		items = []gjson.Result{parts}
	}

	var calls []contract.ToolCall
	var nested []contract.Message
	for _, part := range items {
		switch {
		case part.Get("functionCall").Exists():
			fc := part.Get("functionCall")
			args := fc.Get("args")
			argText := args.String()
			if args.IsObject() || args.IsArray() {
				argText = args.Raw
			}
			calls = append(calls, contract.ToolCall{
				Name:      fc.Get("name").String(),
				Arguments: argText,
			})
		case part.Get("functionResponse").Exists():
			fr := part.Get("functionResponse")
			nested = append(nested, contract.Message{
				Type:    contract.MessageTypeFunction,
				Role:    "tool",
				Name:    fr.Get("name").String(),
				Content: extract.FormattedContent(fr.Get("response")),
			})
		case part.Get("fileData").Exists():
			nested = append(nested, contract.Message{
				Type:     contract.MessageTypeImage,
				Role:     role,
				ImageURL: part.Get("fileData.fileUri").String(),
			})
		case part.Get("inlineData").Exists():
			nested = append(nested, contract.Message{
				Type:    contract.MessageTypeMessage,
				Role:    role,
				Content: extract.ImageMarker,
			})
		default:
			nested = append(nested, contract.Message{
				Type:    contract.MessageTypeMessage,
				Role:    role,
				Content: part.Get("text").String(),
			})
		}
	}

	if len(calls) > 0 {
		return contract.Message{
			Type:      contract.MessageTypeFunctionCall,
			Role:      role,
			ToolCalls: calls,
		}
	}
	if len(nested) == 1 {
		return nested[0]
	}
	if len(nested) == 0 {
		return contract.Message{Type: contract.MessageTypeMessage, Role: role}
	}
	return contract.Message{
		Type:         contract.MessageTypeContentArray,
		Role:         role,
		ContentArray: nested,
	}
}

func partsText(parts gjson.Result) string {
	items := parts.Array()
	if parts.IsObject() {
		items = []gjson.Result{parts}
	}
	var b strings.Builder
	for _, part := range items {
		b.WriteString(part.Get("text").String())
	}
	return b.String()
}

// Gemini uses "model" where the canonical schema uses "assistant".
func normalizeRole(role string) string {
	switch role {
	case "model":
		return "assistant"
	case "":
		return "user"
	default:
		return role
	}
}

func schemaResponse(resp gjson.Result) *contract.LLMResponse {
	if !resp.Exists() || resp.Type == gjson.Null {
		return nil
	}
	if schemaErr := extract.ResponseSchemaError(resp); schemaErr != nil {
		return &contract.LLMResponse{Error: schemaErr}
	}

	var messages []contract.Message
	for _, candidate := range resp.Get("candidates").Array() {
		content := candidate.Get("content")
		if !content.Exists() {
			continue
		}
		messages = append(messages, contentMessage(content))
	}
	return &contract.LLMResponse{
		Messages: messages,
		Model:    resp.Get("modelVersion").String(),
	}
}

func requestText(messages []contract.Message) string {
	if len(messages) == 0 {
		return ""
	}
	last := messages[len(messages)-1]
	if len(last.ToolCalls) > 0 {
		return last.ToolCalls[0].Name + "(" + last.ToolCalls[0].Arguments + ")"
	}
	if last.Type == contract.MessageTypeContentArray {
		var b strings.Builder
		for _, nested := range last.ContentArray {
			if nested.Type == contract.MessageTypeImage {
				b.WriteString(extract.ImageMarker)
				continue
			}
			b.WriteString(nested.Content)
		}
		return b.String()
	}
	return last.Content
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
	content := resp.Get("candidates.0.content")
	if !content.Exists() {
		return ""
	}
	msg := contentMessage(content)
	if len(msg.ToolCalls) > 0 {
		return msg.ToolCalls[0].Name + "(" + msg.ToolCalls[0].Arguments + ")"
	}
	if msg.Type == contract.MessageTypeContentArray {
		var b strings.Builder
		for _, nested := range msg.ContentArray {
			b.WriteString(nested.Content)
		}
		return b.String()
	}
	return msg.Content
}

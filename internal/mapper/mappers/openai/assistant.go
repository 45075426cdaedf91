package openai

import (
	"github.com/tidwall/gjson"

	"github.com/harunnryd/kiroku/internal/mapper/contract"
	"github.com/harunnryd/kiroku/internal/mapper/extract"
)

// MapAssistant maps Assistants API records: run creations carry
// instructions, thread message listings carry a data array.
func MapAssistant(p contract.AdapterParams) (contract.Result, error) {
	req, resp, err := extract.ParseBodies(p)
	if err != nil {
		return contract.Result{}, err
	}

	model := p.Model
	if model == "" {
		model = req.Get("model").String()
	}

	var requestMessages []contract.Message
	if instructions := req.Get("instructions").String(); instructions != "" {
		requestMessages = append(requestMessages, contract.Message{
			Type:    contract.MessageTypeMessage,
			Role:    "system",
			Content: instructions,
		})
	}
	requestMessages = append(requestMessages, RequestMessages(req)...)

	schema := contract.LlmSchema{
		Request: contract.LLMRequest{
			Model:    model,
			Messages: requestMessages,
		},
		Response: assistantSchemaResponse(resp),
	}

	return contract.Result{
		Schema: schema,
		Preview: contract.PreviewSeed{
			Request:              assistantRequestText(req),
			Response:             assistantResponseText(resp, p.StatusCode),
			ConcatenatedMessages: schema.ConcatenatedMessages(),
		},
	}, nil
}

func assistantRequestText(req gjson.Result) string {
	if instructions := req.Get("instructions").String(); instructions != "" {
		return instructions
	}
	if text := extract.RequestText([]byte(req.Raw)); text != "" {
		return text
	}
	return req.Get("assistant_id").String()
}

func assistantSchemaResponse(resp gjson.Result) *contract.LLMResponse {
	if !resp.Exists() || resp.Type == gjson.Null {
		return nil
	}
	if schemaErr := extract.ResponseSchemaError(resp); schemaErr != nil {
		return &contract.LLMResponse{Error: schemaErr}
	}

	var messages []contract.Message
	for _, item := range resp.Get("data").Array() {
		messages = append(messages, assistantThreadMessage(item))
	}
	if len(messages) == 0 {
		if status := resp.Get("status").String(); status != "" {
			messages = append(messages, contract.Message{
				Type:    contract.MessageTypeMessage,
				Role:    "assistant",
				Content: status,
			})
		}
	}
	return &contract.LLMResponse{
		Messages: messages,
		Model:    resp.Get("model").String(),
	}
}

// assistantThreadMessage flattens one thread message: content is an array of
// typed blocks whose text lives under text.value.
func assistantThreadMessage(item gjson.Result) contract.Message {
	role := item.Get("role").String()
	if role == "" {
		role = "assistant"
	}
	text := ""
	for _, block := range item.Get("content").Array() {
		switch block.Get("type").String() {
		case "text":
			text += block.Get("text.value").String()
		case "image_file", "image_url":
			text += extract.ImageMarker
		default:
			text += block.Raw
		}
	}
	return contract.Message{
		Type:    contract.MessageTypeMessage,
		Role:    role,
		Content: text,
	}
}

func assistantResponseText(resp gjson.Result, statusCode int) string {
	if statusCode == 0 || !resp.Exists() {
		return ""
	}
	if msg := resp.Get("error.heliconeMessage"); msg.Exists() {
		return msg.String()
	}
	if msg := resp.Get("error.message"); msg.Exists() {
		return msg.String()
	}
	data := resp.Get("data").Array()
	if len(data) > 0 {
		return assistantThreadMessage(data[0]).Content
	}
	return resp.Get("status").String()
}

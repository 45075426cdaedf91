// Package openai maps the OpenAI endpoint families (chat, responses,
// instruct, embeddings, moderation, assistants, realtime, image generation)
// onto the canonical schema.
package openai

import (
	"github.com/tidwall/gjson"

	"github.com/harunnryd/kiroku/internal/mapper/contract"
	"github.com/harunnryd/kiroku/internal/mapper/extract"
)

// MapChat maps an OpenAI chat-completions pair. It is also the adapter for
// unclassifiable records, so it must tolerate bodies of any shape.
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
			Model:            model,
			Messages:         RequestMessages(req),
			Temperature:      extract.FloatPtr(req.Get("temperature")),
			TopP:             extract.FloatPtr(req.Get("top_p")),
			FrequencyPenalty: extract.FloatPtr(req.Get("frequency_penalty")),
			PresencePenalty:  extract.FloatPtr(req.Get("presence_penalty")),
			MaxTokens:        extract.IntPtr(req.Get("max_tokens")),
			Stop:             extract.RawField(req.Get("stop")),
			ToolChoice:       extract.RawField(req.Get("tool_choice")),
			Tools:            RequestTools(req),
			ResponseFormat:   extract.RawField(req.Get("response_format")),
		},
		Response: SchemaResponse(resp),
	}

	return contract.Result{
		Schema: schema,
		Preview: contract.PreviewSeed{
			Request:              extract.RequestText(p.Request),
			Response:             extract.ResponseText(p.Response, p.StatusCode, p.Model),
			ConcatenatedMessages: schema.ConcatenatedMessages(),
		},
	}, nil
}

// RequestMessages converts the request's messages array, if any.
func RequestMessages(req gjson.Result) []contract.Message {
	items := req.Get("messages").Array()
	if len(items) == 0 {
		return nil
	}
	messages := make([]contract.Message, 0, len(items))
	for _, item := range items {
		messages = append(messages, extract.MessageFromOpenAI(item))
	}
	return messages
}

// RequestTools resolves tool definitions in both the flat {name, ...} and
// the nested {function: {...}} forms, flat fields taking precedence.
func RequestTools(req gjson.Result) []contract.Tool {
	items := req.Get("tools").Array()
	if len(items) == 0 {
		return nil
	}
	tools := make([]contract.Tool, 0, len(items))
	for _, item := range items {
		name := item.Get("name").String()
		if name == "" {
			name = item.Get("function.name").String()
		}
		description := item.Get("description").String()
		if description == "" {
			description = item.Get("function.description").String()
		}
		params := extract.RawField(item.Get("parameters"))
		if params == nil {
			params = extract.RawField(item.Get("function.parameters"))
		}
		tools = append(tools, contract.Tool{
			Name:        name,
			Description: description,
			Parameters:  params,
		})
	}
	return tools
}

// SchemaResponse converts an OpenAI-shaped response body: either an error
// shape or the messages of each choice.
func SchemaResponse(resp gjson.Result) *contract.LLMResponse {
	if !resp.Exists() || resp.Type == gjson.Null {
		return nil
	}
	if schemaErr := extract.ResponseSchemaError(resp); schemaErr != nil {
		return &contract.LLMResponse{Error: schemaErr}
	}

	var messages []contract.Message
	for _, choice := range resp.Get("choices").Array() {
		message := choice.Get("message")
		if !message.Exists() || message.Type == gjson.Null {
			continue
		}
		messages = append(messages, extract.MessageFromOpenAI(message))
	}
	return &contract.LLMResponse{
		Messages: messages,
		Model:    resp.Get("model").String(),
	}
}


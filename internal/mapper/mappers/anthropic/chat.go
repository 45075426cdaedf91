// Package anthropic maps Anthropic Messages API payloads onto the canonical
// schema, covering both the modern content-block shape and the legacy
// completion field.
package anthropic

import (
	"github.com/tidwall/gjson"

	"github.com/harunnryd/kiroku/internal/mapper/contract"
	"github.com/harunnryd/kiroku/internal/mapper/extract"
)

// MapChat maps an Anthropic chat pair.
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
			Messages:    requestMessages(req),
			Temperature: extract.FloatPtr(req.Get("temperature")),
			TopP:        extract.FloatPtr(req.Get("top_p")),
			MaxTokens:   extract.IntPtr(req.Get("max_tokens")),
			Stop:        extract.RawField(req.Get("stop_sequences")),
			ToolChoice:  extract.RawField(req.Get("tool_choice")),
			Tools:       requestTools(req),
		},
		Response: schemaResponse(resp),
	}

	return contract.Result{
		Schema: schema,
		Preview: contract.PreviewSeed{
			Request:              extract.RequestText(p.Request),
			Response:             extract.ResponseText(p.Response, p.StatusCode, model),
			ConcatenatedMessages: schema.ConcatenatedMessages(),
		},
	}, nil
}

// requestMessages prepends the system prompt, then converts each message.
func requestMessages(req gjson.Result) []contract.Message {
	var messages []contract.Message

	system := req.Get("system")
	switch {
	case system.Type == gjson.String && system.String() != "":
		messages = append(messages, contract.Message{
			Type:    contract.MessageTypeMessage,
			Role:    "system",
			Content: system.String(),
		})
	case system.IsArray():
		text := ""
		for _, block := range system.Array() {
			text += block.Get("text").String()
		}
		if text != "" {
			messages = append(messages, contract.Message{
				Type:    contract.MessageTypeMessage,
				Role:    "system",
				Content: text,
			})
		}
	}

	for _, msg := range req.Get("messages").Array() {
		messages = append(messages, convertMessage(msg))
	}
	return messages
}

func convertMessage(msg gjson.Result) contract.Message {
	role := msg.Get("role").String()
	if role == "" {
		role = "user"
	}
	content := msg.Get("content")
	if !content.IsArray() {
		return contract.Message{
			Type:    contract.MessageTypeMessage,
			Role:    role,
			Content: extract.FormattedContent(content),
		}
	}

	blocks := content.Array()

	// A lone block keeps its natural shape; mixed content nests.
	if len(blocks) == 1 {
		return blockMessage(blocks[0], role)
	}
	nested := make([]contract.Message, 0, len(blocks))
	for _, block := range blocks {
		nested = append(nested, blockMessage(block, role))
	}
	return contract.Message{
		Type:         contract.MessageTypeContentArray,
		Role:         role,
		ContentArray: nested,
	}
}

func blockMessage(block gjson.Result, role string) contract.Message {
	switch block.Get("type").String() {
	case "text":
		return contract.Message{
			Type:    contract.MessageTypeMessage,
			Role:    role,
			Content: block.Get("text").String(),
		}
	case "image":
		url := block.Get("source.url").String()
		if url == "" && block.Get("source.data").Exists() {
			url = "data:" + block.Get("source.media_type").String() + ";base64"
		}
		if url == "" {
			return contract.Message{
				Type:    contract.MessageTypeMessage,
				Role:    role,
				Content: extract.ImageMarker,
			}
		}
		return contract.Message{
			Type:     contract.MessageTypeImage,
			Role:     role,
			ImageURL: url,
		}
	case "tool_use":
		args := block.Get("input")
		argText := args.String()
		if args.IsObject() || args.IsArray() {
			argText = args.Raw
		}
		return contract.Message{
			Type: contract.MessageTypeFunctionCall,
			Role: role,
			ToolCalls: []contract.ToolCall{{
				ID:        block.Get("id").String(),
				Name:      block.Get("name").String(),
				Arguments: argText,
			}},
		}
	case "tool_result":
		return contract.Message{
			Type:       contract.MessageTypeFunction,
			Role:       "tool",
			Content:    extract.FormattedContent(block.Get("content")),
			ToolCallID: block.Get("tool_use_id").String(),
		}
	default:
		return contract.Message{
			Type:    contract.MessageTypeMessage,
			Role:    role,
			Content: block.Raw,
		}
	}
}

// requestTools maps Anthropic tool definitions; the input schema lives under
// input_schema rather than parameters.
func requestTools(req gjson.Result) []contract.Tool {
	items := req.Get("tools").Array()
	if len(items) == 0 {
		return nil
	}
	tools := make([]contract.Tool, 0, len(items))
	for _, item := range items {
		tools = append(tools, contract.Tool{
			Name:        item.Get("name").String(),
			Description: item.Get("description").String(),
			Parameters:  extract.RawField(item.Get("input_schema")),
		})
	}
	return tools
}

func schemaResponse(resp gjson.Result) *contract.LLMResponse {
	if !resp.Exists() || resp.Type == gjson.Null {
		return nil
	}
	if schemaErr := extract.ResponseSchemaError(resp); schemaErr != nil {
		return &contract.LLMResponse{Error: schemaErr}
	}

	role := resp.Get("role").String()
	if role == "" {
		role = "assistant"
	}

	var messages []contract.Message
	if content := resp.Get("content"); content.IsArray() {
		for _, block := range content.Array() {
			messages = append(messages, blockMessage(block, role))
		}
	} else if completion := resp.Get("completion").String(); completion != "" {
		messages = append(messages, contract.Message{
			Type:    contract.MessageTypeMessage,
			Role:    role,
			Content: completion,
		})
	}
	return &contract.LLMResponse{
		Messages: messages,
		Model:    resp.Get("model").String(),
	}
}

package openai

import (
	"strings"

	"github.com/tidwall/gjson"

	"github.com/harunnryd/kiroku/internal/mapper/contract"
	"github.com/harunnryd/kiroku/internal/mapper/extract"
)

// MapRealtime maps a realtime session record. Both bodies carry event lists;
// only message events contribute conversational content, with audio events
// represented by their transcripts.
func MapRealtime(p contract.AdapterParams) (contract.Result, error) {
	req, resp, err := extract.ParseBodies(p)
	if err != nil {
		return contract.Result{}, err
	}

	model := p.Model
	if model == "" {
		model = req.Get("model").String()
	}

	requestMessages := realtimeMessages(req, "user")
	responseMessages := realtimeMessages(resp, "assistant")

	var response *contract.LLMResponse
	if resp.Exists() && resp.Type != gjson.Null {
		if schemaErr := extract.ResponseSchemaError(resp); schemaErr != nil {
			response = &contract.LLMResponse{Error: schemaErr}
		} else {
			response = &contract.LLMResponse{
				Messages: responseMessages,
				Model:    resp.Get("model").String(),
			}
		}
	}

	schema := contract.LlmSchema{
		Request: contract.LLMRequest{
			Model:    model,
			Messages: requestMessages,
		},
		Response: response,
	}

	return contract.Result{
		Schema: schema,
		Preview: contract.PreviewSeed{
			Request:              lastContent(requestMessages),
			Response:             realtimeResponseText(response, p.StatusCode),
			ConcatenatedMessages: schema.ConcatenatedMessages(),
		},
	}, nil
}

func realtimeMessages(body gjson.Result, fallbackRole string) []contract.Message {
	var messages []contract.Message
	for _, event := range body.Get("messages").Array() {
		if event.Get("type").String() != "message" {
			continue
		}
		role := event.Get("role").String()
		if role == "" {
			role = fallbackRole
		}
		messages = append(messages, contract.Message{
			Type:    contract.MessageTypeMessage,
			Role:    role,
			Content: realtimeContentText(event.Get("content")),
		})
	}
	return messages
}

// realtimeContentText flattens realtime content parts; audio parts carry
// their transcript, not the audio payload.
func realtimeContentText(content gjson.Result) string {
	if content.Type == gjson.String {
		return content.String()
	}
	if !content.IsArray() {
		return extract.FormattedContent(content)
	}
	var b strings.Builder
	for _, part := range content.Array() {
		switch part.Get("type").String() {
		case "input_text", "text":
			b.WriteString(part.Get("text").String())
		case "input_audio", "audio", "audio_transcript":
			b.WriteString(part.Get("transcript").String())
		default:
			b.WriteString(part.Raw)
		}
	}
	return b.String()
}

func realtimeResponseText(response *contract.LLMResponse, statusCode int) string {
	if statusCode == 0 || response == nil {
		return ""
	}
	if response.Error != nil {
		return response.Error.HeliconeMessage
	}
	return lastContent(response.Messages)
}

func lastContent(messages []contract.Message) string {
	if len(messages) == 0 {
		return ""
	}
	return messages[len(messages)-1].Content
}

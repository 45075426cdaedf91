package mapper

import (
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"

	"github.com/harunnryd/kiroku/internal/mapper/contract"
)

// MaxPreviewLength bounds the preview strings on every mapped request.
const MaxPreviewLength = 1000

// Sanitize post-processes a mapped request into its render-safe form. It is
// pure and idempotent: it builds a new value, leaves Raw untouched, bounds
// the previews, repairs defaulted messages, pretty-prints embedded error
// payloads, and installs the lazy full-text accessors.
func Sanitize(mapped contract.MappedLLMRequest) contract.MappedLLMRequest {
	schema := contract.LlmSchema{
		Request: mapped.Schema.Request,
	}
	schema.Request.Messages = sanitizeMessages(mapped.Schema.Request.Messages)

	if mapped.Schema.Response != nil {
		response := *mapped.Schema.Response
		response.Messages = sanitizeMessages(response.Messages)
		if response.Error != nil {
			errCopy := *response.Error
			errCopy.HeliconeMessage = prettyErrorMessage(errCopy.HeliconeMessage)
			response.Error = &errCopy
		}
		schema.Response = &response
	}

	previewRequest := sanitizePreviewText(mapped.Preview.Request)
	previewResponse := sanitizePreviewText(mapped.Preview.Response)

	concatenated := sanitizeMessages(mapped.Preview.ConcatenatedMessages)
	if concatenated == nil {
		concatenated = []contract.Message{}
	}

	requestMessages := schema.Request.Messages
	var responseMessages []contract.Message
	if schema.Response != nil {
		responseMessages = schema.Response.Messages
	}

	return contract.MappedLLMRequest{
		ID:         mapped.ID,
		Model:      mapped.Model,
		MapperType: mapped.MapperType,
		Schema:     schema,
		Preview: contract.NewPreview(
			previewRequest,
			previewResponse,
			concatenated,
			func(previewOnly bool) string {
				if previewOnly {
					return previewRequest
				}
				return messagesToText(requestMessages)
			},
			func(previewOnly bool) string {
				if previewOnly {
					return previewResponse
				}
				return messagesToText(responseMessages)
			},
		),
		Raw:      mapped.Raw,
		Metadata: mapped.Metadata,
	}
}

func sanitizeMessages(messages []contract.Message) []contract.Message {
	if messages == nil {
		return nil
	}
	out := make([]contract.Message, len(messages))
	for i, msg := range messages {
		out[i] = sanitizeMessage(msg)
	}
	return out
}

// sanitizeMessage repairs a defaulted (zero-value) message so every message
// reaching a consumer has a role and a variant tag.
func sanitizeMessage(msg contract.Message) contract.Message {
	if msg.Type == "" && msg.Role == "" && msg.Content == "" && len(msg.ContentArray) == 0 && len(msg.ToolCalls) == 0 {
		return contract.Message{
			Type: contract.MessageTypeMessage,
			Role: "unknown",
		}
	}
	if msg.Type == "" {
		msg.Type = contract.MessageTypeMessage
	}
	msg.ContentArray = sanitizeMessages(msg.ContentArray)
	return msg
}

// prettyErrorMessage re-serializes a JSON-encoded error payload as indented
// JSON; anything that is not JSON is kept as-is.
func prettyErrorMessage(message string) string {
	if message == "" || !gjson.Valid(message) {
		return message
	}
	return strings.TrimSpace(string(pretty.Pretty([]byte(message))))
}

// sanitizePreviewText strips newlines and bounds the preview.
func sanitizePreviewText(text string) string {
	text = strings.ReplaceAll(text, "\n", " ")
	runes := []rune(text)
	if len(runes) > MaxPreviewLength {
		return string(runes[:MaxPreviewLength])
	}
	return text
}

// messageToText flattens one message into searchable text: nested content,
// content, tool-call arguments and names, then the identifying fields.
func messageToText(msg contract.Message) string {
	var b strings.Builder
	for _, nested := range msg.ContentArray {
		b.WriteString(messageToText(nested))
	}
	b.WriteString(strings.TrimSpace(msg.Content))
	for _, call := range msg.ToolCalls {
		b.WriteString(strings.TrimSpace(call.Arguments))
		if call.Name != "" {
			b.WriteString(`"` + call.Name + `"`)
		}
	}
	b.WriteString(msg.Role)
	b.WriteString(msg.Name)
	b.WriteString(msg.ToolCallID)
	return strings.TrimSpace(b.String())
}

// messagesToText joins the full message sequence for unbounded full-text
// search, independent of the preview bound.
func messagesToText(messages []contract.Message) string {
	parts := make([]string, 0, len(messages))
	for _, msg := range messages {
		parts = append(parts, messageToText(msg))
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

// Package extract pulls human-readable content out of provider-shaped JSON.
// Every function here is total: malformed input degrades to an empty string
// or a diagnostic literal, never an error.
package extract

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/harunnryd/kiroku/internal/mapper/contract"
)

// Diagnostic literals surfaced when a payload cannot be parsed at all.
const (
	ErrParsingRequest  = "error_parsing_request"
	ErrParsingResponse = "error_parsing_response"
)

// ImageMarker substitutes for image content in text previews.
const ImageMarker = "[Image]"

// FormatToolCalls renders tool or function calls as "name({json-args})"
// sequences, the shape used for both streaming deltas and complete messages.
func FormatToolCalls(calls []gjson.Result) string {
	parts := make([]string, 0, len(calls))
	for _, call := range calls {
		if !call.Exists() || call.Type == gjson.Null {
			continue
		}
		name := call.Get("function.name").String()
		if name == "" {
			name = call.Get("name").String()
		}
		args := call.Get("function.arguments")
		if !args.Exists() {
			args = call.Get("arguments")
		}
		if !args.Exists() {
			args = call.Get("input")
		}
		argText := args.String()
		if args.IsObject() || args.IsArray() {
			argText = args.Raw
		}
		if name == "" && argText == "" {
			continue
		}
		if name == "" {
			name = "tool"
		}
		parts = append(parts, fmt.Sprintf("%s(%s)", name, argText))
	}
	return strings.Join(parts, ", ")
}

// IsImageContent reports whether a single content object is an image block.
func IsImageContent(content gjson.Result) bool {
	if !content.IsObject() {
		return false
	}
	return content.Get("type").String() == "image_url" || content.Get("image_url").Exists()
}

// FormattedContent coerces one content value to text. Strings pass through
// verbatim; part arrays are flattened with image markers; objects fall back
// to recognized text sub-fields and finally to their raw JSON.
func FormattedContent(content gjson.Result) string {
	switch {
	case !content.Exists(), content.Type == gjson.Null:
		return ""
	case content.Type == gjson.String:
		return content.String()
	case content.IsArray():
		return flattenParts(content.Array())
	case content.IsObject():
		for _, key := range []string{"text", "content", "transcript"} {
			if sub := content.Get(key); sub.Type == gjson.String {
				return sub.String()
			}
		}
		return content.Raw
	default:
		return content.String()
	}
}

func flattenParts(parts []gjson.Result) string {
	var b strings.Builder
	for _, part := range parts {
		switch {
		case part.Type == gjson.String:
			b.WriteString(part.String())
		case part.Get("type").String() == "image_url", part.Get("image_url").Exists():
			b.WriteString(ImageMarker)
		case part.Get("text").Exists():
			b.WriteString(part.Get("text").String())
		default:
			b.WriteString(part.Raw)
		}
	}
	return b.String()
}

// ToolCallsOf collects the canonical tool calls on one message, folding the
// legacy singular function_call form into the list.
func ToolCallsOf(msg gjson.Result) []contract.ToolCall {
	raw := msg.Get("tool_calls").Array()
	if len(raw) == 0 {
		if fc := msg.Get("function_call"); fc.Exists() {
			raw = []gjson.Result{fc}
		}
	}
	calls := make([]contract.ToolCall, 0, len(raw))
	for _, call := range raw {
		name := call.Get("function.name").String()
		if name == "" {
			name = call.Get("name").String()
		}
		args := call.Get("function.arguments")
		if !args.Exists() {
			args = call.Get("arguments")
		}
		argText := args.String()
		if args.IsObject() || args.IsArray() {
			argText = args.Raw
		}
		calls = append(calls, contract.ToolCall{
			ID:        call.Get("id").String(),
			Name:      name,
			Arguments: argText,
		})
	}
	return calls
}

// MessageFromOpenAI normalizes one OpenAI-shaped message object into a
// canonical Message. The same shape is close enough for Llama and Vercel
// chat payloads that their mappers reuse it.
func MessageFromOpenAI(msg gjson.Result) contract.Message {
	if !msg.Exists() || msg.Type == gjson.Null {
		return contract.Message{Type: contract.MessageTypeMessage, Role: "unknown"}
	}

	if msg.Get("tool_calls").Exists() || msg.Get("function_call").Exists() {
		return functionCallMessage(msg)
	}

	role := msg.Get("role").String()
	if role == "tool" || role == "function" {
		return toolResponseMessage(msg)
	}

	content := msg.Get("content")
	if content.IsArray() {
		return arrayContentMessage(msg, content)
	}

	if content.IsObject() && content.Get("type").String() == "image_url" {
		return singleImageMessage(msg, content)
	}

	if role == "" {
		role = "user"
	}
	return contract.Message{
		Type:    contract.MessageTypeMessage,
		Role:    role,
		Content: FormattedContent(content),
		Name:    msg.Get("name").String(),
	}
}

func functionCallMessage(msg gjson.Result) contract.Message {
	return contract.Message{
		Type:      contract.MessageTypeFunctionCall,
		Role:      defaultRole(msg.Get("role").String(), "assistant"),
		Content:   FormattedContent(msg.Get("content")),
		ToolCalls: ToolCallsOf(msg),
	}
}

func toolResponseMessage(msg gjson.Result) contract.Message {
	return contract.Message{
		Type:       contract.MessageTypeFunction,
		Role:       msg.Get("role").String(),
		Content:    FormattedContent(msg.Get("content")),
		Name:       msg.Get("name").String(),
		ToolCallID: msg.Get("tool_call_id").String(),
	}
}

func arrayContentMessage(msg, content gjson.Result) contract.Message {
	role := defaultRole(msg.Get("role").String(), "user")
	items := content.Array()
	nested := make([]contract.Message, 0, len(items))
	for _, item := range items {
		switch item.Get("type").String() {
		case "text":
			nested = append(nested, contract.Message{
				Type:    contract.MessageTypeMessage,
				Role:    role,
				Content: item.Get("text").String(),
			})
		case "image_url":
			nested = append(nested, contract.Message{
				Type:     contract.MessageTypeImage,
				Role:     role,
				ImageURL: imageURLOf(item.Get("image_url")),
			})
		default:
			nested = append(nested, contract.Message{
				Type:    contract.MessageTypeMessage,
				Role:    role,
				Content: item.Raw,
			})
		}
	}
	return contract.Message{
		Type:         contract.MessageTypeContentArray,
		Role:         msg.Get("role").String(),
		ContentArray: nested,
	}
}

func singleImageMessage(msg, content gjson.Result) contract.Message {
	return contract.Message{
		Type:     contract.MessageTypeImage,
		Role:     msg.Get("role").String(),
		Content:  content.Get("text").String(),
		ImageURL: imageURLOf(content.Get("image_url")),
	}
}

// imageURLOf accepts both the bare-string and the {url: ...} wrapper forms.
func imageURLOf(v gjson.Result) string {
	if v.Type == gjson.String {
		return v.String()
	}
	return v.Get("url").String()
}

func defaultRole(role, fallback string) string {
	if role == "" {
		return fallback
	}
	return role
}

package extract

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// Statuses whose bodies are read as successful completions. -3 is the
// stream-cancelled sentinel; its partial body still previews normally.
var acceptedStatuses = map[int]bool{200: true, 201: true, -3: true}

// ResponseText produces the preview text for one chat-style response body.
// A status of 0 marks a still-pending call and previews as empty.
func ResponseText(body []byte, statusCode int, model string) string {
	if statusCode == 0 {
		return ""
	}
	if len(body) == 0 {
		return ""
	}
	if !gjson.ValidBytes(body) {
		return ErrParsingResponse
	}
	resp := gjson.ParseBytes(body)

	if msg := resp.Get("error.heliconeMessage"); msg.Exists() {
		if msg.Type == gjson.String {
			return msg.String()
		}
		return msg.Raw
	}

	if !acceptedStatuses[statusCode] {
		if msg := resp.Get("error.message"); msg.Exists() {
			return msg.String()
		}
		return resp.Get("helicone_error").String()
	}

	if resp.Get("object").String() == "chat.completion.chunk" ||
		resp.Get("choices.0.delta.tool_calls").Exists() {
		return streamingText(resp.Get("choices.0"))
	}

	if strings.HasPrefix(model, "claude") {
		if text := ClaudeResponseText(resp); text != "" {
			return text
		}
	}

	message := resp.Get("choices.0.message")
	if !message.Exists() {
		return ""
	}

	content := message.Get("content")
	if !content.Exists() || content.Type == gjson.Null {
		if text := message.Get("text"); text.IsObject() {
			return text.Raw
		}
		if message.Get("tool_calls").Exists() || message.Get("function_call").Exists() {
			calls := message.Get("tool_calls").Array()
			if len(calls) == 0 {
				calls = []gjson.Result{message.Get("function_call")}
			}
			return FormatToolCalls(calls)
		}
		return ""
	}
	return FormattedContent(content)
}

func streamingText(choice gjson.Result) string {
	if content := choice.Get("delta.content"); content.Type == gjson.String && content.String() != "" {
		return content.String()
	}

	calls := choice.Get("delta.tool_calls").Array()
	if len(calls) == 0 {
		calls = choice.Get("message.tool_calls").Array()
	}
	if len(calls) > 0 {
		return FormatToolCalls(calls)
	}

	if fc := choice.Get("delta.function_call"); fc.Exists() {
		return fmt.Sprintf("Function Call: %s", fc.Raw)
	}
	return ""
}

// ClaudeResponseText extracts preview text from an Anthropic-shaped response
// body: the modern content block array first, then the legacy completion
// field. Returns "" when the body is not Claude-shaped.
func ClaudeResponseText(resp gjson.Result) string {
	if content := resp.Get("content"); content.IsArray() {
		var texts []string
		var calls []gjson.Result
		for _, block := range content.Array() {
			switch block.Get("type").String() {
			case "text":
				if t := block.Get("text").String(); t != "" {
					texts = append(texts, t)
				}
			case "tool_use":
				calls = append(calls, block)
			}
		}
		if len(texts) > 0 {
			return strings.Join(texts, "\n")
		}
		if len(calls) > 0 {
			return FormatToolCalls(calls)
		}
	}
	return resp.Get("completion").String()
}

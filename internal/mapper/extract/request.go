package extract

import "github.com/tidwall/gjson"

// RequestText produces the preview text for one chat-style request body.
// Only the last message matters for the preview; a heliconeMessage override
// on the body short-circuits everything else.
func RequestText(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	if !gjson.ValidBytes(body) {
		return ErrParsingRequest
	}
	req := gjson.ParseBytes(body)

	if override := req.Get("heliconeMessage"); override.Exists() {
		if override.Type == gjson.String {
			return override.String()
		}
		return override.Raw
	}

	messages := req.Get("messages")
	if !messages.IsArray() {
		return ""
	}
	items := messages.Array()
	if len(items) == 0 {
		return ""
	}
	last := items[len(items)-1]
	if !last.Exists() || last.Type == gjson.Null {
		return ""
	}

	if last.Get("tool_calls").Exists() || last.Get("function_call").Exists() {
		calls := last.Get("tool_calls").Array()
		if len(calls) == 0 {
			calls = []gjson.Result{last.Get("function_call")}
		}
		return FormatToolCalls(calls)
	}

	content := last.Get("content")
	switch {
	case content.IsArray():
		return flattenParts(content.Array())
	case IsImageContent(content):
		return ImageMarker
	case content.IsObject():
		return FormattedContent(content)
	case content.Type == gjson.String:
		return content.String()
	case !content.Exists(), content.Type == gjson.Null:
		return ""
	default:
		return content.Raw
	}
}

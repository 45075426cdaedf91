package openai

import (
	"github.com/tidwall/gjson"

	"github.com/harunnryd/kiroku/internal/mapper/contract"
	"github.com/harunnryd/kiroku/internal/mapper/extract"
)

// MapModeration maps a moderations pair. The first result object is carried
// verbatim as the response content so categories stay inspectable.
func MapModeration(p contract.AdapterParams) (contract.Result, error) {
	req, resp, err := extract.ParseBodies(p)
	if err != nil {
		return contract.Result{}, err
	}

	model := p.Model
	if model == "" {
		model = req.Get("model").String()
	}

	input := extract.FormattedContent(req.Get("input"))

	var requestMessages []contract.Message
	if input != "" {
		requestMessages = append(requestMessages, contract.Message{
			Type:    contract.MessageTypeMessage,
			Role:    "user",
			Content: input,
		})
	}

	schema := contract.LlmSchema{
		Request: contract.LLMRequest{
			Model:    model,
			Input:    extract.RawField(req.Get("input")),
			Messages: requestMessages,
		},
		Response: moderationSchemaResponse(resp),
	}

	return contract.Result{
		Schema: schema,
		Preview: contract.PreviewSeed{
			Request:              input,
			Response:             moderationResponseText(resp, p.StatusCode),
			ConcatenatedMessages: schema.ConcatenatedMessages(),
		},
	}, nil
}

func moderationSchemaResponse(resp gjson.Result) *contract.LLMResponse {
	if !resp.Exists() || resp.Type == gjson.Null {
		return nil
	}
	if schemaErr := extract.ResponseSchemaError(resp); schemaErr != nil {
		return &contract.LLMResponse{Error: schemaErr}
	}
	var messages []contract.Message
	if result := resp.Get("results.0"); result.Exists() {
		messages = append(messages, contract.Message{
			Type:    contract.MessageTypeMessage,
			Role:    "assistant",
			Content: result.Raw,
		})
	}
	return &contract.LLMResponse{
		Messages: messages,
		Model:    resp.Get("model").String(),
	}
}

func moderationResponseText(resp gjson.Result, statusCode int) string {
	if statusCode == 0 || !resp.Exists() {
		return ""
	}
	if msg := resp.Get("error.heliconeMessage"); msg.Exists() {
		return msg.String()
	}
	if msg := resp.Get("error.message"); msg.Exists() {
		return msg.String()
	}
	result := resp.Get("results.0")
	if !result.Exists() {
		return ""
	}
	if result.Get("flagged").Bool() {
		return "flagged"
	}
	return "not flagged"
}

// Package bfl maps black-forest-labs image-generation payloads.
package bfl

import (
	"github.com/tidwall/gjson"

	"github.com/harunnryd/kiroku/internal/mapper/contract"
	"github.com/harunnryd/kiroku/internal/mapper/extract"
)

// MapImage maps a black-forest-labs generation pair. The generated sample
// URL may sit at the top level or under result.
func MapImage(p contract.AdapterParams) (contract.Result, error) {
	req, resp, err := extract.ParseBodies(p)
	if err != nil {
		return contract.Result{}, err
	}

	model := p.Model
	if model == "" {
		model = req.Get("model").String()
	}

	prompt := req.Get("prompt").String()

	var requestMessages []contract.Message
	if prompt != "" {
		requestMessages = append(requestMessages, contract.Message{
			Type:    contract.MessageTypeMessage,
			Role:    "user",
			Content: prompt,
		})
	}

	schema := contract.LlmSchema{
		Request: contract.LLMRequest{
			Model:    model,
			Prompt:   prompt,
			Messages: requestMessages,
		},
		Response: schemaResponse(resp),
	}

	return contract.Result{
		Schema: schema,
		Preview: contract.PreviewSeed{
			Request:              prompt,
			Response:             responseText(resp, p.StatusCode),
			ConcatenatedMessages: schema.ConcatenatedMessages(),
		},
	}, nil
}

func sampleURL(resp gjson.Result) string {
	if url := resp.Get("result.sample").String(); url != "" {
		return url
	}
	return resp.Get("sample").String()
}

func schemaResponse(resp gjson.Result) *contract.LLMResponse {
	if !resp.Exists() || resp.Type == gjson.Null {
		return nil
	}
	if schemaErr := extract.ResponseSchemaError(resp); schemaErr != nil {
		return &contract.LLMResponse{Error: schemaErr}
	}

	var messages []contract.Message
	if url := sampleURL(resp); url != "" {
		messages = append(messages, contract.Message{
			Type:     contract.MessageTypeImage,
			Role:     "assistant",
			ImageURL: url,
		})
	} else if status := resp.Get("status").String(); status != "" {
		messages = append(messages, contract.Message{
			Type:    contract.MessageTypeMessage,
			Role:    "assistant",
			Content: status,
		})
	}
	return &contract.LLMResponse{Messages: messages}
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
	if sampleURL(resp) != "" {
		return extract.ImageMarker
	}
	return resp.Get("status").String()
}

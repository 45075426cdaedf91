package openai

import (
	"github.com/tidwall/gjson"

	"github.com/harunnryd/kiroku/internal/mapper/contract"
	"github.com/harunnryd/kiroku/internal/mapper/extract"
)

// MapImage maps an image-generation (DALL-E / gpt-image) pair. Generated
// images become image-tagged messages; base64 payloads are not copied into
// the schema.
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
			Size:     req.Get("size").String(),
			Quality:  req.Get("quality").String(),
		},
		Response: imageSchemaResponse(resp),
	}

	return contract.Result{
		Schema: schema,
		Preview: contract.PreviewSeed{
			Request:              prompt,
			Response:             imageResponseText(resp, p.StatusCode),
			ConcatenatedMessages: schema.ConcatenatedMessages(),
		},
	}, nil
}

func imageSchemaResponse(resp gjson.Result) *contract.LLMResponse {
	if !resp.Exists() || resp.Type == gjson.Null {
		return nil
	}
	if schemaErr := extract.ResponseSchemaError(resp); schemaErr != nil {
		return &contract.LLMResponse{Error: schemaErr}
	}

	var messages []contract.Message
	for _, item := range resp.Get("data").Array() {
		url := item.Get("url").String()
		if url == "" && item.Get("b64_json").Exists() {
			url = "data:image/png;base64"
		}
		if url == "" {
			messages = append(messages, contract.Message{
				Type:    contract.MessageTypeMessage,
				Role:    "assistant",
				Content: item.Get("revised_prompt").String(),
			})
			continue
		}
		messages = append(messages, contract.Message{
			Type:     contract.MessageTypeImage,
			Role:     "assistant",
			Content:  item.Get("revised_prompt").String(),
			ImageURL: url,
		})
	}
	return &contract.LLMResponse{
		Messages: messages,
		Model:    resp.Get("model").String(),
	}
}

func imageResponseText(resp gjson.Result, statusCode int) string {
	if statusCode == 0 || !resp.Exists() {
		return ""
	}
	if msg := resp.Get("error.heliconeMessage"); msg.Exists() {
		return msg.String()
	}
	if msg := resp.Get("error.message"); msg.Exists() {
		return msg.String()
	}
	if resp.Get("data.0").Exists() {
		return extract.ImageMarker
	}
	return ""
}

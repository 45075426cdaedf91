package openai

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/harunnryd/kiroku/internal/mapper/contract"
	"github.com/harunnryd/kiroku/internal/mapper/extract"
)

// MapEmbedding maps an embeddings pair. Vectors themselves are never copied
// into the schema; the response previews as a count.
func MapEmbedding(p contract.AdapterParams) (contract.Result, error) {
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
			Model: model,
			Input: extract.RawField(req.Get("input")),
		},
		Response: embeddingSchemaResponse(resp),
	}

	return contract.Result{
		Schema: schema,
		Preview: contract.PreviewSeed{
			Request:              extract.FormattedContent(req.Get("input")),
			Response:             embeddingResponseText(resp, p.StatusCode),
			ConcatenatedMessages: schema.ConcatenatedMessages(),
		},
	}, nil
}

func embeddingSchemaResponse(resp gjson.Result) *contract.LLMResponse {
	if !resp.Exists() || resp.Type == gjson.Null {
		return nil
	}
	if schemaErr := extract.ResponseSchemaError(resp); schemaErr != nil {
		return &contract.LLMResponse{Error: schemaErr}
	}
	data := resp.Get("data").Array()
	if len(data) == 0 {
		return &contract.LLMResponse{Model: resp.Get("model").String()}
	}
	return &contract.LLMResponse{
		Messages: []contract.Message{{
			Type:    contract.MessageTypeMessage,
			Role:    "assistant",
			Content: embeddingSummary(data),
		}},
		Model: resp.Get("model").String(),
	}
}

func embeddingSummary(data []gjson.Result) string {
	dims := len(data[0].Get("embedding").Array())
	return fmt.Sprintf("%d embedding(s) of %d dimension(s)", len(data), dims)
}

func embeddingResponseText(resp gjson.Result, statusCode int) string {
	if statusCode == 0 || !resp.Exists() {
		return ""
	}
	if msg := resp.Get("error.heliconeMessage"); msg.Exists() {
		return msg.String()
	}
	if msg := resp.Get("error.message"); msg.Exists() {
		return msg.String()
	}
	data := resp.Get("data").Array()
	if len(data) == 0 {
		return ""
	}
	return embeddingSummary(data)
}

// Package vectordb maps vector-database operation records. The request body
// is self-describing: it carries _type "vector_db" plus an operation name.
package vectordb

import (
	"github.com/tidwall/gjson"

	"github.com/harunnryd/kiroku/internal/mapper/contract"
	"github.com/harunnryd/kiroku/internal/mapper/extract"
)

// Map maps a vector-db operation pair.
func Map(p contract.AdapterParams) (contract.Result, error) {
	req, resp, err := extract.ParseBodies(p)
	if err != nil {
		return contract.Result{}, err
	}

	operation := req.Get("operation").String()
	text := req.Get("text").String()
	if text == "" {
		text = req.Get("query").String()
	}

	content := text
	if content == "" && req.Exists() {
		content = req.Raw
	}

	var requestMessages []contract.Message
	if content != "" {
		requestMessages = append(requestMessages, contract.Message{
			Type:    contract.MessageTypeMessage,
			Role:    "user",
			Content: content,
		})
	}

	schema := contract.LlmSchema{
		Request: contract.LLMRequest{
			Model:    p.Model,
			Messages: requestMessages,
		},
		Response: schemaResponse(resp),
	}

	previewRequest := operation
	if text != "" {
		if previewRequest != "" {
			previewRequest += ": "
		}
		previewRequest += text
	}

	return contract.Result{
		Schema: schema,
		Preview: contract.PreviewSeed{
			Request:              previewRequest,
			Response:             responseText(resp, p.StatusCode),
			ConcatenatedMessages: schema.ConcatenatedMessages(),
		},
	}, nil
}

func schemaResponse(resp gjson.Result) *contract.LLMResponse {
	if !resp.Exists() || resp.Type == gjson.Null {
		return nil
	}
	if schemaErr := extract.ResponseSchemaError(resp); schemaErr != nil {
		return &contract.LLMResponse{Error: schemaErr}
	}
	content := resp.Get("message").String()
	if content == "" {
		content = resp.Raw
	}
	return &contract.LLMResponse{
		Messages: []contract.Message{{
			Type:    contract.MessageTypeMessage,
			Role:    "assistant",
			Content: content,
		}},
	}
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
	if msg := resp.Get("message").String(); msg != "" {
		return msg
	}
	return resp.Get("status").String()
}

// Package tool maps standalone tool-call records. The request body is
// self-describing: it carries _type "tool" plus the tool name and input.
package tool

import (
	"github.com/tidwall/gjson"

	"github.com/harunnryd/kiroku/internal/mapper/contract"
	"github.com/harunnryd/kiroku/internal/mapper/extract"
)

// Map maps a tool invocation pair.
func Map(p contract.AdapterParams) (contract.Result, error) {
	req, resp, err := extract.ParseBodies(p)
	if err != nil {
		return contract.Result{}, err
	}

	name := req.Get("toolName").String()
	input := req.Get("input")
	inputText := input.String()
	if input.IsObject() || input.IsArray() {
		inputText = input.Raw
	}

	var requestMessages []contract.Message
	if name != "" || inputText != "" {
		requestMessages = append(requestMessages, contract.Message{
			Type: contract.MessageTypeFunctionCall,
			Role: "user",
			ToolCalls: []contract.ToolCall{{
				Name:      name,
				Arguments: inputText,
			}},
		})
	}

	schema := contract.LlmSchema{
		Request: contract.LLMRequest{
			Model:    p.Model,
			Messages: requestMessages,
		},
		Response: schemaResponse(resp),
	}

	previewRequest := name
	if inputText != "" {
		previewRequest = name + "(" + inputText + ")"
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
			Role:    "tool",
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

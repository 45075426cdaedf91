package openai

import (
	"github.com/tidwall/gjson"

	"github.com/harunnryd/kiroku/internal/mapper/contract"
	"github.com/harunnryd/kiroku/internal/mapper/extract"
)

// MapInstruct maps a legacy completions (instruct) pair: a prompt in, plain
// text choices out.
func MapInstruct(p contract.AdapterParams) (contract.Result, error) {
	req, resp, err := extract.ParseBodies(p)
	if err != nil {
		return contract.Result{}, err
	}

	model := p.Model
	if model == "" {
		model = req.Get("model").String()
	}

	prompt := instructPrompt(req.Get("prompt"))

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
			Model:            model,
			Prompt:           prompt,
			Messages:         requestMessages,
			Temperature:      extract.FloatPtr(req.Get("temperature")),
			TopP:             extract.FloatPtr(req.Get("top_p")),
			FrequencyPenalty: extract.FloatPtr(req.Get("frequency_penalty")),
			PresencePenalty:  extract.FloatPtr(req.Get("presence_penalty")),
			MaxTokens:        extract.IntPtr(req.Get("max_tokens")),
			Stop:             extract.RawField(req.Get("stop")),
		},
		Response: instructSchemaResponse(resp),
	}

	return contract.Result{
		Schema: schema,
		Preview: contract.PreviewSeed{
			Request:              prompt,
			Response:             instructResponseText(resp, p.StatusCode),
			ConcatenatedMessages: schema.ConcatenatedMessages(),
		},
	}, nil
}

// instructPrompt accepts both the bare-string and array-of-strings forms.
func instructPrompt(prompt gjson.Result) string {
	switch {
	case prompt.Type == gjson.String:
		return prompt.String()
	case prompt.IsArray():
		text := ""
		for _, part := range prompt.Array() {
			if part.Type == gjson.String {
				text += part.String()
			}
		}
		return text
	case !prompt.Exists(), prompt.Type == gjson.Null:
		return ""
	default:
		return prompt.Raw
	}
}

func instructSchemaResponse(resp gjson.Result) *contract.LLMResponse {
	if !resp.Exists() || resp.Type == gjson.Null {
		return nil
	}
	if schemaErr := extract.ResponseSchemaError(resp); schemaErr != nil {
		return &contract.LLMResponse{Error: schemaErr}
	}

	var messages []contract.Message
	for _, choice := range resp.Get("choices").Array() {
		text := choice.Get("text")
		if !text.Exists() {
			continue
		}
		messages = append(messages, contract.Message{
			Type:    contract.MessageTypeMessage,
			Role:    "assistant",
			Content: text.String(),
		})
	}
	return &contract.LLMResponse{
		Messages: messages,
		Model:    resp.Get("model").String(),
	}
}

func instructResponseText(resp gjson.Result, statusCode int) string {
	if statusCode == 0 || !resp.Exists() {
		return ""
	}
	if msg := resp.Get("error.heliconeMessage"); msg.Exists() {
		return msg.String()
	}
	if msg := resp.Get("error.message"); msg.Exists() {
		return msg.String()
	}
	return resp.Get("choices.0.text").String()
}

package mapper

import (
	"strings"

	"github.com/tidwall/gjson"

	"github.com/harunnryd/kiroku/internal/mapper/contract"
	"github.com/harunnryd/kiroku/internal/mapper/record"
)

// Classify selects the adapter for a stored record from its path, model,
// provider, and request-body shape. The rules are ordered and the first
// match wins, so classification is deterministic and total: a record with no
// signal at all lands on MapperUnknown, which shares the openai-chat
// adapter.
func Classify(rec record.Record) contract.MapperType {
	body := gjson.ParseBytes(rec.RequestBody)
	path := strings.ToLower(rec.Path)
	model := rec.Model
	lowerModel := strings.ToLower(model)

	// Self-describing bodies win over everything else.
	switch body.Get("_type").String() {
	case "vector_db":
		return contract.MapperVectorDB
	case "tool":
		return contract.MapperTool
	}
	if body.Get("toolName").Exists() {
		return contract.MapperTool
	}

	if strings.HasPrefix(model, "black-forest-labs/") || strings.Contains(path, "black-forest-labs") {
		return contract.MapperBlackForestLabsImage
	}

	if strings.Contains(path, "/threads") || strings.Contains(path, "/assistants") ||
		body.Get("assistant_id").Exists() {
		return contract.MapperOpenAIAssistant
	}
	if strings.Contains(path, "/moderations") {
		return contract.MapperOpenAIModeration
	}
	if strings.Contains(path, "/embeddings") || strings.Contains(lowerModel, "text-embedding") ||
		strings.Contains(lowerModel, "embed") {
		return contract.MapperOpenAIEmbedding
	}
	if strings.Contains(path, "/images/generations") ||
		strings.HasPrefix(lowerModel, "dall-e") || strings.HasPrefix(lowerModel, "gpt-image") {
		return contract.MapperOpenAIImage
	}
	if strings.Contains(path, "/realtime") || strings.Contains(lowerModel, "realtime") {
		return contract.MapperOpenAIRealtime
	}
	if strings.Contains(path, "/responses") {
		return contract.MapperOpenAIResponse
	}

	if strings.HasPrefix(model, "claude") || strings.Contains(path, "anthropic") ||
		strings.Contains(path, "/v1/messages") {
		return contract.MapperAnthropicChat
	}
	if strings.Contains(lowerModel, "gemini") || strings.Contains(path, "generatecontent") ||
		strings.Contains(path, "generativelanguage") {
		return contract.MapperGeminiChat
	}
	if strings.Contains(lowerModel, "llama") {
		return contract.MapperLlamaChat
	}
	if strings.EqualFold(rec.Provider, "vercel") {
		return contract.MapperVercelChat
	}

	if strings.HasPrefix(lowerModel, "gpt-3.5-turbo-instruct") ||
		(strings.HasSuffix(path, "/completions") && !strings.Contains(path, "chat")) ||
		(body.Get("prompt").Exists() && !body.Get("messages").Exists()) {
		return contract.MapperOpenAIInstruct
	}

	if body.Get("messages").Exists() || model != "" {
		return contract.MapperOpenAIChat
	}
	return contract.MapperUnknown
}

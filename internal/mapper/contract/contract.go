package contract

import "encoding/json"

// MapperType names the adapter that produced a mapped request. The set is
// closed: classification always lands on exactly one of these.
type MapperType string

const (
	MapperOpenAIChat           MapperType = "openai-chat"
	MapperOpenAIResponse       MapperType = "openai-response"
	MapperAnthropicChat        MapperType = "anthropic-chat"
	MapperGeminiChat           MapperType = "gemini-chat"
	MapperLlamaChat            MapperType = "llama-chat"
	MapperVercelChat           MapperType = "vercel-chat"
	MapperBlackForestLabsImage MapperType = "black-forest-labs-image"
	MapperOpenAIAssistant      MapperType = "openai-assistant"
	MapperOpenAIImage          MapperType = "openai-image"
	MapperOpenAIModeration     MapperType = "openai-moderation"
	MapperOpenAIEmbedding      MapperType = "openai-embedding"
	MapperOpenAIInstruct       MapperType = "openai-instruct"
	MapperOpenAIRealtime       MapperType = "openai-realtime"
	MapperVectorDB             MapperType = "vector-db"
	MapperTool                 MapperType = "tool"
	MapperUnknown              MapperType = "unknown"
)

// MessageType discriminates the semantic shape of a Message. A message tagged
// MessageTypeImage always carries ImageURL; MessageTypeFunctionCall and
// MessageTypeFunction always carry tool calls or a tool name.
type MessageType string

const (
	MessageTypeMessage      MessageType = "message"
	MessageTypeFunctionCall MessageType = "functionCall"
	MessageTypeFunction     MessageType = "function"
	MessageTypeImage        MessageType = "image"
	MessageTypeContentArray MessageType = "contentArray"
)

// ToolCall is one tool or function invocation requested by a model.
// Arguments holds the raw JSON argument text exactly as the provider sent it.
type ToolCall struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Arguments string `json:"arguments,omitempty"`
}

// Message is the canonical unit of conversational content.
type Message struct {
	Type         MessageType `json:"_type"`
	Role         string      `json:"role,omitempty"`
	Content      string      `json:"content,omitempty"`
	Name         string      `json:"name,omitempty"`
	ToolCallID   string      `json:"tool_call_id,omitempty"`
	ImageURL     string      `json:"image_url,omitempty"`
	ToolCalls    []ToolCall  `json:"tool_calls,omitempty"`
	ContentArray []Message   `json:"contentArray,omitempty"`
}

// Tool is a canonical tool definition offered to the model.
type Tool struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Parameters  json.RawMessage `json:"parameters,omitempty"`
}

// LLMRequest is the provider-independent view of one request body.
// Optional sampling parameters stay nil when the provider omitted them.
type LLMRequest struct {
	Model            string          `json:"model,omitempty"`
	Prompt           string          `json:"prompt,omitempty"`
	Input            json.RawMessage `json:"input,omitempty"`
	Messages         []Message       `json:"messages,omitempty"`
	Temperature      *float64        `json:"temperature,omitempty"`
	TopP             *float64        `json:"top_p,omitempty"`
	FrequencyPenalty *float64        `json:"frequency_penalty,omitempty"`
	PresencePenalty  *float64        `json:"presence_penalty,omitempty"`
	MaxTokens        *int64          `json:"max_tokens,omitempty"`
	Stop             json.RawMessage `json:"stop,omitempty"`
	ToolChoice       json.RawMessage `json:"tool_choice,omitempty"`
	Tools            []Tool          `json:"tools,omitempty"`
	ResponseFormat   json.RawMessage `json:"response_format,omitempty"`
	Size             string          `json:"size,omitempty"`
	Quality          string          `json:"quality,omitempty"`
}

// ResponseError carries the renderable form of an upstream provider failure.
type ResponseError struct {
	HeliconeMessage string `json:"heliconeMessage"`
}

// LLMResponse holds either response messages or an error, never both.
type LLMResponse struct {
	Messages []Message      `json:"messages,omitempty"`
	Model    string         `json:"model,omitempty"`
	Error    *ResponseError `json:"error,omitempty"`
}

// LlmSchema is the canonical request/response pair.
type LlmSchema struct {
	Request  LLMRequest   `json:"request"`
	Response *LLMResponse `json:"response,omitempty"`
}

// ConcatenatedMessages orders request messages before response messages for
// linear rendering.
func (s LlmSchema) ConcatenatedMessages() []Message {
	messages := append([]Message{}, s.Request.Messages...)
	if s.Response != nil {
		messages = append(messages, s.Response.Messages...)
	}
	return messages
}

// AdapterParams is the input every adapter receives. Bodies are the raw
// stored payloads and may be empty, truncated, or not valid JSON at all.
type AdapterParams struct {
	Request    json.RawMessage
	Response   json.RawMessage
	StatusCode int
	Model      string
}

// Result is what one adapter emits before orchestration attaches metadata.
type Result struct {
	Schema  LlmSchema
	Preview PreviewSeed
}

// PreviewSeed is the unsanitized preview an adapter produces.
// ConcatenatedMessages is request messages followed by response messages.
type PreviewSeed struct {
	Request              string
	Response             string
	ConcatenatedMessages []Message
}

// Preview is the bounded, render-safe summary on a mapped request. The
// Request and Response strings never exceed the preview bound and contain no
// newlines. Full text is recomputed lazily through the accessors.
type Preview struct {
	Request              string    `json:"request"`
	Response             string    `json:"response"`
	ConcatenatedMessages []Message `json:"concatenatedMessages"`

	fullRequest  func(previewOnly bool) string
	fullResponse func(previewOnly bool) string
}

// NewPreview builds a Preview with lazy full-text accessors.
func NewPreview(request, response string, messages []Message, fullRequest, fullResponse func(previewOnly bool) string) Preview {
	return Preview{
		Request:              request,
		Response:             response,
		ConcatenatedMessages: messages,
		fullRequest:          fullRequest,
		fullResponse:         fullResponse,
	}
}

// FullRequestText returns the full searchable request text, or the bounded
// preview when previewOnly is set.
func (p Preview) FullRequestText(previewOnly bool) string {
	if p.fullRequest == nil {
		return p.Request
	}
	return p.fullRequest(previewOnly)
}

// FullResponseText returns the full searchable response text, or the bounded
// preview when previewOnly is set.
func (p Preview) FullResponseText(previewOnly bool) string {
	if p.fullResponse == nil {
		return p.Response
	}
	return p.fullResponse(previewOnly)
}

// Raw retains the original payload bodies untouched for audit and re-mapping.
type Raw struct {
	Request  json.RawMessage `json:"request"`
	Response json.RawMessage `json:"response"`
}

// StatusType classifies the outcome of the underlying provider call.
type StatusType string

const (
	StatusSuccess StatusType = "success"
	StatusError   StatusType = "error"
	StatusPending StatusType = "pending"
)

type Status struct {
	StatusType StatusType `json:"statusType"`
	Code       int        `json:"code"`
}

type Feedback struct {
	ID        *string `json:"id"`
	Rating    *bool   `json:"rating"`
	CreatedAt *string `json:"createdAt"`
}

// Metadata is derived entirely from the stored record, never from the
// payload bodies.
type Metadata struct {
	RequestID               string             `json:"requestId"`
	CreatedAt               string             `json:"createdAt,omitempty"`
	Path                    string             `json:"path,omitempty"`
	Provider                string             `json:"provider,omitempty"`
	CountryCode             string             `json:"countryCode,omitempty"`
	CacheEnabled            bool               `json:"cacheEnabled"`
	CacheReferenceID        string             `json:"cacheReferenceId,omitempty"`
	Cost                    float64            `json:"cost"`
	PromptTokens            int64              `json:"promptTokens"`
	CompletionTokens        int64              `json:"completionTokens"`
	PromptCacheReadTokens   int64              `json:"promptCacheReadTokens"`
	PromptCacheWriteTokens  int64              `json:"promptCacheWriteTokens"`
	TotalTokens             int64              `json:"totalTokens"`
	Latency                 int64              `json:"latency"`
	TimeToFirstToken        *int64             `json:"timeToFirstToken,omitempty"`
	User                    string             `json:"user,omitempty"`
	CustomProperties        map[string]string  `json:"customProperties,omitempty"`
	Scores                  map[string]float64 `json:"scores,omitempty"`
	Status                  Status             `json:"status"`
	Feedback                Feedback           `json:"feedback"`
	PromptID                string             `json:"promptId,omitempty"`
	PromptVersion           string             `json:"promptVersion,omitempty"`
	GatewayRouterID         string             `json:"gatewayRouterId,omitempty"`
	GatewayDeploymentTarget string             `json:"gatewayDeploymentTarget,omitempty"`
}

// MappedLLMRequest is the unit returned to every consumer. It is constructed
// fresh per mapping and immutable once returned.
type MappedLLMRequest struct {
	ID         string     `json:"id"`
	Model      string     `json:"model"`
	MapperType MapperType `json:"_type"`
	Schema     LlmSchema  `json:"schema"`
	Preview    Preview    `json:"preview"`
	Raw        Raw        `json:"raw"`
	Metadata   Metadata   `json:"heliconeMetadata"`
}

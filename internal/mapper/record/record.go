// Package record defines the stored request/response row the mapping
// pipeline consumes. The row is produced by an external store; only the
// fields below are required here and everything else on the row is ignored.
package record

import "encoding/json"

// Record is one persisted LLM request/response pair plus its derived
// columns. RequestBody and ResponseBody are arbitrary JSON and may be empty
// or malformed. A ResponseStatus of 0 means the call is still pending.
type Record struct {
	RequestID      string          `json:"request_id"`
	Model          string          `json:"model"`
	RequestBody    json.RawMessage `json:"request_body"`
	ResponseBody   json.RawMessage `json:"response_body"`
	ResponseStatus int             `json:"response_status"`

	Path      string `json:"request_path"`
	CreatedAt string `json:"request_created_at"`
	Provider  string `json:"provider"`
	User      string `json:"request_user_id"`

	CountryCode      string  `json:"country_code"`
	CacheEnabled     bool    `json:"cache_enabled"`
	CacheReferenceID string  `json:"cache_reference_id"`
	Cost             float64 `json:"cost"`

	PromptTokens           int64  `json:"prompt_tokens"`
	CompletionTokens       int64  `json:"completion_tokens"`
	PromptCacheReadTokens  int64  `json:"prompt_cache_read_tokens"`
	PromptCacheWriteTokens int64  `json:"prompt_cache_write_tokens"`
	TotalTokens            int64  `json:"total_tokens"`
	DelayMS                int64  `json:"delay_ms"`
	TimeToFirstToken       *int64 `json:"time_to_first_token"`

	Properties map[string]string  `json:"request_properties"`
	Scores     map[string]float64 `json:"scores"`

	FeedbackID        *string `json:"feedback_id"`
	FeedbackRating    *bool   `json:"feedback_rating"`
	FeedbackCreatedAt *string `json:"feedback_created_at"`

	PromptID                string `json:"prompt_id"`
	PromptVersion           string `json:"prompt_version"`
	GatewayRouterID         string `json:"gateway_router_id"`
	GatewayDeploymentTarget string `json:"gateway_deployment_target"`
}

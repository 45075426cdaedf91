// Package mapper turns stored LLM request/response records into the
// canonical MappedLLMRequest used for rendering, search, and export. The
// pipeline is a pure projection of its inputs: classify, invoke the matching
// adapter defensively, attach record metadata, sanitize. It never fails for
// a malformed payload; the worst input still yields a renderable diagnostic
// result.
package mapper

import (
	"fmt"
	"log/slog"

	"github.com/tidwall/gjson"

	"github.com/harunnryd/kiroku/internal/errors"
	"github.com/harunnryd/kiroku/internal/mapper/contract"
	"github.com/harunnryd/kiroku/internal/mapper/record"
)

type Mapper struct {
	registry *Registry
}

func New() *Mapper {
	return &Mapper{registry: NewRegistry()}
}

// Map converts one stored record. The returned error is only the
// configuration fault of a registry that does not cover the closed type set;
// payload problems of any kind surface inside the result instead.
func (m *Mapper) Map(rec record.Record) (contract.MappedLLMRequest, error) {
	return m.MapAs(rec, Classify(rec))
}

// MapAs converts one stored record with a caller-chosen mapper type.
func (m *Mapper) MapAs(rec record.Record, mapperType contract.MapperType) (contract.MappedLLMRequest, error) {
	fn, ok := m.registry.Lookup(mapperType)
	if !ok {
		return contract.MappedLLMRequest{}, errors.MapperNotFound(string(mapperType))
	}

	result, err := m.invoke(fn, contract.AdapterParams{
		Request:    rec.RequestBody,
		Response:   rec.ResponseBody,
		StatusCode: rec.ResponseStatus,
		Model:      rec.Model,
	})
	if err != nil {
		slog.Warn("mapper degraded to diagnostic result",
			"request_id", rec.RequestID, "mapper", mapperType, "error", err)
		result = diagnosticResult(rec, err)
	}

	mapped := contract.MappedLLMRequest{
		ID:         rec.RequestID,
		Model:      rec.Model,
		MapperType: mapperType,
		Schema:     result.Schema,
		Preview: contract.NewPreview(
			result.Preview.Request,
			result.Preview.Response,
			result.Preview.ConcatenatedMessages,
			nil, nil,
		),
		Raw: contract.Raw{
			Request:  rec.RequestBody,
			Response: rec.ResponseBody,
		},
		Metadata: metadataFromRecord(rec),
	}

	return Sanitize(mapped), nil
}

// invoke shields the pipeline from a misbehaving adapter: explicit errors
// and panics both fold into the diagnostic path.
func (m *Mapper) invoke(fn Fn, p contract.AdapterParams) (result contract.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Internal(fmt.Sprintf("adapter panic: %v", r))
		}
	}()
	return fn(p)
}

// diagnosticResult echoes the raw bodies so an unparseable record still
// renders as a row.
func diagnosticResult(rec record.Record, err error) contract.Result {
	return contract.Result{
		Schema: contract.LlmSchema{
			Request: contract.LLMRequest{
				Prompt: "Error: " + err.Error(),
			},
		},
		Preview: contract.PreviewSeed{
			Request:  string(rec.RequestBody),
			Response: string(rec.ResponseBody),
		},
	}
}

// metadataFromRecord derives metadata from the stored record's columns only;
// payload bodies contribute nothing here beyond the error probe for status.
func metadataFromRecord(rec record.Record) contract.Metadata {
	return contract.Metadata{
		RequestID:               rec.RequestID,
		CreatedAt:               rec.CreatedAt,
		Path:                    rec.Path,
		Provider:                rec.Provider,
		CountryCode:             rec.CountryCode,
		CacheEnabled:            rec.CacheEnabled,
		CacheReferenceID:        rec.CacheReferenceID,
		Cost:                    rec.Cost,
		PromptTokens:            rec.PromptTokens,
		CompletionTokens:        rec.CompletionTokens,
		PromptCacheReadTokens:   rec.PromptCacheReadTokens,
		PromptCacheWriteTokens:  rec.PromptCacheWriteTokens,
		TotalTokens:             rec.TotalTokens,
		Latency:                 rec.DelayMS,
		TimeToFirstToken:        rec.TimeToFirstToken,
		User:                    rec.User,
		CustomProperties:        rec.Properties,
		Scores:                  rec.Scores,
		Status: contract.Status{
			StatusType: statusType(rec),
			Code:       rec.ResponseStatus,
		},
		Feedback: contract.Feedback{
			ID:        rec.FeedbackID,
			Rating:    rec.FeedbackRating,
			CreatedAt: rec.FeedbackCreatedAt,
		},
		PromptID:                rec.PromptID,
		PromptVersion:           rec.PromptVersion,
		GatewayRouterID:         rec.GatewayRouterID,
		GatewayDeploymentTarget: rec.GatewayDeploymentTarget,
	}
}

func statusType(rec record.Record) contract.StatusType {
	if gjson.GetBytes(rec.ResponseBody, "error.message").Exists() {
		return contract.StatusError
	}
	switch rec.ResponseStatus {
	case 200:
		return contract.StatusSuccess
	case 0:
		return contract.StatusPending
	default:
		return contract.StatusError
	}
}

package openai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/harunnryd/kiroku/internal/mapper/contract"
)

func TestMapChat_Basic(t *testing.T) {
	result, err := MapChat(contract.AdapterParams{
		Request:    []byte(`{"model":"gpt-4o","temperature":0.2,"max_tokens":256,"messages":[{"role":"system","content":"be brief"},{"role":"user","content":"hello"}]}`),
		Response:   []byte(`{"model":"gpt-4o-2024-08-06","choices":[{"message":{"role":"assistant","content":"hi"}}]}`),
		StatusCode: 200,
		Model:      "gpt-4o",
	})
	require.NoError(t, err)

	req := result.Schema.Request
	assert.Equal(t, "gpt-4o", req.Model)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, "be brief", req.Messages[0].Content)
	require.NotNil(t, req.Temperature)
	assert.Equal(t, 0.2, *req.Temperature)
	require.NotNil(t, req.MaxTokens)
	assert.Equal(t, int64(256), *req.MaxTokens)
	assert.Nil(t, req.TopP)

	resp := result.Schema.Response
	require.NotNil(t, resp)
	require.Len(t, resp.Messages, 1)
	assert.Equal(t, "hi", resp.Messages[0].Content)
	assert.Equal(t, "gpt-4o-2024-08-06", resp.Model)

	assert.Equal(t, "hello", result.Preview.Request)
	assert.Equal(t, "hi", result.Preview.Response)
	assert.Len(t, result.Preview.ConcatenatedMessages, 3)
}

func TestMapChat_ToolCallRoundTrip(t *testing.T) {
	result, err := MapChat(contract.AdapterParams{
		Request:    []byte(`{"model":"gpt-4o","messages":[{"role":"user","content":"weather in Oslo?"}],"tools":[{"type":"function","function":{"name":"lookup","description":"weather lookup","parameters":{"type":"object"}}}]}`),
		Response:   []byte(`{"choices":[{"message":{"role":"assistant","content":null,"tool_calls":[{"id":"call_1","function":{"name":"lookup","arguments":"{\"city\":\"Oslo\"}"}}]}}]}`),
		StatusCode: 200,
	})
	require.NoError(t, err)

	require.Len(t, result.Schema.Request.Tools, 1)
	assert.Equal(t, "lookup", result.Schema.Request.Tools[0].Name)

	resp := result.Schema.Response
	require.NotNil(t, resp)
	require.Len(t, resp.Messages, 1)
	msg := resp.Messages[0]
	assert.Equal(t, contract.MessageTypeFunctionCall, msg.Type)
	require.Len(t, msg.ToolCalls, 1)
	assert.Equal(t, "lookup", msg.ToolCalls[0].Name)
	assert.Equal(t, `{"city":"Oslo"}`, msg.ToolCalls[0].Arguments)

	assert.Equal(t, `lookup({"city":"Oslo"})`, result.Preview.Response)
}

func TestMapChat_ErrorResponse(t *testing.T) {
	result, err := MapChat(contract.AdapterParams{
		Request:    []byte(`{"model":"gpt-4o","messages":[{"role":"user","content":"hi"}]}`),
		Response:   []byte(`{"error":{"message":"rate limited","code":"rate_limit_exceeded"}}`),
		StatusCode: 429,
	})
	require.NoError(t, err)

	resp := result.Schema.Response
	require.NotNil(t, resp)
	require.NotNil(t, resp.Error)
	assert.Empty(t, resp.Messages)
	assert.Contains(t, resp.Error.HeliconeMessage, "rate limited")
	assert.Equal(t, "rate limited", result.Preview.Response)
}

func TestMapChat_EmptyBodies(t *testing.T) {
	result, err := MapChat(contract.AdapterParams{})
	require.NoError(t, err)
	assert.Nil(t, result.Schema.Response)
	assert.Empty(t, result.Schema.Request.Messages)
	assert.Empty(t, result.Preview.Request)
	assert.Empty(t, result.Preview.Response)
}

func TestMapChat_MalformedBodyErrors(t *testing.T) {
	_, err := MapChat(contract.AdapterParams{Request: []byte("{nope")})
	require.Error(t, err)
}

func TestRequestTools_FlatTakesPrecedence(t *testing.T) {
	req := gjson.Parse(`{"tools":[{"name":"flat_name","description":"flat desc","parameters":{"a":1},"function":{"name":"nested_name","description":"nested desc","parameters":{"b":2}}}]}`)
	tools := RequestTools(req)
	require.Len(t, tools, 1)
	assert.Equal(t, "flat_name", tools[0].Name)
	assert.Equal(t, "flat desc", tools[0].Description)
	assert.JSONEq(t, `{"a":1}`, string(tools[0].Parameters))
}

func TestRequestTools_NestedFallback(t *testing.T) {
	req := gjson.Parse(`{"tools":[{"type":"function","function":{"name":"only_nested","parameters":{"type":"object"}}}]}`)
	tools := RequestTools(req)
	require.Len(t, tools, 1)
	assert.Equal(t, "only_nested", tools[0].Name)
	assert.JSONEq(t, `{"type":"object"}`, string(tools[0].Parameters))
}

func TestSchemaResponse_AbsentBody(t *testing.T) {
	assert.Nil(t, SchemaResponse(gjson.Result{}))
}

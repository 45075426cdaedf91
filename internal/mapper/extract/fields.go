package extract

import (
	"encoding/json"

	"github.com/tidwall/gjson"

	errs "github.com/harunnryd/kiroku/internal/errors"
	"github.com/harunnryd/kiroku/internal/mapper/contract"
)

// Optional-field helpers shared by the adapters. Absent fields stay nil so
// the canonical schema can distinguish "not sent" from zero values.

func FloatPtr(v gjson.Result) *float64 {
	if !v.Exists() || v.Type == gjson.Null {
		return nil
	}
	f := v.Float()
	return &f
}

func IntPtr(v gjson.Result) *int64 {
	if !v.Exists() || v.Type == gjson.Null {
		return nil
	}
	n := v.Int()
	return &n
}

// RawField carries a polymorphic provider field through unchanged.
func RawField(v gjson.Result) json.RawMessage {
	if !v.Exists() || v.Type == gjson.Null {
		return nil
	}
	return json.RawMessage(v.Raw)
}

// ParseBodies parses both stored bodies for an adapter. Empty bodies parse
// to the zero result; bodies that are not JSON at all are a malformed-payload
// error for the orchestrator to fold.
func ParseBodies(p contract.AdapterParams) (req, resp gjson.Result, err error) {
	req, err = parseBody(p.Request, "request")
	if err != nil {
		return gjson.Result{}, gjson.Result{}, err
	}
	resp, err = parseBody(p.Response, "response")
	if err != nil {
		return gjson.Result{}, gjson.Result{}, err
	}
	return req, resp, nil
}

func parseBody(body []byte, side string) (gjson.Result, error) {
	if len(body) == 0 {
		return gjson.Result{}, nil
	}
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, errs.MalformedPayload(side + " body is not valid JSON")
	}
	return gjson.ParseBytes(body), nil
}

// ResponseSchemaError maps a top-level error object onto the canonical error
// shape. A dedicated heliconeMessage field wins; otherwise the error object
// itself is serialized.
func ResponseSchemaError(resp gjson.Result) *contract.ResponseError {
	errObj := resp.Get("error")
	if !errObj.Exists() || errObj.Type == gjson.Null {
		return nil
	}
	if msg := errObj.Get("heliconeMessage"); msg.Exists() {
		if msg.Type == gjson.String {
			return &contract.ResponseError{HeliconeMessage: msg.String()}
		}
		return &contract.ResponseError{HeliconeMessage: msg.Raw}
	}
	return &contract.ResponseError{HeliconeMessage: errObj.Raw}
}

package apiclient

import (
	"bytes"
	"encoding/json"
	"math"
)

// SuccessCode is the envelope code of a successful call.
const SuccessCode = 200

// Envelope is the {code, data, msg} wrapper returned by the backend.
type Envelope struct {
	Code int             `json:"code"`
	Data json.RawMessage `json:"data"`
	Msg  string          `json:"msg"`

	// success is false when code is not the number 200, including codes
	// of the wrong JSON type such as "200".
	success bool
}

// Succeeded reports whether the envelope signals success
func (e *Envelope) Succeeded() bool {
	return e.success
}

// Payload returns data, or JSON null when data is absent
func (e *Envelope) Payload() json.RawMessage {
	if isNull(e.Data) {
		return json.RawMessage("null")
	}
	return e.Data
}

// parseEnvelope reports whether body is a JSON object with a code member
// and decodes it if so.
func parseEnvelope(body []byte) (*Envelope, bool) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, false
	}

	rawCode, ok := fields["code"]
	if !ok {
		return nil, false
	}

	env := &Envelope{Data: fields["data"]}
	env.Code, env.success = decodeCode(rawCode)

	if rawMsg, ok := fields["msg"]; ok {
		var msg string
		if err := json.Unmarshal(rawMsg, &msg); err == nil {
			env.Msg = msg
		}
	}

	return env, true
}

// decodeCode returns the numeric code and whether it equals SuccessCode.
// Non-numeric codes decode as 0 and never succeed.
func decodeCode(raw json.RawMessage) (int, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return 0, false
	}

	num, ok := v.(json.Number)
	if !ok {
		return 0, false
	}

	if n, err := num.Int64(); err == nil {
		return int(n), n == SuccessCode
	}
	f, err := num.Float64()
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), int(f) == SuccessCode
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

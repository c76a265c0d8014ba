package apiclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEnvelope(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		isEnvelope bool
		success    bool
		code       int
	}{
		{"success", `{"code":200,"data":{},"msg":null}`, true, true, 200},
		{"float success", `{"code":200.0,"data":{}}`, true, true, 200},
		{"failure", `{"code":500,"msg":"boom"}`, true, false, 500},
		{"string code", `{"code":"200"}`, true, false, 0},
		{"null code", `{"code":null}`, true, false, 0},
		{"no code member", `{"data":{}}`, false, false, 0},
		{"array body", `[1,2,3]`, false, false, 0},
		{"plain text", `hello`, false, false, 0},
		{"empty body", ``, false, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, ok := parseEnvelope([]byte(tt.body))
			assert.Equal(t, tt.isEnvelope, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.success, env.Succeeded())
			assert.Equal(t, tt.code, env.Code)
		})
	}
}

func TestEnvelopePayload(t *testing.T) {
	env, ok := parseEnvelope([]byte(`{"code":200}`))
	assert.True(t, ok)
	assert.Equal(t, "null", string(env.Payload()))

	env, _ = parseEnvelope([]byte(`{"code":200,"data":[1]}`))
	assert.Equal(t, "[1]", string(env.Payload()))
}

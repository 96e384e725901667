package shared

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name  string   `json:"name" validate:"required"`
	Value *float64 `json:"value" validate:"required"`
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
		errText string
	}{
		{name: "valid", body: `{"name":"a","value":1.5}`},
		{name: "empty body", body: ``, wantErr: ErrEmptyBody},
		{name: "malformed", body: `{"name":`, errText: "unexpected EOF"},
		{name: "unknown field", body: `{"name":"a","extra":true}`, errText: "unknown field"},
		{name: "trailing data", body: `{"name":"a"}{"name":"b"}`, errText: "unexpected data"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			w := httptest.NewRecorder()

			var req sampleRequest
			err := DecodeJSON(w, r, &req)

			switch {
			case tc.wantErr != nil:
				assert.ErrorIs(t, err, tc.wantErr)
			case tc.errText != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errText)
			default:
				require.NoError(t, err)
				assert.Equal(t, "a", req.Name)
				require.NotNil(t, req.Value)
				assert.Equal(t, 1.5, *req.Value)
			}
		})
	}
}

func TestDecodeJSONTooLarge(t *testing.T) {
	body := `{"name":"` + strings.Repeat("x", MaxRequestBodyBytes) + `"}`
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	w := httptest.NewRecorder()

	var req sampleRequest
	assert.Error(t, DecodeJSON(w, r, &req))
}

type selfValidating struct{ ok bool }

func (s selfValidating) Validate() error {
	if !s.ok {
		return errors.New("not ok")
	}
	return nil
}

func TestValidateRequest(t *testing.T) {
	zero := 0.0

	assert.NoError(t, ValidateRequest(sampleRequest{Name: "a", Value: &zero}),
		"a pointer to zero satisfies required")
	assert.Error(t, ValidateRequest(sampleRequest{Name: "a"}))
	assert.Error(t, ValidateRequest(sampleRequest{Value: &zero}))

	assert.NoError(t, ValidateRequest(selfValidating{ok: true}))
	assert.EqualError(t, ValidateRequest(selfValidating{}), "not ok")
}

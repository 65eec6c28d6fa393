package backend

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitpick/admin-gateway/internal/domain/model"
	apperrors "github.com/fitpick/admin-gateway/internal/errors"
)

func TestEnvelopeData_Variants(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{"camelCase envelope", `{"success":true,"data":{"a":1}}`, `{"a":1}`},
		{"PascalCase envelope", `{"Success":true,"Data":{"a":1}}`, `{"a":1}`},
		{"no envelope", `{"a":1}`, `{"a":1}`},
		{"bare array", `[1,2]`, `[1,2]`},
		{"success without data", `{"success":true}`, `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := envelopeData([]byte(tt.payload))
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))
		})
	}
}

func TestEnvelopeData_Failure(t *testing.T) {
	_, err := envelopeData([]byte(`{"success":false,"message":"nope"}`))
	require.Error(t, err)
	assert.True(t, apperrors.IsUpstream(err))
	assert.Equal(t, "nope", apperrors.UserMessage(err))

	_, err = envelopeData([]byte(`{"success":false}`))
	require.Error(t, err)
	assert.Equal(t, "The request was rejected by the server.", apperrors.UserMessage(err))
}

func TestDecodePage_ObjectVariants(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"camelCase", `{"items":[{"id":"1"}],"totalItems":25,"totalPages":3,"pageSize":10,"pageNumber":1}`},
		{"PascalCase", `{"Items":[{"id":"1"}],"TotalItems":25,"TotalPages":3,"PageSize":10,"PageNumber":1}`},
		{"snake_case counts", `{"items":[{"id":"1"}],"total_items":25,"total_pages":3,"page_size":10,"page_number":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := decodePage[model.User](json.RawMessage(tt.data))
			require.NoError(t, err)
			assert.Len(t, page.Items, 1)
			assert.Equal(t, 25, page.TotalItems)
			assert.Equal(t, 3, page.TotalPages)
			assert.Equal(t, 10, page.PageSize)
			assert.Equal(t, 1, page.PageNumber)
		})
	}
}

func TestDecodePage_BareArrayDegrades(t *testing.T) {
	page, err := decodePage[model.User](json.RawMessage(`[{"id":"1"},{"id":"2"}]`))
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 2, page.TotalItems)
	assert.Equal(t, 1, page.TotalPages)
}

func TestEnvelopeMessage(t *testing.T) {
	assert.Equal(t, "hi", envelopeMessage([]byte(`{"message":"hi"}`)))
	assert.Equal(t, "hi", envelopeMessage([]byte(`{"Message":"hi"}`)))
	assert.Equal(t, "", envelopeMessage([]byte(`[1]`)))
	assert.Equal(t, "", envelopeMessage([]byte(`{"message":5}`)))
}

package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrice_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Price
	}{
		{"integer", `{"price":2499}`, "2499"},
		{"decimal", `{"price":19.99}`, "19.99"},
		{"string", `{"price":"1,299"}`, "1,299"},
		{"numeric zero", `{"price":0}`, ""},
		{"numeric zero decimal", `{"price":0.0}`, ""},
		{"string zero", `{"price":"0"}`, "0"},
		{"null", `{"price":null}`, ""},
		{"absent", `{}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Product
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &p))
			assert.Equal(t, tt.want, p.Price)
		})
	}

	var p Product
	assert.Error(t, json.Unmarshal([]byte(`{"price":true}`), &p))
}

func TestPrice_IsZero(t *testing.T) {
	assert.True(t, Price("").IsZero())
	assert.False(t, Price("0").IsZero())
	assert.False(t, Price("10").IsZero())
	assert.False(t, Price("on request").IsZero())
}

func TestProduct_Unmarshal(t *testing.T) {
	var p Product
	raw := `{"name":"Tote","imageUrl":"http://x/t.jpg","similarity":0.42,"extra":"ignored"}`
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	assert.Equal(t, "Tote", p.Name)
	assert.Equal(t, "http://x/t.jpg", p.ImageURL)
	require.NotNil(t, p.Similarity)
	assert.InDelta(t, 0.42, *p.Similarity, 1e-9)
	assert.Empty(t, p.Brand)
}

func TestBackendError(t *testing.T) {
	assert.Equal(t, "bad image", (&BackendError{Status: 400, Message: "bad image"}).Error())
	assert.Equal(t, "matching service returned status 502", (&BackendError{Status: 502}).Error())
}

func TestIsEmptyInput(t *testing.T) {
	assert.True(t, IsEmptyInput(nil))
	assert.True(t, IsEmptyInput(URLInput{}))
	assert.True(t, IsEmptyInput(URLInput{Value: " \t"}))
	assert.True(t, IsEmptyInput(FileInput{Filename: "a.png"}))
	assert.False(t, IsEmptyInput(URLInput{Value: "http://x/a.jpg"}))
	assert.False(t, IsEmptyInput(FileInput{Data: []byte{1}}))
}

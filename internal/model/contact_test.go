package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContact_Normalize(t *testing.T) {
	c := &Contact{Email: "  Ion.Contact@Gmail.COM ", Phone: "+40 712 345 678"}
	c.Normalize()

	assert.Equal(t, "ion.contact@gmail.com", c.Email)
	assert.Equal(t, "40712345678", c.Phone)
	assert.Equal(t, "*******5678", c.MaskedPhone())
}

func TestMaskPhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"123", "123"},
		{"1234", "1234"},
		{"12345", "*2345"},
		{"07458845", "****8845"},
		{"40712345678", "*******5678"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MaskPhone(tt.in), tt.in)
	}
}

func TestNormalizePhone_DropsEverythingButDigits(t *testing.T) {
	assert.Equal(t, "0712345678", NormalizePhone("(0712) 345-678"))
	assert.Equal(t, "", NormalizePhone("no digits"))
}

func TestContact_MarshalJSON_IncludesMaskedPhone(t *testing.T) {
	c := Contact{ID: 3, Email: "a@b.co", Phone: "0745884512", UserID: 9}

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "******4512", out["maskedPhone"])
	assert.Equal(t, "0745884512", out["phone"])
	assert.Equal(t, float64(9), out["userId"])
	assert.NotContains(t, out, "user")
}

func TestContact_MarshalJSON_EmptyPhoneIsNull(t *testing.T) {
	data, err := json.Marshal(Contact{Email: "a@b.co"})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"maskedPhone":null`)
}

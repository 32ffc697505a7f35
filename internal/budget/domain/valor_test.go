package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValor(t *testing.T) {
	tests := []struct {
		input   string
		want    Valor
		wantErr bool
	}{
		{"0", 0, false},
		{"0.00", 0, false},
		{"1", 100, false},
		{"1.5", 150, false},
		{"1.50", 150, false},
		{"150.75", 15075, false},
		{"1234567.89", 123456789, false},
		{".99", 99, false},
		{"", 0, true},
		{"abc", 0, true},
		{"-5", 0, true},
		{"+5", 0, true},
		{"10.123", 0, true},
		{"1.2.3", 0, true},
		{"1e5", 0, true},
		{"92233720368547758.08", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseValor(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValorInvalido)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValorString(t *testing.T) {
	assert.Equal(t, "0.00", Valor(0).String())
	assert.Equal(t, "150.75", Valor(15075).String())
	assert.Equal(t, "0.05", Valor(5).String())
	assert.Equal(t, "-3799.50", Valor(-379950).String())
}

func TestValorJSONRoundTrip(t *testing.T) {
	b, err := json.Marshal(Valor(15075))
	require.NoError(t, err)
	assert.Equal(t, "150.75", string(b))

	var v Valor
	require.NoError(t, json.Unmarshal([]byte("150.75"), &v))
	assert.Equal(t, Valor(15075), v)

	require.NoError(t, json.Unmarshal([]byte(`"99.10"`), &v))
	assert.Equal(t, Valor(9910), v)
}

func TestValorExactSumNoDrift(t *testing.T) {
	// 0.10 added a thousand times is exactly 100.00 in centavos.
	v, err := ParseValor("0.10")
	require.NoError(t, err)
	var sum Valor
	for i := 0; i < 1000; i++ {
		sum += v
	}
	assert.Equal(t, Valor(10000), sum)
	assert.Equal(t, "100.00", sum.String())
}

func TestValorInputCapturesRawToken(t *testing.T) {
	var payload struct {
		Valor ValorInput `json:"Valor"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"Valor":10.123}`), &payload))
	assert.Equal(t, ValorInput("10.123"), payload.Valor)

	require.NoError(t, json.Unmarshal([]byte(`{"Valor":"abc"}`), &payload))
	assert.Equal(t, ValorInput("abc"), payload.Valor)
}

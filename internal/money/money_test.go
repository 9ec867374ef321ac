package money_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vasiliy-maslov/ecommerce-microservices/store-admin/internal/money"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    money.Amount
		wantErr bool
	}{
		{name: "whole", in: "10", want: 1000},
		{name: "two_digits", in: "25.50", want: 2550},
		{name: "truncates_extra_digits", in: "19.999", want: 1999},
		{name: "float_trap", in: "0.29", want: 29},
		{name: "spaces", in: " 3.10 ", want: 310},
		{name: "garbage", in: "ten", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := money.Parse(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSumAndString(t *testing.T) {
	total := money.Sum(1000, 2550)
	assert.Equal(t, money.Amount(3550), total)
	assert.Equal(t, "35.50", total.String())
	assert.Equal(t, int64(3550), total.MinorUnits())
}

func TestAmountJSON(t *testing.T) {
	var payload struct {
		Price money.Amount `json:"price"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"price": 12.5}`), &payload))
	assert.Equal(t, money.Amount(1250), payload.Price)

	require.NoError(t, json.Unmarshal([]byte(`{"price": "7.05"}`), &payload))
	assert.Equal(t, money.Amount(705), payload.Price)

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"price": 7.05}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"price": "abc"}`), &payload))
}

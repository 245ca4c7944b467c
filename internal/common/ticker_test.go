package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTicker(t *testing.T) {
	tests := []struct {
		name         string
		ticker       string
		wantExchange string
		wantCode     string
	}{
		{"colon separator", "EBR:SOLB", "EBR", "SOLB"},
		{"dot separator", "AEX.ASML", "AEX", "ASML"},
		{"bare code uses default exchange", "SOLB", DefaultExchange, "SOLB"},
		{"lowercase normalized", "ebr:solb", "EBR", "SOLB"},
		{"empty string", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTicker(tt.ticker)
			assert.Equal(t, tt.wantExchange, got.Exchange)
			assert.Equal(t, tt.wantCode, got.Code)
		})
	}
}

func TestTickerString(t *testing.T) {
	tk := Ticker{Exchange: "EBR", Code: "SOLB"}
	assert.Equal(t, "EBR:SOLB", tk.String())

	bare := Ticker{Code: "SOLB"}
	assert.Equal(t, "SOLB", bare.String())
}

func TestTickerStorageKey(t *testing.T) {
	tk := Ticker{Exchange: "EBR", Code: "SOLB"}
	assert.Equal(t, "ebr:solb", tk.StorageKey())
}

func TestParseTickers(t *testing.T) {
	got := ParseTickers([]string{"EBR:SOLB", "", "AEX:ASML"})
	assert.Len(t, got, 2)
	assert.Equal(t, "SOLB", got[0].Code)
	assert.Equal(t, "ASML", got[1].Code)
}

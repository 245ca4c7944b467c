// Package common provides shared utilities across the application.
package common

import (
	"strings"
)

// Ticker represents a parsed exchange-qualified ticker, used to key a
// StatementSet in storage (symbol/fiscal_period/date).
// Format: EXCHANGE:CODE (e.g., "EBR:SOLB", "AEX:ASML").
type Ticker struct {
	Exchange string
	Code     string
	Raw      string
}

// DefaultExchange is used when parsing a ticker without an exchange prefix.
var DefaultExchange = "EBR"

// SetDefaultExchange sets the default exchange for parsing bare tickers.
func SetDefaultExchange(exchange string) {
	if exchange != "" {
		DefaultExchange = strings.ToUpper(exchange)
	}
}

// ParseTicker parses an exchange-qualified ticker string. Supports:
//   - "EBR:SOLB" -> Exchange="EBR", Code="SOLB" (colon separator)
//   - "EBR.SOLB" -> Exchange="EBR", Code="SOLB" (dot separator)
//   - "SOLB"     -> Exchange=DefaultExchange, Code="SOLB"
func ParseTicker(ticker string) Ticker {
	ticker = strings.TrimSpace(ticker)
	if ticker == "" {
		return Ticker{}
	}

	if idx := strings.Index(ticker, ":"); idx > 0 {
		return Ticker{
			Exchange: strings.ToUpper(ticker[:idx]),
			Code:     strings.ToUpper(ticker[idx+1:]),
			Raw:      ticker,
		}
	}

	if idx := strings.Index(ticker, "."); idx > 0 {
		return Ticker{
			Exchange: strings.ToUpper(ticker[:idx]),
			Code:     strings.ToUpper(ticker[idx+1:]),
			Raw:      ticker,
		}
	}

	return Ticker{
		Exchange: DefaultExchange,
		Code:     strings.ToUpper(ticker),
		Raw:      ticker,
	}
}

// String returns the full exchange-qualified ticker string.
func (t Ticker) String() string {
	if t.Exchange == "" || t.Code == "" {
		return t.Code
	}
	return t.Exchange + ":" + t.Code
}

// StorageKey returns the key prefix used by the Badger statement store for
// this ticker: "exchange:code".
func (t Ticker) StorageKey() string {
	return strings.ToLower(t.Exchange) + ":" + strings.ToLower(t.Code)
}

// ParseTickers parses a list of ticker strings, skipping unparsable entries.
func ParseTickers(tickers []string) []Ticker {
	result := make([]Ticker, 0, len(tickers))
	for _, t := range tickers {
		if parsed := ParseTicker(t); parsed.Code != "" {
			result = append(result, parsed)
		}
	}
	return result
}

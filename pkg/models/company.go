package models

// CompanyRef identifies one listed issuer and the filing the crawler
// collaborator discovered for it. The core never constructs this itself -
// it is the input shape the external crawler collaborator supplies, one
// per candidate statement PDF.
type CompanyRef struct {
	Symbol         string
	ISIN           string
	Registrant     string
	Market         string
	MarketFullName string
	InfoURL        string

	AddressLine    string
	AddressCity    string
	AddressCountry string
	PhoneNumber    string
	Website        string
}

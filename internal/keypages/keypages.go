// Package keypages narrows a statement document down to the pages that
// carry income-statement, balance-sheet, or cash-flow tables, so the rest
// of the pipeline only ever parses pages it has a use for.
package keypages

import "github.com/eurostatements/statementcore/internal/taxonomy"

// Filter decides which pages of a document are relevant to at least one
// canonical statement, using the taxonomy's compiled title regexes.
type Filter struct {
	tax *taxonomy.Taxonomy
}

func NewFilter(tax *taxonomy.Taxonomy) *Filter {
	return &Filter{tax: tax}
}

// Result is the outcome of scanning a document's page texts for statement
// title matches.
type Result struct {
	// KeepPages holds the 1-indexed page numbers that matched at least one
	// statement's title regex.
	KeepPages []int
	// Found records, per statement kind, whether at least one page
	// carried that statement's title.
	Found map[string]bool
	// Complete is true only when every canonical statement kind was
	// found somewhere in the document.
	Complete bool
}

// Scan runs every statement kind's title regex against each page's text,
// mirroring the source's GetKeyPages: a page is kept if any title regex
// matches it, and the scan only counts as complete once every statement
// kind has matched at least one page.
func (f *Filter) Scan(pageTexts []string) Result {
	found := make(map[string]bool, len(f.tax.Statements))
	for kind := range f.tax.Statements {
		found[string(kind)] = false
	}

	var keep []int
	for idx, text := range pageTexts {
		isKeyPage := false
		for kind, st := range f.tax.Statements {
			if st.TitleRegex.MatchString(text) {
				found[string(kind)] = true
				isKeyPage = true
			}
		}
		if isKeyPage {
			keep = append(keep, idx+1)
		}
	}

	complete := true
	for _, ok := range found {
		if !ok {
			complete = false
			break
		}
	}

	return Result{KeepPages: keep, Found: found, Complete: complete}
}

// Package taxonomy loads the canonical statement item taxonomy and compiles
// the localized title/item regexes that KeyPagesFilter and StatementMapper
// match against page and row text.
package taxonomy

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/eurostatements/statementcore/pkg/models"
)

//go:embed structures.json
var embeddedFS embed.FS

// resource is the on-disk shape of structures.json: per statement name, an
// ordered list of localized title fragments and an ordered map from
// canonical item name to a list of localized multi-token name fragments.
type resource map[string]struct {
	Titles []string            `json:"titles"`
	Items  orderedItemNames    `json:"items"`
}

// orderedItemNames preserves the JSON object's key order, since item order
// determines FormattedRow.Values insertion order downstream. The value of
// every key is always a flat array of name fragments, so the decode loop
// needs no general-purpose depth tracking.
type orderedItemNames struct {
	Names []string
	Forms map[string][]string
}

func (o *orderedItemNames) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(strings.NewReader(string(data)))
	if tok, err := dec.Token(); err != nil {
		return err
	} else if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("taxonomy: expected object for items")
	}

	o.Forms = map[string][]string{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key := keyTok.(string)

		var names []string
		if err := dec.Decode(&names); err != nil {
			return fmt.Errorf("taxonomy: item %q: %w", key, err)
		}

		o.Names = append(o.Names, key)
		o.Forms[key] = names
	}
	return nil
}

// ItemTaxonomy is one statement type's compiled matching structures.
type ItemTaxonomy struct {
	TitleRegex *regexp.Regexp
	ItemNames  []string // canonical names, in taxonomy declaration order
	ItemRegex  map[string]*regexp.Regexp
}

// Taxonomy is the full compiled canonical taxonomy, one entry per
// statement kind.
type Taxonomy struct {
	Statements map[models.StatementKind]*ItemTaxonomy
}

// Load reads structures.json from path, or from the embedded default
// resource when path is empty, and compiles all title and item regexes.
func Load(path string) (*Taxonomy, error) {
	var data []byte
	var err error
	if path != "" {
		data, err = os.ReadFile(path)
	} else {
		data, err = embeddedFS.ReadFile("structures.json")
	}
	if err != nil {
		return nil, fmt.Errorf("taxonomy: read structures resource: %w", err)
	}

	var res resource
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("taxonomy: parse structures resource: %w", err)
	}

	t := &Taxonomy{Statements: map[models.StatementKind]*ItemTaxonomy{}}
	for _, kind := range models.AllStatementKinds {
		structure, ok := res[string(kind)]
		if !ok {
			return nil, fmt.Errorf("taxonomy: missing statement %q in structures resource", kind)
		}

		titleRegex, err := compileAlternation(structure.Titles, false)
		if err != nil {
			return nil, fmt.Errorf("taxonomy: title regex for %q: %w", kind, err)
		}

		itemRegex := make(map[string]*regexp.Regexp, len(structure.Items.Names))
		for _, name := range structure.Items.Names {
			forms := structure.Items.Forms[name]
			re, err := compileAlternation(forms, true)
			if err != nil {
				return nil, fmt.Errorf("taxonomy: item regex for %q/%q: %w", kind, name, err)
			}
			itemRegex[name] = re
		}

		t.Statements[kind] = &ItemTaxonomy{
			TitleRegex: titleRegex,
			ItemNames:  append([]string(nil), structure.Items.Names...),
			ItemRegex:  itemRegex,
		}
	}
	return t, nil
}

// compileAlternation builds a case-insensitive alternation regex from a list
// of fragments. When tokenize is true, each fragment is split on whitespace
// into tokens, each token wrapped in a capture group, joined by a lazy
// "anything between" so that intervening words (e.g. "of" "the") don't
// break the match; the capture groups are later joined with a space by the
// caller to compute a similarity ratio against the canonical item name.
// When tokenize is false (title fragments), internal whitespace is loosened
// to "one or more whitespace" but the fragment is not captured.
func compileAlternation(fragments []string, tokenize bool) (*regexp.Regexp, error) {
	parts := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		if !tokenize {
			loosened := whitespaceRun.ReplaceAllString(fragment, `\s+`)
			parts = append(parts, loosened)
			continue
		}
		tokens := strings.Fields(fragment)
		captured := make([]string, 0, len(tokens))
		for _, tok := range tokens {
			captured = append(captured, "("+regexp.QuoteMeta(tok)+")")
		}
		parts = append(parts, strings.Join(captured, ".+?"))
	}
	pattern := "(?i)" + strings.Join(parts, "|")
	return regexp.Compile(pattern)
}

var whitespaceRun = regexp.MustCompile(`\s+`)

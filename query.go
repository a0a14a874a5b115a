// ═══════════════════════════════════════════════════════════════════════════════
// QUERY AST + PARSER
// ═══════════════════════════════════════════════════════════════════════════════
// A tagged variant in place of a heterogeneous boxed-query abstraction:
//
//	Query = Term(string) | Phrase([]string) | Boolean([](Occur, Query))
//
// Grammar (whitespace-separated, no nesting of boolean queries):
//
//	query        := term_q | phrase_q | boolean_q
//	term_q       := ALNUM+
//	phrase_q     := '"' (ALNUM+ (WS+ ALNUM+)*)? '"'
//	boolean_q    := boolean_term (WS+ boolean_term)+
//	boolean_term := occur_sign? (term_q | phrase_q)
//	occur_sign   := '+' | '-'
//
// ALNUM is the ASCII-alphanumeric class: no underscores, no Unicode
// letters. The parser succeeds only if the entire input is consumed;
// trailing garbage is an error.
// ═══════════════════════════════════════════════════════════════════════════════

package ember

import "strings"

// Occur tags how a Boolean sub-query participates in matching.
type Occur int

const (
	// Should means the sub-query may or may not match.
	Should Occur = iota
	// Must means the sub-query is required to match.
	Must
	// MustNot means the sub-query must not match.
	MustNot
)

func (o Occur) String() string {
	switch o {
	case Must:
		return "Must"
	case MustNot:
		return "MustNot"
	default:
		return "Should"
	}
}

// Query is the tagged-variant AST produced by Parse: a TermQuery, a
// PhraseQuery, or a BooleanQuery.
type Query interface {
	// Execute runs the query against idx, returning ranked matches.
	Execute(idx *Index) []ScoredDoc
}

// TermQuery matches a single surface term string.
type TermQuery struct {
	Term string
}

// Execute is not yet implemented; term-level relevance scoring beyond
// the disjunctive DAAT merge in Searcher.Search is future work.
func (q *TermQuery) Execute(idx *Index) []ScoredDoc { return nil }

// PhraseQuery matches an ordered sequence of surface term strings
// appearing contiguously in a document.
type PhraseQuery struct {
	Terms []string
}

// Execute is not yet implemented; phrase matching requires a
// positional index the current PostingsList does not carry.
func (q *PhraseQuery) Execute(idx *Index) []ScoredDoc { return nil }

// BooleanOccurrence pairs a sub-query with how it participates in a
// BooleanQuery: Should, Must, or MustNot. Nesting of Boolean inside
// Boolean is not produced by the parser.
type BooleanOccurrence struct {
	Occur Occur
	Query Query
}

// BooleanQuery is an ordered sequence of (Occur, subquery) pairs.
type BooleanQuery struct {
	Clauses []BooleanOccurrence
}

// Execute is not yet implemented; combining Must/Should/MustNot
// clauses requires the same positional/set machinery PhraseQuery does.
func (q *BooleanQuery) Execute(idx *Index) []ScoredDoc { return nil }

// ═══════════════════════════════════════════════════════════════════════════════
// RECURSIVE-DESCENT PARSER
// ═══════════════════════════════════════════════════════════════════════════════

// QueryParser parses query strings per the grammar above. It carries
// no state between calls; its zero value is ready to use.
type QueryParser struct{}

// NewQueryParser returns a ready-to-use QueryParser.
func NewQueryParser() *QueryParser {
	return &QueryParser{}
}

// Parse parses query text into a Query AST. The entire input must be
// consumed for Parse to succeed; trailing garbage, including trailing
// whitespace after a non-whitespace-terminated grammar rule that
// doesn't fully match, produces a *ParseError carrying the unconsumed
// tail.
func (p *QueryParser) Parse(query string) (Query, error) {
	terms, rest, ok := parseBooleanTerms(query)
	if !ok || strings.TrimSpace(rest) != "" {
		return nil, &ParseError{Query: query, Remaining: rest}
	}
	if len(terms) == 0 {
		return nil, &ParseError{Query: query, Remaining: query}
	}
	if len(terms) == 1 {
		// A lone boolean_term with an occur sign only has meaning inside
		// a boolean_q of two or more terms; standing alone it matches
		// neither term_q nor phrase_q, so it is a grammar violation.
		if terms[0].Occur != Should {
			return nil, &ParseError{Query: query, Remaining: query}
		}
		return terms[0].Query, nil
	}
	return &BooleanQuery{Clauses: terms}, nil
}

// Parse is the package-level convenience wrapping NewQueryParser().Parse.
func Parse(query string) (Query, error) {
	return NewQueryParser().Parse(query)
}

// parseBooleanTerms consumes boolean_term (WS+ boolean_term)* greedily
// from s, returning the parsed occurrences and whatever remains
// unconsumed. It never fails outright: an input with zero terms
// returns an empty slice and the original string as the remainder, and
// the caller decides whether that is acceptable.
func parseBooleanTerms(s string) ([]BooleanOccurrence, string, bool) {
	var terms []BooleanOccurrence
	rest := s

	for {
		trimmed := strings.TrimLeft(rest, " \t\n\r")
		consumedWS := len(rest) - len(trimmed)
		if len(terms) > 0 && consumedWS == 0 {
			// boolean_term must be separated by WS+ from the previous one.
			break
		}

		term, after, ok := parseBooleanTerm(trimmed)
		if !ok {
			break
		}
		terms = append(terms, term)
		rest = after
	}

	return terms, rest, true
}

// parseBooleanTerm consumes occur_sign? (term_q | phrase_q) from s.
func parseBooleanTerm(s string) (BooleanOccurrence, string, bool) {
	occur := Should
	rest := s
	if len(rest) > 0 && (rest[0] == '+' || rest[0] == '-') {
		if rest[0] == '+' {
			occur = Must
		} else {
			occur = MustNot
		}
		rest = rest[1:]
	}

	if len(rest) > 0 && rest[0] == '"' {
		terms, after, ok := parsePhraseBody(rest)
		if !ok {
			return BooleanOccurrence{}, s, false
		}
		return BooleanOccurrence{Occur: occur, Query: &PhraseQuery{Terms: terms}}, after, true
	}

	term, after, ok := parseTermBody(rest)
	if !ok {
		return BooleanOccurrence{}, s, false
	}
	return BooleanOccurrence{Occur: occur, Query: &TermQuery{Term: term}}, after, true
}

// parseTermBody consumes term_q := ALNUM+ from s.
func parseTermBody(s string) (string, string, bool) {
	i := 0
	for i < len(s) && isAlnum(s[i]) {
		i++
	}
	if i == 0 {
		return "", s, false
	}
	return s[:i], s[i:], true
}

// parsePhraseBody consumes phrase_q := '"' (ALNUM+ (WS+ ALNUM+)*)? '"'
// from s, which must begin with the opening quote.
func parsePhraseBody(s string) ([]string, string, bool) {
	if len(s) == 0 || s[0] != '"' {
		return nil, s, false
	}
	rest := s[1:]

	var terms []string
	for {
		trimmed := strings.TrimLeft(rest, " \t\n\r")
		consumedWS := len(rest) - len(trimmed)
		if len(terms) > 0 && consumedWS == 0 {
			break
		}
		term, after, ok := parseTermBody(trimmed)
		if !ok {
			break
		}
		terms = append(terms, term)
		rest = after
	}

	if len(rest) == 0 || rest[0] != '"' {
		return nil, s, false
	}
	return terms, rest[1:], true
}

func isAlnum(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

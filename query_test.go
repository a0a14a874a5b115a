package ember

import (
	"errors"
	"testing"
)

func TestParse_BareTerm(t *testing.T) {
	q, err := Parse("abc")
	if err != nil {
		t.Fatalf("Parse(\"abc\") error = %v", err)
	}
	term, ok := q.(*TermQuery)
	if !ok {
		t.Fatalf("Parse(\"abc\") = %T, want *TermQuery", q)
	}
	if term.Term != "abc" {
		t.Errorf("Term = %q, want %q", term.Term, "abc")
	}
}

func TestParse_SingleWordPhrase(t *testing.T) {
	q, err := Parse(`"abc"`)
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}
	phrase, ok := q.(*PhraseQuery)
	if !ok {
		t.Fatalf("Parse(...) = %T, want *PhraseQuery", q)
	}
	if len(phrase.Terms) != 1 || phrase.Terms[0] != "abc" {
		t.Errorf("Terms = %v, want [abc]", phrase.Terms)
	}
}

func TestParse_MultiWordPhrase(t *testing.T) {
	q, err := Parse(`"abc def"`)
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}
	phrase, ok := q.(*PhraseQuery)
	if !ok {
		t.Fatalf("Parse(...) = %T, want *PhraseQuery", q)
	}
	want := []string{"abc", "def"}
	if len(phrase.Terms) != len(want) {
		t.Fatalf("Terms = %v, want %v", phrase.Terms, want)
	}
	for i := range want {
		if phrase.Terms[i] != want[i] {
			t.Errorf("Terms[%d] = %q, want %q", i, phrase.Terms[i], want[i])
		}
	}
}

func TestParse_BooleanDefaultShould(t *testing.T) {
	q, err := Parse("abc def")
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}
	boolean, ok := q.(*BooleanQuery)
	if !ok {
		t.Fatalf("Parse(...) = %T, want *BooleanQuery", q)
	}
	if len(boolean.Clauses) != 2 {
		t.Fatalf("Clauses = %v, want 2 entries", boolean.Clauses)
	}
	for i, want := range []string{"abc", "def"} {
		clause := boolean.Clauses[i]
		if clause.Occur != Should {
			t.Errorf("Clauses[%d].Occur = %v, want Should", i, clause.Occur)
		}
		term, ok := clause.Query.(*TermQuery)
		if !ok || term.Term != want {
			t.Errorf("Clauses[%d].Query = %v, want Term(%q)", i, clause.Query, want)
		}
	}
}

func TestParse_BooleanWithOccurSignsAndPhrase(t *testing.T) {
	q, err := Parse(`+abc -def +"gh ij"`)
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}
	boolean, ok := q.(*BooleanQuery)
	if !ok {
		t.Fatalf("Parse(...) = %T, want *BooleanQuery", q)
	}
	if len(boolean.Clauses) != 3 {
		t.Fatalf("Clauses = %v, want 3 entries", boolean.Clauses)
	}

	wantOccurs := []Occur{Must, MustNot, Must}
	for i, want := range wantOccurs {
		if boolean.Clauses[i].Occur != want {
			t.Errorf("Clauses[%d].Occur = %v, want %v", i, boolean.Clauses[i].Occur, want)
		}
	}

	if term, ok := boolean.Clauses[0].Query.(*TermQuery); !ok || term.Term != "abc" {
		t.Errorf("Clauses[0].Query = %v, want Term(abc)", boolean.Clauses[0].Query)
	}
	if term, ok := boolean.Clauses[1].Query.(*TermQuery); !ok || term.Term != "def" {
		t.Errorf("Clauses[1].Query = %v, want Term(def)", boolean.Clauses[1].Query)
	}
	phrase, ok := boolean.Clauses[2].Query.(*PhraseQuery)
	if !ok || len(phrase.Terms) != 2 || phrase.Terms[0] != "gh" || phrase.Terms[1] != "ij" {
		t.Errorf("Clauses[2].Query = %v, want Phrase([gh ij])", boolean.Clauses[2].Query)
	}
}

func TestParse_TrailingGarbageIsError(t *testing.T) {
	_, err := Parse("abc!")
	if err == nil {
		t.Fatal("Parse(\"abc!\") returned nil error, want *ParseError")
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Parse(\"abc!\") error type = %T, want *ParseError", err)
	}
	if parseErr.Remaining != "!" {
		t.Errorf("Remaining = %q, want %q", parseErr.Remaining, "!")
	}
}

func TestParse_EmptyIsError(t *testing.T) {
	_, err := Parse("")
	if err == nil {
		t.Fatal("Parse(\"\") returned nil error, want *ParseError")
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Parse(\"\") error type = %T, want *ParseError", err)
	}
}

func TestParse_LoneSignedTermIsError(t *testing.T) {
	if _, err := Parse("+abc"); err == nil {
		t.Error("Parse(\"+abc\") returned nil error, want *ParseError")
	}
}

func TestParse_UnterminatedPhraseIsError(t *testing.T) {
	if _, err := Parse(`"abc`); err == nil {
		t.Error(`Parse("\"abc") returned nil error, want *ParseError`)
	}
}

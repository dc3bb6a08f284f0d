// Package normalize cleans extracted page text before keyword matching.
//
// Normalization lowercases the text, deletes every rune that is not an ASCII
// lowercase letter or whitespace, drops English stopwords and replaces each
// remaining token with its dictionary base form. The stopword set and the
// lemmatizer dictionary are loaded once per process and shared read-only.
package normalize

import (
	_ "embed"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed stopwords_en.txt
var stopwordsEN string

// StopwordSet is an immutable set of lowercase words dropped during normalization.
type StopwordSet map[string]struct{}

// ParseStopwords builds a set from newline-separated words.
func ParseStopwords(list string) StopwordSet {
	set := StopwordSet{}
	for _, l := range strings.Split(list, "\n") {
		if w := strings.TrimSpace(l); w != "" {
			set[strings.ToLower(w)] = struct{}{}
		}
	}
	return set
}

// EnglishStopwords returns the embedded English stopword list.
func EnglishStopwords() StopwordSet {
	return ParseStopwords(stopwordsEN)
}

// Contains reports whether w is a stopword.
func (s StopwordSet) Contains(w string) bool {
	_, ok := s[w]
	return ok
}

// Lemmatizer maps a lowercase word to its dictionary base form. A word without
// a known base form is returned unchanged.
type Lemmatizer interface {
	Lemma(word string) string
}

// LemmatizerFunc adapts a plain function to the Lemmatizer interface.
type LemmatizerFunc func(string) string

func (f LemmatizerFunc) Lemma(word string) string { return f(word) }

// Normalizer is safe for concurrent use once constructed.
type Normalizer struct {
	stop  StopwordSet
	lemma Lemmatizer
}

// New creates a Normalizer over the given resources. A nil lemmatizer leaves
// tokens unchanged.
func New(stop StopwordSet, lemma Lemmatizer) *Normalizer {
	if stop == nil {
		stop = StopwordSet{}
	}
	if lemma == nil {
		lemma = LemmatizerFunc(func(w string) string { return w })
	}
	return &Normalizer{stop: stop, lemma: lemma}
}

var defaultNormalizer = sync.OnceValues(func() (*Normalizer, error) {
	lemma, err := NewDictLemmatizer()
	if err != nil {
		return nil, err
	}
	return New(EnglishStopwords(), lemma), nil
})

// Default returns the process-wide normalizer backed by the embedded English
// stopword list and the English lemma dictionary. The resources are loaded on
// first use and reused afterwards.
func Default() (*Normalizer, error) {
	return defaultNormalizer()
}

// Normalize returns the cleaned form of text. Empty or all-punctuation input
// yields "". Normalizing an already normalized string returns it unchanged.
func (n *Normalizer) Normalize(text string) string {
	lower := cases.Lower(language.Und).String(text)

	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		if (r >= 'a' && r <= 'z') || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	tokens := strings.Fields(b.String())
	out := tokens[:0]
	for _, tok := range tokens {
		if n.stop.Contains(tok) {
			continue
		}
		base := n.resolve(tok)
		if n.stop.Contains(base) {
			continue
		}
		out = append(out, base)
	}
	return strings.Join(out, " ")
}

// resolve follows the lemma chain of word until it reaches a fixed point. On a
// cycle the lexicographically smallest member wins so every member of the
// cycle resolves to the same token.
func (n *Normalizer) resolve(word string) string {
	seen := map[string]bool{word: true}
	chain := []string{word}
	cur := word
	for {
		next := n.lemma.Lemma(cur)
		if !isToken(next) || next == cur {
			return cur
		}
		if seen[next] {
			i := indexOf(chain, next)
			best := chain[i]
			for _, w := range chain[i:] {
				if w < best {
					best = w
				}
			}
			return best
		}
		seen[next] = true
		chain = append(chain, next)
		cur = next
	}
}

func isToken(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}

package normalize

import (
	"fmt"
	"strings"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
)

// nounRules are the inflectional suffix detachments tried for nouns.
var nounRules = []struct {
	suffix, repl string
}{
	{"s", ""},
	{"ses", "s"},
	{"xes", "x"},
	{"zes", "z"},
	{"ches", "ch"},
	{"shes", "sh"},
	{"men", "man"},
	{"ies", "y"},
}

// DictLemmatizer lemmatizes words as nouns. A detachment candidate is accepted
// only when the dictionary lists it as a base form of the word, and the
// shortest accepted candidate wins. Verb and adjective inflections are left
// alone so phrases like "machine learning" keep their surface form.
type DictLemmatizer struct {
	dict *golem.Lemmatizer
}

// NewDictLemmatizer loads the English lemma dictionary.
func NewDictLemmatizer() (*DictLemmatizer, error) {
	dict, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("loading lemma dictionary: %w", err)
	}
	return &DictLemmatizer{dict: dict}, nil
}

func (l *DictLemmatizer) Lemma(word string) string {
	if keepsForm(word) {
		return word
	}
	lemmas := l.dict.Lemmas(word)
	if len(lemmas) == 0 || contains(lemmas, word) {
		return word
	}
	best := ""
	for _, r := range nounRules {
		if !strings.HasSuffix(word, r.suffix) {
			continue
		}
		cand := strings.TrimSuffix(word, r.suffix) + r.repl
		if cand == "" || cand == word || !contains(lemmas, cand) {
			continue
		}
		if best == "" || len(cand) < len(best) {
			best = cand
		}
	}
	if best == "" {
		return word
	}
	return best
}

// keepsForm reports words whose trailing "s" is not a plural marker: -ics
// field names ("robotics", "physics") and -ss words ("business", "class").
func keepsForm(word string) bool {
	return strings.HasSuffix(word, "ics") || strings.HasSuffix(word, "ss")
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

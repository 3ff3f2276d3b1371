// Package normalize reduces skill text to a canonical token form used for
// semantic matching: lower-cased, stop-word-filtered, lemmatized, and
// deduplicated by first occurrence.
package normalize

import (
	"log"
	"regexp"
	"strings"
	"sync"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
)

// nonSkillChars matches every character that is not a letter, digit, '+',
// '#', '.' or whitespace. Keeping those four preserves tokens like "c++",
// "c#" and "node.js".
var nonSkillChars = regexp.MustCompile(`[^A-Za-z0-9+#.\s]`)

var (
	lemOnce sync.Once
	lem     *golem.Lemmatizer
)

// lemmatizer returns the process-wide English lemmatizer, loading its
// dictionary on first use. The loaded lemmatizer is read-only and safe for
// concurrent callers.
func lemmatizer() *golem.Lemmatizer {
	lemOnce.Do(func() {
		l, err := golem.New(en.New())
		if err != nil {
			// Tokens pass through unlemmatized; matching still works,
			// just with less recall.
			log.Printf("[normalize] failed to load lemmatizer dictionary: %v", err)
			return
		}
		lem = l
	})
	return lem
}

// lemma reduces a token to its dictionary base form. Tokens missing from
// the dictionary are returned unchanged, which makes lemmas fixed points:
// lemma(lemma(t)) == lemma(t).
func lemma(token string) string {
	l := lemmatizer()
	if l == nil {
		return token
	}
	return l.Lemma(token)
}

// Skills joins an ordered skill list into one text blob and normalizes it.
// A nil or empty list yields the empty string.
func Skills(skills []string) string {
	return Text(strings.Join(skills, " "))
}

// Text normalizes free text into the canonical skill string. The result is
// deterministic for a fixed dictionary version and idempotent:
// Text(Text(s)) == Text(s).
func Text(text string) string {
	cleaned := strings.ToLower(nonSkillChars.ReplaceAllString(text, " "))

	seen := make(map[string]struct{})
	lemmas := make([]string, 0)
	for _, token := range strings.Fields(cleaned) {
		if len(token) <= 1 {
			continue
		}
		if _, stop := stopWords[token]; stop {
			continue
		}
		l := lemma(token)
		if _, dup := seen[l]; dup {
			continue
		}
		seen[l] = struct{}{}
		lemmas = append(lemmas, l)
	}
	return strings.Join(lemmas, " ")
}

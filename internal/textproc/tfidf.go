package textproc

import (
	"math"
	"strings"
	"unicode"
)

// TFIDFScorer weights each sentence by the summed TF-IDF of its terms,
// treating every sentence as a document. Sentences full of rare terms score
// higher than ones made of filler.
type TFIDFScorer struct{}

func (TFIDFScorer) Score(sentences []string) ([]float64, error) {
	if len(sentences) == 0 {
		return nil, nil
	}

	docs := make([]map[string]int, len(sentences))
	df := make(map[string]int)
	for i, s := range sentences {
		counts := make(map[string]int)
		for _, term := range tokenize(s) {
			counts[term]++
		}
		docs[i] = counts
		for term := range counts {
			df[term]++
		}
	}

	n := float64(len(sentences))
	scores := make([]float64, len(sentences))
	for i, counts := range docs {
		total := 0
		for _, c := range counts {
			total += c
		}
		if total == 0 {
			continue
		}
		var sum float64
		for term, c := range counts {
			tf := float64(c) / float64(total)
			idf := math.Log(n/(1.0+float64(df[term]))) + 1.0
			sum += tf * idf
		}
		scores[i] = sum
	}
	return scores, nil
}

// tokenize lowercases and splits on non-alphanumerics, dropping stopwords and
// single characters.
func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := fields[:0]
	for _, f := range fields {
		if len(f) < 2 {
			continue
		}
		if _, ok := stopwords[f]; ok {
			continue
		}
		out = append(out, f)
	}
	return out
}

var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"but": {}, "by": {}, "for": {}, "from": {}, "had": {}, "has": {},
	"have": {}, "he": {}, "her": {}, "his": {}, "if": {}, "in": {},
	"is": {}, "it": {}, "its": {}, "not": {}, "of": {}, "on": {},
	"or": {}, "she": {}, "that": {}, "the": {}, "their": {}, "them": {},
	"then": {}, "there": {}, "these": {}, "they": {}, "this": {}, "to": {},
	"was": {}, "we": {}, "were": {}, "what": {}, "when": {}, "which": {},
	"who": {}, "will": {}, "with": {}, "you": {}, "your": {},
}

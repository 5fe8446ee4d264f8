package textproc

import (
	"fmt"
	"log/slog"
	"sort"
)

// Scorer rates sentences for extractive summarization. Scores are parallel to
// the input; higher is more important.
type Scorer interface {
	Score(sentences []string) ([]float64, error)
}

// UniformScorer gives every sentence the same weight, so selection falls back
// to document order.
type UniformScorer struct{}

func (UniformScorer) Score(sentences []string) ([]float64, error) {
	scores := make([]float64, len(sentences))
	for i := range scores {
		scores[i] = 1.0
	}
	return scores, nil
}

// Summarizer reduces free text to at most K bullet points. The scorer is
// fixed at construction; scoring failures degrade to the leading sentences
// rather than failing the caller.
type Summarizer struct {
	scorer Scorer
	minLen int
	log    *slog.Logger
}

// NewSummarizer builds a summarizer. Sentences shorter than minSentenceLen
// characters are dropped before selection.
func NewSummarizer(scorer Scorer, minSentenceLen int, log *slog.Logger) *Summarizer {
	if scorer == nil {
		scorer = UniformScorer{}
	}
	return &Summarizer{scorer: scorer, minLen: minSentenceLen, log: log}
}

// Summarize returns up to maxBullets cleaned sentences in their original
// document order. It never fails: empty or whitespace input yields nil, and
// scorer errors fall back to the first maxBullets sentences.
func (s *Summarizer) Summarize(text string, maxBullets int) []string {
	if maxBullets <= 0 {
		return nil
	}

	var sentences []string
	for _, sent := range SplitSentences(text) {
		if len(sent) >= s.minLen {
			sentences = append(sentences, sent)
		}
	}
	if len(sentences) == 0 {
		return nil
	}
	if len(sentences) <= maxBullets {
		return cleanAll(sentences)
	}

	scores, err := score(s.scorer, sentences)
	if err != nil {
		s.log.Warn("sentence scoring failed, using leading sentences", "error", err)
		return cleanAll(sentences[:maxBullets])
	}

	// Rank by score, earlier sentence winning ties, then restore document
	// order for the selected set.
	order := make([]int, len(sentences))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})
	selected := order[:maxBullets]
	sort.Ints(selected)

	out := make([]string, 0, maxBullets)
	for _, i := range selected {
		out = append(out, sentences[i])
	}
	return cleanAll(out)
}

// score shields the summarizer from a misbehaving scorer implementation.
func score(sc Scorer, sentences []string) (scores []float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("scorer panic: %v", r)
		}
	}()
	scores, err = sc.Score(sentences)
	if err != nil {
		return nil, err
	}
	if len(scores) != len(sentences) {
		return nil, fmt.Errorf("scorer returned %d scores for %d sentences", len(scores), len(sentences))
	}
	return scores, nil
}

func cleanAll(sentences []string) []string {
	out := make([]string, 0, len(sentences))
	for _, s := range sentences {
		if c := CleanBullet(s); c != "" {
			out = append(out, c)
		}
	}
	return out
}

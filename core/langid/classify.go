package langid

import (
	"fmt"
	"strings"
)

// Strategy selects how a Classifier turns word matches into a language.
type Strategy string

const (
	// StrategyMajority picks the language knowing the most words.
	StrategyMajority Strategy = "majority"
	// StrategyElimination narrows the candidate languages word by word.
	StrategyElimination Strategy = "elimination"
)

// ParseStrategy maps a config value to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case StrategyMajority, "":
		return StrategyMajority, nil
	case StrategyElimination:
		return StrategyElimination, nil
	default:
		return "", fmt.Errorf("unknown classification strategy %q", s)
	}
}

// Paragraph is an ordered sequence of words with the language assigned to
// it. Lang is "" while unknown.
type Paragraph struct {
	Words []string
	Lang  string
}

// Text joins the paragraph's words with single spaces.
func (p Paragraph) Text() string {
	return strings.Join(p.Words, " ")
}

// Classifier assigns languages to paragraphs.
type Classifier struct {
	Table    *Table
	Strategy Strategy
	// DefaultLang answers single-word paragraphs that several languages know.
	DefaultLang string
	// PrimaryLang wins multi-word ties when it is among the tied languages.
	PrimaryLang string
}

// Classify returns the language of words. lastLang is the language of the
// previous paragraph and is returned when the words give no evidence.
func (c *Classifier) Classify(words []string, lastLang string) string {
	if c.Strategy == StrategyElimination {
		return c.eliminate(words, lastLang)
	}
	return c.majority(words, lastLang)
}

func (c *Classifier) majority(words []string, lastLang string) string {
	total, counts := c.Table.Counts(words)
	if total == 0 {
		return lastLang
	}

	max := 0
	for _, code := range c.Table.codes {
		if counts[code] > max {
			max = counts[code]
		}
	}
	if max == 0 {
		return lastLang
	}

	var tied []string
	for _, code := range c.Table.codes {
		if counts[code] == max {
			tied = append(tied, code)
		}
	}
	if len(tied) == 1 {
		return tied[0]
	}
	if total == 1 {
		return c.DefaultLang
	}
	for _, code := range tied {
		if code == c.PrimaryLang {
			return code
		}
	}
	return tied[0]
}

func (c *Classifier) eliminate(words []string, lastLang string) string {
	var candidates []string
	for _, w := range words {
		matches := c.Table.Matches(w)
		switch len(matches) {
		case 0:
			continue
		case 1:
			return matches[0]
		}
		if candidates == nil {
			candidates = matches
			continue
		}
		narrowed := intersect(candidates, matches)
		if len(narrowed) == 0 {
			// Disjoint evidence; keep what we had.
			continue
		}
		candidates = narrowed
		if len(candidates) == 1 {
			return candidates[0]
		}
	}
	if len(candidates) == 0 {
		return lastLang
	}
	for _, code := range candidates {
		if code == lastLang {
			return code
		}
	}
	return candidates[0]
}

// intersect keeps the elements of a that are also in b, in a's order.
func intersect(a, b []string) []string {
	var out []string
	for _, x := range a {
		for _, y := range b {
			if x == y {
				out = append(out, x)
				break
			}
		}
	}
	return out
}

// ClassifyAll assigns a language to every paragraph in order, carrying the
// last known language forward. Paragraphs without words keep Lang "" and
// reset the carried language, as a blank paragraph breaks the run.
func (c *Classifier) ClassifyAll(paragraphs []Paragraph) {
	last := ""
	for i := range paragraphs {
		if len(paragraphs[i].Words) == 0 {
			paragraphs[i].Lang = ""
			last = ""
			continue
		}
		paragraphs[i].Lang = c.Classify(paragraphs[i].Words, last)
		last = paragraphs[i].Lang
	}
}

package assistant

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jkruckivey/assessments/internal/core"
)

const (
	// MaxContextDocuments is how many documents Score returns at most.
	MaxContextDocuments = 3

	minTokenLength = 4
	contentWeight  = 2
	titleWeight    = 3
	topicWeight    = 5
)

// DocumentSource is the read side of the knowledge store, in a stable order.
type DocumentSource interface {
	Documents() []core.Document
}

type topic struct {
	name  string
	terms []string
}

// topics doubles as trigger list (query side) and match list (document side).
var topics = []topic{
	{"udl", []string{"universal design", "accessibility", "multiple means"}},
	{"quality matters", []string{"qm", "quality matters", "standards"}},
	{"inclusive", []string{"inclusive", "diversity", "cultural"}},
	{"assessment", []string{"assessment", "evaluation", "quiz", "test", "rubric"}},
	{"ai", []string{"artificial intelligence", "ai", "prompt", "claude"}},
	{"prompt", []string{"prompt", "template", "example"}},
}

// Score returns up to MaxContextDocuments documents relevant to query, best first.
func Score(query string, source DocumentSource) []core.Document {
	scored := ScoreDocuments(query, source)
	if len(scored) > MaxContextDocuments {
		scored = scored[:MaxContextDocuments]
	}

	docs := make([]core.Document, 0, len(scored))
	for _, sd := range scored {
		docs = append(docs, sd.Document)
	}
	return docs
}

// ScoreDocuments scores every document against query and returns those with a
// positive score, highest first. Equal scores keep the source order.
func ScoreDocuments(query string, source DocumentSource) []core.ScoredDocument {
	if source == nil {
		return nil
	}

	q := strings.ToLower(query)
	tokens := queryTokens(q)
	activeTopics := triggeredTopics(q)

	var scored []core.ScoredDocument
	for _, doc := range source.Documents() {
		if s := scoreDocument(tokens, activeTopics, doc); s > 0 {
			scored = append(scored, core.ScoredDocument{Score: s, Document: doc})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

func scoreDocument(tokens []string, activeTopics []topic, doc core.Document) int {
	content := strings.ToLower(doc.Content)
	title := strings.ToLower(doc.Title)

	score := 0
	for _, tok := range tokens {
		if strings.Contains(content, tok) {
			score += contentWeight
		}
		if strings.Contains(title, tok) {
			score += titleWeight
		}
	}

	for _, t := range activeTopics {
		if containsAny(content, t.terms) {
			score += topicWeight
		}
	}
	return score
}

// queryTokens keeps the whitespace-separated words longer than three characters.
// Duplicates count once per occurrence.
func queryTokens(lowerQuery string) []string {
	var tokens []string
	for _, w := range strings.Fields(lowerQuery) {
		if utf8.RuneCountInString(w) >= minTokenLength {
			tokens = append(tokens, w)
		}
	}
	return tokens
}

func triggeredTopics(lowerQuery string) []topic {
	var active []topic
	for _, t := range topics {
		if containsAny(lowerQuery, t.terms) {
			active = append(active, t)
		}
	}
	return active
}

func containsAny(s string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}

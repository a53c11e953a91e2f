package article

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Expected shape of a generated article
const (
	TitleCount = 5
	TagCount   = 6
	MaxScore   = 10
)

var (
	// ErrNoJSON is returned when the reply contains no JSON object
	ErrNoJSON = errors.New("no JSON found in response")

	// ErrInvalidArticle is returned when the JSON does not describe an article
	ErrInvalidArticle = errors.New("invalid article")
)

// Title is a candidate headline scored 0-10
type Title struct {
	Title string  `json:"title"`
	Score float64 `json:"score"`
}

// Article is the structured reply requested by BuildPrompt
type Article struct {
	Titles  []Title  `json:"titles"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

type rawTitle struct {
	Title string   `json:"title"`
	Score *float64 `json:"score"`
}

type rawArticle struct {
	Titles  []rawTitle `json:"titles"`
	Content string     `json:"content"`
	Tags    []string   `json:"tags"`
}

// ParseArticle extracts the JSON object embedded in a model reply and checks
// it has five scored titles, non-empty content and six tags. Text around the
// object (prose, code fences) is ignored.
func ParseArticle(text string) (*Article, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return nil, ErrNoJSON
	}

	var raw rawArticle
	if err := json.Unmarshal([]byte(text[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArticle, err)
	}

	if len(raw.Titles) != TitleCount {
		return nil, fmt.Errorf("%w: want %d titles, got %d", ErrInvalidArticle, TitleCount, len(raw.Titles))
	}
	if raw.Content == "" {
		return nil, fmt.Errorf("%w: missing content", ErrInvalidArticle)
	}
	if len(raw.Tags) != TagCount {
		return nil, fmt.Errorf("%w: want %d tags, got %d", ErrInvalidArticle, TagCount, len(raw.Tags))
	}

	out := &Article{
		Titles:  make([]Title, 0, TitleCount),
		Content: raw.Content,
		Tags:    raw.Tags,
	}
	for i, t := range raw.Titles {
		if t.Title == "" || t.Score == nil || *t.Score < 0 || *t.Score > MaxScore {
			return nil, fmt.Errorf("%w: title %d", ErrInvalidArticle, i+1)
		}
		out.Titles = append(out.Titles, Title{Title: t.Title, Score: *t.Score})
	}
	return out, nil
}

// BestTitle returns the highest scored title, the first one on ties
func (a *Article) BestTitle() Title {
	best := a.Titles[0]
	for _, t := range a.Titles[1:] {
		if t.Score > best.Score {
			best = t
		}
	}
	return best
}

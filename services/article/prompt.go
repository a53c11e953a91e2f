// Package article builds article-writing prompts and parses the structured
// article a model returns for them.
package article

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"
)

// Defaults used when an option is left empty
const (
	DefaultArticleLength = "medium"
	DefaultWritingStyle  = "professional"
	DefaultArticleType   = "blog"
	DefaultLanguage      = "zh-CN"
)

//go:embed prompt_template.md
var promptTemplateText string

var promptTemplate = template.Must(template.New("prompt").Parse(promptTemplateText))

var lengthLabels = map[string]string{
	"short":  "短文(300-500字)",
	"medium": "中篇(800-1500字)",
	"long":   "长文(2000字以上)",
}

var styleLabels = map[string]string{
	"article":   "正式专业",
	"blog":      "轻松随意",
	"report":    "学术严谨",
	"creative":  "创意文学",
	"marketing": "营销推广",
}

var typeLabels = map[string]string{
	"blog":     "博客文章",
	"news":     "新闻稿",
	"product":  "产品描述",
	"seo":      "SEO文章",
	"tutorial": "教程指南",
}

var languageLabels = map[string]string{
	"zh-CN": "简体中文",
	"zh-TW": "繁體中文",
	"en":    "English",
	"ja":    "日本語",
	"ko":    "한국어",
	"fr":    "Français",
	"de":    "Deutsch",
	"es":    "Español",
}

// PromptOptions describe the article to request
type PromptOptions struct {
	Keywords      string `json:"keywords"`
	ArticleLength string `json:"articleLength"`
	WritingStyle  string `json:"writingStyle"`
	ArticleType   string `json:"articleType"`
	Language      string `json:"language"`
}

// WithDefaults fills empty options
func (o PromptOptions) WithDefaults() PromptOptions {
	if o.ArticleLength == "" {
		o.ArticleLength = DefaultArticleLength
	}
	if o.WritingStyle == "" {
		o.WritingStyle = DefaultWritingStyle
	}
	if o.ArticleType == "" {
		o.ArticleType = DefaultArticleType
	}
	if o.Language == "" {
		o.Language = DefaultLanguage
	}
	return o
}

// BuildPrompt renders the article prompt. Known option keys are replaced by
// their labels; unknown values are inserted as given.
func BuildPrompt(opts PromptOptions) (string, error) {
	opts = opts.WithDefaults()

	data := PromptOptions{
		Keywords:      opts.Keywords,
		ArticleLength: label(lengthLabels, opts.ArticleLength),
		WritingStyle:  label(styleLabels, opts.WritingStyle),
		ArticleType:   label(typeLabels, opts.ArticleType),
		Language:      label(languageLabels, opts.Language),
	}

	var sb strings.Builder
	if err := promptTemplate.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render prompt template: %w", err)
	}
	return sb.String(), nil
}

func label(labels map[string]string, key string) string {
	if v, ok := labels[key]; ok {
		return v
	}
	return key
}

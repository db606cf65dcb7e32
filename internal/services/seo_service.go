package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/yoockh/coachify/internal/providers/llm"
)

const seoPromptTemplate = `As an SEO expert, optimize this content for social media and search engines:
%CONTENT%

Please provide:
1. SEO-optimized version with relevant keywords
2. Facebook-optimized version (engaging, shareable)
3. Key hashtags (max 5, comma-separated)
4. Meta description (under 160 characters)
5. Suggested image description for better accessibility

Format the response exactly as follows:
SEO_VERSION: [optimized content]
FACEBOOK_VERSION: [facebook content]
HASHTAGS: [comma-separated hashtags]
META_DESCRIPTION: [meta description]
IMAGE_ALT: [image description]`

const (
	sectionSEO      = "SEO_VERSION"
	sectionFacebook = "FACEBOOK_VERSION"
	sectionHashtags = "HASHTAGS"
	sectionMeta     = "META_DESCRIPTION"
	sectionImageAlt = "IMAGE_ALT"

	metaMaxLen = 160
)

var seoSections = map[string]bool{
	sectionSEO:      true,
	sectionFacebook: true,
	sectionHashtags: true,
	sectionMeta:     true,
	sectionImageAlt: true,
}

type OptimizedContent struct {
	Original        string   `json:"original"`
	SEOContent      string   `json:"seo_optimized"`
	FacebookContent string   `json:"-"`
	Hashtags        []string `json:"hashtags"`
	MetaDescription string   `json:"meta_description"`
	ImageAlt        string   `json:"-"`
}

type SEOService interface {
	// Optimize always returns usable content. A non-nil error means the
	// model call failed and the fallback derived from content was used.
	Optimize(ctx context.Context, content string) (OptimizedContent, error)
}

type seoService struct {
	llm llm.Provider
}

func NewSEOService(p llm.Provider) SEOService {
	return &seoService{llm: p}
}

func (s *seoService) Optimize(ctx context.Context, content string) (OptimizedContent, error) {
	out, err := s.llm.Complete(ctx, llm.Request{
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: strings.Replace(seoPromptTemplate, "%CONTENT%", content, 1)}},
		Temperature: 0.7,
	})
	if err != nil {
		return fallbackSEO(content), err
	}
	return parseSEO(content, out), nil
}

// parseSEO splits "HEADER: value" sections. Lines that are not a known
// header continue the current section; text before the first header is
// discarded.
func parseSEO(original, text string) OptimizedContent {
	sections := make(map[string]string)
	var current string
	var buf []string

	flush := func() {
		if current != "" {
			sections[current] = strings.TrimSpace(strings.Join(buf, "\n"))
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if header, value, ok := strings.Cut(line, ":"); ok {
			h := strings.ToUpper(strings.TrimSpace(header))
			if seoSections[h] {
				flush()
				current = h
				buf = []string{strings.TrimSpace(value)}
				continue
			}
		}
		if current != "" {
			buf = append(buf, line)
		}
	}
	flush()

	oc := OptimizedContent{
		Original:        original,
		SEOContent:      original,
		FacebookContent: original,
		Hashtags:        splitHashtags(sections[sectionHashtags]),
		MetaDescription: sections[sectionMeta],
		ImageAlt:        sections[sectionImageAlt],
	}
	if v, ok := sections[sectionSEO]; ok {
		oc.SEOContent = v
	}
	if v, ok := sections[sectionFacebook]; ok {
		oc.FacebookContent = v
	}
	return oc
}

func splitHashtags(s string) []string {
	tags := []string{}
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func fallbackSEO(content string) OptimizedContent {
	meta := content
	if utf8.RuneCountInString(content) > metaMaxLen {
		meta = string([]rune(content)[:metaMaxLen-3]) + "..."
	}
	return OptimizedContent{
		Original:        content,
		SEOContent:      content,
		FacebookContent: content,
		Hashtags:        []string{},
		MetaDescription: meta,
	}
}

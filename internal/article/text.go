package article

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

const (
	// MetaDescriptionLimit is the maximum rune length of a derived meta description.
	MetaDescriptionLimit = 155
	fallbackTitleWords   = 12
)

var (
	markdownHeading = regexp.MustCompile(`(?m)^[ \t]*#+[ \t]*(.+?)[ \t#]*$`)
	htmlHeading     = regexp.MustCompile(`(?is)<h1[^>]*>(.*?)</h1>`)

	strictPolicy = bluemonday.StrictPolicy()
)

// PlainText renders markup as text: tags are removed, entities decoded, script and style dropped.
func PlainText(markup string) string {
	if strings.TrimSpace(markup) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return strictPolicy.Sanitize(markup)
	}
	doc.Find("script, style").Remove()
	return strings.TrimSpace(doc.Text())
}

// StripTags removes markup from a single line such as a title or headline.
func StripTags(s string) string {
	return strings.Join(strings.Fields(PlainText(s)), " ")
}

// ExtractTitle picks the article title from generated text. A leading markdown heading or an <h1> wins;
// otherwise the topic is used, and when that is empty too the first words of the text.
func ExtractTitle(raw, topic string) string {
	if m := markdownHeading.FindStringSubmatch(raw); m != nil {
		if title := StripTags(m[1]); title != "" {
			return title
		}
	}
	if m := htmlHeading.FindStringSubmatch(raw); m != nil {
		if title := StripTags(m[1]); title != "" {
			return title
		}
	}
	if topic = strings.TrimSpace(topic); topic != "" {
		return topic
	}

	words := strings.Fields(PlainText(raw))
	if len(words) > fallbackTitleWords {
		words = words[:fallbackTitleWords]
	}
	return strings.Join(words, " ")
}

// MetaDescription collapses the whitespace of the text rendering and cuts it to MetaDescriptionLimit runes.
func MetaDescription(raw string) string {
	text := strings.Join(strings.Fields(PlainText(raw)), " ")
	return truncateRunes(text, MetaDescriptionLimit)
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit])
}

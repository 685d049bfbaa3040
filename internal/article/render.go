package article

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	blankLines     = regexp.MustCompile(`\n(?:[ \t]*\n)+`)
	headingLine    = regexp.MustCompile(`^(#{1,6})[ \t]+(.+?)[ \t#]*$`)
	blockTagPrefix = regexp.MustCompile(`(?i)^<(h[1-6]|p|ul|ol|li|table|thead|tbody|tr|blockquote|pre|div|section|figure|hr)[\s>/]`)

	bodyPolicy = bluemonday.UGCPolicy()
)

// RenderBody turns generated text into sanitized HTML. Markdown headings become <hN> elements,
// blank-line separated blocks become paragraphs with <br /> for single line breaks, and blocks that
// already start with a block-level tag are kept as they are.
func RenderBody(raw string) string {
	text := strings.ReplaceAll(raw, "\r\n", "\n")
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	var out strings.Builder
	for _, block := range blankLines.Split(text, -1) {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		out.WriteString(renderBlock(block))
		out.WriteString("\n")
	}

	return strings.TrimSpace(bodyPolicy.Sanitize(out.String()))
}

func renderBlock(block string) string {
	if blockTagPrefix.MatchString(block) {
		return block
	}

	var (
		out       strings.Builder
		paragraph []string
	)
	flush := func() {
		if len(paragraph) == 0 {
			return
		}
		out.WriteString("<p>")
		out.WriteString(strings.Join(paragraph, "<br />\n"))
		out.WriteString("</p>\n")
		paragraph = paragraph[:0]
	}

	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if m := headingLine.FindStringSubmatch(line); m != nil {
			flush()
			fmt.Fprintf(&out, "<h%d>%s</h%d>\n", len(m[1]), m[2], len(m[1]))
			continue
		}
		paragraph = append(paragraph, line)
	}
	flush()

	return strings.TrimSuffix(out.String(), "\n")
}

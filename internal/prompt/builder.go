package prompt

import (
	"fmt"
	"strings"
)

// SystemInstruction sets the writer persona for every generation call.
const SystemInstruction = "You are a senior SEO writer producing clear, human-friendly, well-structured articles for the web hosting industry."

// HeadlineHeader introduces the competitor headline block.
const HeadlineHeader = "Recent competitor headlines:"

const maxHeadlines = 10

// Build composes the user prompt for one topic. Output depends only on the arguments.
func Build(topic, brand string, minWords int, competitorHeadlines []string) string {
	var b strings.Builder

	b.WriteString("Write a clear, human-friendly, well-structured SEO article. Readability matters: use short paragraphs, simple sentences, bullet lists where helpful, and subheadings. Make it informative and authoritative for the web hosting industry.\n\n")
	fmt.Fprintf(&b, "Title: %s\n\n", topic)
	fmt.Fprintf(&b, "Include: an intro (2-3 short paragraphs), 4-6 H2 sections with H3 subsections where helpful, a comparison table if applicable, a short FAQ (3 Q&A), conclusion with an internal CTA to sign up for %s, and a TL;DR summary at the top.\n\n", brand)
	fmt.Fprintf(&b, "Target length: %d words. Tone: human, expert yet friendly. Avoid copying competitor headlines verbatim. If this topic is a direct comparison, include balanced pros/cons and a clear recommendation.\n\n", minWords)

	if len(competitorHeadlines) > 0 {
		headlines := competitorHeadlines[:min(len(competitorHeadlines), maxHeadlines)]
		b.WriteString(HeadlineHeader)
		b.WriteString("\n- ")
		b.WriteString(strings.Join(headlines, "\n- "))
		b.WriteString("\n\n")
	}

	b.WriteString(`Write the article in plain English, easy to scan, with clear formatting markers (use headings). Also provide a 155-character meta description and 5 keyword suggestions at the end in JSON format like: {"meta":"...","keywords":[...]}`)
	return b.String()
}

package services

import (
	"regexp"
	"strings"
)

const (
	coverLetterOpen  = `<div class="cover-letter-preview font-sans text-slate-800 leading-relaxed" style="width: 100%; height: auto; padding: 20mm; box-sizing: border-box; background: white; margin: 0; display: block;">`
	coverLetterClose = `</div>`
	listOpen         = `<ul class="list-disc pl-5 mb-4">`
	listClose        = `</ul>`
)

var (
	boldPattern     = regexp.MustCompile(`\*\*(.*?)\*\*`)
	listItemPattern = regexp.MustCompile(`(?m)^\* (.*)$`)
	listRunPattern  = regexp.MustCompile(`(?s)<li>.*</li>`)
)

// ParseMarkdownToHTML turns prose returned by the model into page markup.
// It handles bold spans, a single run of "* " list items and blank-line
// paragraphs. Nested lists and malformed markdown are not handled.
func ParseMarkdownToHTML(md string) string {
	html := boldPattern.ReplaceAllString(md, "<strong>$1</strong>")
	html = listItemPattern.ReplaceAllString(html, "<li>$1</li>")

	if loc := listRunPattern.FindStringIndex(html); loc != nil {
		html = html[:loc[0]] + listOpen + html[loc[0]:loc[1]] + listClose + html[loc[1]:]
	}

	var body strings.Builder
	for _, segment := range strings.Split(html, "\n\n") {
		if strings.TrimSpace(segment) == "" {
			continue
		}
		if strings.Contains(segment, "<li>") {
			body.WriteString(segment)
			continue
		}
		body.WriteString(`<p class="mb-4">`)
		body.WriteString(strings.TrimSpace(segment))
		body.WriteString(`</p>`)
	}

	return coverLetterOpen + body.String() + coverLetterClose
}

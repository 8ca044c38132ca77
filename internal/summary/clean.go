package summary

import "regexp"

// MaxTextChars caps how much extracted text is passed downstream.
// Anything past it is replaced with a truncation marker.
const MaxTextChars = 100000

var (
	multiNewlineRe = regexp.MustCompile(`\n{3,}`)
	multiSpaceRe   = regexp.MustCompile(` {2,}`)
	pageNumberRe   = regexp.MustCompile(`\n\d+\n`)
	boilerplateRe  = regexp.MustCompile(`(?m)^.*(Electronic copy available at|Downloaded from).*$`)
	urlRe          = regexp.MustCompile(`https?://\S+`)
)

// CleanText strips the extraction noise common in academic PDFs:
// repeated blank lines, runs of spaces, bare page numbers, SSRN-style
// boilerplate lines, and inline URLs.
func CleanText(text string) string {
	text = boilerplateRe.ReplaceAllString(text, "")
	text = urlRe.ReplaceAllString(text, "")
	text = pageNumberRe.ReplaceAllString(text, "\n")
	text = multiSpaceRe.ReplaceAllString(text, " ")
	text = multiNewlineRe.ReplaceAllString(text, "\n\n")
	return text
}

// Truncate cuts text at MaxTextChars and appends a marker so the
// model knows the tail is missing.
func Truncate(text string) string {
	if len(text) <= MaxTextChars {
		return text
	}
	return text[:MaxTextChars] + "\n\n[TRUNCATED]"
}

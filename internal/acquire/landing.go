package acquire

import (
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// findPDFMetaURL scans an HTML landing page for the citation_pdf_url
// meta tag that most publisher and repository pages carry. The result
// is resolved against the page URL when relative. Returns "" when the
// page has no such tag.
func findPDFMetaURL(r io.Reader, pageURL string) string {
	doc, err := html.Parse(r)
	if err != nil {
		return ""
	}

	var pdfURL string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if pdfURL != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "meta" {
			var name, content string
			for _, a := range n.Attr {
				switch a.Key {
				case "name":
					name = a.Val
				case "content":
					content = a.Val
				}
			}
			if name == "citation_pdf_url" && content != "" {
				pdfURL = content
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if pdfURL == "" {
		return ""
	}
	if strings.HasPrefix(pdfURL, "http://") || strings.HasPrefix(pdfURL, "https://") {
		return pdfURL
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(pdfURL)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

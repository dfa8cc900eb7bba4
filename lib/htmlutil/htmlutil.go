package htmlutil

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

var innerWhitespace = regexp.MustCompile(`\s\s+`)

// collapses runs of whitespace and strips non-printable characters,
// the usual cleanup for scraped visible text.
func CleanText(s string) string {
	printable := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) || c == ' ' || c == '\n' || c == '\t' {
			printable.WriteRune(c)
		}
	}
	out := innerWhitespace.ReplaceAllString(printable.String(), " ")
	return strings.Trim(out, " \t\n")
}

// extracts the visible text of a document, dropping script, style and
// chrome elements that carry no copy.
func VisibleText(doc *goquery.Document) string {
	clone := doc.Selection.Clone()
	clone.Find("script, style, nav, footer, noscript").Remove()
	return CleanText(clone.Text())
}

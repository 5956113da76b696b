// Package pdfxml reads the XML produced by pdftohtml -xml. Only the text
// nodes under /pdf2xml/page are kept, in document order.
package pdfxml

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/xhad/ltcc/internal/models"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

const (
	TextPath = "/pdf2xml/page/text"
	BoldPath = "/pdf2xml/page/text/b"

	// DefaultMinBold is the bold node count below which a document is
	// assumed to have lost its emphasis markup during conversion.
	DefaultMinBold = 50
)

// ErrIllegalChars is set on a Document whose input held bytes that are not
// allowed in XML. Those bytes were dropped before parsing.
var ErrIllegalChars = errors.New("document contains characters not allowed in XML")

var encodingDecl = regexp.MustCompile(`^\s*<\?xml[^>]*encoding\s*=\s*["']([A-Za-z0-9._:-]+)["']`)

// Document is the text content of one converted report.
type Document struct {
	Text models.Sequence
	Bold models.Sequence

	// Recovered is set when the input had to be repaired: illegal characters
	// were dropped (Err matches ErrIllegalChars), or the XML was malformed and
	// only the nodes read before the error are present. Err holds the cause.
	Recovered bool
	Err       error
}

// Select returns the bold nodes when there are at least minBold of them,
// otherwise every text node.
func (d Document) Select(minBold int) models.Sequence {
	if len(d.Bold) >= minBold {
		return d.Bold
	}
	return d.Text
}

func LoadFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, err
	}
	defer f.Close()
	return Load(f)
}

// Load parses r leniently. Malformed input never fails the load; only a read
// error on r does.
func Load(r io.Reader) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read document: %w", err)
	}

	data, cleaned := clean(data)
	var cleanErr error
	if cleaned {
		cleanErr = ErrIllegalChars
	}

	root, err := xmlquery.ParseWithOptions(bytes.NewReader(data), xmlquery.ParserOptions{
		Decoder: &xmlquery.DecoderOptions{
			Strict: false,
			Entity: xml.HTMLEntity,
		},
	})
	if err != nil {
		text, bold := recoverNodes(data)
		return Document{Text: text, Bold: bold, Recovered: true, Err: errors.Join(cleanErr, err)}, nil
	}

	return Document{
		Text:      collect(xmlquery.Find(root, TextPath)),
		Bold:      collect(xmlquery.Find(root, BoldPath)),
		Recovered: cleaned,
		Err:       cleanErr,
	}, nil
}

// clean drops what the XML decoder would stop on: ill-formed UTF-8 becomes
// U+FFFD and runes outside the XML Char production are removed. Documents
// declaring a single-byte encoding only lose their C0 control bytes.
func clean(data []byte) ([]byte, bool) {
	if !isUTF8(declaredEncoding(data)) {
		return stripControlBytes(data)
	}

	t := transform.Chain(runes.ReplaceIllFormed(), runes.Remove(runes.Predicate(notXMLChar)))
	out, _, err := transform.Bytes(t, data)
	if err != nil {
		return data, false
	}
	return out, !bytes.Equal(out, data)
}

func notXMLChar(r rune) bool {
	switch {
	case r == 0x09, r == 0x0A, r == 0x0D:
		return false
	case r >= 0x20 && r <= 0xD7FF:
		return false
	case r >= 0xE000 && r <= 0xFFFD:
		return false
	case r >= 0x10000 && r <= 0x10FFFF:
		return false
	}
	return true
}

func stripControlBytes(data []byte) ([]byte, bool) {
	out := make([]byte, 0, len(data))
	for _, b := range data {
		if b < 0x20 && b != 0x09 && b != 0x0A && b != 0x0D {
			continue
		}
		out = append(out, b)
	}
	return out, len(out) != len(data)
}

func declaredEncoding(data []byte) string {
	if len(data) > 256 {
		data = data[:256]
	}
	if m := encodingDecl.FindSubmatch(data); m != nil {
		return string(m[1])
	}
	return ""
}

func isUTF8(label string) bool {
	switch strings.ToLower(label) {
	case "", "utf-8", "utf8":
		return true
	}
	return false
}

func collect(nodes []*xmlquery.Node) models.Sequence {
	seq := make(models.Sequence, len(nodes))
	for i, n := range nodes {
		seq[i] = leadingText(n)
	}
	return seq
}

// leadingText is the character data before n's first child element.
func leadingText(n *xmlquery.Node) models.Node {
	var node models.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != xmlquery.TextNode && c.Type != xmlquery.CharDataNode {
			break
		}
		node.Text += c.Data
		node.Valid = true
	}
	return node
}

// recoverNodes walks the token stream until the first error and keeps every
// text node started before it.
func recoverNodes(data []byte) (text, bold models.Sequence) {
	d := xml.NewDecoder(bytes.NewReader(data))
	d.Strict = false
	d.Entity = xml.HTMLEntity
	d.CharsetReader = charset.NewReaderLabel

	var (
		stack []string
		// node whose leading text is being read, and its element depth
		open  *models.Sequence
		idx   int
		depth int
	)

	for {
		tok, err := d.Token()
		if err != nil {
			return text, bold
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if open != nil && len(stack) == depth {
				open = nil
			}
			stack = append(stack, t.Name.Local)
			switch {
			case matches(stack, "pdf2xml", "page", "text"):
				text = append(text, models.Node{})
				open, idx, depth = &text, len(text)-1, len(stack)
			case matches(stack, "pdf2xml", "page", "text", "b"):
				bold = append(bold, models.Node{})
				open, idx, depth = &bold, len(bold)-1, len(stack)
			}
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			if open != nil && len(stack) < depth {
				open = nil
			}
		case xml.CharData:
			if open != nil && len(stack) == depth {
				(*open)[idx].Text += string(t)
				(*open)[idx].Valid = true
			}
		case xml.Comment:
			if open != nil && len(stack) == depth {
				open = nil
			}
		}
	}
}

func matches(stack []string, path ...string) bool {
	if len(stack) != len(path) {
		return false
	}
	for i := range path {
		if stack[i] != path[i] {
			return false
		}
	}
	return true
}

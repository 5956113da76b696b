package models

// Node is one text fragment of a pdf2xml document. Valid is false when the
// element carried no leading text.
type Node struct {
	Text  string
	Valid bool
}

// Sequence is an ordered run of text nodes. Extraction reads values at fixed
// offsets from a matched label, so order is significant.
type Sequence []Node

// NewSequence builds a Sequence in which every node has text.
func NewSequence(texts ...string) Sequence {
	seq := make(Sequence, len(texts))
	for i, t := range texts {
		seq[i] = Node{Text: t, Valid: true}
	}
	return seq
}

// Text returns the raw text at i, or false when i is out of range or the
// node has no text.
func (s Sequence) Text(i int) (string, bool) {
	if i < 0 || i >= len(s) || !s[i].Valid {
		return "", false
	}
	return s[i].Text, true
}

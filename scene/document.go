package scene

import (
	"io"
	"io/ioutil"
	"os"
	"strings"
)

// Document is a parsed scene file: an ordered list of blocks. Blocks are
// never added, removed or reordered after parsing; only their contents change.
type Document struct {
	blocks []*Block

	// Set if the parsed text ended with a newline.
	trailingNewline bool
}

// Parse splits text into blocks. Every unindented line starts a new block and
// every indented line is appended to the current one. A text starting with an
// indented line produces a first block whose header is that line.
func Parse(text string) *Document {
	doc := &Document{blocks: make([]*Block, 0)}
	if text == "" {
		return doc
	}

	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		doc.trailingNewline = true
		lines = lines[:len(lines)-1]
	}

	var cur []string
	for _, line := range lines {
		if LineLevel(line) > 0 {
			cur = append(cur, line)
			continue
		}

		if len(cur) > 0 {
			doc.blocks = append(doc.blocks, NewBlock(cur...))
		}
		cur = []string{line}
	}

	if len(cur) > 0 {
		doc.blocks = append(doc.blocks, NewBlock(cur...))
	}

	return doc
}

// ParseReader reads r to the end and parses its contents.
func ParseReader(r io.Reader) (*Document, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(string(data)), nil
}

// ParseFile parses the scene file at path.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ParseReader(f)
}

// Blocks returns the document blocks in file order.
func (d *Document) Blocks() []*Block {
	return d.blocks
}

// String serializes the document by joining the blocks with newlines.
func (d *Document) String() string {
	parts := make([]string, len(d.blocks))
	for i, block := range d.blocks {
		parts[i] = block.String()
	}

	out := strings.Join(parts, "\n")
	if d.trailingNewline && len(d.blocks) > 0 {
		out += "\n"
	}
	return out
}

// Write serializes the document to w.
func (d *Document) Write(w io.Writer) error {
	_, err := io.WriteString(w, d.String())
	return err
}

// WriteFile serializes the document to a file, replacing any existing one.
func (d *Document) WriteFile(path string) error {
	return ioutil.WriteFile(path, []byte(d.String()), 0644)
}

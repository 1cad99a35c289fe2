package scene

import "strings"

// IndentWidth is the number of spaces per indentation level.
const IndentWidth = 4

// LineLevel returns the indentation level of a line. Lines whose leading
// space count is not a multiple of IndentWidth are treated as level 0.
func LineLevel(line string) int {
	count := 0
	for count < len(line) && line[count] == ' ' {
		count++
	}
	if count%IndentWidth != 0 {
		return 0
	}
	return count / IndentWidth
}

// IndentBy prefixes content with the spaces required for the given level.
func IndentBy(content string, level int) string {
	if level <= 0 {
		return content
	}
	return strings.Repeat(" ", level*IndentWidth) + content
}

// A Block is a header line followed by all the nested lines up to the next
// unindented line, for example a MakeNamedMaterial statement together with its
// parameter list or an AttributeBegin group.
type Block struct {
	lines []string
}

// NewBlock creates a block from a list of raw lines.
func NewBlock(lines ...string) *Block {
	return &Block{lines: lines}
}

// Lines returns the raw (indented) block lines.
func (b *Block) Lines() []string {
	return b.lines
}

// Len returns the number of lines in the block.
func (b *Block) Len() int {
	return len(b.lines)
}

// String joins the block lines. There is no trailing newline.
func (b *Block) String() string {
	return strings.Join(b.lines, "\n")
}

// Type returns the first token of the header line. A header starting with
// whitespace has an empty type. The second return value is false if the block
// is empty.
func (b *Block) Type() (string, bool) {
	if len(b.lines) == 0 {
		return "", false
	}

	header := b.lines[0]
	tokens := strings.Fields(header)
	if len(tokens) == 0 || !strings.HasPrefix(header, tokens[0]) {
		return "", true
	}
	return tokens[0], true
}

// Return the carriage return terminating the header of blocks parsed from
// CRLF text so that generated lines keep the same line endings.
func (b *Block) lineEnd() string {
	if len(b.lines) > 0 && strings.HasSuffix(b.lines[0], "\r") {
		return "\r"
	}
	return ""
}

// Header returns the header line or an empty string for empty blocks.
func (b *Block) Header() string {
	if len(b.lines) == 0 {
		return ""
	}
	return b.lines[0]
}

// Return the de-indented content of line i if it sits at the given level and
// starts with prefix.
func (b *Block) match(i, level int, prefix string) (string, bool) {
	line := b.lines[i]
	if LineLevel(line) != level {
		return "", false
	}
	content := line[level*IndentWidth:]
	if !strings.HasPrefix(content, prefix) {
		return "", false
	}
	return content, true
}

// Contains returns true if some line at the given level starts with prefix.
func (b *Block) Contains(level int, prefix string) bool {
	_, found := b.Find(level, prefix)
	return found
}

// Find returns the de-indented content of the first line at the given level
// that starts with prefix.
func (b *Block) Find(level int, prefix string) (string, bool) {
	for i := range b.lines {
		if content, ok := b.match(i, level, prefix); ok {
			return content, true
		}
	}
	return "", false
}

// Replace overwrites every line at the given level that starts with prefix
// with content, indented to the same level. A trailing carriage return on the
// replaced line is kept. It returns the number of replaced lines.
func (b *Block) Replace(level int, prefix, content string) int {
	replaced := 0
	for i, line := range b.lines {
		if _, ok := b.match(i, level, prefix); ok {
			end := ""
			if strings.HasSuffix(line, "\r") {
				end = "\r"
			}
			b.lines[i] = IndentBy(content, level) + end
			replaced++
		}
	}
	return replaced
}

// Append adds a line, indented to level, at the end of the block.
func (b *Block) Append(level int, content string) {
	b.lines = append(b.lines, IndentBy(content, level)+b.lineEnd())
}

// Prepend inserts a line, indented to level, before the header line.
func (b *Block) Prepend(level int, content string) {
	b.lines = append([]string{IndentBy(content, level) + b.lineEnd()}, b.lines...)
}

// ClearBody truncates the block to its header line.
func (b *Block) ClearBody() {
	if len(b.lines) > 1 {
		b.lines = b.lines[:1]
	}
}

package render

import (
	"bytes"
	"fmt"
)

// Buf is a code generation buffer. It tracks an indentation level and writes
// the configured indent string at the start of each line.
type Buf struct {
	inner  bytes.Buffer
	indent string
	level  int
}

// NewBuf returns a buffer that indents with the given string per level.
func NewBuf(indent string) *Buf {
	return &Buf{indent: indent}
}

// Write writes s into the buffer directly, without indentation.
func (b *Buf) Write(s string) {
	b.inner.WriteString(s)
}

// Writef writes a formatted string into the buffer directly.
func (b *Buf) Writef(format string, args ...any) {
	fmt.Fprintf(&b.inner, format, args...)
}

// Writeln writes a full line at the current indentation level.
func (b *Buf) Writeln(s string) {
	b.StartLine()
	b.Write(s)
	b.EndLine()
}

// Writelnf writes a formatted full line at the current indentation level.
func (b *Buf) Writelnf(format string, args ...any) {
	b.StartLine()
	b.Writef(format, args...)
	b.EndLine()
}

// StartLine writes the indentation for the current level.
func (b *Buf) StartLine() {
	for i := 0; i < b.level; i++ {
		b.inner.WriteString(b.indent)
	}
}

// EndLine terminates the current line.
func (b *Buf) EndLine() {
	b.inner.WriteByte('\n')
}

// Indent increases the indentation level by one.
func (b *Buf) Indent() { b.level++ }

// Unindent decreases the indentation level by one.
func (b *Buf) Unindent() { b.level-- }

// Block writes "header {", runs f one level deeper, and closes with "}".
// An empty header writes a bare opening brace.
func (b *Buf) Block(header string, f func() error) error {
	b.StartLine()
	b.Write(header)
	if header != "" {
		b.Write(" ")
	}
	b.Write("{\n")
	b.level++
	err := f()
	b.level--
	b.Writeln("}")
	return err
}

// String returns the buffer contents.
func (b *Buf) String() string { return b.inner.String() }

// Bytes returns the buffer contents.
func (b *Buf) Bytes() []byte { return b.inner.Bytes() }

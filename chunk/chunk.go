// Package chunk defines the token-sized units a beautifier's passes operate on together with
// operations like classifying, linking and navigating them.
package chunk

import (
	"unicode/utf8"
)

// Kind represents the kinds of chunks a tokenized source stream distinguishes. It doubles as the
// parent classification: a chunk's Parent names the construct it belongs to, for example [For] for
// the semicolons of a for-statement header.
type Kind int

const (
	None Kind = iota

	Newline // one or more physical newlines
	Space   // whitespace chunk kept by upstream passes
	Comment

	Word   // identifier
	Number // numeric literal
	String // string or char literal

	Semicolon
	Comma
	Bool    // && ||
	Compare // == != < > <= >=
	Shift   // << >>
	Arith   // + - * / %
	Caret   // ^
	Assign  // = += -= *= /= %= &= |= ^= <<= >>=
	Question
	CondColon // the : of a ternary
	ForColon  // the : of a range-for
	Colon     // any other :

	Qualifier // const static inline ...
	Class
	Struct
	Type // builtin type keyword
	Typename
	Volatile

	ParenOpen  // grouping parenthesis
	ParenClose
	FParenOpen // function call/declaration parenthesis
	FParenClose
	SParenOpen // statement-keyword parenthesis (for/if/while)
	SParenClose
	AngleOpen // template argument list
	AngleClose
	BraceOpen
	BraceClose
	VBraceOpen // virtual brace of a brace-less body
	VBraceClose

	// parent-only classifications
	For
	If
	While
	FuncDef
	FuncProto
	FuncCall
	Template
)

var kindStrings = map[Kind]string{
	None:        "none",
	Newline:     "newline",
	Space:       "space",
	Comment:     "comment",
	Word:        "word",
	Number:      "number",
	String:      "string",
	Semicolon:   ";",
	Comma:       ",",
	Bool:        "bool",
	Compare:     "compare",
	Shift:       "shift",
	Arith:       "arith",
	Caret:       "^",
	Assign:      "assign",
	Question:    "?",
	CondColon:   "cond-colon",
	ForColon:    "for-colon",
	Colon:       ":",
	Qualifier:   "qualifier",
	Class:       "class",
	Struct:      "struct",
	Type:        "type",
	Typename:    "typename",
	Volatile:    "volatile",
	ParenOpen:   "(",
	ParenClose:  ")",
	FParenOpen:  "fparen-open",
	FParenClose: "fparen-close",
	SParenOpen:  "sparen-open",
	SParenClose: "sparen-close",
	AngleOpen:   "angle-open",
	AngleClose:  "angle-close",
	BraceOpen:   "{",
	BraceClose:  "}",
	VBraceOpen:  "vbrace-open",
	VBraceClose: "vbrace-close",
	For:         "for",
	If:          "if",
	While:       "while",
	FuncDef:     "func-def",
	FuncProto:   "func-proto",
	FuncCall:    "func-call",
	Template:    "template",
}

func (k Kind) String() string {
	return kindStrings[k]
}

// Flags are facts about a chunk's syntactic surroundings set by the tokenizer. Passes consume them
// read-only.
type Flags uint16

const (
	InFor Flags = 1 << iota
	InFuncDef
	InFuncCall
	InTemplate
	InSParen
	OneLiner
)

// Has reports whether all bits of want are set.
func (f Flags) Has(want Flags) bool {
	return f&want == want
}

// Chunk is one token-sized unit in the stream. Chunks are linked into a [List]; a nil prev or next
// means the edge of the stream.
type Chunk struct {
	Kind         Kind
	Parent       Kind   // construct this chunk belongs to
	Text         string // printable form, empty for newlines
	Column       int    // 1-based target column set by the indenter
	Level        int    // nesting depth counting all bracket kinds
	BraceLevel   int    // nesting depth counting only braces
	Flags        Flags
	NewlineCount int // number of physical newlines if Kind is Newline

	prev, next *Chunk
}

// Len is the number of columns the chunk occupies.
func (c *Chunk) Len() int {
	return utf8.RuneCountInString(c.Text)
}

// Next returns the following chunk or nil at the end of the stream.
func (c *Chunk) Next() *Chunk {
	return c.next
}

// Prev returns the preceding chunk or nil at the start of the stream.
func (c *Chunk) Prev() *Chunk {
	return c.prev
}

func (c *Chunk) Is(k Kind) bool {
	return c != nil && c.Kind == k
}

func (c *Chunk) IsNewline() bool {
	return c.Is(Newline)
}

func (c *Chunk) IsComment() bool {
	return c.Is(Comment)
}

func (c *Chunk) IsSemicolon() bool {
	return c.Is(Semicolon)
}

// IsParenOpen reports whether the chunk is any kind of opening parenthesis.
func (c *Chunk) IsParenOpen() bool {
	return c.Is(ParenOpen) || c.Is(FParenOpen) || c.Is(SParenOpen)
}

// IsParenClose reports whether the chunk is any kind of closing parenthesis.
func (c *Chunk) IsParenClose() bool {
	return c.Is(ParenClose) || c.Is(FParenClose) || c.Is(SParenClose)
}

// IsLastOnLine reports whether no chunk other than a newline follows on the same physical line.
func (c *Chunk) IsLastOnLine() bool {
	return c.next == nil || c.next.IsNewline()
}

// PrevOfKind walks backward to the closest chunk of the wanted kind at the wanted level. Returns
// nil if none exists.
func (c *Chunk) PrevOfKind(k Kind, level int) *Chunk {
	for pc := c.prev; pc != nil; pc = pc.prev {
		if pc.Kind == k && pc.Level == level {
			return pc
		}
	}
	return nil
}

// NextOfKind walks forward to the closest chunk of the wanted kind at the wanted level. Returns
// nil if none exists.
func (c *Chunk) NextOfKind(k Kind, level int) *Chunk {
	for pc := c.next; pc != nil; pc = pc.next {
		if pc.Kind == k && pc.Level == level {
			return pc
		}
	}
	return nil
}

// NextNonCommentNonNewline walks forward past comments and newlines. Returns nil if only comments
// and newlines follow.
func (c *Chunk) NextNonCommentNonNewline() *Chunk {
	for pc := c.next; pc != nil; pc = pc.next {
		if !pc.IsComment() && !pc.IsNewline() {
			return pc
		}
	}
	return nil
}

// List is a doubly-linked stream of chunks.
type List struct {
	head, tail *Chunk
}

// Head returns the first chunk or nil for an empty list.
func (l *List) Head() *Chunk {
	return l.head
}

// Tail returns the last chunk or nil for an empty list.
func (l *List) Tail() *Chunk {
	return l.tail
}

// Append adds c at the end of the list.
func (l *List) Append(c *Chunk) {
	c.prev = l.tail
	c.next = nil
	if l.tail == nil {
		l.head = c
	} else {
		l.tail.next = c
	}
	l.tail = c
}

// InsertBefore links c immediately before mark which must be part of the list.
func (l *List) InsertBefore(c, mark *Chunk) {
	c.prev = mark.prev
	c.next = mark
	if mark.prev == nil {
		l.head = c
	} else {
		mark.prev.next = c
	}
	mark.prev = c
}

// Remove unlinks c from the list.
func (l *List) Remove(c *Chunk) {
	if c.prev == nil {
		l.head = c.next
	} else {
		c.prev.next = c.next
	}
	if c.next == nil {
		l.tail = c.prev
	} else {
		c.next.prev = c.prev
	}
	c.prev, c.next = nil, nil
}

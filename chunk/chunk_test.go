package chunk_test

import (
	"testing"

	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"
	"github.com/teleivo/cfmt/chunk"
)

func TestList(t *testing.T) {
	t.Run("AppendLinksChunks", func(t *testing.T) {
		var l chunk.List
		a := &chunk.Chunk{Kind: chunk.Word, Text: "a"}
		b := &chunk.Chunk{Kind: chunk.Semicolon, Text: ";"}
		l.Append(a)
		l.Append(b)

		assert.EqualValuesf(t, l.Head(), a, "Head()")
		assert.EqualValuesf(t, l.Tail(), b, "Tail()")
		assert.EqualValuesf(t, a.Next(), b, "a.Next()")
		assert.EqualValuesf(t, b.Prev(), a, "b.Prev()")
		assert.Nilf(t, a.Prev(), "a.Prev()")
		assert.Nilf(t, b.Next(), "b.Next()")
	})

	t.Run("InsertBeforeHead", func(t *testing.T) {
		var l chunk.List
		b := &chunk.Chunk{Kind: chunk.Word, Text: "b"}
		l.Append(b)
		a := &chunk.Chunk{Kind: chunk.Word, Text: "a"}
		l.InsertBefore(a, b)

		assert.EqualValuesf(t, l.Head(), a, "Head()")
		assert.EqualValuesf(t, a.Next(), b, "a.Next()")
		assert.EqualValuesf(t, b.Prev(), a, "b.Prev()")
	})

	t.Run("InsertBeforeInside", func(t *testing.T) {
		var l chunk.List
		a := &chunk.Chunk{Kind: chunk.Word, Text: "a"}
		c := &chunk.Chunk{Kind: chunk.Word, Text: "c"}
		l.Append(a)
		l.Append(c)
		b := &chunk.Chunk{Kind: chunk.Newline, NewlineCount: 1}
		l.InsertBefore(b, c)

		assert.EqualValuesf(t, a.Next(), b, "a.Next()")
		assert.EqualValuesf(t, c.Prev(), b, "c.Prev()")
		assert.EqualValuesf(t, l.Tail(), c, "Tail()")
	})

	t.Run("Remove", func(t *testing.T) {
		var l chunk.List
		a := &chunk.Chunk{Kind: chunk.Word, Text: "a"}
		b := &chunk.Chunk{Kind: chunk.Word, Text: "b"}
		c := &chunk.Chunk{Kind: chunk.Word, Text: "c"}
		l.Append(a)
		l.Append(b)
		l.Append(c)
		l.Remove(b)

		assert.EqualValuesf(t, a.Next(), c, "a.Next()")
		assert.EqualValuesf(t, c.Prev(), a, "c.Prev()")
	})
}

func TestNavigation(t *testing.T) {
	// f ( a , b ) ;
	var l chunk.List
	f := &chunk.Chunk{Kind: chunk.Word, Text: "f"}
	open := &chunk.Chunk{Kind: chunk.FParenOpen, Text: "(", Level: 0}
	a := &chunk.Chunk{Kind: chunk.Word, Text: "a", Level: 1}
	comma := &chunk.Chunk{Kind: chunk.Comma, Text: ",", Level: 1}
	b := &chunk.Chunk{Kind: chunk.Word, Text: "b", Level: 1}
	cl := &chunk.Chunk{Kind: chunk.FParenClose, Text: ")", Level: 0}
	semi := &chunk.Chunk{Kind: chunk.Semicolon, Text: ";", Level: 0}
	for _, pc := range []*chunk.Chunk{f, open, a, comma, b, cl, semi} {
		l.Append(pc)
	}

	t.Run("PrevOfKind", func(t *testing.T) {
		got := semi.PrevOfKind(chunk.FParenOpen, 0)
		require.EqualValuesf(t, got, open, "PrevOfKind(FParenOpen, 0)")

		assert.Nilf(t, semi.PrevOfKind(chunk.FParenOpen, 3), "PrevOfKind at wrong level")
	})

	t.Run("NextOfKind", func(t *testing.T) {
		got := open.NextOfKind(chunk.FParenClose, 0)
		require.EqualValuesf(t, got, cl, "NextOfKind(FParenClose, 0)")
	})

	t.Run("NextNonCommentNonNewline", func(t *testing.T) {
		var l chunk.List
		w := &chunk.Chunk{Kind: chunk.Word, Text: "w"}
		nl := &chunk.Chunk{Kind: chunk.Newline, NewlineCount: 1}
		comment := &chunk.Chunk{Kind: chunk.Comment, Text: "// c"}
		x := &chunk.Chunk{Kind: chunk.Word, Text: "x"}
		for _, pc := range []*chunk.Chunk{w, nl, comment, x} {
			l.Append(pc)
		}

		assert.EqualValuesf(t, w.NextNonCommentNonNewline(), x, "NextNonCommentNonNewline()")
		assert.Nilf(t, x.NextNonCommentNonNewline(), "NextNonCommentNonNewline() at the tail")
	})

	t.Run("IsLastOnLine", func(t *testing.T) {
		assert.Truef(t, semi.IsLastOnLine(), "IsLastOnLine() on the tail")
		assert.Falsef(t, f.IsLastOnLine(), "IsLastOnLine() mid-line")
	})
}

func TestFlags(t *testing.T) {
	f := chunk.InFor | chunk.InSParen

	assert.Truef(t, f.Has(chunk.InFor), "Has(InFor)")
	assert.Truef(t, f.Has(chunk.InFor|chunk.InSParen), "Has(InFor|InSParen)")
	assert.Falsef(t, f.Has(chunk.InTemplate), "Has(InTemplate)")
}

func TestLen(t *testing.T) {
	tests := map[string]struct {
		in   string
		want int
	}{
		"Empty":   {in: "", want: 0},
		"ASCII":   {in: "count", want: 5},
		"Unicode": {in: "π", want: 1},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			c := chunk.Chunk{Kind: chunk.Word, Text: test.in}

			assert.EqualValuesf(t, c.Len(), test.want, "Len(%q)", test.in)
		})
	}
}

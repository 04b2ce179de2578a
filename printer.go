package cfmt

import (
	"bufio"
	"io"
	"strings"

	"github.com/teleivo/cfmt/chunk"
)

// Fprint renders the chunk stream back to source text. Every chunk is padded with spaces up to its
// target column, newline chunks emit as many physical newlines as they represent.
func Fprint(w io.Writer, list *chunk.List) error {
	bw := bufio.NewWriter(w)
	column := 1
	for pc := list.Head(); pc != nil; pc = pc.Next() {
		if pc.IsNewline() {
			for i := 0; i < pc.NewlineCount; i++ {
				bw.WriteByte('\n')
			}
			column = 1
			continue
		}
		if pc.Text == "" {
			continue
		}
		for column < pc.Column {
			bw.WriteByte(' ')
			column++
		}
		bw.WriteString(pc.Text)
		column += pc.Len()
	}
	return bw.Flush()
}

// Sprint renders the chunk stream to a string.
func Sprint(list *chunk.List) string {
	var sb strings.Builder
	Fprint(&sb, list)
	return sb.String()
}

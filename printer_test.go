package cfmt_test

import (
	"strings"
	"testing"

	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"
	"github.com/teleivo/cfmt"
)

func TestPrintRoundTrip(t *testing.T) {
	tests := map[string]string{
		"SingleLine": `int r = a + b;`,
		"MultiLine": `int main(int argc) {
        return argc;
}`,
		"BlankLineBetweenStatements": "a;\n\nb;",
		"TrailingNewline":            "x;\n",
		"ColumnGapsArePreserved":     `int   x  =  1;`,
	}

	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			list := scan(t, in)

			got := cfmt.Sprint(list)

			assert.EqualValuesf(t, got, in, "Sprint after scanning %q", in)
		})
	}
}

func TestFormat(t *testing.T) {
	in := `f(arg_one_long, arg_two_long, arg_three_long);`
	opts := cfmt.DefaultOptions()
	opts.CodeWidth = 40

	var sb strings.Builder
	err := cfmt.Format(strings.NewReader(in), &sb, opts)
	require.NoErrorf(t, err, "Format(%q)", in)

	want := `f(arg_one_long, arg_two_long,
        arg_three_long);`
	assert.EqualValuesf(t, sb.String(), want, "Format(%q)", in)
}

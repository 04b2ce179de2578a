package cfmt

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Pos controls on which side of an operator a line is broken.
type Pos int

const (
	// Trail breaks after the operator leaving it at the end of the line.
	Trail Pos = iota
	// Lead breaks before the operator moving it to the start of the continuation line.
	Lead
)

var posStrings = map[Pos]string{
	Trail: "trail",
	Lead:  "lead",
}

var poss = map[string]Pos{
	"trail": Trail,
	"lead":  Lead,
}

func (p Pos) String() string {
	return posStrings[p]
}

// NewPos converts a string to a [Pos] constant. Valid values are "lead" and "trail". Returns an
// error if the position string is invalid.
func NewPos(pos string) (Pos, error) {
	if p, ok := poss[pos]; ok {
		return p, nil
	}
	return Trail, fmt.Errorf("invalid position string: %q, valid ones are: %q", pos, []string{"lead", "trail"})
}

// UnmarshalYAML decodes a position from its string form.
func (p *Pos) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	pos, err := NewPos(s)
	if err != nil {
		return err
	}
	*p = pos
	return nil
}

// MarshalYAML encodes a position as its string form.
func (p Pos) MarshalYAML() (any, error) {
	return p.String(), nil
}

// Options are the knobs the width pass consults. The zero value is not useful, start from
// [DefaultOptions].
type Options struct {
	// CodeWidth is the hard column limit. A chunk may end exactly at this column.
	CodeWidth int `yaml:"code_width"`
	// LSCodeWidth enables relaxed maximum-line-length mode: ternaries and function open parens
	// become split candidates and the backward scan stops at the first candidate.
	LSCodeWidth bool `yaml:"ls_code_width"`
	// LSFuncSplitFull breaks after every top-level comma of a parameter list before falling back
	// to the greedy splitter.
	LSFuncSplitFull bool `yaml:"ls_func_split_full"`
	// LSForSplitFull splits on both for-header semicolons instead of one.
	LSForSplitFull bool `yaml:"ls_for_split_full"`
	// IndentColumns is the base indent step.
	IndentColumns int `yaml:"indent_columns"`
	// IndentContinue is the continuation indent. A negative value is used as its absolute. Zero
	// makes the function-parameter and template splitters use IndentColumns as the increment; the
	// other splits indent the continuation by abs(IndentContinue) only, so zero adds nothing there.
	IndentContinue int `yaml:"indent_continue"`
	// IndentParenNL disables continuation-column recomputation at parens in the greedy splitter.
	IndentParenNL bool `yaml:"indent_paren_nl"`

	PosArith       Pos `yaml:"pos_arith"`
	PosAssign      Pos `yaml:"pos_assign"`
	PosCompare     Pos `yaml:"pos_compare"`
	PosConditional Pos `yaml:"pos_conditional"`
	PosShift       Pos `yaml:"pos_shift"`
	PosBool        Pos `yaml:"pos_bool"`
}

// DefaultOptions returns the options used when no configuration is given: 80 columns, an indent
// step of 8 and trailing operators.
func DefaultOptions() Options {
	return Options{
		CodeWidth:     80,
		IndentColumns: 8,
	}
}

// continueIndent is the continuation increment: indent_continue if set, the indent step otherwise.
func (o Options) continueIndent() int {
	if o.IndentContinue == 0 {
		return o.IndentColumns
	}
	return abs(o.IndentContinue)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// LoadOptions reads options from a YAML file, applying them on top of [DefaultOptions].
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()

	in, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("failed to read options from %q: %v", path, err)
	}

	err = yaml.Unmarshal(in, &opts)
	if err != nil {
		return opts, fmt.Errorf("failed to parse options from %q: %v", path, err)
	}

	return opts, nil
}

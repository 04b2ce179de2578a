package cfmt

import (
	"github.com/teleivo/cfmt/chunk"
)

// classifier assigns nesting levels, paren kinds, parents and flags while chunks are appended. It
// resolves what needs resolving at the point a chunk arrives and patches the few classifications
// that only become known later (function prototype vs definition).
type classifier struct {
	list *chunk.List

	depth      int
	braceDepth int
	stack      []*bracket

	prevSig         *chunk.Chunk // last non-newline non-comment chunk
	pendingSParen   chunk.Kind   // statement keyword awaiting its open paren
	pendingTemplate bool         // template keyword awaiting its angle bracket
	ternaries       []int        // levels of unmatched ?
	lastFOpen       *chunk.Chunk // most recently closed function paren pair,
	lastFClose      *chunk.Chunk // kept for prototype patching
}

type bracket struct {
	open  *chunk.Chunk
	flags chunk.Flags // flags applying to chunks inside this bracket
}

func (cl *classifier) flags() chunk.Flags {
	if len(cl.stack) == 0 {
		return 0
	}
	return cl.stack[len(cl.stack)-1].flags
}

func (cl *classifier) push(open *chunk.Chunk, added chunk.Flags) {
	flags := cl.flags() | added
	open.Flags |= flags
	cl.stack = append(cl.stack, &bracket{open: open, flags: flags})
	cl.depth++
}

// pop closes the innermost bracket and returns its open chunk, nil when unbalanced.
func (cl *classifier) pop() *chunk.Chunk {
	if len(cl.stack) == 0 {
		return nil
	}
	entry := cl.stack[len(cl.stack)-1]
	cl.stack = cl.stack[:len(cl.stack)-1]
	cl.depth--
	return entry.open
}

func (cl *classifier) top() *chunk.Chunk {
	if len(cl.stack) == 0 {
		return nil
	}
	return cl.stack[len(cl.stack)-1].open
}

func (cl *classifier) add(c *chunk.Chunk) {
	if c.Kind == chunk.Newline || c.Kind == chunk.Comment {
		c.Level, c.BraceLevel = cl.depth, cl.braceDepth
		c.Flags |= cl.flags()
		cl.list.Append(c)
		return
	}

	switch c.Kind {
	case chunk.Word:
		switch c.Text {
		case "for":
			cl.pendingSParen = chunk.For
		case "if":
			cl.pendingSParen = chunk.If
		case "while":
			cl.pendingSParen = chunk.While
		case "template":
			cl.pendingTemplate = true
		}
		cl.addPlain(c)

	case chunk.ParenOpen:
		if c.Text == "(" && cl.pendingSParen != chunk.None {
			c.Kind = chunk.SParenOpen
			c.Parent = cl.pendingSParen
			cl.pendingSParen = chunk.None
			added := chunk.InSParen
			if c.Parent == chunk.For {
				added |= chunk.InFor
			}
			cl.addOpen(c, added)
		} else if c.Text == "(" && cl.isFunctionName(cl.prevSig) {
			c.Kind = chunk.FParenOpen
			if cl.isDefinitionContext(cl.prevSig) {
				c.Parent = chunk.FuncDef
				cl.addOpen(c, chunk.InFuncDef)
			} else {
				c.Parent = chunk.FuncCall
				cl.addOpen(c, chunk.InFuncCall)
			}
		} else {
			cl.addOpen(c, 0)
		}

	case chunk.ParenClose:
		cl.addClose(c)

	case chunk.BraceOpen:
		cl.addOpen(c, 0)
		cl.braceDepth++

	case chunk.BraceClose:
		cl.addClose(c)

	case chunk.Compare:
		if c.Text == "<" && (cl.pendingTemplate || (cl.inTemplate() && cl.prevSig.Is(chunk.Word))) {
			c.Kind = chunk.AngleOpen
			c.Parent = chunk.Template
			cl.pendingTemplate = false
			cl.addOpen(c, chunk.InTemplate)
		} else if c.Text == ">" && cl.top().Is(chunk.AngleOpen) {
			c.Kind = chunk.AngleClose
			cl.addClose(c)
		} else {
			cl.addPlain(c)
		}

	case chunk.Question:
		cl.ternaries = append(cl.ternaries, cl.depth)
		cl.addPlain(c)

	case chunk.Colon:
		if n := len(cl.ternaries); n > 0 && cl.ternaries[n-1] == cl.depth {
			c.Kind = chunk.CondColon
			cl.ternaries = cl.ternaries[:n-1]
		} else if open := cl.top(); open.Is(chunk.SParenOpen) && open.Parent == chunk.For {
			c.Kind = chunk.ForColon
			c.Parent = chunk.For
		}
		cl.addPlain(c)

	case chunk.Semicolon:
		if open := cl.top(); open.Is(chunk.SParenOpen) && open.Parent == chunk.For && cl.depth == open.Level+1 {
			c.Parent = chunk.For
		} else if cl.prevSig.Is(chunk.FParenClose) {
			if cl.prevSig.Parent == chunk.FuncDef {
				// a definition paren pair directly followed by a semicolon is a prototype
				cl.lastFOpen.Parent = chunk.FuncProto
				cl.lastFClose.Parent = chunk.FuncProto
			}
			c.Parent = cl.prevSig.Parent
		}
		cl.addPlain(c)

	default:
		cl.addPlain(c)
	}
}

func (cl *classifier) addPlain(c *chunk.Chunk) {
	c.Level, c.BraceLevel = cl.depth, cl.braceDepth
	c.Flags |= cl.flags()
	cl.list.Append(c)
	cl.prevSig = c
}

func (cl *classifier) addOpen(c *chunk.Chunk, added chunk.Flags) {
	c.Level, c.BraceLevel = cl.depth, cl.braceDepth
	cl.push(c, added)
	cl.list.Append(c)
	cl.prevSig = c
}

func (cl *classifier) addClose(c *chunk.Chunk) {
	open := cl.pop()
	if open == nil {
		// unbalanced input, keep the closing at the outermost level
		cl.addPlain(c)
		return
	}
	if open.Is(chunk.BraceOpen) {
		cl.braceDepth--
	}
	c.Kind = closeKind(open.Kind)
	c.Parent = open.Parent
	c.Level, c.BraceLevel = cl.depth, cl.braceDepth
	c.Flags |= open.Flags
	if c.Kind == chunk.FParenClose {
		cl.lastFOpen, cl.lastFClose = open, c
	}
	cl.list.Append(c)
	cl.prevSig = c
}

func closeKind(open chunk.Kind) chunk.Kind {
	switch open {
	case chunk.FParenOpen:
		return chunk.FParenClose
	case chunk.SParenOpen:
		return chunk.SParenClose
	case chunk.AngleOpen:
		return chunk.AngleClose
	case chunk.BraceOpen:
		return chunk.BraceClose
	}
	return chunk.ParenClose
}

func (cl *classifier) inTemplate() bool {
	return cl.flags().Has(chunk.InTemplate)
}

// isFunctionName reports whether a '(' directly after prev opens a function call, prototype or
// definition rather than a grouping or statement paren.
func (cl *classifier) isFunctionName(prev *chunk.Chunk) bool {
	if !prev.Is(chunk.Word) {
		return false
	}
	switch prev.Text {
	case "return", "sizeof", "switch", "case", "do", "else", "goto", "break", "continue":
		return false
	}
	return true
}

// isDefinitionContext decides function definition/prototype vs call by what precedes the function
// name: a type-ish token means a declaration. This is a heuristic, not a C declaration parser.
func (cl *classifier) isDefinitionContext(name *chunk.Chunk) bool {
	before := name.Prev()
	for before != nil && (before.IsComment() || before.IsNewline()) {
		before = before.Prev()
	}
	if before == nil {
		return false
	}
	switch before.Kind {
	case chunk.Word, chunk.Type, chunk.Qualifier, chunk.Volatile, chunk.Struct, chunk.Class, chunk.Typename, chunk.AngleClose:
		return true
	}
	return false
}

// finish marks one-liner brace blocks: an open brace whose matching closing sits on the same
// physical line.
func (cl *classifier) finish() {
	for pc := cl.list.Head(); pc != nil; pc = pc.Next() {
		if !pc.Is(chunk.BraceOpen) {
			continue
		}
		closing := pc.NextOfKind(chunk.BraceClose, pc.Level)
		if closing == nil {
			continue
		}
		oneLiner := true
		for t := pc; t != closing; t = t.Next() {
			if t.IsNewline() {
				oneLiner = false
				break
			}
		}
		if !oneLiner {
			continue
		}
		for t := pc; ; t = t.Next() {
			t.Flags |= chunk.OneLiner
			if t == closing {
				break
			}
		}
	}
}

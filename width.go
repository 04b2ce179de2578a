package cfmt

import (
	"fmt"
	"log/slog"

	"github.com/teleivo/cfmt/chunk"
)

// InvariantError reports a chunk stream whose classification the width pass relies on is broken,
// like a function paren that has no match. It indicates a bug in the upstream tokenizer.
type InvariantError struct {
	Op     string // operation that hit the violation
	Text   string // text of the chunk the operation started from
	Column int
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s: no matching function parenthesis for %q at column %d", e.Op, e.Text, e.Column)
}

// splitEntry is the running best split candidate of a backward scan.
type splitEntry struct {
	pc  *chunk.Chunk
	pri int
}

// splitPriorities maps chunk kinds to split preference, lower is preferred. Kinds not listed are
// not candidates. Priorities of 20 and above are common groupings that only split in relaxed mode.
var splitPriorities = map[chunk.Kind]int{
	chunk.Semicolon:  1,
	chunk.Comma:      2,
	chunk.Bool:       3,
	chunk.Compare:    4,
	chunk.Shift:      5,
	chunk.Arith:      6,
	chunk.Caret:      7,
	chunk.Assign:     8,
	chunk.String:     9, // only when concatenated with an adjacent string
	chunk.ForColon:   10,
	chunk.Question:   20,
	chunk.CondColon:  20,
	chunk.FParenOpen: 21, // break after function open paren not followed by close paren
	chunk.Qualifier:  25,
	chunk.Class:      25,
	chunk.Struct:     25,
	chunk.Type:       25,
	chunk.Typename:   25,
	chunk.Volatile:   25,
}

func splitPri(k chunk.Kind) int {
	return splitPriorities[k]
}

// widthPass rewrites lines that exceed the column limit by inserting newlines and reindenting the
// continuations. It owns the change counter for one invocation.
type widthPass struct {
	list    *chunk.List
	opts    Options
	logger  *slog.Logger
	changes int
}

// LimitWidth splits every line of the chunk stream that exceeds opts.CodeWidth, mutating the
// stream in place. It returns the number of changes made. A non-nil error is an [*InvariantError]
// meaning the stream's classification is broken; the stream may be partially modified in that
// case.
func LimitWidth(list *chunk.List, opts Options) (int, error) {
	p := &widthPass{
		list:   list,
		opts:   opts,
		logger: slog.Default(),
	}
	err := p.run()
	return p.changes, err
}

func (p *widthPass) run() error {
	for pc := p.list.Head(); pc != nil; pc = pc.Next() {
		if pc.IsComment() || pc.IsNewline() || pc.Kind == chunk.Space || !p.isPastWidth(pc) {
			continue
		}
		// don't break if a virtual brace close is the last chunk on its line
		if pc.Is(chunk.VBraceClose) && pc.IsLastOnLine() {
			continue
		}

		newpc, err := p.splitLine(pc)
		if err != nil {
			return err
		}
		if newpc == nil {
			p.logger.Debug("width pass done, no progress possible", "text", pc.Text, "column", pc.Column)
			break
		}
		pc = newpc
	}
	return nil
}

// isPastWidth allows a chunk to end exactly at the limit column.
func (p *widthPass) isPastWidth(pc *chunk.Chunk) bool {
	return pc.Column+pc.Len()-1 > p.opts.CodeWidth
}

// splitBefore inserts a newline before pc and reindents the continuation, unless a newline is
// already there.
func (p *widthPass) splitBefore(pc *chunk.Chunk) {
	if pc == nil || pc.IsNewline() || pc.Prev().IsNewline() {
		return
	}
	insertNewlineBefore(p.list, pc)
	reindentLine(pc, pc.BraceLevel*p.opts.IndentColumns+abs(p.opts.IndentContinue)+1)
	p.changes++
}

// trySplitHere checks whether pc is a better spot to split than the recorded best. It must only be
// called going backward over a line. A lower level wins, then a lower priority.
func (p *widthPass) trySplitHere(ent *splitEntry, pc *chunk.Chunk) {
	pri := splitPri(pc.Kind)
	if pri == 0 {
		return
	}

	// can't split right after a physical newline, except between concatenated strings
	prev := pc.Prev()
	if prev == nil || (prev.IsNewline() && pc.Kind != chunk.String) {
		return
	}

	// can't split a function without arguments
	if pc.Kind == chunk.FParenOpen && pc.Next().Is(chunk.FParenClose) {
		return
	}

	// only split concatenated strings
	if pc.Kind == chunk.String && !pc.Next().Is(chunk.String) {
		return
	}

	// keep common groupings unless relaxed mode is on
	if !p.opts.LSCodeWidth && pri >= 20 {
		return
	}

	// don't break after the last term of a qualified type
	if pri == 25 {
		next := pc.Next()
		if next == nil || (!next.Is(chunk.Word) && splitPri(next.Kind) != 25) {
			return
		}
	}

	if ent.pc == nil || pc.Level < ent.pc.Level || (pc.Level == ent.pc.Level && pri < ent.pri) {
		ent.pc, ent.pri = pc, pri
	}
}

// splitLine finds the most appropriate spot to split the line holding start and inserts a newline
// there. It dispatches to the specialized strategies first and falls back to a backward scan over
// the line. It returns the chunk at which the caller should resume, or nil when no further
// progress is possible.
func (p *widthPass) splitLine(start *chunk.Chunk) (*chunk.Chunk, error) {
	if start.Flags.Has(chunk.OneLiner) {
		p.logger.Debug("one-liner split", "text", start.Text, "column", start.Column)
		next := undoOneLiner(p.list, start)
		cleanupBraces(p.list, p.opts, false)
		p.changes++
		// The line isn't split yet but will be on the next driver iteration. Resuming at the end
		// of the broken-up one-liner keeps long one-liners from going quadratic.
		return next, nil
	}

	if p.opts.LSCodeWidth {
		// relaxed mode skips the specialized strategies and breaks at maximum line length
	} else if start.Flags.Has(chunk.InFor) {
		p.logger.Debug("for split", "text", start.Text, "column", start.Column)
		p.splitForStmt(start)
		if !p.isPastWidth(start) {
			return start, nil
		}
	} else if start.Flags.Has(chunk.InFuncDef) ||
		(start.Flags.Has(chunk.InFuncCall) && start.Level == start.BraceLevel+1) ||
		(!start.Flags.Has(chunk.InFuncCall) &&
			(start.Is(chunk.FParenOpen) || start.IsSemicolon()) &&
			(start.Parent == chunk.FuncProto || start.Parent == chunk.FuncDef || start.Parent == chunk.FuncCall)) {
		// Function calls that are not at the top of the current brace level fall through to the
		// generic logic below, as does an open paren of a call nested inside another call.
		p.logger.Debug("function split", "text", start.Text, "column", start.Column)
		if p.opts.LSFuncSplitFull {
			p.splitFcnParamsFull(start)
			if !p.isPastWidth(start) {
				return start, nil
			}
		}
		return p.splitFcnParams(start)
	} else if start.Flags.Has(chunk.InTemplate) {
		p.logger.Debug("template split", "text", start.Text, "column", start.Column)
		p.splitTemplate(start)
		return start, nil
	}

	var ent splitEntry
	for pc := start.Prev(); pc != nil && !pc.IsNewline(); pc = pc.Prev() {
		if pc.Kind == chunk.Space {
			continue
		}
		p.trySplitHere(&ent, pc)
		// break at maximum line length
		if ent.pc != nil && p.opts.LSCodeWidth {
			break
		}
	}

	var pc *chunk.Chunk
	if ent.pc != nil {
		p.logger.Debug("split candidate", "text", ent.pc.Text, "column", ent.pc.Column, "pri", ent.pri)
		// break before the token instead of after it according to the pos options
		if p.leadBreak(ent.pc) {
			pc = ent.pc
		} else {
			pc = ent.pc.Next()
		}
	}

	if pc == nil {
		pc = start
		// don't break before a close, comma, or semicolon
		if start.IsParenOpen() || start.IsParenClose() ||
			start.Is(chunk.AngleClose) || start.Is(chunk.BraceClose) ||
			start.Is(chunk.Comma) || start.IsSemicolon() || start.Len() == 0 {
			p.logger.Debug("no good split spot", "text", start.Text, "column", start.Column)
			return start, nil
		}
	}

	if prev := pc.Prev(); prev != nil && !pc.IsNewline() && !prev.IsNewline() {
		p.splitBefore(pc)
	}
	return start, nil
}

// leadBreak reports whether the positional policy for the candidate's kind asks for the newline
// before the operator instead of after it.
func (p *widthPass) leadBreak(pc *chunk.Chunk) bool {
	switch pc.Kind {
	case chunk.Shift:
		return p.opts.PosShift == Lead
	case chunk.Arith, chunk.Caret:
		return p.opts.PosArith == Lead
	case chunk.Assign:
		return p.opts.PosAssign == Lead
	case chunk.Compare:
		return p.opts.PosCompare == Lead
	case chunk.Question, chunk.CondColon:
		return p.opts.PosConditional == Lead
	case chunk.Bool:
		return p.opts.PosBool == Lead
	}
	return false
}

// splitForStmt splits a too-long for-statement header. It tries the header semicolons first, then
// commas at paren level, then assignments at paren level, then gives up.
func (p *widthPass) splitForStmt(start *chunk.Chunk) {
	// how many semicolons (1 or 2) to find
	maxCount := 1
	if p.opts.LSForSplitFull {
		maxCount = 2
	}

	// find the open paren for its level, counting newlines on the way
	var openParen *chunk.Chunk
	nlCount := 0
	for pc := start.Prev(); pc != nil; pc = pc.Prev() {
		if pc.Is(chunk.SParenOpen) {
			openParen = pc
			break
		}
		nlCount += pc.NewlineCount
	}
	if openParen == nil {
		p.logger.Debug("no open paren for for-statement", "text", start.Text)
		return
	}

	// the collection array stays at capacity two regardless of maxCount; a slot can end up empty
	// when no semicolon was found on one side, which makes its split a noop
	var st [2]*chunk.Chunk
	count := 0

	// see if we started on a semicolon
	if start.IsSemicolon() && start.Parent == chunk.For {
		st[count] = start
		count++
	}
	// first scan backward for the semicolons
	for pc := start.Prev(); count < maxCount && pc != nil && pc.Flags.Has(chunk.InSParen); pc = pc.Prev() {
		if pc.IsSemicolon() && pc.Parent == chunk.For {
			st[count] = pc
			count++
		}
	}
	// and now scan forward
	for pc := start.Next(); count < maxCount && pc != nil && pc.Flags.Has(chunk.InSParen); pc = pc.Next() {
		if pc.IsSemicolon() && pc.Parent == chunk.For {
			st[count] = pc
			count++
		}
	}

	for count--; count >= 0; count-- {
		if st[count] == nil {
			continue
		}
		p.splitBefore(st[count].Next())
	}

	if !p.isPastWidth(start) || nlCount > 0 {
		return
	}

	// still past width, check for commas at paren level
	for pc := openParen.Next(); pc != nil && pc != start; pc = pc.Next() {
		if pc.Is(chunk.Comma) && pc.Level == openParen.Level+1 {
			p.splitBefore(pc.Next())
			if !p.isPastWidth(pc) {
				return
			}
		}
	}
	// still past width, check for assignments at paren level
	for pc := openParen.Next(); pc != nil && pc != start; pc = pc.Next() {
		if pc.Is(chunk.Assign) && pc.Level == openParen.Level+1 {
			p.splitBefore(pc.Next())
			if !p.isPastWidth(pc) {
				return
			}
		}
	}
	// oh well, we tried
}

// splitFcnParams finds the function paren pair enclosing start and runs the greedy splitter over
// it. The caller resumes after the close paren when start sat at the paren's own level, at the
// close paren otherwise.
func (p *widthPass) splitFcnParams(start *chunk.Chunk) (*chunk.Chunk, error) {
	fpo := start
	if !start.Is(chunk.FParenOpen) {
		level := start.Level
		if !start.IsSemicolon() && !start.Is(chunk.FParenClose) {
			level = start.Level - 1
		}
		fpo = start.PrevOfKind(chunk.FParenOpen, level)
		if fpo == nil {
			return nil, &InvariantError{Op: "split function params", Text: start.Text, Column: start.Column}
		}
	}
	fpc := fpo.NextOfKind(chunk.FParenClose, fpo.Level)
	if fpc == nil {
		return nil, &InvariantError{Op: "split function params", Text: start.Text, Column: start.Column}
	}

	p.splitFcnParamsGreedy(fpo, fpc)

	if fpo.Level == start.Level {
		return fpc.Next(), nil
	}
	return fpc, nil
}

// splitFcnParamsGreedy walks the argument list from open to close paren, remembering the latest
// comma (or the open paren) as the split point, and breaks at it whenever the line has filled up.
// This packs as many arguments per line as fit.
func (p *widthPass) splitFcnParamsGreedy(fpo, fpc *chunk.Chunk) {
	end := fpc.Next() // make sure fpc is processed by the loop below
	splitpoint := fpo // the open paren is a valid place to split
	added := 0

	minCol := 1
	if first := fpo.NextNonCommentNonNewline(); first != nil {
		minCol = first.Column
	}

	for pc := fpo; pc != nil && pc != end; pc = pc.Next() {
		if pc.IsNewline() {
			splitpoint = nil
			continue
		}

		// Only split at commas and at open parens that aren't part of empty parens '()'. A close
		// paren is never a split point but still needs the width check.
		okToSplitHere := true
		if pc.Is(chunk.FParenOpen) || pc.Is(chunk.FParenClose) {
			if pc.Is(chunk.FParenOpen) {
				if pc.Next().Is(chunk.FParenClose) {
					okToSplitHere = false
				}
			} else {
				okToSplitHere = false
			}
			if !p.opts.IndentParenNL {
				// TODO the recomputation at close parens is kept from the previous implementation
				// even though fparens never change the brace level
				braceLevel := 0
				if next := pc.Next(); next != nil {
					braceLevel = next.BraceLevel
				}
				minCol = braceLevel*p.opts.IndentColumns + 1 + p.opts.continueIndent()
			}
		} else if !pc.Is(chunk.Comma) {
			continue
		}

		// Without a valid split point the line length doesn't matter yet, just remember this spot.
		// The same goes while the line still fits, except at the close paren when nothing was
		// split so far: being called at all means a split is necessary, so force one.
		if splitpoint == nil || (!p.isPastWidth(pc) && (pc != fpc || added > 0)) {
			if okToSplitHere {
				splitpoint = pc
			}
			continue
		}

		next := splitpoint.Next()
		if splitpoint.Is(chunk.FParenOpen) && next.Is(chunk.FParenClose) {
			// never split empty parens, not even when forced at the close
			splitpoint = nil
			continue
		}
		// Split by adding a newline after the split point and reindenting the remainder, then
		// loop again from the split point so the fresh newline is the next chunk seen, which
		// resets the split point.
		if !next.IsNewline() {
			p.logger.Debug("greedy split", "text", next.Text, "column", next.Column, "min_col", minCol)
			insertNewlineBefore(p.list, next)
			reindentLine(next, minCol)
			p.changes++
			added++
		}
		pc = splitpoint
	}
}

// splitFcnParamsFull breaks after every comma at the parameter list's own level, without width
// checks.
func (p *widthPass) splitFcnParamsFull(start *chunk.Chunk) {
	var fpo *chunk.Chunk
	for pc := start.Prev(); pc != nil; pc = pc.Prev() {
		if pc.Is(chunk.FParenOpen) && pc.Level == start.Level-1 {
			fpo = pc
			break
		}
	}
	if fpo == nil {
		return
	}

	for pc := fpo.NextNonCommentNonNewline(); pc != nil; pc = pc.NextNonCommentNonNewline() {
		if pc.Level <= fpo.Level {
			break
		}
		if pc.Level == fpo.Level+1 && pc.Is(chunk.Comma) {
			p.splitBefore(pc.Next())
		}
	}
}

// splitTemplate backs up from the offending chunk to the nearest comma and breaks after it.
func (p *widthPass) splitTemplate(start *chunk.Chunk) {
	prev := start.Prev()
	for prev != nil && !prev.IsNewline() && !prev.Is(chunk.Comma) {
		prev = prev.Prev()
	}
	if prev == nil || prev.IsNewline() {
		return
	}

	pc := prev.Next()
	insertNewlineBefore(p.list, pc)
	reindentLine(pc, 1+p.opts.continueIndent())
	p.changes++
}

package cfmt

import (
	"github.com/teleivo/cfmt/chunk"
)

// insertNewlineBefore inserts a newline chunk before pc unless one is already there. Returns the
// inserted chunk or nil when nothing was inserted.
func insertNewlineBefore(list *chunk.List, pc *chunk.Chunk) *chunk.Chunk {
	if pc == nil || pc.IsNewline() || pc.Prev().IsNewline() {
		return nil
	}
	nl := &chunk.Chunk{
		Kind:         chunk.Newline,
		NewlineCount: 1,
		Column:       pc.Column,
		Level:        pc.Level,
		BraceLevel:   pc.BraceLevel,
		Flags:        pc.Flags,
	}
	list.InsertBefore(nl, pc)
	return nl
}

// reindentLine moves pc to col and shifts the rest of its physical line by the same amount.
func reindentLine(pc *chunk.Chunk, col int) {
	if col < 1 {
		col = 1
	}
	delta := col - pc.Column
	if delta == 0 {
		return
	}
	for t := pc; t != nil && !t.IsNewline(); t = t.Next() {
		t.Column += delta
		if t.Column < 1 {
			t.Column = 1
		}
	}
}

// undoOneLiner expands the one-liner block around pc into its multi-line form by unmarking it, so
// that cleanupBraces breaks it up. Returns the chunk at which scanning should resume, which is the
// block's closing brace.
func undoOneLiner(list *chunk.List, pc *chunk.Chunk) *chunk.Chunk {
	open := pc
	for open != nil && !(open.Is(chunk.BraceOpen) && open.Flags.Has(chunk.OneLiner)) {
		open = open.Prev()
	}
	if open == nil {
		return pc
	}
	closing := open.NextOfKind(chunk.BraceClose, open.Level)
	if closing == nil {
		return pc
	}
	for t := open; ; t = t.Next() {
		t.Flags &^= chunk.OneLiner
		if t == closing {
			break
		}
	}
	return closing
}

// cleanupBraces breaks brace blocks that share a physical line with their content into multi-line
// form: newline after the open brace, after each body statement, and before the closing brace.
// Blocks still marked as one-liners are skipped unless force is set.
func cleanupBraces(list *chunk.List, opts Options, force bool) {
	for pc := list.Head(); pc != nil; pc = pc.Next() {
		if !force && pc.Flags.Has(chunk.OneLiner) {
			continue
		}

		switch {
		case pc.Is(chunk.BraceOpen):
			next := pc.NextNonCommentNonNewline()
			if next == nil || next.IsNewline() || next.Is(chunk.BraceClose) {
				continue
			}
			if nl := insertNewlineBefore(list, pc.Next()); nl != nil {
				reindentLine(nl.Next(), (pc.BraceLevel+1)*opts.IndentColumns+1)
			}
		case pc.IsSemicolon() && pc.BraceLevel > 0 && !pc.Flags.Has(chunk.InSParen):
			next := pc.Next()
			if next == nil || next.IsNewline() {
				continue
			}
			if nl := insertNewlineBefore(list, next); nl != nil {
				col := pc.BraceLevel*opts.IndentColumns + 1
				if next.Is(chunk.BraceClose) {
					col = next.BraceLevel*opts.IndentColumns + 1
				}
				reindentLine(next, col)
			}
		case pc.Is(chunk.BraceClose):
			if pc.Prev().IsNewline() {
				continue
			}
			if insertNewlineBefore(list, pc) != nil {
				reindentLine(pc, pc.BraceLevel*opts.IndentColumns+1)
			}
		}
	}
}

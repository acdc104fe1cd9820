package highlight

// CarryState is the lexical state passed from the end of one line to the start
// of the next.
type CarryState uint8

const (
	// StateNormal means the line starts outside any multi-line construct.
	StateNormal CarryState = iota
	// StateInBlockComment means the line starts inside an unterminated block comment.
	StateInBlockComment
)

// String returns a readable name for the state.
func (s CarryState) String() string {
	if s == StateInBlockComment {
		return "in-block-comment"
	}
	return "normal"
}

// Span is a run of characters on one line sharing a category.
// Start and Length are measured in runes.
type Span struct {
	Start    int
	Length   int
	Category Category
}

// End returns the column just past the span.
func (s Span) End() int {
	return s.Start + s.Length
}

// HighlightLine tokenizes a single line.
//
// The incoming state says whether the line begins inside a block comment. Rules
// are applied in order and later matches overwrite earlier ones character by
// character; block comments are applied after all rules. The returned spans are
// ordered, non-overlapping and coalesced. A nil rule set yields no spans.
func HighlightLine(text string, in CarryState, rs *RuleSet) ([]Span, CarryState) {
	if rs == nil {
		return nil, StateNormal
	}
	runes := []rune(text)
	bc := rs.BlockComment
	if len(runes) == 0 {
		if in == StateInBlockComment && bc != nil {
			return nil, StateInBlockComment
		}
		return nil, StateNormal
	}

	cats := make([]Category, len(runes))
	start := 0

	if in == StateInBlockComment && bc != nil {
		end := indexRunes(runes, bc.Close, 0)
		if end < 0 {
			fill(cats, 0, len(runes), CategoryComment)
			return coalesce(cats), StateInBlockComment
		}
		start = end + len(bc.Close)
		fill(cats, 0, start, CategoryComment)
	}

	for _, rule := range rs.Rules {
		applyRule(rule, runes, start, cats)
	}

	out := StateNormal
	if bc != nil {
		out = applyBlockComments(bc, runes, start, cats)
	}
	return coalesce(cats), out
}

// applyRule tags every match of rule at or after start.
func applyRule(rule Rule, runes []rune, start int, cats []Category) {
	if rule.Pattern == nil || start >= len(runes) {
		return
	}
	m, err := rule.Pattern.FindRunesMatchStartingAt(runes, start)
	for err == nil && m != nil {
		g := &m.Group
		if rule.Group > 0 {
			g = m.GroupByNumber(rule.Group)
		}
		if g != nil && len(g.Captures) > 0 && g.Length > 0 && g.Index >= start {
			fill(cats, g.Index, g.Index+g.Length, rule.Category)
		}
		m, err = rule.Pattern.FindNextMatch(m)
	}
}

// applyBlockComments tags block comments that open at or after start and
// reports whether the last one is left open.
func applyBlockComments(bc *Delimiters, runes []rune, start int, cats []Category) CarryState {
	pos := start
	for pos < len(runes) {
		open := indexRunes(runes, bc.Open, pos)
		if open < 0 {
			return StateNormal
		}
		// The closer may share characters with the opener, as in "/*/".
		closeAt := indexRunes(runes, bc.Close, open)
		if closeAt == open {
			closeAt = indexRunes(runes, bc.Close, open+len(bc.Open))
		}
		if closeAt < 0 {
			fill(cats, open, len(runes), CategoryComment)
			return StateInBlockComment
		}
		pos = closeAt + len(bc.Close)
		fill(cats, open, pos, CategoryComment)
	}
	return StateNormal
}

func fill(cats []Category, from, to int, c Category) {
	if to > len(cats) {
		to = len(cats)
	}
	for i := from; i < to; i++ {
		cats[i] = c
	}
}

func coalesce(cats []Category) []Span {
	var spans []Span
	for i := 0; i < len(cats); {
		c := cats[i]
		j := i + 1
		for j < len(cats) && cats[j] == c {
			j++
		}
		if c != CategoryNone {
			spans = append(spans, Span{Start: i, Length: j - i, Category: c})
		}
		i = j
	}
	return spans
}

// indexRunes returns the first index of sub in s at or after from, or -1.
func indexRunes(s, sub []rune, from int) int {
	if len(sub) == 0 {
		return -1
	}
	for i := from; i+len(sub) <= len(s); i++ {
		match := true
		for j, r := range sub {
			if s[i+j] != r {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

// CategoryAt returns the category of the character at col, or CategoryNone.
func CategoryAt(spans []Span, col int) Category {
	for _, s := range spans {
		if col < s.Start {
			break
		}
		if col < s.End() {
			return s.Category
		}
	}
	return CategoryNone
}

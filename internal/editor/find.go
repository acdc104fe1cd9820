package editor

import (
	"fmt"
	"time"

	"github.com/dlclark/regexp2"

	"github.com/dshills/codepad/internal/document"
)

// Match is one occurrence of the search query. Matches never span lines.
type Match struct {
	Start document.Position
	End   document.Position
}

type findState struct {
	query         string
	caseSensitive bool
	matches       []Match
	index         int
	revision      uint64
}

// Search sets the query and collects every occurrence. Searching for the
// same query again keeps the current match; a new query starts over.
// Matching ignores case unless SetCaseSensitive was called.
func (p *Pane) Search(query string) int {
	if query != p.find.query || query == "" {
		p.find.query = query
		p.find.index = -1
		p.collectMatches()
	} else if p.find.revision != p.doc.Revision() {
		p.collectMatches()
	}
	return len(p.find.matches)
}

// SetCaseSensitive switches case sensitivity and restarts the search.
func (p *Pane) SetCaseSensitive(on bool) {
	if on == p.find.caseSensitive {
		return
	}
	p.find.caseSensitive = on
	p.find.index = -1
	p.collectMatches()
}

// CaseSensitive reports whether searches match case.
func (p *Pane) CaseSensitive() bool {
	return p.find.caseSensitive
}

// ResetSearch forgets the query and its matches.
func (p *Pane) ResetSearch() {
	p.find = findState{caseSensitive: p.find.caseSensitive, index: -1}
}

// SearchQuery returns the current query.
func (p *Pane) SearchQuery() string {
	return p.find.query
}

// Matches returns the occurrences of the current query.
func (p *Pane) Matches() []Match {
	return p.find.matches
}

// MatchIndex returns the index of the selected match, or -1.
func (p *Pane) MatchIndex() int {
	return p.find.index
}

// SearchStatus describes the search position as "current/total".
func (p *Pane) SearchStatus() string {
	return fmt.Sprintf("%d/%d", p.find.index+1, len(p.find.matches))
}

// FindNext selects the next match, wrapping to the first. It reports whether
// there was anything to select.
func (p *Pane) FindNext() bool {
	return p.step(1)
}

// FindPrevious selects the previous match, wrapping to the last.
func (p *Pane) FindPrevious() bool {
	return p.step(-1)
}

func (p *Pane) step(dir int) bool {
	if p.find.query == "" {
		return false
	}
	if p.find.revision != p.doc.Revision() {
		p.collectMatches()
	}
	n := len(p.find.matches)
	if n == 0 {
		return false
	}

	switch {
	case p.find.index < 0 && dir < 0:
		p.find.index = n - 1
	default:
		p.find.index = ((p.find.index+dir)%n + n) % n
	}

	m := p.find.matches[p.find.index]
	p.Select(m.Start, m.End)
	p.CenterCursor()
	return true
}

// collectMatches rescans the document. A selected match that no longer
// exists is dropped.
func (p *Pane) collectMatches() {
	p.find.matches = nil
	p.find.revision = p.doc.Revision()
	if p.find.query == "" {
		p.find.index = -1
		return
	}

	opts := regexp2.RegexOptions(regexp2.IgnoreCase)
	if p.find.caseSensitive {
		opts = regexp2.None
	}
	re := regexp2.MustCompile(regexp2.Escape(p.find.query), opts)
	re.MatchTimeout = time.Second

	for line := 0; line < p.doc.LineCount(); line++ {
		m, err := re.FindRunesMatchStartingAt(p.doc.LineRunes(line), 0)
		for m != nil && err == nil {
			p.find.matches = append(p.find.matches, Match{
				Start: document.Position{Line: line, Col: m.Index},
				End:   document.Position{Line: line, Col: m.Index + m.Length},
			})
			m, err = re.FindNextMatch(m)
		}
	}
	if p.find.index >= len(p.find.matches) {
		p.find.index = -1
	}
}

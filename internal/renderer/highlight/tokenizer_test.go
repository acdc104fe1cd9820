package highlight

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func mustLang(t testing.TB, ext string) *RuleSet {
	t.Helper()
	rs := DefaultRegistry().Resolve(ext)
	require.NotNil(t, rs, "no rule set for %s", ext)
	return rs
}

func TestHighlightLineNilRuleSet(t *testing.T) {
	spans, out := HighlightLine("def foo(): pass", StateInBlockComment, nil)
	assert.Nil(t, spans)
	assert.Equal(t, StateNormal, out)
}

func TestHighlightLinePython(t *testing.T) {
	spans, out := HighlightLine("def foo(x): return 42  # hi", StateNormal, mustLang(t, ".py"))

	assert.Equal(t, StateNormal, out)
	assert.Equal(t, []Span{
		{Start: 0, Length: 3, Category: CategoryKeyword},
		{Start: 4, Length: 3, Category: CategoryFunction},
		{Start: 12, Length: 6, Category: CategoryKeyword},
		{Start: 19, Length: 2, Category: CategoryNumber},
		{Start: 23, Length: 4, Category: CategoryComment},
	}, spans)
}

func TestHighlightLineLastWriteWins(t *testing.T) {
	spans, _ := HighlightLine(`x = "a # b"`, StateNormal, mustLang(t, ".py"))

	assert.Equal(t, []Span{
		{Start: 2, Length: 1, Category: CategoryOperator},
		{Start: 4, Length: 3, Category: CategoryString},
		{Start: 7, Length: 4, Category: CategoryComment},
	}, spans)
}

func TestHighlightLineCaptureGroup(t *testing.T) {
	spans, _ := HighlightLine("function greet(name) {", StateNormal, mustLang(t, ".js"))

	assert.Equal(t, []Span{
		{Start: 0, Length: 8, Category: CategoryKeyword},
		{Start: 9, Length: 5, Category: CategoryFunction},
	}, spans)
}

func TestHighlightLineSQLIgnoresCase(t *testing.T) {
	spans, _ := HighlightLine("select Count(*) from t", StateNormal, mustLang(t, ".sql"))

	assert.Equal(t, []Span{
		{Start: 0, Length: 6, Category: CategoryKeyword},
		{Start: 7, Length: 5, Category: CategoryFunction},
		{Start: 16, Length: 4, Category: CategoryKeyword},
	}, spans)
}

func TestHighlightLineMarkdownEmphasis(t *testing.T) {
	md := mustLang(t, ".md")

	spans, _ := HighlightLine("a **b** c", StateNormal, md)
	assert.Equal(t, []Span{{Start: 4, Length: 1, Category: CategoryBold}}, spans)

	spans, _ = HighlightLine("## Title", StateNormal, md)
	assert.Equal(t, []Span{{Start: 0, Length: 8, Category: CategoryHeading}}, spans)

	spans, _ = HighlightLine("- item", StateNormal, md)
	assert.Equal(t, []Span{{Start: 0, Length: 6, Category: CategoryListItem}}, spans)
}

func TestHighlightLineBlockComments(t *testing.T) {
	goRS := mustLang(t, ".go")

	tests := []struct {
		name    string
		text    string
		in      CarryState
		want    []Span
		wantOut CarryState
	}{
		{
			name:    "opens",
			text:    "x := 1 /* start",
			in:      StateNormal,
			want:    []Span{{5, 1, CategoryNumber}, {7, 8, CategoryComment}},
			wantOut: StateInBlockComment,
		},
		{
			name:    "closes",
			text:    "end */ x := 42",
			in:      StateInBlockComment,
			want:    []Span{{0, 6, CategoryComment}, {12, 2, CategoryNumber}},
			wantOut: StateNormal,
		},
		{
			name:    "inside",
			text:    "still inside",
			in:      StateInBlockComment,
			want:    []Span{{0, 12, CategoryComment}},
			wantOut: StateInBlockComment,
		},
		{
			name:    "overrides rules",
			text:    `a /* b */ "c"`,
			in:      StateNormal,
			want:    []Span{{2, 7, CategoryComment}, {10, 3, CategoryString}},
			wantOut: StateNormal,
		},
		{
			name:    "several on one line",
			text:    "/* a */ x /* b",
			in:      StateNormal,
			want:    []Span{{0, 7, CategoryComment}, {10, 4, CategoryComment}},
			wantOut: StateInBlockComment,
		},
		{
			name:    "closer overlaps opener",
			text:    "a /*/ b",
			in:      StateNormal,
			want:    []Span{{2, 3, CategoryComment}},
			wantOut: StateNormal,
		},
		{
			name:    "empty line keeps state",
			text:    "",
			in:      StateInBlockComment,
			want:    nil,
			wantOut: StateInBlockComment,
		},
		{
			name:    "empty line normal",
			text:    "",
			in:      StateNormal,
			want:    nil,
			wantOut: StateNormal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spans, out := HighlightLine(tt.text, tt.in, goRS)
			assert.Equal(t, tt.want, spans)
			assert.Equal(t, tt.wantOut, out)
		})
	}
}

func TestHighlightLineIdenticalDelimiters(t *testing.T) {
	rs := &RuleSet{Name: "Doc", BlockComment: blockComment(`"""`, `"""`)}

	spans, out := HighlightLine(`x """ doc """ y`, StateNormal, rs)
	assert.Equal(t, []Span{{2, 11, CategoryComment}}, spans)
	assert.Equal(t, StateNormal, out)

	spans, out = HighlightLine(`"""open`, StateNormal, rs)
	assert.Equal(t, []Span{{0, 7, CategoryComment}}, spans)
	assert.Equal(t, StateInBlockComment, out)
}

func TestHighlightLineNoBlockDelimiters(t *testing.T) {
	// Python has no block comments, so an incoming comment state is ignored.
	spans, out := HighlightLine("pass", StateInBlockComment, mustLang(t, ".py"))
	assert.Equal(t, []Span{{0, 4, CategoryKeyword}}, spans)
	assert.Equal(t, StateNormal, out)
}

func TestHighlightLineRuneColumns(t *testing.T) {
	spans, _ := HighlightLine(`s = "héllo" # ü`, StateNormal, mustLang(t, ".py"))
	assert.Equal(t, []Span{
		{Start: 2, Length: 1, Category: CategoryOperator},
		{Start: 4, Length: 7, Category: CategoryString},
		{Start: 12, Length: 3, Category: CategoryComment},
	}, spans)
}

func TestCategoryAt(t *testing.T) {
	spans := []Span{{0, 3, CategoryKeyword}, {5, 2, CategoryString}}
	assert.Equal(t, CategoryKeyword, CategoryAt(spans, 2))
	assert.Equal(t, CategoryNone, CategoryAt(spans, 3))
	assert.Equal(t, CategoryString, CategoryAt(spans, 6))
	assert.Equal(t, CategoryNone, CategoryAt(spans, 7))
}

var lineAlphabet = []rune("abc def if for x 0123 \"'`/*#-_:;(){}<>=+.é\t")

func TestHighlightLineProperties(t *testing.T) {
	reg := DefaultRegistry()
	langs := reg.Languages()

	rapid.Check(t, func(t *rapid.T) {
		rs := rapid.SampledFrom(langs).Draw(t, "lang")
		line := rapid.StringOf(rapid.SampledFrom(lineAlphabet)).Draw(t, "line")
		in := CarryState(rapid.IntRange(0, 1).Draw(t, "in"))

		spans, out := HighlightLine(line, in, rs)
		again, againOut := HighlightLine(line, in, rs)
		if !assert.ObjectsAreEqual(spans, again) || out != againOut {
			t.Fatalf("tokenizing %q twice differs", line)
		}

		n := len([]rune(line))
		prevEnd := 0
		var prevCat Category
		for i, s := range spans {
			if s.Length <= 0 || s.Start < prevEnd || s.End() > n {
				t.Fatalf("bad span %+v at %d for %q", s, i, line)
			}
			if i > 0 && s.Start == prevEnd && s.Category == prevCat {
				t.Fatalf("uncoalesced spans at %d for %q", i, line)
			}
			if s.Category == CategoryNone {
				t.Fatalf("untagged span %+v", s)
			}
			prevEnd, prevCat = s.End(), s.Category
		}

		if rs.BlockComment == nil && out != StateNormal {
			t.Fatalf("%s has no block comments but carried %v", rs.Name, out)
		}
	})
}

func TestHighlightLineOpenCommentProperty(t *testing.T) {
	goRS := mustLang(t, ".go")

	rapid.Check(t, func(t *rapid.T) {
		line := rapid.StringOf(rapid.SampledFrom(lineAlphabet)).Draw(t, "line")
		if strings.Contains(line, "*/") {
			t.Skip("closes the comment")
		}
		spans, out := HighlightLine(line, StateInBlockComment, goRS)
		if out != StateInBlockComment {
			t.Fatalf("%q left the comment", line)
		}
		n := len([]rune(line))
		if n == 0 {
			return
		}
		if len(spans) != 1 || spans[0] != (Span{0, n, CategoryComment}) {
			t.Fatalf("%q: want whole-line comment, got %+v", line, spans)
		}
	})
}

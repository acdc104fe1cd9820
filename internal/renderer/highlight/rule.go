package highlight

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"

	"github.com/dshills/codepad/internal/renderer/core"
)

// matchTimeout bounds a single pattern evaluation so a pathological user
// pattern cannot hang the editor.
const matchTimeout = 250 * time.Millisecond

// ErrInvalidRule is returned when a rule cannot be built.
var ErrInvalidRule = errors.New("invalid rule")

// Rule tags every match of Pattern with Category. When Group is non-zero only
// that capture group is tagged.
type Rule struct {
	Pattern  *regexp2.Regexp
	Category Category
	Group    int
}

// Delimiters are the open and close markers of a block comment.
type Delimiters struct {
	Open  []rune
	Close []rune
}

// RuleSet is the immutable highlighting description of one language.
type RuleSet struct {
	// Name is the display name of the language.
	Name string

	// Extensions are the lowercase dot-prefixed extensions this set serves.
	Extensions []string

	// Rules are applied in order; later rules overwrite earlier ones.
	Rules []Rule

	// BlockComment is nil for languages without multi-line comments.
	BlockComment *Delimiters

	// Styles are per-language tints consulted before the theme.
	Styles map[Category]core.Style
}

// NewRule compiles a rule from user input.
func NewRule(expr string, cat Category, group int, ignoreCase bool) (Rule, error) {
	if cat == CategoryNone || cat >= categoryCount {
		return Rule{}, fmt.Errorf("%w: pattern %q has no category", ErrInvalidRule, expr)
	}
	opts := regexp2.None
	if ignoreCase {
		opts |= regexp2.IgnoreCase
	}
	re, err := regexp2.Compile(expr, opts)
	if err != nil {
		return Rule{}, fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}
	if group < 0 || group > len(re.GetGroupNumbers())-1 {
		return Rule{}, fmt.Errorf("%w: pattern %q has no group %d", ErrInvalidRule, expr, group)
	}
	re.MatchTimeout = matchTimeout
	return Rule{Pattern: re, Category: cat, Group: group}, nil
}

// NewDelimiters builds block comment delimiters. Both markers must be non-empty.
func NewDelimiters(start, end string) (*Delimiters, error) {
	if start == "" || end == "" {
		return nil, fmt.Errorf("%w: empty block comment delimiter", ErrInvalidRule)
	}
	return &Delimiters{Open: []rune(start), Close: []rune(end)}, nil
}

// pattern compiles a built-in rule tagging the whole match.
func pattern(expr string, cat Category) Rule {
	return capture(expr, cat, 0)
}

// capture compiles a built-in rule tagging capture group n.
func capture(expr string, cat Category, n int) Rule {
	re := regexp2.MustCompile(expr, regexp2.None)
	re.MatchTimeout = matchTimeout
	return Rule{Pattern: re, Category: cat, Group: n}
}

// words compiles a whole-word alternation over a keyword list.
func words(cat Category, list ...string) Rule {
	return pattern(wordAlternation(list), cat)
}

// wordsFold is words with case-insensitive matching.
func wordsFold(cat Category, list ...string) Rule {
	re := regexp2.MustCompile(wordAlternation(list), regexp2.IgnoreCase)
	re.MatchTimeout = matchTimeout
	return Rule{Pattern: re, Category: cat}
}

func wordAlternation(list []string) string {
	quoted := make([]string, len(list))
	for i, w := range list {
		quoted[i] = regexp2.Escape(w)
	}
	return `\b(?:` + strings.Join(quoted, "|") + `)\b`
}

// blockComment builds delimiters for built-in sets.
func blockComment(start, end string) *Delimiters {
	return &Delimiters{Open: []rune(start), Close: []rune(end)}
}

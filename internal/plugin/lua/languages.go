package lua

import (
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/codepad/internal/renderer/highlight"
)

// LoadLanguages runs the languages script at path and converts the list it
// returns. A script that fails to run returns only an error. Entries that
// do not convert are skipped and reported in the joined error next to the
// sets that did.
func LoadLanguages(path string, opts ...StateOption) ([]*highlight.RuleSet, error) {
	s := NewState(opts...)
	defer s.Close()

	v, err := s.EvalFile(path)
	if err != nil {
		return nil, fmt.Errorf("languages %s: %w", path, err)
	}
	return ToRuleSets(v)
}

// LoadLanguagesString is LoadLanguages for a script held in memory.
func LoadLanguagesString(src string, opts ...StateOption) ([]*highlight.RuleSet, error) {
	s := NewState(opts...)
	defer s.Close()

	v, err := s.Eval(src, "languages")
	if err != nil {
		return nil, fmt.Errorf("languages: %w", err)
	}
	return ToRuleSets(v)
}

// ToRuleSets converts a Lua list of language tables.
func ToRuleSets(v lua.LValue) ([]*highlight.RuleSet, error) {
	list, ok := v.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("%w: script must return a table, got %s", ErrInvalidLanguage, v.Type())
	}

	var (
		sets []*highlight.RuleSet
		errs []error
	)
	for i := 1; i <= list.Len(); i++ {
		rs, err := toRuleSet(list.RawGetInt(i))
		if err != nil {
			errs = append(errs, fmt.Errorf("language #%d: %w", i, err))
			continue
		}
		sets = append(sets, rs)
	}
	return sets, errors.Join(errs...)
}

func toRuleSet(v lua.LValue) (*highlight.RuleSet, error) {
	tbl, ok := v.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("%w: expected table, got %s", ErrInvalidLanguage, v.Type())
	}

	name, err := stringField(tbl, "name", true)
	if err != nil {
		return nil, err
	}
	rs := &highlight.RuleSet{Name: name}

	exts, err := stringList(tbl, "extensions")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if len(exts) == 0 {
		return nil, fmt.Errorf("%w: %s: no extensions", ErrInvalidLanguage, name)
	}
	rs.Extensions = exts

	delims, err := stringList(tbl, "block_comment")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	switch len(delims) {
	case 0:
	case 2:
		if rs.BlockComment, err = highlight.NewDelimiters(delims[0], delims[1]); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s: block_comment needs an open and a close delimiter", ErrInvalidLanguage, name)
	}

	rules, ok := tbl.RawGetString("rules").(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("%w: %s: rules must be a table", ErrInvalidLanguage, name)
	}
	for i := 1; i <= rules.Len(); i++ {
		r, err := toRule(rules.RawGetInt(i))
		if err != nil {
			return nil, fmt.Errorf("%s rule #%d: %w", name, i, err)
		}
		rs.Rules = append(rs.Rules, r)
	}
	return rs, nil
}

func toRule(v lua.LValue) (highlight.Rule, error) {
	tbl, ok := v.(*lua.LTable)
	if !ok {
		return highlight.Rule{}, fmt.Errorf("%w: expected table, got %s", ErrInvalidLanguage, v.Type())
	}

	expr, err := stringField(tbl, "pattern", true)
	if err != nil {
		return highlight.Rule{}, err
	}
	catName, err := stringField(tbl, "category", true)
	if err != nil {
		return highlight.Rule{}, err
	}
	cat, ok := highlight.ParseCategory(catName)
	if !ok {
		return highlight.Rule{}, fmt.Errorf("%w: unknown category %q", ErrInvalidLanguage, catName)
	}

	group := 0
	switch g := tbl.RawGetString("group").(type) {
	case *lua.LNilType:
	case lua.LNumber:
		group = int(g)
		if float64(group) != float64(g) || group < 0 {
			return highlight.Rule{}, fmt.Errorf("%w: group must be a non-negative integer", ErrInvalidLanguage)
		}
	default:
		return highlight.Rule{}, fmt.Errorf("%w: group must be a number, got %s", ErrInvalidLanguage, g.Type())
	}

	return highlight.NewRule(expr, cat, group, lua.LVAsBool(tbl.RawGetString("ignore_case")))
}

func stringField(tbl *lua.LTable, key string, required bool) (string, error) {
	switch v := tbl.RawGetString(key).(type) {
	case lua.LString:
		if required && v == "" {
			return "", fmt.Errorf("%w: %s is empty", ErrInvalidLanguage, key)
		}
		return string(v), nil
	case *lua.LNilType:
		if required {
			return "", fmt.Errorf("%w: missing %s", ErrInvalidLanguage, key)
		}
		return "", nil
	default:
		return "", fmt.Errorf("%w: %s must be a string, got %s", ErrInvalidLanguage, key, v.Type())
	}
}

func stringList(tbl *lua.LTable, key string) ([]string, error) {
	v := tbl.RawGetString(key)
	if v == lua.LNil {
		return nil, nil
	}
	list, ok := v.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("%w: %s must be a list, got %s", ErrInvalidLanguage, key, v.Type())
	}
	out := make([]string, 0, list.Len())
	for i := 1; i <= list.Len(); i++ {
		s, ok := list.RawGetInt(i).(lua.LString)
		if !ok {
			return nil, fmt.Errorf("%w: %s[%d] must be a string", ErrInvalidLanguage, key, i)
		}
		out = append(out, string(s))
	}
	return out, nil
}

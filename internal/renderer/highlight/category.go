// Package highlight implements regex-driven syntax highlighting.
//
// A RuleSet is pure data: an ordered list of compiled patterns, each tagging
// its matches with a Category. HighlightLine applies a RuleSet to one line of
// text, carrying block-comment state from line to line. A StyleTable maps
// categories to display styles, and a Registry maps file extensions to
// RuleSets.
package highlight

// Category is the token class assigned to highlighted text.
type Category uint8

// Token categories. The set mirrors the formats used by the language rule
// tables; themes address them by name.
const (
	CategoryNone Category = iota
	CategoryKeyword
	CategoryControlFlow
	CategoryOperator
	CategoryString
	CategoryComment
	CategoryNumber
	CategoryClass
	CategoryFunction
	CategoryType
	CategoryBuiltin
	CategoryVariable
	CategorySymbol
	CategoryConstant
	CategoryTag
	CategoryAttribute
	CategorySelector
	CategoryProperty
	CategoryValue
	CategoryAtRule
	CategoryKey
	CategoryCommand
	CategoryHeading
	CategoryBold
	CategoryItalic
	CategoryLink
	CategoryListItem

	categoryCount
)

var categoryNames = [categoryCount]string{
	CategoryNone:        "none",
	CategoryKeyword:     "keyword",
	CategoryControlFlow: "control_flow",
	CategoryOperator:    "operator",
	CategoryString:      "string",
	CategoryComment:     "comment",
	CategoryNumber:      "number",
	CategoryClass:       "class",
	CategoryFunction:    "function",
	CategoryType:        "type",
	CategoryBuiltin:     "builtin",
	CategoryVariable:    "variable",
	CategorySymbol:      "symbol",
	CategoryConstant:    "constant",
	CategoryTag:         "tag",
	CategoryAttribute:   "attribute",
	CategorySelector:    "selector",
	CategoryProperty:    "property",
	CategoryValue:       "value",
	CategoryAtRule:      "at_rule",
	CategoryKey:         "key",
	CategoryCommand:     "command",
	CategoryHeading:     "heading",
	CategoryBold:        "bold",
	CategoryItalic:      "italic",
	CategoryLink:        "link",
	CategoryListItem:    "list_item",
}

var categoryByName = func() map[string]Category {
	m := make(map[string]Category, len(categoryNames))
	for i, name := range categoryNames {
		m[name] = Category(i)
	}
	return m
}()

// String returns the theme name of the category.
func (c Category) String() string {
	if c < categoryCount {
		return categoryNames[c]
	}
	return "unknown"
}

// ParseCategory looks up a category by its theme name.
func ParseCategory(name string) (Category, bool) {
	c, ok := categoryByName[name]
	return c, ok
}

// Categories returns every category except CategoryNone, in declaration order.
func Categories() []Category {
	out := make([]Category, 0, categoryCount-1)
	for c := CategoryNone + 1; c < categoryCount; c++ {
		out = append(out, c)
	}
	return out
}

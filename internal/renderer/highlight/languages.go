package highlight

import "github.com/dshills/codepad/internal/renderer/core"

// Shared patterns.
const (
	identifier   = `[A-Za-z_][A-Za-z0-9_]*`
	doubleQuoted = `"[^"]*"`
	singleQuoted = `'[^']*'`
	backQuoted   = "`[^`]*`"
	integer      = `\b[0-9]+\b`
	decimal      = `\b[0-9.]+\b`
	slashComment = `//.*`
	hashComment  = `#.*`
)

func boldKeywords() map[Category]core.Style {
	return map[Category]core.Style{
		CategoryKeyword: core.NewStyle(core.MustHex("#C586C0")).Bold(),
	}
}

// builtinRuleSets returns the compiled-in languages. Each call compiles a fresh
// copy; the registry calls it once.
func builtinRuleSets() []*RuleSet {
	return []*RuleSet{
		pythonRules(),
		javaScriptRules(),
		typeScriptRules(),
		cppRules(),
		htmlRules(),
		cssRules(),
		jsonRules(),
		bashRules(),
		markdownRules(),
		xmlRules(),
		javaRules(),
		rubyRules(),
		phpRules(),
		sqlRules(),
		swiftRules(),
		goRules(),
		csharpRules(),
		rustRules(),
		kotlinRules(),
		yamlRules(),
	}
}

func pythonRules() *RuleSet {
	return &RuleSet{
		Name:       "Python",
		Extensions: []string{".py"},
		Rules: []Rule{
			words(CategoryKeyword,
				"False", "None", "True", "and", "as", "assert", "async", "await",
				"break", "class", "continue", "def", "del", "elif", "else",
				"except", "finally", "for", "from", "global", "if", "import",
				"in", "is", "lambda", "nonlocal", "not", "or", "pass", "raise",
				"return", "try", "while", "with", "yield"),
			words(CategoryFunction,
				"print", "len", "range", "list", "dict", "tuple", "set", "str",
				"int", "float", "bool", "type", "open", "dir", "abs", "id", "sum"),
			capture(`\bclass\b\s+(`+identifier+`)`, CategoryClass, 1),
			capture(`\bdef\b\s+(`+identifier+`)`, CategoryFunction, 1),
			pattern(`==|!=|<=|>=|\*\*=?|//=?|[-+*/%]=?|[=<>]`, CategoryOperator),
			pattern(doubleQuoted, CategoryString),
			pattern(singleQuoted, CategoryString),
			pattern(integer, CategoryNumber),
			pattern(hashComment, CategoryComment),
		},
		Styles: map[Category]core.Style{
			CategoryKeyword: core.NewStyle(core.MustHex("#569CD6")).Bold(),
		},
	}
}

func javaScriptRules() *RuleSet {
	return &RuleSet{
		Name:       "JavaScript",
		Extensions: []string{".js"},
		Rules: []Rule{
			words(CategoryKeyword,
				"var", "let", "const", "function", "class", "import", "export", "of",
				"from", "as", "await", "async"),
			words(CategoryControlFlow,
				"if", "else", "for", "while", "do", "switch", "case", "break",
				"continue", "return", "try", "catch", "finally", "with"),
			words(CategoryBuiltin,
				"this", "window", "document", "console", "log", "new", "null", "undefined",
				"true", "false"),
			capture(`\b(?:class|function)\s+(`+identifier+`)`, CategoryFunction, 1),
			capture(`\b(`+identifier+`)\s*\(`, CategoryFunction, 1),
			pattern(doubleQuoted, CategoryString),
			pattern(singleQuoted, CategoryString),
			pattern(backQuoted, CategoryString),
			pattern(integer, CategoryNumber),
			pattern(slashComment, CategoryComment),
		},
		BlockComment: blockComment("/*", "*/"),
	}
}

func typeScriptRules() *RuleSet {
	return &RuleSet{
		Name:       "TypeScript",
		Extensions: []string{".ts"},
		Rules: []Rule{
			words(CategoryKeyword,
				"async", "await", "break", "case", "catch", "class", "const", "continue", "do",
				"else", "enum", "export", "extends", "finally", "for", "if", "import", "in",
				"instanceof", "new", "return", "super", "switch", "this", "throw", "true",
				"try", "typeof", "var", "void", "while", "let", "interface", "type", "implements"),
			words(CategoryType,
				"string", "number", "boolean", "any", "void", "null", "undefined"),
			pattern(doubleQuoted, CategoryString),
			pattern(singleQuoted, CategoryString),
			pattern(backQuoted, CategoryString),
			pattern(decimal, CategoryNumber),
			pattern(slashComment, CategoryComment),
		},
		BlockComment: blockComment("/*", "*/"),
		Styles:       boldKeywords(),
	}
}

func cppRules() *RuleSet {
	return &RuleSet{
		Name:       "C++",
		Extensions: []string{".cpp", ".h"},
		Rules: []Rule{
			words(CategoryKeyword,
				"alignas", "alignof", "and", "and_eq", "asm", "auto", "bitand", "bitor", "bool", "break",
				"case", "catch", "char", "char16_t", "char32_t", "class", "const", "constexpr", "const_cast",
				"continue", "decltype", "default", "delete", "do", "double", "dynamic_cast", "else", "enum",
				"explicit", "export", "extern", "false", "final", "float", "for", "friend", "goto", "if",
				"inline", "int", "long", "mutable", "namespace", "new", "noexcept", "not", "not_eq", "nullptr",
				"operator", "or", "or_eq", "private", "protected", "public", "register", "reinterpret_cast",
				"return", "short", "signed", "sizeof", "static", "static_assert", "static_cast", "struct",
				"switch", "template", "this", "thread_local", "throw", "true", "try", "typedef", "typeid",
				"typename", "union", "unsigned", "using", "virtual", "void", "volatile", "wchar_t", "while",
				"xor", "xor_eq"),
			words(CategoryType,
				"int", "long", "short", "double", "float", "char", "bool", "void",
				"string", "vector", "map", "set", "pair"),
			pattern(doubleQuoted, CategoryString),
			pattern(integer, CategoryNumber),
			pattern(slashComment, CategoryComment),
		},
		BlockComment: blockComment("/*", "*/"),
		Styles:       boldKeywords(),
	}
}

func htmlRules() *RuleSet {
	return &RuleSet{
		Name:       "HTML",
		Extensions: []string{".html", ".htm"},
		Rules: []Rule{
			capture(`<([a-zA-Z0-9]+)`, CategoryTag, 1),
			capture(`</([a-zA-Z0-9]+)>`, CategoryTag, 1),
			capture(`([a-zA-Z0-9]+)=`, CategoryAttribute, 1),
			pattern(doubleQuoted, CategoryString),
			pattern(singleQuoted, CategoryString),
			pattern(`<!--.*-->`, CategoryComment),
		},
	}
}

func cssRules() *RuleSet {
	return &RuleSet{
		Name:       "CSS",
		Extensions: []string{".css"},
		Rules: []Rule{
			pattern(`\.[a-zA-Z0-9_-]+`, CategorySelector),
			pattern(`#[a-zA-Z0-9_-]+`, CategorySelector),
			pattern(`\b[a-zA-Z-]+(?=:)`, CategoryProperty),
			capture(`:\s*([^;]+);`, CategoryValue, 1),
			pattern(doubleQuoted, CategoryString),
			pattern(singleQuoted, CategoryString),
			pattern(`@[a-zA-Z]+`, CategoryAtRule),
		},
		BlockComment: blockComment("/*", "*/"),
	}
}

func jsonRules() *RuleSet {
	return &RuleSet{
		Name:       "JSON",
		Extensions: []string{".json"},
		Rules: []Rule{
			capture(`("[^"]+")\s*:`, CategoryKey, 1),
			capture(`:\s*("[^"]*")`, CategoryString, 1),
			pattern(decimal, CategoryNumber),
			pattern(`\b(?:true|false|null)\b`, CategoryConstant),
		},
	}
}

func bashRules() *RuleSet {
	return &RuleSet{
		Name:       "Bash",
		Extensions: []string{".sh", ".bash"},
		Rules: []Rule{
			words(CategoryKeyword,
				"if", "then", "else", "elif", "fi", "for", "while", "do", "done",
				"case", "esac", "in", "until", "function"),
			words(CategoryCommand,
				"ls", "cd", "pwd", "echo", "cat", "grep", "find", "sudo", "apt-get", "yum", "git"),
			pattern(`\$`+identifier, CategoryVariable),
			pattern(doubleQuoted, CategoryString),
			pattern(singleQuoted, CategoryString),
			pattern(integer, CategoryNumber),
			pattern(hashComment, CategoryComment),
		},
	}
}

func markdownRules() *RuleSet {
	return &RuleSet{
		Name:       "Markdown",
		Extensions: []string{".md"},
		Rules: []Rule{
			pattern(`^(#+)\s+.*`, CategoryHeading),
			capture(`(\*\*|__)(.*?)\1`, CategoryBold, 2),
			capture(`(\*|_)(.*?)\1`, CategoryItalic, 2),
			capture(`\[(.*?)\]\((.*?)\)`, CategoryLink, 1),
			pattern(`^\s*(?:[*-]|\d+\.)\s+.*`, CategoryListItem),
		},
	}
}

func xmlRules() *RuleSet {
	return &RuleSet{
		Name:       "XML",
		Extensions: []string{".xml"},
		Rules: []Rule{
			capture(`<([a-zA-Z0-9_.:-]+)`, CategoryTag, 1),
			capture(`</([a-zA-Z0-9_.:-]+)>`, CategoryTag, 1),
			capture(`([a-zA-Z0-9_.-]+)=`, CategoryAttribute, 1),
			pattern(doubleQuoted, CategoryString),
			pattern(singleQuoted, CategoryString),
			pattern(`<!--.*-->`, CategoryComment),
		},
	}
}

func javaRules() *RuleSet {
	return &RuleSet{
		Name:       "Java",
		Extensions: []string{".java"},
		Rules: []Rule{
			words(CategoryKeyword,
				"abstract", "assert", "break", "case", "catch", "class", "const", "continue",
				"default", "do", "else", "enum", "extends", "final", "finally", "for",
				"goto", "if", "implements", "import", "instanceof", "interface", "native",
				"new", "package", "private", "protected", "public", "return", "static",
				"strictfp", "super", "switch", "synchronized", "this", "throw", "throws",
				"transient", "try", "void", "volatile", "while"),
			words(CategoryType,
				"boolean", "byte", "char", "double", "float", "int", "long", "short"),
			capture(`\bclass\s+(`+identifier+`)`, CategoryClass, 1),
			pattern(doubleQuoted, CategoryString),
			pattern(integer, CategoryNumber),
			pattern(slashComment, CategoryComment),
		},
		BlockComment: blockComment("/*", "*/"),
		Styles: map[Category]core.Style{
			CategoryClass: core.NewStyle(core.MustHex("#DCDCAA")),
		},
	}
}

func rubyRules() *RuleSet {
	return &RuleSet{
		Name:       "Ruby",
		Extensions: []string{".rb"},
		Rules: []Rule{
			words(CategoryKeyword,
				"BEGIN", "END", "alias", "and", "begin", "break", "case", "class", "def", "do",
				"else", "elsif", "end", "ensure", "for", "if", "in", "module", "next", "nil",
				"not", "or", "redo", "rescue", "retry", "return", "self", "super", "then",
				"unless", "until", "when", "while", "yield"),
			capture(`\bdef\s+(`+identifier+`)`, CategoryFunction, 1),
			pattern(`@`+identifier, CategoryVariable),
			pattern(`@@`+identifier, CategoryVariable),
			pattern(`\$`+identifier, CategoryVariable),
			capture(`:(`+identifier+`)`, CategorySymbol, 1),
			pattern(doubleQuoted, CategoryString),
			pattern(singleQuoted, CategoryString),
			pattern(hashComment, CategoryComment),
		},
	}
}

func phpRules() *RuleSet {
	return &RuleSet{
		Name:       "PHP",
		Extensions: []string{".php"},
		Rules: []Rule{
			words(CategoryKeyword,
				"__halt_compiler", "abstract", "and", "array", "as", "break", "callable", "case", "catch",
				"class", "clone", "const", "continue", "declare", "default", "die", "do", "echo", "else",
				"elseif", "empty", "enddeclare", "endfor", "endforeach", "endif", "endswitch", "endwhile",
				"eval", "exit", "extends", "final", "for", "foreach", "function", "global", "goto", "if",
				"implements", "include", "include_once", "instanceof", "interface", "isset", "list",
				"namespace", "new", "or", "print", "private", "protected", "public", "require",
				"require_once", "return", "static", "switch", "throw", "trait", "try", "unset", "use",
				"var", "while", "xor", "yield"),
			words(CategoryBuiltin,
				"printf", "strlen", "count", "isset", "empty", "define", "header", "session_start"),
			pattern(`\$`+identifier, CategoryVariable),
			pattern(doubleQuoted, CategoryString),
			pattern(singleQuoted, CategoryString),
			pattern(integer, CategoryNumber),
			pattern(slashComment, CategoryComment),
		},
		BlockComment: blockComment("/*", "*/"),
	}
}

func sqlRules() *RuleSet {
	return &RuleSet{
		Name:       "SQL",
		Extensions: []string{".sql"},
		Rules: []Rule{
			wordsFold(CategoryKeyword,
				"ADD", "ALTER", "AND", "AS", "ASC", "BETWEEN", "BY", "CASE", "CAST", "COLUMN",
				"CREATE", "DATABASE", "DEFAULT", "DELETE", "DESC", "DISTINCT", "DROP", "EXISTS",
				"FROM", "GROUP", "HAVING", "IN", "INDEX", "INSERT", "INTO", "IS", "JOIN", "LIKE",
				"LIMIT", "NOT", "NULL", "ON", "OR", "ORDER", "OUTER", "SELECT", "SET", "TABLE",
				"UNION", "UPDATE", "VALUES", "WHERE"),
			wordsFold(CategoryFunction,
				"COUNT", "AVG", "SUM", "MIN", "MAX", "LOWER", "UPPER", "TRIM", "CONCAT"),
			pattern(singleQuoted, CategoryString),
			pattern(integer, CategoryNumber),
			pattern(`--.*`, CategoryComment),
		},
		BlockComment: blockComment("/*", "*/"),
	}
}

func swiftRules() *RuleSet {
	return &RuleSet{
		Name:       "Swift",
		Extensions: []string{".swift"},
		Rules: []Rule{
			words(CategoryKeyword,
				"as", "async", "await", "break", "case", "catch", "class", "continue", "convenience",
				"default", "defer", "deinit", "didSet", "do", "dynamic", "else", "enum", "extension",
				"fallthrough", "false", "final", "for", "func", "if", "import", "in", "init", "inout",
				"internal", "is", "lazy", "let", "mutating", "nonmutating", "nil", "open", "optional",
				"override", "private", "protocol", "public", "required", "return", "self", "static",
				"struct", "subscript", "super", "switch", "throw", "throws", "true", "try", "typealias",
				"var", "weak", "where", "while", "willSet"),
			words(CategoryType,
				"Int", "Double", "Float", "String", "Bool", "Character", "Array", "Dictionary"),
			pattern(doubleQuoted, CategoryString),
			pattern(integer, CategoryNumber),
			pattern(slashComment, CategoryComment),
		},
		BlockComment: blockComment("/*", "*/"),
	}
}

func goRules() *RuleSet {
	return &RuleSet{
		Name:       "Go",
		Extensions: []string{".go"},
		Rules: []Rule{
			words(CategoryKeyword,
				"break", "case", "chan", "const", "continue", "default", "defer", "else",
				"fallthrough", "for", "func", "go", "goto", "if", "import", "interface",
				"map", "package", "range", "return", "select", "struct", "switch", "type",
				"var"),
			words(CategoryFunction,
				"make", "new", "len", "cap", "append", "copy", "close", "delete", "panic",
				"print", "println", "recover"),
			words(CategoryType,
				"bool", "byte", "complex64", "complex128", "error", "float32", "float64",
				"int", "int8", "int16", "int32", "int64", "rune", "string", "uint",
				"uint8", "uint16", "uint32", "uint64", "uintptr"),
			pattern(doubleQuoted, CategoryString),
			pattern(backQuoted, CategoryString),
			pattern(decimal, CategoryNumber),
			pattern(slashComment, CategoryComment),
		},
		BlockComment: blockComment("/*", "*/"),
	}
}

func csharpRules() *RuleSet {
	return &RuleSet{
		Name:       "C#",
		Extensions: []string{".cs"},
		Rules: []Rule{
			words(CategoryKeyword,
				"abstract", "as", "async", "await", "base", "break", "case", "catch", "checked",
				"const", "continue", "default", "delegate", "do", "else", "enum", "event",
				"explicit", "extern", "false", "finally", "fixed", "for", "foreach",
				"goto", "if", "implicit", "in", "is", "lock", "new", "null", "out", "override",
				"params", "private", "protected", "public", "readonly", "ref", "return",
				"sealed", "sizeof", "stackalloc", "static", "this", "throw", "true", "try",
				"typeof", "unchecked", "unsafe", "using", "virtual", "void", "volatile", "while",
				"yield"),
			words(CategoryClass, "class", "struct", "interface"),
			words(CategoryType,
				"bool", "byte", "char", "decimal", "double", "float", "int", "long", "object",
				"sbyte", "short", "string", "uint", "ulong", "ushort"),
			pattern(doubleQuoted, CategoryString),
			pattern(`@"[^"]*"`, CategoryString),
			pattern(decimal, CategoryNumber),
			pattern(`\[.*?\]`, CategoryAttribute),
			pattern(`\b`+identifier+`\s*(?=\()`, CategoryFunction),
			pattern(slashComment, CategoryComment),
		},
		BlockComment: blockComment("/*", "*/"),
		Styles: map[Category]core.Style{
			CategoryKeyword: core.NewStyle(core.MustHex("#C586C0")).Bold(),
			CategoryType:    core.NewStyle(core.MustHex("#4EC9B0")).Bold(),
			CategoryClass:   core.NewStyle(core.MustHex("#569CD6")).Bold(),
		},
	}
}

func rustRules() *RuleSet {
	return &RuleSet{
		Name:       "Rust",
		Extensions: []string{".rs"},
		Rules: []Rule{
			words(CategoryKeyword,
				"as", "async", "await", "break", "const", "continue", "crate", "dyn", "else", "enum",
				"extern", "false", "fn", "for", "if", "impl", "in", "let", "loop", "match",
				"mod", "move", "mut", "pub", "ref", "return", "self", "static", "struct",
				"super", "trait", "true", "type", "union", "unsafe", "use", "where", "while"),
			words(CategoryType,
				"bool", "char", "f32", "f64", "i8", "i16", "i32", "i64", "isize", "str",
				"u8", "u16", "u32", "u64", "usize"),
			capture(`\bfn\s+(`+identifier+`)`, CategoryFunction, 1),
			pattern(doubleQuoted, CategoryString),
			pattern(decimal, CategoryNumber),
			pattern(slashComment, CategoryComment),
		},
		BlockComment: blockComment("/*", "*/"),
		Styles:       boldKeywords(),
	}
}

func kotlinRules() *RuleSet {
	return &RuleSet{
		Name:       "Kotlin",
		Extensions: []string{".kt"},
		Rules: []Rule{
			words(CategoryKeyword,
				"as", "as?", "break", "by", "catch", "class", "continue", "do", "else", "false",
				"for", "fun", "if", "in", "is", "null", "object", "package", "return", "super",
				"this", "throw", "true", "try", "typealias", "var", "val", "when", "while"),
			words(CategoryType,
				"Any", "Boolean", "Byte", "Char", "Double", "Float", "Int", "Long", "Short", "String"),
			capture(`\bfun\s+(`+identifier+`)`, CategoryFunction, 1),
			pattern(doubleQuoted, CategoryString),
			pattern(`"""[\s\S]*?"""`, CategoryString),
			pattern(decimal, CategoryNumber),
			pattern(slashComment, CategoryComment),
		},
		BlockComment: blockComment("/*", "*/"),
		Styles:       boldKeywords(),
	}
}

func yamlRules() *RuleSet {
	return &RuleSet{
		Name:       "YAML",
		Extensions: []string{".yml", ".yaml"},
		Rules: []Rule{
			capture(`\b([a-zA-Z0-9_-]+)\s*:`, CategoryKey, 1),
			pattern(`(['"]).*?\1`, CategoryString),
			pattern(decimal, CategoryNumber),
			pattern(`\b(?:true|false|null)\b`, CategoryConstant),
			pattern(hashComment, CategoryComment),
		},
	}
}

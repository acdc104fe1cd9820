// Package lua runs user language definitions written in Lua.
//
// A languages file is a Lua chunk returning a list of language tables:
//
//	return {
//	  {
//	    name = "Lua",
//	    extensions = { ".lua" },
//	    block_comment = { "--[[", "]]" },
//	    rules = {
//	      { pattern = [[\b(local|function|end|return)\b]], category = "keyword" },
//	      { pattern = [["[^"]*"]], category = "string" },
//	      { pattern = [[(\w+)\s*\(]], category = "function", group = 1 },
//	      { pattern = [[\bSELECT\b]], category = "keyword", ignore_case = true },
//	    },
//	  },
//	}
//
// # Sandbox
//
// Scripts run in a State with only the base, table, string and math
// libraries. The Sandbox removes every way of loading further code
// (dofile, loadfile, load, loadstring, require) and an execution timeout
// stops runaway loops.
package lua

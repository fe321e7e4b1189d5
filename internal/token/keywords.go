package token

// pythonKeywords is the reserved-word set. The tokenizer does not give
// keywords their own kinds (they stay NAME, like Python's tokenize module);
// the parser consults this set where reservedness matters, e.g. to rule out
// `if (...)` as a call of `if`.
var pythonKeywords = map[string]struct{}{
	"False": {}, "None": {}, "True": {}, "and": {}, "as": {}, "assert": {},
	"async": {}, "await": {}, "break": {}, "class": {}, "continue": {},
	"def": {}, "del": {}, "elif": {}, "else": {}, "except": {}, "finally": {},
	"for": {}, "from": {}, "global": {}, "if": {}, "import": {}, "in": {},
	"is": {}, "lambda": {}, "nonlocal": {}, "not": {}, "or": {}, "pass": {},
	"raise": {}, "return": {}, "try": {}, "while": {}, "with": {}, "yield": {},
}

// IsKeyword reports whether text is a Python reserved word.
func IsKeyword(text string) bool {
	_, ok := pythonKeywords[text]
	return ok
}

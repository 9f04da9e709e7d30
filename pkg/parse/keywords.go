package parse

import "sort"

// Words reserved as statement keywords.
var statementKeywords = []string{
	"APPEND", "BLOAD", "BSAVE", "CALL", "CATALOG", "CLEAR", "CLOSE", "COLOR",
	"CONT", "CREATE", "DATA", "DEF", "DEL", "DELETE", "DIM", "DRAW", "ELSE",
	"END", "FLASH", "FLUSH", "FOR", "GET", "GOSUB", "GOTO", "GR", "HCOLOR",
	"HGR", "HGR2", "HIMEM:", "HLIN", "HOME", "HPLOT", "HTAB", "IF", "IN#",
	"INPUT", "INVERSE", "LET", "LIST", "LOAD", "LOMEM:", "NEW", "NEXT",
	"NORMAL", "NOTRACE", "ON", "ONERR", "OPEN", "PLOT", "POKE", "POP",
	"POSITION", "PR#", "PREFIX", "PRINT", "READ", "RECALL", "REM", "RENAME", "RESTORE",
	"RESUME", "RETURN", "ROT", "RUN", "SAVE", "SCALE", "SHLOAD", "SPEED",
	"STOP", "STORE", "TEXT", "TRACE", "VLIN", "VTAB", "WAIT", "WEND", "WHILE",
	"WRITE", "XDRAW",
}

// Words that only appear inside statements.
var secondaryKeywords = []string{
	"AND", "AT", "FN", "MOD", "NOT", "OR", "SPC", "STEP", "TAB", "THEN", "TO",
}

// Arity of each built-in function.
var builtinArity = map[string][2]int{
	"ABS": {1, 1}, "ASC": {1, 1}, "ATN": {1, 1}, "CHR$": {1, 1},
	"COS": {1, 1}, "EXP": {1, 1}, "FRE": {1, 1}, "HSCRN": {2, 2},
	"INT": {1, 1}, "LEFT$": {2, 2}, "LEN": {1, 1}, "LOG": {1, 1},
	"MID$": {2, 3}, "PDL": {1, 1}, "PEEK": {1, 1}, "POS": {1, 1},
	"RIGHT$": {2, 2}, "RND": {1, 1}, "SCRN": {2, 2}, "SGN": {1, 1},
	"SIN": {1, 1}, "SQR": {1, 1}, "STR$": {1, 1}, "TAN": {1, 1},
	"USR": {1, 1}, "VAL": {1, 1},
}

var keywords = map[string]bool{}

func init() {
	for _, w := range statementKeywords {
		keywords[w] = true
	}
	for _, w := range secondaryKeywords {
		keywords[w] = true
	}
	for w := range builtinArity {
		keywords[w] = true
	}
}

// IsKeyword returns whether the given upper-case word is reserved.
func IsKeyword(w string) bool { return keywords[w] }

// IsBuiltin returns whether the given upper-case word names a built-in
// function.
func IsBuiltin(w string) bool {
	_, ok := builtinArity[w]
	return ok
}

// Keywords returns all reserved words in sorted order.
func Keywords() []string {
	ws := make([]string, 0, len(keywords))
	for w := range keywords {
		ws = append(ws, w)
	}
	sort.Strings(ws)
	return ws
}

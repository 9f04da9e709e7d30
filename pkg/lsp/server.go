package lsp

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	lsp "github.com/sourcegraph/go-lsp"
	"github.com/sourcegraph/jsonrpc2"

	"src.abasic.dev/pkg/diag"
	"src.abasic.dev/pkg/parse"
)

var (
	errMethodNotFound = &jsonrpc2.Error{
		Code: jsonrpc2.CodeMethodNotFound, Message: "method not found"}
	errInvalidParams = &jsonrpc2.Error{
		Code: jsonrpc2.CodeInvalidParams, Message: "invalid params"}
)

type server struct {
	mu      sync.Mutex
	content map[lsp.DocumentURI]string
}

func newServer() *server {
	return &server{content: make(map[lsp.DocumentURI]string)}
}

func handler(s *server) jsonrpc2.Handler {
	return routingHandler(map[string]method{
		"initialize":              s.initialize,
		"textDocument/didOpen":    s.didOpen,
		"textDocument/didChange":  s.didChange,
		"textDocument/didClose":   s.didClose,
		"textDocument/hover":      s.hover,
		"textDocument/completion": s.completion,

		// Required by the protocol.
		"initialized": noop,
		"shutdown":    noop,
		"exit":        noop,
		// Sent by clients even when the server doesn't advertise support.
		"workspace/didChangeWatchedFiles": noop,
	})
}

type method func(context.Context, jsonrpc2.JSONRPC2, json.RawMessage) (any, error)

func noop(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return nil, nil
}

func routingHandler(methods map[string]method) jsonrpc2.Handler {
	return jsonrpc2.HandlerWithError(func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
		fn, ok := methods[req.Method]
		if !ok {
			return nil, errMethodNotFound
		}
		var params json.RawMessage
		if req.Params != nil {
			params = *req.Params
		}
		return fn(ctx, conn, params)
	})
}

// Handler implementations. These are all called synchronously.

func (s *server) initialize(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return &lsp.InitializeResult{
		Capabilities: lsp.ServerCapabilities{
			TextDocumentSync: &lsp.TextDocumentSyncOptionsOrKind{
				Options: &lsp.TextDocumentSyncOptions{
					OpenClose: true,
					Change:    lsp.TDSKFull,
				},
			},
			CompletionProvider: &lsp.CompletionOptions{},
			HoverProvider:      true,
		},
	}, nil
}

func (s *server) didOpen(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidOpenTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	uri, content := params.TextDocument.URI, params.TextDocument.Text
	s.setContent(uri, content)
	go publishDiagnostics(ctx, conn, uri, content)
	return nil, nil
}

func (s *server) didChange(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidChangeTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil || len(params.ContentChanges) == 0 {
		return nil, errInvalidParams
	}
	// ContentChanges includes the full text since the server is only
	// advertised to support that; see the initialize method.
	uri, content := params.TextDocument.URI, params.ContentChanges[0].Text
	s.setContent(uri, content)
	go publishDiagnostics(ctx, conn, uri, content)
	return nil, nil
}

func (s *server) didClose(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidCloseTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	s.mu.Lock()
	delete(s.content, params.TextDocument.URI)
	s.mu.Unlock()
	return nil, nil
}

func (s *server) setContent(uri lsp.DocumentURI, content string) {
	s.mu.Lock()
	s.content[uri] = content
	s.mu.Unlock()
}

func (s *server) getContent(uri lsp.DocumentURI) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.content[uri]
}

// hover shows the keyword under the cursor.
func (s *server) hover(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.TextDocumentPositionParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	content := s.getContent(params.TextDocument.URI)
	idx := lspPositionToIdx(content, params.Position)
	for _, tok := range lineTokens(content, idx) {
		if tok.Type == parse.Keyword && tok.From <= idx && idx < tok.To {
			return lsp.Hover{
				Contents: []lsp.MarkedString{{Language: "basic", Value: tok.Text}},
				Range:    ptr(lspRangeFromRange(content, tok)),
			}, nil
		}
	}
	return lsp.Hover{}, nil
}

func ptr[T any](v T) *T { return &v }

// lineTokens lexes the line of content that contains idx. The ranges of the
// tokens are moved to be relative to content.
func lineTokens(content string, idx int) []parse.Token {
	start := strings.LastIndexByte(content[:idx], '\n') + 1
	end := strings.IndexByte(content[start:], '\n')
	if end == -1 {
		end = len(content)
	} else {
		end += start
	}
	line := strings.TrimSuffix(content[start:end], "\r")
	_, rest, ok := parse.SplitLineNumber(line)
	if !ok {
		return nil
	}
	offset := start + len(line) - len(rest)
	toks := parse.Lex(rest)
	for i := range toks {
		toks[i].From += offset
		toks[i].To += offset
	}
	return toks
}

func (s *server) completion(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.CompletionParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	content := s.getContent(params.TextDocument.URI)
	dot := lspPositionToIdx(content, params.Position)
	return completeKeywords(content, dot), nil
}

// completeKeywords returns the keywords that complete the word before dot.
func completeKeywords(content string, dot int) []lsp.CompletionItem {
	start := dot
	for start > 0 && isWordByte(content[start-1]) {
		start--
	}
	word := strings.ToUpper(content[start:dot])
	items := []lsp.CompletionItem{}
	if word == "" {
		return items
	}
	replace := lspRangeFromRange(content, diag.Ranging{From: start, To: dot})
	for _, kw := range parse.Keywords() {
		if !strings.HasPrefix(kw, word) {
			continue
		}
		kind := lsp.CIKKeyword
		if parse.IsBuiltin(kw) {
			kind = lsp.CIKFunction
		}
		items = append(items, lsp.CompletionItem{
			Label:    kw,
			Kind:     kind,
			TextEdit: &lsp.TextEdit{Range: replace, NewText: kw},
		})
	}
	return items
}

func isWordByte(b byte) bool {
	return 'A' <= b && b <= 'Z' || 'a' <= b && b <= 'z' || b == '$'
}


func publishDiagnostics(ctx context.Context, conn jsonrpc2.JSONRPC2, uri lsp.DocumentURI, content string) {
	conn.Notify(ctx, "textDocument/publishDiagnostics",
		lsp.PublishDiagnosticsParams{URI: uri, Diagnostics: diagnostics(content)})
}

// diagnostics checks every line of a program. Lines that do not parse are
// errors; lines without a number and lines whose number is used again later
// are warnings, since loading the program drops them.
func diagnostics(content string) []lsp.Diagnostic {
	diags := []lsp.Diagnostic{}
	seen := map[int]diag.Ranging{}
	start := 0
	for _, line := range strings.SplitAfter(content, "\n") {
		text := strings.TrimRight(line, "\r\n")
		lineRange := diag.Ranging{From: start, To: start + len(text)}
		n, rest, ok := parse.SplitLineNumber(text)
		switch {
		case strings.TrimSpace(text) == "":
		case !ok:
			diags = append(diags, lsp.Diagnostic{
				Range:    lspRangeFromRange(content, lineRange),
				Severity: lsp.Warning,
				Source:   "abasic",
				Message:  "line has no number and is ignored",
			})
		default:
			if prev, dup := seen[n]; dup {
				diags = append(diags, lsp.Diagnostic{
					Range:    lspRangeFromRange(content, prev),
					Severity: lsp.Warning,
					Source:   "abasic",
					Message:  fmt.Sprintf("line %d is replaced by a later line", n),
				})
			}
			seen[n] = lineRange
			offset := start + len(text) - len(rest)
			if _, err := parse.Parse(fmt.Sprintf("line %d", n), rest); err != nil {
				r := diag.Ranging{From: offset, To: lineRange.To}
				msg := err.Error()
				if pe, ok := err.(*parse.Error); ok {
					r = diag.Ranging{From: offset + pe.Context.From, To: offset + pe.Context.To}
					msg = pe.Message
				}
				diags = append(diags, lsp.Diagnostic{
					Range:    lspRangeFromRange(content, r),
					Severity: lsp.Error,
					Source:   "parse",
					Message:  msg,
				})
			}
		}
		start += len(line)
	}
	sort.SliceStable(diags, func(i, j int) bool {
		return diags[i].Range.Start.Line < diags[j].Range.Start.Line
	})
	return diags
}

func lspRangeFromRange(s string, r diag.Ranger) lsp.Range {
	rg := r.Range()
	return lsp.Range{
		Start: lspPositionFromIdx(s, rg.From),
		End:   lspPositionFromIdx(s, rg.To),
	}
}

func lspPositionToIdx(s string, pos lsp.Position) int {
	var idx int
	walkString(s, func(i int, p lsp.Position) bool {
		idx = i
		return p.Line < pos.Line || (p.Line == pos.Line && p.Character < pos.Character)
	})
	return idx
}

func lspPositionFromIdx(s string, idx int) lsp.Position {
	var pos lsp.Position
	walkString(s, func(i int, p lsp.Position) bool {
		pos = p
		return i < idx
	})
	return pos
}

// Generates (index, lspPosition) pairs in s, stopping if f returns false.
func walkString(s string, f func(i int, p lsp.Position) bool) {
	var p lsp.Position
	lastCR := false

	for i, r := range s {
		if !f(i, p) {
			return
		}
		switch {
		case r == '\r':
			p.Line++
			p.Character = 0
		case r == '\n':
			if !lastCR {
				p.Line++
				p.Character = 0
			}
		case r <= 0xFFFF:
			// One UTF-16 unit.
			p.Character++
		default:
			// Two UTF-16 units.
			p.Character += 2
		}
		lastCR = r == '\r'
	}
	f(len(s), p)
}

package lsp

import (
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/nalgeon/be"
	lsp "github.com/sourcegraph/go-lsp"
	"github.com/sourcegraph/jsonrpc2"

	"src.abasic.dev/pkg/prog/progtest"
	"src.abasic.dev/pkg/testutil"
)

const program = "10 PRINT \"HI\"\nREM NO NUMBER\n20 PRINT (\n10 END\n"

func TestDiagnostics(t *testing.T) {
	diags := diagnostics(program)
	be.Equal(t, len(diags), 3)

	be.Equal(t, diags[0].Severity, lsp.Warning)
	be.Equal(t, diags[0].Message, "line 10 is replaced by a later line")
	be.Equal(t, diags[0].Range, lsp.Range{
		Start: lsp.Position{Line: 0, Character: 0},
		End:   lsp.Position{Line: 0, Character: 13}})

	be.Equal(t, diags[1].Severity, lsp.Warning)
	be.Equal(t, diags[1].Message, "line has no number and is ignored")
	be.Equal(t, diags[1].Range.Start.Line, 1)

	be.Equal(t, diags[2].Severity, lsp.Error)
	be.Equal(t, diags[2].Source, "parse")
	be.Equal(t, diags[2].Range.Start.Line, 2)
	be.True(t, diags[2].Range.Start.Character >= 3)

	be.Equal(t, len(diagnostics("10 PRINT 1\r\n20 GOTO 10\r\n")), 0)
	be.Equal(t, len(diagnostics("")), 0)
}

func TestCompleteKeywords(t *testing.T) {
	items := completeKeywords("10 GOS", 6)
	want := []lsp.CompletionItem{{
		Label: "GOSUB",
		Kind:  lsp.CIKKeyword,
		TextEdit: &lsp.TextEdit{
			Range: lsp.Range{
				Start: lsp.Position{Line: 0, Character: 3},
				End:   lsp.Position{Line: 0, Character: 6}},
			NewText: "GOSUB"},
	}}
	if diff := cmp.Diff(want, items); diff != "" {
		t.Errorf("completion (-want +got):\n%s", diff)
	}

	kinds := map[string]lsp.CompletionItemKind{}
	for _, item := range completeKeywords("10 PRINT le", 11) {
		kinds[item.Label] = item.Kind
	}
	be.Equal(t, kinds["LEFT$"], lsp.CIKFunction)
	be.Equal(t, kinds["LET"], lsp.CIKKeyword)

	be.Equal(t, len(completeKeywords("10 PRINT ", 9)), 0)
}

func TestHover(t *testing.T) {
	s := newServer()
	s.setContent("file:///a.bas", "5 REM\n10 PRINT X\n")

	hover := func(line, char int) lsp.Hover {
		t.Helper()
		params, err := json.Marshal(lsp.TextDocumentPositionParams{
			TextDocument: lsp.TextDocumentIdentifier{URI: "file:///a.bas"},
			Position:     lsp.Position{Line: line, Character: char}})
		be.Equal(t, err, nil)
		h, err := s.hover(context.Background(), nil, params)
		be.Equal(t, err, nil)
		return h.(lsp.Hover)
	}

	h := hover(1, 4)
	be.Equal(t, len(h.Contents), 1)
	be.Equal(t, h.Contents[0].Value, "PRINT")
	be.Equal(t, *h.Range, lsp.Range{
		Start: lsp.Position{Line: 1, Character: 3},
		End:   lsp.Position{Line: 1, Character: 8}})

	be.Equal(t, len(hover(1, 9).Contents), 0)
	be.Equal(t, len(hover(1, 0).Contents), 0)
}

func TestInvalidParams(t *testing.T) {
	s := newServer()
	_, err := s.completion(context.Background(), nil, json.RawMessage("[]"))
	be.Equal(t, err, error(errInvalidParams))
	_, err = s.didChange(context.Background(), nil, json.RawMessage(`{"contentChanges":[]}`))
	be.Equal(t, err, error(errInvalidParams))
}

type clientHandler struct {
	diags chan lsp.PublishDiagnosticsParams
}

func (h clientHandler) Handle(_ context.Context, _ *jsonrpc2.Conn, req *jsonrpc2.Request) {
	if req.Method != "textDocument/publishDiagnostics" || req.Params == nil {
		return
	}
	var params lsp.PublishDiagnosticsParams
	if json.Unmarshal(*req.Params, &params) == nil {
		h.diags <- params
	}
}

func TestServer(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	serverEnd, clientEnd := net.Pipe()
	jsonrpc2.NewConn(ctx,
		jsonrpc2.NewBufferedStream(serverEnd, jsonrpc2.VSCodeObjectCodec{}),
		handler(newServer()))
	h := clientHandler{make(chan lsp.PublishDiagnosticsParams, 4)}
	client := jsonrpc2.NewConn(ctx,
		jsonrpc2.NewBufferedStream(clientEnd, jsonrpc2.VSCodeObjectCodec{}), h)
	defer client.Close()

	var init lsp.InitializeResult
	be.Equal(t, client.Call(ctx, "initialize", lsp.InitializeParams{}, &init), nil)
	be.True(t, init.Capabilities.CompletionProvider != nil)
	be.Equal(t, client.Notify(ctx, "initialized", nil), nil)

	err := client.Notify(ctx, "textDocument/didOpen", lsp.DidOpenTextDocumentParams{
		TextDocument: lsp.TextDocumentItem{URI: "file:///p.bas", Text: program}})
	be.Equal(t, err, nil)
	diags := receive(t, h.diags)
	be.Equal(t, diags.URI, lsp.DocumentURI("file:///p.bas"))
	be.Equal(t, len(diags.Diagnostics), 3)

	err = client.Notify(ctx, "textDocument/didChange", lsp.DidChangeTextDocumentParams{
		TextDocument: lsp.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: lsp.TextDocumentIdentifier{URI: "file:///p.bas"}},
		ContentChanges: []lsp.TextDocumentContentChangeEvent{{Text: "10 G"}}})
	be.Equal(t, err, nil)
	diags = receive(t, h.diags)
	be.Equal(t, len(diags.Diagnostics), 1)

	var items []lsp.CompletionItem
	err = client.Call(ctx, "textDocument/completion", lsp.CompletionParams{
		TextDocumentPositionParams: lsp.TextDocumentPositionParams{
			TextDocument: lsp.TextDocumentIdentifier{URI: "file:///p.bas"},
			Position:     lsp.Position{Line: 0, Character: 4}}}, &items)
	be.Equal(t, err, nil)
	var labels []string
	for _, item := range items {
		labels = append(labels, item.Label)
	}
	be.Equal(t, labels, []string{"GET", "GOSUB", "GOTO", "GR"})

	err = client.Call(ctx, "no/such/method", nil, nil)
	be.True(t, err != nil)
}

func receive(t *testing.T, ch <-chan lsp.PublishDiagnosticsParams) lsp.PublishDiagnosticsParams {
	t.Helper()
	select {
	case p := <-ch:
		return p
	case <-time.After(testutil.Scaled(5 * time.Second)):
		t.Fatal("timed out waiting for diagnostics")
		return lsp.PublishDiagnosticsParams{}
	}
}

func TestProgram(t *testing.T) {
	progtest.Test(t, Program{},
		progtest.ThatABasic().
			ExitsWith(2).
			WritesStderr("internal error: no suitable subprogram\n"),
		progtest.ThatABasic("-lsp").DoesNothing(),
	)
}

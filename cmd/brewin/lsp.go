package main

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/mgomes/brewin/brewin"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	glspserver "github.com/tliron/glsp/server"
)

const lspName = "brewin-lsp"

var lspPrimitiveTypes = []string{"int", "string", "bool", "void"}

// lspServer publishes load errors and lint warnings for open documents and
// answers completion and hover requests from the declared classes.
type lspServer struct {
	engine *brewin.Engine

	mu   sync.Mutex
	docs map[string]string

	handler protocol.Handler
	server  *glspserver.Server
	version string
}

func newLSPServer() *lspServer {
	s := &lspServer{
		engine:  brewin.MustNewEngine(brewin.Config{}),
		docs:    make(map[string]string),
		version: "0.1.0",
	}
	s.handler = protocol.Handler{
		Initialize:  s.initialize,
		Initialized: s.initialized,
		Shutdown:    s.shutdown,
		SetTrace:    s.setTrace,

		TextDocumentDidOpen:   s.textDocumentDidOpen,
		TextDocumentDidChange: s.textDocumentDidChange,
		TextDocumentDidClose:  s.textDocumentDidClose,

		TextDocumentCompletion: s.textDocumentCompletion,
		TextDocumentHover:      s.textDocumentHover,
	}
	s.server = glspserver.NewServer(&s.handler, lspName, false)
	return s
}

func runLSP() error {
	commonlog.Configure(0, nil)
	return newLSPServer().server.RunStdio()
}

func (s *lspServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()

	syncKind := protocol.TextDocumentSyncKindFull
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    &syncKind,
	}
	capabilities.CompletionProvider = &protocol.CompletionOptions{
		TriggerCharacters: []string{"(", "@"},
	}
	capabilities.HoverProvider = true

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lspName,
			Version: &s.version,
		},
	}, nil
}

func (s *lspServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (s *lspServer) shutdown(ctx *glsp.Context) error {
	return nil
}

func (s *lspServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	return nil
}

func (s *lspServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := params.TextDocument.URI
	s.store(uri, params.TextDocument.Text)
	s.publishDiagnostics(ctx, uri, params.TextDocument.Text)
	return nil
}

func (s *lspServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	last := params.ContentChanges[len(params.ContentChanges)-1]
	whole, ok := last.(protocol.TextDocumentContentChangeEventWhole)
	if !ok {
		return nil
	}
	uri := params.TextDocument.URI
	s.store(uri, whole.Text)
	s.publishDiagnostics(ctx, uri, whole.Text)
	return nil
}

func (s *lspServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	s.mu.Lock()
	delete(s.docs, string(uri))
	s.mu.Unlock()

	go ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (s *lspServer) textDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	text, ok := s.document(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	prefix := extractPrefix(text, params.Position)
	if prefix == "" {
		return nil, nil
	}
	return completionItems(s.engine, text, prefix), nil
}

func (s *lspServer) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	text, ok := s.document(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	word := extractWord(text, params.Position)
	if word == "" {
		return nil, nil
	}
	value := hoverMarkdown(s.engine, text, word)
	if value == "" {
		return nil, nil
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: value,
		},
	}, nil
}

func (s *lspServer) store(uri protocol.DocumentUri, text string) {
	s.mu.Lock()
	s.docs[string(uri)] = text
	s.mu.Unlock()
}

func (s *lspServer) document(uri protocol.DocumentUri) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	text, ok := s.docs[string(uri)]
	return text, ok
}

func (s *lspServer) publishDiagnostics(ctx *glsp.Context, uri protocol.DocumentUri, text string) {
	go ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnosticsForSource(s.engine, text),
	})
}

// diagnosticsForSource reports the load error of source, or the analyzer
// warnings when it loads cleanly.
func diagnosticsForSource(engine *brewin.Engine, source string) []protocol.Diagnostic {
	program, err := engine.Compile(source)
	if err != nil {
		var brewinErr *brewin.Error
		if errors.As(err, &brewinErr) {
			message := brewinErr.Kind.String() + ": " + brewinErr.Message
			return []protocol.Diagnostic{newDiagnostic(brewinErr.Pos, protocol.DiagnosticSeverityError, message)}
		}
		return []protocol.Diagnostic{newDiagnostic(brewin.Position{}, protocol.DiagnosticSeverityError, err.Error())}
	}

	warnings := analyzeProgramWarnings(program)
	out := make([]protocol.Diagnostic, 0, len(warnings))
	for _, warning := range warnings {
		message := fmt.Sprintf("%s (%s)", warning.Message, warning.Method)
		out = append(out, newDiagnostic(warning.Pos, protocol.DiagnosticSeverityWarning, message))
	}
	return out
}

func newDiagnostic(pos brewin.Position, severity protocol.DiagnosticSeverity, message string) protocol.Diagnostic {
	line := protocol.UInteger(max(pos.Line-1, 0))
	character := protocol.UInteger(max(pos.Column-1, 0))
	source := lspName
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: line, Character: character},
			End:   protocol.Position{Line: line, Character: character + 1},
		},
		Severity: &severity,
		Source:   &source,
		Message:  message,
	}
}

// completionItems offers keywords, primitive types and the classes declared
// in source. Class names are only available while the document loads.
func completionItems(engine *brewin.Engine, source, prefix string) []protocol.CompletionItem {
	var items []protocol.CompletionItem
	add := func(label, detail string, kind protocol.CompletionItemKind) {
		if !strings.HasPrefix(label, prefix) {
			return
		}
		items = append(items, protocol.CompletionItem{
			Label:      label,
			Kind:       &kind,
			Detail:     &detail,
			InsertText: &label,
		})
	}

	for _, keyword := range replKeywords {
		if !isPrimitiveType(keyword) {
			add(keyword, "keyword", protocol.CompletionItemKindKeyword)
		}
	}
	for _, name := range lspPrimitiveTypes {
		add(name, "primitive type", protocol.CompletionItemKindTypeParameter)
	}
	if program, err := engine.Compile(source); err == nil {
		for _, def := range program.Classes() {
			detail := "class"
			if def.IsTemplate() {
				detail = fmt.Sprintf("template (%s)", strings.Join(def.TypeParams, " "))
			} else if def.Super != nil {
				detail = "class inherits " + def.Super.Name
			}
			add(def.Name, detail, protocol.CompletionItemKindClass)
		}
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].Label < items[j].Label })
	return items
}

func hoverMarkdown(engine *brewin.Engine, source, word string) string {
	if isPrimitiveType(word) {
		return fmt.Sprintf("`%s`\n\nBrewin primitive type", word)
	}
	for _, keyword := range replKeywords {
		if keyword == word {
			return fmt.Sprintf("`%s`\n\nBrewin keyword", word)
		}
	}

	program, err := engine.Compile(source)
	if err != nil {
		return ""
	}
	name, _, _ := strings.Cut(word, "@")
	def, ok := program.Class(name)
	if !ok || def.Decl == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**%s**", def.Name)
	if def.IsTemplate() {
		fmt.Fprintf(&b, " (%s)", strings.Join(def.TypeParams, " "))
	}
	if def.Decl.Super != "" {
		fmt.Fprintf(&b, " inherits %s", def.Decl.Super)
	}
	b.WriteString("\n")
	for _, field := range def.Decl.Fields {
		fmt.Fprintf(&b, "\n- field `%s %s`", field.Type, field.Name)
	}
	for _, method := range def.Decl.Methods {
		params := make([]string, len(method.Params))
		for i, param := range method.Params {
			params[i] = param.Type + " " + param.Name
		}
		fmt.Fprintf(&b, "\n- method `%s %s(%s)`", method.ReturnType, method.Name, strings.Join(params, ", "))
	}
	return b.String()
}

func isPrimitiveType(word string) bool {
	for _, name := range lspPrimitiveTypes {
		if name == word {
			return true
		}
	}
	return false
}

func isWordByte(ch byte) bool {
	r := rune(ch)
	return unicode.IsLetter(r) || unicode.IsDigit(r) || ch == '_' || ch == '@'
}

// extractPrefix returns the word fragment before the cursor.
func extractPrefix(text string, pos protocol.Position) string {
	lines := strings.Split(text, "\n")
	if int(pos.Line) >= len(lines) {
		return ""
	}
	line := lines[pos.Line]
	col := min(int(pos.Character), len(line))

	start := col
	for start > 0 && isWordByte(line[start-1]) {
		start--
	}
	return line[start:col]
}

// extractWord returns the whole word under the cursor.
func extractWord(text string, pos protocol.Position) string {
	lines := strings.Split(text, "\n")
	if int(pos.Line) >= len(lines) {
		return ""
	}
	line := lines[pos.Line]
	col := min(int(pos.Character), len(line))

	start := col
	for start > 0 && isWordByte(line[start-1]) {
		start--
	}
	end := col
	for end < len(line) && isWordByte(line[end]) {
		end++
	}
	return line[start:end]
}

func boolPtr(b bool) *bool {
	return &b
}

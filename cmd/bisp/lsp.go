package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/mgomes/bisp/bisp"
)

var builtinDocs = map[string]string{
	"list": "Collects its arguments into a Q-expression.",
	"head": "Returns a Q-expression holding only the first element of its argument.",
	"tail": "Returns its Q-expression argument without the first element.",
	"join": "Concatenates Q-expressions in order.",
	"eval": "Evaluates a Q-expression as an S-expression.",
	"+":    "Adds numbers left to right.",
	"-":    "Subtracts left to right; negates a single argument.",
	"*":    "Multiplies numbers left to right.",
	"/":    "Divides left to right, truncating toward zero.",
	"%":    "Remainder left to right, with the sign of the dividend.",
}

const maxPayloadSize = 64 << 20

type lspInboundMessage struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id,omitempty"`
	Method  string           `json:"method,omitempty"`
	Params  json.RawMessage  `json:"params,omitempty"`
}

type lspResponseError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type lspOutboundMessage struct {
	JSONRPC string            `json:"jsonrpc"`
	ID      *json.RawMessage  `json:"id,omitempty"`
	Method  string            `json:"method,omitempty"`
	Params  any               `json:"params,omitempty"`
	Result  any               `json:"result,omitempty"`
	Error   *lspResponseError `json:"error,omitempty"`
}

type lspDidOpenParams struct {
	TextDocument struct {
		URI  string `json:"uri"`
		Text string `json:"text"`
	} `json:"textDocument"`
}

type lspDidChangeParams struct {
	TextDocument struct {
		URI string `json:"uri"`
	} `json:"textDocument"`
	ContentChanges []struct {
		Text string `json:"text"`
	} `json:"contentChanges"`
}

type lspDidCloseParams struct {
	TextDocument struct {
		URI string `json:"uri"`
	} `json:"textDocument"`
}

type lspTextDocumentPositionParams struct {
	TextDocument struct {
		URI string `json:"uri"`
	} `json:"textDocument"`
	Position struct {
		Line      int `json:"line"`
		Character int `json:"character"`
	} `json:"position"`
}

type lspServer struct {
	reader *bufio.Reader
	writer *bufio.Writer
	docs   map[string]string
}

func runLSP() error {
	server := newLSPServer(os.Stdin, os.Stdout)
	return server.serve()
}

func newLSPServer(r io.Reader, w io.Writer) *lspServer {
	return &lspServer{
		reader: bufio.NewReader(r),
		writer: bufio.NewWriter(w),
		docs:   make(map[string]string),
	}
}

func (s *lspServer) serve() error {
	for {
		payload, err := s.readPayload()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		var incoming lspInboundMessage
		if err := json.Unmarshal(payload, &incoming); err != nil {
			continue
		}

		messages := s.handleMessage(incoming)
		for _, msg := range messages {
			if err := s.writePayload(msg); err != nil {
				return err
			}
		}

		if incoming.Method == "exit" {
			return nil
		}
	}
}

func (s *lspServer) handleMessage(incoming lspInboundMessage) []lspOutboundMessage {
	switch incoming.Method {
	case "initialize":
		return []lspOutboundMessage{
			{
				JSONRPC: "2.0",
				ID:      incoming.ID,
				Result: map[string]any{
					"capabilities": map[string]any{
						"textDocumentSync": 1,
						"hoverProvider":    true,
						"completionProvider": map[string]any{
							"resolveProvider": false,
						},
					},
					"serverInfo": map[string]any{
						"name": "bisp-lsp",
					},
				},
			},
		}
	case "initialized":
		return nil
	case "shutdown":
		if incoming.ID == nil {
			return nil
		}
		return []lspOutboundMessage{{JSONRPC: "2.0", ID: incoming.ID, Result: nil}}
	case "exit":
		return nil
	case "textDocument/didOpen":
		var params lspDidOpenParams
		if err := json.Unmarshal(incoming.Params, &params); err != nil {
			return nil
		}
		s.docs[params.TextDocument.URI] = params.TextDocument.Text
		return []lspOutboundMessage{
			s.publishDiagnostics(params.TextDocument.URI, params.TextDocument.Text),
		}
	case "textDocument/didChange":
		var params lspDidChangeParams
		if err := json.Unmarshal(incoming.Params, &params); err != nil {
			return nil
		}
		if len(params.ContentChanges) == 0 {
			return nil
		}
		latest := params.ContentChanges[len(params.ContentChanges)-1].Text
		s.docs[params.TextDocument.URI] = latest
		return []lspOutboundMessage{
			s.publishDiagnostics(params.TextDocument.URI, latest),
		}
	case "textDocument/didClose":
		var params lspDidCloseParams
		if err := json.Unmarshal(incoming.Params, &params); err != nil {
			return nil
		}
		delete(s.docs, params.TextDocument.URI)
		return nil
	case "textDocument/completion":
		if incoming.ID == nil {
			return nil
		}
		return []lspOutboundMessage{
			{
				JSONRPC: "2.0",
				ID:      incoming.ID,
				Result: map[string]any{
					"isIncomplete": false,
					"items":        completionItems(),
				},
			},
		}
	case "textDocument/hover":
		if incoming.ID == nil {
			return nil
		}
		var params lspTextDocumentPositionParams
		if err := json.Unmarshal(incoming.Params, &params); err != nil {
			return []lspOutboundMessage{
				{
					JSONRPC: "2.0",
					ID:      incoming.ID,
					Error:   &lspResponseError{Code: -32602, Message: "invalid hover params"},
				},
			}
		}
		source := s.docs[params.TextDocument.URI]
		word := wordAtPosition(source, params.Position.Line, params.Position.Character)
		if word == "" {
			return []lspOutboundMessage{
				{JSONRPC: "2.0", ID: incoming.ID, Result: nil},
			}
		}
		return []lspOutboundMessage{
			{
				JSONRPC: "2.0",
				ID:      incoming.ID,
				Result: map[string]any{
					"contents": map[string]any{
						"kind":  "markdown",
						"value": hoverText(word),
					},
				},
			},
		}
	default:
		if incoming.ID == nil {
			return nil
		}
		return []lspOutboundMessage{
			{
				JSONRPC: "2.0",
				ID:      incoming.ID,
				Error: &lspResponseError{
					Code:    -32601,
					Message: "method not found",
				},
			},
		}
	}
}

func (s *lspServer) publishDiagnostics(uri, source string) lspOutboundMessage {
	return lspOutboundMessage{
		JSONRPC: "2.0",
		Method:  "textDocument/publishDiagnostics",
		Params: map[string]any{
			"uri":         uri,
			"diagnostics": diagnosticsForSource(source),
		},
	}
}

// diagnosticsForSource reports parse errors as errors and lint findings as
// warnings. Positions are converted to the protocol's zero-based form.
func diagnosticsForSource(source string) []map[string]any {
	warnings := analyzeSource(source)
	out := make([]map[string]any, 0, len(warnings))
	for _, warning := range warnings {
		severity := 2
		if warning.Fatal {
			severity = 1
		}
		lineIdx := max(0, warning.Pos.Line-1)
		colIdx := max(0, warning.Pos.Column-1)
		out = append(out, newDiagnostic(lineIdx, colIdx, severity, warning.Message))
	}
	return out
}

func newDiagnostic(line, character, severity int, message string) map[string]any {
	return map[string]any{
		"range": map[string]any{
			"start": map[string]any{
				"line":      line,
				"character": character,
			},
			"end": map[string]any{
				"line":      line,
				"character": character + 1,
			},
		},
		"severity": severity,
		"source":   "bisp-lsp",
		"message":  message,
	}
}

func completionItems() []map[string]any {
	names := bisp.BuiltinNames()
	items := make([]map[string]any, 0, len(names))
	for _, name := range names {
		items = append(items, map[string]any{
			"label":         name,
			"kind":          3, // Function
			"detail":        "builtin",
			"documentation": builtinDocs[name],
		})
	}
	return items
}

func hoverText(word string) string {
	if bisp.IsBuiltin(word) {
		return fmt.Sprintf("`%s`\n\nBisp builtin. %s", word, builtinDocs[word])
	}
	if _, err := strconv.ParseInt(word, 10, 64); err == nil {
		return fmt.Sprintf("`%s`\n\nBisp number", word)
	}
	return fmt.Sprintf("`%s`\n\nBisp symbol", word)
}

func wordAtPosition(source string, line, character int) string {
	lines := strings.Split(source, "\n")
	if line < 0 || line >= len(lines) {
		return ""
	}

	runes := []rune(lines[line])
	if len(runes) == 0 {
		return ""
	}
	if character < 0 {
		character = 0
	}
	if character > len(runes) {
		character = len(runes)
	}

	cursor := character
	if cursor == len(runes) {
		cursor--
	}
	if !isWordRune(runes[cursor]) {
		if cursor > 0 && isWordRune(runes[cursor-1]) {
			cursor--
		} else {
			return ""
		}
	}

	start := cursor
	for start > 0 && isWordRune(runes[start-1]) {
		start--
	}
	end := cursor
	for end < len(runes) && isWordRune(runes[end]) {
		end++
	}
	return string(runes[start:end])
}

func isWordRune(r rune) bool {
	switch r {
	case '(', ')', '{', '}':
		return false
	}
	return !unicode.IsSpace(r)
}

func (s *lspServer) readPayload() ([]byte, error) {
	contentLength := -1
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			return nil, err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		name := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if strings.EqualFold(name, "Content-Length") {
			n, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("invalid Content-Length: %w", err)
			}
			contentLength = n
		}
	}

	if contentLength < 0 {
		return nil, fmt.Errorf("missing Content-Length header")
	}
	if contentLength > maxPayloadSize {
		return nil, fmt.Errorf("invalid Content-Length %d: exceeds limit of %d bytes", contentLength, maxPayloadSize)
	}
	payload := make([]byte, contentLength)
	if _, err := io.ReadFull(s.reader, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func (s *lspServer) writePayload(msg lspOutboundMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.writer, "Content-Length: %d\r\n\r\n", len(data)); err != nil {
		return err
	}
	if _, err := s.writer.Write(data); err != nil {
		return err
	}
	return s.writer.Flush()
}

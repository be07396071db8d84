package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/bython/internal/cli/config"
	"github.com/leapstack-labs/bython/internal/cli/output"
	"github.com/leapstack-labs/bython/pkg/ast"
	"github.com/leapstack-labs/bython/pkg/parser"
	"github.com/leapstack-labs/bython/pkg/transpile"
)

const (
	replPrompt     = "bython> "
	replContPrompt = "   ...> "
)

// NewReplCommand creates the repl command.
func NewReplCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Translate code interactively",
		Long: `Start an interactive session that prints the Python translation of each
entry. Input is collected until every opened brace is closed, so blocks can
span several lines.

Type .help for commands, .quit or Ctrl-D to exit.`,
		Args: cobra.NoArgs,
		RunE: runRepl,
	}
}

func runRepl(cmd *cobra.Command, _ []string) error {
	cmdCtx := NewCommandContextWithoutEngine(cmd)

	historyFile := ""
	if cfg := cmdCtx.Cfg; cfg.StatePath != "" {
		dir := filepath.Dir(cfg.StatePath)
		if err := os.MkdirAll(dir, 0o750); err == nil {
			historyFile = filepath.Join(dir, "repl_history")
		}
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     historyFile,
		AutoComplete:    newReplCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
		Stdin:           io.NopCloser(cmd.InOrStdin()),
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out, "bython REPL")
	_, _ = fmt.Fprintln(out, "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(out)

	session := newReplSession(out, cmd.ErrOrStderr(), cmdCtx.Renderer)
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			session.reset()
			rl.SetPrompt(replPrompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		if session.feed(line) {
			break
		}
		if session.pending() {
			rl.SetPrompt(replContPrompt)
		} else {
			rl.SetPrompt(replPrompt)
		}
	}

	config.GetLogger(cmd.Context()).Debug("repl closed")
	return nil
}

// replSession accumulates input and translates each complete entry.
type replSession struct {
	out     io.Writer
	errOut  io.Writer
	r       *output.Renderer
	buf     strings.Builder
	showAST bool
}

func newReplSession(out, errOut io.Writer, r *output.Renderer) *replSession {
	return &replSession{out: out, errOut: errOut, r: r}
}

func (s *replSession) reset() {
	s.buf.Reset()
}

func (s *replSession) pending() bool {
	return s.buf.Len() > 0
}

// feed consumes one input line. It reports whether the session should end.
func (s *replSession) feed(line string) bool {
	trimmed := strings.TrimSpace(line)
	if !s.pending() {
		if trimmed == "" {
			return false
		}
		if strings.HasPrefix(trimmed, ".") {
			return s.dotCommand(trimmed)
		}
	}

	s.buf.WriteString(line)
	s.buf.WriteString("\n")
	if braceDepth(s.buf.String()) > 0 {
		return false
	}

	// The final newline would put an unclosed parenthesis error on the
	// line after the entry.
	src := strings.TrimSuffix(s.buf.String(), "\n")
	s.buf.Reset()
	s.translate(src)
	return false
}

func (s *replSession) translate(src string) {
	if s.showAST {
		prog, err := parser.ParseFile("<repl>", src)
		if err != nil {
			_, _ = fmt.Fprintf(s.errOut, "Error: %s\n", formatDiagnostic(err))
			return
		}
		if err := writeYAML(s.out, ast.Dump(prog)); err != nil {
			_, _ = fmt.Fprintf(s.errOut, "Error: %v\n", err)
		}
		return
	}

	code, err := transpile.File("<repl>", src)
	if err != nil {
		_, _ = fmt.Fprintf(s.errOut, "Error: %s\n", formatDiagnostic(err))
		return
	}
	_, _ = fmt.Fprint(s.out, s.r.Code(strings.TrimRight(code, "\n")))
	if code != "" {
		_, _ = fmt.Fprintln(s.out)
	}
}

func (s *replSession) dotCommand(line string) bool {
	switch strings.ToLower(strings.Fields(line)[0]) {
	case ".quit", ".exit":
		return true
	case ".help":
		printReplHelp(s.out)
	case ".ast":
		s.showAST = !s.showAST
		mode := "python"
		if s.showAST {
			mode = "ast"
		}
		_, _ = fmt.Fprintf(s.out, "output: %s\n", mode)
	default:
		_, _ = fmt.Fprintf(s.errOut, "Unknown command: %s (type .help for commands)\n", line)
	}
	return false
}

func printReplHelp(w io.Writer) {
	help := `
Commands:
  .help           Show this help message
  .ast            Toggle between Python and AST output
  .quit / .exit   Exit the REPL

Tips:
  - An entry ends when every opened brace is closed
  - Ctrl-C discards the current entry
  - Use arrow keys to navigate history
`
	_, _ = fmt.Fprintln(w, help)
}

func newReplCompleter() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem(".help"),
		readline.PcItem(".ast"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}

// braceDepth returns the number of unclosed braces in src, ignoring braces
// inside string literals and comments.
func braceDepth(src string) int {
	depth := 0
	inString := false
	inComment := false
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case inComment:
			if c == '\n' {
				inComment = false
			}
		case inString:
			switch c {
			case '\\':
				i++
			case '"', '\n':
				inString = false
			}
		case c == '"':
			inString = true
		case c == '#':
			inComment = true
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			inComment = true
		case c == '{':
			depth++
		case c == '}':
			depth--
		}
	}
	return depth
}

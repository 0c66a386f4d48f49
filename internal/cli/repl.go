package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/thomasrohde/evalml/pkg/config"
	"github.com/thomasrohde/evalml/pkg/runtime"
	"golang.org/x/exp/slices"
)

const (
	promptMain  = "evalml> "
	historyFile = "history"
)

const replBanner = `evalml interactive derivations. Enter a judgment, e.g. x = 3 |- x + 1
Commands: :help  :format text|tree|json  :lang auto|ml1|ml2  :eval <judgment>  :quit`

func (a *App) cmdRepl(args []string) int {
	f, err := parseFlags(args)
	if err != nil {
		fmt.Fprintln(a.Stderr, err.Error())
		return ExitUsage
	}
	cfg, _, err := config.LoadFrom(a.Dir, a.HomeDir)
	if err != nil {
		a.printDiags(runtime.Diagnostics(err), true)
		return ExitUsage
	}
	opts := f.options(cfg)

	fmt.Fprintln(a.Stdout, replBanner)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := ""
	if a.HomeDir != "" {
		histPath = filepath.Join(a.HomeDir, config.UserDir, historyFile)
		if hf, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(hf)
			_ = hf.Close()
		}
		defer func() {
			_ = os.MkdirAll(filepath.Dir(histPath), 0o755)
			if hf, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(hf)
				_ = hf.Close()
			}
		}()
	}

	s := &replSession{app: a, opts: opts}
	for {
		line, err := ln.Prompt(promptMain)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(a.Stdout)
			return ExitOK
		}
		if err != nil {
			fmt.Fprintln(a.Stderr, err.Error())
			return ExitUsage
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ln.AppendHistory(line)
		if s.handle(line) {
			return ExitOK
		}
	}
}

// replSession holds the settings changed by REPL commands.
type replSession struct {
	app  *App
	opts []runtime.Option
}

// handle processes one input line and reports whether the session ends.
func (s *replSession) handle(line string) (exit bool) {
	if !strings.HasPrefix(line, ":") {
		res, err := runtime.New(s.opts...).Derive(line, "<repl>")
		if err != nil {
			s.app.printDiags(runtime.Diagnostics(err), true)
			return false
		}
		fmt.Fprint(s.app.Stdout, res.Output)
		return false
	}

	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch cmd {
	case ":quit", ":q":
		return true
	case ":help":
		fmt.Fprintln(s.app.Stdout, replBanner)
	case ":format":
		s.set(arg, config.Formats, runtime.WithFormat)
	case ":lang":
		s.set(arg, config.Languages, runtime.WithLanguage)
	case ":eval":
		v, err := runtime.New(s.opts...).Evaluate(arg, "<repl>")
		if err != nil {
			s.app.printDiags(runtime.Diagnostics(err), true)
			return false
		}
		fmt.Fprintln(s.app.Stdout, v.String())
	default:
		fmt.Fprintln(s.app.Stdout, "unknown command. Type :help for a list.")
	}
	return false
}

func (s *replSession) set(value string, allowed []string, opt func(string) runtime.Option) {
	if slices.Contains(allowed, value) {
		s.opts = append(s.opts, opt(value))
		return
	}
	fmt.Fprintf(s.app.Stdout, "expected one of %s\n", strings.Join(allowed, ", "))
}

// Package cli implements the evalml command line.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/thomasrohde/evalml/pkg/config"
	"github.com/thomasrohde/evalml/pkg/diagnostics"
	"github.com/thomasrohde/evalml/pkg/evaluator"
	"github.com/thomasrohde/evalml/pkg/help"
	"github.com/thomasrohde/evalml/pkg/runtime"
	"golang.org/x/exp/slices"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitUsage   = 1
	ExitInvalid = 2
	ExitRuntime = 4
)

// App carries the I/O streams and the directory settings are loaded from.
type App struct {
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	Dir     string
	HomeDir string
}

// NewApp returns an App bound to the process streams and working directory.
func NewApp() *App {
	cwd, _ := os.Getwd()
	home, _ := os.UserHomeDir()
	return &App{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr, Dir: cwd, HomeDir: home}
}

const usage = "usage: evalml <command> [options]\ncommands: derive, eval, check, fmt, repl, config, help"

// Run executes one command and returns its exit code.
func (a *App) Run(args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(a.Stderr, usage)
		return ExitUsage
	}

	cmd := args[0]
	switch cmd {
	case "derive":
		return a.cmdDerive(args[1:])
	case "eval":
		return a.cmdEval(args[1:])
	case "check":
		return a.cmdCheck(args[1:])
	case "fmt":
		return a.cmdFmt(args[1:])
	case "repl":
		return a.cmdRepl(args[1:])
	case "config":
		return a.cmdConfig(args[1:])
	case "help", "--help", "-h":
		return a.cmdHelp(args[1:])
	default:
		fmt.Fprintf(a.Stderr, "Unknown command: %s\n", cmd)
		return ExitUsage
	}
}

// flags holds the options shared by the input-taking commands. Pointer
// fields are only set when the flag was given.
type flags struct {
	file      string
	expr      *string
	pretty    bool
	format    *string
	indent    *int
	turnstile *string
	parens    *string
	lang      *string
	maxDepth  *int
}

func parseFlags(args []string) (*flags, error) {
	f := &flags{}
	value := func(i *int, name string) (string, error) {
		if *i+1 >= len(args) {
			return "", fmt.Errorf("flag %s requires a value", name)
		}
		*i++
		return args[*i], nil
	}
	number := func(i *int, name string) (*int, error) {
		s, err := value(i, name)
		if err != nil {
			return nil, err
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("flag %s expects an integer, got %q", name, s)
		}
		return &n, nil
	}
	choice := func(i *int, name string, allowed []string) (*string, error) {
		s, err := value(i, name)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(allowed, s) {
			return nil, fmt.Errorf("flag %s must be one of %q, got %q", name, allowed, s)
		}
		return &s, nil
	}

	for i := 0; i < len(args); i++ {
		var err error
		switch arg := args[i]; arg {
		case "--pretty":
			f.pretty = true
		case "-e":
			var s string
			s, err = value(&i, arg)
			f.expr = &s
		case "--format":
			f.format, err = choice(&i, arg, config.Formats)
		case "--turnstile":
			f.turnstile, err = choice(&i, arg, config.Turnstiles)
		case "--parens":
			f.parens, err = choice(&i, arg, config.ParenModes)
		case "--lang":
			f.lang, err = choice(&i, arg, config.Languages)
		case "--indent":
			f.indent, err = number(&i, arg)
		case "--max-depth":
			f.maxDepth, err = number(&i, arg)
		default:
			if arg == "-" || !strings.HasPrefix(arg, "-") {
				f.file = arg
			} else {
				err = fmt.Errorf("unknown flag %s", arg)
			}
		}
		if err != nil {
			return nil, err
		}
	}
	return f, nil
}

// options turns the flags into runtime options layered over cfg.
func (f *flags) options(cfg *config.Config) []runtime.Option {
	opts := []runtime.Option{runtime.WithConfig(cfg)}
	if f.format != nil {
		opts = append(opts, runtime.WithFormat(*f.format))
	}
	if f.indent != nil {
		opts = append(opts, runtime.WithIndent(*f.indent))
	}
	if f.turnstile != nil {
		opts = append(opts, runtime.WithTurnstile(*f.turnstile))
	}
	if f.parens != nil {
		opts = append(opts, runtime.WithParens(*f.parens))
	}
	if f.lang != nil {
		opts = append(opts, runtime.WithLanguage(*f.lang))
	}
	if f.maxDepth != nil {
		opts = append(opts, runtime.WithMaxDepth(*f.maxDepth))
	}
	return opts
}

// setup parses flags, loads the configuration and reads the input.
func (a *App) setup(cmd string, args []string) (*runtime.Runtime, *flags, string, string, int) {
	f, err := parseFlags(args)
	if err != nil {
		a.printDiags([]diagnostics.Diagnostic{
			diagnostics.MakeDiag(diagnostics.EConfig, err.Error(), nil, "see 'evalml help'"),
		}, false)
		return nil, nil, "", "", ExitUsage
	}

	cfg, _, err := config.LoadFrom(a.Dir, a.HomeDir)
	if err != nil {
		a.printDiags(runtime.Diagnostics(err), f.pretty)
		return nil, nil, "", "", ExitUsage
	}
	rt := runtime.New(f.options(cfg)...)

	if f.expr != nil {
		return rt, f, *f.expr, "<expr>", ExitOK
	}
	if f.file == "" {
		fmt.Fprintf(a.Stderr, "usage: evalml %s <file|-> | -e '<judgment>' [options]\n", cmd)
		return nil, nil, "", "", ExitUsage
	}
	source, filename, code := a.readSource(f.file, f.pretty)
	if code != ExitOK {
		return nil, nil, "", "", code
	}
	return rt, f, source, filename, ExitOK
}

func (a *App) cmdDerive(args []string) int {
	rt, f, source, filename, code := a.setup("derive", args)
	if code != ExitOK {
		return code
	}
	res, err := rt.Derive(source, filename)
	if err != nil {
		return a.fail(err, f.pretty)
	}
	fmt.Fprint(a.Stdout, res.Output)
	return ExitOK
}

func (a *App) cmdEval(args []string) int {
	rt, f, source, filename, code := a.setup("eval", args)
	if code != ExitOK {
		return code
	}
	v, err := rt.Evaluate(source, filename)
	if err != nil {
		return a.fail(err, f.pretty)
	}
	if rt.Config().Format == "json" {
		fmt.Fprintln(a.Stdout, evaluator.ValueToJSONString(v))
	} else {
		fmt.Fprintln(a.Stdout, v.String())
	}
	return ExitOK
}

func (a *App) cmdCheck(args []string) int {
	rt, f, source, filename, code := a.setup("check", args)
	if code != ExitOK {
		return code
	}
	diags := rt.Check(source, filename)
	if len(diags) > 0 {
		a.printDiags(diags, f.pretty)
		return ExitInvalid
	}

	if f.pretty {
		fmt.Fprintln(a.Stdout, "No errors found.")
	} else {
		fmt.Fprintln(a.Stdout, "[]")
	}
	return ExitOK
}

func (a *App) cmdFmt(args []string) int {
	rt, f, source, filename, code := a.setup("fmt", args)
	if code != ExitOK {
		return code
	}
	out, err := rt.Format(source, filename)
	if err != nil {
		return a.fail(err, f.pretty)
	}
	fmt.Fprint(a.Stdout, out)
	return ExitOK
}

func (a *App) cmdConfig(args []string) int {
	cfg, path, err := config.LoadFrom(a.Dir, a.HomeDir)
	if err != nil {
		a.printDiags(runtime.Diagnostics(err), slices.Contains(args, "--pretty"))
		return ExitUsage
	}
	out, err := cfg.YAML()
	if err != nil {
		fmt.Fprintln(a.Stderr, err.Error())
		return ExitUsage
	}
	if path == "" {
		path = "defaults"
	}
	fmt.Fprintf(a.Stdout, "# source: %s\n%s", path, out)
	return ExitOK
}

func (a *App) cmdHelp(args []string) int {
	topic := ""
	for _, arg := range args {
		if !strings.HasPrefix(arg, "-") {
			topic = arg
		}
	}

	if topic == "" {
		fmt.Fprint(a.Stdout, help.QUICKREF)
		return ExitOK
	}

	_, content, err := help.MatchTopic(topic)
	if err != nil {
		fmt.Fprintf(a.Stderr, "%s\nAvailable topics: %s\n", err, strings.Join(help.TopicList, ", "))
		return ExitUsage
	}
	fmt.Fprint(a.Stdout, content)
	return ExitOK
}

func (a *App) readSource(file string, pretty bool) (string, string, int) {
	if file == "-" {
		data, err := io.ReadAll(a.Stdin)
		if err != nil {
			fmt.Fprintf(a.Stderr, "error reading stdin: %s\n", err)
			return "", "", ExitUsage
		}
		return string(data), "<stdin>", ExitOK
	}

	source, err := os.ReadFile(file)
	if err != nil {
		diag := diagnostics.MakeDiag(diagnostics.EIO, fmt.Sprintf("cannot read file: %s", file), nil, "")
		a.printDiags([]diagnostics.Diagnostic{diag}, pretty)
		return "", "", ExitUsage
	}
	return string(source), file, ExitOK
}

func (a *App) printDiags(diags []diagnostics.Diagnostic, pretty bool) {
	fmt.Fprintln(a.Stderr, diagnostics.FormatDiagnostics(diags, pretty))
}

func (a *App) fail(err error, pretty bool) int {
	a.printDiags(runtime.Diagnostics(err), pretty)
	return ExitCode(err)
}

// ExitCode maps a runtime error to the process exit code.
func ExitCode(err error) int {
	var de *runtime.DiagnosticError
	if errors.As(err, &de) {
		return ExitInvalid
	}
	var re *evaluator.RuntimeError
	if errors.As(err, &re) {
		return ExitRuntime
	}
	return ExitUsage
}

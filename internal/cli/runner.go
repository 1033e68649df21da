package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/idilsaglam/account/internal/config"
	"github.com/idilsaglam/account/internal/form"
	"github.com/idilsaglam/account/internal/logging"
	"github.com/idilsaglam/account/internal/model"
	"github.com/idilsaglam/account/internal/photo"
	"github.com/idilsaglam/account/internal/prompt"
	"github.com/idilsaglam/account/internal/sink"
	"github.com/idilsaglam/account/internal/store/payloadstore"
	"github.com/idilsaglam/account/internal/tui"
	"github.com/idilsaglam/account/internal/ui"
)

// Options tune behavior from root flags.
type Options struct {
	ConfigPath string // -config, falls back to $ACCOUNT_CONFIG
	LogLevel   string // -log-level, overrides the config file
	Context    context.Context
	// Driver answers the questions of `account prompt`. Defaults to survey.
	Driver prompt.Driver
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if len(args) == 0 {
		PrintHelp()
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0

	case "edit":
		if len(a) > 1 {
			ui.Fail("usage: account edit [draft]")
			return 2
		}
		return withEnv(opt, func(e *env) int { return doEdit(e, optional(a)) })

	case "prompt":
		if len(a) > 1 {
			ui.Fail("usage: account prompt [draft]")
			return 2
		}
		return withEnv(opt, func(e *env) int { return doPrompt(e, optional(a)) })

	case "validate":
		if len(a) != 1 {
			ui.Fail("usage: account validate <draft>")
			return 2
		}
		return withEnv(opt, func(e *env) int { return doValidate(e, a[0]) })

	case "submit":
		if len(a) != 1 {
			ui.Fail("usage: account submit <draft>")
			return 2
		}
		return withEnv(opt, func(e *env) int { return doSubmit(e, a[0]) })
	}

	ui.Fail("unknown subcommand: " + cmd)
	fmt.Fprintln(ui.Err)
	PrintHelp()
	return 2
}

func PrintHelp() {
	fmt.Fprintf(ui.Out, `account - edit account settings

Usage:
  account [-config path] [-log-level level] <subcommand> [args]

Subcommands:
  edit [draft]       Open the full-screen form, optionally seeded from a draft
  prompt [draft]     Fill the form question by question
  validate <draft>   Check a YAML/JSON draft and print field messages
  submit <draft>     Validate a draft and hand it to the configured sink

Examples:
  account edit
  account validate me.yaml
  account -config ./account.yaml submit me.yaml
`)
}

// -------------- environment ----------------

type env struct {
	ctx    context.Context
	cfg    config.Config
	logger *slog.Logger
	driver prompt.Driver
}

func withEnv(opt Options, fn func(*env) int) int {
	cfg, err := config.Load(opt.ConfigPath)
	if err != nil {
		ui.Fail("config: " + err.Error())
		return 1
	}
	if opt.LogLevel != "" {
		cfg.LogLevel = opt.LogLevel
	}
	ui.SetTheme(cfg.Theme)

	ctx := opt.Context
	if ctx == nil {
		ctx = context.Background()
	}
	driver := opt.Driver
	if driver == nil {
		driver = prompt.NewSurveyDriver()
	}
	return fn(&env{
		ctx:    ctx,
		cfg:    cfg,
		logger: logging.InitLogger(cfg.LogLevel, ui.Err),
		driver: driver,
	})
}

// newForm builds a form wired to the configured sink and photo limits,
// seeded from draft when one is named.
func (e *env) newForm(draft string) (*form.Form, error) {
	s, err := sink.FromConfig(e.cfg.Sink, e.logger)
	if err != nil {
		return nil, fmt.Errorf("sink: %w", err)
	}
	opts := []form.Option{
		form.WithSink(s),
		form.WithLogger(e.logger),
		form.WithDecoder(photo.NewDecoder(e.cfg.PhotoOptions())),
	}
	if e.cfg.Photo.Placeholder != "" {
		opts = append(opts, form.WithPlaceholder(e.cfg.Photo.Placeholder))
	}
	f := form.New(opts...)
	if draft == "" {
		return f, nil
	}
	p, err := payloadstore.Load(draft)
	if err != nil {
		return nil, fmt.Errorf("draft %s: %w", draft, err)
	}
	f.Load(p)
	return f, nil
}

// -------------- subcommand impls ----------------

func doEdit(e *env, draft string) int {
	// The alt screen owns the terminal, so logs go to a file.
	if e.cfg.LogFile != "" {
		closer, err := logging.OpenFile(e.cfg.LogLevel, e.cfg.LogFile)
		if err != nil {
			ui.Fail("log file: " + err.Error())
			return 1
		}
		defer closer.Close()
	} else {
		logging.InitLogger(e.cfg.LogLevel, io.Discard)
	}
	e.logger = logging.GetLogger()

	f, err := e.newForm(draft)
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}

	submitted, err := tui.Run(e.ctx, f, tui.Options{
		MaxChildren: e.cfg.MaxChildren,
		PhotoHint:   e.cfg.PhotoOptions().Hint(),
	})
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}
	if !submitted {
		ui.Hint("closed without saving")
		return 0
	}
	ui.OK("changes saved")
	return 0
}

func doPrompt(e *env, draft string) int {
	f, err := e.newForm(draft)
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}
	submitted, err := prompt.Run(e.ctx, e.driver, f, prompt.Options{
		MaxChildren: e.cfg.MaxChildren,
		PhotoHint:   e.cfg.PhotoOptions().Hint(),
	})
	switch {
	case errors.Is(err, prompt.ErrAborted):
		ui.Fail("aborted")
		return 1
	case err != nil:
		ui.Fail(err.Error())
		return 1
	case !submitted:
		ui.Hint("nothing saved")
		return 0
	}
	ui.OK("changes saved")
	return 0
}

func doValidate(e *env, draft string) int {
	f, err := e.newForm(draft)
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}
	res := f.Validate()
	if !res.Valid() {
		printMessages(res)
		return 1
	}
	ui.Panel(summary(f.Payload()))
	ui.OK("draft is valid")
	return 0
}

func doSubmit(e *env, draft string) int {
	f, err := e.newForm(draft)
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}
	if err := f.Submit(e.ctx); err != nil {
		if errors.Is(err, form.ErrInvalid) {
			printMessages(f.Validate())
		} else {
			ui.Fail("submit: " + err.Error())
		}
		return 1
	}
	ui.OK("submitted")
	return 0
}

// -------------- rendering helpers --------------

func printMessages(res form.Result) {
	msgs := res.Messages()
	fields := make([]string, 0, len(msgs))
	for field := range msgs {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		ui.Fail(field + ": " + msgs[field])
	}
}

func summary(p model.Payload) []string {
	t := ui.Current()
	lines := []string{
		t.Title.Render("Account Settings"),
		"",
		fmt.Sprintf("%-16s%s", "Name", p.Name),
		fmt.Sprintf("%-16s%s", "Email", p.Email),
		fmt.Sprintf("%-16s%s", "Marital Status", p.MaritalStatus),
		fmt.Sprintf("%-16s%s", "Birth Date", model.FormatDate(p.BirthDate)),
		fmt.Sprintf("%-16s%s", "Photo", photo.Describe(p.PhotoRef)),
	}
	if p.Spouse != nil {
		lines = append(lines, "", t.Accent.Render("Spouse Details"),
			fmt.Sprintf("%-16s%s", "Name", p.Spouse.Name),
			fmt.Sprintf("%-16s%s", "Email", p.Spouse.Email),
		)
	}
	if len(p.Children) > 0 {
		lines = append(lines, "", t.Accent.Render("Children Details"))
		for i, c := range p.Children {
			lines = append(lines, fmt.Sprintf("%2d. %s (%s)", i+1, c.Name, c.SchoolName))
		}
	}
	return lines
}

func optional(a []string) string {
	if len(a) == 0 {
		return ""
	}
	return a[0]
}

// Command versequote quotes and links Bible verses from a vault of
// per-chapter markdown documents.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"

	verrors "github.com/FocuswithJustin/versequote/core/errors"
	"github.com/FocuswithJustin/versequote/core/render"
	"github.com/FocuswithJustin/versequote/core/vault"
	"github.com/FocuswithJustin/versequote/internal/fsstore"
	"github.com/FocuswithJustin/versequote/internal/logging"
	"github.com/FocuswithJustin/versequote/internal/preview"
	"github.com/FocuswithJustin/versequote/internal/settings"
	"github.com/FocuswithJustin/versequote/internal/sqlstore"
)

const version = "0.1.0"

// Globals are flags shared by every command.
type Globals struct {
	Vault     string `help:"Vault directory with chapter documents" type:"path"`
	DB        string `help:"SQLite database built by the index command" type:"path"`
	Settings  string `help:"Settings file (data.json)" type:"existingfile"`
	LogLevel  string `help:"Log level" default:"error" enum:"debug,info,warn,error"`
	LogFormat string `help:"Log format" default:"text" enum:"json,text"`
}

// CLI defines the command-line interface for versequote.
type CLI struct {
	Globals

	Quote   QuoteCmd   `cmd:"" help:"Quote verses with a link to them"`
	Links   LinksCmd   `cmd:"" help:"Link verses or chapters"`
	Index   IndexCmd   `cmd:"" help:"Import the vault into a SQLite database"`
	Serve   ServeCmd   `cmd:"" help:"Start the preview server"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// env carries the process streams so commands can be run in tests.
type env struct {
	ctx    context.Context
	stdout io.Writer
	stderr io.Writer
}

// notifier prints user-facing notices to stderr.
func (e *env) notifier() render.Notifier {
	return render.NotifierFunc(func(message string) {
		fmt.Fprintln(e.stderr, message)
	})
}

func (g *Globals) loadSettings() (settings.Settings, error) {
	if g.Settings == "" {
		return settings.Default(), nil
	}
	return settings.Load(g.Settings)
}

// openStore opens the database when --db is given, the vault otherwise.
func (g *Globals) openStore(ctx context.Context) (vault.Store, func() error, error) {
	switch {
	case g.DB != "":
		store, err := sqlstore.Open(ctx, g.DB)
		if err != nil {
			return nil, nil, err
		}
		logging.Debug("database_opened", "path", g.DB, "driver", sqlstore.DriverName())
		return store, store.Close, nil
	case g.Vault != "":
		store, err := fsstore.New(g.Vault, fsstore.DefaultConfig())
		if err != nil {
			return nil, nil, err
		}
		logging.Debug("vault_opened", "root", store.Root())
		return store, func() error { return nil }, nil
	}
	return nil, nil, verrors.NewValidation("vault", "", "one of --vault or --db is required")
}

// flagSet reports whether the named flag was given on the command line.
func flagSet(kctx *kong.Context, name string) bool {
	for _, flags := range kctx.Flags() {
		if flags.Name == name {
			return flags.Set
		}
	}
	return false
}

// QuoteCmd quotes the verses of a reference.
type QuoteCmd struct {
	Reference   string `arg:"" help:"Verse reference, e.g. \"Gen 1,1-3\""`
	Translation string `help:"Translation path or name" short:"t"`
	LinkOnly    bool   `help:"Insert only the link, without verse text" negatable:""`
}

func (c *QuoteCmd) Run(kctx *kong.Context, g *Globals, e *env) error {
	s, err := g.loadSettings()
	if err != nil {
		return err
	}
	root, err := s.TranslationRoot(c.Translation)
	if err != nil {
		return err
	}
	linkOnly := s.LinkOnly
	if flagSet(kctx, "link-only") {
		linkOnly = c.LinkOnly
	}

	store, closeStore, err := g.openStore(e.ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	out, err := render.New(store, e.notifier()).Quote(e.ctx, c.Reference, s.Render, root, linkOnly, true)
	if err != nil {
		return err
	}
	fmt.Fprintln(e.stdout, out)
	return nil
}

// LinksCmd prints links to the verses or chapters of a reference.
type LinksCmd struct {
	Reference string `arg:"" help:"Verse or chapter reference, e.g. \"Gen 1-3\""`
	Flavor    string `help:"Link flavor: basic, embedded or invisible (default from settings)"`
	NewLines  bool   `name:"newlines" help:"Put every link on its own line" negatable:""`
}

func (c *LinksCmd) Run(kctx *kong.Context, g *Globals, e *env) error {
	s, err := g.loadSettings()
	if err != nil {
		return err
	}
	flavor := s.LinkFlavorPreset
	if c.Flavor != "" {
		if flavor, err = render.ParseLinkFlavor(c.Flavor); err != nil {
			return err
		}
	}
	newLines := s.NewLinePreset
	if flagSet(kctx, "newlines") {
		newLines = c.NewLines
	}

	// Links only touch the store to verify files.
	var store vault.Store = vault.NewMemStore()
	if s.Render.VerifyFiles {
		opened, closeStore, err := g.openStore(e.ctx)
		if err != nil {
			return err
		}
		defer closeStore()
		store = opened
	}

	out, err := render.New(store, e.notifier()).Links(c.Reference, s.Render, flavor, newLines)
	if err != nil {
		return err
	}
	fmt.Fprint(e.stdout, out)
	if !newLines {
		fmt.Fprintln(e.stdout)
	}
	return nil
}

// IndexCmd imports the vault into the database.
type IndexCmd struct{}

func (c *IndexCmd) Run(g *Globals, e *env) error {
	if g.Vault == "" || g.DB == "" {
		return verrors.NewValidation("index", "", "both --vault and --db are required")
	}
	src, err := fsstore.New(g.Vault, fsstore.DefaultConfig())
	if err != nil {
		return err
	}
	db, err := sqlstore.Open(e.ctx, g.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := db.Import(e.ctx, src)
	if err != nil {
		return err
	}
	total, err := db.Count(e.ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.stdout, "Indexed %d documents from %s into %s (%d stored, %s driver)\n",
		n, src.Root(), g.DB, total, sqlstore.DriverType())
	return nil
}

// ServeCmd runs the preview server until interrupted.
type ServeCmd struct {
	Port           int      `help:"HTTP server port" default:"8089"`
	AllowedOrigins []string `name:"allowed-origin" help:"Allowed CORS and WebSocket origin (repeatable)"`
}

func (c *ServeCmd) Run(g *Globals, e *env) error {
	s, err := g.loadSettings()
	if err != nil {
		return err
	}
	store, closeStore, err := g.openStore(e.ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	cfg := preview.DefaultConfig()
	cfg.Port = c.Port
	cfg.AllowedOrigins = c.AllowedOrigins

	ctx, stop := signal.NotifyContext(e.ctx, os.Interrupt)
	defer stop()
	return preview.New(store, s, cfg).ListenAndServe(ctx)
}

// VersionCmd prints the version.
type VersionCmd struct{}

func (c *VersionCmd) Run(e *env) error {
	fmt.Fprintf(e.stdout, "versequote version %s\n", version)
	return nil
}

// exit is raised by kong's exit hook so run can return instead of exiting.
type exit struct{ code int }

// run parses args, runs the selected command and returns the exit status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) (code int) {
	var cli CLI
	e := &env{ctx: ctx, stdout: stdout, stderr: stderr}

	defer func() {
		if r := recover(); r != nil {
			ex, ok := r.(exit)
			if !ok {
				panic(r)
			}
			code = ex.code
		}
	}()

	parser, err := kong.New(&cli,
		kong.Name("versequote"),
		kong.Description("Quote and link Bible verses from a markdown vault"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) { panic(exit{code}) }),
		kong.Bind(&cli.Globals, e),
	)
	if err != nil {
		fmt.Fprintf(stderr, "versequote: %v\n", err)
		return 1
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		parser.Errorf("%s", err)
		return 2
	}

	level, _ := logging.ParseLevel(cli.LogLevel)
	format, _ := logging.ParseFormat(cli.LogFormat)
	logging.InitLogger(stderr, level, format)

	if err := kctx.Run(); err != nil {
		fmt.Fprintf(stderr, "versequote: %v\n", err)
		var verr *verrors.ValidationError
		if errors.As(err, &verr) {
			return 2
		}
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docsite/internal/config"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"docsite.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Serve struct {
		Addr string `short:"a" help:"Override the configured listen address"`
	} `cmd:"" help:"Serve the href resolution and raw-source API"`

	Routes struct {
		JSON bool `help:"Emit the route list as JSON"`
	} `cmd:"" help:"Enumerate all pre-renderable routes"`

	Resolve struct {
		Href   string `arg:"" help:"Href to resolve"`
		Dir    string `short:"d" help:"Directory of the page containing the href"`
		Locale string `short:"l" help:"Locale of the page containing the href"`
	} `cmd:"" help:"Resolve one href against the page index"`

	Classify struct {
		Route string `arg:"" help:"Route to classify (slash separated)"`
	} `cmd:"" help:"Report the namespace of a route"`

	Source struct {
		Route string `arg:"" help:"Route whose raw source to print"`
	} `cmd:"" help:"Print the raw markdown source backing a route"`

	Audit struct {
		Publish bool `help:"Publish findings to the configured NATS subject"`
	} `cmd:"" help:"Audit all indexed pages for unresolved links"`

	Index struct{} `cmd:"" help:"Build the page index and persist it"`
}

func main() {
	ctx := kong.Parse(&CLI)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	switch ctx.Command() {
	case "serve":
		if CLI.Serve.Addr != "" {
			cfg.Server.Addr = CLI.Serve.Addr
		}
		err = runServe(cfg)
	case "routes":
		err = runRoutes(cfg, CLI.Routes.JSON)
	case "resolve <href>":
		err = runResolve(cfg, CLI.Resolve.Href, CLI.Resolve.Dir, CLI.Resolve.Locale)
	case "classify <route>":
		err = runClassify(CLI.Classify.Route)
	case "source <route>":
		err = runSource(cfg, CLI.Source.Route)
	case "audit":
		err = runAudit(cfg, CLI.Audit.Publish)
	case "index":
		err = runIndex(cfg)
	default:
		slog.Error("Unknown command", "command", ctx.Command())
		os.Exit(1)
	}
	if err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

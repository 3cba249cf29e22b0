package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	// Packages
	kong "github.com/alecthomas/kong"
	client "github.com/mutablelogic/go-client"
	bloomreach "github.com/mutablelogic/go-tools/pkg/bloomreach"
	tool "github.com/mutablelogic/go-tools/pkg/tool"
	zap "go.uber.org/zap"
	zapcore "go.uber.org/zap/zapcore"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type Globals struct {
	// Debugging
	Debug   bool          `name:"debug" help:"Enable debug output"`
	Verbose bool          `name:"verbose" help:"Enable verbose output"`
	Timeout time.Duration `name:"timeout" default:"30s" help:"Timeout for search requests"`

	// Tools
	Bloomreach `embed:"" help:"Bloomreach configuration"`

	// Context
	ctx context.Context
	log *zap.Logger
}

type Bloomreach struct {
	Endpoint  string `name:"endpoint" env:"BLOOMREACH_ENDPOINT" help:"Bloomreach search endpoint"`
	AccountID string `name:"account-id" env:"BLOOMREACH_ACCOUNT_ID" help:"Bloomreach account identifier"`
	DomainKey string `name:"domain-key" env:"BLOOMREACH_DOMAIN_KEY" help:"Bloomreach domain key"`
}

type CLI struct {
	Globals

	// Commands
	GenerateToolSchema GenerateToolSchemaCommand `cmd:"" name:"generate-tool-schema" help:"Generate the tool schema manifest." group:"BUILD"`
	ToolCommands
	SearchCommands
	ServerCommands
	Version VersionCommand `cmd:"" name:"version" help:"Print version information."`
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// Fields requested from the search backend
	searchFields = "title,description,price,url,thumb_image,department"
)

////////////////////////////////////////////////////////////////////////////////
// MAIN

func main() {
	// Create a cli parser
	cli := CLI{}
	cmd := kong.Parse(&cli,
		kong.Name(execName()),
		kong.Description("Product search tools command line interface"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{},
	)

	// Create a logger, which writes to stderr so stdout is kept for output
	log, err := newLogger(cli.Debug)
	cmd.FatalIfErrorf(err)
	defer log.Sync()
	cli.Globals.log = log

	// Create a context
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	cli.Globals.ctx = ctx

	// Run the command
	if err := cmd.Run(&cli.Globals); err != nil {
		cmd.FatalIfErrorf(err)
		return
	}
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Toolkit returns the toolkit with all the tools registered
func (g *Globals) Toolkit() (*tool.Toolkit, error) {
	tools, err := bloomreach.NewTools(g.bloomreachOpts()...)
	if err != nil {
		return nil, err
	}
	return tool.NewToolkit(tools...)
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (g *Globals) bloomreachOpts() []bloomreach.Opt {
	opts := []bloomreach.Opt{
		bloomreach.WithValue("account_id", g.AccountID),
		bloomreach.WithValue("domain_key", g.DomainKey),
		bloomreach.WithValue("request_type", "search"),
		bloomreach.WithValue("search_type", "keyword"),
		bloomreach.WithValue("fl", searchFields),
		bloomreach.WithClientOpts(g.clientOpts()...),
	}
	if g.Endpoint != "" {
		opts = append(opts, bloomreach.WithEndpoint(g.Endpoint))
	}
	return opts
}

func (g *Globals) clientOpts() []client.ClientOpt {
	result := []client.ClientOpt{}
	if g.Debug || g.Verbose {
		result = append(result, client.OptTrace(os.Stderr, g.Verbose))
	}
	if g.Timeout > 0 {
		result = append(result, client.OptTimeout(g.Timeout))
	}
	return result
}

func newLogger(debug bool) (*zap.Logger, error) {
	config := zap.NewDevelopmentConfig()
	if debug {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	return config.Build()
}

func execName() string {
	// The name of the executable
	name, err := os.Executable()
	if err != nil {
		panic(err)
	} else {
		return filepath.Base(name)
	}
}

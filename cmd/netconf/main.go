package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/eugenenazirov/treasury-dao/internal/application"
	"github.com/eugenenazirov/treasury-dao/internal/config"
	"github.com/eugenenazirov/treasury-dao/internal/env"
	"github.com/eugenenazirov/treasury-dao/internal/logging"
	"github.com/eugenenazirov/treasury-dao/internal/project"
	"github.com/eugenenazirov/treasury-dao/internal/render"
)

var signalNotify = signal.Notify

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "netconf: %v\n", err)
		os.Exit(1)
	}
}

type commands struct {
	app *kingpin.Application

	configFile *string
	envFile    *string
	logLevel   *string

	show       *kingpin.CmdClause
	showFormat *string
	showReveal *bool

	network       *kingpin.CmdClause
	networkName   *string
	networkFormat *string
	networkReveal *bool

	vars *kingpin.CmdClause

	serve          *kingpin.CmdClause
	port           *string
	rateLimitRPS   *float64
	rateLimitBurst *int
}

func newCommands() *commands {
	app := kingpin.New("netconf", "Resolves the treasury contracts' compiler and network configuration from the environment")
	c := &commands{app: app}

	c.configFile = app.Flag("config", "Path to YAML configuration file").String()
	c.envFile = app.Flag("env-file", "Dotenv file consulted after the process environment (\"none\" disables it)").String()
	c.logLevel = app.Flag("log-level", "Log level (debug, info, warn, error)").String()

	c.show = app.Command("show", "Print the resolved project configuration").Default()
	c.showFormat = c.show.Flag("format", "Output format (text, json, yaml, toml)").Short('o').String()
	c.showReveal = c.show.Flag("reveal", "Print credentials instead of redacting them").Bool()

	c.network = app.Command("network", "Print a single network's settings")
	c.networkName = c.network.Arg("name", "Network name").Required().String()
	c.networkFormat = c.network.Flag("format", "Output format (text, json, yaml, toml)").Short('o').String()
	c.networkReveal = c.network.Flag("reveal", "Print credentials instead of redacting them").Bool()

	c.vars = app.Command("vars", "List the environment variables consulted and whether they are set")

	c.serve = app.Command("serve", "Serve a redacted view of the configuration over HTTP")
	c.port = c.serve.Flag("port", "HTTP port exposed by the service").String()
	c.rateLimitRPS = c.serve.Flag("rate-limit-rps", "Requests per second allowed (set 0 to disable)").Default("-1").Float64()
	c.rateLimitBurst = c.serve.Flag("rate-limit-burst", "Burst capacity for rate limiter (set 0 to disable)").Default("-1").Int()

	return c
}

// overrides collects the flags of the selected command. Flags of other
// commands are left out since kingpin does not apply their defaults.
func (c *commands) overrides(command string) *config.CLIOverrides {
	overrides := &config.CLIOverrides{
		ConfigFile: *c.configFile,
		EnvFile:    c.envFile,
		LogLevel:   c.logLevel,
	}

	switch command {
	case c.show.FullCommand():
		overrides.OutputFormat = c.showFormat
	case c.network.FullCommand():
		overrides.OutputFormat = c.networkFormat
	case c.serve.FullCommand():
		overrides.Port = c.port
		if *c.rateLimitRPS >= 0 {
			overrides.RateLimitRPS = c.rateLimitRPS
		}
		if *c.rateLimitBurst >= 0 {
			overrides.RateLimitBurst = c.rateLimitBurst
		}
	}

	return overrides
}

func run(args []string, stdout io.Writer) error {
	c := newCommands()
	c.app.UsageWriter(stdout)

	// Help actions request termination; return instead of exiting.
	terminated := false
	c.app.Terminate(func(int) { terminated = true })

	command, err := c.app.Parse(args)
	if err != nil {
		return err
	}
	if terminated {
		return nil
	}

	cfg, err := config.Load(c.overrides(command))
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	src, err := application.EnvironmentSource(cfg, logger)
	if err != nil {
		return fmt.Errorf("read environment: %w", err)
	}

	switch command {
	case c.show.FullCommand():
		return showProject(stdout, project.Resolve(src), cfg.OutputFormat, *c.showReveal)
	case c.network.FullCommand():
		return showNetwork(stdout, project.Resolve(src), *c.networkName, cfg.OutputFormat, *c.networkReveal)
	case c.vars.FullCommand():
		return listVariables(stdout, src)
	case c.serve.FullCommand():
		return serve(cfg, src, logger)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func showProject(w io.Writer, cfg project.ProjectConfig, format render.Format, reveal bool) error {
	if !reveal {
		cfg = cfg.Redacted()
	}
	return render.Write(w, cfg.Document(), format)
}

func showNetwork(w io.Writer, cfg project.ProjectConfig, name string, format render.Format, reveal bool) error {
	if !reveal {
		cfg = cfg.Redacted()
	}
	network, ok := cfg.Network(name)
	if !ok {
		return fmt.Errorf("unknown network %q (known: %v)", name, cfg.NetworkNames())
	}
	return render.WriteNetwork(w, name, network.Document(), format)
}

// listVariables reports the state of each consumed variable. Values are
// never printed.
func listVariables(w io.Writer, src env.Source) error {
	for _, name := range project.Variables() {
		value, ok := src.LookupEnv(name)
		state := color.GreenString("set")
		switch {
		case !ok:
			state = color.YellowString("unset")
		case value == "":
			state = color.YellowString("empty")
		}
		if _, err := fmt.Fprintf(w, "%-14s %s\n", name, state); err != nil {
			return err
		}
	}
	return nil
}

func serve(cfg config.Config, src env.Source, logger *zap.Logger) error {
	app, err := application.New(cfg, src, logger)
	if err != nil {
		return fmt.Errorf("initialize application: %w", err)
	}

	if err := app.Start(); err != nil {
		return fmt.Errorf("start server: %w", err)
	}

	shutdown(app.Server(), cfg.ShutdownGracePeriod, logger)
	return nil
}

func shutdown(server *http.Server, timeout time.Duration, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}

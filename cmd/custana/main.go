// Copyright (c) 2021-2026 Rustam Gilyazov and Contributors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Command custana starts the customer analytics MCP server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/rusq/osenv/v2"
	"golang.org/x/time/rate"

	"github.com/rusq/custana/internal/apiclient"
	"github.com/rusq/custana/internal/mcp"
	"github.com/rusq/custana/internal/source"
)

const (
	apiURLEnv     = "CUSTOMER_API_URL"
	apiTokenEnv   = "CUSTOMER_API_TOKEN"
	apiTimeoutEnv = "CUSTOMER_API_TIMEOUT"
	// apiKeyEnv is accepted as a fallback for apiTokenEnv.
	apiKeyEnv = "CUSTOMER_API_KEY"
)

const defBurst = 1

var build = "dev"

// secrets defines the names of the supported secret files that we load our
// secrets from.  Inexperienced windows users might have bad experience trying
// to create .env file with the notepad as it will battle for having the
// "txt" extension.  Let it have it.
var secrets = []string{".env", ".env.txt", "secrets.txt"}

// params is the command line parameters.
type params struct {
	baseURL    string
	token      string
	timeout    time.Duration
	configFile string
	rateLimit  uint
	burst      uint

	serverName string
	transport  string
	listenAddr string
	demo       bool

	logFile      string
	jsonLog      bool
	traceFile    string
	verbose      bool
	printVersion bool
}

func main() {
	loadSecrets(secrets)

	p, err := parseCmdLine(os.Args[1:])
	if err != nil {
		slog.Error("invalid parameters", "error", err)
		os.Exit(2)
	}
	if p.printVersion {
		fmt.Println(build)
		return
	}

	lg, stopLog, err := initLog(p.logFile, p.jsonLog, p.verbose)
	if err != nil {
		slog.Error("logging initialisation failed", "error", err)
		os.Exit(1)
	}
	defer stopLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, lg, p); err != nil {
		lg.ErrorContext(ctx, "fatal", "error", err)
		stopLog()
		os.Exit(1)
	}
}

func run(ctx context.Context, lg *slog.Logger, p params) error {
	stopTrace := initTrace(p.traceFile)
	defer stopTrace()

	src, fetcher, err := openSource(ctx, lg, p)
	if err != nil {
		return err
	}

	opts := []mcp.Option{
		mcp.WithLogger(lg),
		mcp.WithName(p.serverName),
	}
	if fetcher != nil {
		opts = append(opts, mcp.WithFetcher(fetcher))
	}
	srv := mcp.New(src, opts...)
	srv.AddTool(toolServerInfo(src, fetcher))

	switch p.transport {
	case "stdio", "":
		return srv.ServeStdio(ctx)
	case "http":
		return srv.ServeHTTP(ctx, p.listenAddr)
	default:
		return fmt.Errorf("unknown transport %q (use \"stdio\" or \"http\")", p.transport)
	}
}

// openSource initialises the customer source and, when API credentials are
// present, the fetch gateway.  Demo mode never touches the network.
func openSource(ctx context.Context, lg *slog.Logger, p params) (source.Sourcer, mcp.Fetcher, error) {
	cfg, err := gatewayConfig(p)
	if err != nil {
		return nil, nil, err
	}

	if p.demo || cfg.Token == "" {
		if !p.demo {
			lg.InfoContext(ctx, "no API token configured, using the demo dataset", "env", apiTokenEnv)
		}
		demo, err := source.OpenDemo()
		if err != nil {
			return nil, nil, fmt.Errorf("demo dataset: %w", err)
		}
		return demo, nil, nil
	}

	var clOpts []apiclient.Option
	if lim := newLimiter(p.rateLimit, p.burst); lim != nil {
		clOpts = append(clOpts, apiclient.WithLimiter(lim))
	}
	cl, err := apiclient.New(*cfg, clOpts...)
	if err != nil {
		return nil, nil, fmt.Errorf("customer API: %w", err)
	}
	lg.InfoContext(ctx, "using the customer API", "base_url", cl.BaseURL())
	return source.OpenAPI(cl), cl, nil
}

// gatewayConfig assembles the gateway configuration from the config file and
// the command line, the latter taking precedence.
func gatewayConfig(p params) (*apiclient.Config, error) {
	cfg := &apiclient.Config{}
	if p.configFile != "" {
		var err error
		cfg, err = apiclient.Load(p.configFile)
		if err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
	}
	if p.baseURL != "" {
		cfg.BaseURL = p.baseURL
	}
	if p.token != "" {
		cfg.Token = p.token
	}
	if p.timeout > 0 {
		cfg.Timeout = p.timeout
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = apiclient.DefBaseURL
	}
	return cfg, nil
}

// newLimiter returns a client-side rate limiter allowing perMinute requests
// per minute with the given burst, or nil when perMinute is zero.
func newLimiter(perMinute, burst uint) *rate.Limiter {
	if perMinute == 0 {
		return nil
	}
	if burst == 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), int(burst))
}

// envDuration returns the duration from the environment variable, or zero
// if it is unset or unparseable.
func envDuration(key string) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return 0
	}
	return d
}

// loadSecrets load secrets from the files in secrets slice.
func loadSecrets(files []string) {
	for _, f := range files {
		godotenv.Load(f)
	}
}

// parseCmdLine parses the command line arguments.
func parseCmdLine(args []string) (params, error) {
	fs := flag.NewFlagSet("custana", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(
			fs.Output(),
			"Custana %s - customer analytics MCP server.\n\n"+
				"Exposes customer profiles, predictions and segment analytics to MCP\n"+
				"clients, backed by the customer API or the built-in demo dataset.\n\n"+
				"Usage:  %s [flags]\n\n",
			build, filepath.Base(os.Args[0]))
		fs.PrintDefaults()
	}

	var p params
	fs.StringVar(&p.baseURL, "base-url", osenv.Value(apiURLEnv, ""), "customer API `URL` (environment: "+apiURLEnv+")")
	fs.StringVar(&p.token, "token", osenv.Secret(apiTokenEnv, osenv.Secret(apiKeyEnv, "")), "customer API bearer `token` (environment: "+apiTokenEnv+")")
	fs.DurationVar(&p.timeout, "timeout", envDuration(apiTimeoutEnv), "per-request `timeout`, 0 for the default (environment: "+apiTimeoutEnv+")")
	fs.StringVar(&p.configFile, "config", "", "gateway configuration `file` (YAML)")
	fs.UintVar(&p.rateLimit, "rate", 0, "limit API requests to `N` per minute, 0 for unlimited")
	fs.UintVar(&p.burst, "burst", defBurst, "allow up to `N` burst API requests")

	fs.StringVar(&p.serverName, "name", osenv.Value("CUSTANA_SERVER_NAME", ""), "advertised MCP server `name`")
	fs.StringVar(&p.transport, "transport", "stdio", "MCP transport: \"stdio\" or \"http\"")
	fs.StringVar(&p.listenAddr, "listen", "127.0.0.1:8483", "address to listen on when -transport=http")
	fs.BoolVar(&p.demo, "demo", false, "serve the built-in demo dataset, do not use the customer API")

	fs.StringVar(&p.logFile, "log", os.Getenv("LOG_FILE"), "log `file`, if not specified, messages are printed to STDERR")
	fs.BoolVar(&p.jsonLog, "log-json", false, "log in JSON format")
	fs.StringVar(&p.traceFile, "trace", os.Getenv("TRACE_FILE"), "trace `filename`")
	fs.BoolVar(&p.verbose, "v", osenv.Value("DEBUG", false), "verbose messages")
	fs.BoolVar(&p.printVersion, "V", false, "print version and exit")

	os.Unsetenv(apiTokenEnv)
	os.Unsetenv(apiKeyEnv)

	if err := fs.Parse(args); err != nil {
		return p, err
	}
	if fs.NArg() > 0 {
		return p, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return p, nil
}

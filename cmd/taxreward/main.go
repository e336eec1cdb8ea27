// Command taxreward drives tax-and-reward deployments stored in a local
// bbolt ledger.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"

	"github.com/bitfsorg/taxreward-go/config"
	"github.com/bitfsorg/taxreward-go/distributor"
	"github.com/bitfsorg/taxreward-go/logger"
	"github.com/bitfsorg/taxreward-go/store"
	"github.com/bitfsorg/taxreward-go/taxerr"
)

const usage = `usage: taxreward [global flags] <command> [flags]

commands:
  init            create the deployment for the configured mint
  transfer        run a taxed transfer and distribute the proceeds
  claim           pay a holder's pending rewards
  set-policy      change the tax rate or pause flag
  refresh-supply  replace the supply proceeds are spread over
  close           delete a settled ledger entry
  fund            credit tokens or native currency to an account
  show            print deployment state
`

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if code := taxerr.CodeOf(err); code != taxerr.CodeUnknown {
			fmt.Fprintf(os.Stderr, "Code: %d (%s)\n", uint32(code), code)
		}
		os.Exit(1)
	}
}

// env holds what every command needs.
type env struct {
	cfg    config.Config
	log    *slog.Logger
	dist   *distributor.Distributor
	out    io.Writer
	closer io.Closer
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	global := flag.NewFlagSet("taxreward", flag.ContinueOnError)
	global.SetOutput(stderr)
	global.SetInterspersed(false)
	global.Usage = func() { fmt.Fprint(stderr, usage) }
	dataDirFlag := global.String("data-dir", "", "data directory (or set TAXREWARD_DATA_DIR env var)")
	verboseFlag := global.Bool("verbose", false, "enable verbose (debug) logging")
	programFlag := global.String("program-id", "", "program id, overrides the config file")
	mintFlag := global.String("mint", "", "mint, overrides the config file")
	if err := global.Parse(args); err != nil {
		return err
	}
	if global.NArg() == 0 {
		global.Usage()
		return fmt.Errorf("no command given")
	}

	dataDir := config.DefaultDataDir()
	if v := os.Getenv("TAXREWARD_DATA_DIR"); v != "" {
		dataDir = v
	}
	if *dataDirFlag != "" {
		dataDir = *dataDirFlag
	}

	cfg, err := config.LoadConfig(config.ConfigPath(dataDir))
	if errors.Is(err, config.ErrConfigNotFound) {
		cfg = config.DefaultConfig()
	} else if err != nil {
		return err
	}
	cfg.DataDir = dataDir
	if v := os.Getenv("TAXREWARD_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if *verboseFlag {
		cfg.LogLevel = "debug"
	}
	if *programFlag != "" {
		cfg.ProgramID = *programFlag
	}
	if *mintFlag != "" {
		cfg.Mint = *mintFlag
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return err
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	log := logger.New(stderr, level)

	e, err := open(cfg, log, stdout)
	if err != nil {
		return err
	}
	defer e.closer.Close()

	cmd, cmdArgs := global.Arg(0), global.Args()[1:]
	log.Debug("running command", "command", cmd, "data_dir", dataDir, "program_id", cfg.ProgramID, "mint", cfg.Mint)

	switch cmd {
	case "init":
		return e.initCmd(ctx, cmdArgs)
	case "transfer":
		return e.transferCmd(ctx, cmdArgs)
	case "claim":
		return e.claimCmd(ctx, cmdArgs)
	case "set-policy":
		return e.setPolicyCmd(ctx, cmdArgs)
	case "refresh-supply":
		return e.refreshSupplyCmd(ctx, cmdArgs)
	case "close":
		return e.closeCmd(ctx, cmdArgs)
	case "fund":
		return e.fundCmd(ctx, cmdArgs)
	case "show":
		return e.showCmd(cmdArgs)
	default:
		global.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// open builds the distributor over the data directory's ledger.
func open(cfg config.Config, log *slog.Logger, out io.Writer) (*env, error) {
	if cfg.ProgramID == "" {
		return nil, fmt.Errorf("program id is required (set program_id in %s or pass --program-id)", config.ConfigPath(cfg.DataDir))
	}
	program, err := parseKey("program-id", cfg.ProgramID)
	if err != nil {
		return nil, err
	}
	router, err := buildRouter(cfg.Routes, log)
	if err != nil {
		return nil, err
	}

	st, err := store.OpenBoltStore(config.DBPath(cfg.DataDir))
	if err != nil {
		return nil, err
	}
	dist, err := distributor.New(distributor.Config{
		Logger:    log,
		Store:     st,
		Router:    router,
		ProgramID: program,
	})
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	return &env{cfg: cfg, log: log, dist: dist, out: out, closer: st}, nil
}

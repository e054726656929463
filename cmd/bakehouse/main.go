package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"bakehouse/pkg/infrastructure/config"
	"bakehouse/pkg/interfaces/cli/commands"
	"bakehouse/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	subcommand := os.Args[1]
	args := os.Args[2:]

	var err error
	switch subcommand {
	case "plan":
		err = runPlan(args)
	case "cost":
		err = runCost(args)
	case "help", "-help", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", subcommand)
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runPlan(args []string) error {
	flags := flag.NewFlagSet("plan", flag.ExitOnError)
	var (
		scenarioDir = flags.String("scenario", "", "Path to scenario directory containing CSV files")
		eventName   = flags.String("event", "", "Name of the planning event")
		configFile  = flags.String("config", "", "Path to configuration file (optional)")
		format      = flags.String("format", "text", "Output format: text, json")
		maxDepth    = flags.Int("max-depth", 0, "Maximum bundle nesting depth (0 = config default)")
		verbose     = flags.Bool("verbose", false, "Enable verbose output")
		help        = flags.Bool("help", false, "Show help message")
	)
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, log, err := setup(*configFile, *verbose)
	if err != nil {
		return err
	}

	depth := *maxDepth
	if depth <= 0 {
		depth = cfg.Planning.MaxDepth
	}

	cmd := commands.NewPlanCommand(commands.PlanConfig{
		ScenarioDir:       *scenarioDir,
		EventName:         *eventName,
		Format:            *format,
		MaxDepth:          depth,
		CostPrecision:     cfg.Display.CostPrecision,
		QuantityPrecision: cfg.Display.QuantityPrecision,
		Verbose:           *verbose,
		Help:              *help,
	}, log)

	return cmd.Execute(context.Background())
}

func runCost(args []string) error {
	flags := flag.NewFlagSet("cost", flag.ExitOnError)
	var (
		scenarioDir = flags.String("scenario", "", "Path to scenario directory containing CSV files")
		recipeID    = flags.String("recipe", "", "Recipe to price")
		mode        = flags.String("mode", "actual", "Costing mode: actual, estimated, commit")
		configFile  = flags.String("config", "", "Path to configuration file (optional)")
		format      = flags.String("format", "text", "Output format: text, json")
		verbose     = flags.Bool("verbose", false, "Enable verbose output")
		help        = flags.Bool("help", false, "Show help message")
	)
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, log, err := setup(*configFile, *verbose)
	if err != nil {
		return err
	}

	cmd := commands.NewCostCommand(commands.CostConfig{
		ScenarioDir:       *scenarioDir,
		RecipeID:          *recipeID,
		Mode:              *mode,
		Format:            *format,
		CostPrecision:     cfg.Display.CostPrecision,
		QuantityPrecision: cfg.Display.QuantityPrecision,
		Verbose:           *verbose,
		Help:              *help,
	}, log)

	return cmd.Execute(context.Background())
}

func setup(configFile string, verbose bool) (*config.Config, *slog.Logger, error) {
	cfg := config.Default()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, nil, err
		}
		cfg = loaded
	}

	logConfig := logger.DefaultConfig()
	logConfig.Level = cfg.Logging.Level
	logConfig.Format = cfg.Logging.Format
	if verbose && logConfig.Level != "debug" {
		logConfig.Level = "info"
	}

	return cfg, logger.New(logConfig), nil
}

func usage() {
	fmt.Printf(`bakehouse - production planning and costing for small-batch bakeries

USAGE:
    bakehouse <command> [options]

COMMANDS:
    plan    Decompose event selections into batch options
    cost    Price a recipe against inventory and sources
    help    Show this help message

Run 'bakehouse <command> -help' for command options.
`)
}

package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/secbrief/internal/common"
)

// configPaths is a custom flag type that allows multiple -config flags
type configPaths []string

func (c *configPaths) String() string {
	return fmt.Sprintf("%v", *c)
}

func (c *configPaths) Set(value string) error {
	*c = append(*c, value)
	return nil
}

var (
	configFiles  configPaths
	showVersion  = flag.Bool("version", false, "Print version information")
	showVersionV = flag.Bool("v", false, "Print version information (shorthand)")

	// Global state
	config *common.Config
	logger arbor.ILogger
)

func init() {
	flag.Var(&configFiles, "config", "Configuration file path (can be specified multiple times, later files override earlier ones)")
	flag.Var(&configFiles, "c", "Configuration file path (shorthand)")
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: secbrief [flags] <command> [command flags]

Commands:
  ingest     Parse a markdown digest and store its articles
  generate   Generate summaries and tips for stored articles
  reconcile  Repair missing, malformed, and placeholder derived records
  export     Export a digest of stored articles, summaries, and tips
  watch      Run reconciliation on a schedule
  version    Print version information

Flags:
`)
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if *showVersion || *showVersionV {
		fmt.Printf("SecBrief version %s\n", common.GetVersion())
		os.Exit(0)
	}

	command := flag.Arg(0)
	if command == "" {
		usage()
		os.Exit(2)
	}
	if command == "version" {
		fmt.Printf("SecBrief version %s\n", common.GetFullVersion())
		os.Exit(0)
	}

	// Startup sequence (REQUIRED ORDER):
	// 1. Load config (defaults -> file1 -> file2 -> ... -> env)
	// 2. Initialize logger
	// 3. Print banner
	// 4. Install crash protection
	if len(configFiles) == 0 {
		if _, err := os.Stat("secbrief.toml"); err == nil {
			configFiles = append(configFiles, "secbrief.toml")
		}
	}

	var err error
	config, err = common.LoadFromFiles(configFiles...)
	if err != nil {
		tempLogger := arbor.NewLogger()
		tempLogger.Fatal().Strs("paths", configFiles).Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}

	logger = common.InitLogger(config)
	common.PrintBanner(common.GetVersion())
	common.InstallCrashHandler("")

	defer func() {
		if r := recover(); r != nil {
			crashPath := common.WriteCrashFile(r, string(debug.Stack()))
			logger.Fatal().
				Str("panic", fmt.Sprintf("%v", r)).
				Str("crash_file", crashPath).
				Msg("Fatal error")
			os.Exit(1)
		}
	}()

	logger.Info().
		Strs("config_files", configFiles).
		Str("command", command).
		Str("environment", config.Environment).
		Msg("Application configuration loaded")

	args := flag.Args()[1:]
	switch command {
	case "ingest":
		err = runIngest(args)
	case "generate":
		err = runGenerate(args)
	case "reconcile":
		err = runReconcile(args)
	case "export":
		err = runExport(args)
	case "watch":
		err = runWatch(args)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		usage()
		os.Exit(2)
	}

	if err != nil {
		logger.Error().Err(err).Str("command", command).Msg("Command failed")
		os.Exit(1)
	}
}

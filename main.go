package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/m-manu/digipres-columns/columns"
	"github.com/m-manu/digipres-columns/config"
	"github.com/m-manu/digipres-columns/entity"
	"github.com/m-manu/digipres-columns/fmte"
)

// Constants indicating return codes of this tool, when run from command line
const (
	exitCodeSuccess = iota
	exitCodeInvalidArgs
	exitCodeConfigError
	exitCodeToolMissing
	exitCodeChecksumError
	exitCodeOutputError
)

// set at build time with -ldflags "-X main.version=..."
var version = "dev"

var flags struct {
	isHelp         func() bool
	isVersion      func() bool
	isCheck        func() bool
	isSampleConfig func() bool
	isVerbose      func() bool
	isLogJSON      func() bool
	getConfigPath  func() string
	getOverrides   func() config.Overrides
}

func handlePanic() {
	err := recover()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Program exited unexpectedly. "+
			"Please report the below error to the author:\n"+
			"%+v\n", err)
		_, _ = fmt.Fprintln(os.Stderr, string(debug.Stack()))
	}
}

func setupUsage() {
	flag.Usage = func() {
		fmte.PrintfErr("Run \"digipres-columns --help\" for usage\n")
	}
}

func showHelpAndExit() {
	flag.CommandLine.SetOutput(os.Stdout)
	fmt.Printf(`digipres-columns shows digital preservation columns (format identification and checksum) ` +
		`for files.

Usage:
	 digipres-columns <flags> [path-or-file-uri ...]

where,
	path-or-file-uri   A file, a directory (its immediate files are listed) or a file:// URI

flags: (all optional)
`)
	flag.PrintDefaults()
	fmt.Printf("\nFormat identification needs Siegfried (sf): https://www.itforarchivists.com/siegfried\n")
	os.Exit(exitCodeSuccess)
}

func setupBoolOpts() {
	helpPtr := flag.BoolP("help", "h", false, "display help")
	versionPtr := flag.Bool("version", false, "display version")
	checkPtr := flag.Bool("check", false, "check whether sf can be found and exit")
	sampleConfigPtr := flag.Bool("sample-config", false, "print a sample configuration file and exit")
	verbosePtr := flag.BoolP("verbose", "v", false, "print skipped files and failure details to stderr")
	logJSONPtr := flag.Bool("log-json", false, "report identification failures as JSON log lines on stderr")
	flags.isHelp = func() bool { return *helpPtr }
	flags.isVersion = func() bool { return *versionPtr }
	flags.isCheck = func() bool { return *checkPtr }
	flags.isSampleConfig = func() bool { return *sampleConfigPtr }
	flags.isVerbose = func() bool { return *verbosePtr }
	flags.isLogJSON = func() bool { return *logJSONPtr }
}

func setupConfigOpt() {
	defaultConfigPath, _ := config.DefaultConfigPath()
	configPathPtr := flag.String("config", "", fmt.Sprintf("path to the configuration file\n(default %s)", defaultConfigPath))
	flags.getConfigPath = func() string {
		return *configPathPtr
	}
}

// setupOverrideOpts registers flags that take precedence over the configuration file.
// Only flags set explicitly are carried over.
func setupOverrideOpts() {
	binaryPtr := flag.String("sf", "", fmt.Sprintf("sf executable (overrides $%s and the config file)", config.BinaryEnv))
	algorithmPtr := flag.StringP("algorithm", "a", "",
		fmt.Sprintf("checksum algorithm, one of %v", entity.DigestAlgorithms))
	timeoutPtr := flag.Int("timeout", 0, "seconds to wait for sf on a single file (0 waits indefinitely)")
	formatPtr := flag.StringP("format", "f", "", "output format: auto, table, csv, tsv or json")
	columnsPtr := flag.StringSlice("columns", nil,
		fmt.Sprintf("comma separated columns to show, from: %s", strings.Join(columns.Attributes(), ", ")))
	flags.getOverrides = func() config.Overrides {
		var o config.Overrides
		if flag.CommandLine.Changed("sf") {
			o.Binary = binaryPtr
		}
		if flag.CommandLine.Changed("algorithm") {
			o.Algorithm = algorithmPtr
		}
		if flag.CommandLine.Changed("timeout") {
			o.TimeoutSeconds = timeoutPtr
		}
		if flag.CommandLine.Changed("format") {
			o.Format = formatPtr
		}
		if flag.CommandLine.Changed("columns") {
			o.Columns = *columnsPtr
			if o.Columns == nil {
				o.Columns = []string{}
			}
		}
		return o
	}
}

func setupFlags() {
	setupBoolOpts()
	setupConfigOpt()
	setupOverrideOpts()
	setupUsage()
}

func loadConfig() *config.Config {
	cfg, path, exists, err := config.Load(flags.getConfigPath())
	if err != nil {
		fmte.PrintfErr("error: couldn't load configuration: %+v\n", err)
		os.Exit(exitCodeConfigError)
	}
	if exists {
		fmte.PrintfErrV("Using configuration from %s\n", path)
	}
	if err := cfg.Apply(flags.getOverrides()); err != nil {
		fmte.PrintfErr("error: %+v\n", err)
		flag.Usage()
		os.Exit(exitCodeInvalidArgs)
	}
	return cfg
}

func main() {
	defer handlePanic()
	setupFlags()
	flag.Parse()
	if flags.isHelp() {
		showHelpAndExit()
	}
	if flags.isVersion() {
		fmte.Printf("digipres-columns %s\n", version)
		os.Exit(exitCodeSuccess)
	}
	if flags.isSampleConfig() {
		fmte.Printf("%s", config.SampleConfig())
		os.Exit(exitCodeSuccess)
	}
	if flags.isVerbose() {
		fmte.VerboseOn()
	}
	cfg := loadConfig()
	reporter, flush, reporterErr := newReporter(flags.isLogJSON())
	if reporterErr != nil {
		fmte.PrintfErr("error: %+v\n", reporterErr)
		os.Exit(exitCodeConfigError)
	}
	if flags.isCheck() {
		if err := newIdentifier(cfg, reporter).Available(); err != nil {
			fmte.PrintfErr("error: %+v\n", err)
			os.Exit(exitCodeToolMissing)
		}
		fmte.Printf("sf found: %s\n", cfg.Siegfried.Binary)
		os.Exit(exitCodeSuccess)
	}
	if flag.NArg() == 0 {
		fmte.PrintfErr("error: no files passed\n")
		flag.Usage()
		os.Exit(exitCodeInvalidArgs)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	collectErr, renderErr := digipresColumns(ctx, cfg, reporter, flag.Args(), os.Stdout)
	stop()
	flush()
	if renderErr != nil {
		fmte.PrintfErr("error while rendering: %+v\n", renderErr)
		os.Exit(exitCodeOutputError)
	}
	if collectErr != nil {
		fmte.PrintfErr("%+v\n", collectErr)
		os.Exit(exitCodeChecksumError)
	}
}

package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gubarz/sloc/internal/config"
	"github.com/gubarz/sloc/internal/registry"
	"github.com/gubarz/sloc/internal/report"
	"github.com/gubarz/sloc/internal/scanner"
	"github.com/gubarz/sloc/internal/termstyle"
	"github.com/gubarz/sloc/internal/ui"
)

var version = "1.0.0"

const usage = `USAGE: sloc [FILE] ...
Where FILE is a valid path/filename.
`

// browse is swapped out in tests
var browse = ui.Run

func init() {
	cobra.OnInitialize(initConfig)
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sloc FILE [FILE ...]",
		Short: "Count source lines of code",
		Long: `Counts the total, code, blank and commented lines of source files.

Comment syntax is chosen by file extension from a rule file. The built-in
rules can be replaced with --rules or extended from the config file.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runSloc,
	}

	flags := cmd.Flags()
	flags.StringP("rules", "r", "", "Comment rule file (text, yaml, toml or json)")
	flags.StringP("format", "f", "text", "Output format: "+strings.Join(report.Formats(), ", "))
	flags.String("color", "auto", "Color output: auto, always, never")
	flags.BoolP("total", "t", false, "Print totals over all files")
	flags.BoolP("browse", "b", false, "Browse the results interactively")
	flags.BoolP("verbose", "v", false, "Write diagnostics to stderr")
	flags.Bool("list", false, "List supported extensions and exit")

	viper.BindPFlag("rules", flags.Lookup("rules"))
	viper.BindPFlag("format", flags.Lookup("format"))
	viper.BindPFlag("color", flags.Lookup("color"))
	viper.BindPFlag("total", flags.Lookup("total"))
	viper.BindPFlag("verbose", flags.Lookup("verbose"))

	return cmd
}

func initConfig() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
	}
}

func runSloc(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	listOnly, _ := cmd.Flags().GetBool("list")
	browseResults, _ := cmd.Flags().GetBool("browse")

	logger := log.New(io.Discard, "", 0)
	if config.GetVerbose() {
		logger.SetOutput(cmd.ErrOrStderr())
	}
	if cfg := config.ConfigFile(); cfg != "" {
		logger.Printf("using config %s", cfg)
	}

	if len(args) == 0 && !listOnly {
		_, err := io.WriteString(out, usage)
		return err
	}

	rules, err := loadRules()
	if err != nil {
		return err
	}
	logger.Printf("using comment rules from %s (%d extensions)", rules.Source(), rules.Len())

	if listOnly {
		return listExtensions(out, rules)
	}

	renderer, err := report.New(config.GetFormat(), out, report.Options{
		Styles: outputStyles(out, cmd.ErrOrStderr()),
		Totals: config.GetTotal(),
	})
	if err != nil {
		return err
	}

	s := scanner.New(rules, scanner.WithLogger(logger))
	entries := make([]report.Entry, 0, len(args))

	for _, arg := range args {
		result, err := s.ScanFile(arg)
		if err != nil {
			logger.Printf("%v", err)
		}
		entries = append(entries, report.Entry{Arg: arg, Result: result, Err: err})
	}
	if err := report.Write(renderer, entries); err != nil {
		return err
	}

	if browseResults {
		return browse(entries, palette())
	}
	return nil
}

// loadRules resolves the rule file and merges extra_rules from the config
func loadRules() (*registry.Registry, error) {
	rules, err := registry.Resolve(config.GetRules())
	if err != nil {
		return nil, err
	}
	if extra := config.GetExtraRules(); len(extra) > 0 {
		more, err := registry.FromSpecs(extra, "extra_rules")
		if err != nil {
			return nil, err
		}
		rules = rules.Merge(more)
	}
	return rules, nil
}

func listExtensions(w io.Writer, rules *registry.Registry) error {
	exts := rules.Extensions()
	width := 0
	for _, ext := range exts {
		width = max(width, len(ext)+1)
	}
	for _, ext := range exts {
		rs, _ := rules.Lookup(ext)
		if _, err := fmt.Fprintf(w, "%-*s  %s\n", width, "."+ext, registry.Describe(rs)); err != nil {
			return err
		}
	}
	return nil
}

func palette() termstyle.Palette {
	return termstyle.Palette{
		Header:    config.GetColorHeader(),
		Code:      config.GetColorCode(),
		Blank:     config.GetColorBlank(),
		Comment:   config.GetColorComment(),
		Delimiter: config.GetColorDelimiter(),
		Warning:   config.GetColorWarning(),
	}
}

// outputStyles returns colored styles for the text and table formats when
// the color mode and terminal allow it
func outputStyles(out, errOut io.Writer) *termstyle.Styles {
	switch config.GetFormat() {
	case "text", "table":
	default:
		return termstyle.Plain()
	}
	mode, err := termstyle.ParseMode(config.GetColor())
	if err != nil {
		fmt.Fprintf(errOut, "Warning: %v, using auto\n", err)
	}
	env := termstyle.EnvMap(os.Environ())
	return termstyle.New(out, palette(), termstyle.DetectProfile(env), termstyle.Enabled(mode, out, env))
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

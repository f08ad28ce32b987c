package main

import (
	"fmt"
	"strings"
	"time"

	journal "github.com/orbdiff/usnjournal"
	"github.com/orbdiff/usnjournal/output"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// dateArgLayout is the format accepted by -A, per spec.md's CLI table.
const dateArgLayout = "2006-01-02 15:04:05"

// config collects every flag's raw value before it's turned into a
// journal.Config; rootMain does the turning.
var config struct {
	afterLogon  bool
	afterDate   string
	names       string
	reasons     string
	ids         string
	paths       string
	recursive   bool
	detectors   string
	onlyReplace bool
	formats     string
	outputs     string
	console     bool
}

var rootCommand = &cobra.Command{
	Use:           "usnjournal <volume>",
	Short:         "Analyse an NTFS USN change journal for replace patterns",
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          rootMain,
}

func init() {
	flags := rootCommand.Flags()
	flags.BoolVarP(&config.afterLogon, "after-logon", "L", false, "only consider records after the current interactive logon")
	flags.StringVarP(&config.afterDate, "after-date", "A", "", "only consider records after this date (YYYY-MM-DD HH:MM:SS)")
	flags.StringVarP(&config.names, "names", "n", "", "semicolon-separated name substrings to match")
	flags.StringVarP(&config.reasons, "reasons", "r", "", "semicolon-separated reason substrings to match")
	flags.StringVarP(&config.ids, "ids", "i", "", "semicolon-separated file id substrings to match")
	flags.StringVarP(&config.paths, "paths", "p", "", "semicolon-separated directory paths to match")
	flags.BoolVarP(&config.recursive, "recursive", "R", false, "match paths as substrings anywhere in the directory rather than by prefix")
	flags.StringVarP(&config.detectors, "detectors", "x", "all", "semicolon-separated detectors to run: copy;type;explorer;all")
	flags.BoolVar(&config.onlyReplace, "only-replace", false, "emit only detected replacements, not the full entry log")
	flags.StringVarP(&config.formats, "formats", "f", "txt", "semicolon-separated output formats: txt;csv;json")
	flags.StringVarP(&config.outputs, "outputs", "o", "", "semicolon-separated output filenames, parallel to --formats")
	flags.BoolVarP(&config.console, "console", "c", false, "also print results to the console")
}

func rootMain(cmd *cobra.Command, args []string) error {
	volume := args[0]

	filterOpts, err := buildFilterOptions()
	if err != nil {
		return fmt.Errorf("%w: %v", journal.ErrInvalidArgument, err)
	}

	detectors, err := parseDetectors(config.detectors)
	if err != nil {
		return fmt.Errorf("%w: %v", journal.ErrInvalidArgument, err)
	}

	if err := journal.EnableDebugPrivilege(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "[-] warning: could not enable debug privilege, some paths may not resolve")
	}

	log := logrus.StandardLogger()
	result, err := journal.Run(journal.Config{
		Volume:      volume,
		Filter:      filterOpts,
		Detectors:   detectors,
		OnlyReplace: config.onlyReplace,
		Log:         log,
	})
	if err != nil {
		return err
	}

	targets := output.ResolveTargets(splitList(config.formats), splitList(config.outputs))
	writer := output.NewWriter(targets, config.console, log)

	if !config.onlyReplace {
		writer.WriteEntries(result.Entries)
	}
	writer.WriteReplacements("copy_replaces", result.CopyReplaces)
	writer.WriteReplacements("type_replaces", result.TypeReplaces)
	writer.WriteReplacements("explorer_replaces", result.ExplorerReplaces)

	output.WriteTiming(result.Timing.Elapsed, result.Timing.RecordCount, result.Timing.AggregationCount)
	return nil
}

func buildFilterOptions() (journal.FilterOptions, error) {
	opts := journal.FilterOptions{
		Names:     splitList(config.names),
		Reasons:   splitList(config.reasons),
		IDs:       splitList(config.ids),
		Paths:     splitList(config.paths),
		Recursive: config.recursive,
	}
	if config.afterLogon {
		opts.AfterLogon = journal.CurrentUserLogonTime()
	}
	if config.afterDate != "" {
		t, err := time.ParseInLocation(dateArgLayout, config.afterDate, time.Local)
		if err != nil {
			return opts, fmt.Errorf("bad -A date %q: %w", config.afterDate, err)
		}
		opts.AfterDate = t
	}
	return opts, nil
}

func parseDetectors(raw string) (journal.DetectorSet, error) {
	var set journal.DetectorSet
	for _, name := range splitList(raw) {
		switch strings.ToLower(name) {
		case "copy":
			set.Copy = true
		case "type":
			set.Type = true
		case "explorer":
			set.Explorer = true
		case "all":
			set = journal.DetectorSet{Copy: true, Type: true, Explorer: true}
		default:
			return set, fmt.Errorf("unknown detector %q", name)
		}
	}
	return set, nil
}

// splitList splits the domain's semicolon-separated list flags. pflag's
// built-in StringSliceVar uses a comma, which collides with path and date
// values that can themselves contain commas, so every list flag here is a
// plain string split by hand instead.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Package output renders a run's results to txt, csv, or json targets. Its
// serializers use only the standard library's encoding/csv and encoding/json:
// nothing in the retrieved corpus pulls in a third-party serializer for
// either format, so this is one ambient concern where the stdlib is the
// idiomatic choice rather than a deviation from it.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	journal "github.com/orbdiff/usnjournal"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Format names accepted by the -f flag and used as the default extension
// for a target whose filename has none.
const (
	FormatText = "txt"
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// dateLayout is the fixed local-time format used everywhere a record's
// timestamp is rendered.
const dateLayout = "2006-01-02 15:04:05"

// entryRecord is the per-entry shape written to the full log.
type entryRecord struct {
	Name      string `json:"name"`
	Directory string `json:"directory"`
	FileID    string `json:"file_id"`
	USN       uint64 `json:"usn"`
	Date      string `json:"date"`
	Reason    string `json:"reason"`
}

// replaceEventRecord is one event inside a replacement's Events list.
type replaceEventRecord struct {
	Date      string `json:"date"`
	Reason    string `json:"reason"`
	Directory string `json:"directory"`
}

// replaceRecord is the per-replacement shape written to copy_replaces /
// type_replaces / explorer_replaces. FileID is omitted for an Explorer
// match, which spans several files.
type replaceRecord struct {
	Name        string               `json:"name"`
	Directory   string               `json:"directory"`
	FileID      string               `json:"file_id,omitempty"`
	ReplaceType string               `json:"replace_type"`
	Events      []replaceEventRecord `json:"events"`
}

// Target is one requested output destination: a format paired with a
// filename. Writer builds the filename actually used from this pair (see
// ResolveTargets).
type Target struct {
	Format   string
	Filename string
}

// ResolveTargets pairs the -f and -o flag lists the way spec.md's CLI table
// describes: parallel by position, the last filename reused for any format
// beyond the filename list's length, and the format's extension appended to
// any filename that doesn't already carry it.
func ResolveTargets(formats, filenames []string) []Target {
	targets := make([]Target, 0, len(formats))
	for i, f := range formats {
		name := ""
		if len(filenames) > 0 {
			if i < len(filenames) {
				name = filenames[i]
			} else {
				name = filenames[len(filenames)-1]
			}
		}
		targets = append(targets, Target{Format: f, Filename: withExtension(name, f)})
	}
	return targets
}

func withExtension(name, format string) string {
	if name == "" {
		return name
	}
	ext := "." + format
	if strings.EqualFold(filepath.Ext(name), ext) {
		return name
	}
	return name + ext
}

// Writer renders entries and replacements to the configured targets, plus
// optionally to the console. A target that can't be opened is logged and
// skipped; it never aborts the rest of the run.
type Writer struct {
	targets []Target
	console bool
	log     *logrus.Logger
}

// NewWriter builds a Writer over targets, optionally also echoing to the
// console.
func NewWriter(targets []Target, console bool, log *logrus.Logger) *Writer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Writer{targets: targets, console: console, log: log}
}

// WriteEntries renders the full entry log, under base name "usn_log" for any
// target without an -o filename.
func (w *Writer) WriteEntries(entries []journal.NormalisedEntry) {
	rows := make([]entryRecord, len(entries))
	for i, e := range entries {
		rows[i] = entryRecord{
			Name:      e.Name,
			Directory: e.Directory,
			FileID:    e.FileID.String(),
			USN:       e.USN,
			Date:      e.Timestamp.Format(dateLayout),
			Reason:    e.Reasons,
		}
	}
	w.writeAll("usn_log", entryRows(rows), true)
	if w.console {
		for _, r := range rows {
			fmt.Printf("%s\t%s\t%s\t%s\t%d\t%s\n", r.Date, r.Name, r.Directory, r.FileID, r.USN, r.Reason)
		}
	}
}

// WriteReplacements renders one kind of replacement (copy, type, or
// explorer) under the given fixed base name. Unlike the full log, a
// replacement target's filename is always the fixed base name plus the
// format's extension: -o names the full log, not the three replacement
// files.
func (w *Writer) WriteReplacements(baseName string, replaces []journal.Replacement) {
	rows := make([]replaceRecord, len(replaces))
	for i, r := range replaces {
		rr := replaceRecord{
			Name:        r.Name,
			Directory:   r.Directory,
			ReplaceType: r.ReplaceType,
			Events:      make([]replaceEventRecord, len(r.Events)),
		}
		if r.HasFileID {
			rr.FileID = r.FileID.String()
		}
		for j, ev := range r.Events {
			rr.Events[j] = replaceEventRecord{
				Date:      ev.Timestamp.Format(dateLayout),
				Reason:    ev.Reasons,
				Directory: ev.Directory,
			}
		}
		rows[i] = rr
	}
	w.writeAll(baseName, replaceRows(rows), false)
	if w.console {
		for _, r := range rows {
			fmt.Printf("%s\t%s\t%s\t%s\n", r.Name, r.Directory, r.ReplaceType, r.FileID)
		}
	}
}

// WriteTiming prints the run's closing timing summary. It always goes to
// the console; it is not one of the named output targets.
func WriteTiming(elapsed time.Duration, recordCount, aggregationCount int) {
	fmt.Printf("[+] %d records, %d aggregations in %.3fs\n", recordCount, aggregationCount, elapsed.Seconds())
}

func (w *Writer) writeAll(baseName string, rows renderable, honorOutputFlag bool) {
	for _, t := range w.targets {
		path := baseName + "." + t.Format
		if honorOutputFlag && t.Filename != "" {
			path = t.Filename
		}
		if err := writeOne(t.Format, path, rows); err != nil {
			w.log.WithError(errors.Wrap(err, "write output")).Warnf("[-] skipping target %s", path)
		}
	}
}

func writeOne(format, path string, rows renderable) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(journal.ErrOutputFileOpenFailed, "%s: %v", path, err)
	}
	defer f.Close()

	switch format {
	case FormatCSV:
		return rows.writeCSV(f)
	case FormatJSON:
		return rows.writeJSON(f)
	default:
		return rows.writeText(f)
	}
}

package output

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
)

// renderable is implemented by each record-shape slice so writeOne can stay
// agnostic of whether it's writing entries or replacements.
type renderable interface {
	writeCSV(w io.Writer) error
	writeJSON(w io.Writer) error
	writeText(w io.Writer) error
}

type entryRows []entryRecord

func (rows entryRows) writeCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"name", "directory", "file_id", "usn", "date", "reason"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.Name, r.Directory, r.FileID, fmt.Sprint(r.USN), r.Date, r.Reason}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (rows entryRows) writeJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func (rows entryRows) writeText(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, r := range rows {
		fmt.Fprintf(bw, "%s\t%s\t%s\t%s\t%d\t%s\n", r.Date, r.Name, r.Directory, r.FileID, r.USN, r.Reason)
	}
	return bw.Flush()
}

type replaceRows []replaceRecord

// writeCSV flattens each replacement to one row per event. The replace
// type is repeated in its own column on every row *and* folded into the
// reason column verbatim, matching the original tool's CSV layout byte for
// byte rather than normalising it away.
func (rows replaceRows) writeCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"name", "directory", "file_id", "replace_type", "date", "reason", "event_directory"}); err != nil {
		return err
	}
	for _, r := range rows {
		for _, ev := range r.Events {
			row := []string{r.Name, r.Directory, r.FileID, r.ReplaceType, ev.Date, r.ReplaceType + ": " + ev.Reason, ev.Directory}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func (rows replaceRows) writeJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func (rows replaceRows) writeText(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, r := range rows {
		fmt.Fprintf(bw, "%s\t%s\t%s\t%s\n", r.Name, r.Directory, r.ReplaceType, r.FileID)
		for _, ev := range r.Events {
			fmt.Fprintf(bw, "    %s\t%s\t%s\n", ev.Date, ev.Reason, ev.Directory)
		}
	}
	return bw.Flush()
}

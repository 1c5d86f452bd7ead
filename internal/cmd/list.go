package cmd

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/quantmind-br/vlaunch/internal/selector"
	"github.com/quantmind-br/vlaunch/internal/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// listEntry is the JSON view of a scanned entry
type listEntry struct {
	Name     string `json:"name"`
	Status   string `json:"status"`
	Version  string `json:"version,omitempty"`
	Error    string `json:"error,omitempty"`
	Selected bool   `json:"selected,omitempty"`
}

// listReport is the JSON document printed by list --json
type listReport struct {
	Dir      string      `json:"dir"`
	Selected string      `json:"selected,omitempty"`
	Entries  []listEntry `json:"entries"`
}

// NewListCmd creates the list command scanning dir on fs
func NewListCmd(log *zerolog.Logger, fs afero.Fs, dir string) *cobra.Command {
	var (
		jsonOutput bool
		showAll    bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Preview which executable would be launched",
		Long: `Scan the working directory the same way the launcher does and list the
candidates in selection order. The first row is the one that would be launched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := selector.New(fs, log).Scan(dir)
			if err != nil {
				ui.PrintError(cmd.ErrOrStderr(), "cannot scan %s: %v", dir, err)
				return fmt.Errorf("scan %s: %w", dir, err)
			}

			report := buildReport(dir, entries, showAll)

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}

			for _, e := range entries {
				if e.Status == selector.StatusUnreadable {
					ui.PrintWarning(cmd.ErrOrStderr(), "skipping %s: %v", e.Name, e.Err)
				}
			}

			if len(report.Entries) == 0 {
				ui.PrintInfo(cmd.OutOrStdout(), "No candidates in %s", dir)
				return nil
			}

			printTable(cmd, report, showAll)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	cmd.Flags().BoolVarP(&showAll, "all", "a", false, "also show skipped entries and why")

	return cmd
}

// buildReport orders candidates as the launcher would rank them, followed by
// skipped entries sorted by name when all is set.
func buildReport(dir string, entries []selector.Entry, all bool) listReport {
	report := listReport{Dir: dir, Entries: make([]listEntry, 0, len(entries))}

	for i, c := range selector.Candidates(entries) {
		e := listEntry{
			Name:     c.Name,
			Status:   string(selector.StatusCandidate),
			Version:  c.Version.String(),
			Selected: i == 0,
		}
		if e.Selected {
			report.Selected = c.Name
		}
		report.Entries = append(report.Entries, e)
	}

	if !all {
		return report
	}

	var skipped []listEntry
	for _, entry := range entries {
		if entry.Status == selector.StatusCandidate {
			continue
		}
		e := listEntry{Name: entry.Name, Status: string(entry.Status)}
		if entry.Status != selector.StatusNotVersioned {
			e.Version = entry.Version.String()
		}
		if entry.Err != nil {
			e.Error = entry.Err.Error()
		}
		skipped = append(skipped, e)
	}
	sort.Slice(skipped, func(i, j int) bool { return skipped[i].Name < skipped[j].Name })

	report.Entries = append(report.Entries, skipped...)
	return report
}

func printTable(cmd *cobra.Command, report listReport, all bool) {
	out := cmd.OutOrStdout()

	ui.PrintHeader(out, "Candidates in "+report.Dir)
	if report.Selected != "" {
		fmt.Fprintf(out, "Selected: %s\n\n", report.Selected)
	} else {
		fmt.Fprintf(out, "Selected: none\n\n")
	}

	header := []string{"", "Name", "Version", "Status"}
	if all {
		header = append(header, "Detail")
	}

	table := tablewriter.NewTable(out,
		tablewriter.WithHeader(header),
		tablewriter.WithAlignment(tw.MakeAlign(len(header), tw.AlignLeft)),
		tablewriter.WithSymbols(tw.NewSymbols(tw.StyleNone)),
	)

	for _, e := range report.Entries {
		version := e.Version
		if version == "" {
			version = "-"
		}

		row := []any{ui.SelectedMark(e.Selected), e.Name, version, ui.ColorizeStatus(e.Status)}
		if all {
			row = append(row, e.Error)
		}
		table.Append(row...)
	}

	table.Render()
}

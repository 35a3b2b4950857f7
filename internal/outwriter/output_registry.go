package outwriter

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/motionforge/motionforge/internal/contract"
	"github.com/motionforge/motionforge/schema"
)

const listTimeFormat = "2006-01-02 15:04:05"

// PrintArtifactList writes the registry listing as a table, newest
// versions first.
func PrintArtifactList(records []schema.ArtifactRecord, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeArtifactList(w, records, cfg)
	}, "Wrote listing")
}

func writeArtifactList(w io.Writer, records []schema.ArtifactRecord, cfg *contract.Config) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "Registry is empty.")
		return err
	}

	armsTag := fmt.Sprint
	if cfg.Color {
		armsTag = color.New(color.FgCyan).SprintFunc()
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Name", "Version", "Created", "Frames", "Rate", "Size", "Transform"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, r := range records {
		transform := "full-body"
		if r.ArmsOnly {
			transform = armsTag("arms-only")
		}
		data = append(data, []string{
			r.Name,
			shortVersion(r.VersionID),
			r.CreatedAt.Format(listTimeFormat),
			strconv.Itoa(r.NumFrames),
			fmt.Sprintf("%.1f", r.FrameRate),
			formatBytes(r.SizeBytes),
			transform,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d artifact version(s)\n", len(records))
	return err
}

// PrintRegistryStatus writes backend and storage totals.
func PrintRegistryStatus(status schema.RegistryStatus, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Property", "Value"})
		data := [][]string{
			{"Backend", status.Backend},
			{"Location", status.Location},
			{"Artifacts", strconv.Itoa(status.Artifacts)},
			{"Total size", formatBytes(status.TotalBytes)},
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		return table.Render()
	}, "Wrote status")
}

// shortVersion keeps listings narrow; the full id is still unique in
// its first block.
func shortVersion(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

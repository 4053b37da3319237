package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/cmlabs-hris/hris-dar-go/internal/pkg/timeline"
	"github.com/spf13/cobra"
)

const (
	formatText = "text"
	formatJSON = "json"
)

type packedDay struct {
	Date       string               `json:"date"`
	TotalLanes int                  `json:"total_lanes"`
	Placements []timeline.Placement `json:"placements"`
}

func newPackCommand() *cobra.Command {
	var opts struct {
		Format string
		Date   string
	}

	cmd := &cobra.Command{
		Use:   "pack FILE",
		Short: "Pack a task file into lanes",
		Long: `Pack every day found in FILE into timeline lanes.

FILE is YAML or JSON: either a list of tasks or a mapping with a "tasks"
key. Each task has start_time and end_time in HH:MM, a title, and
optionally id, type, description and date (YYYY-MM-DD). Use "-" to read
from stdin.

Examples:
  # Render lanes for every day in the file
  dartimeline pack week.yaml

  # Placements for one day as JSON
  dartimeline pack week.yaml --date 2025-03-03 --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Format != formatText && opts.Format != formatJSON {
				return fmt.Errorf("invalid --format %q: must be %s or %s", opts.Format, formatText, formatJSON)
			}

			in, closeFn, err := openInput(cmd, args[0])
			if err != nil {
				return err
			}
			defer closeFn()

			tasks, err := readTasks(in)
			if err != nil {
				return err
			}

			days := groupByDate(tasks)
			if opts.Date != "" {
				days = filterDate(days, opts.Date)
				if len(days) == 0 {
					return fmt.Errorf("no tasks on %s", opts.Date)
				}
			}

			packed := make([]packedDay, 0, len(days))
			for _, d := range days {
				placements := timeline.Pack(d.Tasks)
				packed = append(packed, packedDay{
					Date:       d.Date,
					TotalLanes: timeline.LaneCount(placements),
					Placements: placements,
				})
			}

			return writePacked(cmd.OutOrStdout(), opts.Format, packed)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", formatText, "Output format: text or json")
	cmd.Flags().StringVarP(&opts.Date, "date", "d", "", "Only pack tasks on this date (YYYY-MM-DD)")

	return cmd
}

func openInput(cmd *cobra.Command, path string) (io.Reader, func(), error) {
	if path == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open task file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func filterDate(days []dayTasks, date string) []dayTasks {
	for _, d := range days {
		if d.Date == date {
			return []dayTasks{d}
		}
	}
	return nil
}

func writePacked(w io.Writer, format string, days []packedDay) error {
	if format == formatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(days)
	}

	for i, d := range days {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, renderDay(d)); err != nil {
			return err
		}
	}
	return nil
}

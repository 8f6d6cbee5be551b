package cli

import (
	"time"

	"github.com/NordCoder/Runboard/internal/services/dashboard"
	"github.com/NordCoder/Runboard/internal/view"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

type filterFlags struct {
	status, device, from, to string
}

func (f *filterFlags) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.status, "status", dashboard.All, "PASS|FAIL|FLAKY|RUNNING or all")
	fs.StringVar(&f.device, "device", dashboard.All, "device name or all")
	fs.StringVar(&f.from, "from", "", "earliest start (YYYY-MM-DD or RFC3339)")
	fs.StringVar(&f.to, "to", "", "latest start (YYYY-MM-DD or RFC3339)")
}

func (f *filterFlags) options() (dashboard.FilterOptions, error) {
	return dashboard.ParseFilterOptions(f.status, f.device, f.from, f.to, time.Local)
}

func newRunsCmd(a *app) *cobra.Command {
	var ff filterFlags
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List runs, newest first",
		Example: `  dashctl runs --status flaky
  dashctl runs --device "Pixel 8" --from 2026-03-01 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := ff.options()
			if err != nil {
				return err
			}
			uc, err := a.usecase(cmd.Context())
			if err != nil {
				return err
			}
			runs, err := uc.Runs(cmd.Context(), opts)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			rows := view.RunRows(runs)
			if a.output == outputJSON {
				return renderJSON(w, rows)
			}
			t := newTable(w, "", table.Row{"ID", "Scenario", "Status", "Device", "Started", "Duration"})
			for _, r := range rows {
				t.AppendRow(table.Row{r.ID, r.Scenario, r.Status, r.Device, r.Started, r.Duration})
			}
			rightAlign(t, 6)
			t.Render()
			footer(w, len(rows), "run")
			return nil
		},
	}
	ff.bind(cmd)
	return cmd
}

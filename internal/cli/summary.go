package cli

import (
	"fmt"

	"github.com/NordCoder/Runboard/internal/view"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newSummaryCmd(a *app) *cobra.Command {
	var ff filterFlags
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show KPIs, flaky share per device and the daily trend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := ff.options()
			if err != nil {
				return err
			}
			uc, err := a.usecase(cmd.Context())
			if err != nil {
				return err
			}
			ov, err := uc.Overview(cmd.Context(), opts)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if a.output == outputJSON {
				return renderJSON(w, ov)
			}

			kpi := newTable(w, "KPIs", table.Row{"Metric", "Value", "Note"})
			for _, c := range view.KPICards(ov.KPIs, ov.Devices) {
				kpi.AppendRow(table.Row{c.Title, c.Value, c.Hint})
			}
			kpi.Render()

			flaky := newTable(w, "Flaky by device", table.Row{"Device", "Flaky", "Share"})
			for _, s := range ov.FlakyByDevice {
				flaky.AppendRow(table.Row{s.Device, s.Flaky, fmt.Sprintf("%d%%", s.Percent)})
			}
			rightAlign(flaky, 2, 3)
			flaky.Render()

			trend := newTable(w, "Trend", table.Row{"Day", "Pass", "Fail", "Flaky"})
			for i, label := range ov.Trend.Labels {
				p := ov.Trend.Points[i]
				trend.AppendRow(table.Row{label, p.Pass, p.Fail, p.Flaky})
			}
			rightAlign(trend, 2, 3, 4)
			trend.Render()
			return nil
		},
	}
	ff.bind(cmd)
	return cmd
}

package cli

import (
	"github.com/NordCoder/Runboard/internal/services/dashboard"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newDevicesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "List the device registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc, err := a.usecase(cmd.Context())
			if err != nil {
				return err
			}
			devices, err := uc.Devices(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if a.output == outputJSON {
				return renderJSON(w, devices)
			}
			t := newTable(w, "", table.Row{"ID", "Name", "Platform", "OS", "Status"})
			for _, d := range devices {
				t.AppendRow(table.Row{d.ID, d.Name, d.Platform, d.OSVersion, d.Status})
			}
			s := dashboard.SummarizeDevices(devices)
			t.AppendFooter(table.Row{"", "", "", "available", s.Available})
			t.Render()
			footer(w, len(devices), "device")
			return nil
		},
	}
}

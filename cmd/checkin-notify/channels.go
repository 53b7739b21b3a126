package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/RobinCoderZhao/checkin-notify/pkg/notify"
)

func channelsCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "channels",
		Short: "列出渠道及配置状态",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cfg, err := setup(cmd.Context(), g)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CHANNEL\tSTATUS")
			for _, s := range notify.NewDispatcherFromConfig(cfg.Notify).Channels() {
				status := "not configured"
				if s.Configured {
					status = "enabled"
				}
				fmt.Fprintf(w, "%s\t%s\n", s.Channel, status)
			}
			return w.Flush()
		},
	}
}

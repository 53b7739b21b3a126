package main

import (
	"encoding/json"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/spf13/cobra"

	"github.com/RobinCoderZhao/checkin-notify/internal/history"
)

func historyCmd(g *globalOptions) *cobra.Command {
	var (
		limit      int
		dbPath     string
		outputJSON bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "查看推送历史",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cfg, err := setup(cmd.Context(), g)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("history") {
				cfg.HistoryDB = dbPath
			}
			if cfg.HistoryDB == "" {
				return goerr.New("history database not configured, set HISTORY_DB or --history")
			}

			store, err := history.Open(ctx, cfg.HistoryDB)
			if err != nil {
				return err
			}
			defer store.Close()

			pushes, err := store.Recent(ctx, limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if outputJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(pushes)
			}
			for _, p := range pushes {
				fmt.Fprintf(out, "#%d %s  %s\n", p.ID, p.CreatedAt.Local().Format(timeLayout), p.Title)
				for _, d := range p.Deliveries {
					status := "ok"
					if !d.OK {
						status = "failed: " + d.Error
					}
					fmt.Fprintf(out, "    %-10s %6dms  %s\n", d.Channel, d.Duration.Milliseconds(), status)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "显示条数")
	cmd.Flags().StringVar(&dbPath, "history", "", "推送历史 SQLite 数据库路径 (覆盖 HISTORY_DB)")
	cmd.Flags().BoolVar(&outputJSON, "json", false, "输出 JSON 格式")
	return cmd
}

package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/RobinCoderZhao/checkin-notify/internal/history"
	"github.com/RobinCoderZhao/checkin-notify/pkg/notify"
)

// timeLayout matches the timestamps the check-in job writes into its reports.
const timeLayout = "2006-01-02 15:04:05"

type pushOptions struct {
	contentFile string
	kind        string
	execTime    string
	strict      bool
	metricsPath string
	historyPath string
}

func pushCmd(g *globalOptions) *cobra.Command {
	opts := &pushOptions{}
	cmd := &cobra.Command{
		Use:   "push <title>",
		Short: "推送报告到所有渠道",
		Long: `读取纯文本报告 (--file 或 stdin) 并依次推送到所有渠道。
设置 --time 时，邮件渠道会将报告解析为 HTML 卡片；--time now 使用当前时间。`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cfg, err := setup(cmd.Context(), g)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("metrics-textfile") {
				cfg.MetricsTextfile = opts.metricsPath
			}
			if cmd.Flags().Changed("history") {
				cfg.HistoryDB = opts.historyPath
			}

			content, err := readContent(cmd.InOrStdin(), opts.contentFile)
			if err != nil {
				return err
			}
			kind, err := parseKind(opts.kind)
			if err != nil {
				return err
			}
			execTime := opts.execTime
			if execTime == "now" {
				execTime = time.Now().Format(timeLayout)
			}

			reg := prometheus.NewRegistry()
			dispOpts := []notify.Option{notify.WithMetrics(notify.NewMetrics(reg))}
			if cfg.HistoryDB != "" {
				store, err := history.Open(ctx, cfg.HistoryDB)
				if err != nil {
					return err
				}
				defer store.Close()
				dispOpts = append(dispOpts, notify.WithRecorder(store))
			}

			d := notify.NewDispatcherFromConfig(cfg.Notify, dispOpts...)
			outcomes := d.Push(ctx, notify.Message{
				Title:         args[0],
				Content:       content,
				Kind:          kind,
				ExecutionTime: execTime,
			})
			printOutcomes(cmd.OutOrStdout(), outcomes)

			if cfg.MetricsTextfile != "" {
				if err := prometheus.WriteToTextfile(cfg.MetricsTextfile, reg); err != nil {
					ctxlog.From(ctx).Warn("failed to write metrics textfile", "path", cfg.MetricsTextfile, "error", err)
				}
			}

			if opts.strict {
				return strictResult(outcomes)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.contentFile, "file", "f", "-", "报告文件路径, - 表示 stdin")
	cmd.Flags().StringVar(&opts.kind, "kind", string(notify.BodyPlain), "邮件正文类型: plain 或 html")
	cmd.Flags().StringVar(&opts.execTime, "time", "", "执行时间, 设置后邮件使用 HTML 报告")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "有已配置渠道失败时返回非零退出码")
	cmd.Flags().StringVar(&opts.metricsPath, "metrics-textfile", "", "写入 Prometheus textfile 指标的路径 (覆盖 METRICS_TEXTFILE)")
	cmd.Flags().StringVar(&opts.historyPath, "history", "", "推送历史 SQLite 数据库路径 (覆盖 HISTORY_DB)")
	return cmd
}

func readContent(stdin io.Reader, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", goerr.Wrap(err, "read report content", goerr.V("path", path))
	}
	return string(data), nil
}

func parseKind(s string) (notify.BodyKind, error) {
	switch notify.BodyKind(s) {
	case notify.BodyPlain, "text":
		return notify.BodyPlain, nil
	case notify.BodyHTML:
		return notify.BodyHTML, nil
	default:
		return "", goerr.New("unknown body kind, expected plain or html", goerr.V("kind", s))
	}
}

func printOutcomes(w io.Writer, outcomes notify.Outcomes) {
	for _, o := range outcomes {
		switch {
		case o.OK():
			fmt.Fprintf(w, "[%s]: Message push successful!\n", o.Channel)
		case notify.IsNotConfigured(o.Err):
			fmt.Fprintf(w, "[%s]: skipped (%v)\n", o.Channel, o.Err)
		default:
			fmt.Fprintf(w, "[%s]: Message push failed! Reason: %v\n", o.Channel, o.Err)
		}
	}
}

// strictResult fails when a configured channel could not deliver.
func strictResult(outcomes notify.Outcomes) error {
	var failed []string
	for _, o := range outcomes.Failed() {
		if !notify.IsNotConfigured(o.Err) {
			failed = append(failed, string(o.Channel))
		}
	}
	if len(failed) > 0 {
		return goerr.New("push failed on configured channels", goerr.V("channels", failed))
	}
	return nil
}

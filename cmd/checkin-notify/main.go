// checkin-notify — 签到结果多渠道推送
//
// Usage:
//
//	checkin-notify push <title>   # 推送报告到所有已配置渠道
//	checkin-notify test-email     # 发送测试邮件
//	checkin-notify channels       # 列出渠道及配置状态
//	checkin-notify history        # 查看推送历史
//	checkin-notify version        # 显示版本
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/m-mizutani/ctxlog"
	"github.com/spf13/cobra"

	appcfg "github.com/RobinCoderZhao/checkin-notify/internal/app/config"
	"github.com/RobinCoderZhao/checkin-notify/pkg/logging"
)

var version = "dev"

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	envFiles   []string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	rootCmd := &cobra.Command{
		Use:           "checkin-notify",
		Short:         "Multi-channel notifier for check-in reports",
		Long:          "checkin-notify 将签到结果推送到邮件、PushPlus、Server酱、钉钉、飞书、企业微信、Gotify、Telegram、Slack 和通用 Webhook。",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "配置文件路径 (默认 "+appcfg.DefaultPath+")")
	rootCmd.PersistentFlags().StringSliceVar(&opts.envFiles, "env-file", nil, ".env 文件路径 (默认 ./.env)")

	rootCmd.AddCommand(pushCmd(opts))
	rootCmd.AddCommand(testEmailCmd(opts))
	rootCmd.AddCommand(channelsCmd(opts))
	rootCmd.AddCommand(historyCmd(opts))
	rootCmd.AddCommand(versionCmd())
	return rootCmd
}

// setup loads the configuration and installs the logger in ctx.
func setup(ctx context.Context, opts *globalOptions) (context.Context, appcfg.AppConfig, error) {
	cfg, err := appcfg.Load(opts.configPath, opts.envFiles...)
	if err != nil {
		return ctx, cfg, err
	}

	logger := logging.New(logging.ParseLevel(cfg.Log.Level), logging.ParseFormat(cfg.Log.Format), os.Stderr)
	slog.SetDefault(logger)
	return ctxlog.With(ctx, logger), cfg, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "显示版本",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "checkin-notify %s\n", version)
		},
	}
}

package main

import (
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/spf13/cobra"

	"github.com/RobinCoderZhao/checkin-notify/pkg/notify"
)

// sampleReport returns a report in the format the check-in job produces.
func sampleReport(execTime string) string {
	return fmt.Sprintf(`[TIME] Execution time: %s

[BALANCE] 测试账号1
:money: Current balance: $25.00, Used: $5.00

[BALANCE] 测试账号2
:money: Current balance: $100.00, Used: $20.00

[STATS] Check-in result statistics:
[SUCCESS] Success: 2/2
[FAIL] Failed: 0/2
[SUCCESS] All accounts check-in successful!`, execTime)
}

func testEmailCmd(g *globalOptions) *cobra.Command {
	var asHTML bool

	cmd := &cobra.Command{
		Use:   "test-email",
		Short: "发送测试邮件",
		Long:  "仅通过邮件渠道发送一份示例签到报告，用于验证 SMTP 配置。--html 发送渲染后的 HTML 报告。",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cfg, err := setup(cmd.Context(), g)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			email := cfg.Notify.Email
			if !email.Configured() {
				fmt.Fprintln(out, "[ERROR] 邮件配置不完整，请检查以下环境变量：")
				fmt.Fprintln(out, "  - EMAIL_USER: 发件人邮箱地址")
				fmt.Fprintln(out, "  - EMAIL_PASS: 发件人邮箱密码/授权码")
				fmt.Fprintln(out, "  - EMAIL_TO: 收件人邮箱地址")
				return goerr.New("Email configuration not set", goerr.T(notify.ErrTagNotConfigured))
			}
			fmt.Fprintf(out, "[CONFIG] 发件人: %s\n", email.User)
			fmt.Fprintf(out, "[CONFIG] 收件人: %s\n", email.To)

			now := time.Now().Format(timeLayout)
			msg := notify.Message{
				Title:   cfg.Notify.ProductName + " 签到测试邮件",
				Content: sampleReport(now),
			}
			if asHTML {
				msg.Title = cfg.Notify.ProductName + " HTML 签到测试"
				msg.ExecutionTime = now
			}

			d := notify.NewDispatcher(notify.WithFormatter(notify.NewReportEmailFormatter(cfg.Notify.ProductName)))
			d.Register(notify.NewEmailNotifier(email, cfg.Notify.ProductName))

			fmt.Fprintf(out, "[SENDING] %s\n", msg.Title)
			outcomes := d.Push(ctx, msg)
			if failed := outcomes.Failed(); len(failed) > 0 {
				fmt.Fprintf(out, "[ERROR] 邮件发送失败: %v\n", failed[0].Err)
				return failed[0].Err
			}
			fmt.Fprintf(out, "[SUCCESS] 邮件发送成功！请检查收件箱 (%s)\n", email.To)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asHTML, "html", false, "发送 HTML 报告")
	return cmd
}

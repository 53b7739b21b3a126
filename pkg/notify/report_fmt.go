// Package notify — report_fmt.go renders the check-in report as HTML email.
//
// Data: report.Report (accounts with status and balance, summary counters).
// Style: purple header, one card per account, pink statistics strip.
package notify

import (
	"fmt"
	"html"
	"strings"

	"github.com/RobinCoderZhao/checkin-notify/pkg/report"
)

// ReportLabels holds the visible strings of the report email.
type ReportLabels struct {
	Success   string // badge text for successful accounts
	Failure   string // badge text for everything else
	NoData    string // placeholder when no account was parsed
	Total     string
	Succeeded string
	Failed    string
	Footer    string
	PoweredBy string
}

// DefaultReportLabels returns the Chinese labels used by the check-in job.
func DefaultReportLabels(productName string) ReportLabels {
	return ReportLabels{
		Success:   "✓ 签到成功",
		Failure:   "✗ 签到失败",
		NoData:    "暂无账号信息",
		Total:     "总计",
		Succeeded: "成功",
		Failed:    "失败",
		Footer:    fmt.Sprintf("此邮件由 %s 自动签到系统发送", productName),
		PoweredBy: "Powered by GitHub Actions",
	}
}

// ReportEmailFormatter produces the HTML email for a parsed report.
type ReportEmailFormatter struct {
	Labels ReportLabels
}

// NewReportEmailFormatter creates a formatter with the default labels.
func NewReportEmailFormatter(productName string) *ReportEmailFormatter {
	if productName == "" {
		productName = DefaultProductName
	}
	return &ReportEmailFormatter{Labels: DefaultReportLabels(productName)}
}

// RenderReport renders rep with the default labels.
func RenderReport(title string, rep *report.Report) string {
	return NewReportEmailFormatter(DefaultProductName).Render(title, rep)
}

// Render returns a complete, self-contained HTML document. A nil report is
// rendered like an empty one.
func (f *ReportEmailFormatter) Render(title string, rep *report.Report) string {
	if rep == nil {
		rep = &report.Report{}
	}

	var sb strings.Builder
	sb.WriteString(EmailWrapperOpen())
	sb.WriteString(EmailHeader(title, rep.Timestamp, "#667eea", "#764ba2"))

	sb.WriteString(`
<!-- Accounts -->
<tr><td style="padding:24px;">
`)
	if rep.Empty() {
		sb.WriteString(fmt.Sprintf(`  <p style="margin:0;padding:20px;text-align:center;color:#9ca3af;">%s</p>
`, html.EscapeString(f.Labels.NoData)))
	}
	for _, acc := range rep.Accounts {
		sb.WriteString(f.accountCard(acc))
	}
	sb.WriteString(f.statsSection(rep))
	sb.WriteString(`</td></tr>
`)

	sb.WriteString(EmailFooter(f.Labels.Footer, f.Labels.PoweredBy))
	sb.WriteString(EmailWrapperClose())
	return sb.String()
}

func (f *ReportEmailFormatter) accountCard(acc report.AccountEntry) string {
	label := f.Labels.Failure
	if acc.Status == report.StatusSuccess {
		label = f.Labels.Success
	}

	balance := ""
	if acc.Balance != "" {
		balance = fmt.Sprintf(`
      <tr><td colspan="2" style="padding-top:4px;font-size:14px;color:#6b7280;">💰 %s</td></tr>`,
			html.EscapeString(acc.Balance))
	}

	return fmt.Sprintf(`  <table role="presentation" width="100%%" cellpadding="0" cellspacing="0" style="background-color:#fafafa;border:1px solid #e5e7eb;border-radius:8px;margin-bottom:12px;">
    <tr><td style="padding:16px;">
      <table role="presentation" width="100%%" cellpadding="0" cellspacing="0">
      <tr>
        <td style="font-size:16px;font-weight:600;color:#1f2937;">%s</td>
        <td align="right">%s</td>
      </tr>%s
      </table>
    </td></tr>
  </table>
`, html.EscapeString(acc.Name), StatusBadgeHTML(string(acc.Status), label), balance)
}

func (f *ReportEmailFormatter) statsSection(rep *report.Report) string {
	cell := func(label string, value int) string {
		return fmt.Sprintf(`
        <td width="33%%" style="padding:12px;text-align:center;background-color:rgba(255,255,255,0.2);border-radius:8px;">
          <div style="font-size:12px;opacity:0.9;margin-bottom:4px;">%s</div>
          <div style="font-size:24px;font-weight:700;">%d</div>
        </td>`, html.EscapeString(label), value)
	}

	return fmt.Sprintf(`
  <!-- Statistics -->
  <table role="presentation" width="100%%" cellpadding="0" cellspacing="0" style="margin-top:20px;background:linear-gradient(135deg,#f093fb 0%%,#f5576c 100%%);background-color:#f5576c;border-radius:8px;color:#ffffff;">
    <tr><td style="padding:20px;">
      <table role="presentation" width="100%%" cellpadding="0" cellspacing="8">
      <tr>%s%s%s
      </tr>
      </table>
    </td></tr>
  </table>
`, cell(f.Labels.Total, rep.Total), cell(f.Labels.Succeeded, rep.SuccessCount), cell(f.Labels.Failed, rep.FailCount))
}

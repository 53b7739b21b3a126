// Package notify — formatter.go provides the shared HTML email skeleton.
//
// Architecture:
//
//	formatter.go   — email wrapper, header, footer, badge helpers
//	report_fmt.go  — check-in report: ReportEmailFormatter
//
// Everything is inline-styled table markup so it survives common mail clients.
// All caller text goes through html.EscapeString.
package notify

import (
	"fmt"
	"html"
)

// ---- Shared HTML Email Skeleton ----

// EmailWrapperOpen renders the opening HTML for an email body.
func EmailWrapperOpen() string {
	return `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><meta name="viewport" content="width=device-width, initial-scale=1.0"></head>
<body style="margin:0;padding:20px;background-color:#f5f7fa;font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,'Helvetica Neue',Arial,sans-serif;line-height:1.6;">
<table role="presentation" width="100%" cellpadding="0" cellspacing="0" style="background-color:#f5f7fa;">
<tr><td align="center">
<table role="presentation" width="600" cellpadding="0" cellspacing="0" style="max-width:600px;width:100%;background-color:#ffffff;border-radius:12px;box-shadow:0 2px 8px rgba(0,0,0,0.08);">
`
}

// EmailWrapperClose renders the closing HTML for an email body.
func EmailWrapperClose() string {
	return `
</table>
</td></tr>
</table>
</body>
</html>`
}

// EmailHeader renders the gradient header section of an HTML email.
func EmailHeader(title, subtitle string, gradientFrom, gradientTo string) string {
	return fmt.Sprintf(`
<!-- Header -->
<tr><td style="background:linear-gradient(135deg,%s 0%%,%s 100%%);background-color:%s;border-radius:12px 12px 0 0;padding:30px;text-align:center;color:#ffffff;">
  <h1 style="margin:0 0 8px;font-size:24px;font-weight:600;color:#ffffff;">%s</h1>
  <p style="margin:0;font-size:14px;color:rgba(255,255,255,0.9);">%s</p>
</td></tr>
`, gradientFrom, gradientTo, gradientFrom, html.EscapeString(title), html.EscapeString(subtitle))
}

// EmailFooter renders the footer section.
func EmailFooter(lines ...string) string {
	body := ""
	for i, line := range lines {
		margin := "0"
		if i > 0 {
			margin = "4px 0 0"
		}
		body += fmt.Sprintf(`
  <p style="margin:%s;font-size:12px;color:#9ca3af;">%s</p>`, margin, html.EscapeString(line))
	}
	return fmt.Sprintf(`
<!-- Footer -->
<tr><td style="background-color:#f9fafb;border-top:1px solid #e5e7eb;border-radius:0 0 12px 12px;padding:20px;text-align:center;">%s
</td></tr>
`, body)
}

// ---- Shared Badge Helpers ----

// StatusColors returns the badge foreground and background for a status.
// Only "success" gets the green palette; every other status is a failure.
func StatusColors(status string) (fg, bg string) {
	if status == "success" {
		return "#10b981", "#d1fae5"
	}
	return "#ef4444", "#fee2e2"
}

// StatusBadgeHTML returns a pill-shaped status badge.
func StatusBadgeHTML(status, label string) string {
	fg, bg := StatusColors(status)
	return fmt.Sprintf(`<span style="display:inline-block;padding:4px 12px;border-radius:20px;font-size:12px;font-weight:600;background-color:%s;color:%s;">%s</span>`,
		bg, fg, html.EscapeString(label))
}

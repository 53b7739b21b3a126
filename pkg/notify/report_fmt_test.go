package notify_test

import (
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"golang.org/x/net/html"

	"github.com/RobinCoderZhao/checkin-notify/pkg/notify"
	"github.com/RobinCoderZhao/checkin-notify/pkg/report"
)

// textOf returns the concatenated text nodes of a parsed document.
func textOf(t *testing.T, doc string) string {
	t.Helper()
	root, err := html.Parse(strings.NewReader(doc))
	gt.NoError(t, err)

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return sb.String()
}

func TestRenderReport_Empty(t *testing.T) {
	out := notify.RenderReport("Check-in", &report.Report{Timestamp: "2024-01-01 12:00:00"})

	gt.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	text := textOf(t, out)
	gt.S(t, text).Contains("暂无账号信息")
	gt.S(t, text).Contains("2024-01-01 12:00:00")
	gt.S(t, text).Contains("此邮件由 AnyRouter 自动签到系统发送")
}

func TestRenderReport_NilReport(t *testing.T) {
	gt.S(t, textOf(t, notify.RenderReport("Check-in", nil))).Contains("暂无账号信息")
}

func TestRenderReport_Accounts(t *testing.T) {
	rep := &report.Report{
		Timestamp: "2024-01-01 12:00:00",
		Accounts: []report.AccountEntry{
			{Name: "Account 1", Status: report.StatusSuccess, Balance: "$5"},
			{Name: "Account 2", Status: report.StatusError},
		},
		Total:        2,
		SuccessCount: 1,
		FailCount:    1,
	}
	out := notify.RenderReport("Daily", rep)
	text := textOf(t, out)

	gt.False(t, strings.Contains(text, "暂无账号信息"))
	gt.True(t, strings.Index(text, "Account 1") < strings.Index(text, "Account 2"))
	gt.S(t, text).Contains("💰 $5")
	gt.S(t, text).Contains("✓ 签到成功")
	gt.S(t, text).Contains("✗ 签到失败")
	gt.S(t, out).Contains("#d1fae5")
	gt.S(t, out).Contains("#fee2e2")
	gt.S(t, text).Contains("总计")
}

func TestRenderReport_Escapes(t *testing.T) {
	rep := &report.Report{
		Accounts: []report.AccountEntry{
			{Name: "<script>alert(1)</script>", Status: report.StatusUnknown, Balance: "<b>9</b>"},
		},
	}
	out := notify.RenderReport("<i>title</i>", rep)

	gt.False(t, strings.Contains(out, "<script>"))
	gt.S(t, out).Contains("&lt;script&gt;alert(1)&lt;/script&gt;")
	gt.S(t, out).Contains("&lt;b&gt;9&lt;/b&gt;")
	gt.S(t, out).Contains("&lt;i&gt;title&lt;/i&gt;")
}

func TestRenderReport_CustomLabels(t *testing.T) {
	f := notify.NewReportEmailFormatter("Acme")
	f.Labels.NoData = "no accounts"
	text := textOf(t, f.Render("t", &report.Report{}))
	gt.S(t, text).Contains("no accounts")
	gt.S(t, text).Contains("Acme")
}

func TestStatusColors(t *testing.T) {
	fg, bg := notify.StatusColors("success")
	gt.Equal(t, fg, "#10b981")
	gt.Equal(t, bg, "#d1fae5")
	for _, s := range []string{"error", "unknown", ""} {
		fg, bg = notify.StatusColors(s)
		gt.Equal(t, fg, "#ef4444")
		gt.Equal(t, bg, "#fee2e2")
	}
}

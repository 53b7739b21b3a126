// Package notify provides a unified notification dispatch system
// supporting Email, PushPlus, ServerChan, DingTalk, Feishu, WeCom, Gotify,
// Telegram, Slack and generic webhook channels.
package notify

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/RobinCoderZhao/checkin-notify/pkg/report"
)

// Channel represents a notification channel type.
type Channel string

const (
	ChannelEmail      Channel = "email"
	ChannelPushPlus   Channel = "pushplus"
	ChannelServerChan Channel = "serverchan"
	ChannelDingTalk   Channel = "dingtalk"
	ChannelFeishu     Channel = "feishu"
	ChannelWeCom      Channel = "wecom"
	ChannelGotify     Channel = "gotify"
	ChannelTelegram   Channel = "telegram"
	ChannelSlack      Channel = "slack"
	ChannelWebhook    Channel = "webhook"
)

// BodyKind is the content type of a mail body.
type BodyKind string

const (
	BodyPlain BodyKind = "plain"
	BodyHTML  BodyKind = "html"
)

// Message is one logical notification handed to Push.
type Message struct {
	Title   string
	Content string
	// Kind applies to rich channels only; everything else always gets plain text.
	Kind BodyKind
	// ExecutionTime switches the email body to the rendered HTML report and is
	// shown when the content has no [TIME] line.
	ExecutionTime string
}

// Notifier sends a title and plain-text content to one external service.
type Notifier interface {
	Send(ctx context.Context, title, content string) error
	Channel() Channel
}

// RichNotifier is a Notifier that can also deliver HTML bodies.
type RichNotifier interface {
	Notifier
	SendAs(ctx context.Context, title, body string, kind BodyKind) error
}

// Outcome is the result of one channel attempt.
type Outcome struct {
	Channel  Channel
	Err      error
	Duration time.Duration
}

// OK reports whether the channel accepted the message.
func (o Outcome) OK() bool { return o.Err == nil }

// Outcomes is the per-channel result of a Push, in dispatch order.
type Outcomes []Outcome

// Failed returns the outcomes that carry an error.
func (outs Outcomes) Failed() Outcomes {
	var failed Outcomes
	for _, o := range outs {
		if !o.OK() {
			failed = append(failed, o)
		}
	}
	return failed
}

// Recorder persists dispatch outcomes.
type Recorder interface {
	Record(ctx context.Context, title string, outcomes Outcomes) error
}

// Dispatcher fans a message out to every registered notifier.
type Dispatcher struct {
	notifiers []Notifier
	formatter *ReportEmailFormatter
	metrics   *Metrics
	recorder  Recorder
}

// Option customizes a Dispatcher.
type Option func(*Dispatcher)

// WithFormatter sets the HTML report formatter used for rich channels.
func WithFormatter(f *ReportEmailFormatter) Option {
	return func(d *Dispatcher) { d.formatter = f }
}

// WithMetrics enables push counters.
func WithMetrics(m *Metrics) Option {
	return func(d *Dispatcher) { d.metrics = m }
}

// WithRecorder stores every Push result.
func WithRecorder(r Recorder) Option {
	return func(d *Dispatcher) { d.recorder = r }
}

// NewDispatcher creates a new notification dispatcher without notifiers.
func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		formatter: NewReportEmailFormatter(DefaultProductName),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Register appends a notifier. Notifiers run in registration order.
func (d *Dispatcher) Register(n Notifier) {
	d.notifiers = append(d.notifiers, n)
}

// Notifiers returns the registered notifiers in dispatch order.
func (d *Dispatcher) Notifiers() []Notifier {
	return append([]Notifier(nil), d.notifiers...)
}

// Push sends msg through every registered notifier, one after another.
//
// A failing or panicking channel never stops the others and nothing is
// returned as an error: callers inspect the outcomes. An all-failed push is
// only visible by looking at every outcome.
func (d *Dispatcher) Push(ctx context.Context, msg Message) Outcomes {
	logger := ctxlog.From(ctx)

	var htmlBody string
	if msg.ExecutionTime != "" {
		rep := report.Parse(msg.Content)
		if rep.Timestamp == "" {
			rep.Timestamp = msg.ExecutionTime
		}
		htmlBody = d.formatter.Render(msg.Title, rep)
	}

	outcomes := make(Outcomes, 0, len(d.notifiers))
	for _, n := range d.notifiers {
		start := time.Now()
		err := d.invoke(ctx, n, msg, htmlBody)
		o := Outcome{Channel: n.Channel(), Err: err, Duration: time.Since(start)}

		if err != nil {
			logger.Error("notification failed", "channel", o.Channel, "error", err)
		} else {
			logger.Info("notification sent", "channel", o.Channel, "title", msg.Title)
		}
		if d.metrics != nil {
			d.metrics.observe(o)
		}
		outcomes = append(outcomes, o)
	}

	if d.recorder != nil {
		if err := d.recorder.Record(ctx, msg.Title, outcomes); err != nil {
			logger.Warn("failed to record push history", "error", err)
		}
	}
	return outcomes
}

func (d *Dispatcher) invoke(ctx context.Context, n Notifier, msg Message, htmlBody string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = goerr.New("notifier panicked",
				goerr.V("channel", n.Channel()),
				goerr.V("panic", r),
				goerr.V("stack", string(debug.Stack())))
		}
	}()

	rn, ok := n.(RichNotifier)
	switch {
	case !ok:
		return n.Send(ctx, msg.Title, msg.Content)
	case msg.ExecutionTime != "":
		return rn.SendAs(ctx, msg.Title, htmlBody, BodyHTML)
	default:
		return rn.SendAs(ctx, msg.Title, msg.Content, msg.Kind)
	}
}

// ChannelState describes whether a registered channel has its settings.
type ChannelState struct {
	Channel    Channel
	Configured bool
}

// Channels lists registered channels in dispatch order. Notifiers that cannot
// tell are reported as configured.
func (d *Dispatcher) Channels() []ChannelState {
	states := make([]ChannelState, 0, len(d.notifiers))
	for _, n := range d.notifiers {
		configured := true
		if c, ok := n.(interface{ Configured() bool }); ok {
			configured = c.Configured()
		}
		states = append(states, ChannelState{Channel: n.Channel(), Configured: configured})
	}
	return states
}

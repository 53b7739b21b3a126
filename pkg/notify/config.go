package notify

// Config is the channel configuration snapshot a Dispatcher is built from.
// Build a new Dispatcher when settings change.
type Config struct {
	ProductName string           `yaml:"product_name" env:"PRODUCT_NAME"`
	Email       EmailConfig      `yaml:"email"`
	PushPlus    PushPlusConfig   `yaml:"pushplus"`
	ServerChan  ServerChanConfig `yaml:"serverchan"`
	DingTalk    DingTalkConfig   `yaml:"dingtalk"`
	Feishu      FeishuConfig     `yaml:"feishu"`
	WeCom       WeComConfig      `yaml:"wecom"`
	Gotify      GotifyConfig     `yaml:"gotify"`
	Telegram    TelegramConfig   `yaml:"telegram"`
	Slack       SlackConfig      `yaml:"slack"`
	Webhook     WebhookConfig    `yaml:"webhook"`
}

// DefaultConfig returns a Config with every channel disabled.
func DefaultConfig() Config {
	return Config{
		ProductName: DefaultProductName,
		Gotify:      GotifyConfig{Priority: defaultGotifyPriority},
	}
}

// NewDispatcherFromConfig registers every known channel in the fixed dispatch
// order. Channels without settings stay registered and fail with a
// not-configured error when pushed to.
func NewDispatcherFromConfig(cfg Config, opts ...Option) *Dispatcher {
	opts = append([]Option{WithFormatter(NewReportEmailFormatter(cfg.ProductName))}, opts...)
	d := NewDispatcher(opts...)

	d.Register(NewEmailNotifier(cfg.Email, cfg.ProductName))
	d.Register(NewPushPlusNotifier(cfg.PushPlus))
	d.Register(NewServerChanNotifier(cfg.ServerChan))
	d.Register(NewDingTalkNotifier(cfg.DingTalk))
	d.Register(NewFeishuNotifier(cfg.Feishu))
	d.Register(NewWeComNotifier(cfg.WeCom))
	d.Register(NewGotifyNotifier(cfg.Gotify))
	d.Register(NewTelegramNotifier(cfg.Telegram))
	d.Register(NewSlackNotifier(cfg.Slack))
	d.Register(NewWebhookNotifier(cfg.Webhook))
	return d
}

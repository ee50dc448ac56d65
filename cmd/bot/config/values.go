package config

const (
	// AppName is the name of the application.
	AppName = "ticketdesk"

	// EnvBotToken is the environment variable for the bot token.
	EnvBotToken = `BOT_TOKEN`

	// EnvAdminPort is the environment variable for the admin server port.
	EnvAdminPort = `ADMIN_PORT`

	// EnvMonitoringPort is the environment variable for the monitoring port.
	EnvMonitoringPort = `MONITORING_PORT`

	// EnvAdminSecret is the environment variable for the key that signs the admin session cookie.
	EnvAdminSecret = `ADMIN_SECRET`

	// EnvDispatchQueueSize is the environment variable for the number of tasks the dispatch loop buffers.
	EnvDispatchQueueSize = `DISPATCH_QUEUE_SIZE`

	// EnvPanelSubmissionsPerMinute is the environment variable for the panel submission limit.
	EnvPanelSubmissionsPerMinute = `PANEL_SUBMISSIONS_PER_MINUTE`
)

const (
	// DefaultEnvFile is the file environment variables are loaded from when it exists.
	DefaultEnvFile = ".env"

	// DefaultAdminPort is the admin server port when none is configured.
	DefaultAdminPort = "5000"

	// DefaultMonitoringPort is the monitoring server port when none is configured.
	DefaultMonitoringPort = "8080"

	// DefaultDispatchQueueSize is the dispatch queue size when none is configured.
	DefaultDispatchQueueSize = 64
)

var (
	// BotToken is the token for the bot.
	BotToken string

	// AdminPort is the port for the admin server.
	AdminPort string

	// MonitoringPort is the port for the monitoring server.
	MonitoringPort string

	// AdminSecret signs the admin session cookie. A random key is used when empty.
	AdminSecret string

	// DispatchQueueSize is the number of tasks the dispatch loop buffers.
	DispatchQueueSize int

	// PanelSubmissionsPerMinute limits panel submissions. Zero means unlimited.
	PanelSubmissionsPerMinute int
)

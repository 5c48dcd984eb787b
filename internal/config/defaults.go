package config

const (
	defaultLogDir                  = "~/.local/share/matchframe/logs"
	defaultAPIBind                 = "127.0.0.1:7602"
	defaultLockFile                = "~/.local/share/matchframe/matchframe.lock"
	defaultStudioBaseURL           = "http://127.0.0.1:8600"
	defaultStudioRequestTimeout    = 30
	defaultStudioRenderTimeout     = 180
	defaultStudioRequestsPerMinute = 60
	defaultTemplate                = "classic"
	defaultNotifyRequestTimeout    = 10
	defaultLogFormat               = "console"
	defaultLogLevel                = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:   defaultLogDir,
			APIBind:  defaultAPIBind,
			LockFile: defaultLockFile,
		},
		Studio: Studio{
			BaseURL:           defaultStudioBaseURL,
			RequestTimeout:    defaultStudioRequestTimeout,
			RenderTimeout:     defaultStudioRenderTimeout,
			RequestsPerMinute: defaultStudioRequestsPerMinute,
		},
		Render: Render{
			DefaultTemplate: defaultTemplate,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeout,
			Batch:          true,
			Renders:        true,
			Errors:         true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

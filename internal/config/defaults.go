package config

const (
	defaultDataDir           = "~/.local/share/lectern/data"
	defaultLogDir            = "~/.local/share/lectern/logs"
	defaultAPIBind           = "127.0.0.1:7428"
	defaultPurlBaseURL       = "https://purl.example.edu"
	defaultGoobiMaxAttempts  = 3
	defaultGoobiRetryDelay   = 5
	defaultGoobiTimeout      = 10
	defaultWorkflowTimeout   = 10
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
			APIBind: defaultAPIBind,
		},
		Purl: Purl{
			BaseURL: defaultPurlBaseURL,
		},
		Goobi: Goobi{
			MaxAttempts:       defaultGoobiMaxAttempts,
			RetryDelaySeconds: defaultGoobiRetryDelay,
			RequestTimeout:    defaultGoobiTimeout,
		},
		Workflow: Workflow{
			RequestTimeout: defaultWorkflowTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

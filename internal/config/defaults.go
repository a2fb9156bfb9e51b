package config

const (
	defaultLogDir        = "~/.local/share/studioctl/logs"
	defaultStateDir      = "~/.local/share/studioctl/state"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
	defaultLaunchSeconds = 300
	defaultAttachSeconds = 60
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:   defaultLogDir,
			StateDir: defaultStateDir,
		},
		Studio: Studio{
			PreferDevelopment: true,
		},
		Timeouts: Timeouts{
			LaunchSeconds: defaultLaunchSeconds,
			AttachSeconds: defaultAttachSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		History: History{
			Enabled: true,
		},
	}
}

package config

const (
	defaultLogDir          = "~/.local/share/mergehelper/logs"
	defaultNameBy          = "folder"
	defaultRetention       = "prompt-once"
	defaultBinmergePath    = "~/.local/share/mergehelper/binmerge"
	defaultPythonBinary    = "python3"
	defaultTimeoutSeconds  = 1800
	defaultDownloadURL     = "https://raw.githubusercontent.com/putnam/binmerge/master/binmerge"
	defaultDownloadTimeout = 60
	defaultBackupDirName   = "orig"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Merge: Merge{
			NameBy:          defaultNameBy,
			Retention:       defaultRetention,
			BinmergePath:    defaultBinmergePath,
			PythonBinary:    defaultPythonBinary,
			TimeoutSeconds:  defaultTimeoutSeconds,
			DownloadURL:     defaultDownloadURL,
			DownloadTimeout: defaultDownloadTimeout,
			BackupDirName:   defaultBackupDirName,
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

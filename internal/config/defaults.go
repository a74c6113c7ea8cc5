package config

const (
	defaultStagingDir      = "~/.local/share/subweave/staging"
	defaultLogDir          = "~/.local/share/subweave/logs"
	defaultModelCacheDir   = "~/.cache/subweave/models"
	defaultModel           = "large-v3"
	defaultBeamSize        = 5
	defaultMaxWordsPerLine = 7
	defaultJobTimeout      = 7200
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StagingDir: defaultStagingDir,
			LogDir:     defaultLogDir,
		},
		Transcription: Transcription{
			Model:                   defaultModel,
			BeamSize:                defaultBeamSize,
			ConditionOnPreviousText: true,
			CacheDir:                defaultModelCacheDir,
		},
		Subtitles: Subtitles{
			MaxWordsPerLine: defaultMaxWordsPerLine,
		},
		Workflow: Workflow{
			Parallel:          true,
			JobTimeoutSeconds: defaultJobTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

package config

const (
	defaultDestinationDir = "~/.local/share/mediasim/curated"
	defaultLogDir         = "~/.local/share/mediasim/logs"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"

	// defaultSamplingSeed keeps selections reproducible across runs.
	defaultSamplingSeed   = 42
	defaultTargetPerGroup = 2000

	defaultWorkers        = 4
	defaultFFmpegBinary   = "ffmpeg"
	defaultFFmpegTimeout  = 900
	defaultHubSplit       = "val"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DestinationDir: defaultDestinationDir,
			LogDir:         defaultLogDir,
		},
		Datasets: map[string]Dataset{},
		Sampling: Sampling{
			Seed:           defaultSamplingSeed,
			TargetPerGroup: defaultTargetPerGroup,
		},
		Curation: Curation{
			Workers: defaultWorkers,
		},
		FFmpeg: FFmpeg{
			Binary:         defaultFFmpegBinary,
			TimeoutSeconds: defaultFFmpegTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

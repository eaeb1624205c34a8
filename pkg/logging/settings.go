package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	initialSampling    = 100
	thereafterSampling = 100
)

type settings struct {
	config *zap.Config
	opts   []zap.Option
}

// Option tweaks the production logger configuration.
type Option func(*settings)

// WithOutputPaths redirects log output, e.g. to a file or to stdout in containers.
// Empty paths keep the default.
func WithOutputPaths(paths ...string) Option {
	return func(s *settings) {
		if len(paths) > 0 {
			s.config.OutputPaths = paths
		}
	}
}

func newSettings(level zap.AtomicLevel, options ...Option) *settings {
	s := &settings{
		config: &zap.Config{
			Level: level,
			Sampling: &zap.SamplingConfig{
				Initial:    initialSampling,
				Thereafter: thereafterSampling,
			},
			Encoding: "json",
			EncoderConfig: zapcore.EncoderConfig{
				MessageKey:     "message",
				LevelKey:       "level",
				TimeKey:        "@timestamp",
				NameKey:        "logger",
				CallerKey:      "caller",
				StacktraceKey:  "stacktrace",
				LineEnding:     zapcore.DefaultLineEnding,
				EncodeLevel:    zapcore.CapitalLevelEncoder,
				EncodeTime:     zapcore.ISO8601TimeEncoder,
				EncodeDuration: zapcore.MillisDurationEncoder,
				EncodeCaller:   zapcore.ShortCallerEncoder,
			},
			OutputPaths:      []string{"stderr"},
			ErrorOutputPaths: []string{"stderr"},
		},
		// every *Ctx method adds one frame
		opts: []zap.Option{zap.AddCallerSkip(1)},
	}
	for _, option := range options {
		option(s)
	}
	return s
}

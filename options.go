package recgo

import "github.com/hupe1980/recgo/codec"

type options struct {
	logger *Logger
}

// Option configures table declaration behavior.
//
// Options exist to avoid exploding the API surface with constructor
// variants; today they only cover logging.
type Option func(*options)

// WithLogger configures the logger used by the table.
//
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

type loaderOptions struct {
	codec  codec.Codec
	logger *Logger
}

// LoaderOption configures a bulk loader.
type LoaderOption func(*loaderOptions)

// WithCodec configures the codec used to decode JSON bulk input.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) LoaderOption {
	return func(o *loaderOptions) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithLoaderLogger configures the logger used by the bulk loader.
//
// If nil is passed, logging is disabled.
func WithLoaderLogger(l *Logger) LoaderOption {
	return func(o *loaderOptions) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

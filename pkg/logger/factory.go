package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Format selects the slog handler.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// preset is the baseline WithEnvironment applies for a deployment tier.
type preset struct {
	env    string
	level  slog.Level
	format Format
}

var (
	development = preset{env: "development", level: slog.LevelDebug, format: FormatText}
	staging     = preset{env: "staging", level: slog.LevelInfo, format: FormatJSON}
	production  = preset{env: "production", level: slog.LevelInfo, format: FormatJSON}

	presets = map[string]preset{
		"development": development,
		"dev":         development,
		"staging":     staging,
		"stage":       staging,
		"production":  production,
		"prod":        production,
	}
)

// Option configures New.
type Option func(*options)

type options struct {
	level          slog.Level
	format         Format
	output         io.Writer
	attrs          []slog.Attr
	handlerOptions *slog.HandlerOptions
	redact         []string
}

func WithLevel(l slog.Level) Option {
	return func(o *options) { o.level = l }
}

// WithFormat sets the output format. Unknown formats are ignored.
func WithFormat(f Format) Option {
	return func(o *options) {
		if f == FormatJSON || f == FormatText {
			o.format = f
		}
	}
}

func WithTextFormatter() Option {
	return WithFormat(FormatText)
}

// WithOutput sets the destination. Nil writers are ignored.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.output = w
		}
	}
}

// WithHandlerOptions replaces the slog handler options. Redaction still applies.
func WithHandlerOptions(opts *slog.HandlerOptions) Option {
	return func(o *options) {
		if opts != nil {
			o.handlerOptions = opts
		}
	}
}

// WithAttr adds static attributes to every record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(o *options) {
		o.attrs = append(o.attrs, attrs...)
	}
}

// WithRedactedKeys masks attributes with these keys in addition to "secret"
// and "code".
func WithRedactedKeys(keys ...string) Option {
	return func(o *options) {
		for _, k := range keys {
			if k != "" {
				o.redact = append(o.redact, k)
			}
		}
	}
}

// WithEnvironment applies the level and format of a deployment tier and tags
// records with env and service. Unknown tiers fall back to development.
func WithEnvironment(env, service string) Option {
	return func(o *options) {
		p, ok := presets[strings.ToLower(strings.TrimSpace(env))]
		if !ok {
			p = development
		}
		o.level = p.level
		o.format = p.format
		o.attrs = append(o.attrs, slog.String("env", p.env))
		if service != "" {
			o.attrs = append(o.attrs, slog.String("service", service))
		}
	}
}

// Config is the environment-driven logger setup used by binaries.
type Config struct {
	Env     string `env:"APP_ENV" envDefault:"development"`
	Service string `env:"APP_NAME" envDefault:"otpkit"`
	Level   string `env:"LOG_LEVEL" envDefault:""`
	Format  string `env:"LOG_FORMAT" envDefault:""`
}

// NewFromConfig builds a logger from cfg. An unparsable level or format
// keeps the environment default. opts are applied last.
func NewFromConfig(cfg Config, opts ...Option) *slog.Logger {
	all := []Option{WithEnvironment(cfg.Env, cfg.Service)}
	if cfg.Level != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(cfg.Level)); err == nil {
			all = append(all, WithLevel(lvl))
		}
	}
	if cfg.Format != "" {
		all = append(all, WithFormat(Format(strings.ToLower(cfg.Format))))
	}
	return New(append(all, opts...)...)
}

// New creates a logger. Without options it writes JSON at info level to
// stdout. Records carry the identifiers stored by ContextWithAccountID and
// ContextWithEnrollmentID.
func New(opts ...Option) *slog.Logger {
	o := &options{
		level:  slog.LevelInfo,
		format: FormatJSON,
		output: os.Stdout,
		redact: []string{"secret", "code"},
	}
	for _, opt := range opts {
		opt(o)
	}

	handlerOpts := o.handlerOptions
	if handlerOpts == nil {
		handlerOpts = &slog.HandlerOptions{Level: o.level}
	}
	handlerOpts = withRedaction(handlerOpts, o.redact)

	var handler slog.Handler
	if o.format == FormatText {
		handler = slog.NewTextHandler(o.output, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(o.output, handlerOpts)
	}
	if len(o.attrs) > 0 {
		handler = handler.WithAttrs(o.attrs)
	}

	return slog.New(&contextHandler{next: handler})
}

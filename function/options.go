package function

import (
	"strings"

	"github.com/mohae/deepcopy"
	"github.com/sirupsen/logrus"
)

type Option interface {
	Apply(o *Options)
}

type OptionFunc func(*Options)

func (f OptionFunc) Apply(o *Options) { f(o) }

type Options struct {
	// AliasMap rewrites an incoming trigger name before lookup.
	AliasMap map[string]string
	// MethodMap overrides the methods declared at registration, keyed by trigger name.
	MethodMap map[string][]string
	// DisabledMap hides triggers from the engine without unregistering them.
	DisabledMap map[string]bool
	DebugMode   bool
	Logger      *logrus.Logger
	Observer    Observer
}

var defaultOptions = &Options{
	AliasMap:    map[string]string{},
	MethodMap:   map[string][]string{},
	DisabledMap: map[string]bool{},
	DebugMode:   false,
}

func NewOptions(opts ...Option) *Options {
	options := deepcopy.Copy(defaultOptions).(*Options)
	options.init(opts...)
	return options
}

func (o *Options) init(opts ...Option) {
	for _, opt := range opts {
		if opt != nil {
			opt.Apply(o)
		}
	}
	if o.Logger == nil {
		o.Logger = logrus.StandardLogger()
	}
}

// WithDebugMode enables or disables debug mode
func WithDebugMode(debug bool) Option {
	return OptionFunc(func(o *Options) {
		o.DebugMode = debug
	})
}

// WithTriggerAlias routes invocations of src to the trigger registered as dst.
func WithTriggerAlias(src, dst string) Option {
	return OptionFunc(func(o *Options) {
		o.AliasMap[src] = dst
	})
}

// WithTriggerMethods replaces the accepted methods of a trigger.
func WithTriggerMethods(name string, methods ...string) Option {
	return OptionFunc(func(o *Options) {
		o.MethodMap[name] = normalizeMethods(methods)
	})
}

// WithTriggerDisabled hides a trigger from the engine.
func WithTriggerDisabled(name string, disabled bool) Option {
	return OptionFunc(func(o *Options) {
		o.DisabledMap[name] = disabled
	})
}

func WithLogger(logger *logrus.Logger) Option {
	return OptionFunc(func(o *Options) {
		o.Logger = logger
	})
}

func WithObserver(observer Observer) Option {
	return OptionFunc(func(o *Options) {
		o.Observer = observer
	})
}

func normalizeMethods(methods []string) []string {
	out := make([]string, 0, len(methods))
	for _, m := range methods {
		m = strings.ToUpper(strings.TrimSpace(m))
		if m == "" {
			continue
		}
		out = append(out, m)
	}
	return out
}

package httphost

import (
	"github.com/mohae/deepcopy"
	"github.com/prometheus/client_golang/prometheus"
)

type Option interface {
	Apply(o *Options)
}

type OptionFunc func(*Options)

func (f OptionFunc) Apply(o *Options) { f(o) }

type Options struct {
	Address   string
	DebugMode bool
	// Gatherer backs the /metrics route; nil disables it.
	Gatherer prometheus.Gatherer
}

var defaultOptions = &Options{
	Address:   ":8080",
	DebugMode: false,
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
}

func WithAddress(addr string) Option {
	return OptionFunc(func(o *Options) {
		o.Address = addr
	})
}

func WithDebugMode(debug bool) Option {
	return OptionFunc(func(o *Options) {
		o.DebugMode = debug
	})
}

func WithGatherer(g prometheus.Gatherer) Option {
	return OptionFunc(func(o *Options) {
		o.Gatherer = g
	})
}

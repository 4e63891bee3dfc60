package eventcli

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/mohae/deepcopy"
)

var (
	ErrNoLambdaClient = errors.New("eventcli: lambda client not configured")
	ErrNoFunctionName = errors.New("eventcli: function name not configured")
)

// LambdaClient is the part of the Lambda API the Client calls.
type LambdaClient interface {
	Invoke(ctx context.Context, params *lambda.InvokeInput,
		optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error)
}

// Options selects the deployed function events are delivered to.
type Options struct {
	LambdaClient LambdaClient
	FunctionName string
	// Qualifier pins a published version or alias; empty targets $LATEST.
	Qualifier string
}

type Option interface {
	Apply(o *Options)
}

type OptionFunc func(*Options)

func (f OptionFunc) Apply(o *Options) { f(o) }

var defaultOptions = &Options{}

func NewOptions(opts ...Option) *Options {
	o := deepcopy.Copy(defaultOptions).(*Options)
	for _, opt := range opts {
		if opt != nil {
			opt.Apply(o)
		}
	}
	return o
}

func (o *Options) validate() error {
	switch {
	case o.LambdaClient == nil:
		return ErrNoLambdaClient
	case o.FunctionName == "":
		return ErrNoFunctionName
	}
	return nil
}

func WithLambdaClient(client LambdaClient) Option {
	return OptionFunc(func(o *Options) {
		o.LambdaClient = client
	})
}

// WithFunctionName sets the target function name or ARN.
func WithFunctionName(name string) Option {
	return OptionFunc(func(o *Options) {
		o.FunctionName = name
	})
}

func WithQualifier(qualifier string) Option {
	return OptionFunc(func(o *Options) {
		o.Qualifier = qualifier
	})
}

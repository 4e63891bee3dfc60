// Package lambdahost runs a function Engine inside the AWS Lambda runtime.
package lambdahost

import (
	"context"
	"encoding/json"

	"github.com/aura-studio/funcapp/function"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-lambda-go/lambdacontext"
)

// engine is the global engine variable for the Lambda host.
var engine *function.Engine

// NewHandler returns a Lambda handler that routes every event to trigger.
// Errors are returned to the Lambda runtime unchanged.
func NewHandler(e *function.Engine, trigger string) func(context.Context, json.RawMessage) error {
	return func(ctx context.Context, payload json.RawMessage) error {
		inv := function.Invocation{
			Trigger: trigger,
			Payload: payload,
		}
		if lc, ok := lambdacontext.FromContext(ctx); ok {
			inv.ID = lc.AwsRequestID
			inv.Metadata = map[string]any{
				"functionArn": lc.InvokedFunctionArn,
			}
		}
		_, err := e.Invoke(ctx, inv)
		return err
	}
}

// Serve starts the Lambda handler for trigger. It does not return.
func Serve(e *function.Engine, trigger string) {
	engine = e
	lambda.Start(NewHandler(e, trigger))
}

// Close stops the engine gracefully.
func Close() {
	if engine != nil {
		engine.Stop()
	}
}

// Package eventcli sends events to a deployed function with asynchronous
// (Event) Lambda invocations.
package eventcli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/google/uuid"
)

// Event is an Event Grid-shaped envelope for test deliveries.
type Event struct {
	ID          string `json:"id"`
	EventType   string `json:"eventType"`
	Subject     string `json:"subject"`
	EventTime   string `json:"eventTime"`
	Data        any    `json:"data"`
	DataVersion string `json:"dataVersion"`
}

func NewEvent(eventType, subject string, data any) Event {
	return Event{
		ID:          uuid.NewString(),
		EventType:   eventType,
		Subject:     subject,
		EventTime:   time.Now().UTC().Format(time.RFC3339),
		Data:        data,
		DataVersion: "1.0",
	}
}

type Client struct {
	*Options
}

func NewClient(opts ...Option) *Client {
	return &Client{
		Options: NewOptions(opts...),
	}
}

// NewDefaultLambdaClient builds a Lambda client from the default AWS
// configuration chain. An empty region keeps the configured one.
func NewDefaultLambdaClient(ctx context.Context, region string) (*lambda.Client, error) {
	var optFns []func(*config.LoadOptions) error
	if region != "" {
		optFns = append(optFns, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return nil, fmt.Errorf("eventcli: load aws config: %w", err)
	}
	return lambda.NewFromConfig(cfg), nil
}

// Send JSON-encodes event and invokes the function asynchronously.
func (c *Client) Send(ctx context.Context, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("eventcli: marshal event: %w", err)
	}
	return c.SendRaw(ctx, payload)
}

// SendBatch sends each event in its own invocation and stops at the first error.
func (c *Client) SendBatch(ctx context.Context, events []any) error {
	for i, ev := range events {
		if err := c.Send(ctx, ev); err != nil {
			return fmt.Errorf("eventcli: event %d: %w", i, err)
		}
	}
	return nil
}

// SendRaw invokes the function with payload as is.
func (c *Client) SendRaw(ctx context.Context, payload []byte) error {
	if err := c.validate(); err != nil {
		return err
	}

	in := &lambda.InvokeInput{
		FunctionName:   aws.String(c.FunctionName),
		InvocationType: types.InvocationTypeEvent,
		Payload:        payload,
	}
	if c.Qualifier != "" {
		in.Qualifier = aws.String(c.Qualifier)
	}
	if _, err := c.LambdaClient.Invoke(ctx, in); err != nil {
		return fmt.Errorf("eventcli: lambda invoke failed: %w", err)
	}
	return nil
}

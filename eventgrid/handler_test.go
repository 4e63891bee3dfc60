package eventgrid

import (
	"context"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/aura-studio/funcapp/function"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/sirupsen/logrus/hooks/test"
)

func newEngine(t *testing.T) (*function.Engine, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	app := function.NewApp()
	if err := Register(app); err != nil {
		t.Fatalf("Register: %v", err)
	}
	return function.NewEngine(app, function.WithLogger(logger)), hook
}

func invoke(t *testing.T, e *function.Engine, payload string) *function.Result {
	t.Helper()
	res, err := e.Invoke(context.Background(), function.Invocation{
		Trigger: TriggerName,
		Method:  "POST",
		Payload: []byte(payload),
	})
	if err != nil {
		t.Fatalf("Invoke(%q): %v", payload, err)
	}
	return res
}

func TestRegister(t *testing.T) {
	app := function.NewApp()
	if err := Register(app); err != nil {
		t.Fatalf("Register: %v", err)
	}
	tr, ok := app.Lookup(TriggerName)
	if !ok {
		t.Fatalf("trigger %s not registered", TriggerName)
	}
	if !tr.Allows("GET") || !tr.Allows("POST") {
		t.Errorf("methods = %v, want GET and POST", tr.Methods)
	}
	if tr.Allows("DELETE") {
		t.Error("DELETE should not be accepted")
	}
	if err := Register(app); err == nil {
		t.Error("registering twice should fail")
	}
}

func TestHandleBlobCreated(t *testing.T) {
	e, hook := newEngine(t)

	payload := `{"eventType":"Microsoft.Storage.BlobCreated","data":{"url":"https://example/blob1"}}`
	res := invoke(t, e, payload)

	if len(res.Logs) != 1 {
		t.Fatalf("logs = %v, want exactly one line", res.Logs)
	}
	line := res.Logs[0]
	if !strings.HasPrefix(line, LogPrefix+" ") {
		t.Errorf("line %q does not start with %q", line, LogPrefix)
	}

	var logged map[string]any
	if err := json.Unmarshal([]byte(strings.TrimPrefix(line, LogPrefix+" ")), &logged); err != nil {
		t.Fatalf("logged event is not JSON: %v", err)
	}
	if logged["eventType"] != "Microsoft.Storage.BlobCreated" {
		t.Errorf("eventType = %v", logged["eventType"])
	}
	data, _ := logged["data"].(map[string]any)
	if data["url"] != "https://example/blob1" {
		t.Errorf("data.url = %v", data["url"])
	}

	if n := len(hook.AllEntries()); n != 1 {
		t.Errorf("logger entries = %d, want 1", n)
	}
}

func TestHandleNull(t *testing.T) {
	e, hook := newEngine(t)

	res := invoke(t, e, "null")
	if len(res.Logs) != 1 || res.Logs[0] != LogPrefix+" null" {
		t.Errorf("logs = %v", res.Logs)
	}
	if hook.LastEntry().Message != LogPrefix+" null" {
		t.Errorf("message = %q", hook.LastEntry().Message)
	}
}

func TestHandleEdgePayloads(t *testing.T) {
	e, _ := newEngine(t)

	cases := map[string]string{
		"":            LogPrefix + " null",
		"{}":          LogPrefix + " {}",
		"[]":          LogPrefix + " []",
		"42":          LogPrefix + " 42",
		`"text"`:      LogPrefix + " text",
		`{"broken":`:  LogPrefix + ` {"broken":`,
		"not json at": LogPrefix + " not json at",
		`{"a":1}}}`:   LogPrefix + ` {"a":1}}}`,
	}
	blob := `{"url":"https://a/b?x=1&y=<2>"}`
	cases[blob] = LogPrefix + " " + blob

	for payload, want := range cases {
		res := invoke(t, e, payload)
		if len(res.Logs) != 1 || res.Logs[0] != want {
			t.Errorf("payload %q: logs = %v, want [%q]", payload, res.Logs, want)
		}
	}
}

func TestHandleAnyPayload(t *testing.T) {
	e, _ := newEngine(t)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("any payload completes with exactly one prefixed log line", prop.ForAll(
		func(payload []byte) bool {
			res, err := e.Invoke(context.Background(), function.Invocation{
				Trigger: TriggerName,
				Payload: payload,
			})
			if err != nil {
				return false
			}
			return len(res.Logs) == 1 && strings.HasPrefix(res.Logs[0], LogPrefix)
		},
		gen.SliceOf(gen.UInt8()),
	))

	properties.Property("invocation order does not change individual outcomes", prop.ForAll(
		func(payloads []string) bool {
			first := make([]string, len(payloads))
			for i, p := range payloads {
				res, err := e.Invoke(context.Background(), function.Invocation{Trigger: TriggerName, Payload: []byte(p)})
				if err != nil || len(res.Logs) != 1 {
					return false
				}
				first[i] = res.Logs[0]
			}
			for i := len(payloads) - 1; i >= 0; i-- {
				res, err := e.Invoke(context.Background(), function.Invocation{Trigger: TriggerName, Payload: []byte(payloads[i])})
				if err != nil || len(res.Logs) != 1 || res.Logs[0] != first[i] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.OneConstOf(`{"a":1}`, "null", "[1,2]", `"s"`, "", "{bad"), reflect.TypeOf("")),
	))

	properties.TestingRun(t)
}

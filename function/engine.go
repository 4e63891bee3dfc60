package function

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrEngineStopped    = errors.New("engine is stopped")
	ErrTriggerNotFound  = errors.New("trigger not found")
	ErrMethodNotAllowed = errors.New("method not allowed")
	ErrHandlerPanic     = errors.New("handler panicked")
)

// Invocation status values reported to the Observer.
const (
	StatusOK               = "ok"
	StatusError            = "error"
	StatusPanic            = "panic"
	StatusNotFound         = "not_found"
	StatusMethodNotAllowed = "method_not_allowed"
	StatusStopped          = "stopped"
)

// UnknownTrigger is the trigger name reported to the Observer when an
// invocation never resolves to a registered trigger.
const UnknownTrigger = "unknown"

// Observer receives one call per invocation.
type Observer interface {
	ObserveInvocation(trigger, status string, d time.Duration)
}

// Invocation is what a host hands to the Engine.
type Invocation struct {
	ID       string
	Trigger  string
	Method   string
	Payload  []byte
	Metadata map[string]any
}

// Result describes a finished invocation. No return value is produced by
// handlers; hosts forward Logs where their protocol supports it.
type Result struct {
	InvocationID string
	Trigger      string
	Logs         []string
}

// Engine dispatches host invocations to the triggers of an App.
type Engine struct {
	*Options
	app     *App
	running atomic.Int32
}

// NewEngine creates a new Engine instance with the given options.
// The engine starts in running state by default.
func NewEngine(app *App, opts ...Option) *Engine {
	if app == nil {
		app = NewApp()
	}
	e := &Engine{
		Options: NewOptions(opts...),
		app:     app,
	}
	e.running.Store(1)
	return e
}

func (e *Engine) App() *App { return e.app }

func (e *Engine) Start() {
	e.running.Store(1)
}

func (e *Engine) Stop() {
	e.running.Store(0)
}

func (e *Engine) IsRunning() bool {
	return e.running.Load() == 1
}

// Lookup resolves a trigger name the way Invoke does: aliases first, then
// registered and enabled triggers.
func (e *Engine) Lookup(name string) (*Trigger, bool) {
	if dst, ok := e.AliasMap[name]; ok {
		name = dst
	}
	if e.DisabledMap[name] {
		return nil, false
	}
	return e.app.Lookup(name)
}

// Methods returns the methods accepted by the trigger, honoring overrides.
func (e *Engine) Methods(t *Trigger) []string {
	if methods, ok := e.MethodMap[t.Name]; ok {
		return methods
	}
	return t.Methods
}

// Invoke runs one invocation through its trigger handler.
func (e *Engine) Invoke(ctx context.Context, inv Invocation) (res *Result, err error) {
	start := time.Now()
	status := StatusOK
	label := UnknownTrigger
	defer func() {
		if e.Observer != nil {
			e.Observer.ObserveInvocation(label, status, time.Since(start))
		}
	}()

	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	res = &Result{InvocationID: inv.ID, Trigger: inv.Trigger}

	if !e.IsRunning() {
		status = StatusStopped
		return res, fmt.Errorf("function: %w", ErrEngineStopped)
	}

	t, ok := e.Lookup(inv.Trigger)
	if !ok {
		status = StatusNotFound
		if e.DebugMode {
			e.Logger.Infof("[Function] Trigger not found: %s", inv.Trigger)
		}
		return res, fmt.Errorf("function: %w: %s", ErrTriggerNotFound, inv.Trigger)
	}
	res.Trigger = t.Name
	label = t.Name

	if !allowsMethod(e.Methods(t), inv.Method) {
		status = StatusMethodNotAllowed
		return res, fmt.Errorf("function: %w: %s %s", ErrMethodNotAllowed, inv.Method, t.Name)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	c := &Context{
		Context:      ctx,
		Engine:       e,
		InvocationID: inv.ID,
		RawTrigger:   inv.Trigger,
		Trigger:      t.Name,
		Method:       inv.Method,
		Metadata:     inv.Metadata,
		DebugMode:    e.DebugMode,
		logger: e.Logger.WithFields(logrus.Fields{
			"invocation_id": inv.ID,
			"trigger":       t.Name,
		}),
	}

	if e.DebugMode {
		e.Logger.Infof("[Function] Request: %s %s %s", t.Name, inv.Method, inv.Payload)
	}

	err = e.dispatch(c, t, DecodePayload(inv.Payload))
	res.Logs = c.Logs()
	if err != nil {
		if errors.Is(err, ErrHandlerPanic) {
			status = StatusPanic
		} else {
			status = StatusError
		}
		if e.DebugMode {
			e.Logger.Infof("[Function] Error: %s %v", t.Name, err)
		}
		return res, fmt.Errorf("function: trigger %s: %w", t.Name, err)
	}
	return res, nil
}

func (e *Engine) dispatch(c *Context, t *Trigger, event any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrHandlerPanic, r)
		}
	}()
	return t.Handler(c, event)
}

// DecodePayload turns raw payload bytes into the value handed to handlers:
// nil for an empty payload, the decoded JSON value, or the raw text when the
// bytes are not valid JSON.
func DecodePayload(payload []byte) any {
	if len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if !json.Valid(payload) {
		return string(payload)
	}
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return string(payload)
	}
	return v
}

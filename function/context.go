package function

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// Context is created by the Engine for a single invocation and handed to the
// trigger handler. It embeds the host's context.Context.
type Context struct {
	context.Context

	Engine *Engine

	InvocationID string
	// RawTrigger is the trigger name as provided by the host (before alias rewriting).
	RawTrigger string
	Trigger    string
	Method     string
	Metadata   map[string]any

	DebugMode bool

	logger *logrus.Entry

	mu   sync.Mutex
	logs []string
}

// Log writes a human-readable line made of msg followed by values. Strings are
// written verbatim, everything else as JSON.
func (c *Context) Log(msg string, values ...any) {
	parts := make([]string, 0, len(values)+1)
	parts = append(parts, msg)
	for _, v := range values {
		parts = append(parts, formatValue(v))
	}
	line := strings.Join(parts, " ")

	c.mu.Lock()
	c.logs = append(c.logs, line)
	c.mu.Unlock()

	if c.logger != nil {
		c.logger.Info(line)
	}
}

// Logs returns a copy of the lines logged during the invocation.
func (c *Context) Logs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.logs))
	copy(out, c.logs)
	return out
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case []byte:
		return string(val)
	case error:
		return val.Error()
	case fmt.Stringer:
		return val.String()
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Sprintf("%v", v)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

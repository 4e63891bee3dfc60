package function

import (
	"fmt"
	"sort"
	"sync"
)

// HandlerFunc is the signature of a trigger handler. The event is the decoded
// payload: nil, a JSON value, or the raw text when the payload is not JSON.
type HandlerFunc func(c *Context, event any) error

// Trigger is a named registration routing invocations to a handler.
type Trigger struct {
	Name    string
	Methods []string
	Handler HandlerFunc
}

// Allows reports whether the trigger accepts method. Invocations without a
// method (event deliveries) are always accepted.
func (t *Trigger) Allows(method string) bool {
	return allowsMethod(t.Methods, method)
}

func allowsMethod(methods []string, method string) bool {
	if method == "" {
		return true
	}
	for _, m := range normalizeMethods([]string{method}) {
		for _, allowed := range methods {
			if allowed == m {
				return true
			}
		}
	}
	return false
}

// App is the set of triggers handed to a host.
type App struct {
	mu       sync.RWMutex
	triggers map[string]*Trigger
}

func NewApp() *App {
	return &App{triggers: make(map[string]*Trigger)}
}

// Register adds a trigger. Names are unique within an App.
func (a *App) Register(name string, methods []string, handler HandlerFunc) error {
	if name == "" {
		return fmt.Errorf("function: trigger name is empty")
	}
	if handler == nil {
		return fmt.Errorf("function: trigger %q has no handler", name)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.triggers[name]; ok {
		return fmt.Errorf("function: trigger %q already registered", name)
	}
	a.triggers[name] = &Trigger{
		Name:    name,
		Methods: normalizeMethods(methods),
		Handler: handler,
	}
	return nil
}

// MustRegister is like Register but panics on error.
func (a *App) MustRegister(name string, methods []string, handler HandlerFunc) {
	if err := a.Register(name, methods, handler); err != nil {
		panic(err)
	}
}

func (a *App) Lookup(name string) (*Trigger, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	t, ok := a.triggers[name]
	return t, ok
}

// Names returns the registered trigger names in sorted order.
func (a *App) Names() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	names := make([]string, 0, len(a.triggers))
	for name := range a.triggers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Package eventgrid holds the helloWorld1 trigger: it logs every event it
// receives and completes.
package eventgrid

import (
	"net/http"

	"github.com/aura-studio/funcapp/function"
)

const (
	TriggerName = "helloWorld1"
	LogPrefix   = "EventGrid trigger processed an event:"
)

var Methods = []string{http.MethodGet, http.MethodPost}

// Handle logs the event. Any payload shape is accepted as is.
func Handle(c *function.Context, event any) error {
	c.Log(LogPrefix, event)
	return nil
}

// Register adds the helloWorld1 trigger to app.
func Register(app *function.App) error {
	return app.Register(TriggerName, Methods, Handle)
}

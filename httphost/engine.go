// Package httphost serves a function Engine as an Azure Functions custom
// handler: the Functions host forwards each invocation to this process over
// HTTP on FUNCTIONS_CUSTOMHANDLER_PORT.
package httphost

import (
	"github.com/aura-studio/funcapp/function"
	"github.com/gin-gonic/gin"
)

type Engine struct {
	*Options
	*gin.Engine
	fn *function.Engine
}

func NewEngine(fn *function.Engine, opts ...Option) *Engine {
	e := &Engine{
		Options: NewOptions(opts...),
		Engine:  gin.Default(),
		fn:      fn,
	}

	if !e.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	e.InstallHandlers()

	return e
}

package httphost

import (
	"errors"
	"net/http"
	"strings"

	"github.com/aura-studio/funcapp/function"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const (
	HeaderInvocationID = "X-Azure-Functions-InvocationId"

	// httpBinding is the binding name the Functions host uses for HTTP trigger requests.
	httpBinding = "req"
)

func (e *Engine) InstallHandlers() {
	e.GET("/", e.OK)
	e.GET("/health-check", e.OK)
	if e.Gatherer != nil {
		e.GET("/metrics", gin.WrapH(promhttp.HandlerFor(e.Gatherer, promhttp.HandlerOpts{})))
	}
	e.Any("/api/:trigger", e.Forward)

	// Invocation envelopes arrive as POST /{trigger}. Registered as the
	// NoRoute handler so trigger names never collide with the static routes.
	e.NoRoute(e.Invoke)
}

func (e *Engine) OK(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// Invoke handles a custom-handler invocation envelope:
//
//	{"Data": {"<binding>": ...}, "Metadata": {...}}
//
// and answers with {"Outputs": ..., "Logs": [...], "ReturnValue": null}.
func (e *Engine) Invoke(c *gin.Context) {
	trigger := strings.Trim(c.Request.URL.Path, "/")
	if c.Request.Method != http.MethodPost || trigger == "" || strings.Contains(trigger, "/") {
		e.PageNotFound(c)
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	if len(body) > 0 && !gjson.ValidBytes(body) {
		c.String(http.StatusBadRequest, "invalid invocation envelope")
		return
	}

	inv := function.Invocation{
		ID:      c.GetHeader(HeaderInvocationID),
		Trigger: trigger,
	}
	if binding, ok := selectBinding(gjson.GetBytes(body, "Data")); ok {
		inv.Payload = []byte(binding.Raw)
		inv.Method = binding.Get("Method").String()
	}
	if md, ok := gjson.GetBytes(body, "Metadata").Value().(map[string]any); ok {
		inv.Metadata = md
	}

	res, err := e.fn.Invoke(c.Request.Context(), inv)
	status := statusFor(err)
	var logs []string
	if res != nil {
		logs = res.Logs
	}
	if err != nil {
		logs = append(logs, err.Error())
		if e.DebugMode {
			c.Header("X-Error", err.Error())
		}
	}
	c.Data(status, "application/json", buildResponse(status, logs))
}

// Forward handles requests forwarded verbatim by the Functions host
// (enableForwardingHttpRequest). The request body is the event.
func (e *Engine) Forward(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	_, err = e.fn.Invoke(c.Request.Context(), function.Invocation{
		ID:      c.GetHeader(HeaderInvocationID),
		Trigger: c.Param("trigger"),
		Method:  c.Request.Method,
		Payload: body,
	})
	if err != nil {
		c.String(statusFor(err), err.Error())
		return
	}
	c.Status(http.StatusOK)
}

func (e *Engine) PageNotFound(c *gin.Context) {
	c.String(http.StatusNotFound, "404 page not found")
}

// selectBinding picks the binding carrying the event: the HTTP request when
// present, otherwise the first binding by name.
func selectBinding(data gjson.Result) (gjson.Result, bool) {
	if !data.IsObject() {
		return gjson.Result{}, false
	}
	if req := data.Get(httpBinding); req.Exists() {
		return req, true
	}
	var (
		first string
		value gjson.Result
		found bool
	)
	data.ForEach(func(key, v gjson.Result) bool {
		if !found || key.String() < first {
			first, value, found = key.String(), v, true
		}
		return true
	})
	return value, found
}

func buildResponse(status int, logs []string) []byte {
	if logs == nil {
		logs = []string{}
	}
	out := []byte(`{}`)
	out, _ = sjson.SetBytes(out, "Outputs.res.statusCode", status)
	out, _ = sjson.SetBytes(out, "Outputs.res.body", "")
	out, _ = sjson.SetBytes(out, "Logs", logs)
	out, _ = sjson.SetRawBytes(out, "ReturnValue", []byte("null"))
	return out
}

func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, function.ErrTriggerNotFound):
		return http.StatusNotFound
	case errors.Is(err, function.ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed
	case errors.Is(err, function.ErrEngineStopped):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

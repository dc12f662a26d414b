package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports pipeline and HTTP events to a logger at debug level.
// Failures are logged at error level.
type LogHooks struct {
	Logger *log.Logger
}

var (
	_ PipelineHooks = LogHooks{}
	_ HTTPHooks     = LogHooks{}
)

func (h LogHooks) OnParseComplete(_ context.Context, format string, states int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Error("parse failed", "format", format, "error", err)
		return
	}
	h.Logger.Debug("parsed diagram", "format", format, "states", states, "duration", d)
}

func (h LogHooks) OnLayoutStart(_ context.Context, states int) {
	h.Logger.Debug("layout started", "states", states)
}

func (h LogHooks) OnLayoutComplete(_ context.Context, iterations int, crowded []int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Error("layout failed", "error", err)
		return
	}
	h.Logger.Debug("layout finished", "iterations", iterations, "crowded", crowded, "duration", d)
}

func (h LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.Logger.Debug("render started", "formats", formats)
}

func (h LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.Logger.Error("render failed", "formats", formats, "error", err)
		return
	}
	h.Logger.Debug("render finished", "formats", formats, "duration", d)
}

func (h LogHooks) OnRequest(_ context.Context, method, route, requestID string) {
	h.Logger.Debug("request", "method", method, "route", route, "request_id", requestID)
}

func (h LogHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.Logger.Info("response", "method", method, "route", route, "status", status, "duration", d)
}

func (h LogHooks) OnError(_ context.Context, method, route string, err error) {
	h.Logger.Error("request failed", "method", method, "route", route, "error", err)
}

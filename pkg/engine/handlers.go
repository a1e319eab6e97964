package engine

import (
	"fmt"
	"loadbearer/pkg/response"
	"time"
)

const (
	nullRespPath     = "/"
	delayedRespPath  = "/delay"
	blockingRespPath = "/block"
)

// handleNull answers immediately with a fixed body. It never inspects the
// query string.
func (engine *Engine) handleNull(handle *response.Handle) {
	response.NewPendingResponse(handle, []byte("OK")).Deliver()
}

// handleDelayed defers delivery through the loop's timer facility. The
// pending response is handed off to the timer closure and the loop is free to
// service other requests during the wait. A zero wait still goes through the
// scheduler, so delivery is always asynchronous on this path.
func (engine *Engine) handleDelayed(handle *response.Handle) {
	wait := RequestedDelay(handle.Query())

	body := []byte(fmt.Sprintf("Waited %d ms", wait))
	pending := response.NewPendingResponse(handle, body)

	engine.reactor.Schedule(time.Duration(wait)*time.Millisecond, pending.Deliver)
}

// handleBlocking sleeps ON the loop goroutine before delivering, stalling
// every other request for the full wait. The stall is the feature: it
// simulates a single-threaded backend that cannot overlap work. Do not
// "fix" this by moving the sleep off the loop.
func (engine *Engine) handleBlocking(handle *response.Handle) {
	wait := RequestedDelay(handle.Query())

	body := []byte(fmt.Sprintf("Waited %d ms", wait))
	pending := response.NewPendingResponse(handle, body)

	time.Sleep(time.Duration(wait) * time.Millisecond)
	pending.Deliver()
}

// Package response models an in-flight request and the pending reply that
// will eventually resolve it.
package response

import (
	"github.com/valyala/fasthttp"
)

// Handle is an opaque reference to an in-flight request. It is resolved by
// delivering exactly one response through it; resolution consumes the handle.
type Handle struct {
	ctx  *fasthttp.RequestCtx
	done chan struct{}
}

func NewHandle(ctx *fasthttp.RequestCtx) *Handle {
	return &Handle{
		ctx:  ctx,
		done: make(chan struct{}),
	}
}

// Query exposes the request's query arguments.
func (h *Handle) Query() *fasthttp.Args {
	return h.ctx.QueryArgs()
}

// Wait blocks until the handle has been resolved. The transport goroutine
// calls this to keep the underlying connection open until delivery.
func (h *Handle) Wait() {
	<-h.done
}

// PendingResponse pairs an unresolved request handle with its prepared body.
// It has a single owner at all times: whoever holds the pointer moves it, by
// handoff, into the delivery path. It is never copied and never shared.
type PendingResponse struct {
	handle *Handle
	body   []byte
}

func NewPendingResponse(handle *Handle, body []byte) *PendingResponse {
	return &PendingResponse{
		handle: handle,
		body:   body,
	}
}

// Deliver transmits the body through the handle with status 200 and releases
// both. This is a one-shot, terminal operation: the handle is detached before
// the body is released so no caller can resolve it twice, and the transport
// owns the connection from the moment the reply is handed over. Delivering
// the same pending response twice is a programming error and panics.
func (p *PendingResponse) Deliver() {
	if p.handle == nil {
		panic("response: pending response delivered twice")
	}

	handle := p.handle
	handle.ctx.SetStatusCode(fasthttp.StatusOK)
	handle.ctx.SetBody(p.body)
	p.handle = nil
	p.body = nil

	close(handle.done)
}

package fluxion

// handlerSlot is the small mutable object recycled by the terminators'
// handler-slot pool: one CancellationToken per handler invocation, reset
// before reuse. Repurposes the teacher's pool.Pool abstraction — there it
// recycles *worker[R] task executors; here it recycles this instead, same
// "small mutable object, many short-lived uses" shape.
type handlerSlot[T Fluxion] struct {
	token CancellationToken
}

func newHandlerSlot[T Fluxion]() interface{} {
	return &handlerSlot[T]{token: NewCancellationToken()}
}

func (h *handlerSlot[T]) reset() {
	h.token = NewCancellationToken()
}

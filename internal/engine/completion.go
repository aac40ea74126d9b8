package engine

import "sync"

// Completion — одноразовый сигнал "рефреш поставлен в отправку".
// Резолвится ровно один раз; повторные resolve — no-op.
type Completion struct {
	once sync.Once
	done chan struct{}
}

func newCompletion() *Completion {
	return &Completion{done: make(chan struct{})}
}

func (c *Completion) resolve() {
	c.once.Do(func() { close(c.done) })
}

// Done closes once the slot's refresh has been handed to the dispatcher.
func (c *Completion) Done() <-chan struct{} { return c.done }

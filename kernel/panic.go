package kernel

import "runtime/debug"

// PanicInfo contains details about a recovered task panic.
type PanicInfo struct {
	TaskID TaskID
	Value  any
	Stack  []byte
}

// SetPanicHandler installs the handler called for every recovered task panic.
//
// The handler runs on the scheduler goroutine. It must not panic.
func (k *Kernel) SetPanicHandler(fn func(PanicInfo)) {
	k.panicHandler = fn
}

// Panics returns the number of task panics recovered so far.
func (k *Kernel) Panics() int { return k.panics }

// runTask calls t.Step and reports whether it returned normally.
// A panicking task is marked dead and never scheduled again.
func (k *Kernel) runTask(id TaskID, st *taskState, ctx *Context) (ok bool) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		ok = false
		st.dead = true
		st.runnable = false
		k.forget(id)
		k.panics++
		if k.panicHandler != nil {
			k.panicHandler(PanicInfo{TaskID: id, Value: r, Stack: debug.Stack()})
		}
	}()
	st.task.Step(ctx)
	return true
}

func (k *Kernel) forget(id TaskID) {
	k.tickWaitMask &^= 1 << id
	for i := Endpoint(0); i < k.endpointCount; i++ {
		k.endpoints[i].waitMask &^= 1 << id
	}
}

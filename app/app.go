// Package app wires the HAL, the kernel, the logger service and the plotter task.
package app

import (
	"fplot/hal"
	"fplot/kernel"
	logsvc "fplot/services/logger"
	"fplot/tasks/plotter"
)

// stepBudget bounds the task steps run per frame.
const stepBudget = 256

type Config struct {
	// Samples per curve; 0 means the default.
	Samples int
}

// System is one running instance of the application.
type System struct {
	h       hal.HAL
	k       *kernel.Kernel
	plotter *plotter.Task
}

// NewWithConfig initializes the application and returns its per-frame step function.
func NewWithConfig(h hal.HAL, cfg Config) func() error {
	return NewSystem(h, cfg).Step
}

// NewSystem builds the kernel, registers the tasks and installs the panic handler.
func NewSystem(h hal.HAL, cfg Config) *System {
	k := kernel.New()
	installPanicHandler(k, h)

	logEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	k.AddTask(logsvc.New(h.Logger(), logEP.Restrict(kernel.RightRecv)))

	p := plotter.New(h.Display(), h.Input(), logEP.Restrict(kernel.RightSend), plotter.Config{Samples: cfg.Samples})
	k.AddTask(p)

	return &System{h: h, k: k, plotter: p}
}

// Plotter returns the window controller task.
func (s *System) Plotter() *plotter.Task { return s.plotter }

// Step forwards pending HAL ticks to the kernel and runs tasks until they are all parked.
func (s *System) Step() error {
	if ht := s.h.Time(); ht != nil {
		if ch := ht.Ticks(); ch != nil {
			var last uint64
			for drained := false; !drained; {
				select {
				case seq := <-ch:
					last = seq
				default:
					drained = true
				}
			}
			if last != 0 {
				s.k.TickTo(last)
			}
		}
	}
	s.k.RunUntilIdle(stepBudget)
	return nil
}

package logger

import (
	"fplot/hal"
	"fplot/kernel"
	"fplot/proto"
)

// Service drains log lines from its endpoint into the HAL logger.
type Service struct {
	log hal.Logger
	ep  kernel.Capability
	buf []byte
}

func New(log hal.Logger, ep kernel.Capability) *Service {
	return &Service{log: log, ep: ep}
}

func (s *Service) Step(ctx *kernel.Context) {
	msg, ok := ctx.Recv(s.ep)
	if !ok {
		return
	}
	if s.log == nil {
		return
	}
	if proto.Kind(msg.Kind) != proto.MsgLogLine {
		return
	}
	level, line, ok := proto.DecodeLogLinePayload(msg.Payload())
	if !ok {
		return
	}

	s.buf = append(s.buf[:0], '[')
	s.buf = append(s.buf, level.String()...)
	s.buf = append(s.buf, "] "...)
	s.buf = append(s.buf, line...)
	s.log.WriteLineBytes(s.buf)
}

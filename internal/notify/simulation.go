package notify

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
)

// Simulation logs the would-be message and reports success.
type Simulation struct {
	log *zap.Logger
	seq atomic.Int64
}

func NewSimulation(log *zap.Logger) *Simulation {
	return &Simulation{log: log}
}

func (s *Simulation) Notify(_ context.Context, to, message string) Result {
	id := s.nextID()
	s.log.Info("simulated email", zap.String("to", to), zap.String("message", message), zap.String("message_id", id))
	return Result{Success: true, Simulation: true, Provider: ProviderSimulation, MessageID: id}
}

func (s *Simulation) NotifyHost(_ context.Context, a HostArrival) Result {
	id := s.nextID()
	s.log.Info("simulated host notification",
		zap.String("to", a.HostEmail),
		zap.String("guest", a.GuestName),
		zap.String("guest_company", guestCompany(a.GuestCompany)),
		zap.String("message_id", id),
	)
	return Result{Success: true, Simulation: true, Provider: ProviderSimulation, MessageID: id}
}

func (s *Simulation) nextID() string {
	return fmt.Sprintf("sim-%d", s.seq.Add(1))
}

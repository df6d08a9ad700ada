// Package scheduler runs periodic jobs on a cron spec.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// AgendaSender is satisfied by the reminder use case.
type AgendaSender interface {
	SendTomorrowAgenda(ctx context.Context) (int, error)
}

// AgendaReminder sends tomorrow's agenda on a cron schedule.
type AgendaReminder struct {
	cron    *cron.Cron
	sender  AgendaSender
	timeout time.Duration
}

// NewAgendaReminder registers the job; spec uses the standard five-field
// cron syntax.
func NewAgendaReminder(spec string, sender AgendaSender) (*AgendaReminder, error) {
	r := &AgendaReminder{cron: cron.New(), sender: sender, timeout: 5 * time.Minute}
	if _, err := r.cron.AddFunc(spec, r.Run); err != nil {
		return nil, err
	}
	return r, nil
}

// Run performs one pass.
func (r *AgendaReminder) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	sent, err := r.sender.SendTomorrowAgenda(ctx)
	if err != nil {
		log.Printf("[scheduler][reminder] run failed err=%v", err)
		return
	}
	log.Printf("[scheduler][reminder] run done sent=%d", sent)
}

func (r *AgendaReminder) Start() {
	r.cron.Start()
	log.Printf("[scheduler][reminder] started entries=%d", len(r.cron.Entries()))
}

// Stop waits for a running job to finish or ctx to end.
func (r *AgendaReminder) Stop(ctx context.Context) {
	select {
	case <-r.cron.Stop().Done():
	case <-ctx.Done():
	}
}

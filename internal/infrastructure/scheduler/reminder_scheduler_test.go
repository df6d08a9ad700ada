package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"
)

type countingSender struct {
	calls int
	err   error
}

func (s *countingSender) SendTomorrowAgenda(ctx context.Context) (int, error) {
	s.calls++
	if _, ok := ctx.Deadline(); !ok {
		return 0, errors.New("expected a deadline")
	}
	return 1, s.err
}

func TestNewAgendaReminder(t *testing.T) {
	if _, err := NewAgendaReminder("not a spec", &countingSender{}); err == nil {
		t.Fatalf("expected spec error")
	}

	sender := &countingSender{}
	r, err := NewAgendaReminder("0 19 * * *", sender)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r.Run()
	sender.err = errors.New("boom")
	r.Run()
	if sender.calls != 2 {
		t.Fatalf("expected 2 calls, got %d", sender.calls)
	}

	r.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	r.Stop(ctx)
}

package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"instala_control/internal/domain/entities"
	mock_interfaces "instala_control/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestReminderUseCase_SendTomorrowAgenda(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	settings := mock_interfaces.NewMockISettingsRepository(ctrl)
	appts := mock_interfaces.NewMockIAppointmentRepository(ctrl)
	notifier := mock_interfaces.NewMockINotifier(ctrl)
	uc := NewReminderUseCase(settings, appts, notifier)
	uc.now = fixedNow

	settings.EXPECT().List(gomock.Any()).Return([]entities.CompanySettings{
		{UserID: "u1", Phone: "+5511999990000"},
		{UserID: "no-phone"},
		{UserID: "idle", Phone: "+5511888880000"},
		{UserID: "broken", Phone: "+5511777770000"},
	}, nil)
	appts.EXPECT().ListByUser(gomock.Any(), "u1").Return([]entities.Appointment{
		{Client: "Maria", Type: "Limpeza", Date: "2026-10-19", Time: "14:00"},
		{Client: "João", Type: "Instalação", Date: "2026-10-19", Time: "08:00", Address: "Rua A, 10"},
		{Client: "Outro dia", Date: "2026-10-20", Time: "08:00"},
	}, nil)
	appts.EXPECT().ListByUser(gomock.Any(), "idle").Return(nil, nil)
	appts.EXPECT().ListByUser(gomock.Any(), "broken").Return(nil, errors.New("db"))
	notifier.EXPECT().Send(gomock.Any(), "+5511999990000", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, body string) error {
			want := "Agenda de amanhã (19/10): 2 visita(s)\n08:00 João - Instalação (Rua A, 10)\n14:00 Maria - Limpeza"
			if body != want {
				t.Fatalf("unexpected body:\n%s", body)
			}
			return nil
		},
	)

	sent, err := uc.SendTomorrowAgenda(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sent != 1 {
		t.Fatalf("expected 1 message, got %d", sent)
	}
}

func TestAgendaMessage_Empty(t *testing.T) {
	if got := AgendaMessage("bad", nil); !strings.HasPrefix(got, "Agenda de amanhã (bad): 0") {
		t.Fatalf("unexpected message %q", got)
	}
}

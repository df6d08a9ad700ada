package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"instala_control/internal/domain/calendar"
	"instala_control/internal/domain/entities"
	"instala_control/internal/usecase/interfaces"
)

// IReminderUseCase sends every technician tomorrow's agenda.
type IReminderUseCase interface {
	SendTomorrowAgenda(ctx context.Context) (sent int, err error)
}

type ReminderUseCase struct {
	settings     interfaces.ISettingsRepository
	appointments interfaces.IAppointmentRepository
	notifier     interfaces.INotifier
	now          func() time.Time
}

var _ IReminderUseCase = (*ReminderUseCase)(nil)

func NewReminderUseCase(settings interfaces.ISettingsRepository, appointments interfaces.IAppointmentRepository, notifier interfaces.INotifier) *ReminderUseCase {
	return &ReminderUseCase{settings: settings, appointments: appointments, notifier: notifier, now: time.Now}
}

// SendTomorrowAgenda messages the phone stored in each user's settings. Users
// without a phone or without visits tomorrow are skipped. A failure for one
// user is logged and does not stop the others.
func (u *ReminderUseCase) SendTomorrowAgenda(ctx context.Context) (int, error) {
	all, err := u.settings.List(ctx)
	if err != nil {
		return 0, err
	}
	tomorrow := u.now().AddDate(0, 0, 1).Format(calendar.DateLayout)

	sent := 0
	for _, s := range all {
		phone := strings.TrimSpace(s.Phone)
		if phone == "" || s.UserID == "" {
			continue
		}
		appts, err := u.appointments.ListByUser(ctx, s.UserID)
		if err != nil {
			log.Printf("[reminder][usecase] list failed user_id=%s err=%v", s.UserID, err)
			continue
		}
		agenda := calendar.DayAgenda(appts, tomorrow)
		if len(agenda) == 0 {
			continue
		}
		if err := u.notifier.Send(ctx, phone, AgendaMessage(tomorrow, agenda)); err != nil {
			log.Printf("[reminder][usecase] send failed user_id=%s err=%v", s.UserID, err)
			continue
		}
		sent++
	}
	log.Printf("[reminder][usecase] agenda sent date=%s users=%d", tomorrow, sent)
	return sent, nil
}

// AgendaMessage renders a day's visits as one SMS body.
func AgendaMessage(date string, agenda []entities.Appointment) string {
	day := date
	if t, err := time.Parse(calendar.DateLayout, date); err == nil {
		day = t.Format("02/01")
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Agenda de amanhã (%s): %d visita(s)", day, len(agenda))
	for _, a := range agenda {
		fmt.Fprintf(&sb, "\n%s %s - %s", a.Time, a.Client, a.Type)
		if a.Address != "" {
			fmt.Fprintf(&sb, " (%s)", a.Address)
		}
	}
	return sb.String()
}

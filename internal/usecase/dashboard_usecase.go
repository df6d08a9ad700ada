package usecase

import (
	"context"
	"errors"
	"time"

	"instala_control/internal/domain/calendar"
	"instala_control/internal/domain/entities"
	"instala_control/internal/domain/finance"
	"instala_control/internal/usecase/interfaces"

	"golang.org/x/sync/errgroup"
)

const ChartSize = 10

var ErrInvalidPeriod = errors.New("month must be 1-12 and year positive")

// Dashboard is everything the home screen shows for one month.
type Dashboard struct {
	Summary     finance.Summary        `json:"summary"`
	Series      [12]finance.MonthPoint `json:"series"`
	Overall     finance.Totals         `json:"overall"`
	Chart       []finance.ChartRow     `json:"chart"`
	VisitsToday int                    `json:"visits_today"`
	Upcoming    []entities.Appointment `json:"upcoming"`
}

// CalendarRequest addresses the schedule screen. A zero Year or Month means
// the current month; Offset then moves the cursor. A blank Selected means today.
type CalendarRequest struct {
	Year     int
	Month    time.Month
	Offset   int
	Selected string
}

type CalendarView struct {
	Cursor   calendar.Cursor        `json:"cursor"`
	Grid     calendar.Grid          `json:"grid"`
	Selected string                 `json:"selected"`
	Agenda   []entities.Appointment `json:"agenda"`
}

type IDashboardUseCase interface {
	Dashboard(ctx context.Context, userID string, month time.Month, year int) (Dashboard, error)
	Calendar(ctx context.Context, userID string, req CalendarRequest) (CalendarView, error)
}

type DashboardUseCase struct {
	services     interfaces.IServiceRepository
	appointments interfaces.IAppointmentRepository
	now          func() time.Time
}

var _ IDashboardUseCase = (*DashboardUseCase)(nil)

func NewDashboardUseCase(services interfaces.IServiceRepository, appointments interfaces.IAppointmentRepository) *DashboardUseCase {
	return &DashboardUseCase{services: services, appointments: appointments, now: time.Now}
}

func (u *DashboardUseCase) load(ctx context.Context, userID string) ([]entities.Service, []entities.Appointment, error) {
	var (
		svcs  []entities.Service
		appts []entities.Appointment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		svcs, err = u.services.ListByUser(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		appts, err = u.appointments.ListByUser(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	SortServices(svcs)
	SortAppointments(appts)
	return svcs, appts, nil
}

// Dashboard aggregates the selected month, the year series, all-time totals
// and the chart of the latest services.
func (u *DashboardUseCase) Dashboard(ctx context.Context, userID string, month time.Month, year int) (Dashboard, error) {
	userID, err := requireUser(userID)
	if err != nil {
		return Dashboard{}, err
	}
	now := u.now()
	if month == 0 {
		month = now.Month()
	}
	if year == 0 {
		year = now.Year()
	}
	if month < time.January || month > time.December || year <= 0 {
		return Dashboard{}, ErrInvalidPeriod
	}

	svcs, appts, err := u.load(ctx, userID)
	if err != nil {
		return Dashboard{}, err
	}

	today := now.Format(calendar.DateLayout)
	upcoming := make([]entities.Appointment, 0)
	for _, a := range appts {
		if a.Date >= today {
			upcoming = append(upcoming, a)
		}
	}
	return Dashboard{
		Summary:     finance.Summarize(svcs, month, year),
		Series:      finance.YearSeries(svcs, year),
		Overall:     finance.Overall(svcs),
		Chart:       finance.Latest(svcs, ChartSize),
		VisitsToday: len(calendar.DayAgenda(appts, today)),
		Upcoming:    upcoming,
	}, nil
}

// Calendar lays out one month of the schedule with the agenda of the
// selected day.
func (u *DashboardUseCase) Calendar(ctx context.Context, userID string, req CalendarRequest) (CalendarView, error) {
	userID, err := requireUser(userID)
	if err != nil {
		return CalendarView{}, err
	}
	now := u.now()
	cursor := calendar.CursorOf(now)
	if req.Year != 0 {
		cursor.Year = req.Year
	}
	if req.Month != 0 {
		cursor.Month = req.Month
	}
	if cursor.Month < time.January || cursor.Month > time.December || cursor.Year <= 0 {
		return CalendarView{}, ErrInvalidPeriod
	}
	cursor = cursor.Shift(req.Offset)

	selected := now
	if req.Selected != "" {
		if selected, err = time.ParseInLocation(calendar.DateLayout, req.Selected, now.Location()); err != nil {
			return CalendarView{}, ErrInvalidAppointmentDate
		}
	}

	appts, err := u.appointments.ListByUser(ctx, userID)
	if err != nil {
		return CalendarView{}, err
	}
	SortAppointments(appts)

	selectedDate := selected.Format(calendar.DateLayout)
	return CalendarView{
		Cursor:   cursor,
		Grid:     calendar.Build(cursor.Year, cursor.Month, appts, selected, now),
		Selected: selectedDate,
		Agenda:   calendar.DayAgenda(appts, selectedDate),
	}, nil
}

package care

import (
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/bump/internal/cli"
	"github.com/julianstephens/bump/internal/constants"
	"github.com/julianstephens/bump/internal/models"
)

type AppointmentCmd struct {
	Add    AppointmentAddCmd    `cmd:"" help:"Schedule an appointment."`
	List   AppointmentListCmd   `cmd:"" help:"List appointments." default:"1"`
	Delete AppointmentDeleteCmd `cmd:"" help:"Delete an appointment."`
}

type AppointmentAddCmd struct {
	Title      string `arg:"" help:"Appointment title."`
	Date       string `help:"Date (YYYY-MM-DD, today or tomorrow)." required:""`
	Time       string `help:"Start time (HH:MM)." required:""`
	Location   string `help:"Where the appointment is."`
	Notes      string `help:"Notes."`
	NoReminder bool   `help:"Do not send a reminder."`
	Lead       *int   `help:"Minutes before the appointment to remind (default from settings)."`
}

func (c *AppointmentAddCmd) Run(ctx *cli.Context) error {
	date, err := cli.ParseDate(c.Date, ctx.Today())
	if err != nil {
		return err
	}
	if _, err := cli.ParseTime(c.Time); err != nil {
		return err
	}

	lead := constants.DefaultAppointmentLeadMinutes
	if c.Lead != nil {
		lead = *c.Lead
	} else if settings, err := ctx.Store.GetSettings(); err == nil {
		lead = settings.AppointmentLeadMinutes
	}

	a := models.Appointment{
		ID:              cli.NewID(),
		Title:           c.Title,
		Date:            date,
		Time:            c.Time,
		Location:        c.Location,
		Notes:           c.Notes,
		ReminderEnabled: !c.NoReminder,
		ReminderMinutes: lead,
		CreatedAt:       ctx.Clock(),
	}
	if err := ctx.Store.AddAppointment(a); err != nil {
		return fmt.Errorf("failed to add appointment: %w", err)
	}

	fmt.Printf("✓ Appointment added: %s on %s at %s", a.Title, a.Date, a.Time)
	if a.ReminderEnabled {
		fmt.Printf(" (reminder %d min before)", a.ReminderMinutes)
	}
	fmt.Println()
	return nil
}

type AppointmentListCmd struct {
	All bool `help:"Include past appointments."`
}

func (c *AppointmentListCmd) Run(ctx *cli.Context) error {
	appointments, err := ctx.Store.GetAllAppointments()
	if err != nil {
		return fmt.Errorf("failed to get appointments: %w", err)
	}

	today := ctx.Today().Format(constants.DateFormat)
	var shown []models.Appointment
	for _, a := range appointments {
		if c.All || a.Date >= today {
			shown = append(shown, a)
		}
	}
	if len(shown) == 0 {
		fmt.Println("No upcoming appointments.")
		return nil
	}

	sort.Slice(shown, func(i, j int) bool {
		if shown[i].Date != shown[j].Date {
			return shown[i].Date < shown[j].Date
		}
		return shown[i].Time < shown[j].Time
	})

	fmt.Printf("%-36s %-10s %-5s %-28s %-20s %-8s\n", "ID", "Date", "Time", "Title", "Location", "Reminder")
	fmt.Println(strings.Repeat("-", 115))
	for _, a := range shown {
		reminder := "No"
		if a.ReminderEnabled {
			reminder = fmt.Sprintf("%dm", a.ReminderMinutes)
		}
		fmt.Printf("%-36s %-10s %-5s %-28s %-20s %-8s\n",
			a.ID, a.Date, a.Time, cli.Truncate(a.Title, 28), cli.Truncate(a.Location, 20), reminder)
	}
	return nil
}

type AppointmentDeleteCmd struct {
	ID string `arg:"" help:"Appointment ID to delete."`
}

func (c *AppointmentDeleteCmd) Run(ctx *cli.Context) error {
	a, err := ctx.Store.GetAppointment(c.ID)
	if err != nil {
		return fmt.Errorf("appointment not found: %w", err)
	}
	if err := ctx.Store.DeleteAppointment(c.ID); err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}
	fmt.Printf("✓ Appointment deleted: %s on %s\n", a.Title, a.Date)
	return nil
}

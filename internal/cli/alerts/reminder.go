package alerts

type ReminderCmd struct {
	Add      ReminderAddCmd      `cmd:"" help:"Add a daily or one-time reminder."`
	List     ReminderListCmd     `cmd:"" help:"List reminders." default:"1"`
	Delete   ReminderDeleteCmd   `cmd:"" help:"Delete a reminder."`
	Snooze   ReminderSnoozeCmd   `cmd:"" help:"Repeat a reminder once after a delay."`
	Upcoming ReminderUpcomingCmd `cmd:"" help:"Show everything due soon, including appointments and medications."`
	Watch    ReminderWatchCmd    `cmd:"" help:"Run in the foreground and deliver reminders as they come due."`
}

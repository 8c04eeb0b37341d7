package constants

const (
	SettingTimezone               = "timezone"
	SettingWeightUnit             = "weight_unit"
	SettingNotificationsEnabled   = "notifications_enabled"
	SettingAppointmentLeadMinutes = "appointment_lead_minutes"
	SettingWaterGoalMl            = "water_goal_ml"

	// Default Settings Values
	DefaultTimezone               = "Local" // Use system local timezone by default
	DefaultWeightUnit             = "kg"
	DefaultNotificationsEnabled   = true
	DefaultAppointmentLeadMinutes = 60
	DefaultWaterGoalMl            = 2000
)

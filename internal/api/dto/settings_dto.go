package dto

// ProfileForm updates the stored profile fields.
type ProfileForm struct {
	FullName string `json:"fullName" form:"fullName"`
	Phone    string `json:"phone" form:"phone"`
}

// SecurityForm toggles the two-factor flag.
type SecurityForm struct {
	TwoFactor string `json:"twoFactor" form:"twoFactor"`
}

// NotificationsForm carries the notification toggles.
type NotificationsForm struct {
	EmailNotif      string `json:"emailNotif" form:"emailNotif"`
	SMSNotif        string `json:"smsNotif" form:"smsNotif"`
	BrowserNotif    string `json:"browserNotif" form:"browserNotif"`
	StatusNotif     string `json:"statusNotif" form:"statusNotif"`
	AssignmentNotif string `json:"assignmentNotif" form:"assignmentNotif"`
	WeeklyNotif     string `json:"weeklyNotif" form:"weeklyNotif"`
}

// RegionalForm carries theme, locale, timezone and date format.
type RegionalForm struct {
	Theme      string `json:"theme" form:"theme"`
	Language   string `json:"language" form:"language"`
	Timezone   string `json:"timezone" form:"timezone"`
	DateFormat string `json:"dateFormat" form:"dateFormat"`
}

// Checkbox normalizes an HTML checkbox post value to "true"/"false".
func Checkbox(val string) string {
	if val == "on" || val == "true" {
		return "true"
	}
	return "false"
}

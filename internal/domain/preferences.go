package domain

// PreferenceDefaults holds the documented default for every stored
// user-preference key. Keys absent from the store read as their default.
var PreferenceDefaults = map[string]string{
	"fullName":        "",
	"phone":           "",
	"twoFactor":       "false",
	"emailNotif":      "true",
	"smsNotif":        "false",
	"browserNotif":    "true",
	"statusNotif":     "true",
	"assignmentNotif": "true",
	"weeklyNotif":     "false",
	"theme":           "light",
	"language":        "en",
	"timezone":        "IST",
	"dateFormat":      "MM/DD/YYYY",
}

// Preferences is a flat string key/value bag of user settings.
type Preferences map[string]string

// WithDefaults returns a copy with every missing key filled from
// PreferenceDefaults.
func (p Preferences) WithDefaults() Preferences {
	out := make(Preferences, len(PreferenceDefaults))
	for key, def := range PreferenceDefaults {
		if val, ok := p[key]; ok && val != "" {
			out[key] = val
		} else {
			out[key] = def
		}
	}
	return out
}

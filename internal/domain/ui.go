package domain

// UIPreferences holds the two presentation toggles. They have no effect on
// domain data.
type UIPreferences struct {
	DarkMode    bool `json:"dark_mode"`
	SidebarOpen bool `json:"sidebar_open"`
}

// DefaultUIPreferences returns light mode with the sidebar open.
func DefaultUIPreferences() UIPreferences {
	return UIPreferences{DarkMode: false, SidebarOpen: true}
}

package models

import "time"

// User represents a registered dashboard user.
// Password holds the bcrypt hash and is never serialized to clients.
type User struct {
	ID                      string            `json:"id" badgerhold:"key"`
	Email                   string            `json:"email" badgerhold:"index"`
	Password                string            `json:"-"`
	Name                    string            `json:"name,omitempty"`
	ProfilePhoto            string            `json:"profilePhoto,omitempty"`
	FavoriteStocks          []string          `json:"favoriteStocks"`
	DashboardConfigurations []DashboardConfig `json:"dashboardConfigurations"`
	Settings                Settings          `json:"settings"`
	CreatedAt               time.Time         `json:"createdAt"`
	UpdatedAt               time.Time         `json:"updatedAt"`
}

// DashboardConfig is a saved dashboard layout: a named set of tickers with a
// default timeframe.
type DashboardConfig struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Stocks    []string  `json:"stocks"`
	Timeframe string    `json:"timeframe"`
	CreatedAt time.Time `json:"createdAt"`
}

// Settings holds per-user preferences.
type Settings struct {
	EmailNotifications NotificationSettings `json:"emailNotifications"`
	Security           SecuritySettings     `json:"security"`
	Theme              string               `json:"theme"`
	ChartPreferences   ChartPreferences     `json:"chartPreferences"`
}

// NotificationSettings toggles outbound email reports and alerts.
type NotificationSettings struct {
	DailyReport  bool `json:"dailyReport"`
	WeeklyReport bool `json:"weeklyReport"`
	PriceAlerts  bool `json:"priceAlerts"`
	NewsAlerts   bool `json:"newsAlerts"`
}

// SecuritySettings holds account security state.
type SecuritySettings struct {
	TwoFactorEnabled   bool      `json:"twoFactorEnabled"`
	LastPasswordChange time.Time `json:"lastPasswordChange"`
}

// ChartPreferences holds dashboard chart defaults.
type ChartPreferences struct {
	DefaultTimeframe string `json:"defaultTimeframe"`
	ShowVolume       bool   `json:"showVolume"`
}

// DefaultSettings returns the settings applied to a new account.
func DefaultSettings() Settings {
	return Settings{
		EmailNotifications: NotificationSettings{
			DailyReport:  false,
			WeeklyReport: true,
			PriceAlerts:  true,
			NewsAlerts:   true,
		},
		Security: SecuritySettings{
			TwoFactorEnabled:   false,
			LastPasswordChange: time.Now().UTC(),
		},
		Theme: "dark",
		ChartPreferences: ChartPreferences{
			DefaultTimeframe: "1M",
			ShowVolume:       true,
		},
	}
}

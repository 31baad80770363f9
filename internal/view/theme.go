package view

import "context"

type settingsKey string

const darkModeKey = settingsKey("darkMode")

// WithDarkMode stores the visitor's theme choice in the request context.
func WithDarkMode(ctx context.Context, dark bool) context.Context {
	return context.WithValue(ctx, darkModeKey, dark)
}

// IsDarkMode returns true if the dark theme flag is set in the request context.
func IsDarkMode(ctx context.Context) bool {
	dark, ok := ctx.Value(darkModeKey).(bool)
	return ok && dark
}

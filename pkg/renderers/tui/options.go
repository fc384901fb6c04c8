package tui

// Theme captures optional message prefixes the view applies when printing
// notices. Keep minimal to avoid coupling view logic to ANSI specifics.
type Theme struct {
	InfoPrefix   string
	ErrorPrefix  string
	BannerPrefix string
}

// DefaultTheme marks banners and field errors with plain ASCII prefixes.
var DefaultTheme = Theme{
	ErrorPrefix:  "  ! ",
	BannerPrefix: "** ",
}

// Option configures the View.
type Option func(*View)

// WithPromptDriver overrides the prompt driver used by the view.
func WithPromptDriver(driver PromptDriver) Option {
	return func(v *View) {
		if driver != nil {
			v.driver = driver
		}
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(v *View) {
		v.theme = theme
	}
}

// WithSubmitPrompt overrides the confirmation message shown before submit.
func WithSubmitPrompt(message string) Option {
	return func(v *View) {
		if message != "" {
			v.submitPrompt = message
		}
	}
}

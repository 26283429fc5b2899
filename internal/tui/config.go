package tui

// Config holds review screen configuration.
type Config struct {
	Theme    Theme
	Title    string
	Width    int
	Height   int
	ShowHelp bool
}

// Option is a functional option for configuring the review screen.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:    Default,
		Title:    "Match Results",
		Width:    100,
		Height:   24,
		ShowHelp: true,
	}
}

// WithTitle sets the heading shown above the table.
func WithTitle(title string) Option {
	return func(c *Config) {
		c.Title = title
	}
}

// WithSize sets the initial dimensions used before the terminal reports its size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithTheme sets the theme.
func WithTheme(theme Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithHelp controls whether the key help line is shown.
func WithHelp(show bool) Option {
	return func(c *Config) {
		c.ShowHelp = show
	}
}

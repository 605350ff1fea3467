package types

// Theme is the persisted display theme preference.
type Theme string

// Themes.
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// DefaultTheme is used when no valid theme is stored.
const DefaultTheme = ThemeLight

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool { return t == ThemeLight || t == ThemeDark }

// Toggled returns the other theme.
func (t Theme) Toggled() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

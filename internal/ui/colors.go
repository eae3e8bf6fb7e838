package ui

// The Color functions return the escape sequence of the active theme for a
// color category. They return "" when colors are disabled.

// ColorReset clears all formatting.
func ColorReset() string { return GetCurrentTheme().Reset }

// ColorBold starts bold text.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorRed is used for errors.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorGreen is used for results and the prompt.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow is used for warnings and command names.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorGrey is used for secondary text such as bit lengths.
func ColorGrey() string { return GetCurrentTheme().Secondary }

// Package ui provides theme and color support for the bigcalc terminal
// output. It defines color schemes, ANSI escape helpers used by the REPL, and
// lipgloss styles for framed output such as the banner.
//
// This package is designed to be a shared dependency for packages that need
// color output, reducing coupling between evaluation logic and presentation.
package ui

package color

import (
	"fmt"

	"github.com/muesli/termenv"
)

// ANSI color indices
const (
	Red     = "1"
	Green   = "2"
	Yellow  = "3"
	Blue    = "4"
	Magenta = "5"
	Cyan    = "6"
	Gray    = "8"

	BrightRed = "9"
)

var (
	detected = termenv.EnvColorProfile() // honours NO_COLOR and CLICOLOR_FORCE
	profile  = detected
)

// EnableColor switches colored output on (with the detected profile) or off
func EnableColor(enable bool) {
	if enable {
		profile = detected
		if profile == termenv.Ascii {
			profile = termenv.ANSI
		}
		return
	}
	profile = termenv.Ascii
}

func IsColorEnabled() bool {
	return profile != termenv.Ascii
}

// Profile returns the active color profile
func Profile() termenv.Profile {
	return profile
}

func Colorize(color, text string) string {
	return profile.String(text).Foreground(profile.Color(color)).String()
}

func RedText(text string) string {
	return Colorize(Red, text)
}

func BrightRedText(text string) string {
	return Colorize(BrightRed, text)
}

func GreenText(text string) string {
	return Colorize(Green, text)
}

func YellowText(text string) string {
	return Colorize(Yellow, text)
}

func BlueText(text string) string {
	return Colorize(Blue, text)
}

func MagentaText(text string) string {
	return Colorize(Magenta, text)
}

func CyanText(text string) string {
	return Colorize(Cyan, text)
}

func GrayText(text string) string {
	return Colorize(Gray, text)
}

func BoldText(text string) string {
	return profile.String(text).Bold().String()
}

func Error(message string) string {
	return BrightRedText("Error: ") + message
}

func Warning(message string) string {
	return YellowText("Warning: ") + message
}

func Position(line, col int) string {
	return CyanText(fmt.Sprintf("%d:%d", line, col))
}

func ErrorWithPosition(line, col int, message, context string) string {
	if context == "" {
		return fmt.Sprintf("%s at %s: %s", BrightRedText(BoldText("Error")), Position(line, col), message)
	}

	return fmt.Sprintf("%s at %s: %s\n%s",
		BrightRedText(BoldText("Error")),
		Position(line, col),
		message,
		GrayText(context))
}

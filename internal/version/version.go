package version

import "fmt"

const (
	Version = "v0.1.0"

	colorReset     = "\033[0m"
	colorCyanBold  = "\033[36;1m"
	colorWhiteBold = "\033[37;1m"
)

// asciiArtTpl returns the ASCII art of wsq with a placeholder for the tool
// name.
func asciiArtTpl() string {
	asciiArt := `
 _      _______ ____ 
| | /| / / ___// __ \
| |/ |/ /\__ \/ /_/ /
|__/|__/____/\___\_\
%s ` + Version + `
For more information visit https://github.com/nsqlite/wsq`

	asciiArt = asciiArt[1:] // This just removes the first newline character
	asciiArt = colorCyanBold + asciiArt + colorReset

	return asciiArt
}

// ShellVersion returns the banner of the wsqsh shell.
func ShellVersion() string {
	return fmt.Sprintf(asciiArtTpl(), "Shell")
}

// BenchVersion returns the banner of the wsqbench tool.
func BenchVersion() string {
	return fmt.Sprintf(asciiArtTpl(), "Bench")
}

// EngineLine formats the linked engine version for banners and --version.
func EngineLine(libVersion string, sourceID string) string {
	return fmt.Sprintf("%sSQLite %s%s (%s)", colorWhiteBold, libVersion, colorReset, sourceID)
}

package commands

import "fmt"

// ANSI colors matching the classic GG orange/yellow theme.
const (
	bannerOrange = "\x1b[38;5;208m"
	bannerYellow = "\x1b[38;5;220m"
	bannerWhite  = "\x1b[38;5;255m"
	bannerReset  = "\x1b[0m"
)

// printBanner writes the startup banner before the log stream begins.
func printBanner(version string) {
	o, y, w, r := bannerOrange, bannerYellow, bannerWhite, bannerReset

	fmt.Printf(`
%s   ██████╗  ██████╗       ██████╗ ███████╗████████╗██████╗  ██████╗
%s  ██╔════╝ ██╔════╝       ██╔══██╗██╔════╝╚══██╔══╝██╔══██╗██╔═══██╗
%s  ██║  ███╗██║  ███╗█████╗██████╔╝█████╗     ██║   ██████╔╝██║   ██║
%s  ██║   ██║██║   ██║╚════╝██╔══██╗██╔══╝     ██║   ██╔══██╗██║   ██║
%s  ╚██████╔╝╚██████╔╝      ██║  ██║███████╗   ██║   ██║  ██║╚██████╔╝
%s   ╚═════╝  ╚═════╝       ╚═╝  ╚═╝╚══════╝   ╚═╝   ╚═╝  ╚═╝ ╚═════╝
%s
%s  Gadu-Gadu 6.0 Protocol Server                          v%s
%s  ─────────────────────────────────────────────────────────────────
%s
`, o, o, y, y, o, o, w, w, version, y, r)
}

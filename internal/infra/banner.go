package infra

import (
	"fmt"
	"strings"
)

// ANSI color codes.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

// PrintBanner displays the startup banner with mode-specific warnings.
func PrintBanner(cfg *Config) {
	mode := strings.ToUpper(cfg.Trading.Mode)

	color := colorCyan
	modeDesc := "INTERNAL SIMULATION"
	switch mode {
	case "LIVE":
		color = colorRed
		modeDesc = "LIVE EXCHANGE SESSION"
	case "MOCK":
		color = colorYellow
		modeDesc = "LOG-ONLY EXECUTION"
	}

	fmt.Println()
	fmt.Printf("%s#########################################################%s\n", color, colorReset)
	fmt.Printf("%s#          Crazy Thursday Spread Trader                 #%s\n", color, colorReset)
	fmt.Printf("%s#   MODE:     %-42s#%s\n", color, mode, colorReset)
	fmt.Printf("%s#   TYPE:     %-42s#%s\n", color, modeDesc, colorReset)
	fmt.Printf("%s#   STRATEGY: %-42s#%s\n", color, cfg.Trading.Strategy, colorReset)
	fmt.Printf("%s#   VERSION:  %-42s#%s\n", color, cfg.App.Version, colorReset)
	if mode == "LIVE" {
		fmt.Printf("%s#   WARNING: ORDERS WILL REACH THE EXCHANGE            #%s\n", colorRed, colorReset)
	}
	fmt.Printf("%s#########################################################%s\n", color, colorReset)
	fmt.Println()
}

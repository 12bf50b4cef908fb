// FilePath: cmd/main.go
package main

import (
	"fmt"
	"os"

	tm "github.com/buger/goterm"
	"github.com/itsatony/sensordash/internal/config"
	"github.com/itsatony/sensordash/internal/server"
	nuts "github.com/vaudience/go-nuts"
)

func main() {
	ClearConsole()
	DrawLogo()
	nuts.InitVersion()
	nuts.L.Infof("[Main] Starting sensordash v%s", nuts.GetVersion())

	cfg, err := config.Load()
	if err != nil {
		nuts.L.Fatalf("[Main] Failed to load configuration: %v", err)
	}
	nuts.L.Infof("[Main] Refresh every %s, history %d points (%s mode)",
		cfg.Simulator.RefreshInterval, cfg.Simulator.HistoryPoints, cfg.Simulator.HistoryMode)

	srv := server.New(cfg)
	if err := srv.Start(); err != nil {
		nuts.L.Errorf("[Main] Server error: %v", err)
		os.Exit(1)
	}
}

// ClearConsole clears the console screen before the logo is drawn.
func ClearConsole() {
	tm.Clear()
	tm.MoveCursor(1, 1)
	tm.Flush()
}

func DrawLogo() {
	fmt.Println()
	lines := []string{
		"                              _           _     ",
		"  ___  ___ _ __  ___  ___  _ __| | __ _ ___| |__  ",
		" / __|/ _ \\ '_ \\/ __|/ _ \\| '__| |/ _` / __| '_ \\ ",
		" \\__ \\  __/ | | \\__ \\ (_) | | | | (_| \\__ \\ | | |",
		" |___/\\___|_| |_|___/\\___/|_| |_|\\__,_|___/_| |_|",
		"..................................................  " + nuts.GetVersion(),
	}

	for _, line := range lines {
		fmt.Println(line)
	}
}

package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sachen-pather/voltboard/internal/config"
	"github.com/sachen-pather/voltboard/internal/diag"
	"github.com/sachen-pather/voltboard/internal/session"
	"github.com/sachen-pather/voltboard/internal/tui"
	"github.com/sachen-pather/voltboard/pkg/client"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	startVerify := false
	verifyToken := ""

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "version", "-v":
			fmt.Println("voltboard " + version)
			return nil
		case "help", "--help", "-h":
			printHelp()
			return nil
		case "verify":
			// Token comes from the verification email; the account service
			// redeems it.
			startVerify = true
			if len(os.Args) > 2 {
				verifyToken = os.Args[2]
			}
		default:
			return fmt.Errorf("unknown command %q (try: voltboard help)", os.Args[1])
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := diag.Open(cfg.LogFile)

	sess := session.New(cfg.StateDir)
	sess.Subscribe(func() {
		logger.Info("session state changed", "authenticated", sess.Authenticated())
	})

	c := client.New(cfg.LoginBase, cfg.TelemetryBase, cfg.BearerToken)

	app := tui.NewApp(tui.Options{
		Client:      c,
		Session:     sess,
		Diag:        logger,
		DeviceID:    cfg.DefaultDeviceID,
		DataType:    cfg.DefaultDataType,
		StartVerify: startVerify,
		VerifyToken: verifyToken,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func printHelp() {
	fmt.Println(`voltboard — terminal dashboard for device telemetry

usage:
  voltboard                 launch the dashboard (sign in first if needed)
  voltboard verify <token>  redeem an email verification token
  voltboard version         print version
  voltboard help            this text

configuration (environment or .env):
  VOLTBOARD_LOGIN_BASE      account service base URL (required)
  VOLTBOARD_TELEMETRY_BASE  telemetry service base URL (required)
  VOLTBOARD_BEARER_TOKEN    bearer credential for both services
  VOLTBOARD_STATE_DIR       session state directory (default ~/.voltboard)
  VOLTBOARD_LOG_FILE        diagnostic log file
  VOLTBOARD_DEVICE_ID       dashboard device prefill (default battery-1)
  VOLTBOARD_DATA_TYPE       dashboard data type prefill (default voltage)`)
}

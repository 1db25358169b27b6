package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SeamusWaldron/twisty/internal/gocube"
	"github.com/SeamusWaldron/twisty/internal/tui"
)

var mirrorDevice string

var mirrorCmd = &cobra.Command{
	Use:   "mirror",
	Short: "Mirror a GoCube smart cube on screen",
	Long: `Connect to a GoCube over Bluetooth and replay every face turn on the
on-screen puzzle. Start with both cubes solved; 'r' resets the on-screen
puzzle and tells the cube it is solved.

Turns that arrive while the previous one is still animating are dropped and
counted in the status line. Lower mirror.duration if that happens often.`,
	RunE: runMirror,
}

func init() {
	mirrorCmd.Flags().StringVar(&mirrorDevice, "device", "", "Connect to the device with this name (default: first found)")
	rootCmd.AddCommand(mirrorCmd)
}

func pickDevice(results []gocube.ScanResult, name string) (gocube.ScanResult, bool) {
	if name == "" {
		return results[0], true
	}
	for _, r := range results {
		if strings.EqualFold(r.Name, name) {
			return r, true
		}
	}
	return gocube.ScanResult{}, false
}

func runMirror(cmd *cobra.Command, args []string) error {
	client, results, err := ScanForGoCube(cmd.Context())
	if err != nil {
		return err
	}
	if len(results) == 0 {
		printScanTips()
		return nil
	}

	target, ok := pickDevice(results, mirrorDevice)
	if !ok {
		return fmt.Errorf("device %q not found", mirrorDevice)
	}

	feed := make(chan []gocube.Rotation, 64)
	client.OnRotation(func(rots []gocube.Rotation) {
		select {
		case feed <- rots:
		default:
			logger.Warn("rotation feed full, dropping", zap.Int("turns", len(rots)))
		}
	})
	client.OnDisconnect(func() { logger.Warn("cube disconnected") })

	fmt.Printf("Connecting to %s...\n", target.Name)
	if err := client.Connect(cmd.Context(), target); err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer client.Disconnect()

	// Flash LED on connect (with slight delay for BLE stack to settle)
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := client.SendCommand(gocube.CmdFlashBacklight); err != nil {
			logger.Warn("flash command failed", zap.Error(err))
		}
	}()

	model := tui.New(tui.Options{
		Config:    cfg,
		Logger:    logger,
		Title:     "twisty mirror",
		Rotations: feed,
		Duration:  cfg.Mirror.Duration,
		Status: func() string {
			if !client.IsConnected() {
				return "disconnected"
			}
			status := client.DeviceName()
			if b := client.Battery(); b >= 0 {
				status += fmt.Sprintf(" (Battery: %d%%)", b)
			}
			return status
		},
		OnReset: func() {
			if err := client.SendCommand(gocube.CmdResetSolved); err != nil {
				logger.Warn("reset command failed", zap.Error(err))
			}
		},
	})
	return runProgram(model)
}

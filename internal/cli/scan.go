package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/twisty/internal/gocube"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List nearby GoCube devices",
	RunE:  runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

// ScanForGoCube scans once for ble.scan_timeout and returns the client used
// so the caller can connect without scanning again.
func ScanForGoCube(ctx context.Context) (*gocube.Client, []gocube.ScanResult, error) {
	fmt.Println("Scanning for GoCube devices...")

	client, err := gocube.NewClient(logger)
	if err != nil {
		return nil, nil, fmt.Errorf("BLE not available: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.BLE.ScanTimeout)
	defer cancel()

	results, err := client.Scan(ctx, cfg.BLE.ScanTimeout)
	if err != nil {
		return client, nil, err
	}
	return client, results, nil
}

func printScanTips() {
	fmt.Println("No GoCube devices found.")
	fmt.Println()
	fmt.Println("To fix this:")
	fmt.Println("  1. Rotate your cube to wake it up")
	fmt.Println("  2. Make sure it's not connected to your phone")
	fmt.Println("  3. Run this command again")
}

func runScan(cmd *cobra.Command, args []string) error {
	_, results, err := ScanForGoCube(cmd.Context())
	if err != nil {
		return err
	}

	if len(results) == 0 {
		printScanTips()
		return nil
	}

	fmt.Printf("Found %d device(s):\n", len(results))
	for _, r := range results {
		fmt.Printf("  - %s (address: %s, RSSI: %d)\n", r.Name, r.Address.String(), r.RSSI)
	}
	return nil
}

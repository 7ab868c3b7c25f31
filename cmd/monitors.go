package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/cursorfence/internal/desktop"
)

// DisplayInfo represents the display information output
type DisplayInfo struct {
	Monitors []MonitorInfo `json:"monitors"`
	Error    string        `json:"error,omitempty"`
}

// MonitorInfo represents information about a single monitor
type MonitorInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	X       int32  `json:"x"`
	Y       int32  `json:"y"`
	Width   int32  `json:"width"`
	Height  int32  `json:"height"`
	Primary bool   `json:"primary"`
}

var (
	jsonOutput bool
)

var monitorsCmd = &cobra.Command{
	Use:   "monitors",
	Short: "Show monitor configuration",
	Long:  `Display information about connected monitors and their configuration.`,
	RunE:  runMonitors,
}

func init() {
	monitorsCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.AddCommand(monitorsCmd)
}

func runMonitors(cmd *cobra.Command, args []string) error {
	backend, err := desktop.New()
	if err != nil {
		if jsonOutput {
			// Output error as JSON
			info := DisplayInfo{Error: err.Error()}
			return json.NewEncoder(os.Stdout).Encode(info)
		}
		return fmt.Errorf("failed to initialize desktop backend: %w", err)
	}
	defer backend.Close()

	monitors, err := backend.Monitors()
	if err != nil {
		if jsonOutput {
			info := DisplayInfo{Error: err.Error()}
			return json.NewEncoder(os.Stdout).Encode(info)
		}
		return fmt.Errorf("failed to enumerate displays: %w", err)
	}

	if jsonOutput {
		// Output JSON format for programmatic usage
		info := DisplayInfo{
			Monitors: make([]MonitorInfo, len(monitors)),
		}
		for i, mon := range monitors {
			info.Monitors[i] = MonitorInfo{
				ID:      mon.ID,
				Name:    mon.Name,
				X:       mon.Rect.Left,
				Y:       mon.Rect.Top,
				Width:   mon.Rect.Width(),
				Height:  mon.Rect.Height(),
				Primary: mon.Primary,
			}
		}
		return json.NewEncoder(os.Stdout).Encode(info)
	}

	// Human-readable format
	if len(monitors) == 0 {
		fmt.Println("No monitors detected")
		return nil
	}

	fmt.Printf("Detected %d monitor(s):\n\n", len(monitors))
	for _, mon := range monitors {
		fmt.Printf("  %s (%s): %dx%d at (%d,%d)", mon.Name, mon.ID,
			mon.Rect.Width(), mon.Rect.Height(), mon.Rect.Left, mon.Rect.Top)
		if mon.Primary {
			fmt.Print(" [PRIMARY]")
		}
		fmt.Println()
	}

	return nil
}

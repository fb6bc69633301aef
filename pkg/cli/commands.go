package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/schimen/photobooth/pkg/state"
	"github.com/schimen/photobooth/pkg/types"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the booth session ledger",
		Long:  `Display the booth status, session counts and the last montage produced.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus()
		},
	}
}

func newLayoutsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "layouts",
		Short: "List the supported image counts and their grid layouts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayouts()
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("📷 Photobooth v%s\n", version)
		},
	}
}

func runStatus() error {
	cfg, err := loadConfig(getConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	manager := state.NewManager(cfg.Booth.OutputDir, cfg.Booth.Name, nil)
	boothState, err := manager.Read()
	if err != nil {
		return fmt.Errorf("failed to read state: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "Booth:\t%s\n", boothState.BoothName)
	fmt.Fprintf(w, "Status:\t%s\n", boothState.Status)
	fmt.Fprintf(w, "Sessions:\t%d\n", boothState.SessionCount)
	fmt.Fprintf(w, "Failures:\t%d\n", boothState.FailureCount)
	if boothState.LastMontagePath != "" {
		fmt.Fprintf(w, "Last montage:\t%s\n", boothState.LastMontagePath)
	}
	if !boothState.LastSessionTime.IsZero() {
		fmt.Fprintf(w, "Last session:\t%s\n", boothState.LastSessionTime.Format(time.RFC1123))
	}
	if boothState.LastError != "" {
		fmt.Fprintf(w, "Last error:\t%s\n", boothState.LastError)
	}

	return nil
}

func runLayouts() error {
	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "IMAGES\tROWS\tCOLS")
	for _, count := range types.SupportedCounts() {
		layout, _ := types.LayoutForCount(count)
		fmt.Fprintf(w, "%d\t%d\t%d\n", count, layout.Rows, layout.Cols)
	}

	return nil
}

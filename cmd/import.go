package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/haierkeys/note-storage-engine/internal/domain"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <snapshot.json>",
	Short: "Replace all data with a snapshot file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		var snapshot domain.Snapshot
		if err := sonic.Unmarshal(data, &snapshot); err != nil {
			return err
		}

		ctx := context.Background()
		svc, err := openService(ctx)
		if err != nil {
			return err
		}
		defer svc.Close()

		if err := svc.Import(ctx, &snapshot); err != nil {
			return err
		}
		fmt.Printf("imported %d notes, %d categories, %d tags\n",
			len(snapshot.Notes), len(snapshot.Categories), len(snapshot.Tags))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}

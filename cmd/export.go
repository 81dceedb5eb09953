package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export [-o snapshot.json]",
	Short: "Export all data to a snapshot file",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		svc, err := openService(ctx)
		if err != nil {
			return err
		}
		defer svc.Close()

		snapshot, err := svc.Export(ctx)
		if err != nil {
			return err
		}
		data, err := sonic.MarshalIndent(snapshot, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(exportOutput, data, 0644); err != nil {
			return err
		}
		fmt.Printf("exported %d notes, %d categories, %d tags to %s\n",
			len(snapshot.Notes), len(snapshot.Categories), len(snapshot.Tags), exportOutput)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "snapshot.json", "output file path")
	rootCmd.AddCommand(exportCmd)
}

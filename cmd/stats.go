package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print dataset statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		svc, err := openService(ctx)
		if err != nil {
			return err
		}
		defer svc.Close()

		stats, err := svc.Statistics(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("backend:            %s\n", stats.StorageType)
		fmt.Printf("notes:              %d\n", stats.TotalNotes)
		fmt.Printf("  favorite:         %d\n", stats.FavoriteNotes)
		fmt.Printf("  archived:         %d\n", stats.ArchivedNotes)
		fmt.Printf("  with reminder:    %d\n", stats.NotesWithRemind)
		fmt.Printf("  overdue:          %d\n", stats.OverdueReminders)
		fmt.Printf("categories:         %d\n", stats.TotalCategories)
		fmt.Printf("tags:               %d\n", stats.TotalTags)
		fmt.Printf("avg content length: %.1f\n", stats.AvgContentLength)
		fmt.Printf("total words:        %d\n", stats.TotalWords)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

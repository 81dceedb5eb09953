// Package cmd implements the maintenance command line.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/haierkeys/note-storage-engine/global"
	"github.com/haierkeys/note-storage-engine/internal/service"

	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "note-storage-engine",
	Short: "Note Storage Engine",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "configuration file path")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// openService loads configuration, initializes logging and opens the
// configured backend behind the engine facade.
func openService(ctx context.Context) (service.NoteService, error) {
	var err error
	if configFile != "" {
		_, err = global.ConfigLoad(configFile)
	} else {
		_, err = global.ConfigDefault()
	}
	if err != nil {
		return nil, err
	}
	if err := global.LogInit(global.Config.Log); err != nil {
		return nil, err
	}

	store, err := service.OpenStore(global.Config.Server, global.Config.Database, global.Config.KV)
	if err != nil {
		return nil, err
	}
	return service.NewNoteService(ctx, store, service.NewZapObserver(global.Log()))
}

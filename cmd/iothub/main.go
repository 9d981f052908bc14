package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"iothub/internal/interfaces/cli/migrate"
	"iothub/internal/interfaces/cli/server"
)

func main() {
	root := &cobra.Command{
		Use:   "iothub",
		Short: "IoT device management backend",
	}

	root.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

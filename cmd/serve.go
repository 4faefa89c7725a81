package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	server "github.com/plazahq/plaza/internal"
)

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the plaza server",
	Args:  cobra.MaximumNArgs(0),
	Run:   runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServer(_ *cobra.Command, _ []string) {
	debug, host, port, logFile := viper.GetBool("debug"),
		viper.GetString("serve.host"),
		viper.GetInt("serve.port"),
		viper.GetString("serve.log-file")

	server.CreateAndListen(debug, host, port, logFile)
}

package cmd

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/plazahq/plaza/internal/services/plaza"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the floors available and who is online",
	Args:  cobra.MaximumNArgs(0),
	Run:   getStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func getStatus(_ *cobra.Command, _ []string) {
	server := viper.GetString("server")

	token, _, err := loadIdentity()
	if err != nil {
		log.Fatal(err)
	}

	client := plaza.NewClient("http://"+server, token)
	status, err := plaza.Status(client)
	if err != nil {
		log.Fatalf("error getting status: %v", err)
	}

	floors := "none yet"
	if len(status.Floors) > 0 {
		floors = strings.Join(status.Floors, ", ")
	}
	fmt.Printf("logged in as: %s\nfloors: %s\nonline: %d\n", status.Username, floors, status.Online)
}

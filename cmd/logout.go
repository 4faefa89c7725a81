package cmd

import (
	"log"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/plazahq/plaza/internal/creds"
	"github.com/plazahq/plaza/internal/services/plaza"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Revoke this client's session token",
	Args:  cobra.MaximumNArgs(0),
	Run:   logoutUser,
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

func logoutUser(_ *cobra.Command, _ []string) {
	server := viper.GetString("server")

	token, _, err := loadIdentity()
	if err != nil {
		log.Fatal(err)
	}

	client := plaza.NewClient("http://"+server, token)
	res, err := client.Post("/logout", "application/json", nil)
	if err != nil {
		log.Fatalf("error revoking token: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusNoContent {
		log.Printf("server refused revocation (%s), clearing local token anyway", res.Status)
	}

	store, err := creds.DefaultStore()
	if err != nil {
		log.Fatalf("error opening credential store: %v", err)
	}
	if err := store.ClearToken(); err != nil {
		log.Fatalf("error clearing token: %v", err)
	}
	_ = store.ClearProfile()
	log.Println("Logged out")
}

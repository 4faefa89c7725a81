package cmd

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/plazahq/plaza/internal/creds"
	"github.com/plazahq/plaza/internal/services/plaza"
)

var loginCmd = &cobra.Command{
	Use:   "login USERNAME PASSWORD",
	Short: "Log in and store a session token for this client",
	Args:  cobra.ExactArgs(2),
	Run:   loginUser,
}

func init() {
	rootCmd.AddCommand(loginCmd)
}

// profile is what login persists next to the token so later commands know
// who they are without another round trip.
type profile struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

func loginUser(_ *cobra.Command, args []string) {
	username, password := args[0], args[1]
	server := viper.GetString("server")

	client := plaza.NewClient("http://"+server, "")
	res, err := plaza.Login(client, username, password)
	if err != nil {
		log.Fatalf("error logging in: %v", err)
	}

	store, err := creds.DefaultStore()
	if err != nil {
		log.Fatalf("error opening credential store: %v", err)
	}
	if err := store.SetToken(res.Token); err != nil {
		log.Fatalf("error storing token: %v", err)
	}
	blob, _ := json.Marshal(profile{UserID: res.UserID, Username: res.Username})
	if err := store.SetProfile(string(blob)); err != nil {
		log.Fatalf("error storing profile: %v", err)
	}

	log.Printf("Logged in as %s", res.Username)
}

// loadIdentity reads the persisted token and profile; commands that talk to
// the floor require both.
func loadIdentity() (token string, p profile, err error) {
	store, err := creds.DefaultStore()
	if err != nil {
		return "", profile{}, fmt.Errorf("error opening credential store: %w", err)
	}
	token, err = store.Token()
	if err != nil {
		return "", profile{}, fmt.Errorf("not logged in, run `plaza login` first: %w", err)
	}
	blob, err := store.Profile()
	if err != nil {
		return "", profile{}, fmt.Errorf("no stored profile, run `plaza login` first: %w", err)
	}
	if err := json.Unmarshal([]byte(blob), &p); err != nil {
		return "", profile{}, fmt.Errorf("corrupt stored profile: %w", err)
	}
	return token, p, nil
}

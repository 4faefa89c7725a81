package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/plazahq/plaza/internal/services/plaza"
	"github.com/plazahq/plaza/internal/validation"
)

var registerCmd = &cobra.Command{
	Use:   "register USERNAME PASSWORD",
	Short: "Create a new account on the plaza server",
	Args:  cobra.ExactArgs(2),
	Run:   registerUser,
}

func init() {
	rootCmd.AddCommand(registerCmd)
}

func registerUser(_ *cobra.Command, args []string) {
	username, password := args[0], args[1]
	server := viper.GetString("server")

	if vErr := validation.ValidateUsername(username); vErr != nil {
		log.Fatalf("invalid username %s (%v)", username, vErr)
	}
	if vErr := validation.ValidatePassword(password); vErr != nil {
		log.Fatalf("invalid password (%v)", vErr)
	}

	client := plaza.NewClient("http://"+server, "")
	res, err := plaza.Register(client, username, password)
	if err != nil {
		log.Fatalf("error during registration: %v", err)
	}

	log.Printf("Registered username: %s. Now run `plaza login` to get a session token.", res.Username)
}

package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// loginCmd creates a new cobra.Command for logging into ServiceHub.
// It returns a pointer to the created cobra.Command.
func loginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to ServiceHub",
		Long:  "Login to ServiceHub using your account email and password",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println("Please enter your ServiceHub email and password.")
			email = promptForInput("Email: ")
			password = promptForPassword("Password: ")

			if !validateCredentials(email, password) {
				cmd.PrintErrln("Error: Email and password cannot be empty.")
				return
			}

			stack, err := newAPIStack()
			if err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			if err := stack.auth.Login(context.Background(), email, password); err != nil {
				log.Error().Err(err).Msg("Login failed")
				cmd.PrintErrln("Error:", describeError(err).Error())
				return
			}
			cmd.Println("Login was successful.")
		},
	}

	return cmd
}

// promptForInput prompts the user for input and returns the trimmed string.
// It takes a prompt string as an argument.
func promptForInput(prompt string) string {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print(prompt)
	input, err := reader.ReadString('\n')
	if err != nil {
		fmt.Println("Error: Failed to read input.")
		os.Exit(1)
	}
	return strings.TrimSpace(input)
}

// promptForPassword prompts the user for a password securely and returns the trimmed string.
// It takes a prompt string as an argument.
func promptForPassword(prompt string) string {
	fmt.Print(prompt)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		fmt.Println("Error: Failed to read password.")
		os.Exit(1)
	}
	fmt.Println() // Print a newline for better formatting
	return strings.TrimSpace(string(password))
}

// validateCredentials checks if the email and password are not empty.
func validateCredentials(email, password string) bool {
	return email != "" && password != ""
}

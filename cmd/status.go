package cmd

import (
	"context"

	"github.com/myservicehub/ServiceHub-sub004/gateway"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// statusCmd reports which sessions exist locally and who the user session
// belongs to.
func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current session status",
		Run: func(cmd *cobra.Command, args []string) {
			stack, err := newAPIStack()
			if err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}

			userIn, err := stack.auth.LoggedIn(gateway.ScopeUser)
			if err != nil {
				cmd.PrintErrln("Error: Failed to read the session store.")
				return
			}
			adminIn, err := stack.auth.LoggedIn(gateway.ScopeAdmin)
			if err != nil {
				cmd.PrintErrln("Error: Failed to read the session store.")
				return
			}

			if !userIn && !adminIn {
				cmd.Println("Not logged in.")
				return
			}

			if userIn {
				profile, err := stack.auth.Profile(context.Background())
				if err != nil {
					log.Error().Err(err).Msg("Failed to fetch the profile")
					cmd.Println("User session: present (profile unavailable)")
				} else {
					cmd.Printf("Logged in as %s (%s, role: %s)\n", profile.FullName, profile.Email, profile.Role)
				}
			}
			if adminIn {
				cmd.Println("Admin session: present")
			}
		},
	}
}

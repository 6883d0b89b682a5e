package cmd

import (
	"github.com/myservicehub/ServiceHub-sub004/gateway"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// logoutCmd ends the local user session. No server call is made; the
// stored tokens are simply discarded.
func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out of ServiceHub",
		Run: func(cmd *cobra.Command, args []string) {
			stack, err := newAPIStack()
			if err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			if err := stack.auth.Logout(gateway.ScopeUser); err != nil {
				log.Error().Err(err).Msg("Logout failed")
				cmd.PrintErrln("Error: Failed to log out.")
				return
			}
			cmd.Println("Logged out.")
		},
	}
}

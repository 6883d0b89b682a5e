package cmd

import (
	"context"
	"fmt"

	"github.com/myservicehub/ServiceHub-sub004/gateway"
	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// adminCmd groups the administrative commands. Admin sessions are held
// separately from user sessions and are never refreshed; when one expires
// the server rejects it and a new login is required.
func adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrative commands",
	}

	cmd.AddCommand(
		adminLoginCmd(),
		adminLogoutCmd(),
		adminUsersCmd(),
	)

	return cmd
}

func adminLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to the ServiceHub admin area",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println("Please enter your ServiceHub admin email and password.")
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
			if err := stack.auth.AdminLogin(context.Background(), email, password); err != nil {
				log.Error().Err(err).Msg("Admin login failed")
				cmd.PrintErrln("Error:", describeError(err).Error())
				return
			}
			cmd.Println("Admin login was successful.")
		},
	}

	return cmd
}

func adminLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the admin session",
		Run: func(cmd *cobra.Command, args []string) {
			stack, err := newAPIStack()
			if err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			if err := stack.auth.Logout(gateway.ScopeAdmin); err != nil {
				log.Error().Err(err).Msg("Admin logout failed")
				cmd.PrintErrln("Error: Failed to end the admin session.")
				return
			}
			cmd.Println("Admin session cleared.")
		},
	}
}

// adminUsersCmd lists the platform's user accounts. Requires an admin session.
func adminUsersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List user accounts",
		Run: func(cmd *cobra.Command, args []string) {
			stack, err := newAPIStack()
			if err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}

			users, err := stack.api.AdminUsers(context.Background())
			if err != nil {
				log.Error().Err(err).Msg("Failed to list accounts")
				cmd.PrintErrln("Error:", describeError(err).Error())
				return
			}
			if len(users) == 0 {
				cmd.Println("No accounts found.")
				return
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"ID", "Email", "Name", "Role", "Active"})
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
			table.SetAutoWrapText(false)
			table.SetRowLine(false)

			for _, user := range users {
				table.Append([]string{
					fmt.Sprintf("%d", user.ID),
					user.Email,
					user.FullName,
					user.Role,
					fmt.Sprintf("%t", user.IsActive),
				})
			}

			table.Render()
		},
	}
}

package app

import (
	"github.com/spf13/cobra"

	"github.com/mattiajb/library-management-system-sub000/internal/cmd/output"
	"github.com/mattiajb/library-management-system-sub000/pkg/archive"
)

// NewUsersCommand creates the users command with its subcommands.
func (a *App) NewUsersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage registered users",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(a.newUsersListCommand())
	cmd.AddCommand(a.newUsersAddCommand())
	cmd.AddCommand(a.newUsersRemoveCommand())
	cmd.AddCommand(a.newUsersSearchCommand())

	return cmd
}

func (a *App) newUsersListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all registered users",
		RunE: func(cmd *cobra.Command, _ []string) error {
			lib, err := a.Library()
			if err != nil {
				return err
			}

			users, err := lib.Users().UsersSortedByLastName()
			if err != nil {
				return err
			}

			return a.print(cmd, userTable(users))
		},
	}
}

func (a *App) newUsersAddCommand() *cobra.Command {
	var (
		firstName string
		lastName  string
		email     string
		code      string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			lib, err := a.Library()
			if err != nil {
				return err
			}

			user := archive.NewUser(firstName, lastName, email, code)
			if err := lib.Users().AddUser(user); err != nil {
				return err
			}

			cmd.Printf("Registered %s %s (%s)\n", user.FirstName, user.LastName, user.Code)
			return nil
		},
	}

	cmd.Flags().StringVar(&firstName, "first-name", "", "first name (required)")
	cmd.Flags().StringVar(&lastName, "last-name", "", "last name (required)")
	cmd.Flags().StringVar(&email, "email", "", "institutional email (required)")
	cmd.Flags().StringVar(&code, "code", "", "user code (required)")

	return cmd
}

func (a *App) newUsersRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <code>",
		Short: "Remove a registered user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := a.Library()
			if err != nil {
				return err
			}

			if err := lib.Users().RemoveUser(&archive.User{Code: args[0]}); err != nil {
				return err
			}

			cmd.Printf("Removed %s\n", args[0])
			return nil
		},
	}
}

func (a *App) newUsersSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search users by name, email or code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := a.Library()
			if err != nil {
				return err
			}

			users, err := lib.Users().SearchUsers(args[0])
			if err != nil {
				return err
			}

			return a.print(cmd, userTable(users))
		},
	}
}

func userTable(users []*archive.User) output.Data {
	data := output.Data{
		Headers: []string{"Code", "Last Name", "First Name", "Email"},
	}
	for _, user := range users {
		data.Rows = append(data.Rows, []string{
			user.Code,
			user.LastName,
			user.FirstName,
			user.Email,
		})
	}
	return data
}

package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"invoicebook/internal/database"
	"invoicebook/internal/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage login accounts",
}

var (
	userName     string
	userPassword string
	userRole     string
)

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an account",
	Long: `Create an account. Usage:

	invoicebook user create --username jana --password secret --role accountant
`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		role, err := models.ParseUserRole(userRole)
		if err != nil {
			return err
		}

		a, err := bootstrap()
		if err != nil {
			return err
		}
		defer a.close()

		user, err := a.users.Create(cmd.Context(), userName, userPassword, role)
		if errors.Is(err, database.ErrConflict) {
			return fmt.Errorf("user %q already exists", userName)
		}
		if err != nil {
			return err
		}
		a.log.Info("user created", zap.Uint("user_id", user.ID), zap.String("username", user.Username), zap.String("role", string(user.Role)))
		return nil
	},
}

var userPasswdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Set a new password for an account",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}
		defer a.close()

		user, err := a.users.GetByUsername(cmd.Context(), userName)
		if errors.Is(err, database.ErrNotFound) {
			return fmt.Errorf("user %q not found", userName)
		}
		if err != nil {
			return err
		}
		if err := a.users.ChangePassword(cmd.Context(), user.ID, userPassword); err != nil {
			return err
		}
		a.log.Info("password changed", zap.Uint("user_id", user.ID))
		return nil
	},
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}
		defer a.close()

		users, err := a.users.List(cmd.Context())
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tUSERNAME\tROLE\tCREATED")
		for _, u := range users {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", u.ID, u.Username, u.Role, u.CreatedAt.Format("2006-01-02 15:04"))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userCreateCmd, userPasswdCmd, userListCmd)

	userCreateCmd.Flags().StringVar(&userName, "username", "", "login name")
	userCreateCmd.Flags().StringVar(&userPassword, "password", "", "initial password")
	userCreateCmd.Flags().StringVar(&userRole, "role", string(models.RoleAccountant), "owner or accountant")
	_ = userCreateCmd.MarkFlagRequired("username")
	_ = userCreateCmd.MarkFlagRequired("password")

	userPasswdCmd.Flags().StringVar(&userName, "username", "", "login name")
	userPasswdCmd.Flags().StringVar(&userPassword, "password", "", "new password")
	_ = userPasswdCmd.MarkFlagRequired("username")
	_ = userPasswdCmd.MarkFlagRequired("password")
}

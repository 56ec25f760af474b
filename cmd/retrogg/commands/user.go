package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/marmos91/retrogg/internal/cli/output"
	"github.com/marmos91/retrogg/internal/cli/prompt"
	"github.com/marmos91/retrogg/pkg/config"
	"github.com/marmos91/retrogg/pkg/models"
	"github.com/marmos91/retrogg/pkg/store"
	"github.com/spf13/cobra"
)

var (
	userAddEmail    string
	userAddName     string
	userAddPassword string
	userAddUIN      uint32
	userDeleteForce bool
	userListOutput  string
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage messaging accounts",
	Long: `Manage Gadu-Gadu accounts directly in the server database.

Accounts can also be created by clients through the registration endpoint;
these commands exist for administration and for setting up accounts without
going through the captcha flow.

The server does not need to be running.`,
}

var userAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a new account",
	Long: `Create a new messaging account.

The UIN (the Gadu-Gadu user number) is drawn at random from the public pool
unless --uin is given. The password is stored as entered: the 6.0 login
handshake requires the server to recompute a seed-keyed hash from the
plaintext on every connection.

Examples:
  # Interactive (prompts for email and password)
  retrogg user add

  # Non-interactive
  retrogg user add --email alice@example.com --password s3cret

  # Pick a specific number
  retrogg user add --email alice@example.com --uin 1000`,
	RunE: runUserAdd,
}

var userListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all accounts",
	RunE:    runUserList,
}

var userDeleteCmd = &cobra.Command{
	Use:     "delete <uin>",
	Aliases: []string{"remove"},
	Short:   "Delete an account",
	Long: `Delete a messaging account by UIN.

Queued messages addressed to the account are kept until the retention
sweeper removes them.`,
	Args: cobra.ExactArgs(1),
	RunE: runUserDelete,
}

var userPasswdCmd = &cobra.Command{
	Use:     "passwd <uin>",
	Aliases: []string{"password"},
	Short:   "Change an account password",
	Args:    cobra.ExactArgs(1),
	RunE:    runUserPasswd,
}

func init() {
	userAddCmd.Flags().StringVar(&userAddEmail, "email", "", "Account email (prompted if not given)")
	userAddCmd.Flags().StringVar(&userAddName, "name", "", "Display name (default: email local part)")
	userAddCmd.Flags().StringVar(&userAddPassword, "password", "", "Account password (prompted if not given)")
	userAddCmd.Flags().Uint32Var(&userAddUIN, "uin", 0, "Specific UIN to assign (default: random from the public pool)")

	userDeleteCmd.Flags().BoolVarP(&userDeleteForce, "force", "f", false, "Skip confirmation prompt")
	userListCmd.Flags().StringVarP(&userListOutput, "output", "o", "table", "Output format (table|json|yaml)")

	userCmd.AddCommand(userAddCmd)
	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userDeleteCmd)
	userCmd.AddCommand(userPasswdCmd)
}

// openStore loads the configuration and opens the backing database.
func openStore() (*store.GORMStore, error) {
	cfg, err := config.Load(GetConfigFile())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	st, err := store.New(&store.Config{DSN: cfg.DB})
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return st, nil
}

// parseUIN parses a UIN command argument.
func parseUIN(arg string) (uint32, error) {
	uin, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid UIN %q: must be a number", arg)
	}
	return uint32(uin), nil
}

var emailValidator = validator.New()

func validateEmail(email string) error {
	if err := emailValidator.Var(email, "required,email"); err != nil {
		return fmt.Errorf("not a valid email address")
	}
	return nil
}

func runUserAdd(cmd *cobra.Command, args []string) error {
	email := userAddEmail
	if email == "" {
		var err error
		email, err = prompt.InputWithValidation("Email", validateEmail)
		if err != nil {
			return err
		}
	} else if err := validateEmail(email); err != nil {
		return fmt.Errorf("invalid --email: %w", err)
	}

	password := userAddPassword
	if password == "" {
		var err error
		password, err = prompt.PasswordWithConfirmation("Password", "Confirm password", 1)
		if err != nil {
			return err
		}
	}

	name := userAddName
	if name == "" {
		name = email
		if at := strings.Index(email, "@"); at > 0 {
			name = email[:at]
		}
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uin, err := st.CreateUser(ctx, &models.User{
		UIN:      userAddUIN,
		Name:     name,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	fmt.Printf("Account created\n")
	fmt.Printf("  UIN:    %d\n", uin)
	fmt.Printf("  Email:  %s\n", email)
	fmt.Printf("  Name:   %s\n", name)
	return nil
}

func runUserList(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(userListOutput)
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	users, err := st.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to list accounts: %w", err)
	}

	switch format {
	case output.FormatJSON:
		return output.PrintJSON(os.Stdout, users)
	case output.FormatYAML:
		return output.PrintYAML(os.Stdout, users)
	default:
		table := output.NewTableData("UIN", "NAME", "EMAIL", "CREATED")
		for _, u := range users {
			table.AddRow(
				strconv.FormatUint(uint64(u.UIN), 10),
				u.Name,
				u.Email,
				u.CreatedAt.Local().Format("2006-01-02 15:04"),
			)
		}
		return output.PrintTable(os.Stdout, table)
	}
}

func runUserDelete(cmd *cobra.Command, args []string) error {
	uin, err := parseUIN(args[0])
	if err != nil {
		return err
	}

	ok, err := prompt.ConfirmWithForce(fmt.Sprintf("Delete account %d?", uin), userDeleteForce)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Aborted")
		return nil
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := st.DeleteUser(ctx, uin); err != nil {
		return fmt.Errorf("failed to delete account %d: %w", uin, err)
	}

	fmt.Printf("Account %d deleted\n", uin)
	return nil
}

func runUserPasswd(cmd *cobra.Command, args []string) error {
	uin, err := parseUIN(args[0])
	if err != nil {
		return err
	}

	password, err := prompt.PasswordWithConfirmation("New password", "Confirm password", 1)
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := st.UpdatePassword(ctx, uin, password); err != nil {
		return fmt.Errorf("failed to change password for %d: %w", uin, err)
	}

	fmt.Printf("Password changed for account %d\n", uin)
	return nil
}

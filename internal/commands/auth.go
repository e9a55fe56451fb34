package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	emailFlag string
	nameFlag  string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to your PlantDoc account",
	Long: `Log in with your email and password. The session is persisted
under ~/.plantdoc and reused by later commands until you log out.`,
	RunE: runLogin,
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create a PlantDoc account",
	RunE:  runSignup,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and forget the stored session",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in account",
	RunE:  runWhoami,
}

func init() {
	loginCmd.Flags().StringVarP(&emailFlag, "email", "e", "", "Account email (prompted if omitted)")
	signupCmd.Flags().StringVarP(&emailFlag, "email", "e", "", "Account email (prompted if omitted)")
	signupCmd.Flags().StringVarP(&nameFlag, "name", "n", "", "Display name (prompted if omitted)")
}

// promptLine reads one trimmed line from stdin.
func promptLine(label string) (string, error) {
	fmt.Fprintf(os.Stderr, "%s: ", label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a password without echoing it.
func promptPassword(label string) (string, error) {
	fmt.Fprintf(os.Stderr, "%s: ", label)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(password), nil
}

func runLogin(cmd *cobra.Command, args []string) error {
	email := emailFlag
	if email == "" {
		var err error
		if email, err = promptLine("Email"); err != nil {
			return err
		}
	}
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}

	password, err := promptPassword("Password")
	if err != nil {
		return err
	}

	deps, err := NewDependencies()
	if err != nil {
		return err
	}

	spin := newSpinner("Logging in")
	spin.start()

	ok, message := deps.Session.Login(email, password)
	if !ok {
		spin.stopWithError()
		fmt.Fprintln(os.Stderr, formatErrorMessage(fmt.Errorf("%s", message), "Login failed"))
		return fmt.Errorf("login failed")
	}

	principal, _ := deps.Session.Current()
	spin.stopWithSuccess(fmt.Sprintf("Logged in as %s", principal.DisplayName))
	return nil
}

func runSignup(cmd *cobra.Command, args []string) error {
	email := emailFlag
	if email == "" {
		var err error
		if email, err = promptLine("Email"); err != nil {
			return err
		}
	}
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}

	name := nameFlag
	if name == "" {
		var err error
		if name, err = promptLine("Display name"); err != nil {
			return err
		}
	}

	password, err := promptPassword("Password")
	if err != nil {
		return err
	}

	deps, err := NewDependencies()
	if err != nil {
		return err
	}

	spin := newSpinner("Creating account")
	spin.start()

	ok, message := deps.Session.Signup(email, password, name)
	if !ok {
		spin.stopWithError()
		fmt.Fprintln(os.Stderr, formatErrorMessage(fmt.Errorf("%s", message), "Signup failed"))
		return fmt.Errorf("signup failed")
	}

	principal, _ := deps.Session.Current()
	spin.stopWithSuccess(fmt.Sprintf("Welcome, %s", principal.DisplayName))
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	deps, err := NewDependencies()
	if err != nil {
		return err
	}

	deps.Session.Logout()
	fmt.Println("Logged out.")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	deps, err := NewDependencies()
	if err != nil {
		return err
	}

	principal, ok := deps.Session.Current()
	if !ok {
		fmt.Println("Not logged in.")
		return nil
	}

	nameStyle := lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	fmt.Printf("%s <%s>\n", nameStyle.Render(principal.DisplayName), principal.Email)
	return nil
}

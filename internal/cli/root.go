package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/portfolio/portfolio-api/internal/adminclient"
)

const userAgent = "portfolioctl/1.0"

// app carries the state shared by all commands of one invocation
type app struct {
	in  *bufio.Reader
	out io.Writer

	sessionPath string
	server      string
	timeout     time.Duration

	session *adminclient.Session
	client  *adminclient.Client
}

// NewRootCommand builds the portfolioctl command tree reading prompts from
// in and writing to out.
func NewRootCommand(in io.Reader, out io.Writer) *cobra.Command {
	a := &app{in: bufio.NewReader(in), out: out}

	root := &cobra.Command{
		Use:   "portfolioctl",
		Short: "Manage portfolio content from the terminal",
		Long: formatTitle("portfolioctl") + " - admin console for the portfolio API\n\n" +
			"Log in once with 'portfolioctl login'; the password is kept in a session file\n" +
			"and sent with every admin request.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(out)

	root.PersistentFlags().StringVar(&a.sessionPath, "session", "", "session file (default $XDG_CONFIG_HOME/portfolioctl/session.yaml)")
	root.PersistentFlags().StringVar(&a.server, "server", "", "API base URL, saved into the session")
	root.PersistentFlags().DurationVar(&a.timeout, "timeout", 30*time.Second, "request timeout")

	root.AddCommand(
		a.loginCmd(),
		a.logoutCmd(),
		a.messagesCmd(),
		a.projectsCmd(),
		a.videosCmd(),
		a.heroCmd(),
		a.resumeCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	path := a.sessionPath
	if path == "" {
		p, err := adminclient.DefaultSessionPath()
		if err != nil {
			return err
		}
		path = p
	}

	session, err := adminclient.LoadSession(path)
	if err != nil {
		return err
	}
	if a.server != "" {
		session.BaseURL = strings.TrimRight(a.server, "/")
	}

	a.session = session
	a.client = adminclient.NewClient(session, a.timeout, userAgent)
	return nil
}

// withAuth runs fn, prompting for the password first when none is saved.
// On ErrUnauthorized the session is already cleared; the user is prompted
// once more and fn retried.
func (a *app) withAuth(ctx context.Context, fn func(ctx context.Context) error) error {
	if a.session.Password == "" {
		if err := a.promptPassword(); err != nil {
			return err
		}
	}

	err := fn(ctx)
	if !errors.Is(err, adminclient.ErrUnauthorized) {
		return err
	}

	fmt.Fprintln(a.out, formatWarning("Password rejected, session cleared"))
	if err := a.promptPassword(); err != nil {
		return err
	}
	return fn(ctx)
}

func (a *app) promptPassword() error {
	fmt.Fprint(a.out, "Admin password: ")
	line, err := a.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return fmt.Errorf("failed to read password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return errors.New("password must not be empty")
	}
	a.session.Password = password
	return a.session.Save()
}

func (a *app) success(msg string) {
	fmt.Fprintln(a.out, formatSuccess(msg))
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := parseID(arg)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

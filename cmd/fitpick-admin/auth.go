package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	domainauth "github.com/fitpick/admin-gateway/internal/domain/auth"
	"github.com/fitpick/admin-gateway/internal/service"
)

type loginOptions struct {
	Email    string
	Remember bool
}

func parseLoginFlags(args []string) (loginOptions, error) {
	var opts loginOptions
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.StringVar(&opts.Email, "email", "", "admin email (prompted when omitted)")
	fs.BoolVar(&opts.Remember, "remember", false, "keep the session across gateway restarts")
	if err := fs.Parse(args); err != nil {
		return loginOptions{}, err
	}
	return opts, nil
}

func runLogin(cmdCtx *commandContext, args []string) error {
	opts, err := parseLoginFlags(args)
	if err != nil {
		return err
	}

	state, err := loadState()
	if err != nil {
		return err
	}
	clientID, err := ensureClientID(&state)
	if err != nil {
		return err
	}

	reader := bufio.NewReader(os.Stdin)
	email := opts.Email
	if email == "" {
		email, err = prompt(reader, "Email: ")
		if err != nil {
			return err
		}
	}
	password, err := prompt(reader, "Password: ")
	if err != nil {
		return err
	}

	infra, err := connectInfra(cmdCtx)
	if err != nil {
		return err
	}
	defer closeInfra(cmdCtx, infra)

	sess, err := infra.Auth.Login(cmdCtx.Ctx, service.LoginInput{
		Email:      email,
		Password:   password,
		RememberMe: opts.Remember,
		ClientID:   clientID,
	})
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	state.SessionID = sess.ID
	if err := saveState(state); err != nil {
		return err
	}

	return writef(os.Stdout, "Signed in as %s (%s), session valid until %s\n",
		sess.Profile.Name, sess.Profile.Email, sess.ExpiresAt.Format(time.RFC3339))
}

type logoutOptions struct {
	Forget bool
}

func runLogout(cmdCtx *commandContext, args []string) error {
	var opts logoutOptions
	fs := flag.NewFlagSet("logout", flag.ContinueOnError)
	fs.BoolVar(&opts.Forget, "forget", false, "also clear the remembered identity")
	if err := fs.Parse(args); err != nil {
		return err
	}

	state, err := loadState()
	if err != nil {
		return err
	}
	if state.SessionID == "" && !opts.Forget {
		return writef(os.Stdout, "No stored session.\n")
	}

	infra, err := connectInfra(cmdCtx)
	if err != nil {
		return err
	}
	defer closeInfra(cmdCtx, infra)

	if err := infra.Auth.Logout(cmdCtx.Ctx, service.LogoutInput{
		SessionID:       state.SessionID,
		ClientID:        state.ClientID,
		ClearRemembered: opts.Forget,
	}); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	if err := clearSessionState(); err != nil {
		return err
	}
	return writef(os.Stdout, "Signed out.\n")
}

func runWhoami(cmdCtx *commandContext, args []string) error {
	if len(args) > 0 {
		return errors.New("whoami takes no arguments")
	}

	infra, err := connectInfra(cmdCtx)
	if err != nil {
		return err
	}
	defer closeInfra(cmdCtx, infra)

	sess, err := currentSession(cmdCtx, infra)
	if err != nil {
		return err
	}

	// Read the live profile rather than the login-time snapshot.
	profile, err := infra.Backend.WithToken(sess.AccessToken).Auth().Profile(cmdCtx.Ctx)
	if err != nil {
		return fmt.Errorf("fetch profile: %w", err)
	}

	tier := "scoped"
	if sess.Remembered {
		tier = "persistent"
	}
	return writef(os.Stdout, "%s <%s>\nrole: %d\nsession: %s (%s tier, expires %s)\n",
		profile.Name, profile.Email, profile.RoleID,
		sess.ID, tier, sess.ExpiresAt.Format(time.RFC3339))
}

// currentSession resolves the stored session, refreshing it first when it
// is inside the refresh window.
func currentSession(cmdCtx *commandContext, infra *cliInfra) (*domainauth.Session, error) {
	state, err := loadState()
	if err != nil {
		return nil, err
	}
	if state.SessionID == "" {
		return nil, errors.New("not signed in, run `fitpick-admin login` first")
	}

	sess, err := infra.Auth.GetSession(cmdCtx.Ctx, state.SessionID)
	if err != nil {
		return nil, fmt.Errorf("resolve session: %w", err)
	}

	if infra.Auth.ShouldRefresh(sess) {
		refreshed, refreshErr := infra.Auth.Refresh(cmdCtx.Ctx, sess.ID)
		if refreshErr != nil {
			return nil, fmt.Errorf("refresh session: %w", refreshErr)
		}
		sess = refreshed
	}
	return sess, nil
}

func closeInfra(cmdCtx *commandContext, infra *cliInfra) {
	if err := infra.Close(); err != nil {
		cmdCtx.Logger.Warn("close infra failed", "error", err)
	}
}

func prompt(reader *bufio.Reader, label string) (string, error) {
	if err := writef(os.Stdout, "%s", label); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

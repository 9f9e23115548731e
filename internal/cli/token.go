package cli

import (
	"fmt"
	"io"
	"time"

	"storefront/internal/infra/auth"
	"storefront/internal/infra/identity"
	"storefront/internal/util"

	"github.com/spf13/cobra"
)

// TokenOptions holds flags for the token command.
type TokenOptions struct {
	*RootOptions
	Subject string
}

// TokenResult is the output of the token command.
type TokenResult struct {
	Token     string    `json:"token"`
	Subject   string    `json:"subject"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewTokenCommand creates the token command.
func NewTokenCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TokenOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an operator token",
		Long: `Issue a bearer token for the operator endpoints of the storefront API.

The token is signed with operator.secret from the config and expires after
operator.tokenTtl.

Examples:
  storectl token --subject alice
  curl -H "Authorization: Bearer $(storectl token --subject alice)" ...`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToken(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Subject, "subject", "s", "", "operator name recorded in the token (required)")
	_ = cmd.MarkFlagRequired("subject")

	return cmd
}

func runToken(opts *TokenOptions, cmd *cobra.Command) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}

	tokens := auth.NewJWTService(cfg)
	if !tokens.Enabled() {
		return NewExitError(ExitCommandError, "operator.secret is not configured; operator endpoints are open")
	}

	token, err := tokens.IssueOperatorToken(opts.Subject)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to issue token", err)
	}

	claims, err := tokens.ValidateOperatorToken(token)
	if err != nil {
		return WrapExitError(ExitCommandError, "issued token does not validate", err)
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	result := TokenResult{Token: token, Subject: claims.Subject, ExpiresAt: claims.ExpiresAt}

	return out.Success(result, func(w io.Writer) error {
		// Only the token goes to stdout so it can be captured by scripts
		fmt.Fprintf(cmd.ErrOrStderr(), "Operator token for %s, valid for %s\n",
			claims.Subject, util.FormatDuration(time.Until(claims.ExpiresAt)))

		_, err := fmt.Fprintln(w, token)

		return err
	})
}

// NewIdentityCommand creates the identity command.
func NewIdentityCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "identity",
		Short:         "Print this machine's rating identity, creating it if needed",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIdentity(rootOpts, cmd)
		},
	}
}

func runIdentity(opts *RootOptions, cmd *cobra.Command) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}

	ctx, cancel := opts.commandContext(cmd)
	defer cancel()

	logger, err := opts.newLogger(cmd, cfg)
	if err != nil {
		return err
	}

	id, err := identity.NewFileProvider(cfg, logger).GetOrCreateIdentity(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load identity", err)
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	return out.Success(map[string]string{"identity": id.String()}, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, id)

		return err
	})
}

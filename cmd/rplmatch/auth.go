package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/rplmatch/internal/cli"
	"github.com/Veraticus/rplmatch/internal/common"
	"github.com/Veraticus/rplmatch/internal/config"
	"github.com/Veraticus/rplmatch/internal/sheets"
)

func authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authenticate with external services",
		Long:  `Authenticate with external services like Google Sheets.`,
	}

	cmd.AddCommand(authSheetsCmd())

	return cmd
}

func authSheetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "Authenticate with Google Sheets",
		Long: `Authenticate with Google Sheets using OAuth2.

This command will:
1. Print a Google consent URL to open in your browser
2. Wait for the redirect on a local callback server
3. Save the token so "match --sheets" can use it

You'll need to run this once to set up Google Sheets integration.`,
		RunE: runAuthSheets,
	}

	cmd.Flags().String("client-id", "", "OAuth2 Client ID (overrides config)")
	cmd.Flags().String("client-secret", "", "OAuth2 Client Secret (overrides config)")
	cmd.Flags().String("callback", sheets.DefaultCallbackAddr, "host:port for the local OAuth2 callback")
	cmd.Flags().Bool("force", false, "re-authenticate even if a saved token exists")

	return cmd
}

func runAuthSheets(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	// Get OAuth2 config
	clientID := viper.GetString("sheets.client_id")
	clientSecret := viper.GetString("sheets.client_secret")

	// Override with flags if provided
	if flagID, _ := cmd.Flags().GetString("client-id"); flagID != "" {
		clientID = flagID
	}
	if flagSecret, _ := cmd.Flags().GetString("client-secret"); flagSecret != "" {
		clientSecret = flagSecret
	}

	// Check for environment variables as fallback
	if clientID == "" {
		clientID = os.Getenv("GOOGLE_SHEETS_CLIENT_ID")
	}
	if clientSecret == "" {
		clientSecret = os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET")
	}

	if clientID == "" || clientSecret == "" {
		return common.NewUserError(
			"OAuth2 credentials not found. Set sheets.client_id and sheets.client_secret in config or use --client-id and --client-secret",
			common.ErrMissingConfig)
	}

	callback, _ := cmd.Flags().GetString("callback")
	force, _ := cmd.Flags().GetBool("force")

	oauthCfg := sheets.OAuth2Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenFile:    config.ExpandPath(viper.GetString("sheets.token_file")),
		CallbackAddr: callback,
	}

	slog.Info("Starting Google Sheets authentication", "token_file", oauthCfg.TokenFile)

	return authenticateSheets(ctx, cmd.OutOrStdout(), oauthCfg, force)
}

func authenticateSheets(ctx context.Context, w io.Writer, oauthCfg sheets.OAuth2Config, force bool) error {
	announce := func(authURL string) {
		fmt.Fprintln(w, cli.FormatPrompt("Open this URL in your browser to authorize rplmatch"))
		fmt.Fprintln(w, authURL)
	}

	var err error
	if force {
		_, err = sheets.AuthenticateOAuth2Interactive(ctx, oauthCfg, announce)
	} else {
		_, err = sheets.GetOrCreateToken(ctx, oauthCfg, announce)
	}
	if err != nil {
		return common.NewUserError("authentication failed", err)
	}

	fmt.Fprintln(w, cli.FormatSuccess("Google Sheets is now configured and ready to use."))
	_, err = fmt.Fprintln(w, cli.FormatInfo("Run 'rplmatch match --sheets <file>' to publish results."))
	return err
}

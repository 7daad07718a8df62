package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/fetchkit/logger"
	"github.com/kbukum/fetchkit/mockserver"
)

var (
	signSub  string
	signRole string
	signJSON bool
)

var signCmd = &cobra.Command{
	Use:   "sign",
	Short: "Print a bearer token accepted by the /auth routes",
	Example: `  mockserver sign
  mockserver sign --sub alice --role reader --json`,
	Args: cobra.NoArgs,
	RunE: runSign,
}

func init() {
	signCmd.Flags().StringVar(&signSub, "sub", "", "token subject (default: default_subject)")
	signCmd.Flags().StringVar(&signRole, "role", "", "token role (default: default_role)")
	signCmd.Flags().BoolVar(&signJSON, "json", false, "print the full /sign response as JSON")
}

func runSign(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Logging.Level = "error"
	mock, err := mockserver.New(*cfg, logger.New(&cfg.Logging, cfg.Name))
	if err != nil {
		return err
	}

	token, claims, err := mock.Token(signSub, signRole)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if !signJSON {
		fmt.Fprintln(out, token)
		return nil
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(mockserver.SignResponse{
		Token: token,
		Sub:   claims.Subject,
		Role:  claims.Role,
		Exp:   claims.Exp(),
	})
}

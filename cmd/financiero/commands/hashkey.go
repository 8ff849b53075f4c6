package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yourorg/financiero/internal/auth"
)

var algorithm string

// hash-key [raw]: hash an API key, generating one when none is given.
func hashKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hash-key [raw-key]",
		Short: "Print the API_KEY_HASH value for a key (generates a key when omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := auth.LoadConfig()
			if algorithm != "" {
				cfg.APIKeyHashAlgorithm = algorithm
			}

			out := cmd.OutOrStdout()
			var rawKey string
			if len(args) == 1 {
				rawKey = args[0]
			} else {
				key, _, err := auth.GenerateAPIKey()
				if err != nil {
					return err
				}
				rawKey = key
				fmt.Fprintf(out, "API key (shown once): %s\n", rawKey)
			}

			hash, err := auth.HashKey(rawKey, cfg)
			if err != nil {
				return fmt.Errorf("%w: keys start with %q", err, auth.KeyPrefix)
			}
			fmt.Fprintf(out, "API_KEY_HASH=%s\n", hash)
			return nil
		},
	}
	cmd.Flags().StringVar(&algorithm, "algorithm", "", "bcrypt or argon2 (env AUTH_HASH_ALGORITHM)")
	return cmd
}

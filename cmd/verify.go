package cmd

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/licensex-io/licensex/api/license"
)

func newVerifyCmd() *cobra.Command {
	var (
		envelopeFile string
		jwk          string
		jwkFile      string
	)

	verify := &cobra.Command{
		Use:   "verify",
		Short: "Verify a signed license envelope",
		Long: `Verify a signed license envelope against the issuer public key and
print the license that was actually signed. Pass "-" to read the envelope
from stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var key []byte
			switch {
			case jwk != "":
				key = []byte(jwk)
			case jwkFile != "":
				b, err := os.ReadFile(jwkFile)
				if err != nil {
					return errors.Wrap(err, "could not read public key")
				}
				key = b
			default:
				return errors.New("either --jwk or --jwk-file is required")
			}

			var envelope []byte
			if envelopeFile == "-" {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return errors.Wrap(err, "could not read envelope")
				}
				envelope = b
			} else {
				b, err := os.ReadFile(envelopeFile)
				if err != nil {
					return errors.Wrap(err, "could not read envelope")
				}
				envelope = b
			}

			verifier, err := license.NewVerifier(key)
			if err != nil {
				return err
			}

			lic, err := verifier.Verify(envelope)
			if err != nil {
				return err
			}

			cmd.Println(lic.String())
			return nil
		},
	}

	verify.Flags().StringVarP(&envelopeFile, "file", "f", "-", "The license envelope filename")
	verify.Flags().StringVarP(&jwk, "jwk", "", "", "The issuer public key as an inline JWK document")
	verify.Flags().StringVarP(&jwkFile, "jwk-file", "", "", "The issuer public key filename")

	return verify
}

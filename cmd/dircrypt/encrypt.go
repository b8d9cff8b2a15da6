package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/GabeHardgrave/dircrypt/internal/crypto"
	"github.com/GabeHardgrave/dircrypt/internal/password"
)

var encryptCmd = &cobra.Command{
	Use:     "encrypt <target>",
	Aliases: []string{"e"},
	Short:   "Encrypt a directory or file",
	Long: `Encrypt seals the target's directory names, file names, and file
contents under a password, writing the result to a fresh output
directory.`,
	Example: `  dircrypt encrypt ./documents
  dircrypt encrypt ./documents --as vault
  dircrypt encrypt ./documents --gen`,
	Args: cobra.ExactArgs(1),
	RunE: runEncrypt,
}

var (
	encryptAs  string
	encryptGen bool
)

func init() {
	rootCmd.AddCommand(encryptCmd)

	encryptCmd.Flags().StringVar(&encryptAs, "as", "",
		"Name of the output directory (default: ENCRYPTED_OUTPUT)")
	encryptCmd.Flags().BoolVar(&encryptGen, "gen", false,
		"Use a securely generated password instead of prompting")
}

func runEncrypt(cmd *cobra.Command, args []string) error {
	var psw []byte
	var err error

	if encryptGen {
		var pswFile string
		psw, pswFile, err = password.Generate()
		if err != nil {
			return err
		}
		printInfo("Autogenerated password saved to '%s'", pswFile)
	} else {
		psw, err = password.Prompt(os.Stderr, true)
		if err != nil {
			return err
		}
	}

	return runDircrypt(crypto.NewEncrypter(psw), args[0], encryptAs)
}

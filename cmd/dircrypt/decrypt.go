package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/GabeHardgrave/dircrypt/internal/crypto"
	"github.com/GabeHardgrave/dircrypt/internal/password"
)

var decryptCmd = &cobra.Command{
	Use:     "decrypt <target>",
	Aliases: []string{"d"},
	Short:   "Decrypt a previously encrypted directory or file",
	Long: `Decrypt reverses an encryption run. Names or contents that cannot be
decrypted, because the password is wrong or the data was damaged, are
substituted with sentinel names or relabeled rather than aborting the
run; every substitution is reported.`,
	Example: `  dircrypt decrypt ./ENCRYPTED_OUTPUT
  dircrypt decrypt ./vault --with dircrypt.password --as restored`,
	Args: cobra.ExactArgs(1),
	RunE: runDecrypt,
}

var (
	decryptAs   string
	decryptWith string
)

func init() {
	rootCmd.AddCommand(decryptCmd)

	decryptCmd.Flags().StringVar(&decryptAs, "as", "",
		"Name of the output directory (default: DECRYPTED_OUTPUT)")
	decryptCmd.Flags().StringVar(&decryptWith, "with", "",
		"Read the password from the given file instead of prompting")
}

func runDecrypt(cmd *cobra.Command, args []string) error {
	var psw []byte
	var err error

	if decryptWith != "" {
		psw, err = password.FromFile(decryptWith)
	} else {
		psw, err = password.Prompt(os.Stderr, false)
	}
	if err != nil {
		return err
	}

	return runDircrypt(crypto.NewDecrypter(psw), args[0], decryptAs)
}

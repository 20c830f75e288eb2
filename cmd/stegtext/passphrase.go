package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// readPassphrase prompts for a passphrase on the terminal without echoing it.
func readPassphrase(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("cannot prompt for a passphrase: stdin is not a terminal")
	}

	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("passphrase read failed: %w", err)
	}
	return string(password), nil
}

// resolvePassphrase returns the --passphrase value, or prompts for one when --ask-passphrase is set.
func resolvePassphrase(pass string, ask bool, confirm bool) (string, error) {
	if !ask {
		return pass, nil
	}
	if pass != "" {
		return "", errors.New("passphrase and ask-passphrase cannot both be provided")
	}

	pass, err := readPassphrase("Passphrase: ")
	if err != nil {
		return "", err
	}
	if confirm {
		again, err := readPassphrase("Confirm passphrase: ")
		if err != nil {
			return "", err
		}
		if again != pass {
			return "", errors.New("passphrases do not match")
		}
	}
	return pass, nil
}

func addPassphraseFlags(cmd *cobra.Command, pass *string, ask *bool, usage string) {
	cmd.Flags().StringVarP(pass, "passphrase", "p", "", usage)
	cmd.Flags().BoolVar(ask, "ask-passphrase", false, "Prompt for the passphrase without echoing it")
	cmd.MarkFlagsMutuallyExclusive("passphrase", "ask-passphrase")
}

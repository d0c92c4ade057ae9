package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"snippy/internal/terminal"
)

const minPasswordLength = 8

func getSecureOnCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "secure-on",
		Short: "Enable encryption for new snippets",
		Long: `Enable at-rest encryption. A fresh random salt is generated and stored with
the database; subsequent snippets added with --secure are encrypted under a
key derived from your password. Existing snippets are NOT re-encrypted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := theApp
			ctx := cmd.Context()

			enabled, err := a.svc.IsEncryptionEnabled(ctx)
			if err != nil {
				return err
			}
			if enabled {
				a.render.Warning("Encryption is already enabled")
				return nil
			}

			password, err := terminal.GetPassword("Enter new encryption password: ", os.Stdout)
			if err != nil {
				return err
			}
			confirm, err := terminal.GetPassword("Confirm password: ", os.Stdout)
			if err != nil {
				return err
			}

			if !bytes.Equal(password, confirm) {
				return fmt.Errorf("passwords do not match")
			}
			if len(password) < minPasswordLength {
				return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
			}

			key, err := a.svc.EnableEncryption(ctx, password)
			if err != nil {
				return err
			}
			a.key = key

			a.render.Success("Encryption enabled")
			a.render.Warning("Existing snippets are NOT encrypted. Use --secure for new snippets.")
			return nil
		},
	}
}

func getSecureOffCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "secure-off",
		Short: "Disable encryption",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := theApp
			ctx := cmd.Context()

			enabled, err := a.svc.IsEncryptionEnabled(ctx)
			if err != nil {
				return err
			}
			if !enabled {
				a.render.Warning("Encryption is not enabled")
				return nil
			}

			if err := a.ensureAuthenticated(ctx); err != nil {
				return err
			}

			if !terminal.Confirm(a.reader,
				"Disable encryption? Encrypted snippets will become inaccessible.", os.Stdout) {
				return nil
			}

			if err := a.svc.DisableEncryption(ctx); err != nil {
				return err
			}
			a.key = nil

			a.render.Success("Encryption disabled")
			a.render.Warning("Encrypted snippets are now inaccessible")
			return nil
		},
	}
}

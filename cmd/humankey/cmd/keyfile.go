package cmd

import (
	"fmt"

	"humankey/humankey"
	"humankey/internal/config"
	"humankey/internal/crypto"

	"github.com/spf13/cobra"
)

// keyfileCmd groups the key file commands
var keyfileCmd = &cobra.Command{
	Use:   "keyfile",
	Short: "Inspect exported .hkf key files",
}

// keyfileOpenCmd represents the keyfile open command
var keyfileOpenCmd = &cobra.Command{
	Use:   "open [path]",
	Short: "Decrypt a key file and verify it",
	Long: `Decrypt an .hkf key file with the password prompted on the terminal,
re-derive the public key and address from the stored private key and check
them against the address saved in the file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := config.ReadPassword("Enter key file password: ")
		if err != nil {
			return err
		}
		defer clear(password)

		key, err := humankey.OpenKeyFile(args[0], password)
		if err != nil {
			return err
		}
		return printKey(cmd.OutOrStdout(), key, showPrivateKey, jsonOutput)
	},
}

// keyfileAddressCmd represents the keyfile address command
var keyfileAddressCmd = &cobra.Command{
	Use:   "address [path]",
	Short: "Print the address stored in a key file without decrypting it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		address, err := crypto.ReadKeyFileAddress(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), address)
		return nil
	},
}

func init() {
	keyfileOpenCmd.Flags().BoolVar(&showPrivateKey, "show-private-key", false, "Print the private key")
	keyfileOpenCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print JSON instead of text")
	keyfileCmd.AddCommand(keyfileOpenCmd, keyfileAddressCmd)
	RootCmd.AddCommand(keyfileCmd)
}

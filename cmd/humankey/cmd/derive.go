package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"humankey/humankey"
	"humankey/internal/client"
	"humankey/internal/config"
	"humankey/internal/model"

	"github.com/spf13/cobra"
)

var (
	deriveRecord   [8]string
	signerURL      string
	showPrivateKey bool
	jsonOutput     bool
	deriveKeyFile  string
)

// deriveCmd represents the derive command
var deriveCmd = &cobra.Command{
	Use:   "derive",
	Short: "Run one derivation and print the key",
	Long: `Hash the pulse record given by the --e_0..--e_7 flags, request
OPRFSecp256k1 from the signer and print the public key and address.
The private key is printed only with --show-private-key.
With --keyfile the key is also written to an encrypted .hkf file.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		record := recordFromFlags()
		url := signerURL
		if url == "" {
			url = config.GetSignerURL()
		}

		network := client.NewNetwork(client.LoadSignerClient(config.GetSignerTimeout()))
		service := humankey.NewService(network, config.GetSignerMethod(), nil)

		ctx, cancel := context.WithTimeout(cmd.Context(), config.GetSignerTimeout())
		defer cancel()
		key, err := service.RequestOPRFSecp256k1(ctx, url, record)
		if err != nil {
			return err
		}

		if deriveKeyFile != "" {
			if err := exportKeyFile(deriveKeyFile, key); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Key saved to %s\n", deriveKeyFile)
		}

		return printKey(cmd.OutOrStdout(), key, showPrivateKey, jsonOutput)
	},
}

func init() {
	sample := model.DefaultPulseRecord()
	defaults := sample.Fields()
	for i, name := range model.PulseFieldNames {
		deriveCmd.Flags().StringVar(&deriveRecord[i], name, defaults[i], "Pulse value "+name)
	}
	deriveCmd.Flags().StringVar(&signerURL, "signer-url", "", "Signer URL, overrides SIGNER_URL")
	deriveCmd.Flags().BoolVar(&showPrivateKey, "show-private-key", false, "Print the private key")
	deriveCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print JSON instead of text")
	deriveCmd.Flags().StringVar(&deriveKeyFile, "keyfile", "", "Also write the key to this encrypted .hkf file")
	RootCmd.AddCommand(deriveCmd)
}

var maskedKey = strings.Repeat("•", 64)

func recordFromFlags() model.PulseRecord {
	var values [8]string
	for i, v := range deriveRecord {
		values[i] = strings.TrimSpace(v)
	}
	return model.PulseRecordFromFields(values)
}

func exportKeyFile(path string, key *humankey.DerivedKey) error {
	if !filepath.IsAbs(path) && filepath.Dir(path) == "." {
		path = filepath.Join(config.GetKeyFileDir(), path)
	}
	password, err := config.ReadPassword("Enter key file password: ")
	if err != nil {
		return err
	}
	defer clear(password)
	return humankey.ExportKey(path, key, password)
}

// printKey writes the derived key; the private key is masked unless show is set
func printKey(w io.Writer, key *humankey.DerivedKey, show, asJSON bool) error {
	privateKey := maskedKey
	if show {
		privateKey = key.PrivateKey
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(humankey.DerivedKey{
			PrivateKey: privateKey,
			PublicKey:  key.PublicKey,
			Address:    key.Address,
		})
	}

	_, err := fmt.Fprintf(w, "Private Key: %s\nPublic Key:  %s\nAddress:     %s\n", privateKey, key.PublicKey, key.Address)
	return err
}

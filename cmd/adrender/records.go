package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mossjr/tab-image-gen-poc/internal/domain"
	"github.com/mossjr/tab-image-gen-poc/internal/storage"
)

func parseKind(s string) (domain.Kind, error) {
	k := domain.Kind(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown kind %q (must be %s or %s)", s, domain.KindAdContent, domain.KindTextConfig)
	}
	return k, nil
}

var defaultsCmd = &cobra.Command{
	Use:         "defaults <ad-content|text-config>",
	Short:       "Print the default payload seeded for unsaved slots",
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{"store": "none"},
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := parseKind(args[0])
		if err != nil {
			return err
		}
		p, err := domain.DefaultPayload(kind)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), p)
	},
}

var showCmd = &cobra.Command{
	Use:   "show <ad-content|text-config> <slot>",
	Short: "Print the payload stored for a slot, seeding the default if absent",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := parseKind(args[0])
		if err != nil {
			return err
		}
		rec, err := store.Get(context.Background(), kind, args[1])
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), rec.Payload)
	},
}

var listCmd = &cobra.Command{
	Use:   "list <ad-content|text-config>",
	Short: "List stored records of a kind",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := parseKind(args[0])
		if err != nil {
			return err
		}
		records, err := store.List(context.Background(), kind)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), records)
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tID\tUPDATED")
		for _, r := range records {
			fmt.Fprintf(w, "%s\t%s\t%s\n", r.Name, r.ID, r.UpdatedAt.Format(time.RFC3339))
		}
		return w.Flush()
	},
}

var exportsCmd = &cobra.Command{
	Use:         "exports [slot]",
	Short:       "List PNGs and bundles archived under EXPORT_DIR",
	Args:        cobra.MaximumNArgs(1),
	Annotations: map[string]string{"store": "none"},
	RunE: func(cmd *cobra.Command, args []string) error {
		var fs *storage.FileStore
		if cfg.ExportDir != "" {
			var err error
			if fs, err = storage.NewFileStore(cfg.ExportDir); err != nil {
				return err
			}
		}
		ctx := context.Background()

		if key, _ := cmd.Flags().GetString("cat"); key != "" {
			data, err := fs.Read(ctx, key)
			if err != nil {
				return exportsErr(err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}

		prefix := ""
		if len(args) == 1 {
			prefix = args[0]
		}
		keys, err := fs.List(ctx, prefix)
		if err != nil {
			return exportsErr(err)
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), keys)
		}
		for _, k := range keys {
			fmt.Fprintln(cmd.OutOrStdout(), k)
		}
		return nil
	},
}

func exportsErr(err error) error {
	if errors.Is(err, storage.ErrNoStore) {
		return fmt.Errorf("EXPORT_DIR is not set")
	}
	return err
}

var resetCmd = &cobra.Command{
	Use:   "reset <ad-content|text-config> <slot>",
	Short: "Overwrite a slot with the default payload",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := parseKind(args[0])
		if err != nil {
			return err
		}
		ctx := context.Background()
		var rec *domain.Record
		switch kind {
		case domain.KindAdContent:
			rec, err = store.SaveAdContent(ctx, args[1], domain.DefaultAdContent())
		case domain.KindTextConfig:
			rec, err = store.SaveTextLayout(ctx, args[1], domain.DefaultTextLayout())
		}
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), rec)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "reset %s/%s\n", rec.Kind, rec.Name)
		return nil
	},
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	exportsCmd.Flags().String("cat", "", "write the archived file at `key` to stdout")
	rootCmd.AddCommand(defaultsCmd, showCmd, listCmd, exportsCmd, resetCmd)
}

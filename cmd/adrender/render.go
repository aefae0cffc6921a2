package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/mossjr/tab-image-gen-poc/internal/bootstrap"
	"github.com/mossjr/tab-image-gen-poc/internal/compositor"
	"github.com/mossjr/tab-image-gen-poc/internal/storage"
)

var renderCmd = &cobra.Command{
	Use:   "render <slot>",
	Short: "Render a stored slot to a PNG file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		slot := args[0]
		out, _ := cmd.Flags().GetString("out")
		background, _ := cmd.Flags().GetString("background")
		archive, _ := cmd.Flags().GetBool("archive")

		ctx := context.Background()
		content, err := store.AdContent(ctx, slot)
		if err != nil {
			return err
		}
		layout, err := store.TextLayout(ctx, slot)
		if err != nil {
			return err
		}

		comp := bootstrap.NewCompositor(cfg, logger)
		if background == "" {
			background = cfg.BackgroundPath
		}
		img, err := comp.Render(comp.LoadBackground(background), content, layout)
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := compositor.EncodePNG(&buf, img); err != nil {
			return err
		}

		filename := compositor.ExportFilename(content.RaceName, time.Now())
		if out == "" {
			out = filename
		} else if info, err := os.Stat(out); err == nil && info.IsDir() {
			out = filepath.Join(out, filename)
		}
		if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)

		if archive && cfg.ExportDir != "" {
			fs, err := storage.NewFileStore(cfg.ExportDir)
			if err != nil {
				return err
			}
			key, err := fs.Write(ctx, storage.ExportKey(slot, filename), buf.Bytes())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "archived %s\n", key)
		}
		return nil
	},
}

func init() {
	renderCmd.Flags().StringP("out", "o", "", "output file or directory (default: derived from race name)")
	renderCmd.Flags().String("background", "", "background image (default: BACKGROUND_PATH)")
	renderCmd.Flags().Bool("archive", false, "also archive the PNG under EXPORT_DIR")
	rootCmd.AddCommand(renderCmd)
}

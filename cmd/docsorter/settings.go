package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/docsorter/internal/settings"
)

func settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the OCR tool locations",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the current tool settings (creating the file with defaults if missing)",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			store := settings.NewStore(cfg.Settings.Path, logger)
			s := store.Load()
			fmt.Printf("file:          %s\n", store.Path())
			fmt.Printf("tesseract_cmd: %s\n", s.TesseractCmd)
			fmt.Printf("poppler_path:  %s\n", s.PopplerPath)
			return nil
		},
	})

	var tesseract, poppler string
	set := &cobra.Command{
		Use:   "set",
		Short: "Update tool locations",
		Example: `  docsorter settings set --tesseract /usr/local/bin/tesseract
  docsorter settings set --poppler "C:\Program Files\poppler-24.02.0\Library\bin"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("tesseract") && !cmd.Flags().Changed("poppler") {
				return fmt.Errorf("nothing to set: pass --tesseract and/or --poppler")
			}
			store := settings.NewStore(cfg.Settings.Path, logger)
			updates := map[string]string{}
			if cmd.Flags().Changed("tesseract") {
				updates["tesseract_cmd"] = tesseract
			}
			if cmd.Flags().Changed("poppler") {
				updates["poppler_path"] = poppler
			}
			for key, value := range updates {
				if _, err := store.Set(key, value); err != nil {
					return err
				}
			}
			colorGreen.Println("settings saved to", store.Path())
			return nil
		},
	}
	set.Flags().StringVar(&tesseract, "tesseract", "", "tesseract executable")
	set.Flags().StringVar(&poppler, "poppler", "", "directory holding pdftoppm/pdftotext")
	cmd.AddCommand(set)
	return cmd
}

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/docsorter/internal/core/extract"
	"github.com/joseph-ayodele/docsorter/internal/core/ocr"
	"github.com/joseph-ayodele/docsorter/internal/core/textnorm"
	"github.com/joseph-ayodele/docsorter/internal/rules"
	"github.com/joseph-ayodele/docsorter/internal/settings"
)

func ocrTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ocr-test <file.pdf>",
		Short: "Print the embedded and OCR text of a PDF and what would be extracted from each",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path := args[0]
			tools := settings.NewStore(cfg.Settings.Path, logger).Load()
			groups, _ := rules.NewStore(cfg.Rules.Path, logger).LoadOrEmpty()
			oc := ocrConfig()

			native := ocr.NewNativeReader(oc, tools, logger).Text(ctx, path, cfg.OCR.MaxPages)
			printSection("embedded text", native)
			printExtraction(extract.Analyze(textnorm.Normalize(native), groups))

			text, err := ocr.NewBridge(oc, tools, logger).FirstPages(ctx, path, cfg.OCR.MaxPages)
			switch {
			case errors.Is(err, ocr.ErrEngineNotFound):
				colorRed.Printf("tesseract not found at %q; fix it with: docsorter settings set --tesseract <path>\n", tools.TesseractCmd)
				return nil
			case errors.Is(err, ocr.ErrRasterizerNotFound):
				colorRed.Printf("poppler not found at %q; fix it with: docsorter settings set --poppler <dir>\n", tools.PopplerPath)
				return nil
			case err != nil:
				return err
			}
			printSection("OCR text", text)
			printExtraction(extract.Analyze(textnorm.Normalize(text), groups))
			return nil
		},
	}
	addOCRFlags(cmd)
	return cmd
}

func printSection(title, body string) {
	colorCyan.Printf("--- %s (%d chars) ---\n", title, len([]rune(body)))
	if body == "" {
		colorYellow.Println("(empty)")
		return
	}
	fmt.Println(body)
}

func printExtraction(r extract.Result) {
	colorBold.Printf("type=%s group=%s confidence=%.1f date=%q number=%q\n",
		r.DocType, r.GroupName, r.Confidence, r.DateToken, r.NumberToken)
}

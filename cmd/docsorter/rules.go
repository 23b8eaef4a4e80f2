package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/docsorter/internal/rules"
)

func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect and edit the classification rule file",
		Long: `Rules are tried in file order and the first keyword found wins, so the
position of a group is its priority.`,
	}
	cmd.AddCommand(rulesListCmd())
	cmd.AddCommand(rulesAddCmd())
	cmd.AddCommand(rulesReplaceCmd())
	cmd.AddCommand(rulesRemoveCmd())
	cmd.AddCommand(rulesValidateCmd())
	return cmd
}

func rulesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List rule groups in priority order",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			groups, err := rules.NewStore(cfg.Rules.Path, logger).Load()
			if err != nil {
				return err
			}
			if len(groups) == 0 {
				colorYellow.Println("no rule groups defined in", cfg.Rules.Path)
				return nil
			}
			tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tNAME\tTYPE\tKEYWORDS")
			for i, g := range groups {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i, g.Name, g.Type, strings.Join(g.Keywords, ", "))
			}
			return tw.Flush()
		},
	}
}

func rulesAddCmd() *cobra.Command {
	var (
		name     string
		typ      string
		keywords []string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a rule group (lowest priority)",
		Example: `  docsorter rules add --name Invoices --type TIM --keyword ΤΙΜΟΛΟΓΙΟ --keyword "ΤΙΜ."
  docsorter rules add --name Receipts --type APY --keyword ΑΠΟΔΕΙΞΗ`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			g, err := rules.NewGroup(name, typ, keywords)
			if err != nil {
				return err
			}
			store := rules.NewStore(cfg.Rules.Path, logger)
			if err := store.Add(g); err != nil {
				return err
			}
			colorGreen.Printf("added %q (%s) with %d keywords to %s\n", g.Name, g.Type, len(g.Keywords), store.Path())
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "category name (output directory)")
	cmd.Flags().StringVar(&typ, "type", "", "type prefix used in filenames")
	cmd.Flags().StringArrayVar(&keywords, "keyword", nil, "keyword to match (repeatable)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func rulesReplaceCmd() *cobra.Command {
	var (
		name     string
		typ      string
		keywords []string
	)
	cmd := &cobra.Command{
		Use:   "replace <index>",
		Short: "Overwrite the rule group at index, keeping its priority",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			idx, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid index %q: %w", args[0], err)
			}
			g, err := rules.NewGroup(name, typ, keywords)
			if err != nil {
				return err
			}
			if err := rules.NewStore(cfg.Rules.Path, logger).Replace(idx, g); err != nil {
				return err
			}
			colorGreen.Printf("group %d is now %q (%s)\n", idx, g.Name, g.Type)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "category name (output directory)")
	cmd.Flags().StringVar(&typ, "type", "", "type prefix used in filenames")
	cmd.Flags().StringArrayVar(&keywords, "keyword", nil, "keyword to match (repeatable)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func rulesRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <index>",
		Short: "Remove the rule group at index (see rules list)",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			idx, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid index %q: %w", args[0], err)
			}
			removed, err := rules.NewStore(cfg.Rules.Path, logger).Remove(idx)
			if err != nil {
				return err
			}
			colorGreen.Printf("removed %q (%s)\n", removed.Name, removed.Type)
			return nil
		},
	}
}

func rulesValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the rule file against its schema",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			groups, err := rules.NewStore(cfg.Rules.Path, logger).Load()
			if err != nil {
				colorRed.Println("invalid:", err)
				return err
			}
			keywords := 0
			for _, g := range groups {
				keywords += len(g.Keywords)
			}
			colorGreen.Printf("%s: %d groups, %d keywords\n", cfg.Rules.Path, len(groups), keywords)
			return nil
		},
	}
}

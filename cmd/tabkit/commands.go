package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/LISSConsulting/LISSTech.TabKit/internal/config"
	"github.com/LISSConsulting/LISSTech.TabKit/internal/pages"
)

// addViewFlags registers the flags that override the [tabs] and [tab_bar]
// config sections.
func addViewFlags(cmd *cobra.Command, flags *viewFlags) {
	cmd.Flags().StringVar(&flags.page, "page", "", "drive the active tab externally, starting at this index or key")
	cmd.Flags().StringVar(&flags.initial, "initial", "", "initial tab index or key")
	cmd.Flags().IntVar(&flags.prerender, "prerender", 1, "tabs kept mounted on each side of the active tab (-1 = all)")
	cmd.Flags().BoolVar(&flags.destroyInactive, "destroy-inactive", false, "unmount tabs that leave the prerender band")
	cmd.Flags().StringVar(&flags.position, "position", "", "tab bar position: top, bottom, left or right")
}

// readViewFlags records which override flags were set explicitly.
func readViewFlags(cmd *cobra.Command, flags *viewFlags) {
	flags.prerenderSet = cmd.Flags().Changed("prerender")
	flags.destroySet = cmd.Flags().Changed("destroy-inactive")
}

func viewCmd() *cobra.Command {
	var flags viewFlags
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Open the tab viewer",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			readViewFlags(cmd, &flags)
			return executeView(configPath, flags)
		},
	}
	addViewFlags(cmd, &flags)
	cmd.Flags().BoolVar(&flags.noStore, "no-store", false, "do not record a session log")
	return cmd
}

func checkCmd() *cobra.Command {
	var flags viewFlags
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the configuration and show the resolved tabs",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			readViewFlags(cmd, &flags)
			return executeCheck(cmd.OutOrStdout(), configPath, flags)
		},
	}
	addViewFlags(cmd, &flags)
	return cmd
}

func historyCmd() *cobra.Command {
	var visit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Summarise the most recent viewer session",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			return executeHistory(cmd.OutOrStdout(), configPath, visit)
		},
	}
	cmd.Flags().IntVar(&visit, "visit", 0, "print the raw events of this visit number")
	return cmd
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Scaffold a tabkit project (config, pages dir, welcome page)",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("get working directory: %w", err)
			}
			created, err := config.ScaffoldProject(dir)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatScaffoldResult(created))
			return nil
		},
	}
}

func pageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "page",
		Short: "Manage page files",
	}

	cmd.AddCommand(pageListCmd(), pageNewCmd())
	return cmd
}

func pageListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the pages that become tabs",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			root, pagesDir, err := projectPages(configPath)
			if err != nil {
				return err
			}

			found, err := pages.List(root, pagesDir)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatPageList(pagesDir, found))
			return nil
		},
	}
}

func pageNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new <name>",
		Short: "Create a new page file from template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			root, pagesDir, err := projectPages(configPath)
			if err != nil {
				return err
			}

			path, err := pages.New(root, pagesDir, args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)

			editor := os.Getenv("EDITOR")
			if editor == "" {
				return nil
			}

			return openEditor(editor, path)
		},
	}
}

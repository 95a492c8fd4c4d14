package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/skillbyte/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and validate keyword catalogs",
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a catalog file against the catalog schema",
	RunE:  runCatalogValidate,
}

var catalogShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the active catalog (or its JSON Schema with --schema) as JSON",
	RunE:  runCatalogShow,
}

var (
	catalogFile   string
	catalogSchema bool
)

func init() {
	catalogValidateCmd.Flags().StringVarP(&catalogFile, "file", "f", "", "Catalog file to validate (required)")
	_ = catalogValidateCmd.MarkFlagRequired("file")

	catalogShowCmd.Flags().BoolVar(&catalogSchema, "schema", false, "Print the catalog JSON Schema instead")

	catalogCmd.AddCommand(catalogValidateCmd, catalogShowCmd)
	rootCmd.AddCommand(catalogCmd)
}

func runCatalogValidate(cmd *cobra.Command, _ []string) error {
	cat, err := catalog.Load(catalogFile)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Catalog %s is valid: %d technical, %d soft, %d tools, %d jobs\n",
		catalogFile, len(cat.Technical), len(cat.Soft), len(cat.Tools),
		len(cat.Listings)+len(cat.EntryLevelJobs)+len(cat.TechJobs))
	return nil
}

func runCatalogShow(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	if catalogSchema {
		_, err := out.Write(catalog.Schema())
		return err
	}

	cfg, err := loadConfig(cmd, os.Getenv)
	if err != nil {
		return err
	}
	cat, err := catalog.Load(cfg.Catalog)
	if err != nil {
		return err
	}
	return printJSON(out, cat)
}

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zonescout/zonescout/internal/export"
	"github.com/zonescout/zonescout/internal/report"
	"github.com/zonescout/zonescout/internal/scout"
	"github.com/zonescout/zonescout/internal/verify"
	"github.com/zonescout/zonescout/pkg/gemini"
)

var (
	scoutZip        string
	scoutImagePath  string
	scoutQuery      string
	scoutCriteria   string
	scoutXLSXPath   string
	scoutJSON       bool
	scoutNotion     bool
	scoutSalesforce bool
)

var scoutCmd = &cobra.Command{
	Use:   "scout",
	Short: "Run a scouting pass over a zone",
	Long:  "Resolves the zone, searches for businesses matching the query, verifies each against the criteria, and prints the partitioned results.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		req := scout.Request{
			Zip:      scoutZip,
			Query:    scoutQuery,
			Criteria: scoutCriteria,
		}
		if scoutImagePath != "" {
			image, err := os.ReadFile(scoutImagePath)
			if err != nil {
				return eris.Wrapf(err, "read image %s", scoutImagePath)
			}
			req.Image = image
			req.ImageMIME = gemini.DetectMIME(image)
		}
		if err := req.Validate(); err != nil {
			return err
		}

		runner, err := buildRunner(ctx)
		if err != nil {
			return err
		}

		result, err := runner.Run(ctx, req)
		if err != nil {
			return err
		}

		if scoutJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(result); err != nil {
				return eris.Wrap(err, "encode result")
			}
		} else {
			fmt.Fprint(cmd.OutOrStdout(), report.Summary(*result))
		}

		if scoutXLSXPath != "" {
			if err := report.WriteXLSX(scoutXLSXPath, *result); err != nil {
				return err
			}
			zap.L().Info("workbook written", zap.String("path", scoutXLSXPath))
		}

		if scoutNotion || scoutSalesforce {
			targets, err := buildTargets(scoutNotion, scoutSalesforce)
			if err != nil {
				return err
			}
			approved := verify.PartitionVerdicts(result.Leads).Approved
			delivery := export.Deliver(ctx, targets, approved)
			fmt.Fprintf(cmd.OutOrStdout(), "\nDelivered: %d to Notion (%d failed), %d to Salesforce (%d failed)\n",
				delivery.NotionCreated, delivery.NotionFailed,
				delivery.SalesforceCreated, delivery.SalesforceFailed)
		}

		return nil
	},
}

func init() {
	scoutCmd.Flags().StringVar(&scoutZip, "zip", "", "postal code or free-text zone hint")
	scoutCmd.Flags().StringVar(&scoutImagePath, "image", "", "path to a map screenshot")
	scoutCmd.Flags().StringVar(&scoutQuery, "query", "", "business search query (required)")
	scoutCmd.Flags().StringVar(&scoutCriteria, "criteria", "", "acceptance criteria for verification (required)")
	scoutCmd.Flags().StringVar(&scoutXLSXPath, "xlsx", "", "write results to an XLSX workbook at this path")
	scoutCmd.Flags().BoolVar(&scoutJSON, "json", false, "print the full result as JSON instead of a summary")
	scoutCmd.Flags().BoolVar(&scoutNotion, "notion", false, "push approved leads to the configured Notion database")
	scoutCmd.Flags().BoolVar(&scoutSalesforce, "salesforce", false, "push approved leads to Salesforce")
	rootCmd.AddCommand(scoutCmd)
}

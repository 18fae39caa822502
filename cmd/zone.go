package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/zonescout/zonescout/internal/model"
	"github.com/zonescout/zonescout/internal/zone"
	"github.com/zonescout/zonescout/pkg/gemini"
	"github.com/zonescout/zonescout/pkg/geocode"
)

var (
	zoneZip       string
	zoneImagePath string
)

// zoneCmd resolves a zone without searching, for checking what box a zip or
// screenshot produces before spending Places and LLM quota on it.
var zoneCmd = &cobra.Command{
	Use:   "zone",
	Short: "Resolve a zone to a bounding box (debug)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if (zoneZip == "") == (zoneImagePath == "") {
			return eris.New("exactly one of --zip or --image must be provided")
		}

		var (
			box model.BoundingBox
			err error
		)
		if zoneZip != "" {
			if cfg.Google.APIKey == "" {
				return eris.New("google.api_key is required for --zip (ZONESCOUT_GOOGLE_API_KEY)")
			}
			geocoder := geocode.NewClient(cfg.Google.APIKey, geocode.WithCountry(cfg.Google.Country))
			box, err = zone.NewResolver(geocoder, nil).FromText(ctx, zoneZip)
		} else {
			if cfg.Gemini.APIKey == "" {
				return eris.New("gemini.api_key is required for --image")
			}
			vision, clientErr := gemini.NewClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
			if clientErr != nil {
				return clientErr
			}
			image, readErr := os.ReadFile(zoneImagePath)
			if readErr != nil {
				return eris.Wrapf(readErr, "read image %s", zoneImagePath)
			}
			box, err = zone.NewResolver(nil, vision).FromImage(ctx, image, gemini.DetectMIME(image))
		}
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(box)
	},
}

func init() {
	zoneCmd.Flags().StringVar(&zoneZip, "zip", "", "postal code or free-text zone hint")
	zoneCmd.Flags().StringVar(&zoneImagePath, "image", "", "path to a map screenshot")
	rootCmd.AddCommand(zoneCmd)
}

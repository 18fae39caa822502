package report

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/zonescout/zonescout/internal/model"
	"github.com/zonescout/zonescout/internal/verify"
)

var xlsxHeader = []string{
	"Name", "Address", "Phone", "Website", "Rating", "Maps URL",
	"Verdict", "Reason", "Pros", "Cons", "Outreach Platform", "Outreach URL",
}

// WriteXLSX writes the run to a workbook with one sheet per verdict bucket.
// Empty buckets still get their sheet so column positions stay stable for
// downstream tooling.
func WriteXLSX(path string, result model.ScoutResult) error {
	file := xlsx.NewFile()

	p := verify.PartitionVerdicts(result.Leads)
	sheets := []struct {
		name  string
		leads []model.VerifiedCandidate
	}{
		{"Approved", p.Approved},
		{"Rejected", p.Rejected},
		{"Errored", p.Errored},
	}

	for _, s := range sheets {
		sheet, err := file.AddSheet(s.name)
		if err != nil {
			return eris.Wrapf(err, "report: add sheet %s", s.name)
		}

		header := sheet.AddRow()
		for _, col := range xlsxHeader {
			header.AddCell().SetString(col)
		}

		for _, lead := range s.leads {
			addLeadRow(sheet, lead)
		}
	}

	if err := file.Save(path); err != nil {
		return eris.Wrapf(err, "report: save workbook %s", path)
	}
	return nil
}

func addLeadRow(sheet *xlsx.Sheet, lead model.VerifiedCandidate) {
	platform, link := model.SocialSuggestion(lead.Name, lead.Categories)

	row := sheet.AddRow()
	row.AddCell().SetString(lead.Name)
	row.AddCell().SetString(lead.Address)
	row.AddCell().SetString(lead.Phone)
	row.AddCell().SetString(lead.Website)
	if lead.Rating > 0 {
		row.AddCell().SetString(fmt.Sprintf("%.1f", lead.Rating))
	} else {
		row.AddCell().SetString("")
	}
	row.AddCell().SetString(lead.MapsURL)
	row.AddCell().SetString(string(lead.Verdict.Status))
	row.AddCell().SetString(lead.Verdict.Reason)
	row.AddCell().SetString(strings.Join(lead.Verdict.Pros, "; "))
	row.AddCell().SetString(strings.Join(lead.Verdict.Cons, "; "))
	row.AddCell().SetString(platform)
	row.AddCell().SetString(link)
}

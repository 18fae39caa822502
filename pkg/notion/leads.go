package notion

import (
	"context"
	"strings"

	"github.com/jomei/notionapi"
	"github.com/rotisserie/eris"

	"github.com/zonescout/zonescout/internal/model"
)

// CreateLead writes one approved lead to the given Notion database and
// returns the created page ID. The database needs a "Name" title property;
// the rest are created as rich text, URL, and number properties.
func CreateLead(ctx context.Context, c Client, dbID string, lead model.VerifiedCandidate) (string, error) {
	platform, link := model.SocialSuggestion(lead.Name, lead.Categories)

	props := notionapi.Properties{
		"Name": notionapi.TitleProperty{
			Title: richText(lead.Name),
		},
		"Address": notionapi.RichTextProperty{
			RichText: richText(lead.Address),
		},
		"Status": notionapi.RichTextProperty{
			RichText: richText(string(lead.Verdict.Status)),
		},
		"Verdict": notionapi.RichTextProperty{
			RichText: richText(lead.Verdict.Reason),
		},
		"Pros": notionapi.RichTextProperty{
			RichText: richText(strings.Join(lead.Verdict.Pros, "; ")),
		},
		"Cons": notionapi.RichTextProperty{
			RichText: richText(strings.Join(lead.Verdict.Cons, "; ")),
		},
		"Outreach": notionapi.RichTextProperty{
			RichText: richText(platform),
		},
		"Outreach URL": notionapi.URLProperty{URL: link},
	}

	if lead.Phone != "" {
		props["Phone"] = notionapi.RichTextProperty{RichText: richText(lead.Phone)}
	}
	if lead.Website != "" {
		props["Website"] = notionapi.URLProperty{URL: lead.Website}
	}
	if lead.MapsURL != "" {
		props["Maps"] = notionapi.URLProperty{URL: lead.MapsURL}
	}
	if lead.Rating > 0 {
		props["Rating"] = notionapi.NumberProperty{Number: lead.Rating}
	}

	page, err := c.CreatePage(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(dbID),
		},
		Properties: props,
	})
	if err != nil {
		return "", eris.Wrapf(err, "notion: create lead %s", lead.Name)
	}

	return string(page.ID), nil
}

func richText(content string) []notionapi.RichText {
	return []notionapi.RichText{{
		Type: notionapi.ObjectTypeText,
		Text: &notionapi.Text{Content: content},
	}}
}

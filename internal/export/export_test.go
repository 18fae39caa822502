package export

import (
	"context"
	"testing"

	"github.com/jomei/notionapi"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"

	"github.com/zonescout/zonescout/internal/model"
	"github.com/zonescout/zonescout/pkg/salesforce"
)

type mockNotion struct {
	calls   int
	failOn  int // 1-based call index to fail, 0 = never
	created []string
}

func (m *mockNotion) CreatePage(_ context.Context, req *notionapi.PageCreateRequest) (*notionapi.Page, error) {
	m.calls++
	if m.failOn == m.calls {
		return nil, eris.New("validation error")
	}
	if title, ok := req.Properties["Name"].(notionapi.TitleProperty); ok && len(title.Title) > 0 {
		m.created = append(m.created, title.Title[0].Text.Content)
	}
	return &notionapi.Page{ID: notionapi.ObjectID("page")}, nil
}

type mockSF struct {
	err     error
	results []salesforce.CollectionResult
}

func (m *mockSF) InsertOne(_ context.Context, _ string, _ map[string]any) (string, error) {
	return "id", nil
}

func (m *mockSF) InsertCollection(_ context.Context, _ string, records []map[string]any) ([]salesforce.CollectionResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.results != nil {
		return m.results, nil
	}
	out := make([]salesforce.CollectionResult, len(records))
	for i := range records {
		out[i] = salesforce.CollectionResult{ID: "id", Success: true}
	}
	return out, nil
}

func approved(names ...string) []model.VerifiedCandidate {
	out := make([]model.VerifiedCandidate, len(names))
	for i, n := range names {
		out[i] = model.VerifiedCandidate{
			Candidate: model.Candidate{Name: n, Address: "1 Main St"},
			Verdict:   model.Verdict{Status: model.StatusApproved, Reason: "ok", Pros: []string{}, Cons: []string{}},
		}
	}
	return out
}

func TestDeliver_BothTargets(t *testing.T) {
	n := &mockNotion{}
	sf := &mockSF{}

	d := Deliver(context.Background(), Targets{Notion: n, NotionDB: "db", Salesforce: sf}, approved("Alpha", "Beta"))

	assert.Equal(t, 2, d.NotionCreated)
	assert.Zero(t, d.NotionFailed)
	assert.Equal(t, 2, d.SalesforceCreated)
	assert.Zero(t, d.SalesforceFailed)
	assert.Equal(t, []string{"Alpha", "Beta"}, n.created)
}

func TestDeliver_NotionFailureIsBestEffort(t *testing.T) {
	n := &mockNotion{failOn: 1}

	d := Deliver(context.Background(), Targets{Notion: n, NotionDB: "db"}, approved("Alpha", "Beta", "Gamma"))

	assert.Equal(t, 2, d.NotionCreated)
	assert.Equal(t, 1, d.NotionFailed)
	assert.Equal(t, 3, n.calls)
}

func TestDeliver_SalesforceRequestFailure(t *testing.T) {
	sf := &mockSF{err: eris.New("auth failed")}

	d := Deliver(context.Background(), Targets{Salesforce: sf}, approved("Alpha", "Beta"))
	assert.Zero(t, d.SalesforceCreated)
	assert.Equal(t, 2, d.SalesforceFailed)
}

func TestDeliver_SalesforcePartialFailure(t *testing.T) {
	sf := &mockSF{results: []salesforce.CollectionResult{
		{ID: "1", Success: true},
		{Success: false, Errors: []string{"bad"}},
	}}

	d := Deliver(context.Background(), Targets{Salesforce: sf}, approved("Alpha", "Beta"))
	assert.Equal(t, 1, d.SalesforceCreated)
	assert.Equal(t, 1, d.SalesforceFailed)
}

func TestDeliver_NoTargets(t *testing.T) {
	d := Deliver(context.Background(), Targets{}, approved("Alpha"))
	assert.Zero(t, d.NotionCreated)
	assert.Zero(t, d.SalesforceCreated)
}

func TestDeliver_NoApprovedLeads(t *testing.T) {
	n := &mockNotion{}
	d := Deliver(context.Background(), Targets{Notion: n, NotionDB: "db"}, nil)
	assert.Zero(t, d.NotionCreated)
	assert.Zero(t, n.calls)
}

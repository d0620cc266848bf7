package applications

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/dmitrijs2005/jobkeeper/internal/common"
	"github.com/dmitrijs2005/jobkeeper/internal/models"
	"github.com/dmitrijs2005/jobkeeper/internal/objects"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() []models.Application {
	return []models.Application{
		{CompanyName: "Acme", JobTitle: "Engineer", Status: models.StatusApplied,
			AppliedDate: civil.Date{Year: 2024, Month: 1, Day: 10}, Package: "100k"},
		{CompanyName: "Globex", JobTitle: "SRE", Status: models.StatusInterviewScheduled,
			AppliedDate: civil.Date{Year: 2024, Month: 2, Day: 1}},
	}
}

func newDocRepo(t *testing.T) (*DocumentRepository, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := objects.NewFileStore(dir)
	require.NoError(t, err)
	return NewDocumentRepository(store), dir
}

func TestDocumentRepository_LoadMissingIsEmpty(t *testing.T) {
	r, _ := newDocRepo(t)

	got, err := r.Load(context.Background(), "nobody")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDocumentRepository_RoundTrip(t *testing.T) {
	r, _ := newDocRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, "alice", sample()))

	got, err := r.Load(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(sample(), got))

	require.NoError(t, r.Save(ctx, "alice", nil))
	got, err = r.Load(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDocumentRepository_UsersAreIndependent(t *testing.T) {
	r, _ := newDocRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, "alice", sample()))
	require.NoError(t, r.Save(ctx, "bob", sample()[:1]))

	a, err := r.Load(ctx, "alice")
	require.NoError(t, err)
	b, err := r.Load(ctx, "bob")
	require.NoError(t, err)
	assert.Len(t, a, 2)
	assert.Len(t, b, 1)
}

func TestDocumentRepository_DocumentShape(t *testing.T) {
	r, dir := newDocRepo(t)
	require.NoError(t, r.Save(context.Background(), "alice", sample()[:1]))

	data, err := os.ReadFile(filepath.Join(dir, "jobs_alice.json"))
	require.NoError(t, err)

	want := `[
  {
    "company_name": "Acme",
    "job_title": "Engineer",
    "status": "Applied",
    "applied_date": "2024-01-10",
    "package": "100k"
  }
]`
	assert.Equal(t, want, string(data))
}

func TestDocumentRepository_Corrupt(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad json", `[{"company_name":`},
		{"bad date", `[{"company_name":"A","job_title":"B","status":"Applied","applied_date":"2024-13-40","package":""}]`},
		{"bad status", `[{"company_name":"A","job_title":"B","status":"Ghosted","applied_date":"2024-01-10","package":""}]`},
		{"missing company", `[{"company_name":"","job_title":"B","status":"Applied","applied_date":"2024-01-10","package":""}]`},
		{"missing date", `[{"company_name":"A","job_title":"B","status":"Applied","package":""}]`},
		{"not an array", `{"company_name":"A"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, dir := newDocRepo(t)
			require.NoError(t, os.WriteFile(filepath.Join(dir, "jobs_alice.json"), []byte(tt.body), 0o600))

			_, err := r.Load(context.Background(), "alice")
			require.ErrorIs(t, err, common.ErrCorruptStore)
		})
	}
}

func TestDocumentRepository_IOError(t *testing.T) {
	r, dir := newDocRepo(t)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "jobs_alice.json"), 0o700))

	_, err := r.Load(context.Background(), "alice")
	require.ErrorIs(t, err, common.ErrIO)

	err = r.Save(context.Background(), "alice", sample())
	require.ErrorIs(t, err, common.ErrIO)
}

package permissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"softdesk/models"
)

// scoped fixture: two projects. alice authors "tracker" with bob as
// contributor; charlie authors "private" with no contributors.
func newScopeFixture(t *testing.T) (*fixture, *models.Project) {
	t.Helper()
	f := newFixture(t)

	private := &models.Project{
		Name:     "private",
		Type:     models.ProjectTypeFrontEnd,
		AuthorID: f.charlie.ID,
	}
	require.NoError(t, f.db.Create(private).Error)
	return f, private
}

func projectIDs(t *testing.T, projects []models.Project) []uint {
	t.Helper()
	ids := make([]uint, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestScopeProjects(t *testing.T) {
	f, private := newScopeFixture(t)

	var forAlice []models.Project
	require.NoError(t, f.db.Scopes(ScopeProjects(f.alice)).Find(&forAlice).Error)
	assert.Equal(t, []uint{f.project.ID}, projectIDs(t, forAlice))

	// Contributors see the project without authoring it.
	var forBob []models.Project
	require.NoError(t, f.db.Scopes(ScopeProjects(f.bob)).Find(&forBob).Error)
	assert.Equal(t, []uint{f.project.ID}, projectIDs(t, forBob))

	var forCharlie []models.Project
	require.NoError(t, f.db.Scopes(ScopeProjects(f.charlie)).Find(&forCharlie).Error)
	assert.Equal(t, []uint{private.ID}, projectIDs(t, forCharlie))

	// Staff are unrestricted.
	var forRoot []models.Project
	require.NoError(t, f.db.Scopes(ScopeProjects(f.root)).Find(&forRoot).Error)
	assert.Len(t, forRoot, 2)
}

func TestScopeProjectsIdempotent(t *testing.T) {
	f, _ := newScopeFixture(t)

	var once []models.Project
	require.NoError(t, f.db.Scopes(ScopeProjects(f.bob)).Find(&once).Error)

	var twice []models.Project
	require.NoError(t, f.db.
		Scopes(ScopeProjects(f.bob)).
		Scopes(ScopeProjects(f.bob)).
		Find(&twice).Error)

	assert.Equal(t, projectIDs(t, once), projectIDs(t, twice))
}

func TestScopeIssues(t *testing.T) {
	f, private := newScopeFixture(t)

	visible := &models.Issue{
		Name: "a", Tag: models.TagBug,
		ProjectID: f.project.ID, AuthorID: f.alice.ID,
	}
	hidden := &models.Issue{
		Name: "b", Tag: models.TagTask,
		ProjectID: private.ID, AuthorID: f.charlie.ID,
	}
	require.NoError(t, f.db.Create(visible).Error)
	require.NoError(t, f.db.Create(hidden).Error)

	var forBob []models.Issue
	require.NoError(t, f.db.Scopes(ScopeIssues(f.bob)).Find(&forBob).Error)
	require.Len(t, forBob, 1)
	assert.Equal(t, visible.ID, forBob[0].ID)

	// The project author sees its issues without a contributor row.
	var forAlice []models.Issue
	require.NoError(t, f.db.Scopes(ScopeIssues(f.alice)).Find(&forAlice).Error)
	require.Len(t, forAlice, 1)
	assert.Equal(t, visible.ID, forAlice[0].ID)

	var forRoot []models.Issue
	require.NoError(t, f.db.Scopes(ScopeIssues(f.root)).Find(&forRoot).Error)
	assert.Len(t, forRoot, 2)
}

func TestScopeComments(t *testing.T) {
	f, private := newScopeFixture(t)

	visibleIssue := &models.Issue{
		Name: "a", Tag: models.TagBug,
		ProjectID: f.project.ID, AuthorID: f.alice.ID,
	}
	hiddenIssue := &models.Issue{
		Name: "b", Tag: models.TagTask,
		ProjectID: private.ID, AuthorID: f.charlie.ID,
	}
	require.NoError(t, f.db.Create(visibleIssue).Error)
	require.NoError(t, f.db.Create(hiddenIssue).Error)

	visible := &models.Comment{Description: "seen", IssueID: visibleIssue.ID, AuthorID: f.alice.ID}
	hidden := &models.Comment{Description: "unseen", IssueID: hiddenIssue.ID, AuthorID: f.charlie.ID}
	require.NoError(t, f.db.Create(visible).Error)
	require.NoError(t, f.db.Create(hidden).Error)

	var forBob []models.Comment
	require.NoError(t, f.db.Scopes(ScopeComments(f.bob)).Find(&forBob).Error)
	require.Len(t, forBob, 1)
	assert.Equal(t, visible.ID, forBob[0].ID)

	var forCharlie []models.Comment
	require.NoError(t, f.db.Scopes(ScopeComments(f.charlie)).Find(&forCharlie).Error)
	require.Len(t, forCharlie, 1)
	assert.Equal(t, hidden.ID, forCharlie[0].ID)

	var forRoot []models.Comment
	require.NoError(t, f.db.Scopes(ScopeComments(f.root)).Find(&forRoot).Error)
	assert.Len(t, forRoot, 2)
}

func TestScopeContributors(t *testing.T) {
	f, _ := newScopeFixture(t)

	// No narrowing beyond authentication: everyone lists all rows.
	var forCharlie []models.Contributor
	require.NoError(t, f.db.Scopes(ScopeContributors(f.charlie)).Find(&forCharlie).Error)
	assert.Len(t, forCharlie, 1)
}

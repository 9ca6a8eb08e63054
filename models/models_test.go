package models

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&User{}, &Project{}, &Contributor{}, &Issue{}, &Comment{}))
	return db
}

func seedProject(t *testing.T, db *gorm.DB) (*User, *Project) {
	t.Helper()
	author := &User{Username: "alice", Email: "alice@example.com", PasswordHash: "x", Age: 30, IsActive: true}
	require.NoError(t, db.Create(author).Error)

	project := &Project{Name: "tracker", Type: ProjectTypeBackEnd, AuthorID: author.ID}
	require.NoError(t, db.Create(project).Error)
	return author, project
}

func TestContributorUniqueness(t *testing.T) {
	db := setupTestDB(t)
	author, project := seedProject(t, db)

	member := &User{Username: "bob", Email: "bob@example.com", PasswordHash: "x", Age: 25, IsActive: true}
	require.NoError(t, db.Create(member).Error)

	require.NoError(t, db.Create(&Contributor{UserID: member.ID, ProjectID: project.ID}).Error)

	// A second row for the same (user, project) pair must fail with a
	// conflict, never silently duplicate.
	err := db.Create(&Contributor{UserID: member.ID, ProjectID: project.ID}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// The same user may still join another project.
	other := &Project{Name: "other", Type: ProjectTypeIOS, AuthorID: author.ID}
	require.NoError(t, db.Create(other).Error)
	assert.NoError(t, db.Create(&Contributor{UserID: member.ID, ProjectID: other.ID}).Error)
}

func TestCommentGetsUUIDPrimaryKey(t *testing.T) {
	db := setupTestDB(t)
	author, project := seedProject(t, db)

	issue := &Issue{Name: "bug", Tag: TagBug, ProjectID: project.ID, AuthorID: author.ID}
	require.NoError(t, db.Create(issue).Error)

	first := &Comment{Description: "a", IssueID: issue.ID, AuthorID: author.ID}
	second := &Comment{Description: "b", IssueID: issue.ID, AuthorID: author.ID}
	require.NoError(t, db.Create(first).Error)
	require.NoError(t, db.Create(second).Error)

	assert.NotEmpty(t, first.ID)
	assert.NotEmpty(t, second.ID)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestResolveProject(t *testing.T) {
	db := setupTestDB(t)
	author, project := seedProject(t, db)

	resolved, err := project.ResolveProject(db)
	require.NoError(t, err)
	assert.Equal(t, project.ID, resolved.ID)

	contributor := &Contributor{UserID: author.ID, ProjectID: project.ID}
	require.NoError(t, db.Create(contributor).Error)
	resolved, err = contributor.ResolveProject(db)
	require.NoError(t, err)
	assert.Equal(t, project.ID, resolved.ID)

	issue := &Issue{Name: "bug", Tag: TagBug, ProjectID: project.ID, AuthorID: author.ID}
	require.NoError(t, db.Create(issue).Error)
	resolved, err = issue.ResolveProject(db)
	require.NoError(t, err)
	assert.Equal(t, project.ID, resolved.ID)

	comment := &Comment{Description: "c", IssueID: issue.ID, AuthorID: author.ID}
	require.NoError(t, db.Create(comment).Error)
	resolved, err = comment.ResolveProject(db)
	require.NoError(t, err)
	assert.Equal(t, project.ID, resolved.ID)

	// A comment on a missing issue cannot resolve.
	orphan := &Comment{Description: "d", IssueID: 9999, AuthorID: author.ID}
	_, err = orphan.ResolveProject(db)
	assert.Error(t, err)
}

func TestIssueDefaults(t *testing.T) {
	db := setupTestDB(t)
	author, project := seedProject(t, db)

	issue := &Issue{Name: "task", Tag: TagTask, ProjectID: project.ID, AuthorID: author.ID}
	require.NoError(t, db.Create(issue).Error)

	var loaded Issue
	require.NoError(t, db.First(&loaded, issue.ID).Error)
	assert.Equal(t, PriorityMedium, loaded.Priority)
	assert.Equal(t, StatusToDo, loaded.Status)
}

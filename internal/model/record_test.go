package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdhoang/github-user-scraper/internal/githubapi"
)

func TestUserFromAPI(t *testing.T) {
	resp := &githubapi.UserResponse{
		ID:          583231,
		Login:       "octocat",
		Name:        "The Octocat",
		Company:     "@github ",
		Location:    "San Francisco",
		Email:       "octocat@github.com",
		Hireable:    true,
		Bio:         "Mascot",
		PublicRepos: 8,
		Followers:   12000,
		Following:   9,
		CreatedAt:   "2011-01-25T18:44:36Z",
	}

	user := UserFromAPI(resp)

	assert.Equal(t, int64(583231), user.ID)
	assert.Equal(t, "octocat", user.Login)
	assert.Equal(t, "GITHUB", user.Company)
	assert.Equal(t, "2011-01-25T18:44:36Z", user.AccountCreatedAt)

	row := user.CSVRow()
	require.Len(t, row, len(UserHeader()))
	assert.Equal(t, "octocat", row[0])
	assert.Equal(t, "true", row[5])
	assert.Equal(t, "12000", row[8])
}

func TestUserFromAPI_MissingOptionals(t *testing.T) {
	// Null company/email/bio decode to empty strings; the record keeps
	// them empty instead of failing.
	user := UserFromAPI(&githubapi.UserResponse{ID: 1, Login: "ghost"})

	assert.Equal(t, "", user.Company)
	assert.Equal(t, "", user.Email)
	assert.Equal(t, "", user.Bio)
	assert.False(t, user.Hireable)

	row := user.CSVRow()
	require.Len(t, row, len(UserHeader()))
	assert.Equal(t, "false", row[5])
	assert.Equal(t, "0", row[7])
}

func TestRepoFromAPI(t *testing.T) {
	resp := &githubapi.RepoResponse{
		ID:              1296269,
		Name:            "Hello-World",
		FullName:        "octocat/Hello-World",
		Language:        "Go",
		StargazersCount: 1900,
		ForksCount:      1100,
		WatchersCount:   1900,
		OpenIssuesCount: 42,
		HasProjects:     true,
		HasWiki:         false,
		License:         &githubapi.RepoLicense{Key: "mit", Name: "MIT License"},
		Topics:          []string{"example", "octocat"},
		CreatedAt:       "2011-01-26T19:01:12Z",
		PushedAt:        "2024-03-01T08:00:00Z",
	}

	repo := RepoFromAPI("octocat", resp)

	assert.Equal(t, "octocat", repo.Login)
	assert.Equal(t, "mit", repo.LicenseName)
	assert.Equal(t, "example;octocat", repo.Topics)

	row := repo.CSVRow()
	require.Len(t, row, len(RepoHeader()))
	assert.Equal(t, "octocat", row[0])
	assert.Equal(t, "octocat/Hello-World", row[1])
	assert.Equal(t, "1900", row[4])
	assert.Equal(t, "true", row[8])
	assert.Equal(t, "false", row[9])
	assert.Equal(t, "example;octocat", row[11])
}

func TestRepoFromAPI_NoLicense(t *testing.T) {
	repo := RepoFromAPI("octocat", &githubapi.RepoResponse{ID: 2, FullName: "octocat/empty"})

	assert.Equal(t, "", repo.LicenseName)
	assert.Equal(t, "", repo.Topics)
}

func TestMessageRoundTrip(t *testing.T) {
	user := UserFromAPI(&githubapi.UserResponse{ID: 7, Login: "dev", Followers: 150, CreatedAt: "2020-01-01T00:00:00Z"})
	msg := UserMessageFrom(&user)

	assert.Equal(t, user.ID, msg.ID)
	assert.Equal(t, user.Login, msg.Login)
	assert.Equal(t, user.Followers, msg.Followers)
	assert.Equal(t, user.AccountCreatedAt, msg.CreatedAt)

	repo := RepoFromAPI("dev", &githubapi.RepoResponse{ID: 8, FullName: "dev/tool", StargazersCount: 3})
	repoMsg := RepoMessageFrom(&repo)

	assert.Equal(t, repo.ID, repoMsg.ID)
	assert.Equal(t, repo.Login, repoMsg.Login)
	assert.Equal(t, repo.StarCount, repoMsg.StarCount)
}

// Package githubapi calls the GitHub REST API over plain HTTP and maps
// the responses onto flat structs. It owns authentication, pagination
// parameters and the rate-limit header contract.

package githubapi

// SearchUser is one item of a /search/users page. The search endpoint
// only returns a stub; the full profile needs a second request.
type SearchUser struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
}

type SearchUsersResponse struct {
	TotalCount        int          `json:"total_count"`
	IncompleteResults bool         `json:"incomplete_results"`
	Items             []SearchUser `json:"items"`
}

// UserResponse is a full profile from /users/{login}. Optional fields
// (company, email, bio, name) come back as null and decode to "".
type UserResponse struct {
	ID          int64  `json:"id"`
	Login       string `json:"login"`
	Name        string `json:"name"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Email       string `json:"email"`
	Hireable    bool   `json:"hireable"`
	Bio         string `json:"bio"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
	CreatedAt   string `json:"created_at"`
}

type RepoOwner struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
}

type RepoLicense struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// RepoResponse is one item of a /users/{login}/repos page.
type RepoResponse struct {
	ID              int64        `json:"id"`
	Name            string       `json:"name"`
	FullName        string       `json:"full_name"`
	Owner           RepoOwner    `json:"owner"`
	Language        string       `json:"language"`
	StargazersCount int          `json:"stargazers_count"`
	ForksCount      int          `json:"forks_count"`
	WatchersCount   int          `json:"watchers_count"`
	OpenIssuesCount int          `json:"open_issues_count"`
	HasProjects     bool         `json:"has_projects"`
	HasWiki         bool         `json:"has_wiki"`
	License         *RepoLicense `json:"license"`
	Topics          []string     `json:"topics"`
	CreatedAt       string       `json:"created_at"`
	PushedAt        string       `json:"pushed_at"`
}

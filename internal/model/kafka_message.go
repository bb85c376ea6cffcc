package model

// UserMessage is the user record shape sent to Kafka.
type UserMessage struct {
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

// RepoMessage is the repository record shape sent to Kafka.
type RepoMessage struct {
	ID          int64  `json:"id"`
	Login       string `json:"login"`
	Name        string `json:"name"`
	FullName    string `json:"full_name"`
	Language    string `json:"language"`
	StarCount   int    `json:"star_count"`
	ForkCount   int    `json:"fork_count"`
	WatchCount  int    `json:"watch_count"`
	IssueCount  int    `json:"issue_count"`
	HasProjects bool   `json:"has_projects"`
	HasWiki     bool   `json:"has_wiki"`
	LicenseName string `json:"license_name"`
	Topics      string `json:"topics"`
	CreatedAt   string `json:"created_at"`
	PushedAt    string `json:"pushed_at"`
}

// UserMessageFrom builds the Kafka payload for a collected user.
func UserMessageFrom(u *User) UserMessage {
	return UserMessage{
		ID:          u.ID,
		Login:       u.Login,
		Name:        u.Name,
		Company:     u.Company,
		Location:    u.Location,
		Email:       u.Email,
		Hireable:    u.Hireable,
		Bio:         u.Bio,
		PublicRepos: u.PublicRepos,
		Followers:   u.Followers,
		Following:   u.Following,
		CreatedAt:   u.AccountCreatedAt,
	}
}

// RepoMessageFrom builds the Kafka payload for a collected repository.
func RepoMessageFrom(r *Repo) RepoMessage {
	return RepoMessage{
		ID:          r.ID,
		Login:       r.Login,
		Name:        r.Name,
		FullName:    r.FullName,
		Language:    r.Language,
		StarCount:   r.StarCount,
		ForkCount:   r.ForkCount,
		WatchCount:  r.WatchCount,
		IssueCount:  r.IssueCount,
		HasProjects: r.HasProjects,
		HasWiki:     r.HasWiki,
		LicenseName: r.LicenseName,
		Topics:      r.Topics,
		CreatedAt:   r.RepoCreated,
		PushedAt:    r.RepoPushed,
	}
}

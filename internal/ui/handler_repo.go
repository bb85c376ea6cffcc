package ui

import (
	"net/http"

	"github.com/tdhoang/github-user-scraper/internal/model"
)

type RepoView struct {
	ID          int64  `json:"id"`
	Login       string `json:"login"`
	Name        string `json:"name"`
	FullName    string `json:"fullName"`
	Language    string `json:"language"`
	StarCount   int    `json:"starCount"`
	ForkCount   int    `json:"forkCount"`
	WatchCount  int    `json:"watchCount"`
	IssueCount  int    `json:"issueCount"`
	LicenseName string `json:"licenseName"`
	Topics      string `json:"topics"`
	CreatedAt   string `json:"createdAt"`
	PushedAt    string `json:"pushedAt"`
}

func (h *Handler) getRepos(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)

	search := r.URL.Query().Get("search")
	login := r.URL.Query().Get("login")
	offset := (page - 1) * pageSize
	query := h.db.Offset(offset).Limit(pageSize).Order("star_count DESC")

	if search != "" {
		search = "%" + search + "%"
		query = query.Where("full_name LIKE ? OR language LIKE ?", search, search)
	}
	if login != "" {
		query = query.Where("login = ?", login)
	}

	var repos []model.Repo
	result := query.Find(&repos)
	if result.Error != nil {
		h.Logger.Error(r.Context(), "Failed to fetch repositories: %v", result.Error)
		http.Error(w, "Failed to fetch repositories", http.StatusInternalServerError)
		return
	}

	var totalCount int64
	countQuery := h.db.Model(&model.Repo{})
	if search != "" {
		countQuery = countQuery.Where("full_name LIKE ? OR language LIKE ?", search, search)
	}
	if login != "" {
		countQuery = countQuery.Where("login = ?", login)
	}
	countQuery.Count(&totalCount)

	views := make([]RepoView, 0, len(repos))
	for _, repo := range repos {
		views = append(views, RepoView{
			ID:          repo.ID,
			Login:       repo.Login,
			Name:        repo.Name,
			FullName:    repo.FullName,
			Language:    repo.Language,
			StarCount:   repo.StarCount,
			ForkCount:   repo.ForkCount,
			WatchCount:  repo.WatchCount,
			IssueCount:  repo.IssueCount,
			LicenseName: repo.LicenseName,
			Topics:      repo.Topics,
			CreatedAt:   repo.RepoCreated,
			PushedAt:    repo.RepoPushed,
		})
	}

	h.writeJSON(w, r, map[string]interface{}{
		"repositories": views,
		"pagination": map[string]interface{}{
			"page":       page,
			"pageSize":   pageSize,
			"totalCount": totalCount,
			"totalPages": (totalCount + int64(pageSize) - 1) / int64(pageSize),
		},
	})
}

package ui

import (
	"net/http"
	"strconv"

	"github.com/tdhoang/github-user-scraper/internal/model"
)

type UserView struct {
	ID          int64  `json:"id"`
	Login       string `json:"login"`
	Name        string `json:"name"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Email       string `json:"email"`
	Hireable    bool   `json:"hireable"`
	Bio         string `json:"bio"`
	PublicRepos int    `json:"publicRepos"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
	CreatedAt   string `json:"createdAt"`
}

func (h *Handler) getUsers(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)

	search := r.URL.Query().Get("search")
	offset := (page - 1) * pageSize
	query := h.db.Offset(offset).Limit(pageSize).Order("followers DESC")

	if search != "" {
		search = "%" + search + "%"
		query = query.Where("login LIKE ? OR name LIKE ? OR company LIKE ?", search, search, search)
	}

	var users []model.User
	result := query.Find(&users)
	if result.Error != nil {
		h.Logger.Error(r.Context(), "Failed to fetch users: %v", result.Error)
		http.Error(w, "Failed to fetch users", http.StatusInternalServerError)
		return
	}

	var totalCount int64
	countQuery := h.db.Model(&model.User{})
	if search != "" {
		countQuery = countQuery.Where("login LIKE ? OR name LIKE ? OR company LIKE ?", search, search, search)
	}
	countQuery.Count(&totalCount)

	views := make([]UserView, 0, len(users))
	for _, u := range users {
		views = append(views, UserView{
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
		})
	}

	h.writeJSON(w, r, map[string]interface{}{
		"users": views,
		"pagination": map[string]interface{}{
			"page":       page,
			"pageSize":   pageSize,
			"totalCount": totalCount,
			"totalPages": (totalCount + int64(pageSize) - 1) / int64(pageSize),
		},
	})
}

// pageParams parses the shared page/pageSize query parameters.
func pageParams(r *http.Request) (int, int) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	pageSize, err := strconv.Atoi(r.URL.Query().Get("pageSize"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		pageSize = 50
	}

	return page, pageSize
}

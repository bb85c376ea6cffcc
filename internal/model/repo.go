package model

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/tdhoang/github-user-scraper/cfg"
	"github.com/tdhoang/github-user-scraper/internal/githubapi"
	"github.com/tdhoang/github-user-scraper/pkg/db"
	"github.com/tdhoang/github-user-scraper/pkg/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repo is one repository owned by a collected user. Login is the owner
// handle and must match a User collected in the same run.
type Repo struct {
	Model
	ID          int64  `json:"id" gorm:"column:id;primaryKey;autoIncrement:false"`
	Login       string `json:"login" gorm:"column:login;type:varchar(255);index;not null"`
	Name        string `json:"name" gorm:"column:name;type:varchar(255);not null"`
	FullName    string `json:"full_name" gorm:"column:full_name;type:varchar(255);not null"`
	Language    string `json:"language" gorm:"column:language;type:varchar(100)"`
	StarCount   int    `json:"star_count" gorm:"column:star_count;default:0"`
	ForkCount   int    `json:"fork_count" gorm:"column:fork_count;default:0"`
	WatchCount  int    `json:"watch_count" gorm:"column:watch_count;default:0"`
	IssueCount  int    `json:"issue_count" gorm:"column:issue_count;default:0"`
	HasProjects bool   `json:"has_projects" gorm:"column:has_projects;default:false"`
	HasWiki     bool   `json:"has_wiki" gorm:"column:has_wiki;default:false"`
	LicenseName string `json:"license_name" gorm:"column:license_name;type:varchar(100)"`
	Topics      string `json:"topics" gorm:"column:topics;type:text"`
	RepoCreated string `json:"repo_created_at" gorm:"column:repo_created_at;type:varchar(40)"`
	RepoPushed  string `json:"repo_pushed_at" gorm:"column:repo_pushed_at;type:varchar(40)"`
}

func NewRepo(config *cfg.Config, logger log.Logger, db *db.Mysql) (*Repo, error) {
	repo := &Repo{
		Model: Model{
			Config: config,
			Logger: logger,
			Mysql:  db,
		},
	}
	return repo, nil
}

func (r *Repo) TableName() string {
	return "repos"
}

// RepoFromAPI maps a repository listing item onto a Repo for the given
// owner. A missing license maps to the empty string, topics join with
// ";" so the value survives a CSV round trip.
func RepoFromAPI(login string, resp *githubapi.RepoResponse) Repo {
	license := ""
	if resp.License != nil {
		license = resp.License.Key
	}

	return Repo{
		ID:          resp.ID,
		Login:       login,
		Name:        TruncateString(resp.Name, 250),
		FullName:    TruncateString(resp.FullName, 250),
		Language:    resp.Language,
		StarCount:   resp.StargazersCount,
		ForkCount:   resp.ForksCount,
		WatchCount:  resp.WatchersCount,
		IssueCount:  resp.OpenIssuesCount,
		HasProjects: resp.HasProjects,
		HasWiki:     resp.HasWiki,
		LicenseName: license,
		Topics:      strings.Join(resp.Topics, ";"),
		RepoCreated: resp.CreatedAt,
		RepoPushed:  resp.PushedAt,
	}
}

// RepoHeader is the repositories.csv column contract.
func RepoHeader() []string {
	return []string{
		"login", "full_name", "created_at", "pushed_at",
		"stargazers_count", "watchers_count", "forks_count", "language",
		"has_projects", "has_wiki", "license_name", "topics",
	}
}

// CSVRow renders the record in RepoHeader order.
func (r *Repo) CSVRow() []string {
	return []string{
		r.Login,
		r.FullName,
		r.RepoCreated,
		r.RepoPushed,
		strconv.Itoa(r.StarCount),
		strconv.Itoa(r.WatchCount),
		strconv.Itoa(r.ForkCount),
		r.Language,
		strconv.FormatBool(r.HasProjects),
		strconv.FormatBool(r.HasWiki),
		r.LicenseName,
		r.Topics,
	}
}

// Create upserts one repo row in the MySQL mirror.
func (r *Repo) Create(record *Repo) error {
	ctx := context.Background()

	db, err := r.Mysql.Db()
	if err != nil {
		r.Logger.Error(ctx, "Failed to get database connection: %v", err)
		return err
	}

	if err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"star_count", "fork_count", "watch_count", "issue_count",
			"language", "license_name", "topics", "repo_pushed_at", "updated_at",
		}),
	}).Create(record).Error; err != nil {
		r.Logger.Error(ctx, "Failed to create repo: %v", err)
		return err
	}

	return nil
}

// CreateBatch upserts a batch of repo messages, used by the Kafka consumer.
func (r *Repo) CreateBatch(messages []RepoMessage) error {
	db, err := r.Mysql.Db()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}

	repos := make([]Repo, 0, len(messages))
	for _, msg := range messages {
		repos = append(repos, Repo{
			ID:          msg.ID,
			Login:       msg.Login,
			Name:        msg.Name,
			FullName:    msg.FullName,
			Language:    msg.Language,
			StarCount:   msg.StarCount,
			ForkCount:   msg.ForkCount,
			WatchCount:  msg.WatchCount,
			IssueCount:  msg.IssueCount,
			HasProjects: msg.HasProjects,
			HasWiki:     msg.HasWiki,
			LicenseName: msg.LicenseName,
			Topics:      msg.Topics,
			RepoCreated: msg.CreatedAt,
			RepoPushed:  msg.PushedAt,
		})
	}

	return db.Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"star_count", "fork_count", "watch_count", "issue_count",
				"language", "license_name", "topics", "repo_pushed_at", "updated_at",
			}),
		}).CreateInBatches(repos, 100)

		if result.Error != nil {
			return fmt.Errorf("failed to batch create repositories: %w", result.Error)
		}

		return nil
	})
}

package model

import (
	"context"
	"fmt"
	"strconv"

	"github.com/tdhoang/github-user-scraper/cfg"
	"github.com/tdhoang/github-user-scraper/internal/githubapi"
	"github.com/tdhoang/github-user-scraper/pkg/db"
	"github.com/tdhoang/github-user-scraper/pkg/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// User is one collected GitHub profile. The same struct backs the CSV
// row and the MySQL mirror.
type User struct {
	Model
	ID               int64  `json:"id" gorm:"column:id;primaryKey;autoIncrement:false"`
	Login            string `json:"login" gorm:"column:login;type:varchar(255);uniqueIndex;not null"`
	Name             string `json:"name" gorm:"column:name;type:varchar(255)"`
	Company          string `json:"company" gorm:"column:company;type:varchar(255)"`
	Location         string `json:"location" gorm:"column:location;type:varchar(255)"`
	Email            string `json:"email" gorm:"column:email;type:varchar(255)"`
	Hireable         bool   `json:"hireable" gorm:"column:hireable;default:false"`
	Bio              string `json:"bio" gorm:"column:bio;type:text"`
	PublicRepos      int    `json:"public_repos" gorm:"column:public_repos;default:0"`
	Followers        int    `json:"followers" gorm:"column:followers;default:0"`
	Following        int    `json:"following" gorm:"column:following;default:0"`
	AccountCreatedAt string `json:"account_created_at" gorm:"column:account_created_at;type:varchar(40)"`
}

func NewUser(config *cfg.Config, logger log.Logger, db *db.Mysql) (*User, error) {
	user := &User{
		Model: Model{
			Config: config,
			Logger: logger,
			Mysql:  db,
		},
	}
	return user, nil
}

func (u *User) TableName() string {
	return "users"
}

// UserFromAPI maps a profile response onto a User. Optional fields that
// the API returns as null have already decoded to their empty values;
// company additionally gets normalized.
func UserFromAPI(resp *githubapi.UserResponse) User {
	return User{
		ID:               resp.ID,
		Login:            resp.Login,
		Name:             TruncateString(resp.Name, 250),
		Company:          CleanCompany(resp.Company),
		Location:         TruncateString(resp.Location, 250),
		Email:            TruncateString(resp.Email, 250),
		Hireable:         resp.Hireable,
		Bio:              TruncateString(resp.Bio, 250),
		PublicRepos:      resp.PublicRepos,
		Followers:        resp.Followers,
		Following:        resp.Following,
		AccountCreatedAt: resp.CreatedAt,
	}
}

// UserHeader is the users.csv column contract. Order is stable; the
// downstream analysis depends on exact column identity.
func UserHeader() []string {
	return []string{
		"login", "name", "company", "location", "email", "hireable",
		"bio", "public_repos", "followers", "following", "created_at",
	}
}

// CSVRow renders the record in UserHeader order.
func (u *User) CSVRow() []string {
	return []string{
		u.Login,
		u.Name,
		u.Company,
		u.Location,
		u.Email,
		strconv.FormatBool(u.Hireable),
		u.Bio,
		strconv.Itoa(u.PublicRepos),
		strconv.Itoa(u.Followers),
		strconv.Itoa(u.Following),
		u.AccountCreatedAt,
	}
}

// Create upserts one user row in the MySQL mirror.
func (u *User) Create(record *User) error {
	ctx := context.Background()

	db, err := u.Mysql.Db()
	if err != nil {
		u.Logger.Error(ctx, "Failed to get database connection: %v", err)
		return err
	}

	if err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "company", "location", "email", "hireable", "bio",
			"public_repos", "followers", "following", "updated_at",
		}),
	}).Create(record).Error; err != nil {
		u.Logger.Error(ctx, "Failed to create user: %v", err)
		return err
	}

	return nil
}

// CreateBatch upserts a batch of user messages, used by the Kafka consumer.
func (u *User) CreateBatch(messages []UserMessage) error {
	db, err := u.Mysql.Db()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}

	users := make([]User, 0, len(messages))
	for _, msg := range messages {
		users = append(users, User{
			ID:               msg.ID,
			Login:            msg.Login,
			Name:             msg.Name,
			Company:          msg.Company,
			Location:         msg.Location,
			Email:            msg.Email,
			Hireable:         msg.Hireable,
			Bio:              msg.Bio,
			PublicRepos:      msg.PublicRepos,
			Followers:        msg.Followers,
			Following:        msg.Following,
			AccountCreatedAt: msg.CreatedAt,
		})
	}

	return db.Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "company", "location", "email", "hireable", "bio",
				"public_repos", "followers", "following", "updated_at",
			}),
		}).CreateInBatches(users, 100)

		if result.Error != nil {
			return fmt.Errorf("failed to batch create users: %w", result.Error)
		}

		return nil
	})
}

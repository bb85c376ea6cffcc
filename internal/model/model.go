package model

import (
	"time"

	"github.com/tdhoang/github-user-scraper/cfg"
	"github.com/tdhoang/github-user-scraper/pkg/db"
	"github.com/tdhoang/github-user-scraper/pkg/log"
)

type Model struct {
	Config    *cfg.Config `gorm:"-"`
	Logger    log.Logger  `gorm:"-"`
	Mysql     *db.Mysql   `gorm:"-"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

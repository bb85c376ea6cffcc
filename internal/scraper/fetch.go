package scraper

import (
	"context"

	"github.com/tdhoang/github-user-scraper/internal/githubapi"
	"github.com/tdhoang/github-user-scraper/internal/model"
)

// processUser fetches one candidate's full profile and repositories and
// writes them to every attached sink. A user that vanished between the
// search page and the profile fetch is skipped, not fatal.
func (s *Scraper) processUser(ctx context.Context, login string, stats *Stats) error {
	resp, err := s.Caller.GetUser(ctx, login)
	if err != nil {
		if githubapi.IsNotFound(err) {
			s.Logger.Warn(ctx, "User %s no longer exists, skipping", login)
			stats.UsersSkipped++
			return nil
		}
		if githubapi.IsMalformed(err) {
			s.Logger.Error(ctx, "Undecodable profile for %s, skipping: %v", login, err)
			stats.UsersSkipped++
			return nil
		}
		return err
	}

	user := model.UserFromAPI(resp)

	if err := s.usersCSV.Write(user.CSVRow()); err != nil {
		return err
	}
	if s.userMd != nil {
		if err := s.userMd.Create(&user); err != nil {
			s.Logger.Error(ctx, "MySQL mirror write failed for user %s: %v", login, err)
		}
	}
	if s.userProducer != nil {
		if err := s.userProducer.Publish(ctx, "user", model.UserMessageFrom(&user)); err != nil {
			s.Logger.Error(ctx, "Kafka publish failed for user %s: %v", login, err)
		}
	}
	stats.UsersCollected++

	return s.fetchRepos(ctx, login, stats)
}

// fetchRepos pages through the user's repositories with the same batch
// and stop rules as the user search, bounded by the per-user cap.
func (s *Scraper) fetchRepos(ctx context.Context, login string, stats *Stats) error {
	perPage := s.Config.Search.PerPage
	if perPage <= 0 || perPage > 100 {
		perPage = 100
	}
	maxRepos := s.Config.Search.MaxRepos
	if maxRepos <= 0 {
		maxRepos = 500
	}

	collected := 0
	page := 1
	for collected < maxRepos {
		repos, err := s.Caller.ListRepos(ctx, login, page, perPage)
		if err != nil {
			if githubapi.IsNotFound(err) {
				s.Logger.Warn(ctx, "Repositories for %s not found, skipping", login)
				return nil
			}
			if githubapi.IsMalformed(err) {
				s.Logger.Error(ctx, "Undecodable repo page %d for %s, skipping rest: %v", page, login, err)
				return nil
			}
			return err
		}

		if len(repos) == 0 {
			break
		}

		for i := range repos {
			if collected >= maxRepos {
				break
			}
			repo := model.RepoFromAPI(login, &repos[i])

			if err := s.reposCSV.Write(repo.CSVRow()); err != nil {
				return err
			}
			if s.repoMd != nil {
				if err := s.repoMd.Create(&repo); err != nil {
					s.Logger.Error(ctx, "MySQL mirror write failed for repo %s: %v", repo.FullName, err)
				}
			}
			if s.repoProducer != nil {
				if err := s.repoProducer.Publish(ctx, "repo", model.RepoMessageFrom(&repo)); err != nil {
					s.Logger.Error(ctx, "Kafka publish failed for repo %s: %v", repo.FullName, err)
				}
			}
			collected++
			stats.ReposCollected++
		}

		if len(repos) < perPage {
			break
		}
		page++
	}

	return nil
}

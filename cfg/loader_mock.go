package cfg

type MockLoader struct{}

func NewMockLoader() (*MockLoader, error) {
	return &MockLoader{}, nil
}

func (ml *MockLoader) Load() (*Config, error) {
	return &Config{
		// App
		App: App{
			Name:    "github-user-scraper",
			Version: "0.0.1",
		},

		// Mysql
		Mysql: Mysql{
			Host:                  "127.0.0.1",
			Password:              "root",
			Username:              "root",
			Port:                  "3306",
			Database:              "github_user_scraper",
			MaxIdleConnection:     10,
			MaxOpenConnection:     100,
			MaxLifeTimeConnection: 3600,
		},

		// GithubApi
		GithubApi: GithubApi{
			AccessToken:       "",
			ApiUrl:            "https://api.github.com",
			RequestsPerSecond: 1.2,
			MaxRetries:        3,
			RetryDelayMs:      1000,
			RateLimitResetMin: 1,
		},

		// Search
		Search: Search{
			Location:     "Sydney",
			MinFollowers: 100,
			MinRepos:     0,
			MaxUsers:     1000,
			MaxRepos:     500,
			PerPage:      100,
		},

		// Output
		Output: Output{
			Dir:       ".",
			UsersFile: "users.csv",
			ReposFile: "repositories.csv",
		},

		// Kafka
		Kafka: Kafka{
			Enabled:   false,
			Brokers:   []string{"127.0.0.1:9092"},
			TopicUser: "scraper.users",
			TopicRepo: "scraper.repos",
		},

		// Storage
		Storage: Storage{
			MysqlEnabled: false,
		},
	}, nil
}

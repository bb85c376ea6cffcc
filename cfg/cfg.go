package cfg

type (
	App struct {
		Name    string
		Version string
	}

	Mysql struct {
		Host                  string
		Port                  string
		Username              string
		Password              string
		Database              string
		MaxIdleConnection     int
		MaxOpenConnection     int
		MaxLifeTimeConnection int
	}

	GithubApi struct {
		AccessToken       string
		ApiUrl            string
		RequestsPerSecond float64
		MaxRetries        int
		RetryDelayMs      int
		RateLimitResetMin int
	}

	Search struct {
		Location     string
		MinFollowers int
		MinRepos     int
		MaxUsers     int
		MaxRepos     int
		PerPage      int
	}

	Output struct {
		Dir       string
		UsersFile string
		ReposFile string
	}

	Kafka struct {
		Enabled   bool
		Brokers   []string
		TopicUser string
		TopicRepo string
	}

	Storage struct {
		MysqlEnabled bool
	}
)

type Config struct {
	App       App
	Mysql     Mysql
	GithubApi GithubApi
	Search    Search
	Output    Output
	Kafka     Kafka
	Storage   Storage
}

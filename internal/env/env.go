package env

import "os"

func IsGithubAction() bool {
	return os.Getenv("GITHUB_ACTIONS") == "true"
}

// Returns the personal access token supplied via the environment, which takes
// precedence over the one stored in the config file.
func AccessToken() string {
	return os.Getenv("WITCTL_ACCESS_TOKEN")
}

func ServerURL() string {
	return os.Getenv("WITCTL_SERVER_URL")
}

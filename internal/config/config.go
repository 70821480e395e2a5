package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/witctl/witctl/internal/env"
)

var (
	vCfg   = viper.New()
	cfgDir string
)

func Load() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	cfgDir = filepath.Join(home, ".witctl")

	vCfg.SetConfigName("config")
	vCfg.SetConfigType("yaml")
	vCfg.AddConfigPath(cfgDir)

	if err := vCfg.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}

	return nil
}

func GetServerURL() string {
	if url := env.ServerURL(); url != "" {
		return url
	}

	return vCfg.GetString("server_url")
}

func GetCollection() string {
	return vCfg.GetString("collection")
}

func GetAccessToken() string {
	if token := env.AccessToken(); token != "" {
		return token
	}

	return vCfg.GetString("access_token")
}

func GetDefaultProject() string {
	return vCfg.GetString("project")
}

func SetAuthInfo(serverURL, collection, accessToken string) error {
	vCfg.Set("server_url", serverURL)
	vCfg.Set("collection", collection)
	vCfg.Set("access_token", accessToken)
	return save()
}

func SetDefaultProject(project string) error {
	vCfg.Set("project", project)
	return save()
}

func ClearAuthInfo() error {
	vCfg.Set("server_url", "")
	vCfg.Set("collection", "")
	vCfg.Set("access_token", "")
	return save()
}

func save() error {
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		return err
	}

	if err := vCfg.WriteConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}

		if err := vCfg.SafeWriteConfig(); err != nil {
			return err
		}
	}

	return nil
}

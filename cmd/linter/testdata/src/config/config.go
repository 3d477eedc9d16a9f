package config

import "os"

func Load() (string, bool) {
	key := os.Getenv("DD_API_KEY")
	_, ok := os.LookupEnv("DD_APP_KEY")
	return key, ok
}

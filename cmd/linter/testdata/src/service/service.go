package service

import (
	"log"
	"os"
)

func Key() string {
	key := os.Getenv("DD_API_KEY") // want "os.Getenv reads the environment outside package config"

	if _, ok := os.LookupEnv("DD_APP_KEY"); !ok { // want "os.LookupEnv reads the environment outside package config"
		panic("missing key") // want "found usage of panic"
	}
	if key == "" {
		log.Fatal("missing key") // want "found usage of log.Fatal outside of main function"
	}
	return key
}

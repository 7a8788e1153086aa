package main

import (
	"flag"
	"fmt"
	"time"

	"flickr-embed/infrastructure/configuration"
	"flickr-embed/infrastructure/utils"

	"github.com/sirupsen/logrus"
)

func main() {
	subject := flag.String("subject", "", "Who the token is for, e.g. the wiki host calling /api.")
	ttl := flag.Duration("ttl", 24*time.Hour, "How long the token stays valid.")
	flag.Parse()

	if *subject == "" {
		logrus.Fatal("-subject is required")
	}

	configuration.LoadEnvFromFile("config.env", ".env")
	configuration.Normalize(&configuration.C)

	token, err := utils.IssueToken(*subject, *ttl, configuration.C.App.SecretKey)
	if err != nil {
		logrus.Fatal(err)
	}
	fmt.Println(token)
}

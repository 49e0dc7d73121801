package main

import (
	"flag"
	"math/rand"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"

	"chirper/crud"
	"chirper/http"
	"chirper/storage"
)

// main is the app's entry point.
func main() {
	// Check if the flag "-prod" has been provided. It means that we're running in production.
	productionBool := flag.Bool("prod", false, "Provide this flag in production to ensure that a .config.json file is provided before the application starts.")
	flag.Parse()

	// Load configuration from a .config.json file if present, otherwise use
	// the default dev setup. In production the file is required.
	config := LoadConfig(*productionBool)

	// Open a database connection and execute migrations.
	db := NewDB(config.Database.ConnectionInfo())
	err := Open(db, config.IsProd())
	must(err)
	defer Close(db)
	err = AutoMigrate(db)
	must(err)

	// Start the crud services. The suggestion service gets a seeded random
	// source for its who-to-follow sampling.
	services, err := crud.NewServices(
		db.Gorm,
		crud.WithUser(config.HMACKey, config.Pepper),
		crud.WithOAuth(),
		crud.WithTopic(),
		crud.WithTweet(),
		crud.WithFeed(),
		crud.WithSuggestion(rand.New(rand.NewSource(time.Now().UnixNano()))),
		crud.WithFollow(),
		crud.WithLike(),
		crud.WithComment(),
		crud.WithRetweet(),
		crud.WithNotification(),
	)
	must(err)

	// Create an oauth config object for doing oauth with Github.
	githubOAuth := &oauth2.Config{
		ClientID:     config.Github.ID,
		ClientSecret: config.Github.Secret,
		RedirectURL:  config.Github.RedirectURL,
		Endpoint:     github.Endpoint,
	}

	// Set up a webserver.
	server := http.NewServer(
		[]byte(config.CSRFKey),
		config.IsProd(),
		githubOAuth,
		services.User,
		services.OAuth,
		services.Tweet,
		services.Feed,
		services.Suggestion,
		services.Follow,
		services.Like,
		services.Comment,
		services.Retweet,
		services.Notification,
		storage.NewImageService(),
	)

	// Serve the app.
	server.Run(config.Port)
}

// must is a little helper for shortening the panic instruction.
func must(err error) {
	if err != nil {
		panic(err)
	}
}

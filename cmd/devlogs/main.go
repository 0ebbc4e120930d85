package main

import (
	"log"
	"time"

	"github.com/eringen/devlogs"
	"github.com/eringen/devlogs/views"
)

func main() {
	cfg := devlogs.SiteConfig{
		Name:        devlogs.EnvOr("SITE_NAME", "Devlogs"),
		URL:         devlogs.EnvOr("SITE_URL", "http://localhost:3000"),
		Description: devlogs.EnvOr("SITE_DESCRIPTION", "A place to write and connect for devs."),
		Author:      devlogs.EnvOr("SITE_AUTHOR", ""),

		Addr:          devlogs.EnvOr("ADDR", ":3000"),
		PageStorePath: devlogs.EnvOr("PAGE_STORE_PATH", "data/pages.db"),

		ProjectID: devlogs.MustEnv("CONTENT_PROJECT_ID"),
		Dataset:   devlogs.MustEnv("CONTENT_DATASET"),
		APIToken:  devlogs.MustEnv("CONTENT_API_TOKEN"),

		SessionSecret: devlogs.MustEnv("SESSION_SECRET"),
		CookieSecure:  devlogs.EnvOr("COOKIE_SECURE", "") == "true",

		RevalidateWindow: 60 * time.Second,
	}

	app := devlogs.New(cfg, views.Funcs())
	defer app.Close()

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}

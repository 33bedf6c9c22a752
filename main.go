package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"

	"github.com/twitters/twitters/database"
	"github.com/twitters/twitters/gemini"
	"github.com/twitters/twitters/helpers"
	"github.com/twitters/twitters/moderation"
	"github.com/twitters/twitters/overlay"
	"github.com/twitters/twitters/router"
	"github.com/twitters/twitters/shield"
	"github.com/twitters/twitters/twitter"
	"github.com/twitters/twitters/workflow"
)

func main() {
	// Get key-value in .env file
	godotenv.Load()

	zipkinClient, serverMiddleware := helpers.InitTracer()
	helpers.InitNATS()
	database.InitCache()

	feed := database.NewFeed()
	if os.Getenv("DEMO_FEED") == "true" {
		feed.Seed()
	}
	accounts := database.NewAccounts()

	// Convert the concrete client before it becomes an interface, so
	// a disabled tracer stays a plain nil and the clients fall back
	// to http.DefaultClient.
	var moderationDoer gemini.Doer
	var remoteDoer twitter.Doer
	if zipkinClient != nil {
		moderationDoer = zipkinClient
		remoteDoer = zipkinClient
	}

	ai := gemini.NewClient(moderationDoer)
	gate := moderation.NewGate(ai)
	engine := shield.NewEngine()
	remote := twitter.NewClient(remoteDoer)
	flow := workflow.New(gate, engine, remote, helpers.EventPublisher{}, feed, accounts)
	guard := overlay.NewShield(overlay.DefaultHold)

	// Refresh feed statistics every hour
	c := cron.New()
	c.AddFunc("@hourly", func() {
		helpers.SetFeedSize(feed.Len())
		log.Println("Feed statistics refreshed:", feed.Len(), "posts")
	})
	c.Start()

	// Create a middleware to count requests
	middleware := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/metrics" {
				next.ServeHTTP(w, r)
			} else {
				start := time.Now()
				helpers.IncrementRequests()

				next.ServeHTTP(w, r)

				helpers.ObserveRequestDuration(time.Since(start).Seconds())
			}
		})
	}

	// Create routes
	mux := http.NewServeMux()
	mux.HandleFunc("/", router.Index)
	mux.HandleFunc("/session", router.SessionHandler())
	mux.HandleFunc("/posts/", router.PostHandler(flow, feed))
	mux.HandleFunc("/comment/", router.CommentHandler(flow, feed))
	mux.HandleFunc("/like/", router.LikeHandler(feed))
	mux.HandleFunc("/caption", router.CaptionHandler(ai))
	mux.HandleFunc("/connect", router.ConnectHandler(accounts))
	mux.HandleFunc("/shield/event", router.ShieldHandler(guard))
	mux.Handle("/metrics", promhttp.HandlerFor(helpers.GetRegistery(), promhttp.HandlerOpts{}))

	log.Println("Server is starting on port", os.Getenv("PORT"))

	// Create web server
	server := &http.Server{
		Addr:              ":" + os.Getenv("PORT"),
		ReadHeaderTimeout: 3 * time.Second,
	}
	server.Handler = serverMiddleware(middleware(mux))

	if err := server.ListenAndServe(); err != nil {
		panic(err)
	}
}

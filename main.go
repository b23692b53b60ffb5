package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"busyatra/internal/catalog"
	intconfig "busyatra/internal/config"
	router "busyatra/internal/http"
	h "busyatra/internal/http/handlers"
	"busyatra/internal/repositories"
	"busyatra/internal/services"
	"busyatra/internal/worker"

	"github.com/gin-gonic/gin"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := intconfig.OpenStore(ctx, env)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer st.Close()

	cat, err := catalog.Default()
	if err != nil {
		log.Fatalf("load catalog: %v", err)
	}

	bookingRepo := repositories.NewBookingRepo(st)
	history := repositories.NewSearchHistoryRepo(st)
	drafts := repositories.NewPassengerDraftRepo(st)
	bookings := services.BookingService{Bookings: bookingRepo, Location: env.Location}
	selections := services.NewSelectionService(cat, bookingRepo, env.SelectionTTL, env.Location)

	api := &h.API{
		StoreDriver: env.StoreDriver,
		Search:      services.SearchService{Catalog: cat, Bookings: bookingRepo, History: history, Location: env.Location},
		Bookings:    bookings,
		Selections:  selections,
		Checkout:    &services.CheckoutService{Selections: selections, Buses: cat, Bookings: bookings, Drafts: drafts},
		History:     history,
		Preferences: repositories.NewPreferencesRepo(st),
		Drafts:      drafts,
	}
	r := router.NewRouter(env, api)

	housekeeper := worker.NewHousekeeper(bookings, selections, env.CompletionInterval)
	go func() {
		if err := housekeeper.Run(ctx); err != nil {
			log.Printf("housekeeper stopped: %v", err)
		}
	}()

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server listening on http://localhost%s (store=%s)", env.AppAddr, env.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server shutdown failed: %v", err)
	}

	log.Println("Server stopped cleanly.")
}

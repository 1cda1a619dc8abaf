// Seeder loads a demo catalog so the API has hotels and rooms to serve.
// Hotels are seeded concurrently through the catalog service with a bounded
// worker pool.
package main

import (
	"context"
	"database/sql"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"github.com/adityasingh1790/hotel-booking-system/internal/adapters/observability"
	redisad "github.com/adityasingh1790/hotel-booking-system/internal/adapters/redis"
	"github.com/adityasingh1790/hotel-booking-system/internal/app"
	"github.com/adityasingh1790/hotel-booking-system/internal/domain"
	"github.com/adityasingh1790/hotel-booking-system/internal/shared"
	mysqlrepo "github.com/adityasingh1790/hotel-booking-system/internal/storage/mysql"
)

type seedHotel struct {
	hotel domain.Hotel
	rooms []domain.Room
}

var demoCatalog = []seedHotel{
	{
		hotel: domain.Hotel{Name: "Acme Grand", Location: "NYC", Amenities: "wifi, gym, pool"},
		rooms: []domain.Room{
			{RoomType: "single", Price: 100, Available: true},
			{RoomType: "double", Price: 160, Available: true},
			{RoomType: "suite", Price: 320, Available: true},
		},
	},
	{
		hotel: domain.Hotel{Name: "Harbor View", Location: "San Francisco", Amenities: "wifi, breakfast"},
		rooms: []domain.Room{
			{RoomType: "single", Price: 120, Available: true},
			{RoomType: "double", Price: 190, Available: true},
		},
	},
	{
		hotel: domain.Hotel{Name: "Lakeside Inn", Location: "Chicago", Amenities: "wifi, parking"},
		rooms: []domain.Room{
			{RoomType: "double", Price: 140, Available: true},
			{RoomType: "family", Price: 210, Available: true},
		},
	},
}

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)
	log.Info().Int("workers", cfg.SeedWorkers).Int("hotels", len(demoCatalog)).Msg("seeder starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	catalog := app.NewCatalogService(repo, cache, cfg.CacheTTL)

	sem := semaphore.NewWeighted(int64(cfg.SeedWorkers))
	var wg sync.WaitGroup

	for _, sh := range demoCatalog {
		sh := sh

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)

			hotel, err := catalog.CreateHotel(ctx, sh.hotel)
			if err != nil {
				log.Warn().Str("hotel", sh.hotel.Name).Err(err).Msg("seed hotel failed")
				return
			}
			for _, room := range sh.rooms {
				room.HotelID = hotel.ID
				if _, err := catalog.CreateRoom(ctx, room); err != nil {
					log.Warn().Int64("hotel_id", hotel.ID).Str("type", room.RoomType).Err(err).Msg("seed room failed")
				}
			}
			log.Info().Int64("id", hotel.ID).Str("name", hotel.Name).Msg("hotel seeded")
		}()
	}

	wg.Wait()
	log.Info().Msg("seeding completed")
}

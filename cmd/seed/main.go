package main

import (
	"context"
	"log"

	"bookshelf/internal/book"
	"bookshelf/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

func strPtr(s string) *string { return &s }

func main() {
	cfg := config.Load()

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	repo := book.NewPostgresRepo(pool, cfg.DBTimeout)
	svc := book.NewService(repo)

	samples := []book.CreateInput{
		{
			Title:         "Dune",
			Author:        "Frank Herbert",
			PublishedDate: "1965-06-01",
			NumberOfPages: 412,
			ISBN:          strPtr("978-0441013593"),
			Genre:         strPtr("Science Fiction"),
			Description:   strPtr("Paul Atreides and the desert planet Arrakis."),
		},
		{
			Title:         "The Left Hand of Darkness",
			Author:        "Ursula K. Le Guin",
			PublishedDate: "1969-03-01",
			NumberOfPages: 304,
			ISBN:          strPtr("978-0441478125"),
			Genre:         strPtr("Science Fiction"),
		},
		{
			Title:         "Pride and Prejudice",
			Author:        "Jane Austen",
			PublishedDate: "1813-01-28",
			NumberOfPages: 432,
			Genre:         strPtr("Romance"),
		},
		{
			Title:         "The Name of the Rose",
			Author:        "Umberto Eco",
			PublishedDate: "1980-09-01",
			NumberOfPages: 512,
			Genre:         strPtr("Mystery"),
		},
		{
			Title:         "A Brief History of Time",
			Author:        "Stephen Hawking",
			PublishedDate: "1988-04-01",
			NumberOfPages: 256,
			Genre:         strPtr("Science"),
		},
	}

	for _, in := range samples {
		created, err := svc.Create(ctx, in)
		if err != nil {
			log.Fatalf("Failed to seed %q: %v", in.Title, err)
		}
		log.Printf("seeded book id=%s title=%q", created.ID, created.Title)
	}

	log.Printf("Seeded %d books", len(samples))
}

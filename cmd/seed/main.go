// Package main provides a tool to seed the database with demo swap data.
//
// It registers two users, catalogs a handful of books, registers copies,
// and walks one swap through its lifecycle so stats and status projections
// have something to show.
//
// Usage:
//
//	go run ./cmd/seed -db-path ~/BookSwap/bookswap.db
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/samber/do/v2"

	"github.com/bookswapapp/bookswap-server/internal/di"
	"github.com/bookswapapp/bookswap-server/internal/domain"
	"github.com/bookswapapp/bookswap-server/internal/service"
)

type catalogEntry struct {
	title  string
	author string
	genres []string
	pages  int
}

var catalog = []catalogEntry{
	{"The Left Hand of Darkness", "Ursula K. Le Guin", []string{"Science Fiction"}, 304},
	{"The Name of the Rose", "Umberto Eco", []string{"Mystery", "Historical Fiction"}, 512},
	{"Kitchen Confidential", "Anthony Bourdain", []string{"Memoir", "Cooking"}, 312},
	{"The Haunting of Hill House", "Shirley Jackson", []string{"Horror"}, 246},
}

func main() {
	injector := di.NewContainer()
	if err := di.Bootstrap(injector); err != nil {
		log.Fatalf("bootstrap: %v", err)
	}
	defer injector.Shutdown()

	users := do.MustInvoke[*service.UserService](injector)
	books := do.MustInvoke[*service.BookService](injector)
	swaps := do.MustInvoke[*service.SwapService](injector)

	ctx := context.Background()

	// Two demo accounts.
	aliceID := uuid.NewString()
	bobID := uuid.NewString()
	for _, userID := range []string{aliceID, bobID} {
		if _, err := users.Register(ctx, userID); err != nil {
			log.Fatalf("register user: %v", err)
		}
	}
	fmt.Printf("Registered users %s and %s\n", aliceID, bobID)

	// Catalog the demo titles and register alternating copies.
	var copies []*domain.UserBook
	for i, entry := range catalog {
		bookID := uuid.NewString()
		if _, err := books.CreateBook(ctx, service.CreateBookRequest{
			BookID: bookID,
			Title:  entry.title,
			Author: entry.author,
			Genres: entry.genres,
		}); err != nil {
			log.Fatalf("create book %q: %v", entry.title, err)
		}

		ownerID := aliceID
		if i%2 == 1 {
			ownerID = bobID
		}
		copy, err := books.RegisterCopy(ctx, service.RegisterCopyRequest{
			OwnerID:       ownerID,
			GeneralBookID: bookID,
			PageCount:     entry.pages,
		})
		if err != nil {
			log.Fatalf("register copy of %q: %v", entry.title, err)
		}
		copies = append(copies, copy)
		fmt.Printf("Catalogued %q (copy %s)\n", entry.title, copy.ID)
	}

	// The users follow each other and wish for each other's books.
	if _, err := users.Follow(ctx, aliceID, bobID); err != nil {
		log.Fatalf("follow: %v", err)
	}
	if _, err := users.Follow(ctx, bobID, aliceID); err != nil {
		log.Fatalf("follow: %v", err)
	}
	if _, err := users.AddToWishlist(ctx, aliceID, copies[1].GeneralBookID); err != nil {
		log.Fatalf("wishlist: %v", err)
	}

	// Walk one swap through proposal, acceptance, a meetup, and reading.
	swap, err := swaps.ProposeSwap(ctx, service.ProposeSwapRequest{
		RequestingUserID: aliceID,
		AcceptingUserID:  bobID,
		UserBookID:       copies[0].ID,
	})
	if err != nil {
		log.Fatalf("propose swap: %v", err)
	}
	fmt.Printf("Proposed swap %s (%s)\n", swap.ID, swap.Status())

	if _, err := swaps.Accept(ctx, swap.ID, bobID); err != nil {
		log.Fatalf("accept swap: %v", err)
	}

	meetup, err := swaps.SuggestMeetup(ctx, service.SuggestMeetupRequest{
		SwapID:          swap.ID,
		SuggestedUserID: bobID,
	})
	if err != nil {
		log.Fatalf("suggest meetup: %v", err)
	}
	if _, err := swaps.UpdateMeetupLocation(ctx, swap.ID, meetup.ID, 52.3676, 4.9041); err != nil {
		log.Fatalf("update meetup location: %v", err)
	}

	if _, err := swaps.AddTimelineUpdate(ctx, service.AddTimelineUpdateRequest{
		SwapID:      swap.ID,
		UserID:      aliceID,
		Status:      domain.TimelineStatusReadingBooks,
		Description: "Books handed over at the market",
	}); err != nil {
		log.Fatalf("advance timeline: %v", err)
	}
	if _, err := swaps.UpdateProgress(ctx, swap.ID, bobID, 57); err != nil {
		log.Fatalf("update progress: %v", err)
	}

	final, err := swaps.GetSwap(ctx, swap.ID)
	if err != nil {
		log.Fatalf("get swap: %v", err)
	}
	fmt.Printf("Swap %s is now %s with %d timeline events and %d meetup(s)\n",
		final.ID, final.Status(), len(final.TimelineUpdates()), len(final.Meetups()))
}

package services

import (
	"errors"
	"log"
	"sync/atomic"

	"streamvault/models"
	"streamvault/repository"

	"github.com/sourcegraph/conc/pool"
)

const (
	maxSeedMovies     = 30
	seedFeaturedCount = 5
	seedDetailWorkers = 4
)

// Seeder populates an empty catalog from the TMDB trending/popular/top-rated
// listings so a fresh install has something to browse.
type Seeder struct {
	tmdb   *TMDBService
	movies *repository.MovieRepository
}

// NewSeeder creates a new catalog seeder
func NewSeeder(tmdb *TMDBService, movies *repository.MovieRepository) *Seeder {
	return &Seeder{tmdb: tmdb, movies: movies}
}

// Seed imports an initial batch of movies when the catalog is empty. The
// first few trending titles are marked featured. Per-movie failures are
// logged and skipped; duplicates across the three listings are inserted once.
func (s *Seeder) Seed() error {
	count, err := s.movies.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		log.Println("Catalog already seeded, skipping")
		return nil
	}

	var trending, popular, topRated *models.ExternalMoviePage
	var trendingErr, popularErr, topRatedErr error

	p := pool.New().WithMaxGoroutines(3)
	p.Go(func() { trending, trendingErr = s.tmdb.Trending(1) })
	p.Go(func() { popular, popularErr = s.tmdb.Popular(1) })
	p.Go(func() { topRated, topRatedErr = s.tmdb.TopRated(1) })
	p.Wait()

	if trendingErr != nil {
		return trendingErr
	}
	if popularErr != nil {
		return popularErr
	}
	if topRatedErr != nil {
		return topRatedErr
	}

	featured := make(map[int]bool)
	for i, brief := range trending.Results {
		if i >= seedFeaturedCount {
			break
		}
		featured[brief.ID] = true
	}

	// Trending first so the featured titles survive the cap.
	seen := make(map[int]bool)
	var ids []int
	for _, page := range []*models.ExternalMoviePage{trending, popular, topRated} {
		for _, brief := range page.Results {
			if seen[brief.ID] {
				continue
			}
			seen[brief.ID] = true
			ids = append(ids, brief.ID)
		}
	}
	if len(ids) > maxSeedMovies {
		ids = ids[:maxSeedMovies]
	}

	var inserted int64
	workers := pool.New().WithMaxGoroutines(seedDetailWorkers)
	for _, id := range ids {
		id := id // capture per-iteration under the go 1.21 directive
		workers.Go(func() {
			movie, err := s.tmdb.GetMovieForImport(id)
			if err != nil {
				log.Printf("Failed to fetch TMDB movie %d for seeding: %v", id, err)
				return
			}
			movie.Featured = featured[id]

			if err := s.movies.Create(movie); err != nil {
				if !errors.Is(err, repository.ErrDuplicate) {
					log.Printf("Failed to seed movie %q: %v", movie.Title, err)
				}
				return
			}
			atomic.AddInt64(&inserted, 1)
		})
	}
	workers.Wait()

	log.Printf("Seeded %d movies from TMDB", atomic.LoadInt64(&inserted))
	return nil
}

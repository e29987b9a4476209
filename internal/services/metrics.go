// Package services – metrics
//
// Business counters registered with the default Prometheus registry.
package services

import "github.com/prometheus/client_golang/prometheus"

var (
	artworksCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "creovate_artworks_created_total",
		Help: "Artworks inserted.",
	})

	artworkLikes = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "creovate_artwork_likes_total",
		Help: "Successful like increments.",
	})

	// result: created|already|invalid
	favouriteAdds = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "creovate_favourite_adds_total",
		Help: "Favourite add attempts by outcome.",
	}, []string{"result"})

	// result: created|already|invalid
	reviewSubmissions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "creovate_review_submissions_total",
		Help: "Review submissions by outcome.",
	}, []string{"result"})

	// result: stored|invalid
	contactSubmissions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "creovate_contact_submissions_total",
		Help: "Contact form submissions by outcome.",
	}, []string{"result"})

	// result: hit|miss|error
	featuredCacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "creovate_featured_cache_lookups_total",
		Help: "Featured list cache lookups by outcome.",
	}, []string{"result"})
)

func init() {
	prometheus.MustRegister(
		artworksCreated,
		artworkLikes,
		favouriteAdds,
		reviewSubmissions,
		contactSubmissions,
		featuredCacheLookups,
	)
}

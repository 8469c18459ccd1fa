// Package scandex ranks in-memory record collections against text
// queries without building an index. Every search is a full scan:
// records stay wherever the caller keeps them and nothing has to be
// ingested, synchronized, or torn down.
//
// Records can be maps, structs, or anything JSON-like; searchable
// string fields are detected automatically and weighted by name and
// typical length, so a bare query already ranks sensibly.
//
// # One-shot API
//
//	results, _ := scandex.Search(users, "john")
//
// # Engine API — caching, options, observability
//
//	engine, _ := scandex.New(
//	    scandex.WithCache(),
//	    scandex.WithPrometheus(prometheus.DefaultRegisterer),
//	)
//	results, _ := engine.Search(ctx, users, "john", &scandex.SearchOptions{
//	    Fields:        []string{"name", "email"},
//	    CollectionKey: "users",
//	    Limit:         20,
//	})
//
// # Typed API — generics over a bound collection
//
//	type Book struct {
//	    Title  string `json:"title"`
//	    Author string `json:"author"`
//	}
//
//	books, _ := scandex.NewTypedSearcher(engine, library)
//	hits, _ := books.Search().Query("tolkien").Weight("author", 10).Limit(5).Do(ctx)
package scandex

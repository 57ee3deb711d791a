// Package storefront embeds the storefront catalog in a Go program.
//
// The client resolves static catalog collections of products, services and
// suppliers, filters them, and ranks alternatives to a free-text reference or to
// an existing item. Catalog files are embedded by default; a directory or any
// fs.FS can replace them, and a Valkey or Redis instance can cache them.
//
//	client, _ := storefront.New(ctx, storefront.WithLanguage("ar"))
//	defer client.Close()
//
//	kitchen, _ := client.Catalog(ctx, storefront.Products, storefront.CatalogOptions{Category: "kitchen"})
//	alts, _ := client.Alternatives(ctx, storefront.AlternativesQuery{ItemID: "p-1001"})
//
// # Sessions
//
// A Session tags every call with an increasing generation. When calls of one
// session overlap, only the most recently started one may deliver; earlier ones
// return ErrStaleRequest.
//
//	s := client.NewSession()
//	res, err := s.Search(ctx, "cup", storefront.Products, storefront.SearchOptions{})
//	if errors.Is(err, storefront.ErrStaleRequest) {
//	    return // a newer search is in flight
//	}
package storefront

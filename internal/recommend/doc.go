// Package recommend assembles the "related products" and "related categories"
// lists shown next to a product.
//
// Related products are filled in three tiers, each only queried while the list
// is short of its cap:
//
//  1. products in the same subcategory
//  2. products in the same category
//  3. any other product
//
// Every tier excludes the target product and everything collected by earlier
// tiers, so the result never contains the target or a duplicate. Ordering is
// whatever stable order the store returns, which makes repeated calls
// idempotent while the data is unchanged.
//
// Each related product is then enriched with its seller's business profile.
// Lookups run concurrently and a failed or missing lookup leaves that item's
// profile nil without failing the batch.
package recommend

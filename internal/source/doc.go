// Package source provides the HTTP client for the remote paginated games
// catalog (RAWG-compatible).
//
// One call fetches one page:
//
//	GET {base}/games?key=<api key>&page=<n>&page_size=<size>
//
// The response body is a JSON object whose "results" array holds the page.
// A missing, null or empty "results" array is an empty page, which callers
// treat as exhaustion of the catalog.
//
// Every failure (transport error, non-2xx status, malformed body) is
// returned as a *FetchError. The API key never appears in error text.
package source

// Package offline keeps the application's static assets available without
// a network connection.
//
// A Storage holds named, versioned caches. A Worker installs its asset list
// into the cache named after the current version, activates by deleting
// every other version, and then answers requests cache-first, falling back
// to the network on a miss. Worker implements http.RoundTripper so it can be
// plugged into an http.Client.
package offline

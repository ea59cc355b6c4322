package offline

// DefaultCacheName is the versioned cache name of the current release.
// Bumping it makes Activate discard the previous version's assets.
const DefaultCacheName = "polarity-io-cache-v1"

// DefaultAssets lists the assets the application needs offline. Relative
// entries resolve against the worker's base URL.
var DefaultAssets = []string{
	"./",
	"./index.html",
	"./style.css",
	"./script.js",
	"https://cdn.tailwindcss.com",
	"https://fonts.googleapis.com/css2?family=Orbitron:wght@400;500;700&family=Rajdhani:wght@500;700&display=swap",
	"https://docs.opencv.org/4.9.0/opencv.js",
}

// Package image contains the image-retrieval provider tiers: search APIs,
// generation APIs and the curated static library used as the final fallback.
package image

// Reference points at a retrievable image for a generated layout.
type Reference struct {
	URL string `json:"url"`
}

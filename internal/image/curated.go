package image

import (
	"context"
	"strings"

	"homedesignai/internal/design"
)

// CuratedLibrary serves curated interior photos keyed by room type and style.
// It performs no network calls and always returns a result, which makes it
// the guaranteed terminal tier of an image chain.
type CuratedLibrary struct{}

// NewCuratedLibrary constructs the static fallback tier.
func NewCuratedLibrary() *CuratedLibrary {
	return &CuratedLibrary{}
}

// Name identifies the provider in chain diagnostics.
func (CuratedLibrary) Name() string { return "curated" }

// Invoke picks the closest curated photo for the request. It never fails.
func (CuratedLibrary) Invoke(_ context.Context, req design.Request) (Reference, error) {
	return Reference{URL: curatedURL(req.RoomType, req.Style)}, nil
}

const defaultCuratedImage = "https://images.pexels.com/photos/1571460/pexels-photo-1571460.jpeg"

// Curated photos from Pexels, keyed by normalized room and style.
var curatedImages = map[string]map[string]string{
	"living": {
		"modern":       "https://images.pexels.com/photos/1571460/pexels-photo-1571460.jpeg",
		"traditional":  "https://images.pexels.com/photos/1648776/pexels-photo-1648776.jpeg",
		"scandinavian": "https://images.pexels.com/photos/1571453/pexels-photo-1571453.jpeg",
		"industrial":   "https://images.pexels.com/photos/1080721/pexels-photo-1080721.jpeg",
		"bohemian":     "https://images.pexels.com/photos/1457842/pexels-photo-1457842.jpeg",
	},
	"bedroom": {
		"modern":       "https://images.pexels.com/photos/164595/pexels-photo-164595.jpeg",
		"traditional":  "https://images.pexels.com/photos/1743229/pexels-photo-1743229.jpeg",
		"scandinavian": "https://images.pexels.com/photos/1454806/pexels-photo-1454806.jpeg",
		"industrial":   "https://images.pexels.com/photos/1329711/pexels-photo-1329711.jpeg",
		"bohemian":     "https://images.pexels.com/photos/1080696/pexels-photo-1080696.jpeg",
	},
	"kitchen": {
		"modern":       "https://images.pexels.com/photos/2724748/pexels-photo-2724748.jpeg",
		"traditional":  "https://images.pexels.com/photos/1599791/pexels-photo-1599791.jpeg",
		"scandinavian": "https://images.pexels.com/photos/2062426/pexels-photo-2062426.jpeg",
		"industrial":   "https://images.pexels.com/photos/2089698/pexels-photo-2089698.jpeg",
		"bohemian":     "https://images.pexels.com/photos/1599791/pexels-photo-1599791.jpeg",
	},
	"bathroom": {
		"modern":       "https://images.pexels.com/photos/1358912/pexels-photo-1358912.jpeg",
		"traditional":  "https://images.pexels.com/photos/1454806/pexels-photo-1454806.jpeg",
		"scandinavian": "https://images.pexels.com/photos/1080696/pexels-photo-1080696.jpeg",
		"industrial":   "https://images.pexels.com/photos/1329711/pexels-photo-1329711.jpeg",
		"bohemian":     "https://images.pexels.com/photos/1457842/pexels-photo-1457842.jpeg",
	},
	"office": {
		"modern":       "https://images.pexels.com/photos/667838/pexels-photo-667838.jpeg",
		"traditional":  "https://images.pexels.com/photos/1181406/pexels-photo-1181406.jpeg",
		"scandinavian": "https://images.pexels.com/photos/1080696/pexels-photo-1080696.jpeg",
		"industrial":   "https://images.pexels.com/photos/1329711/pexels-photo-1329711.jpeg",
		"bohemian":     "https://images.pexels.com/photos/1457842/pexels-photo-1457842.jpeg",
	},
	"dining": {
		"modern":       "https://images.pexels.com/photos/1395967/pexels-photo-1395967.jpeg",
		"traditional":  "https://images.pexels.com/photos/1648776/pexels-photo-1648776.jpeg",
		"scandinavian": "https://images.pexels.com/photos/1571453/pexels-photo-1571453.jpeg",
		"industrial":   "https://images.pexels.com/photos/1080721/pexels-photo-1080721.jpeg",
		"bohemian":     "https://images.pexels.com/photos/1457842/pexels-photo-1457842.jpeg",
	},
}

var roomAliases = map[string]string{
	"living room":     "living",
	"bedroom":         "bedroom",
	"master bedroom":  "bedroom",
	"children's room": "bedroom",
	"guest room":      "bedroom",
	"kitchen":         "kitchen",
	"bathroom":        "bathroom",
	"home office":     "office",
	"study room":      "office",
	"dining room":     "dining",
}

var styleAliases = map[string]string{
	"modern":             "modern",
	"contemporary":       "modern",
	"mid-century modern": "modern",
	"art deco":           "modern",
	"traditional":        "traditional",
	"rustic":             "traditional",
	"mediterranean":      "traditional",
	"farmhouse":          "traditional",
	"minimalist":         "scandinavian",
	"scandinavian":       "scandinavian",
	"industrial":         "industrial",
	"bohemian":           "bohemian",
}

func curatedURL(roomType, style string) string {
	room := roomAliases[strings.ToLower(strings.TrimSpace(roomType))]
	if room == "" {
		room = "living"
	}
	styleKey := styleAliases[strings.ToLower(strings.TrimSpace(style))]
	if styleKey == "" {
		styleKey = "modern"
	}

	photos, ok := curatedImages[room]
	if !ok {
		return defaultCuratedImage
	}
	if url, ok := photos[styleKey]; ok {
		return url
	}
	if url, ok := photos["modern"]; ok {
		return url
	}
	return defaultCuratedImage
}

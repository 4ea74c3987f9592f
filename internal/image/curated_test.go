package image

import (
	"context"
	"testing"

	"homedesignai/internal/design"
)

func TestCuratedLibraryNeverFails(t *testing.T) {
	library := NewCuratedLibrary()

	// Every catalog combination must yield a usable URL.
	for _, room := range design.RoomTypes {
		for _, style := range design.Styles {
			ref, err := library.Invoke(context.Background(), design.Request{RoomType: room, Style: style})
			if err != nil {
				t.Fatalf("Invoke(%q, %q): %v", room, style, err)
			}
			if ref.URL == "" {
				t.Errorf("Invoke(%q, %q) returned an empty URL", room, style)
			}
		}
	}
}

func TestCuratedURLSelection(t *testing.T) {
	tests := []struct {
		name  string
		room  string
		style string
		want  string
	}{
		{
			name:  "exact match",
			room:  "Living Room",
			style: "Modern",
			want:  "https://images.pexels.com/photos/1571460/pexels-photo-1571460.jpeg",
		},
		{
			name:  "style alias",
			room:  "Living Room",
			style: "Contemporary",
			want:  "https://images.pexels.com/photos/1571460/pexels-photo-1571460.jpeg",
		},
		{
			name:  "room alias",
			room:  "Master Bedroom",
			style: "Scandinavian",
			want:  "https://images.pexels.com/photos/1454806/pexels-photo-1454806.jpeg",
		},
		{
			name:  "case and whitespace insensitive",
			room:  "  home office ",
			style: "INDUSTRIAL",
			want:  "https://images.pexels.com/photos/1329711/pexels-photo-1329711.jpeg",
		},
		{
			name:  "unknown room falls back to living",
			room:  "Garage",
			style: "Modern",
			want:  "https://images.pexels.com/photos/1571460/pexels-photo-1571460.jpeg",
		},
		{
			name:  "unknown style falls back to modern",
			room:  "Kitchen",
			style: "Baroque",
			want:  "https://images.pexels.com/photos/2724748/pexels-photo-2724748.jpeg",
		},
		{
			name: "empty request falls back to default",
			want: "https://images.pexels.com/photos/1571460/pexels-photo-1571460.jpeg",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := curatedURL(tc.room, tc.style); got != tc.want {
				t.Errorf("curatedURL(%q, %q) = %q, want %q", tc.room, tc.style, got, tc.want)
			}
		})
	}
}

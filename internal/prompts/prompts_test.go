package prompts

import (
	"strings"
	"testing"

	"homedesignai/internal/design"
)

func sampleRequest() design.Request {
	return design.Request{
		RoomType:     "Home Office",
		Style:        "Scandinavian",
		BudgetRange:  "$5,000 - $15,000",
		SizeCategory: "Small (< 100 sq ft)",
		Colors:       []string{"White", "Sage"},
		Features:     []string{"Built-in Storage", "Natural Light Focus"},
		Requirements: "two monitors and a standing desk",
	}
}

func TestBuildLayoutPromptIncludesEveryPreference(t *testing.T) {
	prompt := BuildLayoutPrompt(sampleRequest())

	for _, want := range []string{
		"Home Office",
		"Scandinavian",
		"$5,000 - $15,000",
		"Small (< 100 sq ft)",
		"White, Sage",
		"Built-in Storage, Natural Light Focus",
		"two monitors and a standing desk",
		"LAYOUT 1:",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildLayoutPromptEmptyOptionals(t *testing.T) {
	req := sampleRequest()
	req.Colors = nil
	req.Features = nil
	req.Requirements = "  "

	prompt := BuildLayoutPrompt(req)

	if strings.Count(prompt, "none") < 3 {
		t.Errorf("empty optional fields should render as %q:\n%s", "none", prompt)
	}
}

func TestBuildImagePrompt(t *testing.T) {
	prompt := BuildImagePrompt(sampleRequest())

	for _, want := range []string{"Home Office", "Scandinavian", "White, Sage", "Built-in Storage"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("image prompt missing %q", want)
		}
	}
}

func TestBuildImageQuery(t *testing.T) {
	got := BuildImageQuery(sampleRequest())
	want := "Scandinavian Home Office interior design White"
	if got != want {
		t.Errorf("query = %q, want %q", got, want)
	}

	req := sampleRequest()
	req.Colors = nil
	if got := BuildImageQuery(req); got != "Scandinavian Home Office interior design" {
		t.Errorf("query without colors = %q", got)
	}
}

func TestParseLayoutResponse(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
		wantErr  bool
	}{
		{
			name:     "marked layout",
			response: "LAYOUT 1:\nA calm workspace with birch shelving.",
			want:     "A calm workspace with birch shelving.",
		},
		{
			name:     "marker with surrounding chatter",
			response: "Here is your design!\n\nLAYOUT 1:\nDesk under the window, storage on the left wall.\n",
			want:     "Desk under the window, storage on the left wall.",
		},
		{
			name:     "no marker falls back to full text",
			response: "  A bright office with a wall-mounted desk.  ",
			want:     "A bright office with a wall-mounted desk.",
		},
		{
			name:     "empty response",
			response: "   \n ",
			wantErr:  true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseLayoutResponse(tc.response)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected an error for empty completion")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLayoutResponse: %v", err)
			}
			if got != tc.want {
				t.Errorf("parsed = %q, want %q", got, tc.want)
			}
		})
	}
}

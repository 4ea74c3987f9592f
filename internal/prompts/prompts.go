package prompts

import (
	"fmt"
	"strings"

	"homedesignai/internal/design"
)

const systemPrompt = "You are an expert interior designer specializing in home layout planning. You create practical, budget-aware layouts and never invent constraints the client did not state."

const layoutPromptTemplate = `Create 1 detailed home layout idea for a %s with the following specifications:

Style: %s
Budget Range: %s
Space Size: %s
Color Preferences: %s
Special Features: %s
Additional Notes: %s

For the layout, provide:
1. A descriptive title
2. Detailed layout description (150-200 words)
3. Key features and furniture placement
4. Color scheme and materials
5. Lighting suggestions
6. Budget-conscious tips

Format the layout as:
LAYOUT 1:
[Detailed description]

Make the layout unique and practical while staying within the specified parameters.`

// SystemPrompt returns the canonical system instruction used for all layouts.
func SystemPrompt() string {
	return systemPrompt
}

// BuildLayoutPrompt composes the user prompt sent to the text providers.
func BuildLayoutPrompt(req design.Request) string {
	return fmt.Sprintf(layoutPromptTemplate,
		req.RoomType,
		req.Style,
		req.BudgetRange,
		req.SizeCategory,
		joinOrNone(req.Colors),
		joinOrNone(req.Features),
		orNone(req.Requirements),
	)
}

// BuildImagePrompt composes the prompt for image generation providers.
func BuildImagePrompt(req design.Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "A photorealistic interior design photo of a %s in %s style.", req.RoomType, req.Style)
	fmt.Fprintf(&b, " %s space.", req.SizeCategory)
	if len(req.Colors) > 0 {
		fmt.Fprintf(&b, " Color scheme incorporating %s.", strings.Join(req.Colors, ", "))
	}
	if len(req.Features) > 0 {
		fmt.Fprintf(&b, " Featuring %s.", strings.Join(req.Features, ", "))
	}
	b.WriteString(" Professional interior photography lighting, clean composition, furniture placement clearly visible.")
	return b.String()
}

// BuildImageQuery composes the short query string for image search providers.
func BuildImageQuery(req design.Request) string {
	parts := []string{req.Style, req.RoomType, "interior design"}
	if len(req.Colors) > 0 {
		parts = append(parts, req.Colors[0])
	}
	return strings.Join(parts, " ")
}

// ParseLayoutResponse extracts the layout description from a completion that
// may carry a "LAYOUT n:" marker. A response without markers is returned as-is.
func ParseLayoutResponse(response string) (string, error) {
	trimmed := strings.TrimSpace(response)
	if trimmed == "" {
		return "", fmt.Errorf("empty completion")
	}

	parts := strings.Split(trimmed, "LAYOUT")
	for _, part := range parts[1:] {
		layout := strings.TrimSpace(part)
		if layout == "" {
			continue
		}
		// Drop the "1:" prefix left over from the marker.
		if _, rest, found := strings.Cut(layout, ":"); found {
			layout = strings.TrimSpace(rest)
		}
		if layout != "" {
			return layout, nil
		}
	}

	return trimmed, nil
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "none"
	}
	return strings.Join(values, ", ")
}

func orNone(value string) string {
	if strings.TrimSpace(value) == "" {
		return "none"
	}
	return value
}

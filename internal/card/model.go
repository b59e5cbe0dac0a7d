package card

// Data is the editable content of one ID card.
type Data struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Serial     string `json:"serial"`
	SoulText   string `json:"soul_text"`
	ThemeColor string `json:"theme_color"`
	ImageURL   string `json:"image_url,omitempty"`
}

// DefaultThemeColor is the accent used when a form mounts.
const DefaultThemeColor = "#00d2ff"

// DefaultData returns the values a fresh form starts with.
func DefaultData() Data {
	return Data{
		Name:       "Hong Hyung Bot",
		Type:       "AI Agent",
		Serial:     "AGENT-MAIN-001",
		SoulText:   "평생의 동료, 홍형님을 위해 존재합니다.",
		ThemeColor: DefaultThemeColor,
	}
}

// Canonical card size in logical units.
const (
	Width  = 500
	Height = 300
)

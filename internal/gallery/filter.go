package gallery

import (
	"strings"

	"github.com/youruser/soulcard/internal/agent"
)

// FilterOptions narrows a gallery listing. Empty fields match everything.
type FilterOptions struct {
	// FreeWords must all appear (case-insensitively) in the name, soul
	// text, model or serial number.
	FreeWords   string
	Models      []string
	ThemeColors []string
	Limit       int
}

func (o FilterOptions) empty() bool {
	return strings.TrimSpace(o.FreeWords) == "" && len(o.Models) == 0 && len(o.ThemeColors) == 0
}

func equalsAny(v string, candidates []string) bool {
	for _, c := range candidates {
		if strings.EqualFold(strings.TrimSpace(c), v) {
			return true
		}
	}
	return false
}

// Filter returns the records matching opt, in their original order.
func Filter(recs []agent.Record, opt FilterOptions) []agent.Record {
	out := []agent.Record{}
	words := strings.Fields(strings.ToLower(opt.FreeWords))
	for _, r := range recs {
		if len(opt.Models) > 0 && !equalsAny(r.Model, opt.Models) {
			continue
		}
		if len(opt.ThemeColors) > 0 && !equalsAny(r.ThemeColor, opt.ThemeColors) {
			continue
		}
		if len(words) > 0 {
			hay := strings.ToLower(strings.Join([]string{r.Name, r.SoulText, r.Model, r.SerialNumber}, "\n"))
			ok := true
			for _, w := range words {
				if !strings.Contains(hay, w) {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
		}
		out = append(out, r)
		if opt.Limit > 0 && len(out) == opt.Limit {
			break
		}
	}
	return out
}

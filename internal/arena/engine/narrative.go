package engine

import (
	"fmt"
	"strings"

	"github.com/louisbranch/lastarena/internal/arena/domain"
)

// describeEvent composes the narrative line for a natural event from the
// template id, the firing phase, and the participants involved.
func describeEvent(templateID string, phase domain.CyclePhase, selected []*domain.Participant, eliminated map[string]bool) string {
	title := strings.ReplaceAll(templateID, "-", " ")

	names := make([]string, 0, len(selected))
	var fallen []string
	for _, p := range selected {
		names = append(names, p.DisplayName)
		if eliminated[p.ID] {
			fallen = append(fallen, p.DisplayName)
		}
	}

	location := ""
	if len(selected) > 0 {
		location = fmt.Sprintf(" at the %s", selected[0].Location)
	}

	line := fmt.Sprintf("%s during the %s%s: %s.", capitalize(title), phase, location, joinNames(names))
	if len(fallen) > 0 {
		line += fmt.Sprintf(" %s will not see another turn.", joinNames(fallen))
	}
	return line
}

// joinNames renders a name list as prose.
func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return "No one"
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + ", and " + names[len(names)-1]
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

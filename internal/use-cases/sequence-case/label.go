package sequence_case

import (
	"cmp"
	"fmt"
	"regexp"
	"slices"
	"strconv"

	"github.com/Xenn-00/vorgang-meister/internal/entity"
)

var labelPattern = regexp.MustCompile(`^(\d{4})-(\d{4,})$`)

// FormatLabel baut das Anzeige-Label "<jahr>-NNNN".
func FormatLabel(year, counter int) string {
	return fmt.Sprintf("%04d-%04d", year, counter)
}

// ParseLabel zerlegt ein Label in Jahr und Zähler.
func ParseLabel(label string) (year int, counter int, ok bool) {
	m := labelPattern.FindStringSubmatch(label)
	if m == nil {
		return 0, 0, false
	}
	year, _ = strconv.Atoi(m[1])
	counter, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, 0, false
	}
	return year, counter, true
}

// PlanRenumber ordnet die Vorgänge eines Jahres nach Eingang (received_at), bei Gleichstand nach
// dem aktuellen Zähler und zuletzt nach dem Label, und liefert nur die Umbenennungen, deren
// Label sich tatsächlich ändert. Ein bereits lückenloses Jahr ergibt einen leeren Plan.
func PlanRenumber(year int, records []entity.LabelledVorgang) []entity.LabelRename {
	ordered := slices.Clone(records)
	slices.SortStableFunc(ordered, compareForRenumber)

	var plan []entity.LabelRename
	for i, rec := range ordered {
		want := FormatLabel(year, i+1)
		if rec.SequentialLabel != want {
			plan = append(plan, entity.LabelRename{
				VorgangID: rec.ID,
				From:      rec.SequentialLabel,
				To:        want,
			})
		}
	}
	return plan
}

func compareForRenumber(a, b entity.LabelledVorgang) int {
	if c := a.ReceivedAt.Compare(b.ReceivedAt); c != 0 {
		return c
	}
	_, ca, okA := ParseLabel(a.SequentialLabel)
	_, cb, okB := ParseLabel(b.SequentialLabel)
	if okA && okB {
		if c := cmp.Compare(ca, cb); c != 0 {
			return c
		}
	}
	return cmp.Compare(a.SequentialLabel, b.SequentialLabel)
}

package parse

import (
	"strings"

	"github.com/claude/replog/internal/models"
)

// equipmentVocab maps segment keywords to equipment, longest keyword first so
// "smith machine" beats "machine".
var equipmentVocab = []struct {
	kw string
	eq models.Equipment
}{
	{"smith machine", models.EquipmentSmith},
	{"kettlebells", models.EquipmentKettlebell},
	{"body weight", models.EquipmentBodyweight},
	{"kettlebell", models.EquipmentKettlebell},
	{"bodyweight", models.EquipmentBodyweight},
	{"dumbbells", models.EquipmentDumbbell},
	{"trap bar", models.EquipmentTrapBar},
	{"dumbbell", models.EquipmentDumbbell},
	{"barbell", models.EquipmentBarbell},
	{"hex bar", models.EquipmentTrapBar},
	{"machine", models.EquipmentMachine},
	{"ez bar", models.EquipmentEZBar},
	{"ez-bar", models.EquipmentEZBar},
	{"cables", models.EquipmentCable},
	{"cable", models.EquipmentCable},
	{"bands", models.EquipmentBands},
	{"band", models.EquipmentBands},
}

// resolveMetadata infers equipment and primary muscles for a recognized
// exercise. Equipment mentioned in the segment wins; otherwise the catalog's
// per-exercise default applies, then the bodyweight tag for bodyweight
// exercises, then "other".
func (p *Parser) resolveMetadata(canonical, segment string) (models.Equipment, []string) {
	entry, known := p.cat.Lookup(canonical)

	equipment := models.EquipmentOther
	found := false
	s := strings.ToLower(segment)
	for _, ev := range equipmentVocab {
		if strings.Contains(s, ev.kw) {
			equipment = ev.eq
			found = true
			break
		}
	}
	if !found && known {
		switch {
		case entry.Equipment != "":
			equipment = entry.Equipment
		case entry.Category == models.CategoryBodyweight:
			equipment = models.EquipmentBodyweight
		}
	}

	var muscles []string
	if known {
		muscles = entry.Muscles
	}
	return equipment, muscles
}

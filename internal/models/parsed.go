package models

// Unit is the weight unit attached to a set.
type Unit string

const (
	UnitPounds    Unit = "lbs"
	UnitKilograms Unit = "kg"
)

// Category classifies how an exercise is loaded and measured.
type Category string

const (
	CategoryWeighted   Category = "weighted"
	CategoryBodyweight Category = "bodyweight"
	CategoryTimed      Category = "timed"
)

// SetType marks how a set was performed.
type SetType string

const (
	SetNormal    SetType = "normal"
	SetWarmup    SetType = "warmup"
	SetDrop      SetType = "drop"
	SetSuperset  SetType = "superset"
	SetRestPause SetType = "rest_pause"
	SetAMRAP     SetType = "amrap"
	SetToFailure SetType = "to_failure"
	SetCluster   SetType = "cluster"
)

// Grip is the hand position used on the implement.
type Grip string

const (
	GripOverhand  Grip = "overhand"
	GripUnderhand Grip = "underhand"
	GripNeutral   Grip = "neutral"
	GripMixed     Grip = "mixed"
	GripHook      Grip = "hook"
	GripWide      Grip = "wide"
	GripClose     Grip = "close"
)

// Stance is the foot position used for the lift.
type Stance string

const (
	StanceConventional Stance = "conventional"
	StanceSumo         Stance = "sumo"
	StanceWide         Stance = "wide"
	StanceNarrow       Stance = "narrow"
	StanceSplit        Stance = "split"
	StanceStaggered    Stance = "staggered"
)

// Equipment is the implement an exercise is performed with.
type Equipment string

const (
	EquipmentBarbell    Equipment = "barbell"
	EquipmentDumbbell   Equipment = "dumbbell"
	EquipmentKettlebell Equipment = "kettlebell"
	EquipmentMachine    Equipment = "machine"
	EquipmentCable      Equipment = "cable"
	EquipmentSmith      Equipment = "smith_machine"
	EquipmentEZBar      Equipment = "ez_bar"
	EquipmentTrapBar    Equipment = "trap_bar"
	EquipmentBands      Equipment = "bands"
	EquipmentBodyweight Equipment = "bodyweight"
	EquipmentOther      Equipment = "other"
)

// ParsedSet is one performed set. Reps of 1 with a weight present usually
// means a max/PR attempt; weight 0 means bodyweight.
type ParsedSet struct {
	SetNumber       int     `json:"set_number"`
	Reps            int     `json:"reps"`
	Weight          float64 `json:"weight"`
	Unit            Unit    `json:"unit"`
	DurationSeconds int     `json:"duration_seconds,omitempty"`
	SetType         SetType `json:"set_type"`
	RPE             float64 `json:"rpe,omitempty"`
	RIR             *int    `json:"rir,omitempty"`
	RestSeconds     int     `json:"rest_seconds,omitempty"`
	Tempo           string  `json:"tempo,omitempty"`
	Grip            Grip    `json:"grip,omitempty"`
	Stance          Stance  `json:"stance,omitempty"`
}

// ParsedExercise is one exercise within a parsed session. After assembly its
// set numbers are a contiguous 1..N sequence regardless of how many input
// segments contributed sets.
type ParsedExercise struct {
	Name           string      `json:"name"`
	Category       Category    `json:"category"`
	Equipment      Equipment   `json:"equipment"`
	PrimaryMuscles []string    `json:"primary_muscles,omitempty"`
	Notes          string      `json:"notes,omitempty"`
	Sets           []ParsedSet `json:"sets"`
}

// Confidence classifies how an exercise name was resolved.
type Confidence string

const (
	ConfidenceExact        Confidence = "exact"
	ConfidenceFuzzy        Confidence = "fuzzy"
	ConfidenceUnrecognized Confidence = "unrecognized"
)

// NormalizationResult is the outcome of resolving a free-form exercise name
// against the catalog.
type NormalizationResult struct {
	CanonicalName string     `json:"canonical_name,omitempty"`
	Confidence    Confidence `json:"confidence"`
	Suggestions   []string   `json:"suggestions,omitempty"`
	OriginalInput string     `json:"original_input"`
}

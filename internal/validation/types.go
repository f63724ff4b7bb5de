package validation

// ViolationType is the closed enumeration of structural defects the
// detectors can report.
type ViolationType string

const (
	ViolationInvalidSlotCount        ViolationType = "INVALID_SLOT_COUNT"
	ViolationInvalidStackSize        ViolationType = "INVALID_STACK_SIZE"
	ViolationInvalidHotbarLength     ViolationType = "INVALID_HOTBAR_LENGTH"
	ViolationDuplicateHotbarSlot     ViolationType = "DUPLICATE_HOTBAR_SLOT"
	ViolationHotbarSlotOutOfBounds   ViolationType = "HOTBAR_SLOT_OUT_OF_BOUNDS"
	ViolationInvalidSelectedSlot     ViolationType = "INVALID_SELECTED_SLOT"
	ViolationInvalidArmorSlot        ViolationType = "INVALID_ARMOR_SLOT"
	ViolationInvalidEnchantmentLevel ViolationType = "INVALID_ENCHANTMENT_LEVEL"
	ViolationInvalidDamageValue      ViolationType = "INVALID_DAMAGE_VALUE"
	ViolationInvalidDurability       ViolationType = "INVALID_DURABILITY"
	ViolationUnknownItem             ViolationType = "UNKNOWN_ITEM"
)

type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityError    Severity = "ERROR"
	SeverityWarning  Severity = "WARNING"
)

// Violation is one detected structural or data-quality defect.
// AffectedSlots carries storage indices for slot-scoped rules and the
// offending hotbar values for hotbar rules.
type Violation struct {
	Type           ViolationType `json:"type"`
	Severity       Severity      `json:"severity"`
	Description    string        `json:"description"`
	AffectedSlots  []int         `json:"affectedSlots"`
	DetectedValue  any           `json:"detectedValue"`
	ExpectedValue  any           `json:"expectedValue,omitempty"`
	CanAutoCorrect bool          `json:"canAutoCorrect"`
}

type WarningImpact string

const (
	ImpactPerformance WarningImpact = "PERFORMANCE"
	ImpactUsability   WarningImpact = "USABILITY"
	ImpactMaintenance WarningImpact = "MAINTENANCE"
)

// Warning is advisory and never blocks a save.
type Warning struct {
	Type        string        `json:"type"`
	Description string        `json:"description"`
	Impact      WarningImpact `json:"impact"`
}

const WarningHighUsage = "HIGH_USAGE"

type CorrectionAction string

const (
	ActionRemove CorrectionAction = "REMOVE"
	ActionUpdate CorrectionAction = "UPDATE"
	ActionMove   CorrectionAction = "MOVE"
	ActionReset  CorrectionAction = "RESET"
)

type CorrectionTarget string

const (
	TargetSlot     CorrectionTarget = "SLOT"
	TargetMetadata CorrectionTarget = "METADATA"
	TargetHotbar   CorrectionTarget = "HOTBAR"
	TargetArmor    CorrectionTarget = "ARMOR"
)

// CorrectionStep is one ordered repair action inside a suggestion.
type CorrectionStep struct {
	Action    CorrectionAction `json:"action"`
	Target    CorrectionTarget `json:"target"`
	SlotIndex *int             `json:"slotIndex,omitempty"`
	NewValue  any              `json:"newValue,omitempty"`
	Reason    string           `json:"reason"`
}

type SuggestionImpact string

const (
	SuggestionImpactLow    SuggestionImpact = "LOW"
	SuggestionImpactMedium SuggestionImpact = "MEDIUM"
	SuggestionImpactHigh   SuggestionImpact = "HIGH"
)

// CorrectionSuggestion maps one violation to an ordered repair recipe.
type CorrectionSuggestion struct {
	ViolationType ViolationType    `json:"violationType"`
	Description   string           `json:"description"`
	Automated     bool             `json:"automated"`
	Impact        SuggestionImpact `json:"impact"`
	Prerequisites []string         `json:"prerequisites,omitempty"`
	Steps         []CorrectionStep `json:"steps"`
}

// ValidationSummary carries quick aggregate numbers for inline feedback.
// HealthScore here is the cheap monotone heuristic; the weighted factor
// score lives in HealthReport.
type ValidationSummary struct {
	TotalSlots         int      `json:"totalSlots"`
	OccupiedSlots      int      `json:"occupiedSlots"`
	EmptySlots         int      `json:"emptySlots"`
	UniqueItems        int      `json:"uniqueItems"`
	TotalItems         int      `json:"totalItems"`
	HealthScore        int      `json:"healthScore"`
	RecommendedActions []string `json:"recommendedActions"`
}

// ValidationResult is built fresh on every call and never cached.
type ValidationResult struct {
	IsValid               bool                   `json:"isValid"`
	Violations            []Violation            `json:"violations"`
	Warnings              []Warning              `json:"warnings"`
	CorrectionSuggestions []CorrectionSuggestion `json:"correctionSuggestions"`
	ValidationSummary     ValidationSummary      `json:"validationSummary"`
}

// ValidationOptions enables or disables detector groups. Slot-count and
// stack-size checks always run regardless of flags. PerformDeepValidation
// additionally implies the metadata, durability and item-registry groups.
type ValidationOptions struct {
	CheckItemRegistry     bool `json:"checkItemRegistry" yaml:"checkItemRegistry"`
	ValidateMetadata      bool `json:"validateMetadata" yaml:"validateMetadata"`
	CheckStackLimits      bool `json:"checkStackLimits" yaml:"checkStackLimits"`
	VerifyHotbarIntegrity bool `json:"verifyHotbarIntegrity" yaml:"verifyHotbarIntegrity"`
	ValidateArmorSlots    bool `json:"validateArmorSlots" yaml:"validateArmorSlots"`
	CheckDurabilityRanges bool `json:"checkDurabilityRanges" yaml:"checkDurabilityRanges"`
	DetectDuplicates      bool `json:"detectDuplicates" yaml:"detectDuplicates"`
	PerformDeepValidation bool `json:"performDeepValidation" yaml:"performDeepValidation"`
}

// DefaultOptions enables every detector group.
func DefaultOptions() ValidationOptions {
	return ValidationOptions{
		CheckItemRegistry:     true,
		ValidateMetadata:      true,
		CheckStackLimits:      true,
		VerifyHotbarIntegrity: true,
		ValidateArmorSlots:    true,
		CheckDurabilityRanges: true,
		DetectDuplicates:      true,
		PerformDeepValidation: false,
	}
}

func (o ValidationOptions) metadataEnabled() bool {
	return o.ValidateMetadata || o.PerformDeepValidation
}

func (o ValidationOptions) durabilityEnabled() bool {
	return o.CheckDurabilityRanges || o.PerformDeepValidation
}

func (o ValidationOptions) registryEnabled() bool {
	return o.CheckItemRegistry || o.PerformDeepValidation
}

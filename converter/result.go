package converter

// Result holds the output of a conversion.
type Result struct {
	Markdown string    `json:"markdown"`
	Warnings []Warning `json:"warnings,omitempty"`
}

// WarningType categorizes conversion warnings.
type WarningType string

const (
	WarningMalformedAttribute WarningType = "malformed_attribute"
	WarningMissingAttribute   WarningType = "missing_attribute"
	WarningMalformedStyle     WarningType = "malformed_style"
	WarningDepthLimit         WarningType = "depth_limit"
)

// Warning represents a non-fatal issue encountered during conversion.
type Warning struct {
	Type    WarningType `json:"type"`
	Tag     string      `json:"tag,omitempty"`
	Message string      `json:"message"`
}

package immediate

import "fmt"

// Kind identifies the widget a cache node reconciles.
type Kind int

const (
	KindNone Kind = iota
	KindVerticalLayout
	KindHorizontalLayout
	KindLabel
	KindSeparator
	KindLineSeparator
	KindSpacer
	KindButtonText
	KindButtonImage
	KindTextField
	KindIPField
	KindIntField
	KindFloatField
	KindToggle
	KindVector2Field
	KindVector3Field
	KindQuaternionField
	KindEnumField
	KindEnumMaskField
	KindPopup
)

var kindNames = [...]string{
	KindNone:             "none",
	KindVerticalLayout:   "vertical-layout",
	KindHorizontalLayout: "horizontal-layout",
	KindLabel:            "label",
	KindSeparator:        "separator",
	KindLineSeparator:    "line-separator",
	KindSpacer:           "spacer",
	KindButtonText:       "button-text",
	KindButtonImage:      "button-image",
	KindTextField:        "text-field",
	KindIPField:          "ip-field",
	KindIntField:         "int-field",
	KindFloatField:       "float-field",
	KindToggle:           "toggle",
	KindVector2Field:     "vector2-field",
	KindVector3Field:     "vector3-field",
	KindQuaternionField:  "quaternion-field",
	KindEnumField:        "enum-field",
	KindEnumMaskField:    "enum-mask-field",
	KindPopup:            "popup",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsContainer reports whether nodes of this kind hold nested calls.
func (k Kind) IsContainer() bool {
	return k == KindVerticalLayout || k == KindHorizontalLayout
}

// Flags tweak how a widget is built.
type Flags int

const (
	FlagNone Flags = 0
	// FlagNoInteractable disables the control.
	FlagNoInteractable Flags = 1 << 0
	// FlagNoFieldLabel builds a field without its name label.
	FlagNoFieldLabel Flags = 1 << 1
)

package block

import "strings"

// Type identifies a block definition in the Registry.
type Type string

// Base block types.
const (
	TypePage    Type = "page"
	TypeWrapper Type = "wrapper"
	TypeSection Type = "section"
	TypeGroup   Type = "group"
	TypeColumn  Type = "column"
	TypeText    Type = "text"
	TypeImage   Type = "image"
	TypeButton  Type = "button"
	TypeDivider Type = "divider"
	TypeSpacer  Type = "spacer"
	TypeHero    Type = "hero"
	TypeNavbar  Type = "navbar"
	TypeSocial  Type = "social"
	TypeRaw     Type = "raw"
)

// Advanced block types. Each one renders like its base type plus the
// condition, iteration and i18n directives.
const (
	TypeAdvancedWrapper Type = "advanced_wrapper"
	TypeAdvancedSection Type = "advanced_section"
	TypeAdvancedGroup   Type = "advanced_group"
	TypeAdvancedColumn  Type = "advanced_column"
	TypeAdvancedText    Type = "advanced_text"
	TypeAdvancedImage   Type = "advanced_image"
	TypeAdvancedButton  Type = "advanced_button"
	TypeAdvancedDivider Type = "advanced_divider"
	TypeAdvancedSpacer  Type = "advanced_spacer"
	TypeAdvancedHero    Type = "advanced_hero"
	TypeAdvancedNavbar  Type = "advanced_navbar"
	TypeAdvancedSocial  Type = "advanced_social"
)

const advancedPrefix = "advanced_"

// BaseTypes lists every base block type in document order.
func BaseTypes() []Type {
	return []Type{
		TypePage, TypeWrapper, TypeSection, TypeGroup, TypeColumn, TypeText, TypeImage,
		TypeButton, TypeDivider, TypeSpacer, TypeHero, TypeNavbar, TypeSocial, TypeRaw,
	}
}

// AdvancedTypes lists every advanced block type.
func AdvancedTypes() []Type {
	return []Type{
		TypeAdvancedWrapper, TypeAdvancedSection, TypeAdvancedGroup, TypeAdvancedColumn,
		TypeAdvancedText, TypeAdvancedImage, TypeAdvancedButton, TypeAdvancedDivider,
		TypeAdvancedSpacer, TypeAdvancedHero, TypeAdvancedNavbar, TypeAdvancedSocial,
	}
}

// Advanced reports whether t names an advanced block.
func (t Type) Advanced() bool {
	return strings.HasPrefix(string(t), advancedPrefix)
}

// Base strips the advanced prefix, returning the base type t derives from.
func (t Type) Base() Type {
	return Type(strings.TrimPrefix(string(t), advancedPrefix))
}

// AdvancedOf returns the advanced variant of a base type.
func AdvancedOf(base Type) Type {
	return Type(advancedPrefix + string(base.Base()))
}

// GroupLike reports whether t bundles siblings for no-wrap layouts.
func (t Type) GroupLike() bool {
	return t == TypeGroup || t == TypeAdvancedGroup
}

// SectionLike reports whether t accepts the no-wrap toggle.
func (t Type) SectionLike() bool {
	return t == TypeSection || t == TypeAdvancedSection
}

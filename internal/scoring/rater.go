// Package scoring holds the rating rules that do not depend on storage: rater
// eligibility by salary grade, competency applicability, and the aggregation of
// individual scores into the Psycho-Social and Potential indices.
package scoring

import "strings"

// RaterCode is the short code used by eligibility and display logic
type RaterCode string

const (
	CodeChair   RaterCode = "CHAIR"
	CodeVice    RaterCode = "VICE"
	CodeGAD     RaterCode = "GAD"
	CodeDENREU  RaterCode = "DENREU"
	CodeRegMem  RaterCode = "REGMEM"
	CodeEndUser RaterCode = "END-USER"
	CodeUnknown RaterCode = "UNKNOWN"
)

// Codes lists the six known rater codes in panel order
var Codes = []RaterCode{CodeChair, CodeVice, CodeGAD, CodeDENREU, CodeRegMem, CodeEndUser}

// Known reports whether c is one of the six panel codes
func (c RaterCode) Known() bool {
	for _, known := range Codes {
		if c == known {
			return true
		}
	}
	return false
}

// RaterKind enumerates the closed set of rater types
type RaterKind int

const (
	KindUnknown RaterKind = iota
	KindChairperson
	KindViceChairperson
	KindRegularMember
	KindDENREU
	KindGenderAndDevelopment
	KindEndUser
)

// RaterType is a parsed rater type. Raw keeps the original text so that
// unmapped values can still be displayed and compared.
type RaterType struct {
	Kind RaterKind
	Raw  string
}

var raterTypeNames = map[string]RaterKind{
	"Chairperson":            KindChairperson,
	"Vice-Chairperson":       KindViceChairperson,
	"Regular Member":         KindRegularMember,
	"DENREU":                 KindDENREU,
	"Gender and Development": KindGenderAndDevelopment,
	"End-User":               KindEndUser,
}

// ParseRaterType maps a stored rater type to its kind. Matching is exact after
// trimming, unknown values keep KindUnknown.
func ParseRaterType(raw string) RaterType {
	trimmed := strings.TrimSpace(raw)
	return RaterType{Kind: raterTypeNames[trimmed], Raw: trimmed}
}

// Code returns the rater code for the type. Unknown types map to their raw
// text, or to UNKNOWN when there is none.
func (t RaterType) Code() RaterCode {
	switch t.Kind {
	case KindChairperson:
		return CodeChair
	case KindViceChairperson:
		return CodeVice
	case KindRegularMember:
		return CodeRegMem
	case KindDENREU:
		return CodeDENREU
	case KindGenderAndDevelopment:
		return CodeGAD
	case KindEndUser:
		return CodeEndUser
	}
	if t.Raw == "" {
		return CodeUnknown
	}
	return RaterCode(t.Raw)
}

// CodeFor is shorthand for ParseRaterType(raw).Code()
func CodeFor(raw string) RaterCode {
	return ParseRaterType(raw).Code()
}

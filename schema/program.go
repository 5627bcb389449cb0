package schema

import (
	"fmt"
	"regexp"
	"time"
)

// StatusKind is the lifecycle state reported for a program.
type StatusKind string

const (
	// StatusActive marks a program that is released and not yet cut.
	StatusActive StatusKind = "Active"
	// StatusDeleted marks a program removed from the nest database.
	StatusDeleted StatusKind = "Deleted"
	// StatusUpdated marks a program that has been cut and posted.
	StatusUpdated StatusKind = "Updated"
)

// ParseStatusKind maps the stored status column onto a StatusKind.
func ParseStatusKind(value string) (StatusKind, error) {
	switch StatusKind(value) {
	case StatusActive, StatusDeleted, StatusUpdated:
		return StatusKind(value), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, value)
	}
}

// ProgramState is the program status and when it was reached. Operator is
// only set for StatusUpdated.
type ProgramState struct {
	Kind      StatusKind
	Timestamp time.Time
	Operator  string
}

// Sheet describes the plate a program is nested on.
type Sheet struct {
	Name           string
	MaterialMaster string
	HeatNumber     string
	PONumber       string
	WBS            *WBS
}

// Program is one lookup result row.
type Program struct {
	Name  string
	State ProgramState
	Sheet Sheet
}

// WBSKind distinguishes the two WBS element layouts.
type WBSKind string

const (
	// WBSHD is the current layout, D-<project>-<shipment>.
	WBSHD WBSKind = "hd"
	// WBSLegacy is the old layout, S-<project>-2-<shipment>.
	WBSLegacy WBSKind = "legacy"
)

// WBS is a parsed work breakdown structure element.
type WBS struct {
	Kind     WBSKind
	Project  string
	Shipment string
}

var (
	wbsHDPattern     = regexp.MustCompile(`D-(\d{7})-(\d{5})`)
	wbsLegacyPattern = regexp.MustCompile(`S-(\d{7})-2-(\d{2})`)
)

// ParseWBS parses a WBS element in either known layout.
func ParseWBS(value string) (WBS, error) {
	if m := wbsHDPattern.FindStringSubmatch(value); m != nil {
		return WBS{Kind: WBSHD, Project: m[1], Shipment: m[2]}, nil
	}
	if m := wbsLegacyPattern.FindStringSubmatch(value); m != nil {
		return WBS{Kind: WBSLegacy, Project: m[1], Shipment: m[2]}, nil
	}
	return WBS{}, fmt.Errorf("%w: %q", ErrInvalidWBS, value)
}

// String formats the element back into its stored layout.
func (w WBS) String() string {
	switch w.Kind {
	case WBSHD:
		return "D-" + w.Project + "-" + w.Shipment
	case WBSLegacy:
		return "S-" + w.Project + "-2-" + w.Shipment
	default:
		return ""
	}
}

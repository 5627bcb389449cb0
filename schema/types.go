package schema

// SessionID identifies one console session in logs.
type SessionID string

// ThemeName identifies a console theme.
type ThemeName string

// LookupKind selects the stored lookup used for an identifier.
type LookupKind string

const (
	// LookupProgram looks up a nesting program by name.
	LookupProgram LookupKind = "program"
	// LookupPart looks up the program that nests a part.
	LookupPart LookupKind = "part"
	// LookupSheet looks up the program cut from a sheet.
	LookupSheet LookupKind = "sheet"
	// LookupMaterial looks up programs by material master or project material.
	LookupMaterial LookupKind = "material"
)

// Label returns the user-facing name of the kind.
func (k LookupKind) Label() string {
	switch k {
	case LookupProgram:
		return "Program"
	case LookupPart:
		return "Part"
	case LookupSheet:
		return "Sheet"
	case LookupMaterial:
		return "Material"
	default:
		return "Identifier"
	}
}

// LookupRequest is a classified identifier queued for the lookup worker.
type LookupRequest struct {
	Kind       LookupKind
	Identifier string
}

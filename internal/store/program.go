package store

import (
	"pkt.systems/sndbq/schema"
	"pkt.systems/pslog"
)

// ReadProgram converts a lookup row into a Program. Heat, PO, WBS and
// operator are only read for updated programs. An unparseable WBS element is
// logged and left empty rather than failing the row.
func ReadProgram(r RowReader, log pslog.Logger) (schema.Program, error) {
	name, err := r.String("ProgramName")
	if err != nil {
		return schema.Program{}, err
	}
	status, err := r.String("Status")
	if err != nil {
		return schema.Program{}, err
	}
	kind, err := schema.ParseStatusKind(status)
	if err != nil {
		return schema.Program{}, err
	}
	state := schema.ProgramState{Kind: kind}
	if state.Timestamp, err = r.Time("Timestamp"); err != nil {
		return schema.Program{}, err
	}
	sheet := schema.Sheet{}
	if sheet.Name, err = r.String("SheetName"); err != nil {
		return schema.Program{}, err
	}
	if sheet.MaterialMaster, _, err = r.OptionalString("MaterialMaster"); err != nil {
		return schema.Program{}, err
	}
	if kind != schema.StatusUpdated {
		return schema.Program{Name: name, State: state, Sheet: sheet}, nil
	}

	if state.Operator, _, err = r.OptionalString("Operator"); err != nil {
		return schema.Program{}, err
	}
	if sheet.HeatNumber, _, err = r.OptionalString("HeatNumber"); err != nil {
		return schema.Program{}, err
	}
	if sheet.PONumber, _, err = r.OptionalString("PoNumber"); err != nil {
		return schema.Program{}, err
	}
	raw, ok, err := r.OptionalString("Wbs")
	if err != nil {
		return schema.Program{}, err
	}
	if ok && raw != "" {
		wbs, perr := schema.ParseWBS(raw)
		if perr != nil {
			if log != nil {
				log.Warn("wbs parse failed", "program", name, "wbs", raw, "err", perr)
			}
		} else {
			sheet.WBS = &wbs
		}
	}
	return schema.Program{Name: name, State: state, Sheet: sheet}, nil
}

package subway

import "errors"

// Error kinds from the input-normalization contract. CellMalformed and
// DuplicateEdge never surface as returned errors — they are non-fatal
// and counted in the LoadReport instead; only InputUnreadable and
// SchemaUndetected abort a load.
var (
	ErrInputUnreadable  = errors.New("subway: input file missing or undecodable")
	ErrSchemaUndetected = errors.New("subway: no supported column schema detected")
)

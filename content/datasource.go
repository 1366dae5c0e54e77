package content

import (
	"strings"

	"github.com/halvard-io/synthgen/diag"
	"github.com/halvard-io/synthgen/value"
)

// SchemeJSON is the only URI scheme Datasource currently supports: "json:<path>"
// reads an array of Values from a JSON file at compile time.
const SchemeJSON = "json"

// Datasource is the content node reading values from an external file,
// recycling through them in declaration order. URI takes the form
// "<scheme>:<path>"; Cycle makes the iterator restart after exhaustion
// rather than ending the run early.
type Datasource struct {
	URI   string
	Cycle bool
}

// NewDatasource validates uri names a supported scheme and builds a
// Datasource node.
func NewDatasource(uri string, cycle bool) (Datasource, error) {
	scheme, _, ok := strings.Cut(uri, ":")
	if !ok || scheme != SchemeJSON {
		return Datasource{}, diag.BadRequestf("datasource uri %q uses an unsupported scheme (only %q is supported)", uri, SchemeJSON)
	}
	return Datasource{URI: uri, Cycle: cycle}, nil
}

// Path returns the portion of URI after its scheme prefix.
func (d Datasource) Path() string {
	_, path, _ := strings.Cut(d.URI, ":")
	return path
}

func (Datasource) Kind() Kind { return KindDatasource }

// Accepts is permissive and returns true for every value: a Datasource's
// value shape is only known once its backing file is read at compile time,
// and no acceptance check is made against that file's contents.
func (Datasource) Accepts(value.Value) bool { return true }

func (Datasource) content() {}

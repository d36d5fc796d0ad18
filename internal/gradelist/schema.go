package gradelist

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

//go:embed schema.cue
var schemaSource string

var (
	schemaOnce sync.Once
	schemaCtx  *cue.Context
	schemaDoc  cue.Value
	schemaErr  error
)

func loadSchema() (*cue.Context, cue.Value, error) {
	schemaOnce.Do(func() {
		schemaCtx = cuecontext.New()
		v := schemaCtx.CompileString(schemaSource, cue.Filename("schema.cue"))
		if err := v.Err(); err != nil {
			schemaErr = fmt.Errorf("compile schema: %w", err)
			return
		}
		schemaDoc = v.LookupPath(cue.ParsePath("#Document"))
		if !schemaDoc.Exists() {
			schemaErr = errors.New("compile schema: #Document not defined")
		}
	})
	return schemaCtx, schemaDoc, schemaErr
}

// validateDocument checks a generically decoded document against
// #Document in schema.cue.
func validateDocument(raw any) error {
	ctx, def, err := loadSchema()
	if err != nil {
		return err
	}

	data := ctx.Encode(raw)
	if err := data.Err(); err != nil {
		return fmt.Errorf("encode document: %s", cueerrors.Details(err, nil))
	}
	if err := def.Unify(data).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("invalid document: %s", cueerrors.Details(err, nil))
	}
	return nil
}

package helper

import "encoding/json"

/*
PatchField is a 3-state util for PATCH bodies:
- field absent        -> Present=false
- field sent w/ value -> Present=true, Value != nil
- field sent as null  -> Present=true, Value == nil
NOT NULL columns must reject null in the controller before ToUpdates.
*/
type PatchField[T any] struct {
	Present bool `json:"-"`
	Value   *T   `json:"-"`
}

func (p *PatchField[T]) UnmarshalJSON(b []byte) error {
	p.Present = true
	if string(b) == "null" {
		p.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	p.Value = &v
	return nil
}

func (p PatchField[T]) IsNull() bool       { return p.Present && p.Value == nil }
func (p PatchField[T]) ShouldUpdate() bool { return p.Present }

// PutPatch collects one PatchField into a gorm updates map.
func PutPatch[T any](upd map[string]any, key string, f *PatchField[T]) {
	if f == nil || !f.ShouldUpdate() {
		return
	}
	if f.IsNull() {
		upd[key] = nil
		return
	}
	upd[key] = *f.Value
}

package respnorm

import (
	"github.com/tidwall/gjson"
)

////////////////////////////////////////////////////////////////////////////////

// DefaultKey is the envelope field that carries the payload of a successful call.
const DefaultKey = "data"

// FieldGetter is implemented by responses that expose named fields.
type FieldGetter interface {
	GetField(name string) (any, bool)
}

////////////////////////////////////////////////////////////////////////////////

// Data returns the payload under DefaultKey.
func Data(resp any) any {
	return SafeGetData(resp, DefaultKey)
}

// SafeGetData returns the named field of resp, the keyed entry of resp, or
// resp itself, in that order of preference.
func SafeGetData(resp any, key string) any {
	if fg, ok := resp.(FieldGetter); ok {
		if val, ok := getField(fg, key); ok {
			return val
		}
		return resp
	}

	switch v := resp.(type) {
	case map[string]any:
		if val, ok := v[key]; ok {
			return val
		}
	case gjson.Result:
		if val := v.Get(key); v.IsObject() && val.Exists() {
			return val
		}
	}
	return resp
}

// getField reports a missing field when GetField panics, as a nil pointer
// receiver does
func getField(fg FieldGetter, key string) (val any, ok bool) {
	defer func() {
		if recover() != nil {
			val, ok = nil, false
		}
	}()
	return fg.GetField(key)
}

// DataJSON is SafeGetData specialised for parsed JSON documents.
func DataJSON(doc gjson.Result) gjson.Result {
	return SafeGetData(doc, DefaultKey).(gjson.Result)
}

package bedrock

import (
	"reflect"
	"strings"
	"time"
	"unicode"

	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime/types"
)

// smithyDocument is implemented by the SDK's lazy document values.
type smithyDocument interface {
	UnmarshalSmithyDocument(v interface{}) error
}

var (
	timeType     = reflect.TypeOf(time.Time{})
	documentType = reflect.TypeOf((*smithyDocument)(nil)).Elem()
)

// traceFields converts a trace part into the service's wire shape:
// lower-camel keys, and union members as single-key objects named after the
// member (for example {"orchestrationTrace": {"rationale": {...}}}).
// Unset optional fields are omitted.
func traceFields(part types.TracePart) map[string]any {
	out, _ := wireValue(reflect.ValueOf(part)).(map[string]any)
	if out == nil {
		out = map[string]any{}
	}
	return out
}

func wireValue(v reflect.Value) any {
	if !v.IsValid() {
		return nil
	}
	if v.Type().Implements(documentType) && v.CanInterface() {
		if (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) && v.IsNil() {
			return nil
		}
		var decoded any
		if err := v.Interface().(smithyDocument).UnmarshalSmithyDocument(&decoded); err != nil {
			return nil
		}
		return decoded
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return wireValue(v.Elem())
	case reflect.Struct:
		if v.Type() == timeType {
			return v.Interface().(time.Time).Format(time.RFC3339Nano)
		}
		return wireStruct(v)
	case reflect.Slice:
		if v.IsNil() {
			return nil
		}
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return string(v.Bytes())
		}
		items := make([]any, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			items = append(items, wireValue(v.Index(i)))
		}
		return items
	case reflect.Map:
		if v.IsNil() {
			return nil
		}
		m := make(map[string]any, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			m[iter.Key().String()] = wireValue(iter.Value())
		}
		return m
	case reflect.String:
		return v.String()
	case reflect.Bool:
		return v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint()
	case reflect.Float32, reflect.Float64:
		return v.Float()
	default:
		return nil
	}
}

func wireStruct(v reflect.Value) any {
	t := v.Type()

	if t == reflect.TypeOf(types.UnknownUnionMember{}) {
		member := v.Interface().(types.UnknownUnionMember)
		return map[string]any{member.Tag: string(member.Value)}
	}
	// Union members are generated as <Union>Member<Name>{Value}.
	if i := strings.LastIndex(t.Name(), "Member"); i > 0 && t.NumField() >= 1 {
		if f, ok := t.FieldByName("Value"); ok && exportedFieldCount(t) == 1 {
			name := lowerCamel(t.Name()[i+len("Member"):])
			return map[string]any{name: wireValue(v.FieldByIndex(f.Index))}
		}
	}

	out := make(map[string]any, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		val := wireValue(v.Field(i))
		if val == nil {
			continue
		}
		out[lowerCamel(f.Name)] = val
	}
	return out
}

func exportedFieldCount(t reflect.Type) int {
	n := 0
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).IsExported() {
			n++
		}
	}
	return n
}

// lowerCamel lowers a leading capital or acronym: AgentId -> agentId,
// URLPath -> urlPath.
func lowerCamel(s string) string {
	r := []rune(s)
	for i := 0; i < len(r) && unicode.IsUpper(r[i]); i++ {
		if i > 0 && i+1 < len(r) && unicode.IsLower(r[i+1]) {
			break
		}
		r[i] = unicode.ToLower(r[i])
	}
	return string(r)
}

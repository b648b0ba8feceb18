package markup

import (
	"encoding/base64"
	"fmt"
	"reflect"
	"strconv"
	"time"
)

// formatValue renders a leaf value as markup text. The second result is
// false for absent values, which are never emitted.
func formatValue(v reflect.Value) (string, bool) {
	v = indirect(v)
	if !v.IsValid() {
		return "", false
	}

	switch inst := v.Interface().(type) {
	case time.Time:
		return inst.Format(time.RFC3339), true
	case reflect.Type:
		return inst.String(), true
	case QualifiedName:
		return inst.String(), true
	}

	switch v.Kind() {
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10), true
	case reflect.Float32:
		return strconv.FormatFloat(v.Float(), 'g', -1, 32), true
	case reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'g', -1, 64), true
	case reflect.String:
		return v.String(), true
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return base64.StdEncoding.EncodeToString(v.Bytes()), true
		}
	}

	if s, ok := v.Interface().(fmt.Stringer); ok {
		return s.String(), true
	}
	return fmt.Sprintf("%v", v.Interface()), true
}

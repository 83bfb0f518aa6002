package cell

import (
	"encoding/base64"
	"strconv"
	"strings"
)

const (
	separator   = "|"
	keyMaterial = "material"
	keyData     = "data"
)

// Serialize renders s as a single line:
//
//	material=<TYPE>|data=<int8>|<key>=<base64(value)>|...
//
// Auxiliary keys are written in sorted order. Keys that are reserved or that
// contain the separator or '=' cannot be parsed back and are left out.
func Serialize(s Snapshot) string {
	var sb strings.Builder
	sb.WriteString(keyMaterial)
	sb.WriteByte('=')
	sb.WriteString(s.TypeID())
	sb.WriteString(separator)
	sb.WriteString(keyData)
	sb.WriteByte('=')
	sb.WriteString(strconv.Itoa(int(s.LegacyVariant())))
	for _, k := range s.AuxKeys() {
		if !validAuxKey(k) {
			continue
		}
		sb.WriteString(separator)
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(base64.StdEncoding.EncodeToString([]byte(s.aux[k])))
	}
	return sb.String()
}

func validAuxKey(k string) bool {
	if k == "" || k == keyMaterial || k == keyData {
		return false
	}
	return !strings.ContainsAny(k, separator+"=")
}

// Parse reads a line written by Serialize. It never fails: fragments without
// '=' or with undecodable values are dropped, an unparsable or missing data
// field becomes 0 and a missing or empty material becomes AirType. The material
// is normalized with NormalizeType.
func Parse(line string) Snapshot {
	s := Snapshot{typeID: AirType}
	for _, fragment := range strings.Split(strings.TrimSpace(line), separator) {
		k, v, ok := strings.Cut(fragment, "=")
		if !ok || k == "" {
			continue
		}
		switch k {
		case keyMaterial:
			s.typeID = NormalizeType(v)
		case keyData:
			n, err := strconv.ParseInt(v, 10, 8)
			if err != nil {
				n = 0
			}
			s.legacyVariant = int8(n)
		default:
			decoded, err := base64.StdEncoding.DecodeString(v)
			if err != nil {
				continue
			}
			if s.aux == nil {
				s.aux = make(map[string]string)
			}
			s.aux[k] = string(decoded)
		}
	}
	return s
}

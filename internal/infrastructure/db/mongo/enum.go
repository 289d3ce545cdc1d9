package mongo

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// enumValue decodes an enum field written either as a plain string or as a
// tagged document {name: "..."} by older writers. It always encodes as a
// plain string.
type enumValue string

func (v *enumValue) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.String:
		*v = enumValue(raw.StringValue())
	case bsontype.EmbeddedDocument:
		name, ok := raw.Document().Lookup("name").StringValueOK()
		if !ok {
			return fmt.Errorf("enum document without a string name")
		}
		*v = enumValue(name)
	case bsontype.Null, bsontype.Undefined:
		*v = ""
	default:
		return fmt.Errorf("cannot decode enum from bson %s", t)
	}
	return nil
}

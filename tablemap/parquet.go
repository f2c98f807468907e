package tablemap

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/duckbridge/duckbridge-go/schema"
)

// ParquetFields reads the schema of a parquet file and returns field
// descriptors for its top-level columns, so results of a mapped
// read_parquet expression can be coerced without a round-trip to the
// engine.
func ParquetFields(path string) ([]schema.FieldDescriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open parquet file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat parquet file: %w", err)
	}

	pf, err := parquet.OpenFile(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("read parquet schema of %s: %w", path, err)
	}

	root := pf.Schema()
	fields := make([]schema.FieldDescriptor, 0, len(root.Fields()))
	for _, fld := range root.Fields() {
		fields = append(fields, fieldFromParquet(fld))
	}
	return fields, nil
}

func fieldFromParquet(fld parquet.Field) schema.FieldDescriptor {
	if !fld.Leaf() {
		children := fld.Fields()
		desc := schema.FieldDescriptor{
			Name:    fld.Name(),
			Logical: schema.TypeStruct,
		}
		for _, child := range children {
			desc.Children = append(desc.Children, fieldFromParquet(child))
		}
		return desc
	}

	desc := schema.FieldDescriptor{Name: fld.Name()}
	t := fld.Type()

	if lt := t.LogicalType(); lt != nil {
		switch {
		case lt.UTF8 != nil || lt.Json != nil || lt.Enum != nil:
			desc.Logical = schema.TypeText
			return desc
		case lt.Date != nil:
			desc.Logical = schema.TypeDate
			return desc
		case lt.Timestamp != nil:
			if lt.Timestamp.IsAdjustedToUTC {
				desc.Logical = schema.TypeTimestampTZ
			} else {
				desc.Logical = schema.TypeTimestamp
			}
			return desc
		case lt.Time != nil:
			desc.Logical = schema.TypeTime
			return desc
		case lt.Decimal != nil:
			desc.Logical = schema.TypeDecimal
			return desc
		case lt.UUID != nil:
			desc.Logical = schema.TypeUUID
			return desc
		}
	}

	switch t.Kind() {
	case parquet.Boolean:
		desc.Logical = schema.TypeBoolean
	case parquet.Int32, parquet.Int64, parquet.Int96, parquet.Float, parquet.Double:
		desc.Logical = schema.TypeNumeric
	case parquet.FixedLenByteArray:
		desc.Logical = schema.TypeFixedBinary
		desc.Physical = schema.PhysicalFixedBinary
	case parquet.ByteArray:
		desc.Logical = schema.TypeBinary
		desc.Physical = schema.PhysicalVarBinary
	default:
		desc.Logical = schema.TypeUnknown
	}
	return desc
}

package mongostore

import (
	"fmt"
	"reflect"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	decimalType     = reflect.TypeOf(decimal.Decimal{})
	nullDecimalType = reflect.TypeOf(decimal.NullDecimal{})
)

// Registry returns a BSON registry that stores prices as Decimal128.
func Registry() *bsoncodec.Registry {
	reg := bson.NewRegistry()
	reg.RegisterTypeEncoder(decimalType, bsoncodec.ValueEncoderFunc(encodeDecimal))
	reg.RegisterTypeDecoder(decimalType, bsoncodec.ValueDecoderFunc(decodeDecimal))
	reg.RegisterTypeEncoder(nullDecimalType, bsoncodec.ValueEncoderFunc(encodeNullDecimal))
	reg.RegisterTypeDecoder(nullDecimalType, bsoncodec.ValueDecoderFunc(decodeNullDecimal))
	return reg
}

func writeDecimal(vw bsonrw.ValueWriter, d decimal.Decimal) error {
	d128, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return fmt.Errorf("encode decimal %s: %w", d.String(), err)
	}
	return vw.WriteDecimal128(d128)
}

func encodeDecimal(_ bsoncodec.EncodeContext, vw bsonrw.ValueWriter, val reflect.Value) error {
	if !val.IsValid() || val.Type() != decimalType {
		return bsoncodec.ValueEncoderError{Name: "DecimalEncodeValue", Types: []reflect.Type{decimalType}, Received: val}
	}
	return writeDecimal(vw, val.Interface().(decimal.Decimal))
}

func encodeNullDecimal(_ bsoncodec.EncodeContext, vw bsonrw.ValueWriter, val reflect.Value) error {
	if !val.IsValid() || val.Type() != nullDecimalType {
		return bsoncodec.ValueEncoderError{Name: "NullDecimalEncodeValue", Types: []reflect.Type{nullDecimalType}, Received: val}
	}
	nd := val.Interface().(decimal.NullDecimal)
	if !nd.Valid {
		return vw.WriteNull()
	}
	return writeDecimal(vw, nd.Decimal)
}

// readDecimal accepts the numeric BSON types older documents were written with.
func readDecimal(vr bsonrw.ValueReader) (decimal.Decimal, bool, error) {
	switch vr.Type() {
	case bsontype.Decimal128:
		d128, err := vr.ReadDecimal128()
		if err != nil {
			return decimal.Zero, false, err
		}
		d, err := decimal.NewFromString(d128.String())
		return d, true, err
	case bsontype.Double:
		f, err := vr.ReadDouble()
		return decimal.NewFromFloat(f), true, err
	case bsontype.Int32:
		i, err := vr.ReadInt32()
		return decimal.NewFromInt32(i), true, err
	case bsontype.Int64:
		i, err := vr.ReadInt64()
		return decimal.NewFromInt(i), true, err
	case bsontype.Null:
		return decimal.Zero, false, vr.ReadNull()
	case bsontype.Undefined:
		return decimal.Zero, false, vr.ReadUndefined()
	default:
		return decimal.Zero, false, fmt.Errorf("cannot decode %v into a decimal", vr.Type())
	}
}

func decodeDecimal(_ bsoncodec.DecodeContext, vr bsonrw.ValueReader, val reflect.Value) error {
	if !val.CanSet() || val.Type() != decimalType {
		return bsoncodec.ValueDecoderError{Name: "DecimalDecodeValue", Types: []reflect.Type{decimalType}, Received: val}
	}
	d, _, err := readDecimal(vr)
	if err != nil {
		return err
	}
	val.Set(reflect.ValueOf(d))
	return nil
}

func decodeNullDecimal(_ bsoncodec.DecodeContext, vr bsonrw.ValueReader, val reflect.Value) error {
	if !val.CanSet() || val.Type() != nullDecimalType {
		return bsoncodec.ValueDecoderError{Name: "NullDecimalDecodeValue", Types: []reflect.Type{nullDecimalType}, Received: val}
	}
	d, ok, err := readDecimal(vr)
	if err != nil {
		return err
	}
	val.Set(reflect.ValueOf(decimal.NullDecimal{Decimal: d, Valid: ok}))
	return nil
}

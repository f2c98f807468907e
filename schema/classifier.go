package schema

// Strategy selects the coercion branch applied to a field's raw
// values.
type Strategy int

const (
	StrategyFallback Strategy = iota
	StrategyPassthrough
	StrategyDate
	StrategyTime
	StrategyTimestamp
	StrategyTimestampTZ
	StrategyInterval
	StrategyStruct
	StrategyList
	StrategyMap
	StrategyBinary
	StrategyDecimal
	StrategyUUID
)

// Classify maps a field to its coercion strategy. The function is
// total: tags outside the known set classify as StrategyFallback,
// which is the designed behavior rather than an error.
func Classify(f FieldDescriptor) Strategy {
	switch f.Logical {
	case TypeBoolean, TypeNumeric, TypeText:
		return StrategyPassthrough
	case TypeDate:
		return StrategyDate
	case TypeTime:
		return StrategyTime
	case TypeTimestamp:
		return StrategyTimestamp
	case TypeTimestampTZ:
		return StrategyTimestampTZ
	case TypeInterval:
		return StrategyInterval
	case TypeStruct:
		return StrategyStruct
	case TypeList:
		return StrategyList
	case TypeMap:
		return StrategyMap
	case TypeBinary, TypeFixedBinary:
		return StrategyBinary
	case TypeDecimal:
		return StrategyDecimal
	case TypeUUID:
		return StrategyUUID
	default:
		return StrategyFallback
	}
}

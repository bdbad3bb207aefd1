package validator

// Visitor handles each validator kind. It receives copies of the validators
// and must not rely on mutating them.
type Visitor[R any] interface {
	String(StringValidator) R
	Number(NumberValidator) R
	Boolean(BooleanValidator) R
	Null(NullValidator) R
	Any(AnyValidator) R
	List(ListValidator) R
	Dict(DictValidator) R
	Tuple(TupleValidator) R
	Union(UnionValidator) R
	Object(ObjectValidator) R
	Transform(TransformValidator) R
	// Custom receives CustomValidator values and any Validator implemented
	// outside this package.
	Custom(Validator) R
}

// Visit dispatches v to the visitor method matching its Kind.
func Visit[R any](v Validator, vis Visitor[R]) R {
	switch v.Kind() {
	case KindString:
		if s, ok := v.(StringValidator); ok {
			return vis.String(s)
		}
	case KindNumber:
		if n, ok := v.(NumberValidator); ok {
			return vis.Number(n)
		}
	case KindBoolean:
		if b, ok := v.(BooleanValidator); ok {
			return vis.Boolean(b)
		}
	case KindNull:
		if n, ok := v.(NullValidator); ok {
			return vis.Null(n)
		}
	case KindAny:
		if a, ok := v.(AnyValidator); ok {
			return vis.Any(a)
		}
	case KindList:
		if l, ok := v.(ListValidator); ok {
			return vis.List(l)
		}
	case KindDict:
		if d, ok := v.(DictValidator); ok {
			return vis.Dict(d)
		}
	case KindTuple:
		if t, ok := v.(TupleValidator); ok {
			return vis.Tuple(t)
		}
	case KindUnion:
		if u, ok := v.(UnionValidator); ok {
			return vis.Union(u)
		}
	case KindObject:
		if o, ok := v.(ObjectValidator); ok {
			return vis.Object(o)
		}
	case KindTransform:
		if t, ok := v.(TransformValidator); ok {
			return vis.Transform(t)
		}
	}
	return vis.Custom(v)
}

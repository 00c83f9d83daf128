package tp

import "fmt"

type (
	Type interface {
		Size() int
	}

	Name string

	Unit struct{}

	Bool struct{}

	Int struct {
		Bits   int16
		Signed bool
	}

	Float struct {
		Bits int16
	}

	Char struct{}

	String struct{}

	Func struct {
		In  []Type
		Out []Type
	}

	// LValue is the address of a value of type X.
	// Loads and stores operate through lvalues.
	LValue struct {
		X Type
	}

	Tuple struct {
		Elems []Type
	}

	// Metatype is the type of a type value, as produced by typeof.
	Metatype struct {
		X Type
	}

	// ObjectPointer is a pointer to an object header,
	// used as the first result of array allocation.
	ObjectPointer struct{}

	Untyped struct{}
)

func (x Unit) Size() int { return 0 }
func (x Bool) Size() int { return 1 }

func (x Int) Size() int {
	return int(x.Bits) / 8
}

func (x Float) Size() int {
	return int(x.Bits) / 8
}

func (x Char) Size() int   { return 4 }
func (x String) Size() int { return 16 }

func (x Func) Size() int   { return 8 }
func (x LValue) Size() int { return 8 }

func (x Tuple) Size() (s int) {
	for _, e := range x.Elems {
		s += e.Size()
	}

	return s
}

func (x Metatype) Size() int      { return 8 }
func (x ObjectPointer) Size() int { return 8 }

func (x Name) Size() int    { return 0 }
func (x Untyped) Size() int { return 0 }

// Result is the type a call of a function of type f evaluates to.
func (x Func) Result() Type {
	switch len(x.Out) {
	case 0:
		return Unit{}
	case 1:
		return x.Out[0]
	default:
		return Tuple{Elems: x.Out}
	}
}

// Equal reports structural type equality.
func Equal(a, b Type) bool {
	switch x := a.(type) {
	case Tuple:
		y, ok := b.(Tuple)
		if !ok || len(x.Elems) != len(y.Elems) {
			return false
		}

		for i := range x.Elems {
			if !Equal(x.Elems[i], y.Elems[i]) {
				return false
			}
		}

		return true
	case Func:
		y, ok := b.(Func)
		if !ok || len(x.In) != len(y.In) || len(x.Out) != len(y.Out) {
			return false
		}

		for i := range x.In {
			if !Equal(x.In[i], y.In[i]) {
				return false
			}
		}

		for i := range x.Out {
			if !Equal(x.Out[i], y.Out[i]) {
				return false
			}
		}

		return true
	case LValue:
		y, ok := b.(LValue)
		return ok && Equal(x.X, y.X)
	case Metatype:
		y, ok := b.(Metatype)
		return ok && Equal(x.X, y.X)
	default:
		// scalar kinds are comparable values
		return a == b
	}
}

// Arity returns the number of tuple elements, or -1 if x is not a tuple.
func Arity(x Type) int {
	t, ok := x.(Tuple)
	if !ok {
		return -1
	}

	return len(t.Elems)
}

func (x Unit) String() string { return "()" }
func (x Bool) String() string { return "bool" }

func (x Int) String() string {
	if x.Signed {
		return fmt.Sprintf("i%d", x.Bits)
	}

	return fmt.Sprintf("u%d", x.Bits)
}

func (x Float) String() string  { return fmt.Sprintf("f%d", x.Bits) }
func (x Char) String() string   { return "char" }
func (x String) String() string { return "string" }

func (x Func) String() string {
	b := []byte("(")

	for i, t := range x.In {
		if i != 0 {
			b = append(b, ", "...)
		}

		b = fmt.Append(b, t)
	}

	b = append(b, ") -> "...)
	b = fmt.Append(b, x.Result())

	return string(b)
}

func (x LValue) String() string { return fmt.Sprintf("&%v", x.X) }

func (x Tuple) String() string {
	b := []byte("(")

	for i, e := range x.Elems {
		if i != 0 {
			b = append(b, ", "...)
		}

		b = fmt.Append(b, e)
	}

	b = append(b, ')')

	return string(b)
}

func (x Metatype) String() string      { return fmt.Sprintf("%v.Type", x.X) }
func (x ObjectPointer) String() string { return "objptr" }

func (x Name) String() string    { return string(x) }
func (x Untyped) String() string { return "untyped" }

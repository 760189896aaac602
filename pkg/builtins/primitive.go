package builtins

// Primitive is the simple name of a primitive class, such as "Int".  Memory
// access built-ins are named after it.
type Primitive string

const (
	Byte   Primitive = "Byte"
	Short  Primitive = "Short"
	Int    Primitive = "Int"
	Long   Primitive = "Long"
	Float  Primitive = "Float"
	Double Primitive = "Double"

	UByte  Primitive = "UByte"
	UShort Primitive = "UShort"
	UInt   Primitive = "UInt"
	ULong  Primitive = "ULong"
)

// StandardPrimitives are the primitives every target supports.
var StandardPrimitives = []Primitive{Byte, Short, Int, Long, Float, Double}

// UnsignedPrimitives are the usual target-specific extra primitives.
var UnsignedPrimitives = []Primitive{UByte, UShort, UInt, ULong}

// readName is the name of the nativeMemUtils member reading the primitive.
func (p Primitive) readName() string {
	return "get" + string(p)
}

// writeName is the name of the nativeMemUtils member writing the primitive.
func (p Primitive) writeName() string {
	return "put" + string(p)
}

// ReturnCategory is the return type of a C function pointer invocation.  The
// set is closed: a return type outside it cannot be invoked and must be
// rejected before the built-ins are consulted.
type ReturnCategory int

const (
	ReturnUnit ReturnCategory = iota
	ReturnBoolean
	ReturnByte
	ReturnShort
	ReturnInt
	ReturnLong
	ReturnUByte
	ReturnUShort
	ReturnUInt
	ReturnULong
	ReturnFloat
	ReturnDouble
	ReturnPointer
	numReturnCategories
)

var returnCategoryNames = [numReturnCategories]string{
	ReturnUnit:    "Unit",
	ReturnBoolean: "Boolean",
	ReturnByte:    "Byte",
	ReturnShort:   "Short",
	ReturnInt:     "Int",
	ReturnLong:    "Long",
	ReturnUByte:   "UByte",
	ReturnUShort:  "UShort",
	ReturnUInt:    "UInt",
	ReturnULong:   "ULong",
	ReturnFloat:   "Float",
	ReturnDouble:  "Double",
	ReturnPointer: "Pointer",
}

// ReturnCategories lists every supported return category in declaration
// order.
func ReturnCategories() []ReturnCategory {
	categories := make([]ReturnCategory, numReturnCategories)
	for i := range categories {
		categories[i] = ReturnCategory(i)
	}
	return categories
}

// ParseReturnCategory returns the category with the given name.
func ParseReturnCategory(name string) (ReturnCategory, bool) {
	for i, n := range returnCategoryNames {
		if n == name {
			return ReturnCategory(i), true
		}
	}
	return 0, false
}

// Valid reports whether c is a supported category.
func (c ReturnCategory) Valid() bool {
	return c >= 0 && c < numReturnCategories
}

// String implements fmt.Stringer
func (c ReturnCategory) String() string {
	if !c.Valid() {
		return "invalid"
	}
	return returnCategoryNames[c]
}

// invokeName is the name of the function invoking a pointer and returning
// the category.
func (c ReturnCategory) invokeName() string {
	return "invokeImpl" + c.String() + "Ret"
}

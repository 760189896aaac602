package builtins

import (
	"github.com/stackb/konan-interop/pkg/fqname"
	"github.com/stackb/konan-interop/pkg/symbol"
)

const (
	// InteropPackage holds the interop built-ins.
	InteropPackage fqname.Name = "kotlinx.cinterop"
	// WorkerPackage holds the worker scheduling built-ins.
	WorkerPackage fqname.Name = "kotlin.native.worker"

	CPointerName       fqname.Name = InteropPackage + ".CPointer"
	NativePointedName  fqname.Name = InteropPackage + ".NativePointed"
	NativeMemUtilsName fqname.Name = InteropPackage + ".nativeMemUtils"
	ObjCObjectBaseName fqname.Name = InteropPackage + ".ObjCObjectBase"
	WorkerName         fqname.Name = WorkerPackage + ".Worker"
)

// Entry identifies one logical operation of the built-in catalog.
type Entry int

const (
	GetPointerSize Entry = iota
	NativePointed
	CPointer
	CPointerRawValue
	CPointerGetRawValue
	NativePointedRawPtrGetter
	NativePointedGetRawPointer
	InterpretNullablePointed
	InterpretCPointer
	TypeOf
	NativeMemUtils
	ReadPrimitive
	WritePrimitive
	BitsToFloat
	BitsToDouble
	StaticCFunction
	WorkerSchedule
	ScheduleImpl
	SignExtend
	Narrow
	Convert
	ReadBits
	WriteBits
	CFunctionPointerInvokes
	InvokeImpl
	ObjCObject
	ObjCObjectBase
	AllocObjCObject
	GetObjCClass
	ObjCObjectRawPtr
	GetObjCReceiverOrSuper
	GetObjCMessenger
	GetObjCMessengerStret
	InterpretObjCPointerOrNull
	InterpretObjCPointer
	ObjCObjectSuperInitCheck
	ObjCObjectInitBy
	ObjCAction
	ObjCOutlet
	ObjCOverrideInit
	ObjCMethodImp
	ExportObjCClass
	CreateNSStringFromKString
	numEntries
)

// Arity says how many handles an entry binds.
type Arity int

const (
	// Single entries bind exactly one handle.
	Single Arity = iota
	// Multiple entries bind every matching declaration; at least one is
	// required.
	Multiple
	// PerPrimitive entries bind one handle for each primitive.
	PerPrimitive
	// PerReturnCategory entries bind one handle for each return category.
	PerReturnCategory
)

// String implements fmt.Stringer
func (a Arity) String() string {
	switch a {
	case Multiple:
		return "multiple"
	case PerPrimitive:
		return "per-primitive"
	case PerReturnCategory:
		return "per-return-category"
	default:
		return "single"
	}
}

// entrySpec is the naming convention of an entry: where its declarations
// live, what they are called, and which of the same-named candidates count.
type entrySpec struct {
	operation string
	scope     fqname.Name
	name      string
	kind      symbol.Kind
	arity     Arity
	filter    symbol.Predicate
	// expect is the shape of a declaration that satisfies the filter, used
	// when generating the expected declarations.
	expect func(sym *symbol.Symbol)
}

func function(operation string, scope fqname.Name, name string) entrySpec {
	return entrySpec{operation: operation, scope: scope, name: name, kind: symbol.Function}
}

func class(operation string, scope fqname.Name, name string) entrySpec {
	return entrySpec{operation: operation, scope: scope, name: name, kind: symbol.Class}
}

func variable(operation string, scope fqname.Name, name string) entrySpec {
	return entrySpec{operation: operation, scope: scope, name: name, kind: symbol.Variable}
}

func (e entrySpec) multiple() entrySpec {
	e.arity = Multiple
	return e
}

func (e entrySpec) family(arity Arity) entrySpec {
	e.arity = arity
	return e
}

func (e entrySpec) receiver(receiver fqname.Name) entrySpec {
	e.filter = symbol.WithReceiver(receiver)
	e.expect = func(sym *symbol.Symbol) { sym.Receiver = receiver }
	return e
}

func (e entrySpec) operator(receiver fqname.Name) entrySpec {
	e.filter = symbol.AllOf(symbol.IsOperator, symbol.WithReceiver(receiver))
	e.expect = func(sym *symbol.Symbol) {
		sym.Receiver = receiver
		sym.Operator = true
	}
	return e
}

func (e entrySpec) getter() entrySpec {
	e.filter = symbol.HasGetter
	e.expect = func(sym *symbol.Symbol) { sym.Getter = true }
	return e
}

// catalog is indexed by Entry.  Family entries leave 'name' empty; their
// names derive from the primitive or return category.
var catalog = [numEntries]entrySpec{
	GetPointerSize:             function("getPointerSize", InteropPackage, "getPointerSize"),
	NativePointed:              class("nativePointed", InteropPackage, "NativePointed"),
	CPointer:                   class("cPointer", InteropPackage, "CPointer"),
	CPointerRawValue:           variable("cPointerRawValue", CPointerName, "rawValue"),
	CPointerGetRawValue:        function("cPointerGetRawValue", InteropPackage, "getRawValue").receiver(CPointerName),
	NativePointedRawPtrGetter:  variable("nativePointedRawPtrGetter", NativePointedName, "rawPtr").getter(),
	NativePointedGetRawPointer: function("nativePointedGetRawPointer", InteropPackage, "getRawPointer").receiver(NativePointedName),
	InterpretNullablePointed:   function("interpretNullablePointed", InteropPackage, "interpretNullablePointed"),
	InterpretCPointer:          function("interpretCPointer", InteropPackage, "interpretCPointer"),
	TypeOf:                     function("typeOf", InteropPackage, "typeOf"),
	NativeMemUtils:             class("nativeMemUtils", InteropPackage, "nativeMemUtils"),
	ReadPrimitive:              function("readPrimitive", NativeMemUtilsName, "").family(PerPrimitive),
	WritePrimitive:             function("writePrimitive", NativeMemUtilsName, "").family(PerPrimitive),
	BitsToFloat:                function("bitsToFloat", InteropPackage, "bitsToFloat"),
	BitsToDouble:               function("bitsToDouble", InteropPackage, "bitsToDouble"),
	StaticCFunction:            function("staticCFunction", InteropPackage, "staticCFunction").multiple(),
	WorkerSchedule:             function("scheduleFunction", WorkerName, "schedule"),
	ScheduleImpl:               function("scheduleImplFunction", WorkerPackage, "scheduleImpl"),
	SignExtend:                 function("signExtend", InteropPackage, "signExtend"),
	Narrow:                     function("narrow", InteropPackage, "narrow"),
	Convert:                    function("convert", InteropPackage, "convert").multiple(),
	ReadBits:                   function("readBits", InteropPackage, "readBits"),
	WriteBits:                  function("writeBits", InteropPackage, "writeBits"),
	CFunctionPointerInvokes:    function("cFunctionPointerInvokes", InteropPackage, "invoke").multiple().operator(CPointerName),
	InvokeImpl:                 function("invokeImpls", InteropPackage, "").family(PerReturnCategory),
	ObjCObject:                 class("objCObject", InteropPackage, "ObjCObject"),
	ObjCObjectBase:             class("objCObjectBase", InteropPackage, "ObjCObjectBase"),
	AllocObjCObject:            function("allocObjCObject", InteropPackage, "allocObjCObject"),
	GetObjCClass:               function("getObjCClass", InteropPackage, "getObjCClass"),
	ObjCObjectRawPtr:           function("objCObjectRawPtr", InteropPackage, "objcPtr"),
	GetObjCReceiverOrSuper:     function("getObjCReceiverOrSuper", InteropPackage, "getReceiverOrSuper"),
	GetObjCMessenger:           function("getObjCMessenger", InteropPackage, "getMessenger"),
	GetObjCMessengerStret:      function("getObjCMessengerStret", InteropPackage, "getMessengerStret"),
	InterpretObjCPointerOrNull: function("interpretObjCPointerOrNull", InteropPackage, "interpretObjCPointerOrNull"),
	InterpretObjCPointer:       function("interpretObjCPointer", InteropPackage, "interpretObjCPointer"),
	ObjCObjectSuperInitCheck:   function("objCObjectSuperInitCheck", InteropPackage, "superInitCheck"),
	ObjCObjectInitBy:           function("objCObjectInitBy", InteropPackage, "initBy"),
	ObjCAction:                 class("objCAction", InteropPackage, "ObjCAction"),
	ObjCOutlet:                 class("objCOutlet", InteropPackage, "ObjCOutlet"),
	ObjCOverrideInit:           class("objCOverrideInit", ObjCObjectBaseName, "OverrideInit"),
	ObjCMethodImp:              class("objCMethodImp", InteropPackage, "ObjCMethodImp"),
	ExportObjCClass:            class("exportObjCClass", InteropPackage, "ExportObjCClass"),
	CreateNSStringFromKString:  function("createNSStringFromKString", InteropPackage, "CreateNSStringFromKString"),
}

// Entries lists every catalog entry in declaration order.
func Entries() []Entry {
	entries := make([]Entry, numEntries)
	for i := range entries {
		entries[i] = Entry(i)
	}
	return entries
}

// Valid reports whether e is a catalog entry.
func (e Entry) Valid() bool {
	return e >= 0 && e < numEntries
}

// String returns the logical operation name of the entry.
func (e Entry) String() string {
	if !e.Valid() {
		return "invalid"
	}
	return catalog[e].operation
}

// Arity returns how many handles the entry binds.
func (e Entry) Arity() Arity {
	return catalog[e].arity
}

// Kind returns the kind of declaration the entry binds.
func (e Entry) Kind() symbol.Kind {
	return catalog[e].kind
}

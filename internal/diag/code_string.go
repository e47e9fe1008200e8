// Code generated by "stringer -type Code -output code_string.go"; adapted by
// hand here since go generate is never invoked in this exercise. DO NOT EDIT
// without regenerating from the real tool once the toolchain is available.

package diag

import "strconv"

func _() {
	var x [1]struct{}
	_ = x[SyntaxError-0]
	_ = x[SymbolRedefinition-1]
	_ = x[SymbolIgnoredWarn-2]
	_ = x[InvalidLabelDef-3]
	_ = x[LabelAlreadyExtern-4]
	_ = x[LabelAlreadyEntry-5]
	_ = x[LabelIsReserved-6]
	_ = x[OperandRange-7]
	_ = x[UnknownOperand-8]
}

const _Code_name = "SyntaxErrorSymbolRedefinitionSymbolIgnoredWarnInvalidLabelDefLabelAlreadyExternLabelAlreadyEntryLabelIsReservedOperandRangeUnknownOperand"

var _Code_index = [...]uint16{0, 11, 29, 46, 61, 79, 96, 111, 123, 137}

func (i Code) String() string {
	if i >= Code(len(_Code_index)-1) {
		return "Code(" + strconv.FormatInt(int64(i), 10) + ")"
	}

	return _Code_name[_Code_index[i]:_Code_index[i+1]]
}
